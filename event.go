package cv2pdf

import "time"

// Stage identifies a pipeline step in progress events.
type Stage int

// Pipeline stages, in execution order.
const (
	StageLoaded      Stage = iota + 1 // input parsed
	StageRendering                    // template parsed, executing
	StageHTMLWritten                  // <name>.html written
	StageConverting                   // PDF engine starting
	StagePDFWritten                   // PDF written
)

func (s Stage) String() string {
	switch s {
	case StageLoaded:
		return "loaded"
	case StageRendering:
		return "rendering"
	case StageHTMLWritten:
		return "html-written"
	case StageConverting:
		return "converting"
	case StagePDFWritten:
		return "pdf-written"
	default:
		return "unknown"
	}
}

// Event reports the completion of a stage.
type Event struct {
	Stage   Stage
	Path    string        // file the stage read or wrote
	Size    int64         // bytes written, when the stage writes a file
	Elapsed time.Duration // since Generate started
}

package cv2pdf

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/alnah/go-cv2pdf/internal/fileutil"
)

// Engine names.
const (
	EngineRod         = "rod"
	EngineChromedp    = "chromedp"
	EngineWkhtmltopdf = "wkhtmltopdf"
	DefaultEngine     = EngineRod
)

// defaultTimeout bounds a single PDF conversion when none is specified.
const defaultTimeout = 30 * time.Second

// Engines returns the supported engine names, default first.
func Engines() []string {
	return []string{EngineRod, EngineChromedp, EngineWkhtmltopdf}
}

// PDFEngine prints an HTML document to PDF.
type PDFEngine interface {
	ToPDF(ctx context.Context, htmlContent string, page *PageSettings) ([]byte, error)
	Close() error
}

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing
// without a browser or external binary.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, page *PageSettings) ([]byte, error)
	Close() error
}

// Compile-time interface checks
var (
	_ PDFEngine   = (*fileEngine)(nil)
	_ pdfRenderer = (*rodRenderer)(nil)
	_ pdfRenderer = (*chromedpRenderer)(nil)
	_ pdfRenderer = (*wkhtmltopdfRenderer)(nil)
)

// newEngine creates the named engine. Browsers and binaries are located
// lazily on first conversion.
func newEngine(name string, timeout time.Duration) (PDFEngine, error) {
	switch name {
	case EngineRod:
		return &fileEngine{renderer: newRodRenderer(timeout)}, nil
	case EngineChromedp:
		return &fileEngine{renderer: newChromedpRenderer(timeout)}, nil
	case EngineWkhtmltopdf:
		return &fileEngine{renderer: newWkhtmltopdfRenderer()}, nil
	default:
		return nil, fmt.Errorf("%w: %q (must be rod, chromedp, or wkhtmltopdf)", ErrUnknownEngine, name)
	}
}

// fileEngine writes the document to a temporary file and hands it to a
// renderer, so every engine loads the page from disk.
type fileEngine struct {
	renderer pdfRenderer
}

// ToPDF converts HTML content to PDF bytes.
func (e *fileEngine) ToPDF(ctx context.Context, htmlContent string, page *PageSettings) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return e.renderer.RenderFromFile(ctx, tmpPath, page)
}

// Close releases renderer resources.
func (e *fileEngine) Close() error {
	if e.renderer != nil {
		return e.renderer.Close()
	}
	return nil
}

// EngineBinary returns the executable the named engine would run: the
// Chrome/Chromium binary for browser engines, wkhtmltopdf otherwise.
// A missing executable wraps ErrEngineNotFound.
func EngineBinary(name string) (string, error) {
	switch name {
	case EngineRod, EngineChromedp:
		if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
			return bin, nil
		}
		if path, found := launcher.LookPath(); found {
			return path, nil
		}
		return "", fmt.Errorf("%w: Chrome/Chromium", ErrEngineNotFound)
	case EngineWkhtmltopdf:
		return lookupWkhtmltopdf()
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
}

// lookupWkhtmltopdf resolves WKHTMLTOPDF_BIN, then wkhtmltopdf on PATH.
func lookupWkhtmltopdf() (string, error) {
	name := EngineWkhtmltopdf
	if bin := os.Getenv("WKHTMLTOPDF_BIN"); bin != "" {
		name = bin
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEngineNotFound, err)
	}
	return path, nil
}

// BrowserSandboxDisabled reports whether the Chrome sandbox is turned off,
// which is required in most containers and CI runners.
func BrowserSandboxDisabled() bool {
	return os.Getenv("ROD_NO_SANDBOX") == "1" ||
		os.Getenv("CI") == "true" ||
		os.Getenv("ROD_BROWSER_BIN") != ""
}

// fileURL converts a local path to an absolute file:// URL.
func fileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	p := filepath.ToSlash(abs)
	if p[0] != '/' {
		p = "/" + p // Windows drive letters
	}
	return (&url.URL{Scheme: "file", Path: p}).String(), nil
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

package cv2pdf

import "errors"

// Sentinel errors for the pipeline stages. Every failure returned by
// Generate wraps exactly one of the first four.
var (
	ErrInputNotFound       = errors.New("input file not found")
	ErrInputMalformed      = errors.New("input file is malformed")
	ErrTemplateUnavailable = errors.New("template unavailable")
	ErrConversionFailed    = errors.New("PDF conversion failed")
)

// Engine errors. They are wrapped together with ErrConversionFailed.
var (
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrEngineNotFound = errors.New("PDF engine executable not found")
	ErrStylesheet     = errors.New("failed to read stylesheet")
	ErrOutputDir      = errors.New("failed to create output directory")
)

// Option validation errors.
var (
	ErrUnknownEngine      = errors.New("unknown PDF engine")
	ErrEmptyOutputName    = errors.New("output name cannot be empty")
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")
)

package main

import (
	"errors"

	cv2pdf "github.com/alnah/go-cv2pdf"
	"github.com/alnah/go-cv2pdf/internal/config"
)

// Exit codes for cv2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage.
const (
	ExitSuccess = 0 // CV generated
	ExitGeneral = 1 // Any pipeline failure or unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrInvalidArgs) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, cv2pdf.ErrUnknownEngine) ||
		errors.Is(err, cv2pdf.ErrEmptyOutputName) ||
		errors.Is(err, cv2pdf.ErrInvalidPageSize) ||
		errors.Is(err, cv2pdf.ErrInvalidOrientation) ||
		errors.Is(err, cv2pdf.ErrInvalidMargin) {
		return ExitUsage
	}

	// Pipeline failures: input missing or malformed, template unavailable,
	// conversion failed.
	return ExitGeneral
}

package cv2pdf

import (
	"fmt"
	"strings"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// pageDimensions holds portrait width and height in inches.
var pageDimensions = map[string]struct{ width, height float64 }{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if _, ok := pageDimensions[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q (must be letter, a4, or legal)", ErrInvalidPageSize, p.Size)
	}

	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q (must be portrait or landscape)", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// Dimensions returns the paper width and height in inches, swapped for
// landscape. Unknown sizes fall back to A4.
func (p *PageSettings) Dimensions() (width, height float64) {
	if p == nil {
		p = DefaultPageSettings()
	}
	dims, ok := pageDimensions[strings.ToLower(p.Size)]
	if !ok {
		dims = pageDimensions[PageSizeA4]
	}
	if p.IsLandscape() {
		return dims.height, dims.width
	}
	return dims.width, dims.height
}

// IsLandscape reports whether the orientation is landscape.
func (p *PageSettings) IsLandscape() bool {
	return p != nil && strings.EqualFold(p.Orientation, OrientationLandscape)
}

// margin returns the margin in inches, or the default for nil settings.
func (p *PageSettings) margin() float64 {
	if p == nil {
		return DefaultMargin
	}
	return p.Margin
}

// Package dateutil formats CV dates using user-friendly format tokens.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// DefaultDateFormat is used when "auto" is specified without a format.
const DefaultDateFormat = "YYYY-MM-DD"

// dateTokens maps user-friendly tokens to Go time format components.
// Ordered by length descending for greedy matching.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets provides named shortcuts for common date formats.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"month":    "MMM YYYY",
	"year":     "YYYY",
}

// valueLayouts are the shapes accepted for dates written in CV data,
// most specific first.
var valueLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006",
	"2006/01/02",
	"2006/01",
}

// ParseDateFormat converts a user-friendly format string to Go's time format.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D
// Use brackets to escape literal text: [Date] preserves "Date" literally.
// Any non-token characters outside brackets are preserved as literals.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var result strings.Builder
	result.Grow(len(format) + 10)

	i := 0
	for i < len(format) {
		if format[i] == '[' {
			end := strings.Index(format[i+1:], "]")
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			result.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		matched := false
		for _, t := range dateTokens {
			if strings.HasPrefix(format[i:], t.token) {
				result.WriteString(t.goFmt)
				i += len(t.token)
				matched = true
				break
			}
		}

		if !matched {
			result.WriteByte(format[i])
			i++
		}
	}

	return result.String(), nil
}

// layoutFor resolves a preset name or token format to a Go layout.
func layoutFor(format string) (string, error) {
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}
	return ParseDateFormat(format)
}

// ResolveDate handles "auto" and "auto:FORMAT" syntax for date values.
//   - "auto" → current date in YYYY-MM-DD format
//   - "auto:FORMAT" → current date in custom format (e.g., "auto:DD/MM/YYYY")
//   - "auto:preset" → current date using named preset
//   - any other value → returned unchanged (passthrough)
//
// The time parameter allows injecting a fixed time for testing.
func ResolveDate(value string, t time.Time) (string, error) {
	lower := strings.ToLower(value)

	if !strings.HasPrefix(lower, "auto") {
		return value, nil
	}

	if lower == "auto" {
		layout, err := ParseDateFormat(DefaultDateFormat)
		if err != nil {
			return "", err
		}
		return t.Format(layout), nil
	}

	if !strings.HasPrefix(lower, "auto:") {
		return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
	}

	formatPart := value[len("auto:"):]
	if formatPart == "" {
		return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
	}

	layout, err := layoutFor(formatPart)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}

// ParseDate reads a date as written in CV data: YYYY, YYYY-MM, YYYY-MM-DD
// (slashes accepted), or an already decoded time.Time.
func ParseDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range valueLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	case int, int64, uint64:
		if t, err := time.Parse("2006", fmt.Sprint(v)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a CV date value with a token format or preset name.
// "auto" values resolve against now. Values that are not recognizable dates,
// such as "Present" or "Summer 2019", are returned unchanged.
func FormatDate(format string, value any, now time.Time) (string, error) {
	if value == nil {
		return "", nil
	}

	if s, ok := value.(string); ok && isAuto(s) {
		if strings.EqualFold(s, "auto") && format != "" {
			s = "auto:" + format
		}
		return ResolveDate(s, now)
	}

	t, ok := ParseDate(value)
	if !ok {
		return fmt.Sprint(value), nil
	}

	layout, err := layoutFor(format)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}

func isAuto(s string) bool {
	lower := strings.ToLower(s)
	return lower == "auto" || strings.HasPrefix(lower, "auto:")
}

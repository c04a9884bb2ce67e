// Package yamlutil wraps YAML parsing to isolate the external dependency.
// This allows swapping the underlying YAML library without modifying callers.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrNotMapping     = errors.New("yamlutil: top-level value is not a mapping")
)

// SyntaxError carries the parser diagnostic, including a source excerpt
// pointing at the offending line when the parser provides one.
type SyntaxError struct {
	Diagnostic string
	err        error
}

func (e *SyntaxError) Error() string { return "yamlutil: " + e.Diagnostic }

func (e *SyntaxError) Unwrap() error { return e.err }

func newSyntaxError(err error) *SyntaxError {
	return &SyntaxError{
		Diagnostic: yaml.FormatError(err, false, true),
		err:        err,
	}
}

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

func Unmarshal(data []byte, v any) error {
	return unmarshal(data, v)
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	return unmarshal(data, v, yaml.Strict())
}

func unmarshal(data []byte, v any, opts ...yaml.DecodeOption) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return newSyntaxError(err)
	}
	return nil
}

// DecodeMapping parses an untyped document whose top level must be a mapping.
// Nested mappings are normalized to map[string]any so that templates can
// address every key by name. A null document decodes to an empty mapping.
// A key repeated within one mapping keeps its last value.
func DecodeMapping(data []byte) (map[string]any, error) {
	var raw any
	if err := unmarshal(data, &raw, yaml.AllowDuplicateMapKey()); err != nil {
		return nil, err
	}

	switch normalized := normalize(raw).(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return normalized, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrNotMapping, normalized)
	}
}

// normalize converts map[any]any values produced for non-string keys into
// map[string]any, recursing through sequences.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			val[k] = normalize(child)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[fmt.Sprint(k)] = normalize(child)
		}
		return out
	case []any:
		for i, child := range val {
			val[i] = normalize(child)
		}
		return val
	default:
		return v
	}
}

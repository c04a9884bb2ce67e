package cv2pdf

import (
	"fmt"
	"html/template"
	"reflect"
	"strings"
	"time"

	"github.com/alnah/go-cv2pdf/internal/dateutil"
	"github.com/alnah/go-cv2pdf/internal/pipeline"
)

// templateFuncs returns the functions available to CV templates.
func templateFuncs(md *pipeline.MarkdownRenderer, now func() time.Time) template.FuncMap {
	return template.FuncMap{
		// Markdown output is trusted: raw HTML in the source is not rendered.
		"markdown": func(v any) (template.HTML, error) {
			out, err := md.Block(toString(v))
			return template.HTML(out), err // #nosec G203 -- goldmark escapes raw HTML
		},
		"markdownInline": func(v any) (template.HTML, error) {
			out, err := md.Inline(toString(v))
			return template.HTML(out), err // #nosec G203 -- goldmark escapes raw HTML
		},
		"date": func(format string, v any) (string, error) {
			if format == "" {
				format = dateutil.DefaultDateFormat
			}
			return dateutil.FormatDate(format, v, now())
		},
		// safeHTML emits a data value as markup; everything else is escaped.
		"safeHTML": func(v any) template.HTML {
			return template.HTML(toString(v)) // #nosec G203 -- opt-in per template call
		},
		"default": defaultValue,
		"join":    join,
		"lower":   func(v any) string { return strings.ToLower(toString(v)) },
		"upper":   func(v any) string { return strings.ToUpper(toString(v)) },
		"trim":    func(v any) string { return strings.TrimSpace(toString(v)) },
	}
}

// toString renders a template argument as text; nil becomes "".
func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(v)
	}
}

// defaultValue returns fallback when v is empty: nil, a blank string, or an
// empty list or mapping. Zero numbers and false are kept.
func defaultValue(fallback, v any) any {
	if isEmpty(v) {
		return fallback
	}
	return v
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return strings.TrimSpace(rv.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// join concatenates the items of a list with sep. A scalar is returned as is.
func join(sep string, v any) string {
	if v == nil {
		return ""
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return toString(v)
	}
	parts := make([]string, rv.Len())
	for i := range parts {
		parts[i] = toString(rv.Index(i).Interface())
	}
	return strings.Join(parts, sep)
}

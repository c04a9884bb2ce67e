package cv2pdf

import (
	"html/template"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-cv2pdf/internal/pipeline"
)

// execFuncs runs a one-line template using the CV function map.
func execFuncs(t *testing.T, text string, data any) string {
	t.Helper()

	tmpl, err := template.New("t").
		Funcs(templateFuncs(pipeline.NewMarkdownRenderer(), fixedNow)).
		Parse(text)
	if err != nil {
		t.Fatalf("parse %q: %v", text, err)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		t.Fatalf("execute %q: %v", text, err)
	}
	return sb.String()
}

// ---------------------------------------------------------------------------
// TestTemplateFuncs - Function map
// ---------------------------------------------------------------------------

func TestTemplateFuncs(t *testing.T) {
	t.Parallel()

	data := map[string]any{
		"summary": "Built **things**",
		"start":   "2019-04",
		"year":    uint64(2015),
		"skills":  []any{"Go", "SQL", 42},
		"blank":   "  ",
		"zero":    0,
		"name":    "  Jane Doe  ",
		"empty":   []any{},
		"html":    "R&D <b>x</b>",
	}

	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{"markdown block", `{{ markdown .summary }}`, "<p>Built <strong>things</strong></p>"},
		{"markdown inline", `{{ markdownInline .summary }}`, "Built <strong>things</strong>"},
		{"markdown missing", `[{{ markdown .missing }}]`, "[]"},
		{"date preset", `{{ date "month" .start }}`, "Apr 2019"},
		{"date tokens", `{{ date "MM/YYYY" .start }}`, "04/2019"},
		{"date integer year", `{{ date "YYYY" .year }}`, "2015"},
		{"date passthrough", `{{ date "month" "Present" }}`, "Present"},
		{"date auto", `{{ date "long" "auto" }}`, "March 14, 2025"},
		{"date missing", `[{{ date "month" .missing }}]`, "[]"},
		{"date empty format uses ISO", `{{ date "" "2019-04-02" }}`, "2019-04-02"},
		{"default on missing", `{{ default "Present" .missing }}`, "Present"},
		{"default on blank", `{{ default "n/a" .blank }}`, "n/a"},
		{"default on empty list", `{{ default "none" .empty }}`, "none"},
		{"default keeps zero", `{{ default "n/a" .zero }}`, "0"},
		{"default piped", `{{ .start | default "x" }}`, "2019-04"},
		{"join list", `{{ join ", " .skills }}`, "Go, SQL, 42"},
		{"join scalar", `{{ join ", " .start }}`, "2019-04"},
		{"join missing", `[{{ join ", " .missing }}]`, "[]"},
		{"lower", `{{ lower "GoLang" }}`, "golang"},
		{"upper", `{{ upper "go" }}`, "GO"},
		{"trim", `[{{ trim .name }}]`, "[Jane Doe]"},
		{"safeHTML keeps markup", `{{ safeHTML .html }}`, "R&D <b>x</b>"},
		{"safeHTML missing", `[{{ safeHTML .missing }}]`, "[]"},
		{"plain value escaped", `{{ .html }}`, "R&amp;D &lt;b&gt;x&lt;/b&gt;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := execFuncs(t, tt.tmpl, data); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.tmpl, got, tt.want)
			}
		})
	}
}

func TestTemplateFuncs_DateInvalidFormat(t *testing.T) {
	t.Parallel()

	tmpl := template.Must(template.New("t").
		Funcs(templateFuncs(pipeline.NewMarkdownRenderer(), time.Now)).
		Parse(`{{ date "[unclosed" "2020-01" }}`))

	var sb strings.Builder
	if err := tmpl.Execute(&sb, nil); err == nil {
		t.Error("expected error for invalid date format")
	}
}

func TestTemplateFuncs_MarkdownDropsRawHTML(t *testing.T) {
	t.Parallel()

	got := execFuncs(t, `{{ markdown .bio }}`, map[string]any{"bio": "hi <script>alert(1)</script>"})
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML passed through: %q", got)
	}
}

package cv2pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-cv2pdf/internal/pipeline"
)

// DefaultTemplatePath is the template used when none is configured.
const DefaultTemplatePath = "cv_template.html"

// Renderer executes a parsed CV template.
type Renderer struct {
	path string
	tmpl *template.Template
}

// ParseTemplate reads and parses the template at path. now supplies the
// clock for "auto" dates; nil means time.Now.
// Missing or unparseable templates wrap ErrTemplateUnavailable.
func ParseTemplate(path string, now func() time.Time) (*Renderer, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- template path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateUnavailable, err)
	}

	if now == nil {
		now = time.Now
	}

	tmpl, err := template.New(filepath.Base(path)).
		Funcs(templateFuncs(pipeline.NewMarkdownRenderer(), now)).
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateUnavailable, err)
	}

	return &Renderer{path: path, tmpl: tmpl}, nil
}

// Path returns the template file path.
func (r *Renderer) Path() string {
	return r.path
}

// Dir returns the directory containing the template. Relative references
// in the rendered document (images, fonts) resolve against it.
func (r *Renderer) Dir() string {
	return filepath.Dir(r.path)
}

// Render executes the template with data as its root value.
// Execution errors wrap ErrTemplateUnavailable. Nothing is returned on
// failure, so a partial document is never written.
func (r *Renderer) Render(data Data) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, map[string]any(data)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateUnavailable, err)
	}
	return buf.String(), nil
}

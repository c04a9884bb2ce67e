package cv2pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-cv2pdf/internal/fileutil"
	"github.com/alnah/go-cv2pdf/internal/pipeline"
)

// Defaults for a run without configuration.
const (
	DefaultInputPath      = "cv_data.yaml"
	DefaultOutputName     = "cv"
	DefaultOutputDir      = "output"
	DefaultStylesheetPath = "style.css"
)

// Request names the input file and the base name of the generated files.
type Request struct {
	InputPath  string // CV data file
	OutputName string // base name without extension, e.g. "cv"
}

// Result describes a successful run.
type Result struct {
	HTML     string // rendered template output, without the injected stylesheet
	HTMLPath string // <name>.html
	PDFPath  string // <output-dir>/<name>.pdf
	PDFSize  int64  // bytes
}

// Generator runs the load, render, and convert stages.
// A Generator holds a PDF engine and must be closed.
type Generator struct {
	cfg    generatorConfig
	engine PDFEngine
}

type generatorConfig struct {
	engineName     string
	timeout        time.Duration
	templatePath   string
	stylesheetPath string
	outputDir      string
	page           *PageSettings
	progress       func(Event)
	now            func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithEngine selects the PDF engine by name: "rod", "chromedp", or "wkhtmltopdf".
func WithEngine(name string) Option {
	return func(g *Generator) {
		g.cfg.engineName = name
	}
}

// WithPDFEngine injects a PDF engine, replacing the named one.
func WithPDFEngine(e PDFEngine) Option {
	return func(g *Generator) {
		g.engine = e
	}
}

// WithTimeout bounds each PDF conversion.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("cv2pdf: WithTimeout duration must be positive")
	}
	return func(g *Generator) {
		g.cfg.timeout = d
	}
}

// WithTemplatePath sets the HTML template file.
func WithTemplatePath(path string) Option {
	return func(g *Generator) {
		g.cfg.templatePath = path
	}
}

// WithStylesheetPath sets the stylesheet injected before conversion.
// An empty path disables the stylesheet.
func WithStylesheetPath(path string) Option {
	return func(g *Generator) {
		g.cfg.stylesheetPath = path
	}
}

// WithOutputDir sets the directory receiving the PDF.
func WithOutputDir(dir string) Option {
	return func(g *Generator) {
		g.cfg.outputDir = dir
	}
}

// WithPage sets the page size, orientation, and margins.
func WithPage(p *PageSettings) Option {
	return func(g *Generator) {
		g.cfg.page = p
	}
}

// WithProgress registers a callback invoked as each stage completes.
func WithProgress(fn func(Event)) Option {
	return func(g *Generator) {
		g.cfg.progress = fn
	}
}

// WithNow sets the clock used for "auto" dates in templates.
func WithNow(now func() time.Time) Option {
	return func(g *Generator) {
		g.cfg.now = now
	}
}

// NewGenerator creates a Generator. The engine's browser or binary is only
// looked up on the first conversion.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg: generatorConfig{
			engineName:     DefaultEngine,
			timeout:        defaultTimeout,
			templatePath:   DefaultTemplatePath,
			stylesheetPath: DefaultStylesheetPath,
			outputDir:      DefaultOutputDir,
			page:           DefaultPageSettings(),
			now:            time.Now,
		},
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.cfg.page == nil {
		g.cfg.page = DefaultPageSettings()
	}
	if err := g.cfg.page.Validate(); err != nil {
		return nil, err
	}

	if g.engine == nil {
		e, err := newEngine(g.cfg.engineName, g.cfg.timeout)
		if err != nil {
			return nil, err
		}
		g.engine = e
	}

	return g, nil
}

// Close releases engine resources (headless browser).
func (g *Generator) Close() error {
	if g.engine != nil {
		return g.engine.Close()
	}
	return nil
}

// Generate loads the input, renders the template to <name>.html, and
// converts it to <output-dir>/<name>.pdf. Files written before a failing
// stage are left in place.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if req.OutputName == "" {
		return nil, ErrEmptyOutputName
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()

	data, err := LoadData(req.InputPath)
	if err != nil {
		return nil, err
	}
	g.emit(Event{Stage: StageLoaded, Path: req.InputPath, Elapsed: time.Since(start)})

	// The template is checked before anything is written.
	renderer, err := ParseTemplate(g.cfg.templatePath, g.cfg.now)
	if err != nil {
		return nil, err
	}
	g.emit(Event{Stage: StageRendering, Path: renderer.Path(), Elapsed: time.Since(start)})

	htmlContent, err := renderer.Render(data)
	if err != nil {
		return nil, err
	}

	htmlPath := req.OutputName + ".html"
	if err := fileutil.WriteFile(htmlPath, []byte(htmlContent)); err != nil {
		return nil, fmt.Errorf("writing %s: %w", htmlPath, err)
	}
	g.emit(Event{Stage: StageHTMLWritten, Path: htmlPath, Size: int64(len(htmlContent)), Elapsed: time.Since(start)})

	pdfPath, size, err := g.convert(ctx, htmlContent, req.OutputName, renderer.Dir(), start)
	if err != nil {
		return nil, err
	}

	return &Result{
		HTML:     htmlContent,
		HTMLPath: htmlPath,
		PDFPath:  pdfPath,
		PDFSize:  size,
	}, nil
}

// Convert prints already rendered HTML to <output-dir>/<outputName>.pdf and
// returns the PDF path and size. Relative references resolve against the
// template directory. Every failure wraps ErrConversionFailed.
func (g *Generator) Convert(ctx context.Context, htmlContent, outputName string) (string, int64, error) {
	if outputName == "" {
		return "", 0, ErrEmptyOutputName
	}
	return g.convert(ctx, htmlContent, outputName, filepath.Dir(g.cfg.templatePath), time.Now())
}

func (g *Generator) convert(ctx context.Context, htmlContent, outputName, baseDir string, start time.Time) (string, int64, error) {
	pdfPath := filepath.Join(g.cfg.outputDir, outputName+".pdf")
	g.emit(Event{Stage: StageConverting, Path: pdfPath, Elapsed: time.Since(start)})

	if err := fileutil.EnsureDir(g.cfg.outputDir); err != nil {
		return "", 0, fmt.Errorf("%w: %w: %v", ErrConversionFailed, ErrOutputDir, err)
	}

	var css string
	if g.cfg.stylesheetPath != "" {
		content, err := os.ReadFile(g.cfg.stylesheetPath) // #nosec G304 -- stylesheet path is user-provided
		if err != nil {
			return "", 0, fmt.Errorf("%w: %w: %v", ErrConversionFailed, ErrStylesheet, err)
		}
		css = string(content)
	}

	doc, err := pipeline.PrepareDocument(htmlContent, css, baseDir)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.timeout)
	defer cancel()

	pdf, err := g.engine.ToPDF(ctx, doc, g.cfg.page)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}

	if err := fileutil.WriteFile(pdfPath, pdf); err != nil {
		return "", 0, fmt.Errorf("%w: writing %s: %v", ErrConversionFailed, pdfPath, err)
	}

	info, err := os.Stat(pdfPath)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}

	g.emit(Event{Stage: StagePDFWritten, Path: pdfPath, Size: info.Size(), Elapsed: time.Since(start)})
	return pdfPath, info.Size(), nil
}

func (g *Generator) emit(e Event) {
	if g.cfg.progress != nil {
		g.cfg.progress(e)
	}
}

package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common    commonFlags
	input     string
	output    string
	outputDir string
	keepHTML  bool
	template  string
	style     string
	noStyle   bool
	engine    string
	timeout   string
	page      pageFlags

	// changed reports whether a flag was set on the command line, so that
	// only explicit flags override the config file and environment.
	changed func(name string) bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// newGenerateFlagSet registers every generate flag on a new FlagSet bound to f.
func newGenerateFlagSet(f *generateFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.Usage = func() {} // help is printed by the caller
	fs.SetOutput(io.Discard)

	// I/O flags
	fs.StringVarP(&f.input, "input", "i", "", "CV data file (default cv_data.yaml)")
	fs.StringVarP(&f.output, "output", "o", "", "output base name without extension (default cv)")
	fs.StringVarP(&f.outputDir, "output-dir", "d", "", "PDF output directory (default output)")
	fs.BoolVar(&f.keepHTML, "keep-html", false, "keep the intermediate HTML file")

	// Rendering flags
	fs.StringVarP(&f.template, "template", "t", "", "HTML template file (default cv_template.html)")
	fs.StringVarP(&f.style, "style", "s", "", "stylesheet file (default style.css)")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable the stylesheet")
	fs.StringVarP(&f.engine, "engine", "e", "", "PDF engine: rod, chromedp, wkhtmltopdf")
	fs.StringVar(&f.timeout, "timeout", "", "PDF generation timeout (e.g., 30s, 2m)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)

	return fs
}

// parseGenerateFlags parses generate command flags and returns positional args.
func parseGenerateFlags(args []string) (*generateFlags, []string, error) {
	f := &generateFlags{}
	fs := newGenerateFlagSet(f)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.changed = fs.Changed

	return f, fs.Args(), nil
}

package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/alnah/go-cv2pdf/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string   // CV2PDF_CONFIG: config file name or path
	Input       string   // CV2PDF_INPUT: CV data file
	Output      string   // CV2PDF_OUTPUT: output base name
	OutputDir   string   // CV2PDF_OUTPUT_DIR: PDF directory
	Template    string   // CV2PDF_TEMPLATE: HTML template file
	Style       string   // CV2PDF_STYLE: stylesheet file
	Engine      string   // CV2PDF_ENGINE: rod, chromedp, wkhtmltopdf
	Timeout     string   // CV2PDF_TIMEOUT: Go duration
	PageSize    string   // CV2PDF_PAGE_SIZE: letter, a4, legal
	Orientation string   // CV2PDF_ORIENTATION: portrait, landscape
	Margin      *float64 // CV2PDF_MARGIN: inches
	KeepHTML    *bool    // CV2PDF_KEEP_HTML: keep <name>.html (nil when unset)
}

// knownEnvVars lists valid CV2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"CV2PDF_CONFIG":      true,
	"CV2PDF_INPUT":       true,
	"CV2PDF_OUTPUT":      true,
	"CV2PDF_OUTPUT_DIR":  true,
	"CV2PDF_TEMPLATE":    true,
	"CV2PDF_STYLE":       true,
	"CV2PDF_ENGINE":      true,
	"CV2PDF_TIMEOUT":     true,
	"CV2PDF_PAGE_SIZE":   true,
	"CV2PDF_ORIENTATION": true,
	"CV2PDF_MARGIN":      true,
	"CV2PDF_KEEP_HTML":   true,
	"CV2PDF_CONTAINER":   true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Unparseable margin and keep-html values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:  os.Getenv("CV2PDF_CONFIG"),
		Input:       os.Getenv("CV2PDF_INPUT"),
		Output:      os.Getenv("CV2PDF_OUTPUT"),
		OutputDir:   os.Getenv("CV2PDF_OUTPUT_DIR"),
		Template:    os.Getenv("CV2PDF_TEMPLATE"),
		Style:       os.Getenv("CV2PDF_STYLE"),
		Engine:      os.Getenv("CV2PDF_ENGINE"),
		Timeout:     os.Getenv("CV2PDF_TIMEOUT"),
		PageSize:    os.Getenv("CV2PDF_PAGE_SIZE"),
		Orientation: os.Getenv("CV2PDF_ORIENTATION"),
	}

	if margin := os.Getenv("CV2PDF_MARGIN"); margin != "" {
		if m, err := strconv.ParseFloat(margin, 64); err == nil {
			cfg.Margin = &m
		}
	}

	if keep := os.Getenv("CV2PDF_KEEP_HTML"); keep != "" {
		if b, err := strconv.ParseBool(keep); err == nil {
			cfg.KeepHTML = &b
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized CV2PDF_* variables.
// Helps catch typos like CV2PDF_TEMPLATES instead of CV2PDF_TEMPLATE.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "CV2PDF_") {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				unknown = append(unknown, name)
			}
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file; CLI flags are applied later
// via mergeFlags, giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	// I/O
	if env.Input != "" {
		cfg.Input.Path = env.Input
	}
	if env.Output != "" {
		cfg.Output.Name = env.Output
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.KeepHTML != nil {
		cfg.Output.KeepHTML = *env.KeepHTML
	}

	// Assets
	if env.Template != "" {
		cfg.Template.Path = env.Template
	}
	if env.Style != "" {
		cfg.Style.Path = env.Style
	}

	// PDF
	if env.Engine != "" {
		cfg.PDF.Engine = env.Engine
	}
	if env.Timeout != "" {
		cfg.PDF.Timeout = env.Timeout
	}
	if env.PageSize != "" {
		cfg.PDF.Page.Size = env.PageSize
	}
	if env.Orientation != "" {
		cfg.PDF.Page.Orientation = env.Orientation
	}
	if env.Margin != nil {
		cfg.PDF.Page.Margin = env.Margin
	}
}

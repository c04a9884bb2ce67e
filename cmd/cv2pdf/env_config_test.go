package main

// Notes:
// - loadEnvConfig: we test every CV2PDF_* variable plus graceful handling of
//   unparseable margin and keep-html values (ignored, not errors).
// - warnUnknownEnvVars: we test typo detection and that known vars don't warn.
// - applyEnvConfig: we test that set variables override the config file and
//   unset ones leave it alone.
// - Tests use t.Setenv() which prevents t.Parallel().

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alnah/go-cv2pdf/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("CV2PDF_CONFIG", "work")
	t.Setenv("CV2PDF_INPUT", "me.yaml")
	t.Setenv("CV2PDF_OUTPUT", "ada")
	t.Setenv("CV2PDF_OUTPUT_DIR", "build")
	t.Setenv("CV2PDF_TEMPLATE", "tmpl.html")
	t.Setenv("CV2PDF_STYLE", "print.css")
	t.Setenv("CV2PDF_ENGINE", "chromedp")
	t.Setenv("CV2PDF_TIMEOUT", "45s")
	t.Setenv("CV2PDF_PAGE_SIZE", "a4")
	t.Setenv("CV2PDF_ORIENTATION", "landscape")
	t.Setenv("CV2PDF_MARGIN", "0.75")
	t.Setenv("CV2PDF_KEEP_HTML", "true")

	cfg := loadEnvConfig()

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"ConfigPath", cfg.ConfigPath, "work"},
		{"Input", cfg.Input, "me.yaml"},
		{"Output", cfg.Output, "ada"},
		{"OutputDir", cfg.OutputDir, "build"},
		{"Template", cfg.Template, "tmpl.html"},
		{"Style", cfg.Style, "print.css"},
		{"Engine", cfg.Engine, "chromedp"},
		{"Timeout", cfg.Timeout, "45s"},
		{"PageSize", cfg.PageSize, "a4"},
		{"Orientation", cfg.Orientation, "landscape"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if cfg.Margin == nil || *cfg.Margin != 0.75 {
		t.Errorf("Margin = %v, want 0.75", cfg.Margin)
	}
	if cfg.KeepHTML == nil || !*cfg.KeepHTML {
		t.Errorf("KeepHTML = %v, want true", cfg.KeepHTML)
	}
}

func TestLoadEnvConfig_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("CV2PDF_MARGIN", "wide")
	t.Setenv("CV2PDF_KEEP_HTML", "maybe")

	cfg := loadEnvConfig()

	if cfg.Margin != nil {
		t.Errorf("Margin = %v, want nil for invalid value", *cfg.Margin)
	}
	if cfg.KeepHTML != nil {
		t.Errorf("KeepHTML = %v, want nil for invalid value", *cfg.KeepHTML)
	}
}

func TestLoadEnvConfig_OutOfRangeMarginKept(t *testing.T) {
	t.Setenv("CV2PDF_MARGIN", "0")

	// Range checks happen in validation, so zero must survive loading.
	cfg := loadEnvConfig()
	if cfg.Margin == nil || *cfg.Margin != 0 {
		t.Errorf("Margin = %v, want explicit 0", cfg.Margin)
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("CV2PDF_TEMPLATES", "oops")
	t.Setenv("CV2PDF_INPUT", "fine.yaml")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)
	out := buf.String()

	if !strings.Contains(out, "warning: unknown environment variable CV2PDF_TEMPLATES (typo?)") {
		t.Errorf("missing typo warning: %q", out)
	}
	if strings.Contains(out, "CV2PDF_INPUT") {
		t.Errorf("known variable should not warn: %q", out)
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Env over config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	keep := false
	margin := 1.5
	env := &envConfig{
		Output:   "env-name",
		Engine:   "wkhtmltopdf",
		Margin:   &margin,
		KeepHTML: &keep,
	}
	cfg := &config.Config{
		Input:  config.InputConfig{Path: "config.yaml"},
		Output: config.OutputConfig{Name: "config-name", KeepHTML: true},
		PDF:    config.PDFConfig{Engine: "rod", Timeout: "10s"},
	}

	applyEnvConfig(env, cfg)

	if cfg.Output.Name != "env-name" {
		t.Errorf("Output.Name = %q, want env-name", cfg.Output.Name)
	}
	if cfg.PDF.Engine != "wkhtmltopdf" {
		t.Errorf("PDF.Engine = %q, want wkhtmltopdf", cfg.PDF.Engine)
	}
	if cfg.PDF.Page.Margin == nil || *cfg.PDF.Page.Margin != 1.5 {
		t.Errorf("Page.Margin = %v, want 1.5", cfg.PDF.Page.Margin)
	}
	if cfg.Output.KeepHTML {
		t.Error("CV2PDF_KEEP_HTML=false should override config")
	}

	// Unset variables leave the config alone.
	if cfg.Input.Path != "config.yaml" {
		t.Errorf("Input.Path = %q, want config.yaml", cfg.Input.Path)
	}
	if cfg.PDF.Timeout != "10s" {
		t.Errorf("PDF.Timeout = %q, want 10s", cfg.PDF.Timeout)
	}
}

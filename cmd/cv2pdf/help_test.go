package main

// Notes:
// - printUsage/printGenerateUsage: we test that required content strings are
//   present in the output. We don't test exact formatting as that's an
//   implementation detail.
// - runHelp: we test routing to the correct help topic.

import (
	"bytes"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestPrintUsage - Main usage output
// ---------------------------------------------------------------------------

func TestPrintUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printUsage(&buf)
	output := buf.String()

	for _, s := range []string{"Usage: cv2pdf", "Commands:", "generate", "init", "doctor", "version", "help", "completion"} {
		if !strings.Contains(output, s) {
			t.Errorf("printUsage output should contain %q", s)
		}
	}
}

// ---------------------------------------------------------------------------
// TestPrintGenerateUsage - Every flag is documented
// ---------------------------------------------------------------------------

func TestPrintGenerateUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printGenerateUsage(&buf)
	output := buf.String()

	flags := []string{
		"--input", "--output", "--output-dir", "--keep-html", "--config",
		"--template", "--style", "--no-style", "--engine", "--timeout",
		"--page-size", "--orientation", "--margin", "--quiet", "--verbose",
		"CV2PDF_KEEP_HTML", ".env",
	}
	for _, f := range flags {
		if !strings.Contains(output, f) {
			t.Errorf("generate usage should mention %q", f)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunHelp - Topic routing
// ---------------------------------------------------------------------------

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		topic    string
		wantCode int
		want     string
	}{
		{"", ExitSuccess, "Commands:"},
		{"generate", ExitSuccess, "Usage: cv2pdf [generate]"},
		{"init", ExitSuccess, "Usage: cv2pdf init"},
		{"doctor", ExitSuccess, "Usage: cv2pdf doctor"},
		{"version", ExitSuccess, "Usage: cv2pdf version"},
		{"help", ExitSuccess, "Usage: cv2pdf help"},
		{"completion", ExitSuccess, "Usage: cv2pdf completion"},
		{"bogus", ExitUsage, "Unknown command: bogus"},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv()
			var args []string
			if tt.topic != "" {
				args = []string{tt.topic}
			}

			if code := runHelp(args, env); code != tt.wantCode {
				t.Errorf("runHelp(%q) = %d, want %d", tt.topic, code, tt.wantCode)
			}
			if !strings.Contains(stdout.String()+stderr.String(), tt.want) {
				t.Errorf("output should contain %q, got stdout=%q stderr=%q", tt.want, stdout.String(), stderr.String())
			}
		})
	}
}

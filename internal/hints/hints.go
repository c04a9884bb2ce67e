// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-cv2pdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// installGuide lists, per engine, how to install the external dependency on
// the three supported OS families.
var installGuide = map[string]struct {
	what                   string
	debian, macOS, windows string
}{
	"rod": {
		what:    "Chrome/Chromium",
		debian:  "sudo apt-get install chromium",
		macOS:   "brew install --cask chromium",
		windows: "Download from https://www.google.com/chrome/",
	},
	"chromedp": {
		what:    "Chrome/Chromium",
		debian:  "sudo apt-get install chromium",
		macOS:   "brew install --cask chromium",
		windows: "Download from https://www.google.com/chrome/",
	},
	"wkhtmltopdf": {
		what:    "wkhtmltopdf",
		debian:  "sudo apt-get install wkhtmltopdf",
		macOS:   "brew install wkhtmltopdf",
		windows: "Download from https://wkhtmltopdf.org/downloads.html",
	},
}

// ForInstall returns installation guidance for the dependency an engine
// needs, covering Ubuntu/Debian, macOS and Windows.
func ForInstall(engine string) string {
	guide, ok := installGuide[engine]
	if !ok {
		return ""
	}
	return format("make sure " + guide.what + " is installed:" +
		"\n    Ubuntu/Debian: " + guide.debian +
		"\n    macOS: " + guide.macOS +
		"\n    Windows: " + guide.windows)
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow conversions.
func ForTimeout() string {
	return format("for heavy templates, use --timeout flag")
}

// ForInputNotFound returns a hint for a missing CV data file.
func ForInputNotFound(path string) string {
	return format("make sure " + filepath.Base(path) + " exists in the current directory, or pass --input")
}

// ForTemplateNotFound returns a hint for a missing template file.
func ForTemplateNotFound() string {
	return format("run 'cv2pdf init' to create a starter template, or pass --template")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-cv2pdf/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), ".config/go-cv2pdf") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStarterExists returns a hint for init refusing to overwrite files.
func ForStarterExists() string {
	return format("use --force to overwrite")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}

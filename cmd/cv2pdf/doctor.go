package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	flag "github.com/spf13/pflag"

	cv2pdf "github.com/alnah/go-cv2pdf"
	"github.com/alnah/go-cv2pdf/internal/fileutil"
	"github.com/alnah/go-cv2pdf/internal/hints"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string       `json:"status"` // "ready", "warnings", "errors"
	Engine   string       `json:"engine"` // engine a plain run would use
	Engines  []engineInfo `json:"engines"`
	Files    []fileInfo   `json:"files"`
	Env      envInfo      `json:"environment"`
	System   systemInfo   `json:"system"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// engineInfo holds PDF engine detection results.
type engineInfo struct {
	Name    string `json:"name"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox *bool  `json:"sandbox,omitempty"` // browser engines only
}

// fileInfo holds the state of one default input file.
type fileInfo struct {
	Name   string `json:"name"`
	Found  bool   `json:"found"`
	Valid  bool   `json:"valid"`
	Detail string `json:"detail,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)
	jsonOutput := fs.Bool("json", false, "machine-readable output")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printDoctorUsage(env.Stdout)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v: %v\n", ErrInvalidArgs, err)
		return ExitUsage
	}

	result := runDoctor()

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor() *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Engine: selectedEngine(),
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkEngines(result)
	checkFiles(result)
	checkEnvironment(result)
	checkSystem(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// selectedEngine returns the engine named by CV2PDF_ENGINE, or the default.
func selectedEngine() string {
	if name := os.Getenv("CV2PDF_ENGINE"); name != "" {
		return name
	}
	return cv2pdf.DefaultEngine
}

// checkEngines looks up every engine's executable. A missing executable is
// an error for the selected engine and a warning for the others.
func checkEngines(result *doctorResult) {
	known := false
	for _, name := range cv2pdf.Engines() {
		info := engineInfo{Name: name}
		if name == result.Engine {
			known = true
		}

		path, err := cv2pdf.EngineBinary(name)
		if err == nil {
			_, err = os.Stat(path)
		}
		if err != nil {
			msg := fmt.Sprintf("%s: %v", name, err)
			if name == result.Engine {
				result.Errors = append(result.Errors, msg+hints.ForInstall(name))
			} else {
				result.Warnings = append(result.Warnings, msg)
			}
			result.Engines = append(result.Engines, info)
			continue
		}

		info.Found = true
		info.Path = path
		info.Version = binaryVersion(path)

		if name != cv2pdf.EngineWkhtmltopdf {
			sandbox := !cv2pdf.BrowserSandboxDisabled()
			info.Sandbox = &sandbox
		}
		result.Engines = append(result.Engines, info)
	}

	if !known {
		result.Errors = append(result.Errors,
			fmt.Sprintf("CV2PDF_ENGINE=%q is not one of: %s", result.Engine, strings.Join(cv2pdf.Engines(), ", ")))
	}
}

// binaryVersion runs "<path> --version" and returns its first line.
func binaryVersion(path string) string {
	out, err := exec.Command(path, "--version").Output() // #nosec G204 -- path comes from engine lookup
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return line
}

// checkFiles verifies the default input, template, and stylesheet in the
// working directory. Missing files are warnings since flags can point
// elsewhere; files that exist but fail to load are errors.
func checkFiles(result *doctorResult) {
	files := []struct {
		name  string
		check func(string) error
	}{
		{cv2pdf.DefaultInputPath, func(p string) error { _, err := cv2pdf.LoadData(p); return err }},
		{cv2pdf.DefaultTemplatePath, func(p string) error { _, err := cv2pdf.ParseTemplate(p, nil); return err }},
		{cv2pdf.DefaultStylesheetPath, nil},
	}

	missing := false
	for _, f := range files {
		info := fileInfo{Name: f.name}
		if !fileutil.FileExists(f.name) {
			missing = true
			result.Warnings = append(result.Warnings, f.name+" not found in the working directory")
			result.Files = append(result.Files, info)
			continue
		}
		info.Found = true
		info.Valid = true

		if f.check != nil {
			if err := f.check(f.name); err != nil {
				info.Valid = false
				info.Detail = err.Error()
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", f.name, err))
			}
		}
		result.Files = append(result.Files, info)
	}

	if missing {
		result.Warnings = append(result.Warnings, "Run 'cv2pdf init' to create the starter files")
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	// Detect container (multi-signal approach)
	result.Env.Container, result.Env.ContainerHint = isContainer()

	// Detect CI environments
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	// Warn if container/CI without sandbox disabled
	if (result.Env.Container || result.Env.CI) && !cv2pdf.BrowserSandboxDisabled() {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	// Explicit override (highest priority)
	if os.Getenv("CV2PDF_CONTAINER") == "1" {
		return true, "CV2PDF_CONTAINER=1"
	}
	// Docker
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn / general container indicator
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	// Kubernetes
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies engines can stage their temporary HTML file.
func checkSystem(result *doctorResult) {
	_, cleanup, err := fileutil.WriteTempFile("<html></html>", "html")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", os.TempDir()))
		return
	}
	cleanup()
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "cv2pdf doctor")
	fmt.Fprintln(w)

	// Engines section
	fmt.Fprintln(w, "PDF engines")
	for _, e := range r.Engines {
		label := e.Name
		if e.Name == r.Engine {
			label += " (selected)"
		}
		if !e.Found {
			level := "[WARN]"
			if e.Name == r.Engine {
				level = "[ERROR]"
			}
			fmt.Fprintf(w, "  %s %s: not found\n", level, label)
			continue
		}
		fmt.Fprintf(w, "  [OK] %s: %s\n", label, e.Path)
		if e.Version != "" {
			fmt.Fprintf(w, "       Version: %s\n", e.Version)
		}
		if e.Sandbox != nil {
			if *e.Sandbox {
				fmt.Fprintln(w, "       Sandbox: enabled")
			} else {
				fmt.Fprintln(w, "       Sandbox: disabled")
			}
		}
	}
	fmt.Fprintln(w)

	// Files section
	fmt.Fprintln(w, "Working directory")
	for _, f := range r.Files {
		switch {
		case !f.Found:
			fmt.Fprintf(w, "  [WARN] %s: not found\n", f.Name)
		case !f.Valid:
			fmt.Fprintf(w, "  [ERROR] %s: invalid\n", f.Name)
		default:
			fmt.Fprintf(w, "  [OK] %s\n", f.Name)
		}
	}
	fmt.Fprintln(w)

	// Environment section
	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	// System section
	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	// Warnings
	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	// Errors
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	// Final status
	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to generate")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cv2pdf [command] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate   Render CV data to HTML and PDF (default)")
	fmt.Fprintln(w, "  init       Write a starter data file, template, and stylesheet")
	fmt.Fprintln(w, "  doctor     Check the PDF engines and input files")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'cv2pdf help <command>' for details on a specific command.")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cv2pdf [generate] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Load CV data, render it through the HTML template, and convert the")
	fmt.Fprintln(w, "result to <output-dir>/<name>.pdf. The intermediate <name>.html is")
	fmt.Fprintln(w, "removed after a successful run unless --keep-html is set.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -i, --input <path>        CV data file (default: cv_data.yaml)")
	fmt.Fprintln(w, "  -o, --output <name>       Output base name (default: cv)")
	fmt.Fprintln(w, "  -d, --output-dir <dir>    PDF directory (default: output)")
	fmt.Fprintln(w, "      --keep-html           Keep the intermediate HTML file")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -t, --template <path>     HTML template (default: cv_template.html)")
	fmt.Fprintln(w, "  -s, --style <path>        Stylesheet (default: style.css)")
	fmt.Fprintln(w, "      --no-style            Disable the stylesheet")
	fmt.Fprintln(w, "  -e, --engine <name>       PDF engine: rod, chromedp, wkhtmltopdf")
	fmt.Fprintln(w, "      --timeout <dur>       PDF generation timeout (default: 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal (default: a4)")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  CV2PDF_INPUT, CV2PDF_OUTPUT, CV2PDF_OUTPUT_DIR, CV2PDF_KEEP_HTML,")
	fmt.Fprintln(w, "  CV2PDF_TEMPLATE, CV2PDF_STYLE, CV2PDF_ENGINE, CV2PDF_TIMEOUT,")
	fmt.Fprintln(w, "  CV2PDF_PAGE_SIZE, CV2PDF_ORIENTATION, CV2PDF_MARGIN, CV2PDF_CONFIG")
	fmt.Fprintln(w, "  Values from a .env file in the working directory are loaded first.")
}

// printInitUsage prints usage for the init command.
func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cv2pdf init [dir] [--force]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write cv_data.yaml, cv_template.html, and style.css into dir")
	fmt.Fprintln(w, "(default: current directory).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -f, --force               Overwrite existing files")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cv2pdf doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that each PDF engine can run and that the default input,")
	fmt.Fprintln(w, "template, and stylesheet are present.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --json                Machine-readable output")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "generate":
		printGenerateUsage(env.Stdout)
	case "init":
		printInitUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: cv2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: cv2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}

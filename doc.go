// Package cv2pdf renders a CV described in YAML into HTML through a template,
// then prints that HTML to PDF with a headless browser or wkhtmltopdf.
//
// # Quick Start
//
// Create a generator, run it once, and close it when done:
//
//	gen, err := cv2pdf.NewGenerator()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gen.Close()
//
//	result, err := gen.Generate(ctx, cv2pdf.Request{
//	    InputPath:  "cv_data.yaml",
//	    OutputName: "cv",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.PDFPath, result.PDFSize)
//
// # Pipeline
//
// Generate runs three stages strictly in order and stops at the first failure:
//
//  1. Load: the input file is parsed into a Data mapping (ErrInputNotFound,
//     ErrInputMalformed).
//  2. Render: the template is parsed, executed with the data and written to
//     <name>.html (ErrTemplateUnavailable).
//  3. Convert: the stylesheet is injected into a copy of the HTML, the PDF
//     engine prints it, and the result is written to <output-dir>/<name>.pdf
//     (ErrConversionFailed).
//
// Files written by a stage are never removed when a later stage fails.
//
// # Templates
//
// Templates use html/template syntax. The CV data is the root value, so a
// top-level key "name" is available as {{ .name }}. Extra functions:
//
//	markdown TEXT          block Markdown (GFM, highlighted code)
//	markdownInline TEXT    Markdown without the wrapping paragraph
//	date FORMAT VALUE      format YYYY, YYYY-MM, YYYY-MM-DD or "auto" values
//	default FALLBACK VALUE FALLBACK when VALUE is empty
//	join SEP LIST          join list items with SEP
//	lower, upper, trim     string helpers
//
// # Engines
//
// Three engines are available: "rod" (default) and "chromedp" drive
// Chrome/Chromium, "wkhtmltopdf" runs the external binary. The rod engine
// downloads a managed Chromium on first run when none is installed.
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package cv2pdf

// Package pipeline implements the HTML stages between the rendered template
// and the PDF engine.
//
//   - Markdown fragments inside CV data are converted via Goldmark, with
//     fenced code highlighted by Chroma using CSS classes.
//   - The rendered document is prepared for conversion: the stylesheet is
//     injected as a <style> block and a <base> element anchors relative
//     resources to the template directory.
//
// PDF generation is handled separately by the root cv2pdf package. The
// intermediate HTML file written to disk is the raw template output; only
// the copy handed to the engine is prepared here.
package pipeline

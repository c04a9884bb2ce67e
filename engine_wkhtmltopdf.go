package cv2pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// wkhtmltopdfRenderer implements pdfRenderer by running the wkhtmltopdf
// executable. Each conversion is a separate process.
type wkhtmltopdfRenderer struct {
	lookup func() (string, error)
}

func newWkhtmltopdfRenderer() *wkhtmltopdfRenderer {
	return &wkhtmltopdfRenderer{lookup: lookupWkhtmltopdf}
}

// RenderFromFile converts the file into a temporary PDF and returns its bytes.
func (r *wkhtmltopdfRenderer) RenderFromFile(ctx context.Context, filePath string, page *PageSettings) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bin, err := r.lookup()
	if err != nil {
		return nil, err
	}

	out, err := os.CreateTemp("", "cv2pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	outPath := out.Name()
	_ = out.Close()
	defer func() { _ = os.Remove(outPath) }()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, wkhtmltopdfArgs(filePath, outPath, page)...) // #nosec G204 -- binary resolved from PATH or WKHTMLTOPDF_BIN
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %v: %s", ErrPDFGeneration, err, msg)
		}
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := os.ReadFile(outPath) // #nosec G304 -- temp file created above
	if err != nil {
		return nil, fmt.Errorf("%w: reading output: %v", ErrPDFGeneration, err)
	}
	if len(pdfBuf) == 0 {
		return nil, fmt.Errorf("%w: wkhtmltopdf produced an empty file", ErrPDFGeneration)
	}
	return pdfBuf, nil
}

// Close is a no-op: no process outlives a conversion.
func (r *wkhtmltopdfRenderer) Close() error {
	return nil
}

// wkhtmltopdfArgs builds the command line for one conversion. Page sizes
// are passed as explicit dimensions so landscape needs no extra flag.
func wkhtmltopdfArgs(input, output string, page *PageSettings) []string {
	width, height := page.Dimensions()
	margin := inches(page.margin())

	return []string{
		"--quiet",
		"--encoding", "utf-8",
		"--enable-local-file-access",
		"--page-width", inches(width),
		"--page-height", inches(height),
		"--margin-top", margin,
		"--margin-bottom", margin,
		"--margin-left", margin,
		"--margin-right", margin,
		input,
		output,
	}
}

// inches formats a length for wkhtmltopdf, e.g. "8.27in".
func inches(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "in"
}

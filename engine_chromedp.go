package cv2pdf

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// chromedpRenderer implements pdfRenderer with chromedp. The browser is
// started on first use and reused until Close.
type chromedpRenderer struct {
	timeout       time.Duration
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

func newChromedpRenderer(timeout time.Duration) *chromedpRenderer {
	return &chromedpRenderer{timeout: timeout}
}

// ensureBrowser starts the browser eagerly so connection errors surface
// before navigation.
func (r *chromedpRenderer) ensureBrowser() error {
	if r.browserCtx != nil {
		return nil
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("no-first-run", true),
	)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(bin))
	}
	if BrowserSandboxDisabled() {
		allocOpts = append(allocOpts, chromedp.NoSandbox)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.allocCancel = allocCancel
	r.browserCtx = browserCtx
	r.browserCancel = browserCancel
	return nil
}

// Close stops the browser. It is safe to call more than once.
func (r *chromedpRenderer) Close() error {
	if r.browserCancel != nil {
		r.browserCancel()
		r.allocCancel()
		r.browserCtx = nil
		r.browserCancel = nil
		r.allocCancel = nil
	}
	return nil
}

// RenderFromFile navigates a new tab to the file and prints it.
func (r *chromedpRenderer) RenderFromFile(ctx context.Context, filePath string, pg *PageSettings) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target, err := fileURL(filePath)
	if err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	if _, ok := ctx.Deadline(); !ok && r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	tabCtx, tabCancel := chromedp.NewContext(r.browserCtx)
	defer tabCancel()
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	if err := chromedp.Run(tabCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	width, height := pg.Dimensions()
	margin := pg.margin()

	var buf []byte
	if err := chromedp.Run(tabCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		buf, _, err = page.PrintToPDF().
			WithPaperWidth(width).
			WithPaperHeight(height).
			WithMarginTop(margin).
			WithMarginRight(margin).
			WithMarginBottom(margin).
			WithMarginLeft(margin).
			WithPrintBackground(true).
			Do(ctx)
		return err
	})); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	return buf, nil
}

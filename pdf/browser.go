package pdf

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// Browser prints a fully loaded page to PDF bytes. The production
// implementation drives headless Chrome; tests substitute a fake to assert
// the orchestrator's preflight behavior.
type Browser interface {
	PrintToPDF(ctx context.Context, url string) ([]byte, error)
}

// Give the page a beat to finish client work after fonts and images settle.
const settleDelay = 200 * time.Millisecond

// A4 in inches, for the CDP print call. The page's own CSS carries all
// margins, so the PDF-level margins stay at zero to avoid doubling them.
const (
	paperWidthIn  = 8.27
	paperHeightIn = 11.69
)

// Chromium drives a headless Chrome/Chromium instance per print. Each call
// launches, prints and releases the browser; release is guaranteed through
// the context cancels even when printing fails.
type Chromium struct{}

func (Chromium) PrintToPDF(ctx context.Context, url string) ([]byte, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var buf []byte
	err := chromedp.Run(browserCtx,
		emulation.SetEmulatedMedia().WithMedia("print"),
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(
			`document.fonts ? document.fonts.ready.then(() => true) : true`,
			nil, awaitPromise,
		),
		chromedp.Evaluate(
			`Promise.all(Array.from(document.images).map((img) => img.decode ? img.decode().catch(() => null) : null)).then(() => true)`,
			nil, awaitPromise,
		),
		chromedp.Sleep(settleDelay),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(paperWidthIn).
				WithPaperHeight(paperHeightIn).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			if err != nil {
				return err
			}
			buf = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}

// isBrowserMissing reports whether the error means no Chrome/Chromium binary
// could be found, which callers surface as an actionable installation
// message rather than a generic render failure.
func isBrowserMissing(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "executable file not found")
}

package report

import (
	"carbonaudit/pkg/browser"
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ChromePDFRenderer prints HTML documents to PDF in a dedicated headless
// browser per call.
type ChromePDFRenderer struct {
	launcher browser.Launcher
	timeout  time.Duration
}

var _ PDFRenderer = (*ChromePDFRenderer)(nil)

// NewChromePDFRenderer returns a ChromePDFRenderer.
func NewChromePDFRenderer(launcher browser.Launcher, timeout time.Duration) *ChromePDFRenderer {
	return &ChromePDFRenderer{launcher: launcher, timeout: timeout}
}

// RenderPDF loads html into a blank page and prints it with backgrounds.
func (r *ChromePDFRenderer) RenderPDF(ctx context.Context, html []byte) ([]byte, error) {
	return browser.Use(ctx, r.launcher, r.timeout, func(_ context.Context, s browser.Session) ([]byte, error) {
		var pdf []byte
		err := chromedp.Run(s.Context(),
			chromedp.Navigate("about:blank"),
			chromedp.ActionFunc(func(ctx context.Context) error {
				tree, err := page.GetFrameTree().Do(ctx)
				if err != nil {
					return err //nolint: wrapcheck
				}

				return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx) //nolint: wrapcheck
			}),
			chromedp.ActionFunc(func(ctx context.Context) error {
				var err error
				pdf, _, err = page.PrintToPDF().WithPrintBackground(true).Do(ctx)

				return err //nolint: wrapcheck
			}),
		)
		if err != nil {
			return nil, fmt.Errorf("could not print pdf: %w", err)
		}

		return pdf, nil
	})
}

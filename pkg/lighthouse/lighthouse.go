// Package lighthouse runs multi-category Lighthouse audits inside a scoped
// headless browser and extracts normalised metrics from the report.
package lighthouse

import (
	"carbonaudit/pkg/browser"
	"carbonaudit/pkg/domain"
	"carbonaudit/pkg/logger"
	"carbonaudit/pkg/serrors"
	"context"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds one audit including browser start-up.
const DefaultTimeout = 2 * time.Minute

// ErrAuditFailed is the error kind returned for any failed performance audit.
var ErrAuditFailed = serrors.NewKind("AUDIT_FAILED") //nolint: gochecknoglobals

func init() { //nolint: gochecknoinits
	serrors.RegisterStatus(ErrAuditFailed, http.StatusBadGateway)
}

// Result is the outcome of a performance audit.
type Result struct {
	Metrics domain.Lighthouse
	// Raw is the full JSON report.
	Raw []byte
	// HTML is the renderable report.
	HTML []byte
}

// Auditor runs a performance audit for an already validated URL.
//
//go:generate mockgen -package mocklighthouse -source=lighthouse.go -destination=mock/mocklighthouse.go *
type Auditor interface {
	Audit(ctx context.Context, target *url.URL) (*Result, error)
}

// BrowserAuditor launches a dedicated browser per Audit call and runs
// Lighthouse against it.
type BrowserAuditor struct {
	launcher browser.Launcher
	runner   Runner
	timeout  time.Duration
}

var _ Auditor = (*BrowserAuditor)(nil)

// NewBrowserAuditor returns a BrowserAuditor. A non-positive timeout selects DefaultTimeout.
func NewBrowserAuditor(launcher browser.Launcher, runner Runner, timeout time.Duration) *BrowserAuditor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &BrowserAuditor{launcher: launcher, runner: runner, timeout: timeout}
}

// Audit implements Auditor. The browser is released before any error is
// returned; every error carries ErrAuditFailed.
func (a *BrowserAuditor) Audit(ctx context.Context, target *url.URL) (*Result, error) {
	started := time.Now()

	res, err := browser.Use(ctx, a.launcher, a.timeout, func(ctx context.Context, s browser.Session) (*Result, error) {
		out, err := a.runner.Run(ctx, target.String(), s.Port())
		if err != nil {
			return nil, err
		}

		metrics, err := ParseReport(out.JSON)
		if err != nil {
			return nil, err
		}

		return &Result{Metrics: metrics, Raw: out.JSON, HTML: out.HTML}, nil
	})
	if err != nil {
		return nil, serrors.Wrap(ErrAuditFailed, err, "performance audit failed")
	}

	logger.Get(ctx).Debug("performance audit finished",
		zap.String("url", target.String()),
		zap.Duration("took", time.Since(started)),
		zap.Float64("performance", res.Metrics.Performance))

	return res, nil
}

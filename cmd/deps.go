package main

import (
	"carbonaudit/internal/auditor"
	"carbonaudit/internal/config"
	"carbonaudit/pkg/browser"
	"carbonaudit/pkg/carbon"
	"carbonaudit/pkg/carbon/greencheck"
	"carbonaudit/pkg/carbon/websitecarbon"
	"carbonaudit/pkg/lighthouse"
	"carbonaudit/pkg/logger"
	"carbonaudit/pkg/metrics"
	"carbonaudit/pkg/report"
	"carbonaudit/pkg/storage"
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// app groups the collaborators shared by the serve and audit commands.
type app struct {
	auditor       auditor.Auditor
	reports       afero.Fs
	meterProvider metric.MeterProvider
}

// setupAuditor builds the carbon estimator, the lighthouse auditor and the
// report materializer from cfg and joins them behind an auditor.Auditor.
func setupAuditor(ctx context.Context, cfg *config.Config, strg storage.Storage) app {
	httpClient := &http.Client{}

	green := greencheck.New(httpClient, cfg.Carbon.GreenCheckURL)
	estimator := carbon.NewStrategy(
		carbon.NewPageEstimator(httpClient, green, carbon.PageOptions{
			UserAgent:         cfg.Carbon.UserAgent,
			FetchTimeout:      cfg.Carbon.FetchTimeout,
			MaxBodyBytes:      cfg.Carbon.MaxBodyBytes,
			GreenCheckTimeout: cfg.Carbon.GreenCheckTimeout,
		}),
		websitecarbon.New(httpClient, cfg.Carbon.FallbackURL, cfg.Carbon.FallbackTimeout),
	)

	fs := afero.NewOsFs()
	launcher := browser.NewChromeLauncher(browser.ChromeOptions{ExecPath: cfg.Lighthouse.ChromePath})
	runner := lighthouse.NewCLIRunner(cfg.Lighthouse.Binary, lighthouse.Throttling{
		RTTMs:                 cfg.Lighthouse.RTTMs,
		ThroughputKbps:        cfg.Lighthouse.ThroughputKbps,
		CPUSlowdownMultiplier: cfg.Lighthouse.CPUSlowdownMultiplier,
	}, fs)

	reportOpts := report.Options{
		Dir:        cfg.Reports.Dir,
		PublicPath: cfg.Reports.PublicPath,
	}
	if cfg.Reports.PDF {
		reportOpts.PDF = report.NewChromePDFRenderer(launcher, cfg.Lighthouse.Timeout)
	}

	mp, err := metrics.NewMeterProvider(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal(ctx, "could not create meter provider", zap.Error(err))
	}

	opts := auditor.NewOptions(cfg)
	opts.MeterProvider = mp

	a, err := auditor.New(auditor.Deps{
		Storage:    strg,
		Carbon:     estimator,
		Lighthouse: lighthouse.NewBrowserAuditor(launcher, runner, cfg.Lighthouse.Timeout),
		Reports:    report.NewFileMaterializer(fs, reportOpts),
	}, opts)
	if err != nil {
		logger.Fatal(ctx, "could not create auditor", zap.Error(err))
	}

	return app{auditor: a, reports: fs, meterProvider: mp}
}

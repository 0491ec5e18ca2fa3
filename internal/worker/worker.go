// Package worker runs queued audits on River.
package worker

import (
	"carbonaudit/internal/auditor"
	"carbonaudit/internal/config"
	"carbonaudit/pkg/logger"
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
)

// Options configure the River client.
type Options struct {
	// MaxWorkers bounds how many audits run at the same time.
	MaxWorkers int
	// JobTimeout bounds a single audit job.
	JobTimeout time.Duration
}

// NewOptions constructs an Options value from the provided application config.
// The job timeout leaves room for the carbon branch and report writing on top
// of the browser audit.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxWorkers: cfg.Worker.MaxWorkers,
		JobTimeout: cfg.Lighthouse.Timeout + time.Minute,
	}
}

// Start creates and starts a River client that executes queued audits.
func Start(ctx context.Context, dbPool *pgxpool.Pool, a auditor.Auditor, opts Options) (*river.Client[pgx.Tx], error) {
	if opts.MaxWorkers <= 0 {
		opts.MaxWorkers = 1
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewAuditWorker(a, opts.JobTimeout))

	riverClient, err := river.NewClient(riverpgxv5.New(dbPool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: opts.MaxWorkers},
		},
		Workers: workers,
		Logger:  logger.Slog(ctx),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	if err := riverClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("could not start river queue client: %w", err)
	}

	return riverClient, nil
}

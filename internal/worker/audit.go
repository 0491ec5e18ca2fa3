package worker

import (
	"carbonaudit/internal/auditor"
	"carbonaudit/pkg/logger"
	"carbonaudit/pkg/serrors"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// AuditWorker is a River worker that runs the audit pipeline for a record
// created by auditor.Enqueue.
//
// Error handling: a record that is already terminal or missing cancels the
// job. A pipeline failure that was written to the record completes the job,
// since re-running it would only repeat the failure. Persistence errors are
// returned so that River retries the job against the same pending record.
type AuditWorker struct {
	river.WorkerDefaults[auditor.JobArgs]

	auditor auditor.Auditor
	timeout time.Duration
}

// NewAuditWorker constructs an AuditWorker. A non-positive timeout keeps
// River's default job timeout.
func NewAuditWorker(a auditor.Auditor, timeout time.Duration) *AuditWorker {
	return &AuditWorker{auditor: a, timeout: timeout}
}

// Timeout implements river.Worker.
func (w *AuditWorker) Timeout(*river.Job[auditor.JobArgs]) time.Duration {
	return w.timeout
}

// Work implements river.Worker.
func (w *AuditWorker) Work(ctx context.Context, job *river.Job[auditor.JobArgs]) error {
	ctx = logger.WithFields(ctx,
		zap.Int64("jobID", job.ID),
		zap.Int("attempt", job.Attempt),
		zap.String("auditID", job.Args.AuditID.String()))

	res, err := w.auditor.Run(ctx, job.Args.AuditID)
	if err != nil {
		if errors.Is(err, serrors.ErrConflict) || errors.Is(err, serrors.ErrNotFound) {
			logger.Warn(ctx, "skipping audit job", zap.Error(err))

			return river.JobCancel(err) //nolint: wrapcheck
		}

		var auditErr *auditor.Error
		if errors.As(err, &auditErr) && !errors.Is(err, serrors.ErrUnavailable) {
			logger.Info(ctx, "audit job finished with a failed audit", zap.Error(err))

			return nil
		}

		logger.Error(ctx, "error in running audit", zap.Error(err))

		return fmt.Errorf("could not run audit: %w", err)
	}

	logger.Info(ctx, "audit job completed", zap.Int64("duration", res.Record.Duration))

	return nil
}

// Package auditor runs end-to-end audits of a URL. It owns the record
// lifecycle: a pending record is persisted before any slow work starts, the
// carbon estimate and the performance audit run concurrently, and the record
// is moved to completed or failed once both settle. No other package writes
// terminal state.
package auditor

import (
	"carbonaudit/internal/config"
	"carbonaudit/pkg/carbon"
	"carbonaudit/pkg/domain"
	"carbonaudit/pkg/lighthouse"
	"carbonaudit/pkg/logger"
	"carbonaudit/pkg/metrics"
	"carbonaudit/pkg/report"
	"carbonaudit/pkg/serrors"
	"carbonaudit/pkg/storage"
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const instrumentationName = "carbonaudit/internal/auditor"

// Options configure job enqueueing and instrumentation.
type Options struct {
	// MaxAttempts is the maximum number of attempts the background worker
	// makes for a queued audit.
	MaxAttempts int
	// MeterProvider defaults to the global provider.
	MeterProvider metric.MeterProvider
	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider
	// Now defaults to time.Now.
	Now func() time.Time
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxAttempts: cfg.Worker.MaxAttempts,
	}
}

// Deps are the collaborators of the pipeline.
type Deps struct {
	Storage    storage.Storage
	Carbon     carbon.Estimator
	Lighthouse lighthouse.Auditor
	Reports    report.Materializer
}

type auditor struct {
	deps    Deps
	options Options
	tracer  trace.Tracer

	audits   metric.Int64Counter
	duration metric.Float64Histogram
}

// New creates an Auditor backed by deps.
func New(deps Deps, options Options) (Auditor, error) {
	if options.MeterProvider == nil {
		options.MeterProvider = otel.GetMeterProvider()
	}
	if options.TracerProvider == nil {
		options.TracerProvider = otel.GetTracerProvider()
	}
	if options.Now == nil {
		options.Now = time.Now
	}

	meter := options.MeterProvider.Meter(instrumentationName)
	audits, err := meter.Int64Counter("audits_total",
		metric.WithDescription("Number of audits that reached a terminal state."))
	if err != nil {
		return nil, fmt.Errorf("could not create audits counter: %w", err)
	}
	duration, err := meter.Float64Histogram("audit_duration_seconds",
		metric.WithDescription("Time from record creation to terminal state."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(metrics.AuditBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create audit duration histogram: %w", err)
	}

	return &auditor{
		deps:     deps,
		options:  options,
		tracer:   options.TracerProvider.Tracer(instrumentationName),
		audits:   audits,
		duration: duration,
	}, nil
}

func validate(raw string) error {
	if _, err := domain.ParseAuditURL(raw); err != nil {
		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid URL")
	}

	return nil
}

// create persists the URL exactly as submitted. The parsed form is only
// used to dispatch the collaborators.
func (a *auditor) create(ctx context.Context, st storage.AuditStorage, req Request) (*domain.AuditRecord, error) {
	rec, err := st.CreateAudit(ctx, req.URL, domain.DomainFromURL(req.URL), storage.Provenance{
		RequesterID: req.RequesterID,
		IPAddress:   req.IPAddress,
	})
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "could not persist audit")
	}

	return rec, nil
}

// Audit implements Auditor.
func (a *auditor) Audit(ctx context.Context, req Request) (*Result, error) {
	if err := validate(req.URL); err != nil {
		return nil, err
	}

	rec, err := a.create(ctx, a.deps.Storage, req)
	if err != nil {
		return nil, err
	}

	return a.process(ctx, rec)
}

// Enqueue implements Auditor. The record and the job are written in the same
// transaction so that a queued audit always has a record and vice versa.
func (a *auditor) Enqueue(ctx context.Context, req Request) (*domain.AuditRecord, error) {
	if err := validate(req.URL); err != nil {
		return nil, err
	}

	var rec *domain.AuditRecord
	if err := a.deps.Storage.WithTx(ctx, func(tx storage.AllStorage) error {
		var err error
		rec, err = a.create(ctx, tx, req)
		if err != nil {
			return err
		}

		if _, err := tx.AddJob(ctx, JobArgs{AuditID: rec.ID, maxAttempts: a.options.MaxAttempts}, nil); err != nil {
			if errors.Is(err, storage.ErrJobsUnsupported) {
				return serrors.Wrap(serrors.ErrBadRequest, err, "async audits are not available")
			}

			return serrors.Wrap(serrors.ErrUnavailable, err, "could not enqueue audit")
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("could not enqueue URL: %w", err)
	}

	logger.Info(ctx, "audit enqueued", zap.String("auditID", rec.ID.String()), zap.String("url", rec.URL))

	return rec, nil
}

// Run implements Auditor.
func (a *auditor) Run(ctx context.Context, id domain.AuditID) (*Result, error) {
	rec, err := a.record(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Status.Terminal() {
		return nil, serrors.With(serrors.ErrConflict, "audit is already %s", rec.Status)
	}

	return a.process(ctx, rec)
}

// process runs both branches and writes the terminal state. Terminal writes
// use a context detached from ctx so that a cancelled request still leaves a
// terminal record behind.
func (a *auditor) process(ctx context.Context, rec *domain.AuditRecord) (*Result, error) {
	ctx = logger.WithFields(ctx, zap.String("auditID", rec.ID.String()), zap.String("url", rec.URL))
	ctx, span := a.tracer.Start(ctx, "audit", trace.WithAttributes(
		attribute.String("audit.id", rec.ID.String()),
		attribute.String("audit.domain", rec.Domain),
	))
	defer span.End()

	target, err := domain.ParseAuditURL(rec.URL)
	if err != nil {
		return nil, a.fail(ctx, span, rec, serrors.Wrap(serrors.ErrBadRequest, err, "invalid URL"))
	}

	logger.Info(ctx, "audit started")

	var (
		co   *domain.Carbon
		perf *lighthouse.Result
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ctx, span := a.tracer.Start(gctx, "audit.carbon")
		defer span.End()

		res, err := a.deps.Carbon.Estimate(ctx, target)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())

			return err //nolint: wrapcheck
		}
		co = res

		return nil
	})
	g.Go(func() error {
		ctx, span := a.tracer.Start(gctx, "audit.lighthouse")
		defer span.End()

		res, err := a.deps.Lighthouse.Audit(ctx, target)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())

			return err //nolint: wrapcheck
		}
		perf = res

		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, a.fail(ctx, span, rec, err)
	}
	if co == nil || perf == nil {
		return nil, a.fail(ctx, span, rec, domain.ErrIncomplete)
	}

	reports, err := a.deps.Reports.Materialize(ctx, rec.URL, co, perf)
	if err != nil {
		return nil, a.fail(ctx, span, rec, fmt.Errorf("could not materialize reports: %w", err))
	}

	if err := rec.Complete(co, &perf.Metrics, reports, a.options.Now()); err != nil {
		return nil, a.fail(ctx, span, rec, err)
	}
	if err := a.deps.Storage.SaveAudit(context.WithoutCancel(ctx), rec); err != nil {
		span.SetStatus(codes.Error, err.Error())
		logger.Error(ctx, "could not persist completed audit", zap.Error(err))

		return nil, &Error{ID: rec.ID, Err: serrors.Wrap(serrors.ErrUnavailable, err, "could not persist audit")}
	}

	a.observe(ctx, rec)
	logger.Info(ctx, "audit completed",
		zap.Int64("duration", rec.Duration),
		zap.Float64("performance", rec.Lighthouse.Performance),
		zap.Float64("co2", rec.Carbon.CO2PerPageview))

	return a.result(ctx, rec), nil
}

// fail moves rec to failed with cause as its error and persists it.
func (a *auditor) fail(ctx context.Context, span trace.Span, rec *domain.AuditRecord, cause error) error {
	span.SetStatus(codes.Error, cause.Error())
	logger.Error(ctx, "audit failed", zap.Error(cause))

	if err := rec.Fail(cause.Error(), a.options.Now()); err != nil {
		return &Error{ID: rec.ID, Err: errors.Join(cause, err)}
	}
	if err := a.deps.Storage.SaveAudit(context.WithoutCancel(ctx), rec); err != nil {
		logger.Error(ctx, "could not persist failed audit", zap.Error(err))

		return &Error{ID: rec.ID, Err: serrors.Wrap(serrors.ErrUnavailable, err, "could not persist failed audit: %s", cause)}
	}

	a.observe(ctx, rec)

	return &Error{ID: rec.ID, Err: cause}
}

func (a *auditor) observe(ctx context.Context, rec *domain.AuditRecord) {
	status := metric.WithAttributes(attribute.String("status", string(rec.Status)))
	a.audits.Add(ctx, 1, status)
	a.duration.Record(ctx, float64(rec.Duration)/1000, status)
}

// result derives comparison and grades. A failing aggregate query only drops
// the comparison.
func (a *auditor) result(ctx context.Context, rec *domain.AuditRecord) *Result {
	res := &Result{Record: rec, Grades: rec.Grades()}

	cmp, err := storage.CompareToAverage(ctx, a.deps.Storage, rec)
	if err != nil {
		logger.Warn(ctx, "could not compare audit to average", zap.Error(err))

		return res
	}
	res.Comparison = cmp

	return res
}

func (a *auditor) record(ctx context.Context, id domain.AuditID) (*domain.AuditRecord, error) {
	rec, err := a.deps.Storage.AuditByID(ctx, id)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "could not get audit")
	}
	if rec == nil {
		return nil, serrors.With(serrors.ErrNotFound, "audit not found")
	}

	return rec, nil
}

// Get implements Auditor.
func (a *auditor) Get(ctx context.Context, id domain.AuditID) (*Result, error) {
	rec, err := a.record(ctx, id)
	if err != nil {
		return nil, err
	}

	return a.result(ctx, rec), nil
}

// DomainHistory implements Auditor. host is matched after the same
// normalization applied when records are created.
func (a *auditor) DomainHistory(ctx context.Context, host string, limit uint) ([]domain.AuditRecord, error) {
	host = domain.DomainFromURL("http://" + host)
	if host == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "invalid domain")
	}

	res, err := a.deps.Storage.DomainHistory(ctx, host, limit)
	if err != nil {
		return nil, fmt.Errorf("could not get domain history: %w", err)
	}

	return res, nil
}

// PerformanceLeaderboard implements Auditor.
func (a *auditor) PerformanceLeaderboard(ctx context.Context, limit uint) ([]domain.AuditRecord, error) {
	res, err := a.deps.Storage.PerformanceLeaderboard(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("could not get performance leaderboard: %w", err)
	}

	return res, nil
}

// GreenLeaderboard implements Auditor.
func (a *auditor) GreenLeaderboard(ctx context.Context, limit uint) ([]domain.AuditRecord, error) {
	res, err := a.deps.Storage.GreenLeaderboard(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("could not get green leaderboard: %w", err)
	}

	return res, nil
}

// Stats implements Auditor.
func (a *auditor) Stats(ctx context.Context) (domain.AuditStats, error) {
	res, err := a.deps.Storage.AuditStats(ctx)
	if err != nil {
		return domain.AuditStats{}, fmt.Errorf("could not get audit stats: %w", err)
	}

	return res, nil
}

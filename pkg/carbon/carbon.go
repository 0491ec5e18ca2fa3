// Package carbon estimates the CO2 footprint of a single page view. The
// Strategy type tries a primary method first and a fallback method second,
// tagging the result with the method that produced it.
package carbon

import (
	"carbonaudit/pkg/domain"
	"carbonaudit/pkg/logger"
	"carbonaudit/pkg/serrors"
	"context"
	"errors"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

// ErrEstimationFailed is the error kind returned when neither the primary nor
// the fallback method produced an estimate.
var ErrEstimationFailed = serrors.NewKind("ESTIMATION_FAILED") //nolint: gochecknoglobals

func init() { //nolint: gochecknoinits
	serrors.RegisterStatus(ErrEstimationFailed, http.StatusBadGateway)
}

// Estimator produces a carbon estimate for an already validated URL.
//
//go:generate mockgen -package mockcarbon -source=carbon.go -destination=mock/mockcarbon.go *
type Estimator interface {
	Estimate(ctx context.Context, target *url.URL) (*domain.Carbon, error)
}

// Strategy is an Estimator that runs Primary and, only when it fails, Fallback.
type Strategy struct {
	Primary  Estimator
	Fallback Estimator
}

var _ Estimator = (*Strategy)(nil)

// NewStrategy returns a two-step Strategy.
func NewStrategy(primary, fallback Estimator) *Strategy {
	return &Strategy{Primary: primary, Fallback: fallback}
}

// Estimate runs the primary method and falls back on error. When both fail
// the returned error carries ErrEstimationFailed and both causes.
func (s *Strategy) Estimate(ctx context.Context, target *url.URL) (*domain.Carbon, error) {
	res, primaryErr := s.Primary.Estimate(ctx, target)
	if primaryErr == nil {
		res.Method = domain.CarbonMethodPrimary

		return res, nil
	}

	logger.Get(ctx).Warn("primary carbon estimation failed, using fallback",
		zap.String("url", target.String()),
		zap.Error(primaryErr))

	if s.Fallback == nil {
		return nil, serrors.Wrap(ErrEstimationFailed, primaryErr, "carbon estimation failed")
	}

	res, fallbackErr := s.Fallback.Estimate(ctx, target)
	if fallbackErr != nil {
		return nil, serrors.Wrap(ErrEstimationFailed,
			errors.Join(primaryErr, fallbackErr),
			"carbon estimation failed")
	}
	res.Method = domain.CarbonMethodFallback

	return res, nil
}

package carbon

import (
	"carbonaudit/pkg/domain"
	"carbonaudit/pkg/logger"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultUserAgent is sent with every page fetch.
	DefaultUserAgent = "Mozilla/5.0 (compatible; CarbonAuditBot/1.0; +https://carbonaudit.example/bot)"
	// DefaultFetchTimeout bounds the page fetch.
	DefaultFetchTimeout = 30 * time.Second
	// DefaultMaxBodyBytes caps the size of fetched pages.
	DefaultMaxBodyBytes = 50 << 20
	// DefaultGreenCheckTimeout bounds the green-hosting lookup.
	DefaultGreenCheckTimeout = 5 * time.Second
)

// acceptEncoding is what a browser would negotiate.
const acceptEncoding = "gzip, deflate, br"

var (
	// ErrBodyTooLarge is returned when the page exceeds the configured size cap.
	ErrBodyTooLarge = errors.New("response body exceeds size limit")
	// ErrUnexpectedStatus is returned for non-2xx page responses.
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// GreenChecker reports whether a host runs on renewable energy.
type GreenChecker interface {
	IsGreen(ctx context.Context, host string) (bool, error)
}

// PageOptions configures a PageEstimator.
type PageOptions struct {
	UserAgent         string
	FetchTimeout      time.Duration
	MaxBodyBytes      int64
	GreenCheckTimeout time.Duration
}

// PageEstimator fetches the page itself and applies the per-byte emissions
// model. The green-hosting lookup runs concurrently with the fetch and any
// failure there degrades to green=false.
type PageEstimator struct {
	httpClient *http.Client
	green      GreenChecker
	opts       PageOptions
}

var _ Estimator = (*PageEstimator)(nil)

// NewPageEstimator returns a PageEstimator. Zero option fields take defaults.
func NewPageEstimator(httpClient *http.Client, green GreenChecker, opts PageOptions) *PageEstimator {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.GreenCheckTimeout <= 0 {
		opts.GreenCheckTimeout = DefaultGreenCheckTimeout
	}

	return &PageEstimator{httpClient: httpClient, green: green, opts: opts}
}

// Estimate implements Estimator.
func (p *PageEstimator) Estimate(ctx context.Context, target *url.URL) (*domain.Carbon, error) {
	greenCh := make(chan bool, 1)
	go func() {
		greenCh <- p.isGreen(ctx, target.Hostname())
	}()

	size, err := p.transferSize(ctx, target)
	if err != nil {
		return nil, err
	}
	green := <-greenCh

	co2 := EmissionsPerByte(size, green)

	return &domain.Carbon{
		CO2PerPageview: co2,
		Green:          green,
		CleanerThan:    CleanerThan(co2),
		TransferSize:   size,
	}, nil
}

func (p *PageEstimator) isGreen(ctx context.Context, host string) bool {
	if p.green == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, p.opts.GreenCheckTimeout)
	defer cancel()

	green, err := p.green.IsGreen(ctx, host)
	if err != nil {
		logger.Get(ctx).Debug("green hosting check failed", zap.String("host", host), zap.Error(err))

		return false
	}

	return green
}

// transferSize fetches the page and returns its size on the wire, taken from
// Content-Length when the server sends one and from the body otherwise.
// Accept-Encoding is set explicitly so the transport does not decompress the
// body and drop Content-Length; the bytes counted are the compressed ones.
func (p *PageEstimator) transferSize(ctx context.Context, target *url.URL) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, p.opts.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("User-Agent", p.opts.UserAgent)
	req.Header.Set("Accept-Encoding", acceptEncoding)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("could not fetch page: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	if resp.ContentLength > p.opts.MaxBodyBytes {
		return 0, fmt.Errorf("%w: %d bytes", ErrBodyTooLarge, resp.ContentLength)
	}
	if resp.ContentLength > 0 {
		return resp.ContentLength, nil
	}

	n, err := io.Copy(io.Discard, io.LimitReader(resp.Body, p.opts.MaxBodyBytes+1))
	if err != nil {
		return 0, fmt.Errorf("could not read page body: %w", err)
	}
	if n > p.opts.MaxBodyBytes {
		return 0, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, p.opts.MaxBodyBytes)
	}

	return n, nil
}

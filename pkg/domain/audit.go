package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// AuditID uniquely identifies an audit record.
// It wraps uuid.UUID to provide type safety at the domain layer.
type AuditID uuid.UUID

// String returns the canonical textual form of the ID.
func (id AuditID) String() string { return uuid.UUID(id).String() }

// MarshalText implements encoding.TextMarshaler so IDs serialise as UUID strings.
func (id AuditID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *AuditID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// ParseAuditID parses a textual UUID into an AuditID.
func ParseAuditID(s string) (AuditID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return AuditID{}, err //nolint: wrapcheck
	}

	return AuditID(id), nil
}

// AuditStatus represents the lifecycle state of an audit.
type AuditStatus string

const (
	// AuditStatusPending indicates the record was persisted and the audit is still running.
	AuditStatusPending AuditStatus = "pending"
	// AuditStatusCompleted indicates both carbon and performance results are available.
	AuditStatusCompleted AuditStatus = "completed"
	// AuditStatusFailed indicates the audit ended with an error; see Error.
	AuditStatusFailed AuditStatus = "failed"
)

// Terminal reports whether the status can no longer change.
func (s AuditStatus) Terminal() bool {
	return s == AuditStatusCompleted || s == AuditStatusFailed
}

// CarbonMethod names the estimation strategy that produced a Carbon result.
type CarbonMethod string

const (
	CarbonMethodPrimary  CarbonMethod = "primary"
	CarbonMethodFallback CarbonMethod = "fallback"
)

// Carbon is the estimated CO2 footprint of a single page view.
type Carbon struct {
	// CO2PerPageview is the estimated grams of CO2e emitted per page load.
	CO2PerPageview float64 `json:"co2PerPageview"`
	// Green is true when the hosting provider is registered as running on renewable energy.
	Green bool `json:"green"`
	// CleanerThan is the share of pages this page is cleaner than, in [0,1].
	CleanerThan float64 `json:"cleanerThan"`
	// TransferSize is the number of bytes transferred when loading the page.
	TransferSize int64 `json:"transferSize"`
	// Method is the estimation strategy that produced this result.
	Method CarbonMethod `json:"method"`
}

// Lighthouse holds normalised performance audit metrics. Timing metrics that
// were absent from the underlying report are nil.
type Lighthouse struct {
	Performance   float64 `json:"performance"`
	Accessibility float64 `json:"accessibility"`
	BestPractices float64 `json:"bestPractices"`
	SEO           float64 `json:"seo"`

	// FirstContentfulPaint in seconds.
	FirstContentfulPaint *float64 `json:"firstContentfulPaint"`
	// SpeedIndex in seconds.
	SpeedIndex *float64 `json:"speedIndex"`
	// LargestContentfulPaint in seconds.
	LargestContentfulPaint *float64 `json:"largestContentfulPaint"`
	// TotalBlockingTime in milliseconds.
	TotalBlockingTime *int64 `json:"totalBlockingTime"`
	// CumulativeLayoutShift is unitless.
	CumulativeLayoutShift float64 `json:"cumulativeLayoutShift"`
	// TimeToInteractive in seconds.
	TimeToInteractive *float64 `json:"timeToInteractive"`
	// TotalByteWeight is the total number of bytes transferred.
	TotalByteWeight int64 `json:"totalByteWeight"`
	// RequestCount is the number of network requests issued during page load.
	RequestCount int `json:"requestCount"`
}

// Reports holds web-servable addresses of the materialised audit artifacts.
type Reports struct {
	HTMLPath string `json:"htmlPath"`
	PDFPath  string `json:"pdfPath"`
}

// AuditRecord is one end-to-end evaluation of a single URL's performance
// and carbon footprint.
type AuditRecord struct {
	// ID is assigned by the store at creation.
	ID AuditID `json:"id"`
	// URL is the original input string.
	URL string `json:"url"`
	// Domain is derived from the URL host and used for history queries.
	Domain string `json:"domain,omitempty"`
	// Status is the current lifecycle state.
	Status AuditStatus `json:"status"`

	Carbon     *Carbon     `json:"carbon,omitempty"`
	Lighthouse *Lighthouse `json:"lighthouse,omitempty"`
	Reports    *Reports    `json:"reports,omitempty"`

	// Error is set only when Status is failed.
	Error string `json:"error,omitempty"`
	// Duration is the elapsed time in milliseconds from creation to terminal state.
	Duration int64 `json:"duration"`

	RequesterID string `json:"requesterId,omitempty"`
	IPAddress   string `json:"ipAddress,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var (
	// ErrTerminal is returned when a transition is attempted on a completed or failed record.
	ErrTerminal = errors.New("audit record is already in a terminal state")
	// ErrIncomplete is returned when completing a record without both results.
	ErrIncomplete = errors.New("completed audit requires carbon and lighthouse results")
	// ErrEmptyError is returned when failing a record without an error message.
	ErrEmptyError = errors.New("failed audit requires a non-empty error")
)

// Complete moves a pending record to completed, merging results and setting
// the duration relative to CreatedAt.
func (a *AuditRecord) Complete(carbon *Carbon, lh *Lighthouse, reports *Reports, now time.Time) error {
	if a.Status.Terminal() {
		return ErrTerminal
	}
	if carbon == nil || lh == nil {
		return ErrIncomplete
	}

	c := *carbon
	c.CleanerThan = Clamp01(c.CleanerThan)
	l := *lh
	l.Performance = Clamp01(l.Performance)
	l.Accessibility = Clamp01(l.Accessibility)
	l.BestPractices = Clamp01(l.BestPractices)
	l.SEO = Clamp01(l.SEO)

	a.Carbon = &c
	a.Lighthouse = &l
	a.Reports = reports
	a.Status = AuditStatusCompleted
	a.Error = ""
	a.Duration = a.elapsed(now)

	return nil
}

// Fail moves a pending record to failed with the given error message.
func (a *AuditRecord) Fail(msg string, now time.Time) error {
	if a.Status.Terminal() {
		return ErrTerminal
	}
	if msg == "" {
		return ErrEmptyError
	}

	a.Status = AuditStatusFailed
	a.Error = msg
	a.Duration = a.elapsed(now)

	return nil
}

func (a *AuditRecord) elapsed(now time.Time) int64 {
	if a.CreatedAt.IsZero() {
		return 0
	}
	d := now.Sub(a.CreatedAt).Milliseconds()
	if d < 0 {
		return 0
	}

	return d
}

// Clamp01 restricts v to the closed interval [0,1].
func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

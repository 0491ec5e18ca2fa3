package storage

import (
	"carbonaudit/pkg/domain"
	"context"
	"fmt"
)

// DefaultHistoryLimit is applied to history and leaderboard queries when the
// caller passes a zero limit.
const DefaultHistoryLimit = 10

// Provenance carries optional metadata about who requested an audit.
type Provenance struct {
	RequesterID string
	IPAddress   string
}

// AuditStorage persists audit records and answers the read-side queries.
// Lookups return nil without an error when nothing matches.
type AuditStorage interface {
	// CreateAudit inserts a new pending record for url. The store assigns the
	// id and both timestamps. host may be empty when it could not be derived.
	CreateAudit(ctx context.Context, url, host string, provenance Provenance) (*domain.AuditRecord, error)
	// SaveAudit upserts the record keyed by its id and refreshes UpdatedAt
	// on the passed record.
	SaveAudit(ctx context.Context, record *domain.AuditRecord) error
	// AuditByID returns the record with the given id, or nil.
	AuditByID(ctx context.Context, id domain.AuditID) (*domain.AuditRecord, error)
	// DomainHistory returns up to limit records for host, newest first.
	DomainHistory(ctx context.Context, host string, limit uint) ([]domain.AuditRecord, error)
	// PerformanceLeaderboard returns completed records ordered by descending
	// performance score, oldest first among ties.
	PerformanceLeaderboard(ctx context.Context, limit uint) ([]domain.AuditRecord, error)
	// GreenLeaderboard returns green-hosted records ordered by ascending CO2
	// per page view, oldest first among ties.
	GreenLeaderboard(ctx context.Context, limit uint) ([]domain.AuditRecord, error)
	// AuditStats aggregates every completed record.
	AuditStats(ctx context.Context) (domain.AuditStats, error)
}

// CompareToAverage compares rec against the current aggregate of all completed
// records, the record itself included. It returns nil when there is nothing
// to compare against.
func CompareToAverage(ctx context.Context, st AuditStorage, rec *domain.AuditRecord) (*domain.Comparison, error) {
	if rec == nil || rec.Status != domain.AuditStatusCompleted {
		return nil, nil
	}

	stats, err := st.AuditStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not aggregate audit stats: %w", err)
	}

	return domain.CompareToAverage(rec, stats), nil
}

// Limit returns limit, or DefaultHistoryLimit when limit is zero.
func Limit(limit uint) uint {
	if limit == 0 {
		return DefaultHistoryLimit
	}

	return limit
}

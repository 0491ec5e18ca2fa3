package auditor

import (
	"carbonaudit/pkg/domain"
	"context"
)

// Request is an inbound audit request. Only URL is required.
type Request struct {
	URL         string
	RequesterID string
	IPAddress   string
}

// Result is a record together with the values derived from it at read time.
type Result struct {
	Record *domain.AuditRecord
	// Comparison is nil unless the record is completed.
	Comparison *domain.Comparison
	Grades     domain.Grades
}

//go:generate mockgen -package mockauditor -source=interface.go -destination=mock/mockauditor.go *
type Auditor interface {
	// Audit validates the URL, persists a pending record and runs the whole
	// pipeline before returning. Pipeline failures are returned as *Error.
	Audit(ctx context.Context, req Request) (*Result, error)
	// Enqueue persists a pending record and a background job in one transaction.
	Enqueue(ctx context.Context, req Request) (*domain.AuditRecord, error)
	// Run executes the pipeline for an existing pending record.
	Run(ctx context.Context, id domain.AuditID) (*Result, error)
	// Get returns a record with its comparison and grades.
	Get(ctx context.Context, id domain.AuditID) (*Result, error)
	DomainHistory(ctx context.Context, host string, limit uint) ([]domain.AuditRecord, error)
	PerformanceLeaderboard(ctx context.Context, limit uint) ([]domain.AuditRecord, error)
	GreenLeaderboard(ctx context.Context, limit uint) ([]domain.AuditRecord, error)
	Stats(ctx context.Context) (domain.AuditStats, error)
}

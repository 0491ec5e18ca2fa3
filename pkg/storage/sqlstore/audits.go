package sqlstore

import (
	"carbonaudit/pkg/domain"
	"carbonaudit/pkg/storage"
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	auditsTable = "audits"
)

func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// CreateAudit inserts a new pending record. The id and timestamps are
// generated here rather than by the database because SQLite has no RETURNING
// support in goqu.
func (s *Store) CreateAudit(ctx context.Context,
	url, host string,
	provenance storage.Provenance) (*domain.AuditRecord, error) {
	// v7 ids sort in insertion order, which breaks created_at ties
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("could not generate audit id: %w", err)
	}

	now := s.timestamp()
	rec := &domain.AuditRecord{
		ID:          domain.AuditID(id),
		URL:         url,
		Domain:      host,
		Status:      domain.AuditStatusPending,
		RequesterID: provenance.RequesterID,
		IPAddress:   provenance.IPAddress,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var row SQLAudit
	if err := row.FromDomain(rec); err != nil {
		return nil, err
	}

	if _, err := s.Builder.Insert(auditsTable).Rows(row).Executor().ExecContext(ctx); err != nil {
		return nil, fmt.Errorf("could not create audit: %w", err)
	}

	return rec, nil
}

// SaveAudit updates the record by id, inserting it when no row exists yet.
func (s *Store) SaveAudit(ctx context.Context, rec *domain.AuditRecord) error {
	rec.UpdatedAt = s.timestamp()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = rec.UpdatedAt
	}

	var row SQLAudit
	if err := row.FromDomain(rec); err != nil {
		return err
	}

	res, err := s.Builder.Update(auditsTable).
		Set(goqu.Record{
			"url":           row.URL,
			"domain":        row.Domain,
			"status":        row.Status,
			"carbon":        row.Carbon,
			"lighthouse":    row.Lighthouse,
			"reports":       row.Reports,
			"performance":   row.Performance,
			"accessibility": row.Accessibility,
			"seo":           row.SEO,
			"co2":           row.CO2,
			"green":         row.Green,
			"error":         row.Error,
			"duration_ms":   row.DurationMs,
			"requester_id":  row.RequesterID,
			"ip_address":    row.IPAddress,
			"updated_at":    row.UpdatedAt,
		}).
		Where(goqu.I("id").Eq(row.ID)).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("could not update audit: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected > 0 {
		return nil
	}

	if _, err := s.Builder.Insert(auditsTable).Rows(row).Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("could not insert audit: %w", err)
	}

	return nil
}

// AuditByID returns the record with the given id, or nil when not found.
func (s *Store) AuditByID(ctx context.Context, id domain.AuditID) (*domain.AuditRecord, error) {
	var row SQLAudit
	found, err := s.Builder.From(auditsTable).
		Where(goqu.I("id").Eq(id.String())).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch audit by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// DomainHistory returns records for host ordered by created_at DESC, id DESC.
func (s *Store) DomainHistory(ctx context.Context, host string, limit uint) ([]domain.AuditRecord, error) {
	ds := s.Builder.From(auditsTable).
		Where(goqu.I("domain").Eq(host)).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(storage.Limit(limit))

	return s.scanAudits(ctx, ds, "domain history")
}

// PerformanceLeaderboard returns completed records ordered by performance DESC,
// created_at ASC.
func (s *Store) PerformanceLeaderboard(ctx context.Context, limit uint) ([]domain.AuditRecord, error) {
	ds := s.Builder.From(auditsTable).
		Where(
			goqu.I("status").Eq(string(domain.AuditStatusCompleted)),
			goqu.I("performance").IsNotNull(),
		).
		Order(goqu.I("performance").Desc(), goqu.I("created_at").Asc(), goqu.I("id").Asc()).
		Limit(storage.Limit(limit))

	return s.scanAudits(ctx, ds, "performance leaderboard")
}

// GreenLeaderboard returns green-hosted records ordered by co2 ASC, created_at ASC.
func (s *Store) GreenLeaderboard(ctx context.Context, limit uint) ([]domain.AuditRecord, error) {
	ds := s.Builder.From(auditsTable).
		Where(
			goqu.I("green").IsTrue(),
			goqu.I("co2").IsNotNull(),
		).
		Order(goqu.I("co2").Asc(), goqu.I("created_at").Asc(), goqu.I("id").Asc()).
		Limit(storage.Limit(limit))

	return s.scanAudits(ctx, ds, "green leaderboard")
}

type statsRow struct {
	Count            int64   `db:"count"`
	AvgCO2           float64 `db:"avg_co2"`
	AvgPerformance   float64 `db:"avg_performance"`
	AvgAccessibility float64 `db:"avg_accessibility"`
	AvgSEO           float64 `db:"avg_seo"`
	GreenCount       int64   `db:"green_count"`
}

// AuditStats aggregates completed records in a single query.
func (s *Store) AuditStats(ctx context.Context) (domain.AuditStats, error) {
	var row statsRow
	_, err := s.Builder.From(auditsTable).
		Select(
			goqu.COUNT(goqu.Star()).As("count"),
			goqu.COALESCE(goqu.AVG("co2"), 0).As("avg_co2"),
			goqu.COALESCE(goqu.AVG("performance"), 0).As("avg_performance"),
			goqu.COALESCE(goqu.AVG("accessibility"), 0).As("avg_accessibility"),
			goqu.COALESCE(goqu.AVG("seo"), 0).As("avg_seo"),
			goqu.COALESCE(goqu.SUM(goqu.Case().When(goqu.I("green").IsTrue(), 1).Else(0)), 0).As("green_count"),
		).
		Where(goqu.I("status").Eq(string(domain.AuditStatusCompleted))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return domain.AuditStats{}, fmt.Errorf("could not aggregate audits: %w", err)
	}

	stats := domain.AuditStats{
		Count:            row.Count,
		AvgCO2:           row.AvgCO2,
		AvgPerformance:   row.AvgPerformance,
		AvgAccessibility: row.AvgAccessibility,
		AvgSEO:           row.AvgSEO,
	}
	if row.Count > 0 {
		stats.GreenPercentage = domain.Round2(float64(row.GreenCount) / float64(row.Count) * 100)
	}

	return stats, nil
}

func (s *Store) scanAudits(ctx context.Context, ds *goqu.SelectDataset, what string) ([]domain.AuditRecord, error) {
	var rows []SQLAudit
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch %s: %w", what, err)
	}

	return sqlAuditsToDomain(rows)
}

package sqlstore

import (
	"carbonaudit/pkg/domain"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// timestampLayout is fixed-width so that text-stored SQLite timestamps sort
// chronologically. PostgreSQL parses it into timestamptz.
const timestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// Timestamp is a UTC time with microsecond precision that round-trips through
// both SQLite text columns and PostgreSQL timestamptz columns.
type Timestamp time.Time

// Value implements driver.Valuer.
func (t Timestamp) Value() (driver.Value, error) {
	return time.Time(t).UTC().Format(timestampLayout), nil
}

// Scan implements sql.Scanner.
func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*t = Timestamp(v.UTC())
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		*t = Timestamp{}
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}

	return nil
}

func (t *Timestamp) parse(s string) error {
	for _, layout := range []string{timestampLayout, time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00"} {
		if v, err := time.Parse(layout, s); err == nil {
			*t = Timestamp(v.UTC())

			return nil
		}
	}

	return fmt.Errorf("could not parse timestamp %q", s)
}

// SQLAudit is the row representation of an audit record. The carbon,
// lighthouse and reports sub-records are stored as JSON documents; the fields
// used for ordering and aggregation are duplicated into plain columns.
type SQLAudit struct {
	ID     string `db:"id"`
	URL    string `db:"url"`
	Domain string `db:"domain"`
	Status string `db:"status"`

	Carbon     sql.NullString `db:"carbon"`
	Lighthouse sql.NullString `db:"lighthouse"`
	Reports    sql.NullString `db:"reports"`

	Performance   sql.NullFloat64 `db:"performance"`
	Accessibility sql.NullFloat64 `db:"accessibility"`
	SEO           sql.NullFloat64 `db:"seo"`
	CO2           sql.NullFloat64 `db:"co2"`
	Green         sql.NullBool    `db:"green"`

	Error       sql.NullString `db:"error"`
	DurationMs  int64          `db:"duration_ms"`
	RequesterID sql.NullString `db:"requester_id"`
	IPAddress   sql.NullString `db:"ip_address"`

	CreatedAt Timestamp `db:"created_at"`
	UpdatedAt Timestamp `db:"updated_at"`
}

// ToDomain converts the row into a domain record.
func (s *SQLAudit) ToDomain() (*domain.AuditRecord, error) {
	id, err := uuid.Parse(s.ID)
	if err != nil {
		return nil, fmt.Errorf("could not parse audit id: %w", err)
	}

	rec := &domain.AuditRecord{
		ID:          domain.AuditID(id),
		URL:         s.URL,
		Domain:      s.Domain,
		Status:      domain.AuditStatus(s.Status),
		Error:       s.Error.String,
		Duration:    s.DurationMs,
		RequesterID: s.RequesterID.String,
		IPAddress:   s.IPAddress.String,
		CreatedAt:   time.Time(s.CreatedAt),
		UpdatedAt:   time.Time(s.UpdatedAt),
	}

	if rec.Carbon, err = unmarshalNull[domain.Carbon](s.Carbon); err != nil {
		return nil, fmt.Errorf("could not unmarshal carbon result: %w", err)
	}
	if rec.Lighthouse, err = unmarshalNull[domain.Lighthouse](s.Lighthouse); err != nil {
		return nil, fmt.Errorf("could not unmarshal lighthouse result: %w", err)
	}
	if rec.Reports, err = unmarshalNull[domain.Reports](s.Reports); err != nil {
		return nil, fmt.Errorf("could not unmarshal reports: %w", err)
	}

	return rec, nil
}

// FromDomain fills the row from a domain record.
func (s *SQLAudit) FromDomain(rec *domain.AuditRecord) error {
	carbon, err := marshalNull(rec.Carbon)
	if err != nil {
		return fmt.Errorf("could not marshal carbon result: %w", err)
	}
	lighthouse, err := marshalNull(rec.Lighthouse)
	if err != nil {
		return fmt.Errorf("could not marshal lighthouse result: %w", err)
	}
	reports, err := marshalNull(rec.Reports)
	if err != nil {
		return fmt.Errorf("could not marshal reports: %w", err)
	}

	*s = SQLAudit{
		ID:          rec.ID.String(),
		URL:         rec.URL,
		Domain:      rec.Domain,
		Status:      string(rec.Status),
		Carbon:      carbon,
		Lighthouse:  lighthouse,
		Reports:     reports,
		Error:       nullString(rec.Error),
		DurationMs:  rec.Duration,
		RequesterID: nullString(rec.RequesterID),
		IPAddress:   nullString(rec.IPAddress),
		CreatedAt:   Timestamp(rec.CreatedAt),
		UpdatedAt:   Timestamp(rec.UpdatedAt),
	}
	if rec.Lighthouse != nil {
		s.Performance = sql.NullFloat64{Float64: rec.Lighthouse.Performance, Valid: true}
		s.Accessibility = sql.NullFloat64{Float64: rec.Lighthouse.Accessibility, Valid: true}
		s.SEO = sql.NullFloat64{Float64: rec.Lighthouse.SEO, Valid: true}
	}
	if rec.Carbon != nil {
		s.CO2 = sql.NullFloat64{Float64: rec.Carbon.CO2PerPageview, Valid: true}
		s.Green = sql.NullBool{Bool: rec.Carbon.Green, Valid: true}
	}

	return nil
}

func marshalNull[T any](v *T) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err //nolint: wrapcheck
	}

	return sql.NullString{String: string(b), Valid: true}, nil
}

func unmarshalNull[T any](s sql.NullString) (*T, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}

	var v T
	if err := json.Unmarshal([]byte(s.String), &v); err != nil {
		return nil, err //nolint: wrapcheck
	}

	return &v, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func sqlAuditsToDomain(rows []SQLAudit) ([]domain.AuditRecord, error) {
	out := make([]domain.AuditRecord, 0, len(rows))
	for i := range rows {
		d, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}

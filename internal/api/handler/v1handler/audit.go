package v1handler

import (
	"carbonaudit/internal/auditor"
	"carbonaudit/pkg/controller"
	"carbonaudit/pkg/domain"
	"carbonaudit/pkg/serrors"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

const (
	// DefaultLimit applies to list endpoints when no limit is given.
	DefaultLimit = 10
	// MaxLimit caps list endpoints.
	MaxLimit = 100

	maxBodyBytes = 1 << 16
)

// CreateAuditRequest is the body of POST /audit.
type CreateAuditRequest struct {
	URL string `json:"url"`
}

// CreateAuditResponse is the 200 body of a synchronous POST /audit.
type CreateAuditResponse struct {
	Success    bool               `json:"success"`
	AuditID    string             `json:"auditId"`
	URL        string             `json:"url"`
	Carbon     *domain.Carbon     `json:"carbon"`
	Lighthouse *domain.Lighthouse `json:"lighthouse"`
	HTMLPath   string             `json:"htmlPath"`
	PDFPath    string             `json:"pdfPath"`
	Timestamp  time.Time          `json:"timestamp"`
	Duration   int64              `json:"duration"`
	Comparison *domain.Comparison `json:"comparison"`
	Grades     domain.Grades      `json:"grades"`
}

// AcceptedAuditResponse is the 202 body of an asynchronous POST /audit.
type AcceptedAuditResponse struct {
	Success bool               `json:"success"`
	AuditID string             `json:"auditId"`
	Status  domain.AuditStatus `json:"status"`
}

// AuditResponse is a stored record with its derived values.
type AuditResponse struct {
	*domain.AuditRecord

	Comparison *domain.Comparison `json:"comparison"`
	Grades     domain.Grades      `json:"grades"`
}

// HistoryResponse is the body of GET /audit/history/{domain}.
type HistoryResponse struct {
	Domain string               `json:"domain"`
	Count  int                  `json:"count"`
	Audits []domain.AuditRecord `json:"audits"`
}

// HealthResponse is the static liveness payload.
type HealthResponse struct {
	Status    string            `json:"status"`
	Services  map[string]string `json:"services"`
	Timestamp time.Time         `json:"timestamp"`
}

func NewCreateAuditResponse(res *auditor.Result) CreateAuditResponse {
	rec := res.Record
	out := CreateAuditResponse{
		Success:    true,
		AuditID:    rec.ID.String(),
		URL:        rec.URL,
		Carbon:     rec.Carbon,
		Lighthouse: rec.Lighthouse,
		Timestamp:  rec.UpdatedAt,
		Duration:   rec.Duration,
		Comparison: res.Comparison,
		Grades:     res.Grades,
	}
	if rec.Reports != nil {
		out.HTMLPath = rec.Reports.HTMLPath
		out.PDFPath = rec.Reports.PDFPath
	}

	return out
}

func decodeCreateAudit(r *http.Request) (CreateAuditRequest, error) {
	var req CreateAuditRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, serrors.With(serrors.ErrBadRequest, "url is required")
		}

		return req, serrors.Wrap(serrors.ErrBadRequest, err, "invalid JSON body")
	}
	if req.URL == "" {
		return req, serrors.With(serrors.ErrBadRequest, "url is required")
	}

	return req, nil
}

// CreateAudit runs an audit and responds with its result, or queues it when
// async=true is given.
func (h *Handler) CreateAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := decodeCreateAudit(r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	req := auditor.Request{
		URL:       body.URL,
		IPAddress: controller.ClientIPFromContext(ctx),
	}

	async, _ := strconv.ParseBool(r.URL.Query().Get("async"))
	if async {
		h.enqueueAudit(w, r, req)

		return
	}

	res, err := h.deps.Auditor.Audit(ctx, req)
	if err != nil {
		var auditErr *auditor.Error
		if !errors.As(err, &auditErr) {
			h.writeError(w, r, err)

			return
		}

		// the record exists, so the client gets its id to look it up later
		status := h.NewError(ctx, err)
		body := ErrorResponse{
			Error:   "audit failed",
			Code:    status.Response.Code,
			AuditID: auditErr.ID.String(),
		}
		if !h.options.Production {
			body.Details = auditErr.Err.Error()
		}
		writeJSON(ctx, w, http.StatusInternalServerError, body)

		return
	}

	writeJSON(ctx, w, http.StatusOK, NewCreateAuditResponse(res))
}

func (h *Handler) enqueueAudit(w http.ResponseWriter, r *http.Request, req auditor.Request) {
	if !h.options.Async {
		h.writeError(w, r, serrors.With(serrors.ErrBadRequest, "async audits are not enabled"))

		return
	}

	rec, err := h.deps.Auditor.Enqueue(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusAccepted, AcceptedAuditResponse{
		Success: true,
		AuditID: rec.ID.String(),
		Status:  rec.Status,
	})
}

// GetAudit returns a record by id. Malformed ids are reported as not found.
func (h *Handler) GetAudit(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseAuditID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, serrors.With(serrors.ErrNotFound, "audit not found"))

		return
	}

	res, err := h.deps.Auditor.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, AuditResponse{
		AuditRecord: res.Record,
		Comparison:  res.Comparison,
		Grades:      res.Grades,
	})
}

// DomainHistory returns the most recent records of a domain.
func (h *Handler) DomainHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	host := chi.URLParam(r, "domain")
	audits, err := h.deps.Auditor.DomainHistory(r.Context(), host, limit)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, HistoryResponse{
		Domain: domain.DomainFromURL("http://" + host),
		Count:  len(audits),
		Audits: nonNil(audits),
	})
}

// Health reports liveness of the audit sub-services.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, HealthResponse{
		Status: "ok",
		Services: map[string]string{
			"lighthouse": "available",
			"carbon":     "available",
			"database":   "connected",
		},
		Timestamp: time.Now().UTC(),
	})
}

// parseLimit reads ?limit=N. Missing or zero selects DefaultLimit and larger
// values are capped at MaxLimit.
func parseLimit(r *http.Request) (uint, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return DefaultLimit, nil
	}

	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, serrors.With(serrors.ErrBadRequest, "limit must be a non-negative integer")
	}

	switch {
	case n == 0:
		return DefaultLimit, nil
	case n > MaxLimit:
		return MaxLimit, nil
	default:
		return uint(n), nil
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}

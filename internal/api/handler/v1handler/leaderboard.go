package v1handler

import (
	"carbonaudit/pkg/domain"
	"context"
	"net/http"
)

// LeaderboardResponse is the body of the leaderboard endpoints.
type LeaderboardResponse struct {
	Count  int                  `json:"count"`
	Audits []domain.AuditRecord `json:"audits"`
}

func (h *Handler) leaderboard(w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, limit uint) ([]domain.AuditRecord, error)) {
	limit, err := parseLimit(r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	audits, err := fn(r.Context(), limit)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, LeaderboardResponse{Count: len(audits), Audits: nonNil(audits)})
}

// PerformanceLeaderboard lists completed audits by descending performance.
func (h *Handler) PerformanceLeaderboard(w http.ResponseWriter, r *http.Request) {
	h.leaderboard(w, r, h.deps.Auditor.PerformanceLeaderboard)
}

// GreenLeaderboard lists green-hosted audits by ascending CO2.
func (h *Handler) GreenLeaderboard(w http.ResponseWriter, r *http.Request) {
	h.leaderboard(w, r, h.deps.Auditor.GreenLeaderboard)
}

// Stats returns aggregate statistics of completed audits.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.deps.Auditor.Stats(r.Context())
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, stats)
}

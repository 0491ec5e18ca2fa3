// Package v1handler implements the version 1 REST handlers of the audit API.
package v1handler

import (
	"carbonaudit/internal/auditor"
	"carbonaudit/internal/config"
	"carbonaudit/pkg/logger"
	"carbonaudit/pkg/serrors"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Deps are the services the handlers delegate to.
type Deps struct {
	Auditor auditor.Auditor
}

// Options configure handler behaviour.
type Options struct {
	// Production hides error details from audit failure responses.
	Production bool
	// Async enables POST /audit?async=true.
	Async bool
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Production: cfg.IsProduction(),
		Async:      cfg.Database.Driver == config.DriverPostgres && cfg.Worker.Enabled,
	}
}

type Handler struct {
	deps    Deps
	options Options
}

func New(deps Deps, options Options) *Handler {
	return &Handler{deps: deps, options: options}
}

// Routes registers every v1 endpoint on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/audit", h.CreateAudit)
	r.Get("/audit/health", h.Health)
	r.Get("/audit/history/{domain}", h.DomainHistory)
	r.Get("/audit/{id}", h.GetAudit)
	r.Get("/leaderboard/performance", h.PerformanceLeaderboard)
	r.Get("/leaderboard/green", h.GreenLeaderboard)
	r.Get("/stats", h.Stats)
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	// AuditID is set when the failure happened after the record was created.
	AuditID string `json:"auditId,omitempty"`
	// Details carries the full error chain outside production.
	Details string `json:"details,omitempty"`
}

// ErrorStatusCode pairs an ErrorResponse with its HTTP status.
type ErrorStatusCode struct {
	StatusCode int
	Response   ErrorResponse
}

var defaultMessages = map[serrors.Kind]string{ //nolint: gochecknoglobals
	serrors.ErrNotFound:    "resource not found",
	serrors.ErrBadRequest:  "bad request",
	serrors.ErrConflict:    "conflict",
	serrors.ErrTimeout:     "request timed out",
	serrors.ErrUnavailable: "service unavailable",
	serrors.ErrInternal:    "internal error",
}

// NewError maps err to a status code and a client-safe body. Internal errors
// never expose their cause; semantic errors expose their message only.
func (h *Handler) NewError(ctx context.Context, err error) *ErrorStatusCode {
	status := serrors.HTTPStatus(err)
	kind := serrors.KindOf(err)

	msg := defaultMessages[kind]
	var semErr *serrors.Error
	if errors.As(err, &semErr) && semErr.Message() != "" && status < http.StatusInternalServerError {
		msg = semErr.Message()
	}
	if msg == "" {
		msg = kind.Error()
	}

	if status >= http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.Error(err))
	} else {
		logger.Debug(ctx, "request rejected", zap.Error(err))
	}

	return &ErrorStatusCode{
		StatusCode: status,
		Response:   ErrorResponse{Error: msg, Code: kind.Error()},
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	res := h.NewError(r.Context(), err)
	writeJSON(r.Context(), w, res.StatusCode, res.Response)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn(ctx, "could not write response", zap.Error(err))
	}
}

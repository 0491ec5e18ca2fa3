package v1handler_test

import (
	"carbonaudit/internal/api/handler/v1handler"
	"carbonaudit/internal/auditor"
	"carbonaudit/pkg/carbon"
	"carbonaudit/pkg/domain"
	"carbonaudit/pkg/serrors"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mockauditor "carbonaudit/internal/auditor/mock"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T, opts v1handler.Options) (*mockauditor.MockAuditor, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mock := mockauditor.NewMockAuditor(ctrl)

	r := chi.NewRouter()
	v1handler.New(v1handler.Deps{Auditor: mock}, opts).Routes(r)

	return mock, r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())

	return out
}

func completedResult() *auditor.Result {
	rec := &domain.AuditRecord{
		ID:         domain.AuditID(uuid.New()),
		URL:        "https://example.com",
		Domain:     "example.com",
		Status:     domain.AuditStatusCompleted,
		Carbon:     &domain.Carbon{CO2PerPageview: 0.4, Green: true, CleanerThan: 0.75, Method: domain.CarbonMethodPrimary},
		Lighthouse: &domain.Lighthouse{Performance: 0.93},
		Reports:    &domain.Reports{HTMLPath: "/reports/e.html", PDFPath: "/reports/e.pdf"},
		Duration:   4200,
		UpdatedAt:  time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	return &auditor.Result{
		Record:     rec,
		Comparison: &domain.Comparison{CO2Comparison: domain.Better, CO2DifferencePct: -20},
		Grades:     rec.Grades(),
	}
}

func TestCreateAudit_Success(t *testing.T) {
	mock, h := newRouter(t, v1handler.Options{})
	res := completedResult()

	mock.EXPECT().Audit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, req auditor.Request) (*auditor.Result, error) {
			require.Equal(t, "https://example.com", req.URL)

			return res, nil
		})

	rec := do(t, h, http.MethodPost, "/audit", `{"url":"https://example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[v1handler.CreateAuditResponse](t, rec)
	require.True(t, body.Success)
	require.Equal(t, res.Record.ID.String(), body.AuditID)
	require.Equal(t, "/reports/e.html", body.HTMLPath)
	require.Equal(t, "/reports/e.pdf", body.PDFPath)
	require.EqualValues(t, 4200, body.Duration)
	require.Equal(t, domain.GradeA, body.Grades.Performance)
	require.Equal(t, domain.Better, body.Comparison.CO2Comparison)
}

func TestCreateAudit_BadRequest(t *testing.T) {
	mock, h := newRouter(t, v1handler.Options{})
	mock.EXPECT().Audit(gomock.Any(), gomock.Any()).
		Return(nil, serrors.With(serrors.ErrBadRequest, "invalid URL"))

	for _, body := range []string{``, `{}`, `{"url":`, `{"url":""}`} {
		rec := do(t, h, http.MethodPost, "/audit", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		require.NotEmpty(t, decode[v1handler.ErrorResponse](t, rec).Error)
	}

	rec := do(t, h, http.MethodPost, "/audit", `{"url":"ftp://x"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid URL", decode[v1handler.ErrorResponse](t, rec).Error)
}

func TestCreateAudit_FailureCarriesID(t *testing.T) {
	id := domain.AuditID(uuid.New())
	cause := &auditor.Error{ID: id, Err: serrors.Wrap(carbon.ErrEstimationFailed, errors.New("boom"), "carbon estimation failed")}

	t.Run("development", func(t *testing.T) {
		mock, h := newRouter(t, v1handler.Options{})
		mock.EXPECT().Audit(gomock.Any(), gomock.Any()).Return(nil, cause)

		rec := do(t, h, http.MethodPost, "/audit", `{"url":"https://example.com"}`)
		require.Equal(t, http.StatusInternalServerError, rec.Code)

		body := decode[v1handler.ErrorResponse](t, rec)
		require.Equal(t, id.String(), body.AuditID)
		require.Equal(t, "audit failed", body.Error)
		require.Equal(t, "carbon estimation failed: boom", body.Details)
	})

	t.Run("production", func(t *testing.T) {
		mock, h := newRouter(t, v1handler.Options{Production: true})
		mock.EXPECT().Audit(gomock.Any(), gomock.Any()).Return(nil, cause)

		rec := do(t, h, http.MethodPost, "/audit", `{"url":"https://example.com"}`)
		require.Equal(t, http.StatusInternalServerError, rec.Code)

		body := decode[v1handler.ErrorResponse](t, rec)
		require.Equal(t, id.String(), body.AuditID)
		require.Empty(t, body.Details)
	})
}

func TestCreateAudit_PersistenceFailureOmitsID(t *testing.T) {
	mock, h := newRouter(t, v1handler.Options{})
	mock.EXPECT().Audit(gomock.Any(), gomock.Any()).
		Return(nil, serrors.Wrap(serrors.ErrUnavailable, errors.New("db down"), "could not persist audit"))

	rec := do(t, h, http.MethodPost, "/audit", `{"url":"https://example.com"}`)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Empty(t, decode[v1handler.ErrorResponse](t, rec).AuditID)
}

func TestCreateAudit_Async(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		mock, h := newRouter(t, v1handler.Options{Async: true})
		id := domain.AuditID(uuid.New())
		mock.EXPECT().Enqueue(gomock.Any(), gomock.Any()).
			Return(&domain.AuditRecord{ID: id, Status: domain.AuditStatusPending}, nil)

		rec := do(t, h, http.MethodPost, "/audit?async=true", `{"url":"https://example.com"}`)
		require.Equal(t, http.StatusAccepted, rec.Code)

		body := decode[v1handler.AcceptedAuditResponse](t, rec)
		require.Equal(t, id.String(), body.AuditID)
		require.Equal(t, domain.AuditStatusPending, body.Status)
	})

	t.Run("disabled", func(t *testing.T) {
		_, h := newRouter(t, v1handler.Options{})

		rec := do(t, h, http.MethodPost, "/audit?async=true", `{"url":"https://example.com"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetAudit(t *testing.T) {
	mock, h := newRouter(t, v1handler.Options{})
	res := completedResult()

	mock.EXPECT().Get(gomock.Any(), res.Record.ID).Return(res, nil)
	rec := do(t, h, http.MethodGet, "/audit/"+res.Record.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]any](t, rec)
	require.Equal(t, res.Record.ID.String(), body["id"])
	require.Equal(t, "completed", body["status"])
	require.Contains(t, body, "comparison")
	require.Contains(t, body, "grades")

	missing := domain.AuditID(uuid.New())
	mock.EXPECT().Get(gomock.Any(), missing).Return(nil, serrors.With(serrors.ErrNotFound, "audit not found"))
	rec = do(t, h, http.MethodGet, "/audit/"+missing.String(), "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	// malformed ids never reach the auditor
	rec = do(t, h, http.MethodGet, "/audit/not-a-uuid", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDomainHistory(t *testing.T) {
	mock, h := newRouter(t, v1handler.Options{})

	mock.EXPECT().DomainHistory(gomock.Any(), "example.com", uint(2)).
		Return([]domain.AuditRecord{*completedResult().Record, *completedResult().Record}, nil)
	rec := do(t, h, http.MethodGet, "/audit/history/example.com?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[v1handler.HistoryResponse](t, rec)
	require.Equal(t, "example.com", body.Domain)
	require.Equal(t, 2, body.Count)

	mock.EXPECT().DomainHistory(gomock.Any(), "empty.com", uint(v1handler.DefaultLimit)).Return(nil, nil)
	rec = do(t, h, http.MethodGet, "/audit/history/empty.com", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"domain":"empty.com","count":0,"audits":[]}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/audit/history/example.com?limit=-1", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeaderboards(t *testing.T) {
	mock, h := newRouter(t, v1handler.Options{})

	mock.EXPECT().PerformanceLeaderboard(gomock.Any(), uint(v1handler.MaxLimit)).
		Return([]domain.AuditRecord{*completedResult().Record}, nil)
	rec := do(t, h, http.MethodGet, "/leaderboard/performance?limit=5000", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, decode[v1handler.LeaderboardResponse](t, rec).Count)

	mock.EXPECT().GreenLeaderboard(gomock.Any(), uint(3)).Return(nil, errors.New("db down"))
	rec = do(t, h, http.MethodGet, "/leaderboard/green?limit=3", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "internal error", decode[v1handler.ErrorResponse](t, rec).Error)
}

func TestStatsAndHealth(t *testing.T) {
	mock, h := newRouter(t, v1handler.Options{})

	mock.EXPECT().Stats(gomock.Any()).Return(domain.AuditStats{Count: 4, AvgCO2: 0.6, GreenPercentage: 50}, nil)
	rec := do(t, h, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	stats := decode[domain.AuditStats](t, rec)
	require.EqualValues(t, 4, stats.Count)
	require.InDelta(t, 50.0, stats.GreenPercentage, 0)

	rec = do(t, h, http.MethodGet, "/audit/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	health := decode[v1handler.HealthResponse](t, rec)
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "available", health.Services["lighthouse"])
}

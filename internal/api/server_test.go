package api_test

import (
	"carbonaudit/internal/api"
	"carbonaudit/internal/api/handler/v1handler"
	"carbonaudit/pkg/logger"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mockauditor "carbonaudit/internal/auditor/mock"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "reports/example_com_1.html", []byte("<html>report</html>"), 0o644))

	srv, err := api.NewServer(api.Deps{
		Deps:          v1handler.Deps{Auditor: mockauditor.NewMockAuditor(gomock.NewController(t))},
		Reports:       fs,
		MeterProvider: noop.NewMeterProvider(),
	}, api.Options{
		MetricsPath:    "/metrics",
		RequestTimeout: time.Minute,
		ReportsDir:     "reports",
		ReportsPath:    "/reports",
	})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)

	return ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()

	res, err := http.Get(url) //nolint: noctx
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res, string(body)
}

func TestServer_Routes(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/audit/health", "/v1/audit/health"} {
		res, body := get(t, ts.URL+path)
		require.Equal(t, http.StatusOK, res.StatusCode, path)
		require.Contains(t, body, `"status":"ok"`)
		require.NotEmpty(t, res.Header.Get("X-Request-Id"))
	}

	res, body := get(t, ts.URL+"/specs/v1.yaml")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "application/yaml", res.Header.Get("Content-Type"))
	require.Contains(t, body, "openapi: 3.0.3")

	res, body = get(t, ts.URL+"/reports/example_com_1.html")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "<html>report</html>", body)

	res, _ = get(t, ts.URL+"/reports/missing.html")
	require.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = get(t, ts.URL+"/metrics")
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = get(t, ts.URL+"/debug/pprof/")
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = get(t, ts.URL+"/v1/docs/")
	require.Equal(t, http.StatusOK, res.StatusCode)
}

func TestServer_CORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/audit", nil) //nolint: noctx
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Contains(t, res.Header.Get("Access-Control-Allow-Methods"), "POST")
}

package controller_test

import (
	"carbonaudit/pkg/controller"
	"carbonaudit/pkg/logger"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientIP(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "forwarded for", headers: map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"}, want: "1.2.3.4"},
		{
			name:    "garbage forwarded for falls through to real ip",
			headers: map[string]string{"X-Forwarded-For": "unknown", "X-Real-IP": "9.8.7.6"},
			want:    "9.8.7.6",
		},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "2001:db8::1"}, want: "2001:db8::1"},
		{name: "remote addr", remote: "10.0.0.1:12345", want: "10.0.0.1"},
		{name: "invalid remote addr", remote: "not-an-addr", want: "not-an-addr"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			if tc.remote != "" {
				req.RemoteAddr = tc.remote
			}
			require.Equal(t, tc.want, controller.ClientIP(req))
		})
	}
}

func TestWithLogger(t *testing.T) {
	logger.Setup(logger.DevelopmentEnvironment)

	var gotID, gotIP string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = controller.RequestIDFromContext(r.Context())
		gotIP = controller.ClientIPFromContext(r.Context())
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodPost, "/audit", nil)
	req.Header.Set(controller.RequestIDHeader, "abc-123")
	req.Header.Set("X-Real-IP", "9.8.7.6")
	rec := httptest.NewRecorder()
	controller.WithLogger(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "abc-123", rec.Header().Get(controller.RequestIDHeader))
	require.Equal(t, "abc-123", gotID)
	require.Equal(t, "9.8.7.6", gotIP)

	// a missing id is generated
	rec = httptest.NewRecorder()
	controller.WithLogger(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, rec.Header().Get(controller.RequestIDHeader))
	require.Equal(t, gotID, rec.Header().Get(controller.RequestIDHeader))
}

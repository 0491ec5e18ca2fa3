// Package api assembles the HTTP surface of the audit service: the v1 REST
// routes, the OpenAPI document and its playground, materialized reports,
// Prometheus metrics and pprof.
package api

import (
	"carbonaudit/internal/api/handler/v1handler"
	"carbonaudit/internal/config"
	"carbonaudit/pkg/controller"
	_ "embed"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"
	"github.com/swaggest/swgui/v5emb"
	"go.opentelemetry.io/otel/metric"
)

//go:embed specs/v1.yaml
var openAPIDocument []byte

const (
	openAPIPath    = "/specs/v1.yaml"
	playgroundPath = "/v1/docs/"
)

// Options configure the server. Zero durations leave the net/http default
// in place; a zero RequestTimeout disables the per-request deadline.
type Options struct {
	Handler v1handler.Options
	CORS    controller.CORSOptions

	Addr              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	RequestTimeout    time.Duration
	MaxHeaderBytes    int

	// MetricsPath serves the Prometheus registry.
	MetricsPath string
	// ReportsDir is the report directory inside Deps.Reports, served under
	// ReportsPath.
	ReportsDir  string
	ReportsPath string
}

// NewOptions reads the HTTP and report settings out of cfg.
func NewOptions(cfg *config.Config) Options {
	h := cfg.HTTP

	return Options{
		Handler: v1handler.NewOptions(cfg),
		CORS: controller.CORSOptions{
			AllowedOrigins: h.CORSOrigins,
			MaxAge:         h.CORSMaxAge,
		},
		Addr:              h.Addr,
		ReadTimeout:       h.ReadTimeout,
		ReadHeaderTimeout: h.ReadHeaderTimeout,
		WriteTimeout:      h.WriteTimeout,
		IdleTimeout:       h.IdleTimeout,
		RequestTimeout:    h.RequestTimeout,
		MaxHeaderBytes:    h.MaxHeaderBytes,
		MetricsPath:       h.MetricsPath,
		ReportsDir:        cfg.Reports.Dir,
		ReportsPath:       cfg.Reports.PublicPath,
	}
}

// Deps are the collaborators behind the routes.
type Deps struct {
	v1handler.Deps

	// Reports is the filesystem the report materializer writes to. Reports
	// are not served when it is nil.
	Reports afero.Fs
	// MeterProvider receives the HTTP request instruments.
	MeterProvider metric.MeterProvider
}

// NewServer returns an unstarted *http.Server serving every route.
func NewServer(deps Deps, opts Options) (*http.Server, error) {
	router, err := newRouter(deps, opts)
	if err != nil {
		return nil, err
	}

	var handler http.Handler = router
	if opts.RequestTimeout > 0 {
		handler = http.TimeoutHandler(handler, opts.RequestTimeout, `{"error":"request timed out","code":"TIMEOUT"}`)
	}

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}

func newRouter(deps Deps, opts Options) (chi.Router, error) {
	withMetrics, err := controller.WithMetrics(deps.MeterProvider)
	if err != nil {
		return nil, fmt.Errorf("could not create metrics middleware: %w", err)
	}

	r := chi.NewRouter()
	// inside the router so the middlewares see the matched route pattern
	r.Use(controller.WithLogger, controller.NewCORS(opts.CORS), withMetrics)

	r.Handle(opts.MetricsPath, promhttp.Handler())

	r.Get(openAPIPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(openAPIDocument)
	})
	r.Handle(playgroundPath+"*", v5emb.New("Carbon Audit Service", openAPIPath, playgroundPath))

	// the v1 routes answer both unversioned and under /v1
	h := v1handler.New(deps.Deps, opts.Handler)
	r.Group(h.Routes)
	r.Route("/v1", h.Routes)

	if deps.Reports != nil {
		prefix := "/" + strings.Trim(opts.ReportsPath, "/")
		files := afero.NewHttpFs(afero.NewReadOnlyFs(deps.Reports)).Dir(opts.ReportsDir)
		r.Handle(prefix+"/*", http.StripPrefix(prefix, http.FileServer(files)))
	}

	controller.MountPprof(r)

	return r, nil
}

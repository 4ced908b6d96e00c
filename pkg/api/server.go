// Package api serves the solver over HTTP.
//
// # Endpoints
//
//	POST /v1/solve        solve an instance and store the run
//	GET  /v1/runs         list recent runs (?limit=N)
//	GET  /v1/runs/{id}    fetch one run
//	GET  /healthz         liveness
//	GET  /version         build information
//	GET  /metrics         Prometheus metrics (when configured)
//
// Errors are returned as {"code": "...", "message": "..."} with the code
// taken from package errors.
//
// Identical concurrent solve requests share one computation. Results are
// cached through the pipeline runner, so repeated requests for the same
// instance and options are served from the cache.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/cyclecut/pkg/observability"
	"github.com/matzehuels/cyclecut/pkg/pipeline"
	"github.com/matzehuels/cyclecut/pkg/store"
)

// Defaults.
const (
	DefaultMaxBodyBytes = 8 << 20
	DefaultSolveTimeout = 2 * time.Minute
	DefaultShutdownWait = 10 * time.Second
)

// Config configures a Server.
type Config struct {
	// Runner executes solves. Nil means an uncached runner.
	Runner *pipeline.Runner

	// Store keeps completed runs. Nil means an in-memory store.
	Store store.Store

	// Logger receives request and solve logs. Nil discards them.
	Logger *log.Logger

	// Metrics, if set, is served at /metrics.
	Metrics http.Handler

	// MaxBodyBytes bounds request bodies (default DefaultMaxBodyBytes).
	MaxBodyBytes int64

	// SolveTimeout bounds a single solve (default DefaultSolveTimeout).
	// Requests may ask for less, never more.
	SolveTimeout time.Duration
}

// Server is the HTTP API.
type Server struct {
	runner       *pipeline.Runner
	store        store.Store
	logger       *log.Logger
	metrics      http.Handler
	maxBodyBytes int64
	solveTimeout time.Duration

	solves singleflight.Group
}

// New creates a server from cfg.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore(0)
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.SolveTimeout <= 0 {
		cfg.SolveTimeout = DefaultSolveTimeout
	}
	return &Server{
		runner:       cfg.Runner,
		store:        cfg.Store,
		logger:       cfg.Logger,
		metrics:      cfg.Metrics,
		maxBodyBytes: cfg.MaxBodyBytes,
		solveTimeout: cfg.SolveTimeout,
	}
}

// Handler returns the router with every endpoint mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, notFound("no route for %s %s", r.Method, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErrorStatus(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" not allowed")
	})
	return r
}

// ListenAndServe serves on addr until ctx ends, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownWait)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// instrument reports every request to the HTTP hooks and logs it.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, route, status, d)
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", d,
			"request_id", middleware.GetReqID(r.Context()))
	})
}

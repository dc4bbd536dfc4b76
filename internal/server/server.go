// Package server exposes the layout pipeline over HTTP.
//
// Routes:
//
//	GET    /healthz                     liveness and build info
//	POST   /v1/layout                   compute (or fetch cached) layout for records
//	POST   /v1/render?format=svg        compute layout and render it
//	GET    /v1/layouts                  list archived layouts
//	GET    /v1/layouts/{id}             fetch an archived layout
//	GET    /v1/layouts/{id}/render      render an archived layout
//	DELETE /v1/layouts/{id}             remove an archived layout
//
// Request bodies are the JSON form of [pipeline.Options]; the records field
// is required. Errors are returned as {"error": CODE, "message": "..."}.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/bigbang/pkg/observability"
	"github.com/matzehuels/bigbang/pkg/pipeline"
	"github.com/matzehuels/bigbang/pkg/store"
)

const (
	// MaxBodyBytes bounds request bodies.
	MaxBodyBytes = 8 << 20

	// DefaultTimeout bounds a single pipeline run.
	DefaultTimeout = 60 * time.Second
)

// Server handles API requests. Create one with [New].
type Server struct {
	runner   *pipeline.Runner
	store    store.Store
	logger   *log.Logger
	defaults pipeline.Options
	timeout  time.Duration
	router   chi.Router
}

// Option configures a [Server].
type Option func(*Server)

// WithDefaults sets the options that request bodies are decoded on top of.
// Use it to carry config-file settings such as force parameters and the
// palette into API runs.
func WithDefaults(o pipeline.Options) Option {
	return func(s *Server) { s.defaults = o }
}

// WithTimeout bounds each pipeline run.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// New creates a server. A nil store keeps layouts in memory.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger, opts ...Option) *Server {
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:  runner,
		store:   st,
		logger:  logger,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Use(middleware.RequestSize(MaxBodyBytes))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
		r.Get("/layouts", s.handleList)
		r.Route("/layouts/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Get("/render", s.handleRenderStored)
			r.Delete("/", s.handleDelete)
		})
	})
	return r
}

// observe logs each request and reports it to the server hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.Server()

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		hooks.OnRequest(r.Context(), r.Method, route)
		hooks.OnResponse(r.Context(), r.Method, route, ww.Status(), time.Since(start))
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

// Package server exposes image generation over HTTP: render routes driven
// by preset code and path text, a JSON preset listing, and the cache-header
// policy that makes rendered images long-lived in production.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/zzaoclub/imgx/pkg/httputil"
	"github.com/zzaoclub/imgx/pkg/imagegen"
	"github.com/zzaoclub/imgx/pkg/preset"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Config configures the HTTP server.
type Config struct {
	// Addr is the listen address, e.g. ":5777".
	Addr string

	// Production enables immutable cache headers and 304 handling.
	// Development responses carry no-store directives instead.
	Production bool

	// Logger receives request logs. Nil means log.Default().
	Logger *log.Logger
}

// Server serves rendered images and preset metadata.
type Server struct {
	gen     *imagegen.Generator
	presets preset.Store
	policy  httputil.Policy
	addr    string
	logger  *log.Logger
}

// New creates a Server around a generator and its preset store.
func New(cfg Config, gen *imagegen.Generator, presets preset.Store) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		gen:     gen,
		presets: presets,
		policy:  httputil.Policy{Production: cfg.Production},
		addr:    cfg.Addr,
		logger:  logger,
	}
}

// Router builds the route tree. Exposed separately from ListenAndServe so
// tests can drive it through httptest.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/presets", s.handleListPresets)
	r.Get("/presets/{code}", s.handleGetPreset)
	r.Post("/{presetCode}", s.handleRenderBody)
	r.Get("/{presetCode}", s.handleRenderPath)
	r.Get("/{presetCode}/*", s.handleRenderPath)

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", s.addr, "production", s.policy.Production)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// requestID tags every request with a correlation ID, honoring one supplied
// by an upstream proxy.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), middleware.RequestIDKey, id)))
	})
}

// logRequests logs one line per request with status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		id, _ := r.Context().Value(middleware.RequestIDKey).(string)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Millisecond),
			"request_id", id,
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// Package server serves the gridboard layout store over HTTP.
//
// The API is the Remote leg of the persistence chain:
//
//	GET    /api/layouts/{breakpoint}  -> 200 {"layout": [...], "revision": "...", "updatedAt": "..."}
//	PUT    /api/layouts/{breakpoint}  <- [...]  -> 204
//	POST   /api/layouts/{breakpoint}  <- [...]  -> 204
//	DELETE /api/layouts/{breakpoint}            -> 204
//	GET    /healthz
//	GET    /metrics
//
// A breakpoint with no stored document answers {"layout": []}, which clients
// treat as "nothing stored". The owner comes from the X-Gridboard-User header
// and defaults to "local". Writes are validated, normalized and rate-limited
// per owner. Errors are JSON objects of the form {"code": ..., "message": ...}.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/gridboard/pkg/layout"
	"github.com/matzehuels/gridboard/pkg/store"
)

// OwnerHeader names the request header that carries the layout owner.
const OwnerHeader = "X-Gridboard-User"

// Defaults for a new Server.
const (
	DefaultOwner      = "local"
	DefaultWriteRate  = 10
	DefaultWriteBurst = 20

	// MaxRecords bounds the records accepted in one layout write.
	MaxRecords = layout.MaxRecords

	// maxBodySize bounds a layout write body.
	maxBodySize = 1 << 20

	shutdownTimeout = 10 * time.Second
	healthTimeout   = 2 * time.Second
)

// Server is the layout store HTTP service.
type Server struct {
	store    store.Store
	logger   *log.Logger
	limiter  *ownerLimiter
	metrics  *metrics
	validate *validator.Validate
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. nil keeps log.Default().
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWriteLimit sets the per-owner write rate (writes per second) and
// burst. A non-positive rate disables write throttling.
func WithWriteLimit(perSecond float64, burst int) Option {
	return func(s *Server) {
		s.limiter = newOwnerLimiter(perSecond, burst)
	}
}

// New creates a Server backed by st.
func New(st store.Store, opts ...Option) *Server {
	s := &Server{
		store:    st,
		logger:   log.Default(),
		limiter:  newOwnerLimiter(DefaultWriteRate, DefaultWriteBurst),
		metrics:  newMetrics(),
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	r.Route("/api/layouts/{breakpoint}", func(r chi.Router) {
		r.Use(s.owner)
		r.Get("/", s.handleGet)

		r.Group(func(r chi.Router) {
			r.Use(s.throttle)
			r.Put("/", s.handlePut)
			r.Post("/", s.handlePut)
			r.Delete("/", s.handleDelete)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Code: "NOT_FOUND", Message: "no route for " + r.URL.Path})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Code: "INVALID_INPUT", Message: r.Method + " not allowed"})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("layout store listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "addr", addr)
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

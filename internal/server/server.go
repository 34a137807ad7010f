// Package server exposes the landing page and the signup modal over HTTP.
//
// The modal is driven by a single form posted to /signup/{id}. Browsers with
// htmx swap the returned fragment in place; plain form posts receive the full
// page, or a redirect with a flash notice once the modal closes.
package server

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/goliatone/go-skillswap/internal/metrics"
	"github.com/goliatone/go-skillswap/internal/modal"
	"github.com/goliatone/go-skillswap/pkg/orchestrator"
	"github.com/goliatone/go-skillswap/pkg/renderers/html"
)

// Option customises the server.
type Option func(*Server)

// WithLogger sets the access and error logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics exposes the registry on /metrics and counts modal events.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithCORSOrigins allows cross origin requests from the given origins.
func WithCORSOrigins(origins ...string) Option {
	return func(s *Server) {
		for _, origin := range origins {
			if origin = strings.TrimRight(strings.TrimSpace(origin), "/"); origin != "" {
				s.corsOrigins = append(s.corsOrigins, origin)
			}
		}
	}
}

// WithSentry reports panics to Sentry. The client must already be
// initialised.
func WithSentry(enabled bool) Option {
	return func(s *Server) {
		s.sentry = enabled
	}
}

// WithVariant selects the theme variant used for every page.
func WithVariant(variant string) Option {
	return func(s *Server) {
		s.variant = strings.TrimSpace(variant)
	}
}

// Server routes requests to the page orchestrator and the modal store.
type Server struct {
	pages       *orchestrator.Orchestrator
	store       *modal.Store
	metrics     *metrics.Metrics
	logger      *log.Logger
	corsOrigins []string
	sentry      bool
	variant     string
	router      chi.Router
}

// New wires the router.
func New(pages *orchestrator.Orchestrator, store *modal.Store, options ...Option) (*Server, error) {
	if pages == nil {
		return nil, errors.New("server: orchestrator is required")
	}
	if err := pages.Err(); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.New("server: modal store is required")
	}
	s := &Server{
		pages:  pages,
		store:  store,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: s.logger, NoColor: true}))
	r.Use(middleware.Recoverer)
	if s.sentry {
		r.Use(sentryhttp.New(sentryhttp.Options{Repanic: true, Timeout: 2 * time.Second}).Handle)
	}
	if len(s.corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.corsOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type", "HX-Request", "HX-Target", "HX-Trigger", "HX-Current-URL"},
			ExposedHeaders:   []string{"HX-Redirect"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/", s.handleHome)
	r.Get("/login", s.handleLogin)
	r.Get("/signup", s.handleOpen)
	r.Get("/signup/{id}", s.handleShow)
	r.Post("/signup/{id}", s.handleAction)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(html.AssetsFS())))
	return r
}

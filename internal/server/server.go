// Package server serves rendered regulations over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ntpusu/lawtext/internal/index"
	"github.com/ntpusu/lawtext/internal/library"
	"github.com/ntpusu/lawtext/internal/metrics"
)

// Options configures a Server. Library is required; Source defaults to it.
// Index enables the catalogue and search endpoints and Metrics the
// /metrics endpoint.
type Options struct {
	Addr     string
	Library  *library.Library
	Source   library.Source
	Index    *index.DB
	Recorder metrics.Recorder
	Metrics  http.Handler
}

// Server is the HTTP document service.
type Server struct {
	Addr     string
	router   *chi.Mux
	server   *http.Server
	lib      *library.Library
	source   library.Source
	db       *index.DB
	recorder metrics.Recorder
	metrics  http.Handler
}

func New(opts Options) *Server {
	s := &Server{
		Addr:     opts.Addr,
		router:   chi.NewRouter(),
		lib:      opts.Library,
		source:   opts.Source,
		db:       opts.Index,
		recorder: opts.Recorder,
		metrics:  opts.Metrics,
	}
	if s.source == nil {
		s.source = opts.Library
	}
	if s.recorder == nil {
		s.recorder = metrics.NoopRecorder{}
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.observe)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/manifest.json", s.handleManifest)
	s.router.Get("/regulations/{id}", s.handleRegulation)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/regulations/{id}", s.handleRegulationMeta)
		if s.db != nil {
			r.Get("/regulations", s.handleListRegulations)
			r.Get("/search", s.handleSearch)
		}
	})

	if s.metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", s.metrics)
	}
}

// Handler returns the routed handler (for tests and embedding).
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on Addr. It returns http.ErrServerClosed after Shutdown.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Response is the JSON envelope of the /api endpoints.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, resp Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(resp)
}

func (s *Server) success(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func (s *Server) fail(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, Response{Error: message})
}

// Package server provides the HTTP API and frontend for the events finder.
package server

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/whatstheplan/whatstheplan-go/internal/config"
	"github.com/whatstheplan/whatstheplan-go/internal/metrics"
	"github.com/whatstheplan/whatstheplan-go/internal/models"
	"github.com/whatstheplan/whatstheplan-go/internal/pipeline"
)

// Runner executes one pipeline run per request.
type Runner interface {
	Run(ctx context.Context, userQuery, currentDate string) (pipeline.Result, error)
}

// HistoryStore reads back persisted run records.
type HistoryStore interface {
	GetSearch(ctx context.Context, id string) (*models.SearchRecord, error)
	ListSearches(ctx context.Context, limit int) ([]models.SearchRecord, error)
}

// Server is the HTTP server for the events finder API.
type Server struct {
	runner    Runner
	store     HistoryStore
	collector *metrics.Collector
	cfg       config.Config
	logger    *slog.Logger
	static    fs.FS
	server    *http.Server
}

// New creates a server with the given dependencies. static may be nil to
// disable frontend serving.
func New(runner Runner, store HistoryStore, collector *metrics.Collector, cfg config.Config, logger *slog.Logger, static fs.FS) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if collector == nil {
		collector = metrics.NewCollector()
	}
	return &Server{
		runner:    runner,
		store:     store,
		collector: collector,
		cfg:       cfg,
		logger:    logger,
		static:    static,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(requestLogger(s.logger))

	// The boundary throttle: pipeline runs are expensive, so searches are
	// rate-limited per client address.
	r.With(httprate.LimitByIP(s.cfg.RateLimitPerMinute, time.Minute)).
		Post("/search", s.handleSearch)

	r.Get("/api/searches", s.handleListSearches)
	r.Get("/api/searches/{id}", s.handleGetSearch)
	r.Get("/api/stats", s.handleStats)
	r.Get("/health", s.handleHealth)

	if s.static != nil {
		r.Handle("/*", http.FileServerFS(s.static))
	}

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.ServerHost, s.cfg.ServerPort)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("starting server", "addr", addr)
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

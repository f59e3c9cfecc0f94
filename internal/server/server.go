// Package server provides the HTTP API for kaitou.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/kaitou/internal/config"
	"github.com/hyperjump/kaitou/internal/corpus"
	"github.com/hyperjump/kaitou/internal/engine"
	"github.com/hyperjump/kaitou/internal/ocr"
)

// ReloadFunc re-extracts the data directory and re-ingests the corpus,
// returning the new corpus size.
type ReloadFunc func(ctx context.Context) (int, error)

// PersistFunc saves a freshly ingested snapshot to disk.
type PersistFunc func(ctx context.Context, snap *corpus.Snapshot) error

// Server is the HTTP server for the kaitou API.
type Server struct {
	engine  *engine.Engine
	ocr     *ocr.Client // optional; nil disables /ask-image
	reload  ReloadFunc  // optional; nil disables /reload
	persist PersistFunc // optional; nil skips persistence on /ingest
	config  *config.ServerConfig
	logger  *zap.Logger
	server  *http.Server
}

// NewServer creates a server with the given dependencies. ocrClient,
// reload, and persist may be nil; the corresponding endpoints degrade
// gracefully.
func NewServer(
	eng *engine.Engine,
	ocrClient *ocr.Client,
	reload ReloadFunc,
	persist PersistFunc,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		engine:  eng,
		ocr:     ocrClient,
		reload:  reload,
		persist: persist,
		config:  cfg,
		logger:  logger,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Post("/api/v1/ask", s.handleAsk)
	r.Post("/api/v1/ask-image", s.handleAskImage)
	r.Post("/api/v1/ingest", s.handleIngest)
	r.Post("/api/v1/reload", s.handleReload)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	return r
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

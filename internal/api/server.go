// Package api serves the stripper over HTTP.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dusk-indust/edstrip/internal/config"
	"github.com/dusk-indust/edstrip/internal/mcptools"
)

// Server is the HTTP API server for edstrip.
type Server struct {
	router chi.Router
	svc    *mcptools.StripService
	mcp    http.Handler
	log    *slog.Logger
	cfg    config.ServerConfig
}

// NewServer creates and configures the HTTP server. The MCP tools are
// mounted at /mcp over the streamable HTTP transport.
func NewServer(svc *mcptools.StripService, log *slog.Logger, cfg config.ServerConfig) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		svc: svc,
		mcp: mcptools.HTTPHandler(mcptools.NewMCPServer(svc)),
		log: log,
		cfg: cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/strip", s.handleStrip)
		r.Get("/languages", s.handleLanguages)
	})

	r.Handle("/mcp", s.mcp)

	s.router = r
}

// ListenAndServe serves on cfg.Addr until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	s.log.Info("listening", "addr", s.cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

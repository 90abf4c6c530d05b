// Package server exposes the layout pipeline over HTTP.
//
// The server is an outer surface only: it translates requests into pipeline
// and store calls and maps coded errors onto status codes. The core packages
// stay network-free.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/cache"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/pipeline"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/store"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// shutdownTimeout bounds how long in-flight requests may run after the
// server's context is canceled.
const shutdownTimeout = 10 * time.Second

// Config configures the API server. Nil Cache disables layout caching; nil
// Store falls back to an in-memory store.
type Config struct {
	Addr   string
	Cache  cache.Cache
	Store  store.Store
	Logger *log.Logger
}

// Server is the HTTP API for packing and saved layouts.
type Server struct {
	addr   string
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	router chi.Router
}

// New builds a server and mounts its routes.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	s := &Server{
		addr:   cfg.Addr,
		runner: pipeline.NewRunner(cfg.Cache, nil, cfg.Logger),
		store:  cfg.Store,
		logger: cfg.Logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the mounted router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/pack", s.handlePack)
		r.Get("/strategies", s.handleStrategies)

		r.Route("/layouts", func(r chi.Router) {
			r.Post("/", s.handleSaveLayout)
			r.Get("/", s.handleListLayouts)
			r.Get("/{id}", s.handleGetLayout)
			r.Delete("/{id}", s.handleDeleteLayout)
		})
	})

	return r
}

// ListenAndServe runs the server until the context is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down api")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// logRequests logs one line per request with status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// Package server provides the HTTP API for khoj.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/openbasket/khoj/internal/catalog"
	"github.com/openbasket/khoj/internal/config"
	"github.com/openbasket/khoj/internal/metrics"
	"github.com/openbasket/khoj/internal/search"
)

// Server is the HTTP server for the khoj API.
type Server struct {
	engine  *search.Engine
	catalog catalog.Store
	config  *config.Config
	logger  *zap.Logger
	server  *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	engine *search.Engine,
	store catalog.Store,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		engine:  engine,
		catalog: store,
		config:  cfg,
		logger:  logger,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))
	r.Use(metrics.Middleware())

	r.Post("/api/v1/product", s.handleCreateProduct)
	r.Get("/api/v1/product/{productId}", s.handleGetProduct)
	r.Put("/api/v1/product/meta-data", s.handleUpdateMetadata)
	r.Get("/api/v1/search/product", s.handleSearch)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// requestID attaches a short unique ID to each response so client reports
// can be correlated with server logs.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-ID", uuid.New().String()[:8])
		next.ServeHTTP(w, r)
	})
}

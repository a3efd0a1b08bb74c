package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hexearth/hexearth/internal/api/middleware"
	"github.com/hexearth/hexearth/internal/api/rest"
	"github.com/hexearth/hexearth/internal/ledger"
	"github.com/hexearth/hexearth/internal/logger"
	"github.com/hexearth/hexearth/internal/store"
	"github.com/hexearth/hexearth/internal/sweeper"
	"github.com/hexearth/hexearth/internal/tiles"
)

// Config holds the server configuration
type Config struct {
	Debug          bool
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
}

// Server wraps the HTTP server
type Server struct {
	config       Config
	store        store.Store
	orchestrator tiles.Orchestrator
	gateway      ledger.Gateway
	escrowSweep  sweeper.EscrowSweeper
	images       *tiles.ImagePool
	httpServer   *http.Server
}

// New creates a new API server
func New(
	cfg Config,
	st store.Store,
	orchestrator tiles.Orchestrator,
	gateway ledger.Gateway,
	escrowSweep sweeper.EscrowSweeper,
	images *tiles.ImagePool,
) *Server {
	return &Server{
		config:       cfg,
		store:        st,
		orchestrator: orchestrator,
		gateway:      gateway,
		escrowSweep:  escrowSweep,
		images:       images,
	}
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	// Set Gin mode based on debug flag
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Setup middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS(s.config.AllowedOrigins))

	// Create REST handler
	restHandler := rest.NewHandler(s.orchestrator, s.store, s.gateway, s.escrowSweep, s.images)

	// Setup REST routes
	rest.SetupRoutes(router, restHandler)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.Info("Starting API server",
		zap.String("address", addr),
	)

	// Start server
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}

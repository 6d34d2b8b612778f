// internal/interfaces/http/server.go
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/api"
	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/checkout"
	"github.com/your-org/storefront-client/internal/domain/session"
	"github.com/your-org/storefront-client/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-client/internal/interfaces/http/routes"
)

// Dependencies carries the wired storefront engine into the HTTP layer
type Dependencies struct {
	Cart        *cart.Store
	Sessions    *session.Manager
	Coordinator *checkout.Coordinator
	API         *api.Client
	Logger      *logrus.Logger
}

// Server represents the local HTTP facade
type Server struct {
	config     *config.Config
	gin        *gin.Engine
	httpServer *http.Server
	deps       Dependencies
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.Config, deps Dependencies) *Server {
	return &Server{
		config: cfg,
		deps:   deps,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	// Set Gin mode based on environment
	if s.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	s.gin = gin.New()

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.gin,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	s.deps.Logger.WithField("port", s.config.Server.Port).Info("HTTP server starting")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.deps.Logger.Info("Shutting down HTTP server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	return nil
}

// setupMiddleware configures all middleware for the server
func (s *Server) setupMiddleware() {
	// Recovery middleware - recover from panics
	s.gin.Use(gin.Recovery())

	// Custom logger middleware
	s.gin.Use(middleware.Logger(s.deps.Logger))

	// Request ID middleware
	s.gin.Use(middleware.RequestID())

	// CORS middleware
	s.gin.Use(middleware.CORS(s.config))

	// Security headers middleware
	s.gin.Use(middleware.SecurityHeaders())

	// Timeout middleware
	s.gin.Use(middleware.Timeout(30 * time.Second))
}

// setupRoutes configures all routes for the server
func (s *Server) setupRoutes() {
	// Health check endpoint (no auth required)
	s.gin.GET("/health", s.healthCheck)

	v1 := s.gin.Group("/api/v1")
	routes.SetupAuthRoutes(v1, s.deps.API, s.deps.Sessions)
	routes.SetupCartRoutes(v1, s.deps.Cart, s.deps.API)
	routes.SetupCheckoutRoutes(v1, s.deps.Coordinator, s.deps.Cart)
	routes.SetupCatalogRoutes(v1, s.deps.API)
	routes.SetupAccountRoutes(v1, s.deps.Sessions)
	routes.SetupAdminRoutes(v1, s.deps.Sessions)
}

// healthCheck reports process health
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"app":     s.config.App.Name,
		"version": s.config.App.Version,
	})
}

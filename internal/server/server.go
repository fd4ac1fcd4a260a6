package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ridwanfathin/invoice-dashboard/internal/config"
	"github.com/ridwanfathin/invoice-dashboard/internal/handler"
	"github.com/ridwanfathin/invoice-dashboard/internal/middleware"
	"github.com/ridwanfathin/invoice-dashboard/internal/service"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Services are the collaborators the routes are served from
type Services struct {
	Auth      service.AuthService
	Invoices  service.InvoiceService
	Dashboard service.DashboardService
}

// Server represents the HTTP server for the invoice dashboard
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	config     *config.Config
	log        *zap.Logger
}

// NewServer creates and configures a new server instance
func NewServer(cfg *config.Config, services Services, registry *prometheus.Registry, log *zap.Logger) *Server {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestResponseLogger(log))

	// Create server
	server := &Server{
		router: router,
		config: cfg,
		log:    log,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}

	// Configure routes
	server.setupRoutes(services, registry)

	return server
}

// GetRouter returns the gin router instance
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// setupRoutes configures all application routes
func (s *Server) setupRoutes(services Services, registry *prometheus.Registry) {
	// Health check endpoint
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// Prometheus metrics
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))

	// API documentation endpoints
	// Access the Swagger UI at http://localhost:8080/api-docs/index.html
	swaggerHandler := ginSwagger.WrapHandler(swaggerFiles.Handler)
	s.router.GET("/api-docs/*any", swaggerHandler)

	s.router.GET("/api-docs", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/api-docs/index.html")
	})

	// Pages behind the session check
	guarded := s.router.Group("/", middleware.Authorized(services.Auth))
	handler.NewAuthHandler(services.Auth, s.log, s.config.SecureCookies).RegisterRoutes(s.router, guarded)

	dashboard := guarded.Group("/dashboard")
	handler.NewDashboardHandler(services.Dashboard, s.log).RegisterRoutes(dashboard)
	handler.NewInvoiceHandler(services.Invoices, services.Dashboard, s.log).RegisterRoutes(dashboard)
}

// Start begins listening for requests and handles graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		s.log.Info("Server listening", zap.Int("port", s.config.Port))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	}
	s.log.Info("Shutting down server...")

	if err := s.Shutdown(); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.log.Info("Server exited gracefully")
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

package main

import (
	"context"
	"fmt"
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/ridwanfathin/invoice-dashboard/docs"
	"github.com/ridwanfathin/invoice-dashboard/internal/cache"
	"github.com/ridwanfathin/invoice-dashboard/internal/config"
	"github.com/ridwanfathin/invoice-dashboard/internal/database"
	"github.com/ridwanfathin/invoice-dashboard/internal/logger"
	"github.com/ridwanfathin/invoice-dashboard/internal/metrics"
	"github.com/ridwanfathin/invoice-dashboard/internal/navigation"
	"github.com/ridwanfathin/invoice-dashboard/internal/repository"
	"github.com/ridwanfathin/invoice-dashboard/internal/server"
	"github.com/ridwanfathin/invoice-dashboard/internal/service"
	"go.uber.org/zap"
)

// @title Invoice Dashboard API
// @version 1.0
// @description Invoice listing, creation, editing and deletion for the Acme dashboard.
// @BasePath /
func main() {
	// Load configuration
	log.Println("Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLog, err := logger.New(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zapLog.Sync() }()

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.Port)

	ctx := context.Background()

	// Connect to database
	zapLog.Info("Connecting to database...")
	db, err := database.NewPostgresDB(ctx, cfg.PostgresURL)
	if err != nil {
		zapLog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Page cache: redis when configured, otherwise in-process
	var pageCache cache.PageCache
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedisPageCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL, zapLog)
		if err != nil {
			zapLog.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer redisCache.Close()
		pageCache = redisCache
	} else {
		pageCache = cache.NewMemoryPageCache(cfg.CacheTTL)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	mutationMetrics := metrics.NewMutationMetrics(registry)

	// Initialize repositories
	pool := db.GetPool()
	invoiceRepo := repository.NewPostgresInvoiceRepository(pool)
	customerRepo := repository.NewPostgresCustomerRepository(pool)
	userRepo := repository.NewPostgresUserRepository(pool)

	// Create services
	services := server.Services{
		Auth: service.NewAuthService(service.AuthServiceConfig{
			UserRepo:   userRepo,
			Logger:     zapLog,
			JWTSecret:  cfg.JWTSecret,
			SessionTTL: cfg.SessionTTL,
		}),
		Invoices: service.NewInvoiceService(service.InvoiceServiceConfig{
			Repo:           invoiceRepo,
			Cache:          pageCache,
			Navigator:      navigation.NewController(navigation.InvoicesPath),
			Metrics:        mutationMetrics,
			Logger:         zapLog,
			PersistTimeout: cfg.PersistTimeout,
		}),
		Dashboard: service.NewDashboardService(service.DashboardServiceConfig{
			Invoices:     invoiceRepo,
			Customers:    customerRepo,
			Cache:        pageCache,
			Metrics:      mutationMetrics,
			Logger:       zapLog,
			ItemsPerPage: cfg.ItemsPerPage,
		}),
	}

	// Create and configure server
	appServer := server.NewServer(cfg, services, registry, zapLog)

	// Start server (blocking call)
	if err := appServer.Start(); err != nil {
		zapLog.Fatal("Server error", zap.Error(err))
	}

	fmt.Println("Server shutdown complete")
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/petmily/vetpricediscovery/backend/internal/adapters/cache"
	"github.com/petmily/vetpricediscovery/backend/internal/adapters/database"
	"github.com/petmily/vetpricediscovery/backend/internal/adapters/quota"
	"github.com/petmily/vetpricediscovery/backend/internal/adapters/seed"
	"github.com/petmily/vetpricediscovery/backend/internal/api/handlers"
	"github.com/petmily/vetpricediscovery/backend/internal/api/routes"
	"github.com/petmily/vetpricediscovery/backend/internal/application/services"
	"github.com/petmily/vetpricediscovery/backend/internal/domain/providers"
	"github.com/petmily/vetpricediscovery/backend/internal/infrastructure/clients/postgres"
	"github.com/petmily/vetpricediscovery/backend/internal/infrastructure/clients/redis"
	"github.com/petmily/vetpricediscovery/backend/internal/infrastructure/observability"
	"github.com/petmily/vetpricediscovery/backend/pkg/config"
)

func main() {

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client. The service runs fine without it: the
	// cache and quota stores fall back to in-process maps that only
	// live as long as the process.
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Initialize adapters
	recordAdapter := database.NewPriceRecordAdapter(pgClient)
	seedTable := seed.NewTable()

	var cacheProvider providers.CacheProvider
	var quotaProvider providers.QuotaProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
		quotaProvider = quota.NewRedisAdapter(redisClient)
		log.Println("Cache and quota stores backed by Redis")
	} else {
		cacheProvider = cache.NewMemoryAdapter()
		quotaProvider = quota.NewMemoryAdapter()
		log.Println("Cache and quota stores running in-process (Redis unavailable)")
	}

	// Initialize services
	fusionService := services.NewFusionService(
		recordAdapter,
		seedTable,
		cfg.Estimate.MinimumSampleSize,
		cfg.Estimate.FetchLimit,
	)

	estimateService := services.NewEstimateService(
		fusionService,
		cacheProvider,
		quotaProvider,
		metrics,
		services.TierLimits{
			Anonymous: cfg.Quota.AnonymousMonthlyLimit,
			Member:    cfg.Quota.MemberMonthlyLimit,
		},
		cfg.Estimate.CacheTTLSeconds,
	)

	// Initialize handlers
	estimateHandler := handlers.NewEstimateHandler(estimateService)

	// Set up router
	router := routes.NewRouter(estimateHandler, metrics)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}

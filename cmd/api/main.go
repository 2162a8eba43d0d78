package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/milkfamily/trace_api/internal/cache"
	"github.com/milkfamily/trace_api/internal/config"
	"github.com/milkfamily/trace_api/internal/database"
	"github.com/milkfamily/trace_api/internal/handler"
	"github.com/milkfamily/trace_api/internal/middleware"
	"github.com/milkfamily/trace_api/internal/repository"
	"github.com/milkfamily/trace_api/internal/service"
	"github.com/milkfamily/trace_api/internal/worker"
	"github.com/milkfamily/trace_api/pkg/ledger"
)

// main is the application entrypoint for the MilkFamily trace API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting trace api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 4. Initialize ledger client
	ledgerClient := ledger.NewClient(ledger.Config{
		BaseURL: cfg.Ledger.BaseURL,
		APIKey:  cfg.Ledger.APIKey,
	})

	// 5. Initialize repositories
	productRepo := repository.NewProductRepository(db)
	scanRepo := repository.NewScanRepository(db)

	// 6. Initialize services. The verify chain is ordered: the record store
	// first for rich display data, the ledger as disaster-recovery fallback.
	verifySvc := service.NewVerifyService(
		service.NewPrimarySource(productRepo),
		service.NewLedgerSource(ledgerClient),
	)
	catalogSvc := service.NewCatalogService(productRepo, ledgerClient, cfg.ClientBaseURL)
	scanSvc := service.NewScanService(productRepo, scanRepo)
	assistantSvc := service.NewAssistantService()

	// 7. Initialize handlers
	handlers := &Handlers{
		Health:    handler.NewHealthHandler(db, redisClient, ledgerClient),
		Product:   handler.NewProductHandler(catalogSvc),
		Verify:    handler.NewVerifyHandler(verifySvc),
		Scan:      handler.NewScanHandler(scanSvc),
		Assistant: handler.NewAssistantHandler(assistantSvc),
	}

	// 8. Initialize middleware
	rateLimiter := middleware.NewRateLimiter(redisClient, cfg.RateLimit.RequestsPerMinute)

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, rateLimiter)

	// 10. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 11. Start workers
	go worker.NewLedgerWatchWorker(ledgerClient, cfg.Worker.LedgerWatchInterval).Start(ctx)

	// 12. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Cancel context to stop workers
	cancel()

	// 15. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health    *handler.HealthHandler
	Product   *handler.ProductHandler
	Verify    *handler.VerifyHandler
	Scan      *handler.ScanHandler
	Assistant *handler.AssistantHandler
}

// setupRoutes registers all routes. Paths are hardcoded in the deployed
// consumer and admin clients, keep them stable.
func setupRoutes(router *gin.Engine, handlers *Handlers, rateLimiter *middleware.RateLimiter) {
	router.GET("/health", handlers.Health.GetHealth)

	// Catalog
	router.GET("/products", handlers.Product.GetProducts)
	router.POST("/create_product", handlers.Product.CreateProduct)
	router.PUT("/products/:uid/visibility", handlers.Product.SetVisibility)

	// Verification flow
	router.GET("/verify/:uid", handlers.Verify.VerifyProduct)
	router.POST("/record_scan", rateLimiter.Handle(), handlers.Scan.RecordScan)
	router.GET("/scan_history", handlers.Scan.GetHistory)

	// Consumer Q&A
	router.POST("/ask_ai", rateLimiter.Handle(), handlers.Assistant.AskAssistant)
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

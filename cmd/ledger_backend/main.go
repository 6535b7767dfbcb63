package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/personal_ledger/internal/adapters/rateprovider"
	portsrepo "github.com/SscSPs/personal_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/personal_ledger/internal/core/services"
	"github.com/SscSPs/personal_ledger/internal/handlers"
	"github.com/SscSPs/personal_ledger/internal/middleware"
	"github.com/SscSPs/personal_ledger/internal/platform/config"
	"github.com/SscSPs/personal_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/personal_ledger/internal/repositories/filestore"
	"github.com/SscSPs/personal_ledger/internal/utils"
	"github.com/SscSPs/personal_ledger/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Personal Ledger API
// @version 1.0
// @description Multi-currency income and expense ledger with live exchange rates and aggregate reports.

// @host localhost:8080
// @BasePath /
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos, closeStore, err := openRepositories(cfg, logger)
	if err != nil {
		logger.Error("Failed to open ledger store", slog.String("backend", cfg.StoreBackend), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	rateProvider := rateprovider.NewExchangeRateAPIClient(cfg.RateProviderURL, cfg.RateFetchTimeout)
	serviceContainer := services.NewServiceContainer(cfg, repos, rateProvider)

	startupCtx := middleware.WithLogger(context.Background(), logger)
	if err := serviceContainer.Currency.LoadCached(startupCtx); err != nil {
		logger.Warn("Starting without cached exchange rates", slog.String("error", err.Error()))
	}
	refreshCtx, cancel := context.WithTimeout(startupCtx, cfg.RateFetchTimeout+time.Second)
	if _, err := serviceContainer.Currency.Refresh(refreshCtx); err != nil {
		logger.Warn("Initial exchange rate refresh failed, conversions use the cached table", slog.String("error", err.Error()))
	}
	cancel()

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	rateLimiter, err := middleware.NewMemoryLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, cors)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer,
		middleware.RateLimit(rateLimiter),
		middleware.PosthogMiddleware(posthogClient, cfg.LedgerOwnerID),
	)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store_backend", cfg.StoreBackend), slog.String("base_currency", cfg.BaseCurrency))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// openRepositories builds the configured store backend. The returned func releases it.
func openRepositories(cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		logger.Info("Running database migrations...")
		if err := pgsql.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}

		dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Database connection pool established.")
		return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil

	default:
		store, err := filestore.Open(cfg.DataDir, logger)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("File store opened", slog.String("data_dir", cfg.DataDir))
		return portsrepo.RepositoryProvider{TransactionRepo: store, RateSnapshotRepo: store}, func() {}, nil
	}
}

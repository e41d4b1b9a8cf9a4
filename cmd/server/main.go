package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/si-ka-repo/DepositManagement/internal/adapter/http"
	"github.com/si-ka-repo/DepositManagement/internal/adapter/http/handler"
	"github.com/si-ka-repo/DepositManagement/internal/adapter/http/middleware"
	postgresRepo "github.com/si-ka-repo/DepositManagement/internal/adapter/repository/postgres"
	redisRepo "github.com/si-ka-repo/DepositManagement/internal/adapter/repository/redis"
	"github.com/si-ka-repo/DepositManagement/internal/infrastructure/clock"
	"github.com/si-ka-repo/DepositManagement/internal/infrastructure/config"
	"github.com/si-ka-repo/DepositManagement/internal/infrastructure/logger"
	"github.com/si-ka-repo/DepositManagement/internal/infrastructure/metrics"
	"github.com/si-ka-repo/DepositManagement/internal/infrastructure/postgres"
	"github.com/si-ka-repo/DepositManagement/internal/infrastructure/redis"
	"github.com/si-ka-repo/DepositManagement/internal/usecase"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Apply migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	residentRepo := postgresRepo.NewResidentRepository(pool)
	facilityRepo := postgresRepo.NewFacilityRepository(pool)
	unitRepo := postgresRepo.NewUnitRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)
	sysClock := clock.New()
	appMetrics := metrics.New()

	// Initialize use cases
	ledgerUC := usecase.NewLedgerUseCase(entryRepo, residentRepo, idGen, sysClock, retrier, cache, appMetrics)
	statementUC := usecase.NewStatementUseCase(entryRepo, residentRepo, facilityRepo, unitRepo, appMetrics)
	dashboardUC := usecase.NewDashboardUseCase(facilityRepo, residentRepo, entryRepo, cache, cfg.DashboardCacheTTL, appMetrics)
	verificationUC := usecase.NewCashVerificationUseCase(facilityRepo, dashboardUC, sysClock)
	facilityUC := usecase.NewFacilityUseCase(facilityRepo, unitRepo, idGen, sysClock)
	residentUC := usecase.NewResidentUseCase(residentRepo, facilityRepo, unitRepo, idGen, sysClock)
	importUC := usecase.NewImportUseCase(txManager, facilityRepo, unitRepo, residentRepo, entryRepo, idGen, sysClock, cache, appMetrics)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransactionHandler:      handler.NewTransactionHandler(ledgerUC, sysClock),
		StatementHandler:        handler.NewStatementHandler(statementUC, sysClock),
		FacilityHandler:         handler.NewFacilityHandler(facilityUC),
		ResidentHandler:         handler.NewResidentHandler(residentUC),
		DashboardHandler:        handler.NewDashboardHandler(dashboardUC, sysClock),
		CashVerificationHandler: handler.NewCashVerificationHandler(verificationUC),
		ImportHandler:           handler.NewImportHandler(importUC),
		HealthHandler:           handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:        idempotencyStore,
		IdempotencyTTL:          cfg.IdempotencyTTL,
		RateLimiter:             middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
		Logger:                  appLogger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

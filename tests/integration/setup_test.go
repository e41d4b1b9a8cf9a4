package integration

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"

	adaptershttp "github.com/si-ka-repo/DepositManagement/internal/adapter/http"
	"github.com/si-ka-repo/DepositManagement/internal/adapter/http/handler"
	"github.com/si-ka-repo/DepositManagement/internal/adapter/repository/postgres"
	redisrepo "github.com/si-ka-repo/DepositManagement/internal/adapter/repository/redis"
	"github.com/si-ka-repo/DepositManagement/internal/infrastructure/clock"
	infraredis "github.com/si-ka-repo/DepositManagement/internal/infrastructure/redis"
	"github.com/si-ka-repo/DepositManagement/internal/usecase"
	"github.com/si-ka-repo/DepositManagement/tests/testutil"
)

// newTestRouter wires the full HTTP stack over the test database, the
// same way cmd/server does in production.
func newTestRouter(ctx context.Context, t *testing.T, testDB *testutil.TestDB) http.Handler {
	t.Helper()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	entryRepo := postgres.NewEntryRepository(pool)
	residentRepo := postgres.NewResidentRepository(pool)
	facilityRepo := postgres.NewFacilityRepository(pool)
	unitRepo := postgres.NewUnitRepository(pool)
	cache := redisrepo.NewCache(redisClient)
	idGen := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier(zerolog.Nop())
	sysClock := clock.New()

	ledgerUC := usecase.NewLedgerUseCase(entryRepo, residentRepo, idGen, sysClock, retrier, cache, nil)
	statementUC := usecase.NewStatementUseCase(entryRepo, residentRepo, facilityRepo, unitRepo, nil)
	dashboardUC := usecase.NewDashboardUseCase(facilityRepo, residentRepo, entryRepo, cache, time.Second, nil)
	verificationUC := usecase.NewCashVerificationUseCase(facilityRepo, dashboardUC, sysClock)
	facilityUC := usecase.NewFacilityUseCase(facilityRepo, unitRepo, idGen, sysClock)
	residentUC := usecase.NewResidentUseCase(residentRepo, facilityRepo, unitRepo, idGen, sysClock)
	importUC := usecase.NewImportUseCase(txManager, facilityRepo, unitRepo, residentRepo, entryRepo, idGen, sysClock, cache, nil)

	return adaptershttp.NewRouter(adaptershttp.RouterConfig{
		TransactionHandler:      handler.NewTransactionHandler(ledgerUC, sysClock),
		StatementHandler:        handler.NewStatementHandler(statementUC, sysClock),
		FacilityHandler:         handler.NewFacilityHandler(facilityUC),
		ResidentHandler:         handler.NewResidentHandler(residentUC),
		DashboardHandler:        handler.NewDashboardHandler(dashboardUC, sysClock),
		CashVerificationHandler: handler.NewCashVerificationHandler(verificationUC),
		ImportHandler:           handler.NewImportHandler(importUC),
		HealthHandler:           handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:        redisrepo.NewIdempotencyStore(redisClient),
		IdempotencyTTL:          time.Minute,
		Logger:                  zerolog.Nop(),
	})
}

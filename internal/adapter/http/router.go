package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/si-ka-repo/DepositManagement/internal/adapter/http/handler"
	"github.com/si-ka-repo/DepositManagement/internal/adapter/http/middleware"
	"github.com/si-ka-repo/DepositManagement/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TransactionHandler      *handler.TransactionHandler
	StatementHandler        *handler.StatementHandler
	FacilityHandler         *handler.FacilityHandler
	ResidentHandler         *handler.ResidentHandler
	DashboardHandler        *handler.DashboardHandler
	CashVerificationHandler *handler.CashVerificationHandler
	ImportHandler           *handler.ImportHandler
	HealthHandler           *handler.HealthHandler
	IdempotencyStore        usecase.IdempotencyStore
	IdempotencyTTL          time.Duration
	RateLimiter             *middleware.RateLimiter
	Logger                  zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Record)
			r.Post("/retroactive", cfg.TransactionHandler.RecordRetroactive)
			r.Post("/{id}/correct", cfg.TransactionHandler.Correct)
		})

		// Residents
		r.Route("/residents", func(r chi.Router) {
			r.Post("/", cfg.ResidentHandler.Create)
			r.Get("/", cfg.ResidentHandler.List)
			r.Get("/{id}", cfg.ResidentHandler.Get)
			r.Put("/{id}", cfg.ResidentHandler.Update)
			r.Get("/{id}/ledger", cfg.TransactionHandler.Ledger)
			r.Get("/{id}/balance", cfg.TransactionHandler.Balance)
			r.Get("/{id}/statement", cfg.StatementHandler.ResidentStatement)
		})

		// Facilities
		r.Route("/facilities", func(r chi.Router) {
			r.Post("/", cfg.FacilityHandler.Create)
			r.Get("/", cfg.FacilityHandler.List)
			r.Get("/{id}", cfg.FacilityHandler.Get)
			r.Put("/{id}", cfg.FacilityHandler.Update)
			r.Post("/{id}/units", cfg.FacilityHandler.CreateUnit)
			r.Get("/{id}/units", cfg.FacilityHandler.ListUnits)
			r.Get("/{id}/statement", cfg.StatementHandler.FacilityStatement)
			r.Get("/{id}/statements", cfg.StatementHandler.BatchStatements)
			r.Post("/{id}/cash-verification", cfg.CashVerificationHandler.Verify)
		})

		// Dashboard
		r.Get("/dashboard", cfg.DashboardHandler.Summary)

		// Legacy data import
		r.Post("/import", cfg.ImportHandler.Run)
	})

	return r
}

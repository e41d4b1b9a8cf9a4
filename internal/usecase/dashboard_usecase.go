package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/si-ka-repo/DepositManagement/internal/domain"
	"github.com/si-ka-repo/DepositManagement/internal/infrastructure/metrics"
)

// dashboardKeyPrefix namespaces cached summaries. Ledger writers delete
// the whole prefix so a recorded entry is visible on the next load.
const dashboardKeyPrefix = "dashboard:"

// DashboardUseCase computes per-facility custodial totals. Totals are
// cached; the cache is best effort and a failed cache never fails the
// request.
type DashboardUseCase struct {
	facilityRepo FacilityRepository
	residentRepo ResidentRepository
	entryRepo    EntryRepository
	cache        Cache
	cacheTTL     time.Duration
	metrics      *metrics.Metrics
}

// NewDashboardUseCase creates a new DashboardUseCase.
func NewDashboardUseCase(
	facilityRepo FacilityRepository,
	residentRepo ResidentRepository,
	entryRepo EntryRepository,
	cache Cache,
	cacheTTL time.Duration,
	m *metrics.Metrics,
) *DashboardUseCase {
	return &DashboardUseCase{
		facilityRepo: facilityRepo,
		residentRepo: residentRepo,
		entryRepo:    entryRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
		metrics:      m,
	}
}

// FacilitySummary is one facility's custodial total.
type FacilitySummary struct {
	FacilityID   string          `json:"facility_id"`
	FacilityName string          `json:"facility_name"`
	Total        decimal.Decimal `json:"total"`
}

// DashboardSummary is the custodial totals of all (or one) facilities at
// a month end.
type DashboardSummary struct {
	Year       int               `json:"year"`
	Month      time.Month        `json:"month"`
	Total      decimal.Decimal   `json:"total"`
	Facilities []FacilitySummary `json:"facilities"`
}

// Summary returns the custodial totals at the end of (year, month).
// An empty facilityID covers all active facilities.
func (uc *DashboardUseCase) Summary(ctx context.Context, facilityID string, year int, month time.Month) (*DashboardSummary, error) {
	key := fmt.Sprintf("%s%s:%04d-%02d", dashboardKeyPrefix, facilityID, year, int(month))

	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, key); err == nil {
			var summary DashboardSummary
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				uc.metrics.DashboardCacheHit(true)
				return &summary, nil
			}
		}
	}
	uc.metrics.DashboardCacheHit(false)

	facilities, err := uc.facilityRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	if facilityID != "" {
		var selected []*domain.Facility
		for _, f := range facilities {
			if f.ID == facilityID {
				selected = append(selected, f)
			}
		}
		if len(selected) == 0 {
			return nil, domain.ErrFacilityNotFound
		}
		facilities = selected
	}

	summary := &DashboardSummary{
		Year:  year,
		Month: month,
		Total: decimal.Zero,
	}

	for _, facility := range facilities {
		total, err := uc.facilityBalance(ctx, facility.ID, year, month)
		if err != nil {
			return nil, err
		}

		summary.Facilities = append(summary.Facilities, FacilitySummary{
			FacilityID:   facility.ID,
			FacilityName: facility.Name,
			Total:        total,
		})
		summary.Total = summary.Total.Add(total)
	}

	if uc.cache != nil {
		if encoded, err := json.Marshal(summary); err == nil {
			_ = uc.cache.Set(ctx, key, string(encoded), uc.cacheTTL)
		}
	}

	return summary, nil
}

// facilityBalance sums the month-end balances of every resident still in
// custody at the facility.
func (uc *DashboardUseCase) facilityBalance(ctx context.Context, facilityID string, year int, month time.Month) (decimal.Decimal, error) {
	residents, err := uc.residentRepo.List(ctx, ResidentFilter{FacilityID: facilityID})
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, resident := range residents {
		if !resident.InCustody() {
			continue
		}

		entries, err := uc.entryRepo.ListByResident(ctx, resident.ID)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(domain.BalanceAsOf(entries, year, month))
	}

	return total, nil
}

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/si-ka-repo/DepositManagement/internal/domain"
	"github.com/si-ka-repo/DepositManagement/internal/usecase"
	"github.com/si-ka-repo/DepositManagement/internal/usecase/mocks"
)

type dashboardFixture struct {
	entryRepo    *mocks.FakeEntryRepository
	residentRepo *mocks.FakeResidentRepository
	facilityRepo *mocks.FakeFacilityRepository
	cache        *mocks.FakeCache
	uc           *usecase.DashboardUseCase
}

func newDashboardFixture(t *testing.T) *dashboardFixture {
	t.Helper()

	f := &dashboardFixture{
		entryRepo:    mocks.NewFakeEntryRepository(),
		residentRepo: mocks.NewFakeResidentRepository(),
		facilityRepo: mocks.NewFakeFacilityRepository(),
		cache:        mocks.NewFakeCache(),
	}
	f.uc = usecase.NewDashboardUseCase(f.facilityRepo, f.residentRepo, f.entryRepo, f.cache, time.Minute, nil)

	ctx := context.Background()
	for _, fac := range []*domain.Facility{
		{ID: "f1", Name: "ひまわり寮", IsActive: true},
		{ID: "f2", Name: "さくら寮", IsActive: true},
	} {
		if err := f.facilityRepo.Create(ctx, fac); err != nil {
			t.Fatal(err)
		}
	}

	departed := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	for _, r := range []*domain.Resident{
		{ID: "r1", FacilityID: "f1", UnitID: "u1", Name: "山田太郎", IsActive: true},
		{ID: "r2", FacilityID: "f2", UnitID: "u2", Name: "佐藤花子", IsActive: true},
		{ID: "r3", FacilityID: "f1", UnitID: "u1", Name: "退所済", IsActive: true, EndDate: &departed},
	} {
		if err := f.residentRepo.Create(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	entries := []*domain.LedgerEntry{
		{ID: "e1", ResidentID: "r1", OccurredOn: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), Kind: domain.KindDeposit, Amount: decimal.NewFromInt(10000)},
		{ID: "e2", ResidentID: "r1", OccurredOn: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Kind: domain.KindWithdrawal, Amount: decimal.NewFromInt(3000)},
		{ID: "e3", ResidentID: "r2", OccurredOn: time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), Kind: domain.KindDeposit, Amount: decimal.NewFromInt(5000)},
		// departed resident's money no longer sits in the facility safe
		{ID: "e4", ResidentID: "r3", OccurredOn: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Kind: domain.KindDeposit, Amount: decimal.NewFromInt(99999)},
	}
	for _, e := range entries {
		if err := f.entryRepo.Create(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	return f
}

func TestDashboardUseCase_Summary(t *testing.T) {
	f := newDashboardFixture(t)

	summary, err := f.uc.Summary(context.Background(), "", 2024, time.March)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summary.Facilities) != 2 {
		t.Fatalf("expected 2 facilities, got %d", len(summary.Facilities))
	}
	if !summary.Total.Equal(decimal.NewFromInt(12000)) {
		t.Errorf("expected total 12000, got %s", summary.Total)
	}
}

func TestDashboardUseCase_Summary_SingleFacility(t *testing.T) {
	f := newDashboardFixture(t)

	summary, err := f.uc.Summary(context.Background(), "f1", 2024, time.March)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summary.Facilities) != 1 {
		t.Fatalf("expected 1 facility, got %d", len(summary.Facilities))
	}
	if !summary.Total.Equal(decimal.NewFromInt(7000)) {
		t.Errorf("expected total 7000, got %s", summary.Total)
	}
}

func TestDashboardUseCase_Summary_UnknownFacility(t *testing.T) {
	f := newDashboardFixture(t)

	_, err := f.uc.Summary(context.Background(), "nope", 2024, time.March)
	if !errors.Is(err, domain.ErrFacilityNotFound) {
		t.Errorf("expected ErrFacilityNotFound, got %v", err)
	}
}

func TestDashboardUseCase_Summary_ServesFromCache(t *testing.T) {
	f := newDashboardFixture(t)
	ctx := context.Background()

	first, err := f.uc.Summary(ctx, "f1", 2024, time.March)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Entries recorded after the summary was cached must not show up
	// until the cache expires.
	err = f.entryRepo.Create(ctx, &domain.LedgerEntry{
		ID: "late", ResidentID: "r1",
		OccurredOn: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		Kind:       domain.KindDeposit, Amount: decimal.NewFromInt(4000),
	})
	if err != nil {
		t.Fatal(err)
	}

	second, err := f.uc.Summary(ctx, "f1", 2024, time.March)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.Total.Equal(first.Total) {
		t.Errorf("expected cached total %s, got %s", first.Total, second.Total)
	}
}

func TestDashboardUseCase_Summary_CacheFailureIsNotFatal(t *testing.T) {
	f := newDashboardFixture(t)
	f.cache.GetFunc = func(ctx context.Context, key string) (string, error) {
		return "", errors.New("redis down")
	}
	f.cache.SetFunc = func(ctx context.Context, key, value string, ttl time.Duration) error {
		return errors.New("redis down")
	}

	summary, err := f.uc.Summary(context.Background(), "f1", 2024, time.March)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !summary.Total.Equal(decimal.NewFromInt(7000)) {
		t.Errorf("expected total 7000, got %s", summary.Total)
	}
}

func TestCashVerificationUseCase_Verify(t *testing.T) {
	f := newDashboardFixture(t)

	now := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	uc := usecase.NewCashVerificationUseCase(f.facilityRepo, f.uc, mocks.NewFakeClock(now))

	tests := []struct {
		name       string
		counts     []domain.DenominationCount
		difference int64
		balanced   bool
	}{
		{
			name: "cash matches ledger",
			counts: []domain.DenominationCount{
				{Denomination: decimal.NewFromInt(5000), Count: 1},
				{Denomination: decimal.NewFromInt(1000), Count: 2},
			},
			difference: 0,
			balanced:   true,
		},
		{
			name: "cash short by 500",
			counts: []domain.DenominationCount{
				{Denomination: decimal.NewFromInt(5000), Count: 1},
				{Denomination: decimal.NewFromInt(1000), Count: 1},
				{Denomination: decimal.NewFromInt(500), Count: 1},
			},
			difference: 500,
			balanced:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := uc.Verify(context.Background(), usecase.VerifyInput{
				FacilityID: "f1",
				Year:       2024,
				Month:      time.March,
				Counts:     tt.counts,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !report.Result.Difference.Equal(decimal.NewFromInt(tt.difference)) {
				t.Errorf("expected difference %d, got %s", tt.difference, report.Result.Difference)
			}
			if report.Result.Balanced != tt.balanced {
				t.Errorf("expected balanced=%v, got %v", tt.balanced, report.Result.Balanced)
			}
			if !report.VerifiedAt.Equal(now) {
				t.Errorf("expected VerifiedAt %s, got %s", now, report.VerifiedAt)
			}
		})
	}
}

func TestCashVerificationUseCase_Verify_UnknownFacility(t *testing.T) {
	f := newDashboardFixture(t)
	uc := usecase.NewCashVerificationUseCase(f.facilityRepo, f.uc, mocks.NewFakeClock(time.Now()))

	_, err := uc.Verify(context.Background(), usecase.VerifyInput{FacilityID: "nope", Year: 2024, Month: time.March})
	if !errors.Is(err, domain.ErrFacilityNotFound) {
		t.Errorf("expected ErrFacilityNotFound, got %v", err)
	}
}

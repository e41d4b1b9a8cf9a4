package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/si-ka-repo/DepositManagement/internal/domain"
	"github.com/si-ka-repo/DepositManagement/internal/usecase"
	"github.com/si-ka-repo/DepositManagement/internal/usecase/mocks"
)

type importFixture struct {
	txManager    *mocks.FakeTransactionManager
	facilityRepo *mocks.FakeFacilityRepository
	unitRepo     *mocks.FakeUnitRepository
	residentRepo *mocks.FakeResidentRepository
	entryRepo    *mocks.FakeEntryRepository
	committed    bool
	uc           *usecase.ImportUseCase
}

func newImportFixture() *importFixture {
	f := &importFixture{
		txManager:    mocks.NewFakeTransactionManager(),
		facilityRepo: mocks.NewFakeFacilityRepository(),
		unitRepo:     mocks.NewFakeUnitRepository(),
		residentRepo: mocks.NewFakeResidentRepository(),
		entryRepo:    mocks.NewFakeEntryRepository(),
	}
	f.txManager.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
		return &mocks.FakeTransaction{
			CommitFunc: func(ctx context.Context) error {
				f.committed = true
				return nil
			},
		}, nil
	}

	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	f.uc = usecase.NewImportUseCase(
		f.txManager,
		f.facilityRepo,
		f.unitRepo,
		f.residentRepo,
		f.entryRepo,
		mocks.NewFakeIDGenerator(),
		mocks.NewFakeClock(now),
		nil,
		nil,
	)
	return f
}

func TestImportUseCase_Import(t *testing.T) {
	f := newImportFixture()

	result, err := f.uc.Import(context.Background(), []usecase.ImportRow{
		{
			FacilityName:   "ひまわり寮",
			UnitName:       "1階",
			ResidentName:   "山田太郎",
			InitialBalance: decimal.NewFromInt(25000),
			StartDate:      "2023-04-01",
		},
		{
			FacilityName:   "ひまわり寮",
			UnitName:       "1階",
			ResidentName:   "佐藤花子",
			InitialBalance: decimal.Zero,
		},
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.JobID == "" {
		t.Error("expected a job ID")
	}
	if len(result.Errors) != 0 {
		t.Fatalf("expected no row errors, got %v", result.Errors)
	}

	if result.FacilitiesCreated != 1 {
		t.Errorf("expected 1 facility created, got %d", result.FacilitiesCreated)
	}
	if result.UnitsCreated != 1 {
		t.Errorf("expected 1 unit created, got %d", result.UnitsCreated)
	}
	if result.ResidentsCreated != 2 {
		t.Errorf("expected 2 residents created, got %d", result.ResidentsCreated)
	}
	// Only the resident with a positive opening balance gets an entry.
	if result.EntriesCreated != 1 {
		t.Errorf("expected 1 entry created, got %d", result.EntriesCreated)
	}
	if !f.committed {
		t.Error("expected the transaction to be committed")
	}

	resident, err := f.residentRepo.GetByName(context.Background(), nil, mustFacilityID(t, f), "山田太郎")
	if err != nil {
		t.Fatalf("imported resident not found: %v", err)
	}
	entries, err := f.entryRepo.ListByResident(context.Background(), resident.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 opening entry, got %d", len(entries))
	}
	if entries[0].Kind != domain.KindDeposit {
		t.Errorf("expected opening entry to be a deposit, got %s", entries[0].Kind)
	}
	if !entries[0].OccurredOn.Equal(time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected opening entry dated at the start date, got %s", entries[0].OccurredOn)
	}
}

func TestImportUseCase_Import_ExistingResidentSkipped(t *testing.T) {
	f := newImportFixture()
	ctx := context.Background()

	row := usecase.ImportRow{
		FacilityName:   "ひまわり寮",
		UnitName:       "1階",
		ResidentName:   "山田太郎",
		InitialBalance: decimal.NewFromInt(25000),
	}

	if _, err := f.uc.Import(ctx, []usecase.ImportRow{row}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Running the same file twice must not double the opening balance.
	result, err := f.uc.Import(ctx, []usecase.ImportRow{row})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ResidentsCreated != 0 {
		t.Errorf("expected 0 residents created, got %d", result.ResidentsCreated)
	}
	if result.EntriesCreated != 0 {
		t.Errorf("expected 0 entries created, got %d", result.EntriesCreated)
	}
}

func TestImportUseCase_Import_CollectsRowErrors(t *testing.T) {
	f := newImportFixture()

	result, err := f.uc.Import(context.Background(), []usecase.ImportRow{
		{FacilityName: "", UnitName: "1階", ResidentName: "名無し"},
		{FacilityName: "ひまわり寮", UnitName: "1階", ResidentName: "山田太郎", StartDate: "01/04/2023"},
		{FacilityName: "ひまわり寮", UnitName: "1階", ResidentName: "佐藤花子"},
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 row errors, got %v", result.Errors)
	}
	if result.ResidentsCreated != 1 {
		t.Errorf("expected the valid row to be imported, got %d residents", result.ResidentsCreated)
	}
}

func TestImportUseCase_Import_NoRows(t *testing.T) {
	f := newImportFixture()

	if _, err := f.uc.Import(context.Background(), nil); err == nil {
		t.Fatal("expected an error for an empty import")
	}
}

func mustFacilityID(t *testing.T, f *importFixture) string {
	t.Helper()
	facilities, err := f.facilityRepo.List(context.Background(), true)
	if err != nil || len(facilities) != 1 {
		t.Fatalf("expected exactly one facility, got %d (err %v)", len(facilities), err)
	}
	return facilities[0].ID
}

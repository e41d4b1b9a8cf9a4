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

type statementFixture struct {
	entryRepo    *mocks.FakeEntryRepository
	residentRepo *mocks.FakeResidentRepository
	facilityRepo *mocks.FakeFacilityRepository
	unitRepo     *mocks.FakeUnitRepository
	uc           *usecase.StatementUseCase
}

// newStatementFixture seeds one facility with two units, two residents
// in custody and one departed resident.
func newStatementFixture(t *testing.T) *statementFixture {
	t.Helper()

	f := &statementFixture{
		entryRepo:    mocks.NewFakeEntryRepository(),
		residentRepo: mocks.NewFakeResidentRepository(),
		facilityRepo: mocks.NewFakeFacilityRepository(),
		unitRepo:     mocks.NewFakeUnitRepository(),
	}
	f.uc = usecase.NewStatementUseCase(f.entryRepo, f.residentRepo, f.facilityRepo, f.unitRepo, nil)

	ctx := context.Background()
	if err := f.facilityRepo.Create(ctx, &domain.Facility{ID: "f1", Name: "ひまわり寮", IsActive: true}); err != nil {
		t.Fatal(err)
	}
	for _, u := range []*domain.Unit{
		{ID: "u1", FacilityID: "f1", Name: "1階", IsActive: true},
		{ID: "u2", FacilityID: "f1", Name: "2階", IsActive: true},
	} {
		if err := f.unitRepo.Create(ctx, u); err != nil {
			t.Fatal(err)
		}
	}

	departed := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	for _, r := range []*domain.Resident{
		{ID: "r1", FacilityID: "f1", UnitID: "u1", Name: "山田太郎", IsActive: true},
		{ID: "r2", FacilityID: "f1", UnitID: "u2", Name: "佐藤花子", IsActive: true},
		{ID: "r3", FacilityID: "f1", UnitID: "u1", Name: "退所済", IsActive: true, EndDate: &departed},
	} {
		if err := f.residentRepo.Create(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	entries := []*domain.LedgerEntry{
		{ID: "e1", ResidentID: "r1", OccurredOn: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), Kind: domain.KindDeposit, Amount: decimal.NewFromInt(10000)},
		{ID: "e2", ResidentID: "r1", OccurredOn: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Kind: domain.KindWithdrawal, Amount: decimal.NewFromInt(3000)},
		{ID: "e3", ResidentID: "r1", OccurredOn: time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC), Kind: domain.KindCorrectedWithdrawal, Amount: decimal.NewFromInt(9999)},
		{ID: "e4", ResidentID: "r2", OccurredOn: time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), Kind: domain.KindDeposit, Amount: decimal.NewFromInt(5000)},
	}
	for _, e := range entries {
		if err := f.entryRepo.Create(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	return f
}

func TestStatementUseCase_BuildResidentStatement(t *testing.T) {
	f := newStatementFixture(t)

	rs, err := f.uc.BuildResidentStatement(context.Background(), "r1", 2024, time.March)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rs.Facility.ID != "f1" || rs.Unit.ID != "u1" {
		t.Errorf("expected facility f1 and unit u1, got %s and %s", rs.Facility.ID, rs.Unit.ID)
	}

	// carry-forward line plus the one live March entry; the voided
	// withdrawal never appears.
	if len(rs.Statement.Lines) != 2 {
		t.Fatalf("expected 2 statement lines, got %d", len(rs.Statement.Lines))
	}
	if !rs.Statement.Lines[0].CarryForward {
		t.Error("expected first line to be the carry-forward")
	}
	if !rs.Statement.ClosingBalance.Equal(decimal.NewFromInt(7000)) {
		t.Errorf("expected closing balance 7000, got %s", rs.Statement.ClosingBalance)
	}
}

func TestStatementUseCase_BuildResidentStatement_UnknownResident(t *testing.T) {
	f := newStatementFixture(t)

	_, err := f.uc.BuildResidentStatement(context.Background(), "nope", 2024, time.March)
	if !errors.Is(err, domain.ErrResidentNotFound) {
		t.Errorf("expected ErrResidentNotFound, got %v", err)
	}
}

func TestStatementUseCase_BuildFacilityStatement(t *testing.T) {
	f := newStatementFixture(t)

	fs, err := f.uc.BuildFacilityStatement(context.Background(), "f1", "", 2024, time.March)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// r3 left the facility, so only two statements.
	if len(fs.Residents) != 2 {
		t.Fatalf("expected 2 resident statements, got %d", len(fs.Residents))
	}
	if len(fs.UnitSummaries) != 2 {
		t.Fatalf("expected 2 unit summaries, got %d", len(fs.UnitSummaries))
	}

	// The grand total covers March movements only. The February deposit
	// arrives as carry-forward and must not inflate it.
	if !fs.GrandTotal.Income.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("expected grand income 5000, got %s", fs.GrandTotal.Income)
	}
	if !fs.GrandTotal.Expense.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("expected grand expense 3000, got %s", fs.GrandTotal.Expense)
	}
	if !fs.GrandTotal.Net.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("expected grand net 2000, got %s", fs.GrandTotal.Net)
	}

	// Unit roll-ups do include the carry-forward.
	for _, summary := range fs.UnitSummaries {
		if summary.Unit.ID != "u1" {
			continue
		}
		if !summary.Totals.Income.Equal(decimal.NewFromInt(10000)) {
			t.Errorf("expected unit u1 income 10000, got %s", summary.Totals.Income)
		}
		if !summary.Totals.Net.Equal(decimal.NewFromInt(7000)) {
			t.Errorf("expected unit u1 net 7000, got %s", summary.Totals.Net)
		}
	}
}

func TestStatementUseCase_BuildFacilityStatement_UnitFilter(t *testing.T) {
	f := newStatementFixture(t)

	fs, err := f.uc.BuildFacilityStatement(context.Background(), "f1", "u2", 2024, time.March)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fs.Residents) != 1 || fs.Residents[0].Resident.ID != "r2" {
		t.Fatalf("expected only r2's statement, got %d statements", len(fs.Residents))
	}
	if len(fs.UnitSummaries) != 1 {
		t.Fatalf("expected 1 unit summary, got %d", len(fs.UnitSummaries))
	}

	_, err = f.uc.BuildFacilityStatement(context.Background(), "f1", "u99", 2024, time.March)
	if !errors.Is(err, domain.ErrUnitNotFound) {
		t.Errorf("expected ErrUnitNotFound, got %v", err)
	}
}

func TestStatementUseCase_BuildBatchStatements(t *testing.T) {
	f := newStatementFixture(t)

	statements, err := f.uc.BuildBatchStatements(context.Background(), "f1", 2024, time.March)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(statements) != 2 {
		t.Errorf("expected 2 statements, got %d", len(statements))
	}
}

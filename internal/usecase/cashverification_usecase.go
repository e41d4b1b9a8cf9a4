package usecase

import (
	"context"
	"time"

	"github.com/si-ka-repo/DepositManagement/internal/domain"
)

// CashVerificationUseCase reconciles the physically counted cash of a
// facility against the ledger balance at a month end.
type CashVerificationUseCase struct {
	facilityRepo FacilityRepository
	dashboard    *DashboardUseCase
	clock        Clock
}

// NewCashVerificationUseCase creates a new CashVerificationUseCase.
func NewCashVerificationUseCase(
	facilityRepo FacilityRepository,
	dashboard *DashboardUseCase,
	clock Clock,
) *CashVerificationUseCase {
	return &CashVerificationUseCase{
		facilityRepo: facilityRepo,
		dashboard:    dashboard,
		clock:        clock,
	}
}

// VerifyInput represents input for a cash verification.
type VerifyInput struct {
	FacilityID string
	Year       int
	Month      time.Month
	Counts     []domain.DenominationCount
}

// VerificationReport is the printable cash verification sheet.
type VerificationReport struct {
	Facility   *domain.Facility
	Year       int
	Month      time.Month
	Counts     []domain.DenominationCount
	Result     domain.CashVerification
	VerifiedAt time.Time
}

// Verify compares the counted denominations against the facility's
// ledger balance as of (year, month).
func (uc *CashVerificationUseCase) Verify(ctx context.Context, input VerifyInput) (*VerificationReport, error) {
	facility, err := uc.facilityRepo.GetByID(ctx, input.FacilityID)
	if err != nil {
		return nil, err
	}

	ledgerBalance, err := uc.dashboard.facilityBalance(ctx, input.FacilityID, input.Year, input.Month)
	if err != nil {
		return nil, err
	}

	return &VerificationReport{
		Facility:   facility,
		Year:       input.Year,
		Month:      input.Month,
		Counts:     input.Counts,
		Result:     domain.VerifyCash(ledgerBalance, input.Counts),
		VerifiedAt: uc.clock.Now(),
	}, nil
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/si-ka-repo/DepositManagement/internal/domain"
	"github.com/si-ka-repo/DepositManagement/internal/infrastructure/metrics"
)

// LedgerUseCase records entries, applies corrections and reads resident
// ledgers. Each operation captures "today" exactly once from the clock
// and threads it through every policy check.
type LedgerUseCase struct {
	entryRepo    EntryRepository
	residentRepo ResidentRepository
	idGen        IDGenerator
	clock        Clock
	retrier      Retrier
	cache        Cache
	metrics      *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	entryRepo EntryRepository,
	residentRepo ResidentRepository,
	idGen IDGenerator,
	clock Clock,
	retrier Retrier,
	cache Cache,
	m *metrics.Metrics,
) *LedgerUseCase {
	return &LedgerUseCase{
		entryRepo:    entryRepo,
		residentRepo: residentRepo,
		idGen:        idGen,
		clock:        clock,
		retrier:      retrier,
		cache:        cache,
		metrics:      m,
	}
}

// RecordEntryInput represents input for recording an ordinary entry.
type RecordEntryInput struct {
	ResidentID  string
	Date        time.Time
	Kind        domain.Kind
	Amount      decimal.Decimal
	Description string
	Payee       string
}

// RecordEntry records an ordinary deposit or withdrawal. The date must
// fall inside the open entry window derived from today.
func (uc *LedgerUseCase) RecordEntry(ctx context.Context, input RecordEntryInput) (*domain.LedgerEntry, error) {
	if !input.Kind.Ordinary() {
		return nil, fmt.Errorf("%w: %q is not an ordinary entry kind", domain.ErrInvalidKind, input.Kind)
	}

	if _, err := uc.residentRepo.GetByID(ctx, input.ResidentID); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	if err := domain.ValidateOrdinaryDate(input.Date, now); err != nil {
		return nil, err
	}

	entry, err := domain.NewLedgerEntry(domain.EntryParams{
		ID:          uc.idGen.Generate(),
		ResidentID:  input.ResidentID,
		OccurredOn:  input.Date,
		Kind:        input.Kind,
		Amount:      input.Amount,
		Description: input.Description,
		Payee:       input.Payee,
		CreatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	uc.invalidateDashboards(ctx)

	amountf, _ := entry.Amount.Float64()
	uc.metrics.EntryRecorded(string(entry.Kind), amountf)
	return entry, nil
}

// RecordRetroactiveCorrectionInput represents input for a closed-month
// adjustment.
type RecordRetroactiveCorrectionInput struct {
	ResidentID  string
	Date        time.Time
	Kind        domain.Kind
	Amount      decimal.Decimal
	Description string
	Payee       string
	Reason      string
}

// RecordRetroactiveCorrection appends an adjustment to a closed month.
// The target month must be strictly past and a reason is mandatory.
func (uc *LedgerUseCase) RecordRetroactiveCorrection(ctx context.Context, input RecordRetroactiveCorrectionInput) (*domain.LedgerEntry, error) {
	if !input.Kind.Retroactive() {
		return nil, fmt.Errorf("%w: %q is not a retroactive correction kind", domain.ErrInvalidKind, input.Kind)
	}

	if _, err := uc.residentRepo.GetByID(ctx, input.ResidentID); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	if err := domain.ValidateRetroactiveDate(input.Date, now); err != nil {
		return nil, err
	}

	entry, err := domain.NewLedgerEntry(domain.EntryParams{
		ID:          uc.idGen.Generate(),
		ResidentID:  input.ResidentID,
		OccurredOn:  input.Date,
		Kind:        input.Kind,
		Amount:      input.Amount,
		Description: input.Description,
		Payee:       input.Payee,
		Reason:      input.Reason,
		CreatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	uc.invalidateDashboards(ctx)

	amountf, _ := entry.Amount.Float64()
	uc.metrics.EntryRecorded(string(entry.Kind), amountf)
	return entry, nil
}

// CorrectEntry voids a same-month entry recorded by mistake. The entry
// keeps its amount and date; only its kind transitions, once.
func (uc *LedgerUseCase) CorrectEntry(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	entry, err := uc.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	previous := entry.Kind
	if err := entry.Correct(uc.clock.Now()); err != nil {
		return nil, err
	}

	err = uc.retrier.Retry(ctx, func() error {
		return uc.entryRepo.UpdateKind(ctx, entry.ID, previous, entry.Kind)
	})
	if err != nil {
		return nil, err
	}
	uc.invalidateDashboards(ctx)

	uc.metrics.CorrectionApplied()
	return entry, nil
}

// invalidateDashboards drops cached dashboard summaries after a write.
// Best effort; a summary that survives only lives until its TTL.
func (uc *LedgerUseCase) invalidateDashboards(ctx context.Context) {
	if uc.cache == nil {
		return
	}

	_ = uc.cache.DeletePrefix(ctx, dashboardKeyPrefix)
}

// ResidentLedger returns the resident's full history with running
// balances, voided entries included at their historical position.
func (uc *LedgerUseCase) ResidentLedger(ctx context.Context, residentID string) ([]domain.EntryWithBalance, error) {
	if _, err := uc.residentRepo.GetByID(ctx, residentID); err != nil {
		return nil, err
	}

	entries, err := uc.entryRepo.ListByResident(ctx, residentID)
	if err != nil {
		return nil, err
	}

	return domain.RunningBalances(entries), nil
}

// ResidentMonthLedger returns one month of the ledger. Running balances
// are still folded over the full history so the month starts from the
// true brought-forward value.
func (uc *LedgerUseCase) ResidentMonthLedger(ctx context.Context, residentID string, year int, month time.Month) ([]domain.EntryWithBalance, error) {
	rows, err := uc.ResidentLedger(ctx, residentID)
	if err != nil {
		return nil, err
	}

	var result []domain.EntryWithBalance
	for _, row := range rows {
		d := row.Entry.OccurredOn
		if d.Year() == year && d.Month() == month {
			result = append(result, row)
		}
	}

	return result, nil
}

// ResidentBalance returns the authoritative balance at the end of
// (year, month).
func (uc *LedgerUseCase) ResidentBalance(ctx context.Context, residentID string, year int, month time.Month) (decimal.Decimal, error) {
	if _, err := uc.residentRepo.GetByID(ctx, residentID); err != nil {
		return decimal.Zero, err
	}

	entries, err := uc.entryRepo.ListByResident(ctx, residentID)
	if err != nil {
		return decimal.Zero, err
	}

	return domain.BalanceAsOf(entries, year, month), nil
}

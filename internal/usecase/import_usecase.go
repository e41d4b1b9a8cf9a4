package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/si-ka-repo/DepositManagement/internal/domain"
	"github.com/si-ka-repo/DepositManagement/internal/infrastructure/metrics"
)

// ImportUseCase loads facilities, units, residents and opening balances
// in bulk, typically when migrating from the previous paper ledger. All
// rows are applied inside one database transaction; row-level problems
// are collected per row instead of aborting the whole import.
type ImportUseCase struct {
	txManager    TransactionManager
	facilityRepo FacilityRepository
	unitRepo     UnitRepository
	residentRepo ResidentRepository
	entryRepo    EntryRepository
	idGen        IDGenerator
	clock        Clock
	cache        Cache
	metrics      *metrics.Metrics
}

// NewImportUseCase creates a new ImportUseCase.
func NewImportUseCase(
	txManager TransactionManager,
	facilityRepo FacilityRepository,
	unitRepo UnitRepository,
	residentRepo ResidentRepository,
	entryRepo EntryRepository,
	idGen IDGenerator,
	clock Clock,
	cache Cache,
	m *metrics.Metrics,
) *ImportUseCase {
	return &ImportUseCase{
		txManager:    txManager,
		facilityRepo: facilityRepo,
		unitRepo:     unitRepo,
		residentRepo: residentRepo,
		entryRepo:    entryRepo,
		idGen:        idGen,
		clock:        clock,
		cache:        cache,
		metrics:      m,
	}
}

// ImportRow is one parsed row of the bulk import. Dates use YYYY-MM-DD.
type ImportRow struct {
	FacilityName       string
	UnitName           string
	ResidentName       string
	InitialBalance     decimal.Decimal
	StartDate          string
	EndDate            string
	PositionName       string
	PositionHolderName string
	SortOrder          int
}

// ImportResult summarizes what an import created.
type ImportResult struct {
	JobID             string
	FacilitiesCreated int
	UnitsCreated      int
	ResidentsCreated  int
	EntriesCreated    int
	Errors            []string
}

// Import applies the rows. Residents that already exist (same facility
// and name) are left untouched; only missing masters are created.
func (uc *ImportUseCase) Import(ctx context.Context, rows []ImportRow) (*ImportResult, error) {
	if len(rows) == 0 {
		return nil, errors.New("no rows to import")
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	result := &ImportResult{JobID: uuid.NewString()}
	now := uc.clock.Now()

	for i, row := range rows {
		if err := uc.importRow(ctx, tx, row, now, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			uc.metrics.ImportRow("error")
			continue
		}
		uc.metrics.ImportRow("ok")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	// Imported opening balances change every facility total at once.
	if uc.cache != nil {
		_ = uc.cache.DeletePrefix(ctx, dashboardKeyPrefix)
	}

	return result, nil
}

func (uc *ImportUseCase) importRow(ctx context.Context, tx Transaction, row ImportRow, now time.Time, result *ImportResult) error {
	if row.FacilityName == "" || row.UnitName == "" || row.ResidentName == "" {
		return errors.New("facility, unit and resident names are required")
	}

	startDate, err := parseImportDate(row.StartDate)
	if err != nil {
		return fmt.Errorf("start date: %w", err)
	}
	endDate, err := parseImportDate(row.EndDate)
	if err != nil {
		return fmt.Errorf("end date: %w", err)
	}

	facility, err := uc.facilityRepo.GetByName(ctx, tx, row.FacilityName)
	if errors.Is(err, domain.ErrFacilityNotFound) {
		facility = &domain.Facility{
			ID:                 uc.idGen.Generate(),
			Name:               row.FacilityName,
			PositionName:       row.PositionName,
			PositionHolderName: row.PositionHolderName,
			SortOrder:          row.SortOrder,
			IsActive:           true,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := uc.facilityRepo.CreateTx(ctx, tx, facility); err != nil {
			return err
		}
		result.FacilitiesCreated++
	} else if err != nil {
		return err
	}

	unit, err := uc.unitRepo.GetByName(ctx, tx, facility.ID, row.UnitName)
	if errors.Is(err, domain.ErrUnitNotFound) {
		unit = &domain.Unit{
			ID:         uc.idGen.Generate(),
			FacilityID: facility.ID,
			Name:       row.UnitName,
			IsActive:   true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := uc.unitRepo.CreateTx(ctx, tx, unit); err != nil {
			return err
		}
		result.UnitsCreated++
	} else if err != nil {
		return err
	}

	resident, err := uc.residentRepo.GetByName(ctx, tx, facility.ID, row.ResidentName)
	if errors.Is(err, domain.ErrResidentNotFound) {
		resident = &domain.Resident{
			ID:         uc.idGen.Generate(),
			FacilityID: facility.ID,
			UnitID:     unit.ID,
			Name:       row.ResidentName,
			StartDate:  startDate,
			EndDate:    endDate,
			IsActive:   true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := uc.residentRepo.CreateTx(ctx, tx, resident); err != nil {
			return err
		}
		result.ResidentsCreated++
	} else if err != nil {
		return err
	} else {
		// existing resident: never double-book the opening balance
		return nil
	}

	if resident != nil && row.InitialBalance.IsPositive() {
		occurredOn := now
		if startDate != nil {
			occurredOn = *startDate
		}

		// Imported history predates the entry window, so the opening
		// deposit is built directly instead of going through RecordEntry.
		entry, err := domain.NewLedgerEntry(domain.EntryParams{
			ID:          uc.idGen.Generate(),
			ResidentID:  resident.ID,
			OccurredOn:  occurredOn,
			Kind:        domain.KindDeposit,
			Amount:      row.InitialBalance,
			Description: "初回残高",
			CreatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("opening balance: %w", err)
		}

		if err := uc.entryRepo.CreateTx(ctx, tx, entry); err != nil {
			return err
		}
		result.EntriesCreated++
	}

	return nil
}

func parseImportDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	return &t, nil
}

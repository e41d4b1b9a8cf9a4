package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/si-ka-repo/DepositManagement/internal/domain"
	"github.com/si-ka-repo/DepositManagement/internal/infrastructure/metrics"
)

// StatementUseCase builds printable monthly statements. The output is
// plain data; page layout belongs to the printing front end.
type StatementUseCase struct {
	entryRepo    EntryRepository
	residentRepo ResidentRepository
	facilityRepo FacilityRepository
	unitRepo     UnitRepository
	metrics      *metrics.Metrics
}

// NewStatementUseCase creates a new StatementUseCase.
func NewStatementUseCase(
	entryRepo EntryRepository,
	residentRepo ResidentRepository,
	facilityRepo FacilityRepository,
	unitRepo UnitRepository,
	m *metrics.Metrics,
) *StatementUseCase {
	return &StatementUseCase{
		entryRepo:    entryRepo,
		residentRepo: residentRepo,
		facilityRepo: facilityRepo,
		unitRepo:     unitRepo,
		metrics:      m,
	}
}

// ResidentStatement is one resident's statement with the master data the
// printed form needs (unit name, facility signature block).
type ResidentStatement struct {
	Resident  *domain.Resident
	Facility  *domain.Facility
	Unit      *domain.Unit
	Statement domain.Statement
}

// ResidentSummary is a resident's month totals, carry-forward included.
type ResidentSummary struct {
	Resident *domain.Resident
	Totals   domain.MonthTotals
}

// UnitSummary rolls up a unit's residents for the statement footer.
type UnitSummary struct {
	Unit      *domain.Unit
	Totals    domain.MonthTotals
	Residents []ResidentSummary
}

// FacilityStatement is the facility-wide deposit statement: every
// resident's statement plus unit roll-ups and the grand total. The grand
// total covers the month's movements only, so carry-forward lines are
// excluded from it.
type FacilityStatement struct {
	Facility      *domain.Facility
	Year          int
	Month         time.Month
	Residents     []ResidentStatement
	UnitSummaries []UnitSummary
	GrandTotal    domain.MonthTotals
}

// BuildResidentStatement builds one resident's statement for (year, month).
func (uc *StatementUseCase) BuildResidentStatement(ctx context.Context, residentID string, year int, month time.Month) (*ResidentStatement, error) {
	resident, err := uc.residentRepo.GetByID(ctx, residentID)
	if err != nil {
		return nil, err
	}

	facility, err := uc.facilityRepo.GetByID(ctx, resident.FacilityID)
	if err != nil {
		return nil, err
	}

	unit, err := uc.unitRepo.GetByID(ctx, resident.UnitID)
	if err != nil {
		return nil, err
	}

	entries, err := uc.entryRepo.ListByResident(ctx, residentID)
	if err != nil {
		return nil, err
	}

	uc.metrics.StatementBuilt("resident")
	return &ResidentStatement{
		Resident:  resident,
		Facility:  facility,
		Unit:      unit,
		Statement: domain.BuildStatement(entries, year, month),
	}, nil
}

// BuildFacilityStatement builds the facility deposit statement. When
// unitID is non-empty only that unit's residents are covered.
func (uc *StatementUseCase) BuildFacilityStatement(ctx context.Context, facilityID, unitID string, year int, month time.Month) (*FacilityStatement, error) {
	facility, err := uc.facilityRepo.GetByID(ctx, facilityID)
	if err != nil {
		return nil, err
	}

	units, err := uc.unitRepo.ListByFacility(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	if unitID != "" {
		var selected []*domain.Unit
		for _, u := range units {
			if u.ID == unitID {
				selected = append(selected, u)
			}
		}
		if len(selected) == 0 {
			return nil, domain.ErrUnitNotFound
		}
		units = selected
	}

	residents, err := uc.residentRepo.List(ctx, ResidentFilter{FacilityID: facilityID, UnitID: unitID})
	if err != nil {
		return nil, err
	}

	result := &FacilityStatement{
		Facility: facility,
		Year:     year,
		Month:    month,
	}

	unitsByID := make(map[string]*domain.Unit, len(units))
	for _, u := range units {
		unitsByID[u.ID] = u
	}

	statementsByUnit := make(map[string][]ResidentStatement)
	for _, resident := range residents {
		if !resident.InCustody() {
			continue
		}

		entries, err := uc.entryRepo.ListByResident(ctx, resident.ID)
		if err != nil {
			return nil, err
		}

		rs := ResidentStatement{
			Resident:  resident,
			Facility:  facility,
			Unit:      unitsByID[resident.UnitID],
			Statement: domain.BuildStatement(entries, year, month),
		}
		result.Residents = append(result.Residents, rs)
		statementsByUnit[resident.UnitID] = append(statementsByUnit[resident.UnitID], rs)
	}

	grand := domain.MonthTotals{Income: decimal.Zero, Expense: decimal.Zero, Net: decimal.Zero}
	for _, unit := range units {
		summary := UnitSummary{
			Unit:   unit,
			Totals: domain.MonthTotals{Income: decimal.Zero, Expense: decimal.Zero, Net: decimal.Zero},
		}
		for _, rs := range statementsByUnit[unit.ID] {
			totals := rs.Statement.Activity(true)
			summary.Residents = append(summary.Residents, ResidentSummary{Resident: rs.Resident, Totals: totals})
			summary.Totals.Income = summary.Totals.Income.Add(totals.Income)
			summary.Totals.Expense = summary.Totals.Expense.Add(totals.Expense)
		}
		summary.Totals.Net = summary.Totals.Income.Sub(summary.Totals.Expense)
		result.UnitSummaries = append(result.UnitSummaries, summary)
	}

	for _, rs := range result.Residents {
		movement := rs.Statement.Activity(false)
		grand.Income = grand.Income.Add(movement.Income)
		grand.Expense = grand.Expense.Add(movement.Expense)
	}
	grand.Net = grand.Income.Sub(grand.Expense)
	result.GrandTotal = grand

	uc.metrics.StatementBuilt("facility")
	return result, nil
}

// BuildBatchStatements builds every resident statement of a facility in
// one pass, for batch printing.
func (uc *StatementUseCase) BuildBatchStatements(ctx context.Context, facilityID string, year int, month time.Month) ([]ResidentStatement, error) {
	statement, err := uc.BuildFacilityStatement(ctx, facilityID, "", year, month)
	if err != nil {
		return nil, err
	}

	uc.metrics.StatementBuilt("batch")
	return statement.Residents, nil
}

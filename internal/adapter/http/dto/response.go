package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/si-ka-repo/DepositManagement/internal/domain"
	"github.com/si-ka-repo/DepositManagement/internal/usecase"
)

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID          string          `json:"id"`
	ResidentID  string          `json:"resident_id"`
	Date        string          `json:"date"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Payee       string          `json:"payee,omitempty"`
	Reason      string          `json:"reason,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.LedgerEntry) *EntryResponse {
	return &EntryResponse{
		ID:          e.ID,
		ResidentID:  e.ResidentID,
		Date:        e.OccurredOn.Format(time.DateOnly),
		Kind:        string(e.Kind),
		Amount:      e.Amount,
		Description: e.Description,
		Payee:       e.Payee,
		Reason:      e.Reason,
		CreatedAt:   e.CreatedAt,
	}
}

// LedgerRowResponse is an entry with its running balance.
type LedgerRowResponse struct {
	Entry   *EntryResponse  `json:"entry"`
	Balance decimal.Decimal `json:"balance"`
}

// LedgerFromDomain converts a balance-annotated ledger to responses.
func LedgerFromDomain(rows []domain.EntryWithBalance) []LedgerRowResponse {
	result := make([]LedgerRowResponse, len(rows))
	for i, row := range rows {
		result[i] = LedgerRowResponse{
			Entry:   EntryFromDomain(row.Entry),
			Balance: row.Balance,
		}
	}
	return result
}

// BalanceResponse is a resident's month-end balance.
type BalanceResponse struct {
	ResidentID string          `json:"resident_id"`
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Balance    decimal.Decimal `json:"balance"`
}

// StatementLineResponse is one printed statement line.
type StatementLineResponse struct {
	Date         string          `json:"date"`
	Kind         string          `json:"kind,omitempty"`
	Label        string          `json:"label,omitempty"`
	Payee        string          `json:"payee,omitempty"`
	Income       decimal.Decimal `json:"income"`
	Expense      decimal.Decimal `json:"expense"`
	Balance      decimal.Decimal `json:"balance"`
	CarryForward bool            `json:"carry_forward,omitempty"`
}

// StatementResponse is one resident's monthly statement.
type StatementResponse struct {
	ResidentID     string                  `json:"resident_id"`
	ResidentName   string                  `json:"resident_name"`
	FacilityName   string                  `json:"facility_name"`
	UnitName       string                  `json:"unit_name,omitempty"`
	Year           int                     `json:"year"`
	Month          int                     `json:"month"`
	Lines          []StatementLineResponse `json:"lines"`
	TotalIncome    decimal.Decimal         `json:"total_income"`
	TotalExpense   decimal.Decimal         `json:"total_expense"`
	ClosingBalance decimal.Decimal         `json:"closing_balance"`
}

// StatementFromUseCase converts a resident statement to a response.
func StatementFromUseCase(rs *usecase.ResidentStatement) *StatementResponse {
	lines := make([]StatementLineResponse, len(rs.Statement.Lines))
	for i, line := range rs.Statement.Lines {
		lines[i] = StatementLineResponse{
			Date:         line.Date.Format(time.DateOnly),
			Kind:         string(line.Kind),
			Label:        line.Label,
			Payee:        line.Payee,
			Income:       line.Income,
			Expense:      line.Expense,
			Balance:      line.Balance,
			CarryForward: line.CarryForward,
		}
	}

	resp := &StatementResponse{
		ResidentID:     rs.Resident.ID,
		ResidentName:   rs.Resident.Name,
		FacilityName:   rs.Facility.Name,
		Year:           rs.Statement.Year,
		Month:          int(rs.Statement.Month),
		Lines:          lines,
		TotalIncome:    rs.Statement.TotalIncome,
		TotalExpense:   rs.Statement.TotalExpense,
		ClosingBalance: rs.Statement.ClosingBalance,
	}
	if rs.Unit != nil {
		resp.UnitName = rs.Unit.Name
	}
	return resp
}

// MonthTotalsResponse is an income/expense/net roll-up.
type MonthTotalsResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

func totalsFromDomain(t domain.MonthTotals) MonthTotalsResponse {
	return MonthTotalsResponse{Income: t.Income, Expense: t.Expense, Net: t.Net}
}

// ResidentSummaryResponse is one resident's roll-up in a unit summary.
type ResidentSummaryResponse struct {
	ResidentID   string              `json:"resident_id"`
	ResidentName string              `json:"resident_name"`
	Totals       MonthTotalsResponse `json:"totals"`
}

// UnitSummaryResponse is one unit's roll-up in a facility statement.
type UnitSummaryResponse struct {
	UnitID    string                    `json:"unit_id"`
	UnitName  string                    `json:"unit_name"`
	Totals    MonthTotalsResponse       `json:"totals"`
	Residents []ResidentSummaryResponse `json:"residents"`
}

// FacilityStatementResponse is the facility-wide statement.
type FacilityStatementResponse struct {
	FacilityID    string                `json:"facility_id"`
	FacilityName  string                `json:"facility_name"`
	Year          int                   `json:"year"`
	Month         int                   `json:"month"`
	Statements    []*StatementResponse  `json:"statements"`
	UnitSummaries []UnitSummaryResponse `json:"unit_summaries"`
	GrandTotal    MonthTotalsResponse   `json:"grand_total"`
}

// FacilityStatementFromUseCase converts a facility statement to a response.
func FacilityStatementFromUseCase(fs *usecase.FacilityStatement) *FacilityStatementResponse {
	statements := make([]*StatementResponse, len(fs.Residents))
	for i := range fs.Residents {
		statements[i] = StatementFromUseCase(&fs.Residents[i])
	}

	summaries := make([]UnitSummaryResponse, len(fs.UnitSummaries))
	for i, us := range fs.UnitSummaries {
		residents := make([]ResidentSummaryResponse, len(us.Residents))
		for j, rs := range us.Residents {
			residents[j] = ResidentSummaryResponse{
				ResidentID:   rs.Resident.ID,
				ResidentName: rs.Resident.Name,
				Totals:       totalsFromDomain(rs.Totals),
			}
		}
		summaries[i] = UnitSummaryResponse{
			UnitID:    us.Unit.ID,
			UnitName:  us.Unit.Name,
			Totals:    totalsFromDomain(us.Totals),
			Residents: residents,
		}
	}

	return &FacilityStatementResponse{
		FacilityID:    fs.Facility.ID,
		FacilityName:  fs.Facility.Name,
		Year:          fs.Year,
		Month:         int(fs.Month),
		Statements:    statements,
		UnitSummaries: summaries,
		GrandTotal:    totalsFromDomain(fs.GrandTotal),
	}
}

// FacilityResponse represents a facility in API responses.
type FacilityResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	PositionName       string    `json:"position_name,omitempty"`
	PositionHolderName string    `json:"position_holder_name,omitempty"`
	SortOrder          int       `json:"sort_order"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// FacilityFromDomain converts a domain facility to a response.
func FacilityFromDomain(f *domain.Facility) *FacilityResponse {
	return &FacilityResponse{
		ID:                 f.ID,
		Name:               f.Name,
		PositionName:       f.PositionName,
		PositionHolderName: f.PositionHolderName,
		SortOrder:          f.SortOrder,
		IsActive:           f.IsActive,
		CreatedAt:          f.CreatedAt,
		UpdatedAt:          f.UpdatedAt,
	}
}

// FacilitiesFromDomain converts domain facilities to responses.
func FacilitiesFromDomain(facilities []*domain.Facility) []*FacilityResponse {
	result := make([]*FacilityResponse, len(facilities))
	for i, f := range facilities {
		result[i] = FacilityFromDomain(f)
	}
	return result
}

// UnitResponse represents a unit in API responses.
type UnitResponse struct {
	ID         string    `json:"id"`
	FacilityID string    `json:"facility_id"`
	Name       string    `json:"name"`
	SortOrder  int       `json:"sort_order"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UnitFromDomain converts a domain unit to a response.
func UnitFromDomain(u *domain.Unit) *UnitResponse {
	return &UnitResponse{
		ID:         u.ID,
		FacilityID: u.FacilityID,
		Name:       u.Name,
		SortOrder:  u.SortOrder,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// UnitsFromDomain converts domain units to responses.
func UnitsFromDomain(units []*domain.Unit) []*UnitResponse {
	result := make([]*UnitResponse, len(units))
	for i, u := range units {
		result[i] = UnitFromDomain(u)
	}
	return result
}

// ResidentResponse represents a resident in API responses.
type ResidentResponse struct {
	ID         string    `json:"id"`
	FacilityID string    `json:"facility_id"`
	UnitID     string    `json:"unit_id"`
	Name       string    `json:"name"`
	StartDate  string    `json:"start_date,omitempty"`
	EndDate    string    `json:"end_date,omitempty"`
	IsActive   bool      `json:"is_active"`
	InCustody  bool      `json:"in_custody"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ResidentFromDomain converts a domain resident to a response.
func ResidentFromDomain(r *domain.Resident) *ResidentResponse {
	resp := &ResidentResponse{
		ID:         r.ID,
		FacilityID: r.FacilityID,
		UnitID:     r.UnitID,
		Name:       r.Name,
		IsActive:   r.IsActive,
		InCustody:  r.InCustody(),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if r.StartDate != nil {
		resp.StartDate = r.StartDate.Format(time.DateOnly)
	}
	if r.EndDate != nil {
		resp.EndDate = r.EndDate.Format(time.DateOnly)
	}
	return resp
}

// ResidentsFromDomain converts domain residents to responses.
func ResidentsFromDomain(residents []*domain.Resident) []*ResidentResponse {
	result := make([]*ResidentResponse, len(residents))
	for i, r := range residents {
		result[i] = ResidentFromDomain(r)
	}
	return result
}

// VerificationReportResponse is the cash verification sheet.
type VerificationReportResponse struct {
	FacilityID    string                  `json:"facility_id"`
	FacilityName  string                  `json:"facility_name"`
	Year          int                     `json:"year"`
	Month         int                     `json:"month"`
	Counts        []DenominationCountItem `json:"counts"`
	LedgerBalance decimal.Decimal         `json:"ledger_balance"`
	CountedTotal  decimal.Decimal         `json:"counted_total"`
	Difference    decimal.Decimal         `json:"difference"`
	Balanced      bool                    `json:"balanced"`
	VerifiedAt    time.Time               `json:"verified_at"`
}

// VerificationFromUseCase converts a verification report to a response.
func VerificationFromUseCase(report *usecase.VerificationReport) *VerificationReportResponse {
	counts := make([]DenominationCountItem, len(report.Counts))
	for i, c := range report.Counts {
		counts[i] = DenominationCountItem{Denomination: c.Denomination, Count: c.Count}
	}

	return &VerificationReportResponse{
		FacilityID:    report.Facility.ID,
		FacilityName:  report.Facility.Name,
		Year:          report.Year,
		Month:         int(report.Month),
		Counts:        counts,
		LedgerBalance: report.Result.LedgerBalance,
		CountedTotal:  report.Result.CountedTotal,
		Difference:    report.Result.Difference,
		Balanced:      report.Result.Balanced,
		VerifiedAt:    report.VerifiedAt,
	}
}

// ImportResultResponse summarizes a bulk import.
type ImportResultResponse struct {
	JobID             string   `json:"job_id"`
	FacilitiesCreated int      `json:"facilities_created"`
	UnitsCreated      int      `json:"units_created"`
	ResidentsCreated  int      `json:"residents_created"`
	EntriesCreated    int      `json:"entries_created"`
	Errors            []string `json:"errors,omitempty"`
}

// ImportResultFromUseCase converts an import result to a response.
func ImportResultFromUseCase(result *usecase.ImportResult) *ImportResultResponse {
	return &ImportResultResponse{
		JobID:             result.JobID,
		FacilitiesCreated: result.FacilitiesCreated,
		UnitsCreated:      result.UnitsCreated,
		ResidentsCreated:  result.ResidentsCreated,
		EntriesCreated:    result.EntriesCreated,
		Errors:            result.Errors,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

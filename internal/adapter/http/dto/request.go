package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/si-ka-repo/DepositManagement/internal/domain"
	"github.com/si-ka-repo/DepositManagement/internal/usecase"
)

// RecordEntryRequest represents a request to record a deposit or
// withdrawal. Dates are YYYY-MM-DD; clock time is never accepted.
type RecordEntryRequest struct {
	ResidentID  string          `json:"resident_id"`
	Date        string          `json:"date"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Payee       string          `json:"payee,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordEntryRequest) ToUseCaseInput() (usecase.RecordEntryInput, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return usecase.RecordEntryInput{}, err
	}

	return usecase.RecordEntryInput{
		ResidentID:  r.ResidentID,
		Date:        date,
		Kind:        domain.Kind(r.Kind),
		Amount:      r.Amount,
		Description: r.Description,
		Payee:       r.Payee,
	}, nil
}

// RecordRetroactiveRequest represents a request to record a closed-month
// adjustment.
type RecordRetroactiveRequest struct {
	ResidentID  string          `json:"resident_id"`
	Date        string          `json:"date"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Payee       string          `json:"payee,omitempty"`
	Reason      string          `json:"reason"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordRetroactiveRequest) ToUseCaseInput() (usecase.RecordRetroactiveCorrectionInput, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return usecase.RecordRetroactiveCorrectionInput{}, err
	}

	return usecase.RecordRetroactiveCorrectionInput{
		ResidentID:  r.ResidentID,
		Date:        date,
		Kind:        domain.Kind(r.Kind),
		Amount:      r.Amount,
		Description: r.Description,
		Payee:       r.Payee,
		Reason:      r.Reason,
	}, nil
}

// CreateFacilityRequest represents a request to create a facility.
type CreateFacilityRequest struct {
	Name               string `json:"name"`
	PositionName       string `json:"position_name,omitempty"`
	PositionHolderName string `json:"position_holder_name,omitempty"`
	SortOrder          int    `json:"sort_order,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateFacilityRequest) ToUseCaseInput() usecase.CreateFacilityInput {
	return usecase.CreateFacilityInput{
		Name:               r.Name,
		PositionName:       r.PositionName,
		PositionHolderName: r.PositionHolderName,
		SortOrder:          r.SortOrder,
	}
}

// UpdateFacilityRequest represents a request to update a facility.
type UpdateFacilityRequest struct {
	Name               string `json:"name"`
	PositionName       string `json:"position_name,omitempty"`
	PositionHolderName string `json:"position_holder_name,omitempty"`
	SortOrder          int    `json:"sort_order,omitempty"`
	IsActive           bool   `json:"is_active"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateFacilityRequest) ToUseCaseInput(id string) usecase.UpdateFacilityInput {
	return usecase.UpdateFacilityInput{
		ID:                 id,
		Name:               r.Name,
		PositionName:       r.PositionName,
		PositionHolderName: r.PositionHolderName,
		SortOrder:          r.SortOrder,
		IsActive:           r.IsActive,
	}
}

// CreateUnitRequest represents a request to create a unit.
type CreateUnitRequest struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateUnitRequest) ToUseCaseInput(facilityID string) usecase.CreateUnitInput {
	return usecase.CreateUnitInput{
		FacilityID: facilityID,
		Name:       r.Name,
		SortOrder:  r.SortOrder,
	}
}

// CreateResidentRequest represents a request to create a resident.
type CreateResidentRequest struct {
	FacilityID string `json:"facility_id"`
	UnitID     string `json:"unit_id"`
	Name       string `json:"name"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateResidentRequest) ToUseCaseInput() (usecase.CreateResidentInput, error) {
	startDate, err := parseOptionalDate(r.StartDate)
	if err != nil {
		return usecase.CreateResidentInput{}, err
	}
	endDate, err := parseOptionalDate(r.EndDate)
	if err != nil {
		return usecase.CreateResidentInput{}, err
	}

	return usecase.CreateResidentInput{
		FacilityID: r.FacilityID,
		UnitID:     r.UnitID,
		Name:       r.Name,
		StartDate:  startDate,
		EndDate:    endDate,
	}, nil
}

// UpdateResidentRequest represents a request to update a resident.
type UpdateResidentRequest struct {
	UnitID    string `json:"unit_id,omitempty"`
	Name      string `json:"name"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	IsActive  bool   `json:"is_active"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateResidentRequest) ToUseCaseInput(id string) (usecase.UpdateResidentInput, error) {
	startDate, err := parseOptionalDate(r.StartDate)
	if err != nil {
		return usecase.UpdateResidentInput{}, err
	}
	endDate, err := parseOptionalDate(r.EndDate)
	if err != nil {
		return usecase.UpdateResidentInput{}, err
	}

	return usecase.UpdateResidentInput{
		ID:        id,
		UnitID:    r.UnitID,
		Name:      r.Name,
		StartDate: startDate,
		EndDate:   endDate,
		IsActive:  r.IsActive,
	}, nil
}

// DenominationCountItem is one denomination line of a cash count.
type DenominationCountItem struct {
	Denomination decimal.Decimal `json:"denomination"`
	Count        int64           `json:"count"`
}

// VerifyCashRequest represents a request to verify counted cash.
type VerifyCashRequest struct {
	Year   int                     `json:"year"`
	Month  int                     `json:"month"`
	Counts []DenominationCountItem `json:"counts"`
}

// ToUseCaseInput converts to use case input.
func (r *VerifyCashRequest) ToUseCaseInput(facilityID string) usecase.VerifyInput {
	counts := make([]domain.DenominationCount, len(r.Counts))
	for i, c := range r.Counts {
		counts[i] = domain.DenominationCount{
			Denomination: c.Denomination,
			Count:        c.Count,
		}
	}

	return usecase.VerifyInput{
		FacilityID: facilityID,
		Year:       r.Year,
		Month:      time.Month(r.Month),
		Counts:     counts,
	}
}

// ImportRowItem is one row of a bulk import request.
type ImportRowItem struct {
	FacilityName       string          `json:"facility_name"`
	UnitName           string          `json:"unit_name"`
	ResidentName       string          `json:"resident_name"`
	InitialBalance     decimal.Decimal `json:"initial_balance"`
	StartDate          string          `json:"start_date,omitempty"`
	EndDate            string          `json:"end_date,omitempty"`
	PositionName       string          `json:"position_name,omitempty"`
	PositionHolderName string          `json:"position_holder_name,omitempty"`
	SortOrder          int             `json:"sort_order,omitempty"`
}

// ImportRequest represents a bulk import request.
type ImportRequest struct {
	Rows []ImportRowItem `json:"rows"`
}

// ToUseCaseInput converts to use case input.
func (r *ImportRequest) ToUseCaseInput() []usecase.ImportRow {
	rows := make([]usecase.ImportRow, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = usecase.ImportRow{
			FacilityName:       row.FacilityName,
			UnitName:           row.UnitName,
			ResidentName:       row.ResidentName,
			InitialBalance:     row.InitialBalance,
			StartDate:          row.StartDate,
			EndDate:            row.EndDate,
			PositionName:       row.PositionName,
			PositionHolderName: row.PositionHolderName,
			SortOrder:          row.SortOrder,
		}
	}
	return rows
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

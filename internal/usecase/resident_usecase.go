package usecase

import (
	"context"
	"time"

	"github.com/si-ka-repo/DepositManagement/internal/domain"
)

// ResidentUseCase handles resident master data.
type ResidentUseCase struct {
	residentRepo ResidentRepository
	facilityRepo FacilityRepository
	unitRepo     UnitRepository
	idGen        IDGenerator
	clock        Clock
}

// NewResidentUseCase creates a new ResidentUseCase.
func NewResidentUseCase(
	residentRepo ResidentRepository,
	facilityRepo FacilityRepository,
	unitRepo UnitRepository,
	idGen IDGenerator,
	clock Clock,
) *ResidentUseCase {
	return &ResidentUseCase{
		residentRepo: residentRepo,
		facilityRepo: facilityRepo,
		unitRepo:     unitRepo,
		idGen:        idGen,
		clock:        clock,
	}
}

// CreateResidentInput represents input for creating a resident.
type CreateResidentInput struct {
	FacilityID string
	UnitID     string
	Name       string
	StartDate  *time.Time
	EndDate    *time.Time
}

// CreateResident creates a new active resident.
func (uc *ResidentUseCase) CreateResident(ctx context.Context, input CreateResidentInput) (*domain.Resident, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	if _, err := uc.facilityRepo.GetByID(ctx, input.FacilityID); err != nil {
		return nil, err
	}
	if _, err := uc.unitRepo.GetByID(ctx, input.UnitID); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	resident := &domain.Resident{
		ID:         uc.idGen.Generate(),
		FacilityID: input.FacilityID,
		UnitID:     input.UnitID,
		Name:       input.Name,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.residentRepo.Create(ctx, resident); err != nil {
		return nil, err
	}

	return resident, nil
}

// UpdateResidentInput represents updatable resident fields.
type UpdateResidentInput struct {
	ID        string
	UnitID    string
	Name      string
	StartDate *time.Time
	EndDate   *time.Time
	IsActive  bool
}

// UpdateResident updates resident master data. Setting an end date takes
// the resident's funds out of facility totals without touching history.
func (uc *ResidentUseCase) UpdateResident(ctx context.Context, input UpdateResidentInput) (*domain.Resident, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	resident, err := uc.residentRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.UnitID != "" && input.UnitID != resident.UnitID {
		if _, err := uc.unitRepo.GetByID(ctx, input.UnitID); err != nil {
			return nil, err
		}
		resident.UnitID = input.UnitID
	}

	resident.Name = input.Name
	resident.StartDate = input.StartDate
	resident.EndDate = input.EndDate
	resident.IsActive = input.IsActive
	resident.UpdatedAt = uc.clock.Now()

	if err := uc.residentRepo.Update(ctx, resident); err != nil {
		return nil, err
	}

	return resident, nil
}

// GetResident returns one resident.
func (uc *ResidentUseCase) GetResident(ctx context.Context, id string) (*domain.Resident, error) {
	return uc.residentRepo.GetByID(ctx, id)
}

// ListResidents lists residents, optionally scoped to a facility.
func (uc *ResidentUseCase) ListResidents(ctx context.Context, facilityID string, includeInactive bool) ([]*domain.Resident, error) {
	return uc.residentRepo.List(ctx, ResidentFilter{
		FacilityID:      facilityID,
		IncludeInactive: includeInactive,
	})
}

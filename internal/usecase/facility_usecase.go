package usecase

import (
	"context"

	"github.com/si-ka-repo/DepositManagement/internal/domain"
)

// FacilityUseCase handles facility and unit master data.
type FacilityUseCase struct {
	facilityRepo FacilityRepository
	unitRepo     UnitRepository
	idGen        IDGenerator
	clock        Clock
}

// NewFacilityUseCase creates a new FacilityUseCase.
func NewFacilityUseCase(
	facilityRepo FacilityRepository,
	unitRepo UnitRepository,
	idGen IDGenerator,
	clock Clock,
) *FacilityUseCase {
	return &FacilityUseCase{
		facilityRepo: facilityRepo,
		unitRepo:     unitRepo,
		idGen:        idGen,
		clock:        clock,
	}
}

// CreateFacilityInput represents input for creating a facility.
type CreateFacilityInput struct {
	Name               string
	PositionName       string
	PositionHolderName string
	SortOrder          int
}

// CreateFacility creates a new active facility.
func (uc *FacilityUseCase) CreateFacility(ctx context.Context, input CreateFacilityInput) (*domain.Facility, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	facility := &domain.Facility{
		ID:                 uc.idGen.Generate(),
		Name:               input.Name,
		PositionName:       input.PositionName,
		PositionHolderName: input.PositionHolderName,
		SortOrder:          input.SortOrder,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := uc.facilityRepo.Create(ctx, facility); err != nil {
		return nil, err
	}

	return facility, nil
}

// UpdateFacilityInput represents updatable facility fields.
type UpdateFacilityInput struct {
	ID                 string
	Name               string
	PositionName       string
	PositionHolderName string
	SortOrder          int
	IsActive           bool
}

// UpdateFacility updates facility master data.
func (uc *FacilityUseCase) UpdateFacility(ctx context.Context, input UpdateFacilityInput) (*domain.Facility, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	facility, err := uc.facilityRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	facility.Name = input.Name
	facility.PositionName = input.PositionName
	facility.PositionHolderName = input.PositionHolderName
	facility.SortOrder = input.SortOrder
	facility.IsActive = input.IsActive
	facility.UpdatedAt = uc.clock.Now()

	if err := uc.facilityRepo.Update(ctx, facility); err != nil {
		return nil, err
	}

	return facility, nil
}

// GetFacility returns one facility.
func (uc *FacilityUseCase) GetFacility(ctx context.Context, id string) (*domain.Facility, error) {
	return uc.facilityRepo.GetByID(ctx, id)
}

// ListFacilities lists facilities in sort order.
func (uc *FacilityUseCase) ListFacilities(ctx context.Context, includeInactive bool) ([]*domain.Facility, error) {
	return uc.facilityRepo.List(ctx, includeInactive)
}

// CreateUnitInput represents input for creating a unit.
type CreateUnitInput struct {
	FacilityID string
	Name       string
	SortOrder  int
}

// CreateUnit creates a new unit within a facility.
func (uc *FacilityUseCase) CreateUnit(ctx context.Context, input CreateUnitInput) (*domain.Unit, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	if _, err := uc.facilityRepo.GetByID(ctx, input.FacilityID); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	unit := &domain.Unit{
		ID:         uc.idGen.Generate(),
		FacilityID: input.FacilityID,
		Name:       input.Name,
		SortOrder:  input.SortOrder,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.unitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}

	return unit, nil
}

// ListUnits lists a facility's units.
func (uc *FacilityUseCase) ListUnits(ctx context.Context, facilityID string) ([]*domain.Unit, error) {
	return uc.unitRepo.ListByFacility(ctx, facilityID)
}

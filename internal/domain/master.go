package domain

import (
	"fmt"
	"strings"
	"time"
)

const maxNameLength = 255

// Facility is a residential care facility holding custodial funds.
// PositionName and PositionHolderName fill the signature block on
// printed statements.
type Facility struct {
	ID                 string
	Name               string
	PositionName       string
	PositionHolderName string
	SortOrder          int
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Unit is a living unit within a facility.
type Unit struct {
	ID         string
	FacilityID string
	Name       string
	SortOrder  int
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Resident is a person whose cash the facility keeps in custody.
// A resident owns their entries; entries never move between residents.
type Resident struct {
	ID         string
	FacilityID string
	UnitID     string
	Name       string
	StartDate  *time.Time
	EndDate    *time.Time
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InCustody reports whether the resident's funds still count toward
// facility totals: active and without an end date.
func (r *Resident) InCustody() bool {
	return r.IsActive && r.EndDate == nil
}

// ValidateName checks a master-data display name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidName, maxNameLength)
	}
	return nil
}

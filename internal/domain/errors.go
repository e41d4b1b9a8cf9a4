package domain

import "errors"

var (
	// Entry creation errors
	ErrInvalidKind   = errors.New("invalid entry kind")
	ErrInvalidAmount = errors.New("amount must be a positive whole number")
	ErrMissingReason = errors.New("a reason is required for retroactive corrections")

	// Month-close policy errors
	ErrDateOutOfRange = errors.New("date is outside the allowed entry window")
	ErrDateNotPast    = errors.New("retroactive corrections are only allowed for past months")

	// Correction errors
	ErrAlreadyCorrected = errors.New("entry has already been corrected")
	ErrNotCorrectable   = errors.New("entry cannot be corrected")
	ErrMonthClosed      = errors.New("entry belongs to a closed month; record a retroactive correction instead")

	// Lookup errors
	ErrEntryNotFound    = errors.New("entry not found")
	ErrResidentNotFound = errors.New("resident not found")
	ErrFacilityNotFound = errors.New("facility not found")
	ErrUnitNotFound     = errors.New("unit not found")

	// Master data errors
	ErrInvalidName = errors.New("name must not be empty")
)

package domain

import (
	"fmt"
	"time"
)

// Staff may keep entering the previous month's transactions during the
// first days of a new month. After this day the previous month is closed
// and only retroactive corrections can touch it.
const ordinaryGraceDay = 10

// IsCurrentMonth reports whether (year, month) is today's month.
func IsCurrentMonth(year int, month time.Month, today time.Time) bool {
	return year == today.Year() && month == today.Month()
}

// IsPastMonth reports whether (year, month) is strictly before today's month.
func IsPastMonth(year int, month time.Month, today time.Time) bool {
	if year != today.Year() {
		return year < today.Year()
	}
	return month < today.Month()
}

// DateWindow is an inclusive range of calendar dates.
type DateWindow struct {
	Min time.Time
	Max time.Time
}

// Contains reports whether the date falls inside the window.
func (w DateWindow) Contains(date time.Time) bool {
	d := dateOnly(date)
	return !d.Before(w.Min) && !d.After(w.Max)
}

// OrdinaryEntryWindow returns the dates open for ordinary deposits and
// withdrawals, derived from today alone. Up to and including the grace
// day the window still covers the whole previous month; after it, only
// the current month up to today is open.
func OrdinaryEntryWindow(today time.Time) DateWindow {
	y, m, d := today.Date()
	if d <= ordinaryGraceDay {
		return DateWindow{
			Min: time.Date(y, m-1, 1, 0, 0, 0, 0, time.UTC),
			Max: monthEnd(y, m),
		}
	}
	return DateWindow{
		Min: time.Date(y, m, 1, 0, 0, 0, 0, time.UTC),
		Max: dateOnly(today),
	}
}

// ValidateOrdinaryDate rejects dates outside the open entry window.
func ValidateOrdinaryDate(date, today time.Time) error {
	w := OrdinaryEntryWindow(today)
	if !w.Contains(date) {
		return fmt.Errorf("%w: allowed range is %s to %s",
			ErrDateOutOfRange,
			w.Min.Format(time.DateOnly),
			w.Max.Format(time.DateOnly))
	}
	return nil
}

// ValidateRetroactiveDate rejects dates that are not in a strictly past
// month. Mistakes in the current month are fixed by voiding the entry,
// not by a retroactive correction.
func ValidateRetroactiveDate(date, today time.Time) error {
	if !IsPastMonth(date.Year(), date.Month(), today) {
		return fmt.Errorf("%w: %s is not before %s",
			ErrDateNotPast,
			date.Format("2006-01"),
			today.Format("2006-01"))
	}
	return nil
}

// monthStart returns the first day of the month.
func monthStart(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// monthEnd returns the last day of the month.
func monthEnd(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}

package domain

import (
	"fmt"
	"time"
)

// Correct voids an ordinary entry that was recorded by mistake in the
// still-open month. The transition is one-way: Deposit becomes
// CorrectedDeposit, Withdrawal becomes CorrectedWithdrawal, and the entry
// drops out of every balance while staying visible in the history.
//
// Entries in closed months are never voided; they are adjusted by
// recording a new retroactive correction instead, which keeps the closed
// history append-only.
func (e *LedgerEntry) Correct(today time.Time) error {
	switch e.Kind {
	case KindCorrectedDeposit, KindCorrectedWithdrawal:
		return ErrAlreadyCorrected
	case KindRetroactiveDeposit, KindRetroactiveWithdrawal:
		return fmt.Errorf("%w: retroactive corrections are adjusted with an offsetting entry", ErrNotCorrectable)
	}

	if !IsCurrentMonth(e.OccurredOn.Year(), e.OccurredOn.Month(), today) {
		return ErrMonthClosed
	}

	switch e.Kind {
	case KindDeposit:
		e.Kind = KindCorrectedDeposit
	case KindWithdrawal:
		e.Kind = KindCorrectedWithdrawal
	default:
		return fmt.Errorf("%w: kind %q", ErrNotCorrectable, e.Kind)
	}

	return nil
}

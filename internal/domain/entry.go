package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies a ledger entry. The persisted values match the
// transaction types used by the statement printing front end.
type Kind string

const (
	// KindDeposit and KindWithdrawal are ordinary entries recorded
	// within the open entry window.
	KindDeposit    Kind = "in"
	KindWithdrawal Kind = "out"

	// KindCorrectedDeposit and KindCorrectedWithdrawal mark an ordinary
	// entry as voided. A voided entry stays in the history but no longer
	// counts toward any balance.
	KindCorrectedDeposit    Kind = "correct_in"
	KindCorrectedWithdrawal Kind = "correct_out"

	// KindRetroactiveDeposit and KindRetroactiveWithdrawal are
	// adjustments recorded against a month that is already closed.
	// They always require a reason and count toward balances.
	KindRetroactiveDeposit    Kind = "past_correct_in"
	KindRetroactiveWithdrawal Kind = "past_correct_out"
)

// Sign returns the multiplier a kind contributes to a balance:
// +1 for deposits, -1 for withdrawals, 0 for voided entries.
// This is the only place the sign rules live.
func (k Kind) Sign() int {
	switch k {
	case KindDeposit, KindRetroactiveDeposit:
		return 1
	case KindWithdrawal, KindRetroactiveWithdrawal:
		return -1
	default:
		return 0
	}
}

// Voided reports whether the kind marks a voided entry.
func (k Kind) Voided() bool {
	return k == KindCorrectedDeposit || k == KindCorrectedWithdrawal
}

// Retroactive reports whether the kind is a closed-month adjustment.
func (k Kind) Retroactive() bool {
	return k == KindRetroactiveDeposit || k == KindRetroactiveWithdrawal
}

// Ordinary reports whether the kind is a plain deposit or withdrawal.
func (k Kind) Ordinary() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// Valid reports whether the kind is one of the known values.
func (k Kind) Valid() bool {
	switch k {
	case KindDeposit, KindWithdrawal,
		KindCorrectedDeposit, KindCorrectedWithdrawal,
		KindRetroactiveDeposit, KindRetroactiveWithdrawal:
		return true
	}
	return false
}

// LedgerEntry is one recorded cash movement for a resident.
// Entries are immutable after creation except for the single kind
// transition performed by Correct.
type LedgerEntry struct {
	ID          string
	ResidentID  string
	OccurredOn  time.Time
	Kind        Kind
	Amount      decimal.Decimal
	Description string
	Payee       string
	Reason      string
	CreatedAt   time.Time
}

// EntryParams holds the fields required to create a ledger entry.
type EntryParams struct {
	ID          string
	ResidentID  string
	OccurredOn  time.Time
	Kind        Kind
	Amount      decimal.Decimal
	Description string
	Payee       string
	Reason      string
	CreatedAt   time.Time
}

// NewLedgerEntry validates params and builds an entry. The amount must be
// a positive whole number of currency units. Retroactive kinds require a
// reason; voided kinds are never created directly, only transitioned into.
func NewLedgerEntry(p EntryParams) (*LedgerEntry, error) {
	if !p.Kind.Valid() || p.Kind.Voided() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, p.Kind)
	}
	if !p.Amount.IsPositive() || !p.Amount.IsInteger() {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidAmount, p.Amount)
	}
	if p.Kind.Retroactive() && p.Reason == "" {
		return nil, ErrMissingReason
	}

	return &LedgerEntry{
		ID:          p.ID,
		ResidentID:  p.ResidentID,
		OccurredOn:  dateOnly(p.OccurredOn),
		Kind:        p.Kind,
		Amount:      p.Amount,
		Description: p.Description,
		Payee:       p.Payee,
		Reason:      p.Reason,
		CreatedAt:   p.CreatedAt,
	}, nil
}

// SignedAmount returns the entry's contribution to a balance.
func (e *LedgerEntry) SignedAmount() decimal.Decimal {
	switch e.Kind.Sign() {
	case 1:
		return e.Amount
	case -1:
		return e.Amount.Neg()
	default:
		return decimal.Zero
	}
}

// dateOnly strips the clock from a timestamp; entries are attributed to
// calendar dates, not instants.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

package domain

import "github.com/shopspring/decimal"

// DenominationCount is a counted stack of one bill or coin value.
type DenominationCount struct {
	Denomination decimal.Decimal
	Count        int64
}

// Amount returns denomination × count.
func (d DenominationCount) Amount() decimal.Decimal {
	return d.Denomination.Mul(decimal.NewFromInt(d.Count))
}

// CashVerification compares the physically counted cash against the
// ledger balance for a facility at a month end.
type CashVerification struct {
	LedgerBalance decimal.Decimal
	CountedTotal  decimal.Decimal
	Difference    decimal.Decimal
	Balanced      bool
}

// VerifyCash totals the denomination counts and reports the difference
// against the ledger balance (ledger minus counted).
func VerifyCash(ledgerBalance decimal.Decimal, counts []DenominationCount) CashVerification {
	counted := decimal.Zero
	for _, c := range counts {
		counted = counted.Add(c.Amount())
	}

	diff := ledgerBalance.Sub(counted)
	return CashVerification{
		LedgerBalance: ledgerBalance,
		CountedTotal:  counted,
		Difference:    diff,
		Balanced:      diff.IsZero(),
	}
}

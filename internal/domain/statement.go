package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementLine is one printable row of a monthly statement.
// The carry-forward row has no date and no entry behind it.
type StatementLine struct {
	Date         time.Time
	Kind         Kind
	Label        string
	Payee        string
	Income       decimal.Decimal
	Expense      decimal.Decimal
	Balance      decimal.Decimal
	CarryForward bool
}

// Statement is a resident's printable month: the brought-forward line,
// the month's effecting entries, and the totals. Voided entries are left
// out entirely; they are struck through in the ledger view, not printed.
type Statement struct {
	Year           int
	Month          time.Month
	Lines          []StatementLine
	TotalIncome    decimal.Decimal
	TotalExpense   decimal.Decimal
	ClosingBalance decimal.Decimal
}

// BuildStatement partitions a resident's full history into the statement
// for (year, month). The carry-forward line appears when the prior
// balance is non-zero or the month has activity; a positive carry is
// printed in the income column, a negative one in the expense column.
func BuildStatement(entries []*LedgerEntry, year int, month time.Month) Statement {
	s := Statement{
		Year:           year,
		Month:          month,
		TotalIncome:    decimal.Zero,
		TotalExpense:   decimal.Zero,
		ClosingBalance: decimal.Zero,
	}

	carry, emit := CarryForward(entries, year, month)
	if emit {
		line := StatementLine{
			Label:        "前月より繰越",
			Balance:      carry,
			Income:       decimal.Zero,
			Expense:      decimal.Zero,
			CarryForward: true,
		}
		if carry.IsPositive() {
			line.Income = carry
		} else if carry.IsNegative() {
			line.Expense = carry.Abs()
		}
		s.Lines = append(s.Lines, line)
	}

	balance := carry
	for _, e := range EntriesInMonth(entries, year, month) {
		if e.Kind.Voided() {
			continue
		}

		balance = balance.Add(e.SignedAmount())
		line := StatementLine{
			Date:    e.OccurredOn,
			Kind:    e.Kind,
			Label:   e.Description,
			Payee:   e.Payee,
			Income:  decimal.Zero,
			Expense: decimal.Zero,
			Balance: balance,
		}
		if e.Kind.Sign() > 0 {
			line.Income = e.Amount
		} else {
			line.Expense = e.Amount
		}
		s.Lines = append(s.Lines, line)
	}

	for _, line := range s.Lines {
		s.TotalIncome = s.TotalIncome.Add(line.Income)
		s.TotalExpense = s.TotalExpense.Add(line.Expense)
	}
	if len(s.Lines) > 0 {
		s.ClosingBalance = s.Lines[len(s.Lines)-1].Balance
	}

	return s
}

// MonthTotals is a month's income/expense roll-up.
type MonthTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// Activity sums the statement's income and expense columns. Unit and
// resident summaries include the carry-forward line; the facility grand
// total does not.
func (s Statement) Activity(includeCarryForward bool) MonthTotals {
	t := MonthTotals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, line := range s.Lines {
		if line.CarryForward && !includeCarryForward {
			continue
		}
		t.Income = t.Income.Add(line.Income)
		t.Expense = t.Expense.Add(line.Expense)
	}
	t.Net = t.Income.Sub(t.Expense)
	return t
}

package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// EntryWithBalance pairs an entry with the running balance after it.
// Voided entries carry the unchanged balance so callers can render them
// struck through at their historical position.
type EntryWithBalance struct {
	Entry   *LedgerEntry
	Balance decimal.Decimal
}

// RunningBalances sorts the entries by (OccurredOn, ID) and folds them
// into per-entry running balances. The order is always recomputed from
// scratch; callers may pass entries in any order. The result is
// deterministic for a given entry set.
func RunningBalances(entries []*LedgerEntry) []EntryWithBalance {
	sorted := sortEntries(entries)

	result := make([]EntryWithBalance, 0, len(sorted))
	balance := decimal.Zero
	for _, e := range sorted {
		balance = balance.Add(e.SignedAmount())
		result = append(result, EntryWithBalance{Entry: e, Balance: balance})
	}

	return result
}

// BalanceAsOf returns the balance at the end of the last day of
// (year, month). Entries dated later are ignored; voided entries never
// count. Returns zero when no entry qualifies.
func BalanceAsOf(entries []*LedgerEntry, year int, month time.Month) decimal.Decimal {
	cutoff := monthEnd(year, month)

	balance := decimal.Zero
	for _, e := range entries {
		if !dateOnly(e.OccurredOn).After(cutoff) {
			balance = balance.Add(e.SignedAmount())
		}
	}

	return balance
}

// EntriesInMonth returns the entries dated within (year, month),
// inclusive of both month boundaries, sorted by (OccurredOn, ID).
// No kinds are dropped: callers decide whether voided entries are shown
// struck through or excluded from totals.
func EntriesInMonth(entries []*LedgerEntry, year int, month time.Month) []*LedgerEntry {
	first := monthStart(year, month)
	last := monthEnd(year, month)

	var result []*LedgerEntry
	for _, e := range entries {
		d := dateOnly(e.OccurredOn)
		if !d.Before(first) && !d.After(last) {
			result = append(result, e)
		}
	}

	return sortEntries(result)
}

// CarryForward returns the balance brought forward into (year, month),
// i.e. the balance at the end of the previous month, together with
// whether a statement should show a carry-forward line at all. A
// resident with no prior balance and no activity in the month gets none.
func CarryForward(entries []*LedgerEntry, year int, month time.Month) (decimal.Decimal, bool) {
	prev := monthStart(year, month).AddDate(0, -1, 0)
	balance := BalanceAsOf(entries, prev.Year(), prev.Month())

	emit := !balance.IsZero() || len(EntriesInMonth(entries, year, month)) > 0
	return balance, emit
}

// sortEntries returns a copy sorted by occurrence date, with the
// monotonically assigned ID as the tie-break for same-day entries.
func sortEntries(entries []*LedgerEntry) []*LedgerEntry {
	sorted := make([]*LedgerEntry, len(entries))
	copy(sorted, entries)

	sort.Slice(sorted, func(i, j int) bool {
		di, dj := dateOnly(sorted[i].OccurredOn), dateOnly(sorted[j].OccurredOn)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return sorted[i].ID < sorted[j].ID
	})

	return sorted
}

package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func yen(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestDenominationCount_Amount(t *testing.T) {
	c := DenominationCount{Denomination: yen(500), Count: 7}
	if !c.Amount().Equal(yen(3500)) {
		t.Errorf("amount = %s, want 3500", c.Amount())
	}
}

func TestVerifyCash_Balanced(t *testing.T) {
	counts := []DenominationCount{
		{Denomination: yen(10000), Count: 2},
		{Denomination: yen(1000), Count: 3},
		{Denomination: yen(100), Count: 5},
	}

	result := VerifyCash(yen(23500), counts)
	if !result.Balanced {
		t.Error("expected balanced result")
	}
	if !result.CountedTotal.Equal(yen(23500)) {
		t.Errorf("counted total = %s, want 23500", result.CountedTotal)
	}
	if !result.Difference.IsZero() {
		t.Errorf("difference = %s, want 0", result.Difference)
	}
}

func TestVerifyCash_ShortCount(t *testing.T) {
	counts := []DenominationCount{{Denomination: yen(1000), Count: 9}}

	result := VerifyCash(yen(10000), counts)
	if result.Balanced {
		t.Error("expected unbalanced result")
	}
	if !result.Difference.Equal(yen(1000)) {
		t.Errorf("difference = %s, want 1000 (ledger minus counted)", result.Difference)
	}
}

func TestVerifyCash_NoCounts(t *testing.T) {
	result := VerifyCash(yen(500), nil)
	if result.Balanced {
		t.Error("expected unbalanced result for an empty count")
	}
	if !result.CountedTotal.IsZero() {
		t.Errorf("counted total = %s, want 0", result.CountedTotal)
	}
}

package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestKind_Sign(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindDeposit, 1},
		{KindWithdrawal, -1},
		{KindRetroactiveDeposit, 1},
		{KindRetroactiveWithdrawal, -1},
		{KindCorrectedDeposit, 0},
		{KindCorrectedWithdrawal, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.Sign(); got != tt.want {
				t.Errorf("Sign() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewLedgerEntry(t *testing.T) {
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		params  EntryParams
		wantErr error
	}{
		{
			name: "valid deposit",
			params: EntryParams{
				ID: "e1", ResidentID: "r1", OccurredOn: date,
				Kind: KindDeposit, Amount: decimal.NewFromInt(1000),
			},
		},
		{
			name: "valid retroactive with reason",
			params: EntryParams{
				ID: "e2", ResidentID: "r1", OccurredOn: date,
				Kind: KindRetroactiveWithdrawal, Amount: decimal.NewFromInt(500),
				Reason: "receipt found after close",
			},
		},
		{
			name: "zero amount rejected",
			params: EntryParams{
				ID: "e3", ResidentID: "r1", OccurredOn: date,
				Kind: KindDeposit, Amount: decimal.Zero,
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "negative amount rejected",
			params: EntryParams{
				ID: "e4", ResidentID: "r1", OccurredOn: date,
				Kind: KindWithdrawal, Amount: decimal.NewFromInt(-100),
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "fractional amount rejected",
			params: EntryParams{
				ID: "e5", ResidentID: "r1", OccurredOn: date,
				Kind: KindDeposit, Amount: decimal.RequireFromString("10.5"),
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "retroactive without reason rejected",
			params: EntryParams{
				ID: "e6", ResidentID: "r1", OccurredOn: date,
				Kind: KindRetroactiveDeposit, Amount: decimal.NewFromInt(100),
			},
			wantErr: ErrMissingReason,
		},
		{
			name: "voided kind cannot be created directly",
			params: EntryParams{
				ID: "e7", ResidentID: "r1", OccurredOn: date,
				Kind: KindCorrectedDeposit, Amount: decimal.NewFromInt(100),
			},
			wantErr: ErrInvalidKind,
		},
		{
			name: "unknown kind rejected",
			params: EntryParams{
				ID: "e8", ResidentID: "r1", OccurredOn: date,
				Kind: Kind("transfer"), Amount: decimal.NewFromInt(100),
			},
			wantErr: ErrInvalidKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := NewLedgerEntry(tt.params)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if entry.Kind != tt.params.Kind {
				t.Errorf("kind = %q, want %q", entry.Kind, tt.params.Kind)
			}
		})
	}
}

func TestNewLedgerEntry_NormalizesDate(t *testing.T) {
	entry, err := NewLedgerEntry(EntryParams{
		ID: "e1", ResidentID: "r1",
		OccurredOn: time.Date(2024, 3, 5, 18, 30, 12, 0, time.UTC),
		Kind:       KindDeposit, Amount: decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	if !entry.OccurredOn.Equal(want) {
		t.Errorf("OccurredOn = %v, want %v", entry.OccurredOn, want)
	}
}

func TestLedgerEntry_SignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(250)

	deposit := &LedgerEntry{Kind: KindDeposit, Amount: amount}
	if !deposit.SignedAmount().Equal(amount) {
		t.Errorf("deposit signed amount = %s, want %s", deposit.SignedAmount(), amount)
	}

	withdrawal := &LedgerEntry{Kind: KindWithdrawal, Amount: amount}
	if !withdrawal.SignedAmount().Equal(amount.Neg()) {
		t.Errorf("withdrawal signed amount = %s, want %s", withdrawal.SignedAmount(), amount.Neg())
	}

	voided := &LedgerEntry{Kind: KindCorrectedWithdrawal, Amount: amount}
	if !voided.SignedAmount().IsZero() {
		t.Errorf("voided signed amount = %s, want 0", voided.SignedAmount())
	}
}

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/si-ka-repo/DepositManagement/internal/adapter/http/dto"
	"github.com/si-ka-repo/DepositManagement/internal/domain"
	"github.com/si-ka-repo/DepositManagement/tests/testutil"
)

func TestCashVerification(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestRouter(ctx, t, testDB)

	facility := testDB.CreateTestFacility(ctx, "みどりの家")
	unit := testDB.CreateTestUnit(ctx, facility.ID, "本館")
	resident := testDB.CreateTestResident(ctx, facility.ID, unit.ID, "伊藤 三郎")

	march := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	testDB.CreateTestEntry(ctx, resident.ID, march, domain.KindDeposit, decimal.NewFromInt(15000))

	verify := func(t *testing.T, counts []dto.DenominationCountItem) *dto.VerificationReportResponse {
		t.Helper()
		body, _ := json.Marshal(dto.VerifyCashRequest{Year: 2024, Month: 3, Counts: counts})
		r := httptest.NewRequest(http.MethodPost, "/api/v1/facilities/"+facility.ID+"/cash-verification", bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var resp dto.VerificationReportResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		return &resp
	}

	t.Run("matching count balances", func(t *testing.T) {
		resp := verify(t, []dto.DenominationCountItem{
			{Denomination: decimal.NewFromInt(10000), Count: 1},
			{Denomination: decimal.NewFromInt(1000), Count: 5},
		})

		if !resp.Balanced {
			t.Error("expected the count to balance")
		}
		if !resp.CountedTotal.Equal(decimal.NewFromInt(15000)) {
			t.Errorf("expected counted total 15000, got %s", resp.CountedTotal)
		}
		if !resp.Difference.IsZero() {
			t.Errorf("expected zero difference, got %s", resp.Difference)
		}
	})

	t.Run("short count reports the difference", func(t *testing.T) {
		resp := verify(t, []dto.DenominationCountItem{
			{Denomination: decimal.NewFromInt(10000), Count: 1},
			{Denomination: decimal.NewFromInt(1000), Count: 4},
		})

		if resp.Balanced {
			t.Error("expected the count not to balance")
		}
		if !resp.LedgerBalance.Equal(decimal.NewFromInt(15000)) {
			t.Errorf("expected ledger balance 15000, got %s", resp.LedgerBalance)
		}
		if !resp.Difference.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected ledger minus counted to be 1000, got %s", resp.Difference)
		}
	})
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/si-ka-repo/DepositManagement/internal/adapter/http/dto"
	"github.com/si-ka-repo/DepositManagement/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"entry not found", domain.ErrEntryNotFound, http.StatusNotFound},
		{"resident not found", domain.ErrResidentNotFound, http.StatusNotFound},
		{"facility not found", domain.ErrFacilityNotFound, http.StatusNotFound},
		{"unit not found", domain.ErrUnitNotFound, http.StatusNotFound},
		{"already corrected", domain.ErrAlreadyCorrected, http.StatusConflict},
		{"month closed", domain.ErrMonthClosed, http.StatusBadRequest},
		{"date out of range", domain.ErrDateOutOfRange, http.StatusBadRequest},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"missing reason", domain.ErrMissingReason, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	payload := map[string]string{"status": "ok"}

	writeJSON(rr, http.StatusCreated, payload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content-type application/json, got %s", ct)
	}

	var decoded map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if decoded["status"] != "ok" {
		t.Fatalf("expected payload to round-trip, got %+v", decoded)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeError(rr, http.StatusBadRequest, "bad request", "detail")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if resp.Error != "bad request" {
		t.Fatalf("expected error message to propagate, got %+v", resp)
	}
}

func TestParseYearMonth(t *testing.T) {
	now := time.Date(2024, time.May, 31, 23, 59, 0, 0, time.UTC)

	req := httptest.NewRequest(http.MethodGet, "/dashboard?year=2024&month=3", nil)
	year, month, err := parseYearMonth(req, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if year != 2024 || month != time.March {
		t.Fatalf("expected 2024-03, got %d-%d", year, month)
	}

	req = httptest.NewRequest(http.MethodGet, "/dashboard?year=2024&month=13", nil)
	if _, _, err := parseYearMonth(req, now); err == nil {
		t.Fatalf("expected error for month 13")
	}

	// Defaults come from the caller's clock, not the wall clock.
	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	year, month, err = parseYearMonth(req, now)
	if err != nil {
		t.Fatalf("unexpected error for defaults: %v", err)
	}
	if year != 2024 || month != time.May {
		t.Fatalf("expected defaults from the given now, got %d-%d", year, month)
	}
}

func TestParseBoolQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/facilities?include_inactive=true", nil)
	if !parseBoolQuery(req, "include_inactive") {
		t.Fatalf("expected true")
	}

	req = httptest.NewRequest(http.MethodGet, "/facilities", nil)
	if parseBoolQuery(req, "include_inactive") {
		t.Fatalf("expected false when missing")
	}
}

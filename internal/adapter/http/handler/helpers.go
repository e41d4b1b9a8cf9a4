package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/si-ka-repo/DepositManagement/internal/adapter/http/dto"
	"github.com/si-ka-repo/DepositManagement/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrEntryNotFound),
		errors.Is(err, domain.ErrResidentNotFound),
		errors.Is(err, domain.ErrFacilityNotFound),
		errors.Is(err, domain.ErrUnitNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyCorrected):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidKind),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrMissingReason),
		errors.Is(err, domain.ErrDateOutOfRange),
		errors.Is(err, domain.ErrDateNotPast),
		errors.Is(err, domain.ErrNotCorrectable),
		errors.Is(err, domain.ErrMonthClosed),
		errors.Is(err, domain.ErrInvalidName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseYearMonth reads year and month query parameters, defaulting to
// the month of now. Callers pass the injected clock's now so the
// default cannot disagree with the use case's view of today.
func parseYearMonth(r *http.Request, now time.Time) (int, time.Month, error) {
	year := parseIntQuery(r, "year", now.Year())
	month := parseIntQuery(r, "month", int(now.Month()))

	if month < 1 || month > 12 {
		return 0, 0, errors.New("month must be between 1 and 12")
	}

	return year, time.Month(month), nil
}

// parseBoolQuery parses a boolean query parameter.
func parseBoolQuery(r *http.Request, key string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return v
}

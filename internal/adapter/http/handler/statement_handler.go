package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/si-ka-repo/DepositManagement/internal/adapter/http/dto"
	"github.com/si-ka-repo/DepositManagement/internal/usecase"
)

// StatementHandler serves printable monthly statements.
type StatementHandler struct {
	statementUC *usecase.StatementUseCase
	clock       usecase.Clock
}

// NewStatementHandler creates a new StatementHandler.
func NewStatementHandler(statementUC *usecase.StatementUseCase, clock usecase.Clock) *StatementHandler {
	return &StatementHandler{statementUC: statementUC, clock: clock}
}

// ResidentStatement returns one resident's statement for a month.
func (h *StatementHandler) ResidentStatement(w http.ResponseWriter, r *http.Request) {
	residentID := chi.URLParam(r, "id")
	if residentID == "" {
		writeError(w, http.StatusBadRequest, "missing resident ID", "")
		return
	}

	year, month, err := parseYearMonth(r, h.clock.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month", err.Error())
		return
	}

	statement, err := h.statementUC.BuildResidentStatement(r.Context(), residentID, year, month)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build statement", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromUseCase(statement))
}

// FacilityStatement returns statements for every resident of a facility,
// with per-unit and facility-wide totals. An optional unit query parameter
// narrows the report to one unit.
func (h *StatementHandler) FacilityStatement(w http.ResponseWriter, r *http.Request) {
	facilityID := chi.URLParam(r, "id")
	if facilityID == "" {
		writeError(w, http.StatusBadRequest, "missing facility ID", "")
		return
	}

	year, month, err := parseYearMonth(r, h.clock.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month", err.Error())
		return
	}

	unitID := r.URL.Query().Get("unit")

	statement, err := h.statementUC.BuildFacilityStatement(r.Context(), facilityID, unitID, year, month)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build facility statement", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.FacilityStatementFromUseCase(statement))
}

// BatchStatements returns a statement per resident of a facility, for
// month-end printing in one go.
func (h *StatementHandler) BatchStatements(w http.ResponseWriter, r *http.Request) {
	facilityID := chi.URLParam(r, "id")
	if facilityID == "" {
		writeError(w, http.StatusBadRequest, "missing facility ID", "")
		return
	}

	year, month, err := parseYearMonth(r, h.clock.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month", err.Error())
		return
	}

	statements, err := h.statementUC.BuildBatchStatements(r.Context(), facilityID, year, month)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build statements", err.Error())

		return
	}

	responses := make([]*dto.StatementResponse, len(statements))
	for i := range statements {
		responses[i] = dto.StatementFromUseCase(&statements[i])
	}

	writeJSON(w, http.StatusOK, responses)
}

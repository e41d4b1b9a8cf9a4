package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/si-ka-repo/DepositManagement/internal/adapter/http/dto"
	"github.com/si-ka-repo/DepositManagement/internal/usecase"
)

// CashVerificationHandler compares counted cash against ledger balances.
type CashVerificationHandler struct {
	verificationUC *usecase.CashVerificationUseCase
}

// NewCashVerificationHandler creates a new CashVerificationHandler.
func NewCashVerificationHandler(verificationUC *usecase.CashVerificationUseCase) *CashVerificationHandler {
	return &CashVerificationHandler{verificationUC: verificationUC}
}

// Verify builds a verification sheet from a denomination count.
func (h *CashVerificationHandler) Verify(w http.ResponseWriter, r *http.Request) {
	facilityID := chi.URLParam(r, "id")
	if facilityID == "" {
		writeError(w, http.StatusBadRequest, "missing facility ID", "")
		return
	}

	var req dto.VerifyCashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	report, err := h.verificationUC.Verify(r.Context(), req.ToUseCaseInput(facilityID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to verify cash", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.VerificationFromUseCase(report))
}

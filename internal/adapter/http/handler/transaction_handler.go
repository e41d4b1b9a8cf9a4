package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/si-ka-repo/DepositManagement/internal/adapter/http/dto"
	"github.com/si-ka-repo/DepositManagement/internal/domain"
	"github.com/si-ka-repo/DepositManagement/internal/usecase"
)

// TransactionHandler handles deposit, withdrawal and correction requests.
type TransactionHandler struct {
	ledgerUC *usecase.LedgerUseCase
	clock    usecase.Clock
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledgerUC *usecase.LedgerUseCase, clock usecase.Clock) *TransactionHandler {
	return &TransactionHandler{ledgerUC: ledgerUC, clock: clock}
}

// Record records an ordinary deposit or withdrawal.
func (h *TransactionHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	entry, err := h.ledgerUC.RecordEntry(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to record entry", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// RecordRetroactive records an adjustment against a closed month.
func (h *TransactionHandler) RecordRetroactive(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordRetroactiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	entry, err := h.ledgerUC.RecordRetroactiveCorrection(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to record retroactive correction", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Correct voids a same-month entry recorded by mistake.
func (h *TransactionHandler) Correct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	entry, err := h.ledgerUC.CorrectEntry(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to correct entry", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Ledger returns a resident's entries with running balances. Passing
// year and month narrows the rows to one month.
func (h *TransactionHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	residentID := chi.URLParam(r, "id")
	if residentID == "" {
		writeError(w, http.StatusBadRequest, "missing resident ID", "")
		return
	}

	var (
		rows []domain.EntryWithBalance
		err  error
	)
	if r.URL.Query().Get("year") != "" || r.URL.Query().Get("month") != "" {
		year, month, perr := parseYearMonth(r, h.clock.Now())
		if perr != nil {
			writeError(w, http.StatusBadRequest, "invalid month", perr.Error())
			return
		}
		rows, err = h.ledgerUC.ResidentMonthLedger(r.Context(), residentID, year, month)
	} else {
		rows, err = h.ledgerUC.ResidentLedger(r.Context(), residentID)
	}
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to load ledger", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerFromDomain(rows))
}

// Balance returns a resident's balance at a month end.
func (h *TransactionHandler) Balance(w http.ResponseWriter, r *http.Request) {
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

	balance, err := h.ledgerUC.ResidentBalance(r.Context(), residentID, year, month)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute balance", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		ResidentID: residentID,
		Year:       year,
		Month:      int(month),
		Balance:    balance,
	})
}

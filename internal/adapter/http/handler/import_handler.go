package handler

import (
	"encoding/json"
	"net/http"

	"github.com/si-ka-repo/DepositManagement/internal/adapter/http/dto"
	"github.com/si-ka-repo/DepositManagement/internal/usecase"
)

// ImportHandler runs legacy data imports.
type ImportHandler struct {
	importUC *usecase.ImportUseCase
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importUC *usecase.ImportUseCase) *ImportHandler {
	return &ImportHandler{importUC: importUC}
}

// Run imports facility, unit and resident rows exported from the old
// spreadsheet system. Row failures are collected in the result rather
// than aborting the import; a multi-status response flags them.
func (h *ImportHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req dto.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if len(req.Rows) == 0 {
		writeError(w, http.StatusBadRequest, "no rows to import", "")
		return
	}

	result, err := h.importUC.Import(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to import", err.Error())

		return
	}

	status := http.StatusCreated
	if len(result.Errors) > 0 {
		status = http.StatusMultiStatus
	}

	writeJSON(w, status, dto.ImportResultFromUseCase(result))
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/si-ka-repo/DepositManagement/internal/adapter/http/dto"
	"github.com/si-ka-repo/DepositManagement/internal/usecase"
)

// ResidentHandler handles resident master requests.
type ResidentHandler struct {
	residentUC *usecase.ResidentUseCase
}

// NewResidentHandler creates a new ResidentHandler.
func NewResidentHandler(residentUC *usecase.ResidentUseCase) *ResidentHandler {
	return &ResidentHandler{residentUC: residentUC}
}

// Create registers a new resident.
func (h *ResidentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateResidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	resident, err := h.residentUC.CreateResident(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create resident", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.ResidentFromDomain(resident))
}

// Update edits a resident's name, unit or custody dates.
func (h *ResidentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing resident ID", "")
		return
	}

	var req dto.UpdateResidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(id)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	resident, err := h.residentUC.UpdateResident(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update resident", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ResidentFromDomain(resident))
}

// Get returns a single resident.
func (h *ResidentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing resident ID", "")
		return
	}

	resident, err := h.residentUC.GetResident(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get resident", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ResidentFromDomain(resident))
}

// List returns residents, optionally narrowed to one facility. Departed
// residents are included only when include_inactive=true.
func (h *ResidentHandler) List(w http.ResponseWriter, r *http.Request) {
	facilityID := r.URL.Query().Get("facility")
	includeInactive := parseBoolQuery(r, "include_inactive")

	residents, err := h.residentUC.ListResidents(r.Context(), facilityID, includeInactive)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list residents", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ResidentsFromDomain(residents))
}

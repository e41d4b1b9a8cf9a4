package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/si-ka-repo/DepositManagement/internal/adapter/http/dto"
	"github.com/si-ka-repo/DepositManagement/internal/usecase"
)

// FacilityHandler handles facility and unit master requests.
type FacilityHandler struct {
	facilityUC *usecase.FacilityUseCase
}

// NewFacilityHandler creates a new FacilityHandler.
func NewFacilityHandler(facilityUC *usecase.FacilityUseCase) *FacilityHandler {
	return &FacilityHandler{facilityUC: facilityUC}
}

// Create registers a new facility.
func (h *FacilityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateFacilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	facility, err := h.facilityUC.CreateFacility(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create facility", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.FacilityFromDomain(facility))
}

// Update edits a facility's name, report labels or active flag.
func (h *FacilityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing facility ID", "")
		return
	}

	var req dto.UpdateFacilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	facility, err := h.facilityUC.UpdateFacility(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update facility", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.FacilityFromDomain(facility))
}

// Get returns a single facility.
func (h *FacilityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing facility ID", "")
		return
	}

	facility, err := h.facilityUC.GetFacility(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get facility", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.FacilityFromDomain(facility))
}

// List returns facilities in display order. Inactive facilities are
// included only when include_inactive=true.
func (h *FacilityHandler) List(w http.ResponseWriter, r *http.Request) {
	includeInactive := parseBoolQuery(r, "include_inactive")

	facilities, err := h.facilityUC.ListFacilities(r.Context(), includeInactive)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list facilities", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.FacilitiesFromDomain(facilities))
}

// CreateUnit registers a unit under a facility.
func (h *FacilityHandler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	facilityID := chi.URLParam(r, "id")
	if facilityID == "" {
		writeError(w, http.StatusBadRequest, "missing facility ID", "")
		return
	}

	var req dto.CreateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	unit, err := h.facilityUC.CreateUnit(r.Context(), req.ToUseCaseInput(facilityID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create unit", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.UnitFromDomain(unit))
}

// ListUnits returns a facility's units in display order.
func (h *FacilityHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	facilityID := chi.URLParam(r, "id")
	if facilityID == "" {
		writeError(w, http.StatusBadRequest, "missing facility ID", "")
		return
	}

	units, err := h.facilityUC.ListUnits(r.Context(), facilityID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list units", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.UnitsFromDomain(units))
}

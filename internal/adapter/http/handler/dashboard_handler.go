package handler

import (
	"net/http"

	"github.com/si-ka-repo/DepositManagement/internal/usecase"
)

// DashboardHandler serves custodial totals for management review.
type DashboardHandler struct {
	dashboardUC *usecase.DashboardUseCase
	clock       usecase.Clock
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardUC *usecase.DashboardUseCase, clock usecase.Clock) *DashboardHandler {
	return &DashboardHandler{dashboardUC: dashboardUC, clock: clock}
}

// Summary returns month-end custodial totals. An optional facility query
// parameter narrows the summary to one facility.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r, h.clock.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month", err.Error())
		return
	}

	facilityID := r.URL.Query().Get("facility")

	summary, err := h.dashboardUC.Summary(r.Context(), facilityID, year, month)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build dashboard summary", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, summary)
}

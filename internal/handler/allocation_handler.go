package handler

import (
	"net/http"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/service"
)

// AllocationHandler は割当エンジンとレポートの HTTP ハンドラ
type AllocationHandler struct {
	allocationService service.AllocationService
}

// NewAllocationHandler は AllocationHandler を生成する
func NewAllocationHandler(allocationService service.AllocationService) *AllocationHandler {
	return &AllocationHandler{allocationService: allocationService}
}

// Baseline は GET /api/allocation を処理する
func (h *AllocationHandler) Baseline(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	res, err := h.allocationService.Baseline(r.Context(), org)
	if err != nil {
		serviceError(w, r, "allocation", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Scenario は GET /api/scenarios/{id}/allocation を処理する
func (h *AllocationHandler) Scenario(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	res, err := h.allocationService.Scenario(r.Context(), org, r.PathValue("id"))
	if err != nil {
		serviceError(w, r, "scenario_allocation", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Compare は GET /api/scenarios/{id}/compare を処理する
func (h *AllocationHandler) Compare(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	diff, err := h.allocationService.Compare(r.Context(), org, r.PathValue("id"))
	if err != nil {
		serviceError(w, r, "compare", err)
		return
	}
	writeJSON(w, http.StatusOK, diff)
}

// CapacitySummary は GET /api/capacity/summary を処理する
func (h *AllocationHandler) CapacitySummary(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	summary, err := h.allocationService.CapacitySummary(r.Context(), org)
	if err != nil {
		serviceError(w, r, "capacity_summary", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// SinglePointsOfFailure は GET /api/reports/spof を処理する
func (h *AllocationHandler) SinglePointsOfFailure(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	holders, err := h.allocationService.SinglePointsOfFailure(r.Context(), org)
	if err != nil {
		serviceError(w, r, "spof_report", err)
		return
	}
	writeJSON(w, http.StatusOK, holders)
}

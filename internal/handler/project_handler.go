package handler

import (
	"net/http"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/planning"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/service"
)

// ProjectHandler はプロジェクトと見積の HTTP ハンドラ
type ProjectHandler struct {
	projectService  service.ProjectService
	estimateService service.EstimateService
}

// NewProjectHandler は ProjectHandler を生成する
func NewProjectHandler(projectService service.ProjectService, estimateService service.EstimateService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, estimateService: estimateService}
}

// List は GET /api/projects を処理する（優先度順）
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	projects, err := h.projectService.List(r.Context(), org)
	if err != nil {
		serviceError(w, r, "list_projects", err)
		return
	}
	if projects == nil {
		projects = []*model.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

// Get は GET /api/projects/{id} を処理する
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	project, err := h.projectService.GetByID(r.Context(), org, r.PathValue("id"))
	if err != nil {
		serviceError(w, r, "get_project", err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// Create は POST /api/projects を処理する。見積も同時に作成する
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	var project model.Project
	if !decodeJSON(w, r, &project) {
		return
	}
	project.ID = ""
	project.OrgID = org
	if err := h.projectService.Create(r.Context(), &project); err != nil {
		serviceError(w, r, "create_project", err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

// Update は PUT /api/projects/{id} を処理する。見積は変更しない
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	var project model.Project
	if !decodeJSON(w, r, &project) {
		return
	}
	project.ID = r.PathValue("id")
	project.OrgID = org
	if err := h.projectService.Update(r.Context(), &project); err != nil {
		serviceError(w, r, "update_project", err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// Delete は DELETE /api/projects/{id} を処理する
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	if err := h.projectService.Delete(r.Context(), org, r.PathValue("id")); err != nil {
		serviceError(w, r, "delete_project", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type estimatesRequest struct {
	Estimates []model.TeamEstimate `json:"estimates"`
}

// ReplaceEstimates は PUT /api/projects/{id}/estimates を処理する
func (h *ProjectHandler) ReplaceEstimates(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	var req estimatesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Estimates == nil {
		req.Estimates = []model.TeamEstimate{}
	}
	id := r.PathValue("id")
	if err := h.projectService.ReplaceEstimates(r.Context(), org, id, req.Estimates); err != nil {
		serviceError(w, r, "replace_estimates", err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// EstimateSummary は GET /api/projects/{id}/estimate-summary を処理する
func (h *ProjectHandler) EstimateSummary(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	agg, err := h.estimateService.Summary(r.Context(), org, r.PathValue("id"))
	if err != nil {
		serviceError(w, r, "estimate_summary", err)
		return
	}
	writeJSON(w, http.StatusOK, agg)
}

type phasesRequest struct {
	DevHours *float64 `json:"dev_hours"`
}

type phasesResponse struct {
	Phases planning.PhaseHours `json:"phases"`
	Total  float64             `json:"total"`
}

// Phases は POST /api/estimates/phases を処理する
func (h *ProjectHandler) Phases(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	var req phasesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.DevHours == nil {
		writeError(w, http.StatusBadRequest, "dev_hours_required")
		return
	}
	phases, err := h.estimateService.Phases(r.Context(), org, *req.DevHours)
	if err != nil {
		serviceError(w, r, "estimate_phases", err)
		return
	}
	writeJSON(w, http.StatusOK, phasesResponse{Phases: phases, Total: phases.Total()})
}

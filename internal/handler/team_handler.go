package handler

import (
	"net/http"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/service"
)

// TeamHandler はチーム CRUD の HTTP ハンドラ
type TeamHandler struct {
	teamService service.TeamService
}

// NewTeamHandler は TeamHandler を生成する
func NewTeamHandler(teamService service.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// List は GET /api/teams を処理する
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	teams, err := h.teamService.List(r.Context(), org)
	if err != nil {
		serviceError(w, r, "list_teams", err)
		return
	}
	if teams == nil {
		teams = []*model.Team{}
	}
	writeJSON(w, http.StatusOK, teams)
}

// Get は GET /api/teams/{id} を処理する
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	team, err := h.teamService.GetByID(r.Context(), org, r.PathValue("id"))
	if err != nil {
		serviceError(w, r, "get_team", err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// Create は POST /api/teams を処理する
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	var team model.Team
	if !decodeJSON(w, r, &team) {
		return
	}
	team.ID = ""
	team.OrgID = org
	if err := h.teamService.Create(r.Context(), &team); err != nil {
		serviceError(w, r, "create_team", err)
		return
	}
	writeJSON(w, http.StatusCreated, team)
}

// Update は PUT /api/teams/{id} を処理する
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	var team model.Team
	if !decodeJSON(w, r, &team) {
		return
	}
	team.ID = r.PathValue("id")
	team.OrgID = org
	if err := h.teamService.Update(r.Context(), &team); err != nil {
		serviceError(w, r, "update_team", err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// Delete は DELETE /api/teams/{id} を処理する
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	if err := h.teamService.Delete(r.Context(), org, r.PathValue("id")); err != nil {
		serviceError(w, r, "delete_team", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

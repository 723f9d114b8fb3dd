package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/service"
)

// ScenarioHandler はシナリオ CRUD の HTTP ハンドラ
type ScenarioHandler struct {
	scenarioService service.ScenarioService
}

// NewScenarioHandler は ScenarioHandler を生成する
func NewScenarioHandler(scenarioService service.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{scenarioService: scenarioService}
}

// List は GET /api/scenarios を処理する
func (h *ScenarioHandler) List(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	scenarios, err := h.scenarioService.List(r.Context(), org)
	if err != nil {
		serviceError(w, r, "list_scenarios", err)
		return
	}
	if scenarios == nil {
		scenarios = []*model.Scenario{}
	}
	writeJSON(w, http.StatusOK, scenarios)
}

// Get は GET /api/scenarios/{id} を処理する。最後の割当スナップショットを含む
func (h *ScenarioHandler) Get(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	scenario, err := h.scenarioService.GetByID(r.Context(), org, r.PathValue("id"))
	if err != nil {
		serviceError(w, r, "get_scenario", err)
		return
	}
	writeJSON(w, http.StatusOK, scenario)
}

// Create は POST /api/scenarios を処理する
func (h *ScenarioHandler) Create(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	var scenario model.Scenario
	if !decodeJSON(w, r, &scenario) {
		return
	}
	scenario.ID = ""
	scenario.OrgID = org
	scenario.Snapshot, scenario.SnapshotAt = nil, nil
	if err := h.scenarioService.Create(r.Context(), &scenario); err != nil {
		serviceError(w, r, "create_scenario", err)
		return
	}
	writeJSON(w, http.StatusCreated, scenario)
}

// Update は PUT /api/scenarios/{id} を処理する。契約者と優先度上書きは置き換えられる
func (h *ScenarioHandler) Update(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	var scenario model.Scenario
	if !decodeJSON(w, r, &scenario) {
		return
	}
	scenario.ID = r.PathValue("id")
	scenario.OrgID = org
	scenario.Snapshot, scenario.SnapshotAt = nil, nil
	if err := h.scenarioService.Update(r.Context(), &scenario); err != nil {
		serviceError(w, r, "update_scenario", err)
		return
	}
	writeJSON(w, http.StatusOK, scenario)
}

// Delete は DELETE /api/scenarios/{id} を処理する
func (h *ScenarioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	if err := h.scenarioService.Delete(r.Context(), org, r.PathValue("id")); err != nil {
		serviceError(w, r, "delete_scenario", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type cloneRequest struct {
	Name string `json:"name"`
}

// Clone は POST /api/scenarios/{id}/clone を処理する。ボディは省略可
func (h *ScenarioHandler) Clone(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	var req cloneRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req)
	if err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	clone, err := h.scenarioService.Clone(r.Context(), org, r.PathValue("id"), strings.TrimSpace(req.Name))
	if err != nil {
		serviceError(w, r, "clone_scenario", err)
		return
	}
	writeJSON(w, http.StatusCreated, clone)
}

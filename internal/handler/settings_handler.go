package handler

import (
	"net/http"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/service"
)

// SettingsHandler は組織設定の HTTP ハンドラ
type SettingsHandler struct {
	settingsService service.SettingsService
}

// NewSettingsHandler は SettingsHandler を生成する
func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get は GET /api/settings を処理する
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	settings, err := h.settingsService.Get(r.Context(), org)
	if err != nil {
		serviceError(w, r, "get_settings", err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// Update は PUT /api/settings を処理する
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	var settings model.OrgSettings
	if !decodeJSON(w, r, &settings) {
		return
	}
	settings.OrgID = org
	if err := h.settingsService.Update(r.Context(), &settings); err != nil {
		serviceError(w, r, "update_settings", err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

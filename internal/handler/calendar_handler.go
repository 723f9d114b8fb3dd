package handler

import (
	"net/http"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/service"
)

// CalendarHandler は祝日・リソース・休暇の HTTP ハンドラ
type CalendarHandler struct {
	calendarService service.CalendarService
}

// NewCalendarHandler は CalendarHandler を生成する
func NewCalendarHandler(calendarService service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

// ListHolidays は GET /api/holidays を処理する
func (h *CalendarHandler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	holidays, err := h.calendarService.ListHolidays(r.Context(), org)
	if err != nil {
		serviceError(w, r, "list_holidays", err)
		return
	}
	if holidays == nil {
		holidays = []*model.Holiday{}
	}
	writeJSON(w, http.StatusOK, holidays)
}

// CreateHoliday は POST /api/holidays を処理する
func (h *CalendarHandler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	var holiday model.Holiday
	if !decodeJSON(w, r, &holiday) {
		return
	}
	holiday.ID = ""
	holiday.OrgID = org
	if err := h.calendarService.CreateHoliday(r.Context(), &holiday); err != nil {
		serviceError(w, r, "create_holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, holiday)
}

// DeleteHoliday は DELETE /api/holidays/{id} を処理する
func (h *CalendarHandler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	if err := h.calendarService.DeleteHoliday(r.Context(), org, r.PathValue("id")); err != nil {
		serviceError(w, r, "delete_holiday", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListResources は GET /api/resources を処理する
func (h *CalendarHandler) ListResources(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	resources, err := h.calendarService.ListResources(r.Context(), org)
	if err != nil {
		serviceError(w, r, "list_resources", err)
		return
	}
	if resources == nil {
		resources = []*model.Resource{}
	}
	writeJSON(w, http.StatusOK, resources)
}

// CreateResource は POST /api/resources を処理する
func (h *CalendarHandler) CreateResource(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	var resource model.Resource
	if !decodeJSON(w, r, &resource) {
		return
	}
	resource.ID = ""
	resource.OrgID = org
	if err := h.calendarService.CreateResource(r.Context(), &resource); err != nil {
		serviceError(w, r, "create_resource", err)
		return
	}
	writeJSON(w, http.StatusCreated, resource)
}

// DeleteResource は DELETE /api/resources/{id} を処理する
func (h *CalendarHandler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	if err := h.calendarService.DeleteResource(r.Context(), org, r.PathValue("id")); err != nil {
		serviceError(w, r, "delete_resource", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListPTO は GET /api/resources/{id}/pto を処理する
func (h *CalendarHandler) ListPTO(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	entries, err := h.calendarService.ListPTO(r.Context(), org, r.PathValue("id"))
	if err != nil {
		serviceError(w, r, "list_pto", err)
		return
	}
	if entries == nil {
		entries = []*model.PTOEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// CreatePTO は POST /api/resources/{id}/pto を処理する
func (h *CalendarHandler) CreatePTO(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	var entry model.PTOEntry
	if !decodeJSON(w, r, &entry) {
		return
	}
	entry.ID = ""
	entry.ResourceID = r.PathValue("id")
	if err := h.calendarService.CreatePTO(r.Context(), org, &entry); err != nil {
		serviceError(w, r, "create_pto", err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// DeletePTO は DELETE /api/pto/{id} を処理する
func (h *CalendarHandler) DeletePTO(w http.ResponseWriter, r *http.Request) {
	org, ok := orgID(w, r)
	if !ok {
		return
	}
	if err := h.calendarService.DeletePTO(r.Context(), org, r.PathValue("id")); err != nil {
		serviceError(w, r, "delete_pto", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

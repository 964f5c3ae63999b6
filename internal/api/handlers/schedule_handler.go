package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vakilyar/marketplace-backend/internal/application/services"
	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
)

// ScheduleHandler handles availability schedule HTTP requests
type ScheduleHandler struct {
	scheduleService *services.ScheduleService
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(scheduleService *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// GetTemplate handles GET /api/lawyers/{id}/template
func (h *ScheduleHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	lawyerID := r.PathValue("id")
	if lawyerID == "" {
		respondWithError(w, http.StatusBadRequest, "lawyer ID is required")
		return
	}

	template, err := h.scheduleService.GetTemplate(r.Context(), lawyerID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, template)
}

// SaveTemplate handles PUT /api/lawyers/{id}/template
func (h *ScheduleHandler) SaveTemplate(w http.ResponseWriter, r *http.Request) {
	lawyerID := r.PathValue("id")
	if lawyerID == "" {
		respondWithError(w, http.StatusBadRequest, "lawyer ID is required")
		return
	}

	var template entities.WeeklyTemplate
	if err := json.NewDecoder(r.Body).Decode(&template); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	template.LawyerID = lawyerID

	if err := h.scheduleService.SaveTemplate(r.Context(), &template); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, template)
}

// ApplyTemplate handles POST /api/lawyers/{id}/template/apply
func (h *ScheduleHandler) ApplyTemplate(w http.ResponseWriter, r *http.Request) {
	lawyerID := r.PathValue("id")
	if lawyerID == "" {
		respondWithError(w, http.StatusBadRequest, "lawyer ID is required")
		return
	}

	var req struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.scheduleService.ApplyTemplateToRange(r.Context(), lawyerID, req.StartDate, req.EndDate); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"status": "applied",
	})
}

// ListSlots handles GET /api/lawyers/{id}/slots
func (h *ScheduleHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	lawyerID := r.PathValue("id")
	if lawyerID == "" {
		respondWithError(w, http.StatusBadRequest, "lawyer ID is required")
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	slots, err := h.scheduleService.ListSlots(r.Context(), lawyerID, from, to)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"slots": slots,
		"count": len(slots),
	})
}

// ToggleHour handles POST /api/lawyers/{id}/slots/toggle
func (h *ScheduleHandler) ToggleHour(w http.ResponseWriter, r *http.Request) {
	lawyerID := r.PathValue("id")
	if lawyerID == "" {
		respondWithError(w, http.StatusBadRequest, "lawyer ID is required")
		return
	}

	var req struct {
		Date string `json:"date"`
		Hour int    `json:"hour"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.scheduleService.ToggleHour(r.Context(), lawyerID, req.Date, req.Hour); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"status": "toggled",
	})
}

// AddCustomSlot handles POST /api/lawyers/{id}/slots
func (h *ScheduleHandler) AddCustomSlot(w http.ResponseWriter, r *http.Request) {
	lawyerID := r.PathValue("id")
	if lawyerID == "" {
		respondWithError(w, http.StatusBadRequest, "lawyer ID is required")
		return
	}

	var req struct {
		Date      string `json:"date"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	slot, err := h.scheduleService.AddCustomSlot(r.Context(), lawyerID, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, slot)
}

// DeleteSlot handles DELETE /api/lawyers/{id}/slots/{slotId}
func (h *ScheduleHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	lawyerID := r.PathValue("id")
	slotID := r.PathValue("slotId")
	if lawyerID == "" || slotID == "" {
		respondWithError(w, http.StatusBadRequest, "lawyer ID and slot ID are required")
		return
	}

	if err := h.scheduleService.DeleteSlot(r.Context(), lawyerID, slotID); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"status": "deleted",
	})
}

// ToggleHoliday handles POST /api/lawyers/{id}/holiday/toggle
func (h *ScheduleHandler) ToggleHoliday(w http.ResponseWriter, r *http.Request) {
	lawyerID := r.PathValue("id")
	if lawyerID == "" {
		respondWithError(w, http.StatusBadRequest, "lawyer ID is required")
		return
	}

	var req struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.scheduleService.ToggleDateHolidayStatus(r.Context(), lawyerID, req.Date); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"status": "toggled",
	})
}

// GetHolidayStatus handles GET /api/lawyers/{id}/holiday
func (h *ScheduleHandler) GetHolidayStatus(w http.ResponseWriter, r *http.Request) {
	lawyerID := r.PathValue("id")
	if lawyerID == "" {
		respondWithError(w, http.StatusBadRequest, "lawyer ID is required")
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		respondWithError(w, http.StatusBadRequest, "date is required")
		return
	}

	holiday, err := h.scheduleService.IsHoliday(r.Context(), lawyerID, date)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"date":       date,
		"is_holiday": holiday,
	})
}

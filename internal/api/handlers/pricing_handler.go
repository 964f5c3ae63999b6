package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vakilyar/marketplace-backend/internal/application/services"
	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
)

// PricingHandler handles consultation pricing HTTP requests
type PricingHandler struct {
	pricingService *services.PricingService
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(pricingService *services.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

// ListPricing handles GET /api/lawyers/{id}/pricing
func (h *PricingHandler) ListPricing(w http.ResponseWriter, r *http.Request) {
	lawyerID := r.PathValue("id")
	if lawyerID == "" {
		respondWithError(w, http.StatusBadRequest, "lawyer ID is required")
		return
	}

	pricing, err := h.pricingService.ListPricing(r.Context(), lawyerID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"pricing": pricing,
		"count":   len(pricing),
	})
}

// ApplyPercentages handles PUT /api/lawyers/{id}/pricing/percentages
func (h *PricingHandler) ApplyPercentages(w http.ResponseWriter, r *http.Request) {
	lawyerID := r.PathValue("id")
	if lawyerID == "" {
		respondWithError(w, http.StatusBadRequest, "lawyer ID is required")
		return
	}

	var req struct {
		PhonePercentage int `json:"phone_percentage"`
		VideoPercentage int `json:"video_percentage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.pricingService.ApplyGlobalPercentage(r.Context(), lawyerID, req.PhonePercentage, req.VideoPercentage); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"status": "applied",
	})
}

// SetPrice handles PUT /api/lawyers/{id}/pricing/{duration}/{channel}
func (h *PricingHandler) SetPrice(w http.ResponseWriter, r *http.Request) {
	lawyerID := r.PathValue("id")
	if lawyerID == "" {
		respondWithError(w, http.StatusBadRequest, "lawyer ID is required")
		return
	}

	duration := entities.ConsultationDuration(r.PathValue("duration"))
	channel := entities.ConsultationChannel(r.PathValue("channel"))

	var req struct {
		Amount int `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.pricingService.SetExplicitPrice(r.Context(), lawyerID, duration, channel, req.Amount); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"status": "updated",
	})
}

// SetActive handles PUT /api/lawyers/{id}/pricing/{duration}/active
func (h *PricingHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	lawyerID := r.PathValue("id")
	if lawyerID == "" {
		respondWithError(w, http.StatusBadRequest, "lawyer ID is required")
		return
	}

	duration := entities.ConsultationDuration(r.PathValue("duration"))

	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.pricingService.SetActive(r.Context(), lawyerID, duration, req.Active); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"status": "updated",
	})
}

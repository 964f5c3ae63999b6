package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/vakilyar/marketplace-backend/internal/application/services"
	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
	"github.com/vakilyar/marketplace-backend/internal/domain/repositories"
)

// LawyerHandler handles lawyer directory HTTP requests
type LawyerHandler struct {
	lawyerService *services.LawyerService
}

// NewLawyerHandler creates a new lawyer handler
func NewLawyerHandler(lawyerService *services.LawyerService) *LawyerHandler {
	return &LawyerHandler{lawyerService: lawyerService}
}

// RegisterLawyer handles POST /api/lawyers
func (h *LawyerHandler) RegisterLawyer(w http.ResponseWriter, r *http.Request) {
	var lawyer entities.Lawyer
	if err := json.NewDecoder(r.Body).Decode(&lawyer); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.lawyerService.Register(r.Context(), &lawyer); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, lawyer)
}

// GetLawyer handles GET /api/lawyers/{id}
func (h *LawyerHandler) GetLawyer(w http.ResponseWriter, r *http.Request) {
	lawyerID := r.PathValue("id")
	if lawyerID == "" {
		respondWithError(w, http.StatusBadRequest, "lawyer ID is required")
		return
	}

	lawyer, err := h.lawyerService.GetByID(r.Context(), lawyerID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, lawyer)
}

// UpdateLawyer handles PATCH /api/lawyers/{id}
func (h *LawyerHandler) UpdateLawyer(w http.ResponseWriter, r *http.Request) {
	lawyerID := r.PathValue("id")
	if lawyerID == "" {
		respondWithError(w, http.StatusBadRequest, "lawyer ID is required")
		return
	}

	var lawyer entities.Lawyer
	if err := json.NewDecoder(r.Body).Decode(&lawyer); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	lawyer.ID = lawyerID

	if err := h.lawyerService.Update(r.Context(), &lawyer); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, lawyer)
}

// ListLawyers handles GET /api/lawyers
func (h *LawyerHandler) ListLawyers(w http.ResponseWriter, r *http.Request) {
	filter := repositories.LawyerFilter{
		Specialty:  r.URL.Query().Get("specialty"),
		City:       r.URL.Query().Get("city"),
		ActiveOnly: r.URL.Query().Get("active") != "false",
		Limit:      30,
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			filter.Limit = n
		}
	}

	lawyers, err := h.lawyerService.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"lawyers": lawyers,
		"count":   len(lawyers),
	})
}

// SearchLawyers handles GET /api/lawyers/search
func (h *LawyerHandler) SearchLawyers(w http.ResponseWriter, r *http.Request) {
	params := repositories.LawyerSearchParams{
		Query:     r.URL.Query().Get("q"),
		Specialty: r.URL.Query().Get("specialty"),
		City:      r.URL.Query().Get("city"),
		Limit:     30,
	}
	if minRating := r.URL.Query().Get("min_rating"); minRating != "" {
		if v, err := strconv.ParseFloat(minRating, 64); err == nil {
			params.MinRating = v
		}
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			params.Limit = n
		}
	}

	lawyers, err := h.lawyerService.Search(r.Context(), params)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"lawyers": lawyers,
		"count":   len(lawyers),
	})
}

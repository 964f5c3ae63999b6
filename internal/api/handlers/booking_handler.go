package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/vakilyar/marketplace-backend/internal/application/services"
	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
	"github.com/vakilyar/marketplace-backend/internal/domain/repositories"
)

// BookingHandler handles consultation booking HTTP requests
type BookingHandler struct {
	bookingService *services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// sessionFromRequest builds the caller's session from identity headers.
// Returns nil when no identity is present so the booking flow can apply
// its own precondition ordering.
func sessionFromRequest(r *http.Request) *entities.Session {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		return nil
	}
	return &entities.Session{
		UserID: userID,
		Name:   r.Header.Get("X-User-Name"),
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LawyerID string `json:"lawyer_id"`
		SlotID   string `json:"slot_id"`
		Duration string `json:"duration"`
		Channel  string `json:"channel"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session := sessionFromRequest(r)
	booking, err := h.bookingService.Book(r.Context(), session, services.BookingRequest{
		LawyerID: req.LawyerID,
		SlotID:   req.SlotID,
		Duration: entities.ConsultationDuration(req.Duration),
		Channel:  entities.ConsultationChannel(req.Channel),
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, booking)
}

// GetBooking handles GET /api/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := r.PathValue("id")
	if bookingID == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return
	}

	booking, err := h.bookingService.GetBooking(r.Context(), bookingID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, booking)
}

// ListMyBookings handles GET /api/bookings
func (h *BookingHandler) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	session := sessionFromRequest(r)
	if !session.Authenticated() {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	filter := repositories.BookingFilter{
		Status: entities.BookingStatus(r.URL.Query().Get("status")),
		Limit:  30,
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			filter.Limit = n
		}
	}

	bookings, err := h.bookingService.ListUserBookings(r.Context(), session.UserID, filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

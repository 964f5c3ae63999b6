package routes

import (
	"net/http"

	"github.com/vakilyar/marketplace-backend/internal/api/handlers"
	"github.com/vakilyar/marketplace-backend/internal/api/middleware"
	"github.com/vakilyar/marketplace-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	lawyerHandler   *handlers.LawyerHandler
	scheduleHandler *handlers.ScheduleHandler
	pricingHandler  *handlers.PricingHandler
	bookingHandler  *handlers.BookingHandler
	questionHandler *handlers.QuestionHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	lawyerHandler *handlers.LawyerHandler,
	scheduleHandler *handlers.ScheduleHandler,
	pricingHandler *handlers.PricingHandler,
	bookingHandler *handlers.BookingHandler,
	questionHandler *handlers.QuestionHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		lawyerHandler:   lawyerHandler,
		scheduleHandler: scheduleHandler,
		pricingHandler:  pricingHandler,
		bookingHandler:  bookingHandler,
		questionHandler: questionHandler,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Lawyer directory endpoints
	r.mux.HandleFunc("GET /api/lawyers", r.lawyerHandler.ListLawyers)
	r.mux.HandleFunc("POST /api/lawyers", r.lawyerHandler.RegisterLawyer)
	r.mux.HandleFunc("GET /api/lawyers/search", r.lawyerHandler.SearchLawyers)
	r.mux.HandleFunc("GET /api/lawyers/{id}", r.lawyerHandler.GetLawyer)
	r.mux.HandleFunc("PATCH /api/lawyers/{id}", r.lawyerHandler.UpdateLawyer)

	// Availability schedule endpoints
	r.mux.HandleFunc("GET /api/lawyers/{id}/template", r.scheduleHandler.GetTemplate)
	r.mux.HandleFunc("PUT /api/lawyers/{id}/template", r.scheduleHandler.SaveTemplate)
	r.mux.HandleFunc("POST /api/lawyers/{id}/template/apply", r.scheduleHandler.ApplyTemplate)
	r.mux.HandleFunc("GET /api/lawyers/{id}/slots", r.scheduleHandler.ListSlots)
	r.mux.HandleFunc("POST /api/lawyers/{id}/slots", r.scheduleHandler.AddCustomSlot)
	r.mux.HandleFunc("POST /api/lawyers/{id}/slots/toggle", r.scheduleHandler.ToggleHour)
	r.mux.HandleFunc("DELETE /api/lawyers/{id}/slots/{slotId}", r.scheduleHandler.DeleteSlot)
	r.mux.HandleFunc("GET /api/lawyers/{id}/holiday", r.scheduleHandler.GetHolidayStatus)
	r.mux.HandleFunc("POST /api/lawyers/{id}/holiday/toggle", r.scheduleHandler.ToggleHoliday)

	// Consultation pricing endpoints
	r.mux.HandleFunc("GET /api/lawyers/{id}/pricing", r.pricingHandler.ListPricing)
	r.mux.HandleFunc("PUT /api/lawyers/{id}/pricing/percentages", r.pricingHandler.ApplyPercentages)
	r.mux.HandleFunc("PUT /api/lawyers/{id}/pricing/{duration}/active", r.pricingHandler.SetActive)
	r.mux.HandleFunc("PUT /api/lawyers/{id}/pricing/{duration}/{channel}", r.pricingHandler.SetPrice)

	// Booking endpoints
	r.mux.HandleFunc("POST /api/bookings", r.bookingHandler.CreateBooking)
	r.mux.HandleFunc("GET /api/bookings", r.bookingHandler.ListMyBookings)
	r.mux.HandleFunc("GET /api/bookings/{id}", r.bookingHandler.GetBooking)

	// Legal question endpoints
	r.mux.HandleFunc("GET /api/questions", r.questionHandler.ListQuestions)
	r.mux.HandleFunc("POST /api/questions", r.questionHandler.AskQuestion)
	r.mux.HandleFunc("GET /api/questions/{id}", r.questionHandler.GetQuestion)
	r.mux.HandleFunc("POST /api/questions/{id}/answer", r.questionHandler.AnswerQuestion)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so headers are set even on errors
	handler = middleware.CORSMiddleware(handler)

	return handler
}

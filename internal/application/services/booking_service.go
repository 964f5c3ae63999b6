package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
	"github.com/vakilyar/marketplace-backend/internal/domain/providers"
	"github.com/vakilyar/marketplace-backend/internal/domain/repositories"
	"github.com/vakilyar/marketplace-backend/internal/infrastructure/observability"
	apperrors "github.com/vakilyar/marketplace-backend/pkg/errors"
)

// SlotBooker is the slice of the schedule service the booking flow needs.
type SlotBooker interface {
	GetSlot(ctx context.Context, lawyerID, slotID string) (*entities.TimeSlot, error)
	MarkSlotBooked(ctx context.Context, lawyerID, slotID string) error
}

// BookingRequest carries the user's selections into the booking flow.
type BookingRequest struct {
	LawyerID string                        `json:"lawyer_id"`
	SlotID   string                        `json:"slot_id"`
	Duration entities.ConsultationDuration `json:"duration"`
	Channel  entities.ConsultationChannel  `json:"channel"`
}

// BookingService runs the booking flow: ordered precondition checks, payment
// (simulated by the provider), booking persistence, and finally flipping the
// slot to booked. A failure anywhere before the final step leaves the slot
// unbooked and creates no partial booking state.
type BookingService struct {
	bookings repositories.BookingRepository
	pricing  repositories.PricingRepository
	slots    SlotBooker
	payments providers.PaymentProvider
	metrics  *observability.Metrics
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookings repositories.BookingRepository,
	pricing repositories.PricingRepository,
	slots SlotBooker,
	payments providers.PaymentProvider,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		pricing:  pricing,
		slots:    slots,
		payments: payments,
	}
}

// SetMetrics wires application metrics
func (s *BookingService) SetMetrics(metrics *observability.Metrics) {
	s.metrics = metrics
}

// Book books a consultation. Preconditions are checked in a fixed order,
// each a hard stop: slot selection first, then authentication, then the
// pricing option and channel.
func (s *BookingService) Book(ctx context.Context, session *entities.Session, req BookingRequest) (*entities.Booking, error) {
	// 1. A time slot must be selected.
	if req.SlotID == "" {
		s.recordOutcome(ctx, "no_slot_selected")
		return nil, apperrors.NewValidationError("a time slot must be selected")
	}

	// 2. The caller must be signed in.
	if !session.Authenticated() {
		s.recordOutcome(ctx, "unauthenticated")
		return nil, apperrors.NewUnauthorizedError("sign in to book a consultation")
	}

	// 3. A consultation option and channel must resolve.
	if req.LawyerID == "" {
		return nil, apperrors.NewValidationError("lawyer ID is required")
	}
	if !entities.IsValidDuration(req.Duration) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown duration: %s", req.Duration))
	}
	if !entities.IsValidChannel(req.Channel) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown channel: %s", req.Channel))
	}

	pricing, err := s.pricing.Get(ctx, req.LawyerID, req.Duration)
	if err != nil {
		s.recordOutcome(ctx, "pricing_unresolved")
		return nil, err
	}
	if !pricing.IsActive {
		s.recordOutcome(ctx, "pricing_inactive")
		return nil, apperrors.NewValidationError(fmt.Sprintf("duration %s is not currently bookable", req.Duration))
	}

	price, err := ChannelPrice(pricing, req.Channel)
	if err != nil {
		return nil, err
	}

	slot, err := s.slots.GetSlot(ctx, req.LawyerID, req.SlotID)
	if err != nil {
		s.recordOutcome(ctx, "slot_not_found")
		return nil, err
	}
	if slot.IsBooked {
		s.recordOutcome(ctx, "slot_taken")
		return nil, apperrors.NewConflictError("the selected slot has already been booked")
	}

	now := time.Now()
	booking := &entities.Booking{
		ID:        uuid.New().String(),
		UserID:    session.UserID,
		LawyerID:  req.LawyerID,
		SlotID:    slot.ID,
		SlotDate:  slot.Date,
		PricingID: pricing.ID,
		Duration:  req.Duration,
		Channel:   req.Channel,
		Price:     price,
		Status:    entities.BookingStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	paymentRef, err := s.payments.Charge(ctx, booking)
	if err != nil {
		s.recordOutcome(ctx, "payment_failed")
		return nil, apperrors.NewExternalError("payment could not be completed, please try again", err)
	}
	booking.PaymentRef = paymentRef
	booking.Status = entities.BookingStatusConfirmed

	if err := s.bookings.Create(ctx, booking); err != nil {
		// The charge has gone through but the booking did not persist; undo
		// the charge so the user can retry cleanly.
		if refundErr := s.payments.Refund(ctx, paymentRef); refundErr != nil {
			observability.GetLogger().Error().Err(refundErr).Str("payment_ref", paymentRef).Msg("failed to refund after booking persist failure")
		}
		s.recordOutcome(ctx, "persist_failed")
		return nil, apperrors.NewStoreError("booking could not be saved, please try again", err)
	}

	// The slot flips to booked only after the booking exists.
	if err := s.slots.MarkSlotBooked(ctx, req.LawyerID, slot.ID); err != nil {
		if cancelErr := s.bookings.UpdateStatus(ctx, booking.ID, entities.BookingStatusCancelled); cancelErr != nil {
			observability.GetLogger().Error().Err(cancelErr).Str("booking_id", booking.ID).Msg("failed to cancel booking after slot update failure")
		}
		if refundErr := s.payments.Refund(ctx, paymentRef); refundErr != nil {
			observability.GetLogger().Error().Err(refundErr).Str("payment_ref", paymentRef).Msg("failed to refund after slot update failure")
		}
		s.recordOutcome(ctx, "slot_update_failed")
		return nil, apperrors.NewStoreError("booking could not be completed, please try again", err)
	}

	s.recordOutcome(ctx, "confirmed")
	return booking, nil
}

// GetBooking retrieves a booking by ID.
func (s *BookingService) GetBooking(ctx context.Context, id string) (*entities.Booking, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("booking ID is required")
	}
	return s.bookings.GetByID(ctx, id)
}

// ListUserBookings retrieves a user's bookings.
func (s *BookingService) ListUserBookings(ctx context.Context, userID string, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user ID is required")
	}
	return s.bookings.ListByUser(ctx, userID, filter)
}

func (s *BookingService) recordOutcome(ctx context.Context, outcome string) {
	if s.metrics != nil {
		observability.RecordBooking(ctx, s.metrics, outcome)
	}
}

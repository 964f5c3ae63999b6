package repositories

import (
	"context"
	"time"

	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
)

// BookingRepository defines the interface for booking persistence
type BookingRepository interface {
	// Create creates a new booking
	Create(ctx context.Context, booking *entities.Booking) error

	// GetByID retrieves a booking by ID
	GetByID(ctx context.Context, id string) (*entities.Booking, error)

	// UpdateStatus transitions a booking to a new status
	UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) error

	// ListByUser retrieves bookings for a user
	ListByUser(ctx context.Context, userID string, filter BookingFilter) ([]*entities.Booking, error)

	// ListByLawyer retrieves bookings for a lawyer
	ListByLawyer(ctx context.Context, lawyerID string, filter BookingFilter) ([]*entities.Booking, error)
}

// BookingFilter defines filters for listing bookings
type BookingFilter struct {
	Status entities.BookingStatus
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

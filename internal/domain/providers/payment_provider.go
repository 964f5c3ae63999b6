package providers

import (
	"context"

	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
)

// PaymentProvider defines the interface for charging a booking. The
// marketplace currently simulates payment; a real gateway can replace the
// mock adapter without changing the booking flow.
type PaymentProvider interface {
	// Charge charges the booking amount and returns a payment reference.
	Charge(ctx context.Context, booking *entities.Booking) (string, error)

	// Refund reverses a previous charge by its payment reference.
	Refund(ctx context.Context, paymentRef string) error
}

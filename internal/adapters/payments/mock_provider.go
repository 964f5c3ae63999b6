package payments

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
	"github.com/vakilyar/marketplace-backend/internal/domain/providers"
)

// MockProvider is an in-process payment provider used for development and
// tests. Charges always succeed unless FailCharges is set.
type MockProvider struct {
	mu          sync.Mutex
	charges     map[string]int
	refunds     map[string]bool
	FailCharges bool
}

// Ensure MockProvider implements PaymentProvider
var _ providers.PaymentProvider = (*MockProvider)(nil)

// NewMockProvider creates a new mock payment provider
func NewMockProvider() *MockProvider {
	return &MockProvider{
		charges: make(map[string]int),
		refunds: make(map[string]bool),
	}
}

// Charge records a charge for the booking and returns a payment reference
func (p *MockProvider) Charge(ctx context.Context, booking *entities.Booking) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.FailCharges {
		return "", fmt.Errorf("payment declined for booking %s", booking.ID)
	}

	ref := fmt.Sprintf("mock-%d", time.Now().UnixNano())
	p.charges[ref] = booking.Price
	log.Debug().Str("booking_id", booking.ID).Str("payment_ref", ref).Int("amount", booking.Price).Msg("Mock payment charged")
	return ref, nil
}

// Refund marks a previous charge as refunded
func (p *MockProvider) Refund(ctx context.Context, paymentRef string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.charges[paymentRef]; !ok {
		return fmt.Errorf("unknown payment reference: %s", paymentRef)
	}
	p.refunds[paymentRef] = true
	log.Debug().Str("payment_ref", paymentRef).Msg("Mock payment refunded")
	return nil
}

// Charged reports whether a payment reference was charged and its amount
func (p *MockProvider) Charged(paymentRef string) (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	amount, ok := p.charges[paymentRef]
	return amount, ok
}

// Refunded reports whether a payment reference has been refunded
func (p *MockProvider) Refunded(paymentRef string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.refunds[paymentRef]
}

package repositories

import (
	"context"

	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
)

// PricingMutator transforms a lawyer's pricing records into their
// replacement. Returning an error aborts the mutation without writing.
type PricingMutator func(records []entities.ConsultationPricing) ([]entities.ConsultationPricing, error)

// PricingRepository defines the interface for consultation pricing
// persistence. Like slots, the whole per-lawyer record set is read, mutated
// in memory and replaced as a single value.
type PricingRepository interface {
	// List retrieves every pricing record for a lawyer.
	List(ctx context.Context, lawyerID string) ([]entities.ConsultationPricing, error)

	// Get retrieves the pricing record for one duration bucket.
	// Returns a NOT_FOUND error when the lawyer has no record for it yet.
	Get(ctx context.Context, lawyerID string, duration entities.ConsultationDuration) (*entities.ConsultationPricing, error)

	// Mutate runs fn against the latest record set and persists its result.
	Mutate(ctx context.Context, lawyerID string, fn PricingMutator) error
}

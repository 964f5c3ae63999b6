package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
	"github.com/vakilyar/marketplace-backend/internal/domain/providers"
	"github.com/vakilyar/marketplace-backend/internal/domain/repositories"
	apperrors "github.com/vakilyar/marketplace-backend/pkg/errors"
)

// PricingAdapter persists consultation pricing records in the key-value
// store under consultationPricing_<lawyerID>, the whole per-lawyer record
// set as one stored value.
type PricingAdapter struct {
	store providers.KVStore
}

// NewPricingAdapter creates a new pricing adapter
func NewPricingAdapter(store providers.KVStore) repositories.PricingRepository {
	return &PricingAdapter{store: store}
}

// List retrieves every pricing record for a lawyer.
func (a *PricingAdapter) List(ctx context.Context, lawyerID string) ([]entities.ConsultationPricing, error) {
	if lawyerID == "" {
		return nil, apperrors.NewValidationError("lawyer ID is required")
	}

	data, err := a.store.Get(ctx, providers.PricingKey(lawyerID))
	if errors.Is(err, providers.ErrKeyNotFound) {
		return []entities.ConsultationPricing{}, nil
	}
	if err != nil {
		return nil, apperrors.NewStoreError("failed to load consultation pricing", err)
	}

	var records []entities.ConsultationPricing
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, apperrors.NewInternalError("failed to decode consultation pricing", err)
	}
	return records, nil
}

// Get retrieves the pricing record for one duration bucket.
func (a *PricingAdapter) Get(ctx context.Context, lawyerID string, duration entities.ConsultationDuration) (*entities.ConsultationPricing, error) {
	records, err := a.List(ctx, lawyerID)
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].Duration == duration {
			return &records[i], nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("no pricing for duration %s", duration))
}

// Mutate runs fn against the latest record set and persists its result.
func (a *PricingAdapter) Mutate(ctx context.Context, lawyerID string, fn repositories.PricingMutator) error {
	records, err := a.List(ctx, lawyerID)
	if err != nil {
		return err
	}

	next, err := fn(records)
	if err != nil {
		return err
	}
	if next == nil {
		next = []entities.ConsultationPricing{}
	}

	data, err := json.Marshal(next)
	if err != nil {
		return apperrors.NewInternalError("failed to encode consultation pricing", err)
	}

	if err := a.store.Set(ctx, providers.PricingKey(lawyerID), data, 0); err != nil {
		return apperrors.NewStoreError("failed to save consultation pricing", err)
	}
	return nil
}

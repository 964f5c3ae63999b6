package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
	"github.com/vakilyar/marketplace-backend/internal/domain/providers"
	"github.com/vakilyar/marketplace-backend/internal/domain/repositories"
	apperrors "github.com/vakilyar/marketplace-backend/pkg/errors"
)

// SlotAdapter persists concrete time slots in the key-value store under
// timeSlots_<lawyerID>. The whole per-lawyer slot list is one stored value,
// so every write replaces the complete set atomically and a failed write
// leaves the previous state untouched.
type SlotAdapter struct {
	store providers.KVStore
}

// NewSlotAdapter creates a new slot adapter
func NewSlotAdapter(store providers.KVStore) repositories.SlotRepository {
	return &SlotAdapter{store: store}
}

// List retrieves a lawyer's full slot list. A lawyer with no stored slots
// gets an empty list, not an error.
func (a *SlotAdapter) List(ctx context.Context, lawyerID string) ([]entities.TimeSlot, error) {
	if lawyerID == "" {
		return nil, apperrors.NewValidationError("lawyer ID is required")
	}

	data, err := a.store.Get(ctx, providers.TimeSlotsKey(lawyerID))
	if errors.Is(err, providers.ErrKeyNotFound) {
		return []entities.TimeSlot{}, nil
	}
	if err != nil {
		return nil, apperrors.NewStoreError("failed to load time slots", err)
	}

	var slots []entities.TimeSlot
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, apperrors.NewInternalError("failed to decode time slots", err)
	}
	return slots, nil
}

// ReplaceAll persists slots as the complete replacement for the lawyer's
// slot set.
func (a *SlotAdapter) ReplaceAll(ctx context.Context, lawyerID string, slots []entities.TimeSlot) error {
	if lawyerID == "" {
		return apperrors.NewValidationError("lawyer ID is required")
	}
	if slots == nil {
		slots = []entities.TimeSlot{}
	}

	data, err := json.Marshal(slots)
	if err != nil {
		return apperrors.NewInternalError("failed to encode time slots", err)
	}

	if err := a.store.Set(ctx, providers.TimeSlotsKey(lawyerID), data, 0); err != nil {
		return apperrors.NewStoreError("failed to save time slots", err)
	}
	return nil
}

// Mutate runs fn against the latest slot list and persists its result as the
// new complete set. An error from fn aborts without writing.
func (a *SlotAdapter) Mutate(ctx context.Context, lawyerID string, fn repositories.SlotMutator) error {
	slots, err := a.List(ctx, lawyerID)
	if err != nil {
		return err
	}

	next, err := fn(slots)
	if err != nil {
		return err
	}

	return a.ReplaceAll(ctx, lawyerID, next)
}

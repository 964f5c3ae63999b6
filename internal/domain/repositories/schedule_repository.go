package repositories

import (
	"context"

	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
)

// TemplateRepository defines the interface for weekly template persistence
type TemplateRepository interface {
	// Get retrieves a lawyer's weekly template, seeding and persisting the
	// default template the first time the lawyer has none.
	Get(ctx context.Context, lawyerID string) (*entities.WeeklyTemplate, error)

	// Save overwrites a lawyer's weekly template.
	Save(ctx context.Context, template *entities.WeeklyTemplate) error
}

// SlotMutator transforms a lawyer's complete slot list into its replacement.
// Returning an error aborts the mutation without writing anything.
type SlotMutator func(slots []entities.TimeSlot) ([]entities.TimeSlot, error)

// SlotRepository defines the interface for concrete slot persistence. The
// whole per-lawyer slot list is the unit of storage: a mutation reads the
// latest list, applies a change in memory and writes the replacement back as
// one value, so a failed write never commits a half-applied result.
type SlotRepository interface {
	// List retrieves a lawyer's full slot list, ordered as stored.
	List(ctx context.Context, lawyerID string) ([]entities.TimeSlot, error)

	// ReplaceAll persists slots as the complete replacement for the lawyer's
	// slot set.
	ReplaceAll(ctx context.Context, lawyerID string, slots []entities.TimeSlot) error

	// Mutate runs fn against the latest slot list and persists its result.
	// This is the read-modify-write transaction boundary every slot mutation
	// goes through.
	Mutate(ctx context.Context, lawyerID string, fn SlotMutator) error
}

package providers

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KVStore.Get when the key is absent. Callers
// that want get-with-default semantics match it with errors.Is and fall back
// to their zero value.
var ErrKeyNotFound = errors.New("key not found")

// KVStore defines the interface for the durable key-value collaborator the
// scheduling core persists through. Values are JSON-encoded structures; a
// whole value is always replaced atomically on Set.
type KVStore interface {
	// Get retrieves the value stored under key. Returns ErrKeyNotFound from
	// the implementing adapter when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under key, replacing any previous value.
	// A zero ttlSeconds means the value does not expire.
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error

	// Delete removes the value stored under key.
	Delete(ctx context.Context, key string) error

	// Exists checks whether key is present.
	Exists(ctx context.Context, key string) (bool, error)
}

// Key shapes for the per-lawyer collections (one whole collection per key).
const (
	keyPrefixWeeklyTemplate = "weeklyTemplate_"
	keyPrefixTimeSlots      = "timeSlots_"
	keyPrefixPricing        = "consultationPricing_"
)

// WeeklyTemplateKey returns the KV key holding a lawyer's weekly template.
func WeeklyTemplateKey(lawyerID string) string {
	return keyPrefixWeeklyTemplate + lawyerID
}

// TimeSlotsKey returns the KV key holding a lawyer's full slot list.
func TimeSlotsKey(lawyerID string) string {
	return keyPrefixTimeSlots + lawyerID
}

// PricingKey returns the KV key holding a lawyer's pricing records.
func PricingKey(lawyerID string) string {
	return keyPrefixPricing + lawyerID
}

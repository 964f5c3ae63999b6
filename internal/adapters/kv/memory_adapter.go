package kv

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vakilyar/marketplace-backend/internal/domain/providers"
)

// MemoryAdapter implements the KVStore interface in process memory. It backs
// local development and tests, standing in for Redis the way the original
// client-side store stood in for a backend.
type MemoryAdapter struct {
	mu      sync.RWMutex
	values  map[string][]byte
	expires map[string]time.Time
}

// NewMemoryAdapter creates a new in-memory key-value adapter
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		values:  make(map[string][]byte),
		expires: make(map[string]time.Time),
	}
}

var _ providers.KVStore = (*MemoryAdapter)(nil)

// Get retrieves the value stored under key
func (a *MemoryAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	a.mu.RLock()
	value, ok := a.values[key]
	deadline, hasDeadline := a.expires[key]
	a.mu.RUnlock()

	if ok && hasDeadline && time.Now().After(deadline) {
		a.mu.Lock()
		delete(a.values, key)
		delete(a.expires, key)
		a.mu.Unlock()
		ok = false
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", providers.ErrKeyNotFound, key)
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set stores a value under key, replacing the whole previous value
func (a *MemoryAdapter) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.values[key] = stored
	if ttlSeconds > 0 {
		a.expires[key] = time.Now().Add(time.Duration(ttlSeconds) * time.Second)
	} else {
		delete(a.expires, key)
	}
	return nil
}

// Delete removes the value stored under key
func (a *MemoryAdapter) Delete(ctx context.Context, key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.values, key)
	delete(a.expires, key)
	return nil
}

// Exists checks whether key is present
func (a *MemoryAdapter) Exists(ctx context.Context, key string) (bool, error) {
	_, err := a.Get(ctx, key)
	if err != nil {
		return false, nil
	}
	return true, nil
}

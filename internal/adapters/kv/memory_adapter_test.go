package kv

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vakilyar/marketplace-backend/internal/domain/providers"
)

func TestMemoryAdapterSetGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryAdapter()

	require.NoError(t, store.Set(ctx, "timeSlots_lawyer-1", []byte(`[{"id":"a"}]`), 0))

	value, err := store.Get(ctx, "timeSlots_lawyer-1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"a"}]`), value)
}

func TestMemoryAdapterGetMissingKey(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryAdapter()

	_, err := store.Get(ctx, "missing")
	assert.True(t, errors.Is(err, providers.ErrKeyNotFound))
}

func TestMemoryAdapterDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryAdapter()

	require.NoError(t, store.Set(ctx, "key", []byte("value"), 0))
	require.NoError(t, store.Delete(ctx, "key"))

	_, err := store.Get(ctx, "key")
	assert.True(t, errors.Is(err, providers.ErrKeyNotFound))

	exists, err := store.Exists(ctx, "key")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryAdapterExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryAdapter()

	require.NoError(t, store.Set(ctx, "key", []byte("value"), 1))

	exists, err := store.Exists(ctx, "key")
	require.NoError(t, err)
	assert.True(t, exists)

	time.Sleep(1100 * time.Millisecond)

	_, err = store.Get(ctx, "key")
	assert.True(t, errors.Is(err, providers.ErrKeyNotFound))
}

func TestMemoryAdapterValueIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryAdapter()

	original := []byte("original")
	require.NoError(t, store.Set(ctx, "key", original, 0))
	original[0] = 'X'

	value, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), value)
}

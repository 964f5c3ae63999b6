package kv

import (
	"context"
	"errors"
	"net"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vakilyar/marketplace-backend/internal/domain/providers"
	redisclient "github.com/vakilyar/marketplace-backend/internal/infrastructure/clients/redis"
	"github.com/vakilyar/marketplace-backend/pkg/config"
)

func newTestRedisStore(t *testing.T) providers.KVStore {
	t.Helper()

	mr := miniredis.RunT(t)
	host, portStr, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	client, err := redisclient.NewClient(&config.RedisConfig{Host: host, Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return NewRedisAdapter(client)
}

func TestRedisAdapterSetGet(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t)

	require.NoError(t, store.Set(ctx, "weeklyTemplate_lawyer-1", []byte(`{"lawyer_id":"lawyer-1"}`), 0))

	value, err := store.Get(ctx, "weeklyTemplate_lawyer-1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"lawyer_id":"lawyer-1"}`), value)
}

func TestRedisAdapterGetMissingKey(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t)

	_, err := store.Get(ctx, "missing")
	assert.True(t, errors.Is(err, providers.ErrKeyNotFound))
}

func TestRedisAdapterDeleteAndExists(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t)

	require.NoError(t, store.Set(ctx, "key", []byte("value"), 0))

	exists, err := store.Exists(ctx, "key")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Delete(ctx, "key"))

	exists, err = store.Exists(ctx, "key")
	require.NoError(t, err)
	assert.False(t, exists)
}

package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vakilyar/marketplace-backend/internal/domain/providers"
	redisclient "github.com/vakilyar/marketplace-backend/internal/infrastructure/clients/redis"
	"github.com/vakilyar/marketplace-backend/internal/infrastructure/observability"
)

// RedisAdapter implements the KVStore interface using Redis. It is the
// durable backing for the per-lawyer schedule and pricing collections.
type RedisAdapter struct {
	client  *redisclient.Client
	metrics *observability.Metrics
}

// NewRedisAdapter creates a new Redis key-value adapter
func NewRedisAdapter(client *redisclient.Client) *RedisAdapter {
	return &RedisAdapter{
		client: client,
	}
}

// SetMetrics wires application metrics for per-operation timings
func (a *RedisAdapter) SetMetrics(metrics *observability.Metrics) {
	a.metrics = metrics
}

// Get retrieves the value stored under key
func (a *RedisAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	result, err := a.client.Client().Get(ctx, key).Bytes()
	observability.RecordStoreOp(ctx, a.metrics, "get", time.Since(start))
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", providers.ErrKeyNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get from store: %w", err)
	}
	return result, nil
}

// Set stores a value under key, replacing the whole previous value
func (a *RedisAdapter) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	ttl := time.Duration(ttlSeconds) * time.Second
	start := time.Now()
	err := a.client.Client().Set(ctx, key, value, ttl).Err()
	observability.RecordStoreOp(ctx, a.metrics, "set", time.Since(start))
	if err != nil {
		return fmt.Errorf("failed to set in store: %w", err)
	}
	return nil
}

// Delete removes the value stored under key
func (a *RedisAdapter) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := a.client.Client().Del(ctx, key).Err()
	observability.RecordStoreOp(ctx, a.metrics, "delete", time.Since(start))
	if err != nil {
		return fmt.Errorf("failed to delete from store: %w", err)
	}
	return nil
}

// Exists checks whether key is present
func (a *RedisAdapter) Exists(ctx context.Context, key string) (bool, error) {
	start := time.Now()
	result, err := a.client.Client().Exists(ctx, key).Result()
	observability.RecordStoreOp(ctx, a.metrics, "exists", time.Since(start))
	if err != nil {
		return false, fmt.Errorf("failed to check existence in store: %w", err)
	}
	return result > 0, nil
}

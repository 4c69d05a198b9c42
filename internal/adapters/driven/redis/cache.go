package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hiresignal-labs/hiresignal-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.Cache = (*Cache)(nil)

// Cache implements driven.Cache using Redis with TTL-based expiry.
// Entries are write-once: created on miss, never mutated, evicted by TTL.
type Cache struct {
	client *redis.Client
}

// NewCache creates a Redis-backed Cache
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Get returns the cached value, or (nil, false, nil) on miss
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cache entry: %w", err)
	}
	return data, true, nil
}

// Set stores value under key with the given TTL
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache entry: %w", err)
	}
	return nil
}

// HealthCheck verifies Redis is reachable
func (c *Cache) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

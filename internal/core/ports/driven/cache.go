package driven

import (
	"context"
	"time"
)

// Cache is a read-through byte cache with TTL expiry. Entries are created on
// miss, never mutated, and evicted by TTL.
//
// Implementations must treat their own failures as misses at the call site;
// a cache error never crosses the pipeline boundary.
type Cache interface {
	// Get returns the cached value, or (nil, false, nil) on miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// HealthCheck verifies the cache backend is reachable
	HealthCheck(ctx context.Context) error
}

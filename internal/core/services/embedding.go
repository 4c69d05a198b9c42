package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hiresignal-labs/hiresignal-core/internal/core/domain"
	"github.com/hiresignal-labs/hiresignal-core/internal/core/ports/driven"
	"github.com/hiresignal-labs/hiresignal-core/internal/resilience"
	"github.com/hiresignal-labs/hiresignal-core/internal/runtime"
	"github.com/hiresignal-labs/hiresignal-core/internal/telemetry"
)

// embedKeyPrefix namespaces embedding cache entries. Embeddings are
// tenant-agnostic: the same text always produces the same vector, so the key
// is derived from the normalized text only.
const embedKeyPrefix = "embed:"

// EmbeddingProvider resolves a query string to an embedding vector with a
// cache-first, fail-hard policy: cache hits skip the network entirely, cache
// failures degrade to misses, and an unreachable embedding service is fatal
// to the request. There is no fallback vector; searching with a zero vector
// would corrupt ranking silently.
type EmbeddingProvider struct {
	cache    driven.Cache
	services *runtime.Services
	caller   *resilience.Caller
	ttl      time.Duration
	logger   *slog.Logger
}

// NewEmbeddingProvider creates an EmbeddingProvider. cache may be nil, in
// which case every lookup is a miss.
func NewEmbeddingProvider(
	cache driven.Cache,
	services *runtime.Services,
	caller *resilience.Caller,
	ttl time.Duration,
	logger *slog.Logger,
) *EmbeddingProvider {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &EmbeddingProvider{
		cache:    cache,
		services: services,
		caller:   caller,
		ttl:      ttl,
		logger:   logger,
	}
}

// GetEmbedding returns the embedding for text plus whether it came from cache.
func (p *EmbeddingProvider) GetEmbedding(ctx context.Context, text string) ([]float32, bool, error) {
	key := EmbeddingCacheKey(text)

	if vec, ok := p.fromCache(ctx, key); ok {
		telemetry.CacheTotal.WithLabelValues("embedding", "hit").Inc()
		return vec, true, nil
	}
	telemetry.CacheTotal.WithLabelValues("embedding", "miss").Inc()

	svc := p.services.EmbeddingService()
	if svc == nil {
		return nil, false, domain.ErrEmbeddingUnavailable
	}

	var vec []float32
	err := p.caller.Do(ctx, func(ctx context.Context) error {
		v, err := svc.EmbedQuery(ctx, text)
		if err != nil {
			return err
		}
		vec = v
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, err)
	}

	p.toCache(ctx, key, vec)
	return vec, false, nil
}

func (p *EmbeddingProvider) fromCache(ctx context.Context, key string) ([]float32, bool) {
	if p.cache == nil {
		return nil, false
	}
	data, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		// Cache failures never cross the pipeline boundary.
		p.logger.Warn("embedding cache read failed", "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var vec []float32
	if err := json.Unmarshal(data, &vec); err != nil {
		p.logger.Warn("embedding cache entry corrupt", "key", key, "error", err)
		return nil, false
	}
	return vec, true
}

func (p *EmbeddingProvider) toCache(ctx context.Context, key string, vec []float32) {
	if p.cache == nil {
		return
	}
	data, err := json.Marshal(vec)
	if err != nil {
		return
	}
	if err := p.cache.Set(ctx, key, data, p.ttl); err != nil {
		p.logger.Warn("embedding cache write failed", "error", err)
	}
}

// EmbeddingCacheKey derives the cache key from lower-cased,
// whitespace-normalized text: embed:<sha256(normalized)>
func EmbeddingCacheKey(text string) string {
	norm := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	sum := sha256.Sum256([]byte(norm))
	return embedKeyPrefix + hex.EncodeToString(sum[:])
}

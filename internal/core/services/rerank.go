package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/hiresignal-labs/hiresignal-core/internal/core/domain"
	"github.com/hiresignal-labs/hiresignal-core/internal/core/ports/driven"
	"github.com/hiresignal-labs/hiresignal-core/internal/resilience"
	"github.com/hiresignal-labs/hiresignal-core/internal/runtime"
	"github.com/hiresignal-labs/hiresignal-core/internal/telemetry"
)

// rerankKeyPrefix namespaces rerank cache entries. Rerank judgements are
// tenant-agnostic given the same job context and candidate set.
const rerankKeyPrefix = "rerank:"

// RerankConfig tunes the rerank orchestration stage.
type RerankConfig struct {
	// TopN is how many combined results are sent to the reranker. Never the
	// full retrieved set; the model call is the most expensive stage.
	TopN int

	// BlendRatio is the weight of the model score in the blended final score;
	// the remainder keeps the deterministic combined score as a floor.
	BlendRatio float64

	// CacheTTL bounds how long a judgement set is reused.
	CacheTTL time.Duration
}

// DefaultRerankConfig returns the tuned defaults.
func DefaultRerankConfig() RerankConfig {
	return RerankConfig{
		TopN:       50,
		BlendRatio: 0.7,
		CacheTTL:   time.Hour,
	}
}

// RerankOutcome reports how the rerank stage behaved for one request.
type RerankOutcome struct {
	CacheHit     bool
	UsedFallback bool
	Applied      bool
}

// RerankOrchestrator re-orders the top-N combined results through the
// external reranking model, with result caching and circuit-breaker fallback
// to the combined-score ordering. It mutates the head of the result slice in
// place; results beyond TopN keep their combined ordering.
type RerankOrchestrator struct {
	cache    driven.Cache
	services *runtime.Services
	caller   *resilience.Caller
	cfg      RerankConfig
	logger   *slog.Logger
}

// NewRerankOrchestrator creates a RerankOrchestrator.
func NewRerankOrchestrator(
	cache driven.Cache,
	services *runtime.Services,
	caller *resilience.Caller,
	cfg RerankConfig,
	logger *slog.Logger,
) *RerankOrchestrator {
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultRerankConfig().TopN
	}
	if cfg.BlendRatio <= 0 || cfg.BlendRatio > 1 {
		cfg.BlendRatio = DefaultRerankConfig().BlendRatio
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultRerankConfig().CacheTTL
	}
	return &RerankOrchestrator{
		cache:    cache,
		services: services,
		caller:   caller,
		cfg:      cfg,
		logger:   logger,
	}
}

// Rerank re-orders results[0:TopN] against jobContext. summaries maps
// candidate id to the short profile text sent to the model. On any failure or
// open circuit the combined ordering is returned unchanged with
// UsedFallback set.
func (o *RerankOrchestrator) Rerank(ctx context.Context, jobContext string, results []*domain.RankedResult, summaries map[string]string) RerankOutcome {
	if len(results) == 0 {
		return RerankOutcome{}
	}
	// Fetched once: the registry can swap or close the service concurrently.
	svc := o.services.RerankService()
	if svc == nil {
		return RerankOutcome{UsedFallback: true}
	}

	topN := o.cfg.TopN
	if topN > len(results) {
		topN = len(results)
	}
	head := results[:topN]

	key := RerankCacheKey(jobContext, candidateIDs(head))

	// A cache hit carries no failure risk, so it bypasses the breaker check.
	if judgements, ok := o.fromCache(ctx, key); ok {
		telemetry.CacheTotal.WithLabelValues("rerank", "hit").Inc()
		o.apply(head, judgements)
		return RerankOutcome{CacheHit: true, Applied: true}
	}
	telemetry.CacheTotal.WithLabelValues("rerank", "miss").Inc()

	candidates := make([]driven.RerankCandidate, 0, topN)
	for _, r := range head {
		candidates = append(candidates, driven.RerankCandidate{
			CandidateID: r.CandidateID,
			Summary:     summaries[r.CandidateID],
			Score:       r.Score,
		})
	}

	var judgements []driven.RerankJudgement
	err := o.caller.Do(ctx, func(ctx context.Context) error {
		j, err := svc.Rerank(ctx, jobContext, candidates)
		if err != nil {
			return err
		}
		judgements = j
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrCircuitOpen) {
			o.logger.Warn("rerank circuit open, serving combined ordering")
		} else {
			o.logger.Warn("rerank call failed, serving combined ordering", "error", err)
		}
		telemetry.RerankFallbackTotal.Inc()
		return RerankOutcome{UsedFallback: true}
	}

	o.toCache(ctx, key, judgements)
	o.apply(head, judgements)
	return RerankOutcome{Applied: true}
}

// apply blends model scores into the head slice and re-sorts it. Blending
// keeps the deterministic combined score as a floor even when the model
// output is noisy. Candidates the model skipped keep their combined score.
func (o *RerankOrchestrator) apply(head []*domain.RankedResult, judgements []driven.RerankJudgement) {
	byID := make(map[string]driven.RerankJudgement, len(judgements))
	for _, j := range judgements {
		byID[j.CandidateID] = j
	}

	for _, r := range head {
		j, ok := byID[r.CandidateID]
		if !ok {
			continue
		}
		model := clamp01(j.Score)
		blended := o.cfg.BlendRatio*model + (1-o.cfg.BlendRatio)*r.Score
		r.RerankScore = &model
		r.Score = blended
		r.RerankApplied = true
		r.MatchReasons = append(r.MatchReasons, j.MatchReasons...)
	}

	sort.SliceStable(head, func(i, k int) bool {
		return head[i].Score > head[k].Score
	})
}

func (o *RerankOrchestrator) fromCache(ctx context.Context, key string) ([]driven.RerankJudgement, bool) {
	if o.cache == nil {
		return nil, false
	}
	data, ok, err := o.cache.Get(ctx, key)
	if err != nil {
		o.logger.Warn("rerank cache read failed", "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var judgements []driven.RerankJudgement
	if err := json.Unmarshal(data, &judgements); err != nil {
		o.logger.Warn("rerank cache entry corrupt", "key", key, "error", err)
		return nil, false
	}
	return judgements, true
}

func (o *RerankOrchestrator) toCache(ctx context.Context, key string, judgements []driven.RerankJudgement) {
	if o.cache == nil {
		return
	}
	data, err := json.Marshal(judgements)
	if err != nil {
		return
	}
	if err := o.cache.Set(ctx, key, data, o.cfg.CacheTTL); err != nil {
		o.logger.Warn("rerank cache write failed", "error", err)
	}
}

// RerankCacheKey derives the cache key from the job context and the ordered
// candidate id set: rerank:<sha256(jobHash + setHash)>
func RerankCacheKey(jobContext string, candidateIDs []string) string {
	jobSum := sha256.Sum256([]byte(jobContext))
	setSum := sha256.Sum256([]byte(strings.Join(candidateIDs, ",")))
	sum := sha256.Sum256(append(jobSum[:], setSum[:]...))
	return rerankKeyPrefix + hex.EncodeToString(sum[:])
}

func candidateIDs(results []*domain.RankedResult) []string {
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.CandidateID
	}
	return ids
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

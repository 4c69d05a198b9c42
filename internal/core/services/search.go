package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/hiresignal-labs/hiresignal-core/internal/core/domain"
	"github.com/hiresignal-labs/hiresignal-core/internal/core/ports/driven"
	"github.com/hiresignal-labs/hiresignal-core/internal/core/ports/driving"
	"github.com/hiresignal-labs/hiresignal-core/internal/scoring"
	"github.com/hiresignal-labs/hiresignal-core/internal/telemetry"
)

// Ensure searchService implements SearchService
var _ driving.SearchService = (*searchService)(nil)

// SearchConfig tunes the retrieval stage.
type SearchConfig struct {
	// RRFK is the reciprocal-rank-fusion smoothing constant. 60 keeps rank 1
	// from dominating while still rewarding top positions in either method.
	RRFK int

	// PerMethodLimit caps the vector and text lists independently.
	PerMethodLimit int

	// MinSimilarity is the cosine floor applied to the vector list only.
	// Tuned low: retrieval favors recall, scoring does the discrimination.
	MinSimilarity float64
}

// DefaultSearchConfig returns the tuned defaults.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		RRFK:           60,
		PerMethodLimit: 100,
		MinSimilarity:  0.25,
	}
}

// searchService runs the candidate search pipeline: embed, retrieve, score,
// combine, rerank, assemble. Stages are strictly ordered within a request;
// the only cross-request shared state is the caches and the circuit breakers.
type searchService struct {
	retriever  driven.CandidateRetriever
	embeddings *EmbeddingProvider
	registry   *scoring.Registry
	combiner   *scoring.Combiner
	reranker   *RerankOrchestrator
	shadow     *TrajectoryShadow
	tracker    *telemetry.Tracker
	cfg        SearchConfig
	logger     *slog.Logger
}

// NewSearchService creates a new SearchService. shadow may be nil when no
// trajectory model is deployed.
func NewSearchService(
	retriever driven.CandidateRetriever,
	embeddings *EmbeddingProvider,
	reranker *RerankOrchestrator,
	shadow *TrajectoryShadow,
	tracker *telemetry.Tracker,
	cfg SearchConfig,
	logger *slog.Logger,
) driving.SearchService {
	if cfg.RRFK <= 0 {
		cfg.RRFK = DefaultSearchConfig().RRFK
	}
	if cfg.PerMethodLimit <= 0 {
		cfg.PerMethodLimit = DefaultSearchConfig().PerMethodLimit
	}
	return &searchService{
		retriever:  retriever,
		embeddings: embeddings,
		registry:   scoring.NewRegistry(),
		combiner:   scoring.NewCombiner(),
		reranker:   reranker,
		shadow:     shadow,
		tracker:    tracker,
		cfg:        cfg,
		logger:     logger,
	}
}

// Search runs the full pipeline for one request.
func (s *searchService) Search(ctx context.Context, req *domain.SearchRequest) (*domain.SearchResponse, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		telemetry.SearchRequestsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	queryText := effectiveQueryText(req)

	// Embedding. Fatal on failure: retrieval cannot run without a query vector.
	embedStart := time.Now()
	embedding, cacheHit, err := s.embeddings.GetEmbedding(ctx, queryText)
	if err != nil {
		telemetry.SearchRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	embedTook := time.Since(embedStart)

	// Hybrid retrieval. Only the free-text query participates in the text
	// list; structured filters are soft signals, never retrieval predicates.
	retrieveStart := time.Now()
	rows, err := s.retriever.Retrieve(ctx, req.TenantID, embedding, req.Query, driven.RetrievalParams{
		RRFK:           s.cfg.RRFK,
		PerMethodLimit: s.cfg.PerMethodLimit,
		MinSimilarity:  s.cfg.MinSimilarity,
	})
	if err != nil {
		telemetry.SearchRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	retrieveTook := time.Since(retrieveStart)

	// Scoring + combination. Every retrieved row survives; signals reorder,
	// they never drop.
	scoreStart := time.Now()
	weights := s.combiner.WeightsFor(req)
	results := make([]*domain.RankedResult, 0, len(rows))
	baseline := make(map[string]float64, len(rows))
	for _, row := range rows {
		signals := s.registry.Score(row, req)
		combined := s.combiner.Combine(signals, weights)
		baseline[row.CandidateID] = signals[domain.SignalTrajectoryFit]
		results = append(results, &domain.RankedResult{
			CandidateID:    row.CandidateID,
			Score:          combined,
			SignalScores:   signals,
			WeightsApplied: weights,
			MatchReasons:   matchReasons(signals, weights),
		})
	}
	sortByScore(results, rows)
	scoreTook := time.Since(scoreStart)

	// Rerank. Degradable: any failure keeps the combined ordering.
	rerankStart := time.Now()
	outcome := s.reranker.Rerank(ctx, rerankJobContext(req, queryText), results, summaries(rows))
	rerankTook := time.Since(rerankStart)

	// Shadow-mode trajectory comparison; detached so it can neither block nor
	// fail the response.
	if s.shadow != nil {
		go s.shadow.Compare(context.WithoutCancel(ctx), rows, baseline)
	}

	resp := assemble(req, results, outcome, domain.Timings{
		TotalMs:     time.Since(start).Milliseconds(),
		EmbeddingMs: embedTook.Milliseconds(),
		RetrievalMs: retrieveTook.Milliseconds(),
		ScoringMs:   scoreTook.Milliseconds(),
	}, cacheHit)
	if outcome.Applied || outcome.UsedFallback {
		ms := rerankTook.Milliseconds()
		resp.Timings.RerankMs = &ms
	}

	s.tracker.Record(telemetry.Sample{
		Total:     time.Since(start),
		Embedding: embedTook,
		Retrieval: retrieveTook,
		Scoring:   scoreTook,
		Rerank:    rerankTook,
		CacheHit:  cacheHit,
	})
	telemetry.SearchRequestsTotal.WithLabelValues("ok").Inc()

	return resp, nil
}

// effectiveQueryText derives the embedding input. Filters-only requests embed
// a synthetic query built from the filter terms so retrieval still has a
// meaningful vector.
func effectiveQueryText(req *domain.SearchRequest) string {
	if q := strings.TrimSpace(req.Query); q != "" {
		return q
	}
	var parts []string
	parts = append(parts, req.Filters.SeniorityLevels...)
	if req.Filters.Specialty != "" {
		parts = append(parts, req.Filters.Specialty)
	}
	if req.Filters.Function != "" {
		parts = append(parts, req.Filters.Function)
	}
	if req.Filters.MinYearsExperience > 0 {
		parts = append(parts, fmt.Sprintf("%d+ years experience", req.Filters.MinYearsExperience))
	}
	parts = append(parts, req.Filters.Skills...)
	parts = append(parts, req.Filters.TechStack...)
	return strings.Join(parts, " ")
}

// rerankJobContext is the job description text the reranker judges against.
func rerankJobContext(req *domain.SearchRequest, queryText string) string {
	if req.RoleType.Normalize() == domain.RoleTypeDefault {
		return queryText
	}
	return fmt.Sprintf("%s (%s role)", queryText, req.RoleType.Normalize())
}

// sortByScore orders results by combined score descending, breaking ties by
// retrieval fused score and finally candidate id for determinism.
func sortByScore(results []*domain.RankedResult, rows []*domain.CandidateRow) {
	fused := make(map[string]float64, len(rows))
	for _, row := range rows {
		fused[row.CandidateID] = row.FusedScore
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if fused[results[i].CandidateID] != fused[results[j].CandidateID] {
			return fused[results[i].CandidateID] > fused[results[j].CandidateID]
		}
		return results[i].CandidateID < results[j].CandidateID
	})
}

// summaries builds the short profile text sent to the reranking model.
func summaries(rows []*domain.CandidateRow) map[string]string {
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		var b strings.Builder
		if row.Seniority != "" {
			b.WriteString(row.Seniority)
			b.WriteByte(' ')
		}
		if row.Function != "" {
			b.WriteString(row.Function)
			b.WriteByte(' ')
		}
		if len(row.Specialties) > 0 {
			b.WriteString(strings.Join(row.Specialties, ", "))
			b.WriteByte(' ')
		}
		if len(row.Skills) > 0 {
			b.WriteString("skills: ")
			b.WriteString(strings.Join(row.Skills, ", "))
		}
		out[row.CandidateID] = strings.TrimSpace(b.String())
	}
	return out
}

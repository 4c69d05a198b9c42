package driving

import (
	"context"

	"github.com/hiresignal-labs/hiresignal-core/internal/core/domain"
)

// SearchService is the driving port for the candidate search pipeline.
type SearchService interface {
	// Search runs the full retrieval, scoring, combination and reranking
	// pipeline for one request.
	Search(ctx context.Context, req *domain.SearchRequest) (*domain.SearchResponse, error)
}

// HealthService reports dependency health plus the rolling performance snapshot.
type HealthService interface {
	// Report probes all dependencies and assembles a health report.
	Report(ctx context.Context) *domain.HealthReport
}

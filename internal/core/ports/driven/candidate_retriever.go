package driven

import (
	"context"

	"github.com/hiresignal-labs/hiresignal-core/internal/core/domain"
)

// RetrievalParams configures one hybrid retrieval round trip.
type RetrievalParams struct {
	// RRFK is the reciprocal-rank-fusion smoothing constant.
	RRFK int

	// PerMethodLimit caps each of the vector and text lists independently.
	PerMethodLimit int

	// MinSimilarity excludes candidates below this cosine similarity from the
	// vector list before ranking. It is the only non-tenant predicate allowed
	// at retrieval time.
	MinSimilarity float64
}

// CandidateRetriever runs one fused vector+text query against the candidate
// store and returns the working set ordered by fused score descending.
//
// Retrieval favors recall: structured filters never restrict the result set
// here, they become soft scoring signals downstream.
type CandidateRetriever interface {
	// Retrieve runs the fused query. textQuery may be empty, in which case the
	// text list is empty and fusion degenerates to the vector ordering.
	Retrieve(ctx context.Context, tenantID string, embedding []float32, textQuery string, params RetrievalParams) ([]*domain.CandidateRow, error)

	// HealthCheck verifies the store is reachable
	HealthCheck(ctx context.Context) error
}

package driven

import "context"

// RerankCandidate is one candidate sent to the external reranking model.
type RerankCandidate struct {
	CandidateID string  `json:"candidateId"`
	Summary     string  `json:"summary"`
	Score       float64 `json:"score"`
}

// RerankJudgement is the model's verdict for one candidate.
type RerankJudgement struct {
	CandidateID  string   `json:"candidateId"`
	Score        float64  `json:"score"` // 0-1
	MatchReasons []string `json:"matchReasons,omitempty"`
}

// RerankService calls the external reranking model. Failures here are always
// degradable; the pipeline falls back to the combined-score ordering.
type RerankService interface {
	// Rerank scores the candidate set against the job context.
	Rerank(ctx context.Context, jobContext string, candidates []RerankCandidate) ([]RerankJudgement, error)

	// HealthCheck verifies the service is reachable
	HealthCheck(ctx context.Context) error

	// Close releases resources
	Close() error
}

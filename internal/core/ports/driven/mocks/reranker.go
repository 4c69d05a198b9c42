package mocks

import (
	"context"

	"github.com/hiresignal-labs/hiresignal-core/internal/core/ports/driven"
)

// MockRerankService is a mock implementation of RerankService for testing
type MockRerankService struct {
	// Scores maps candidate id to the model score returned
	Scores map[string]float64

	// Reasons maps candidate id to model match reasons
	Reasons map[string][]string

	// CallCount tracks how many rerank calls were made
	CallCount int

	// Err makes every call fail
	Err error
}

// NewMockRerankService creates a new MockRerankService
func NewMockRerankService() *MockRerankService {
	return &MockRerankService{
		Scores:  make(map[string]float64),
		Reasons: make(map[string][]string),
	}
}

func (m *MockRerankService) Rerank(ctx context.Context, jobContext string, candidates []driven.RerankCandidate) ([]driven.RerankJudgement, error) {
	m.CallCount++
	if m.Err != nil {
		return nil, m.Err
	}

	judgements := make([]driven.RerankJudgement, 0, len(candidates))
	for _, c := range candidates {
		score, ok := m.Scores[c.CandidateID]
		if !ok {
			score = c.Score
		}
		judgements = append(judgements, driven.RerankJudgement{
			CandidateID:  c.CandidateID,
			Score:        score,
			MatchReasons: m.Reasons[c.CandidateID],
		})
	}
	return judgements, nil
}

func (m *MockRerankService) HealthCheck(ctx context.Context) error {
	return m.Err
}

func (m *MockRerankService) Close() error {
	return nil
}

package mocks

import (
	"context"
	"sort"

	"github.com/hiresignal-labs/hiresignal-core/internal/core/domain"
	"github.com/hiresignal-labs/hiresignal-core/internal/core/ports/driven"
)

// MockCandidateRetriever is a mock implementation of CandidateRetriever for
// testing. It serves a fixed candidate set and computes RRF fusion over the
// preset ranks the same way the SQL store does.
type MockCandidateRetriever struct {
	Rows []*domain.CandidateRow

	// Err makes Retrieve fail
	Err error

	// LastParams records the params of the most recent call
	LastParams driven.RetrievalParams
}

// NewMockCandidateRetriever creates a new MockCandidateRetriever
func NewMockCandidateRetriever(rows ...*domain.CandidateRow) *MockCandidateRetriever {
	return &MockCandidateRetriever{Rows: rows}
}

func (m *MockCandidateRetriever) Retrieve(ctx context.Context, tenantID string, embedding []float32, textQuery string, params driven.RetrievalParams) ([]*domain.CandidateRow, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.LastParams = params

	k := float64(params.RRFK)
	out := make([]*domain.CandidateRow, 0, len(m.Rows))
	for _, row := range m.Rows {
		if row.VectorScore < params.MinSimilarity && !row.HasTextRank() {
			continue
		}
		fused := 0.0
		if row.VectorRank != nil {
			fused += 1.0 / (k + float64(*row.VectorRank))
		}
		if row.TextRank != nil {
			fused += 1.0 / (k + float64(*row.TextRank))
		}
		copied := *row
		copied.FusedScore = fused
		out = append(out, &copied)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FusedScore != out[j].FusedScore {
			return out[i].FusedScore > out[j].FusedScore
		}
		return out[i].CandidateID < out[j].CandidateID
	})
	return out, nil
}

func (m *MockCandidateRetriever) HealthCheck(ctx context.Context) error {
	return m.Err
}

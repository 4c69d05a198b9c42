package mocks

import (
	"context"

	"github.com/hiresignal-labs/hiresignal-core/internal/core/domain"
	"github.com/hiresignal-labs/hiresignal-core/internal/core/ports/driven"
)

// MockTrajectoryPredictor is a mock implementation of TrajectoryPredictor
type MockTrajectoryPredictor struct {
	// Fits maps candidate id to the predicted fit
	Fits map[string]float64

	// CallCount tracks how many predict calls were made
	CallCount int

	// Err makes every call fail
	Err error
}

// NewMockTrajectoryPredictor creates a new MockTrajectoryPredictor
func NewMockTrajectoryPredictor() *MockTrajectoryPredictor {
	return &MockTrajectoryPredictor{Fits: make(map[string]float64)}
}

func (m *MockTrajectoryPredictor) Predict(ctx context.Context, rows []*domain.CandidateRow) ([]driven.TrajectoryPrediction, error) {
	m.CallCount++
	if m.Err != nil {
		return nil, m.Err
	}

	predictions := make([]driven.TrajectoryPrediction, 0, len(rows))
	for _, row := range rows {
		fit, ok := m.Fits[row.CandidateID]
		if !ok {
			fit = row.TrajectorySlope
		}
		predictions = append(predictions, driven.TrajectoryPrediction{
			CandidateID: row.CandidateID,
			Fit:         fit,
		})
	}
	return predictions, nil
}

func (m *MockTrajectoryPredictor) HealthCheck(ctx context.Context) error {
	return m.Err
}

func (m *MockTrajectoryPredictor) Close() error {
	return nil
}

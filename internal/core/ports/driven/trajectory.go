package driven

import (
	"context"

	"github.com/hiresignal-labs/hiresignal-core/internal/core/domain"
)

// TrajectoryPrediction is the ML model's career-trajectory estimate for one
// candidate, on the same 0-1 scale as the rule-based trajectoryFit signal.
type TrajectoryPrediction struct {
	CandidateID string  `json:"candidateId"`
	Fit         float64 `json:"fit"`
}

// TrajectoryPredictor is the inference client for the career-trajectory model.
// It runs in shadow mode: predictions are compared against the rule-based
// baseline for offline validation and never affect the served ranking.
type TrajectoryPredictor interface {
	// Predict returns trajectory fit estimates for the given candidates.
	Predict(ctx context.Context, rows []*domain.CandidateRow) ([]TrajectoryPrediction, error)

	// HealthCheck verifies the service is reachable
	HealthCheck(ctx context.Context) error

	// Close releases resources
	Close() error
}

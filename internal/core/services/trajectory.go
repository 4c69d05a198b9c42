package services

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/hiresignal-labs/hiresignal-core/internal/core/domain"
	"github.com/hiresignal-labs/hiresignal-core/internal/core/ports/driven"
	"github.com/hiresignal-labs/hiresignal-core/internal/resilience"
	"github.com/hiresignal-labs/hiresignal-core/internal/runtime"
	"github.com/hiresignal-labs/hiresignal-core/internal/telemetry"
)

// disagreementThreshold is how far the model may drift from the rule-based
// baseline before the pair counts as a disagreement.
const disagreementThreshold = 0.3

// TrajectoryShadow runs the ML trajectory model in shadow mode: predictions
// are compared against the rule-based trajectoryFit baseline for offline
// validation and never influence the served ranking. Any failure or open
// circuit simply skips the comparison.
type TrajectoryShadow struct {
	services *runtime.Services
	caller   *resilience.Caller
	logger   *slog.Logger
}

// NewTrajectoryShadow creates a TrajectoryShadow.
func NewTrajectoryShadow(services *runtime.Services, caller *resilience.Caller, logger *slog.Logger) *TrajectoryShadow {
	return &TrajectoryShadow{services: services, caller: caller, logger: logger}
}

// Compare fetches model predictions for rows and records disagreement against
// the rule-based baseline. Callers run it on a detached context so it can
// outlive the request without ever blocking it.
func (t *TrajectoryShadow) Compare(ctx context.Context, rows []*domain.CandidateRow, baseline map[string]float64) {
	svc := t.services.TrajectoryClient()
	if svc == nil || len(rows) == 0 {
		return
	}

	var predictions []driven.TrajectoryPrediction
	err := t.caller.Do(ctx, func(ctx context.Context) error {
		p, err := svc.Predict(ctx, rows)
		if err != nil {
			return err
		}
		predictions = p
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrCircuitOpen) {
			t.logger.Debug("trajectory shadow call failed", "error", err)
		}
		return
	}

	for _, p := range predictions {
		base, ok := baseline[p.CandidateID]
		if !ok {
			continue
		}
		if math.Abs(p.Fit-base) > disagreementThreshold {
			telemetry.TrajectoryDisagreementTotal.Inc()
			t.logger.Debug("trajectory shadow disagreement",
				"candidateId", p.CandidateID,
				"model", p.Fit,
				"baseline", base,
			)
		}
	}
}

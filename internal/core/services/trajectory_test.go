package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/hiresignal-labs/hiresignal-core/internal/core/domain"
	"github.com/hiresignal-labs/hiresignal-core/internal/core/ports/driven/mocks"
	"github.com/hiresignal-labs/hiresignal-core/internal/resilience"
	"github.com/hiresignal-labs/hiresignal-core/internal/runtime"
	"github.com/hiresignal-labs/hiresignal-core/internal/telemetry"
)

func newTestShadow(predictor *mocks.MockTrajectoryPredictor) *TrajectoryShadow {
	svcs := runtime.NewServices()
	if predictor != nil {
		svcs.SetTrajectoryClient(predictor)
	}
	caller := resilience.NewCaller(resilience.CallerConfig{Timeout: time.Second, Backoff: time.Millisecond}, nil)
	return NewTrajectoryShadow(svcs, caller, testLogger())
}

func TestTrajectoryShadow_CountsDisagreements(t *testing.T) {
	predictor := mocks.NewMockTrajectoryPredictor()
	predictor.Fits["cand-a"] = 0.9 // baseline 0.5, drift 0.4
	predictor.Fits["cand-b"] = 0.6 // baseline 0.5, drift 0.1
	shadow := newTestShadow(predictor)

	rows := []*domain.CandidateRow{
		{CandidateID: "cand-a"},
		{CandidateID: "cand-b"},
	}
	baseline := map[string]float64{"cand-a": 0.5, "cand-b": 0.5}

	before := testutil.ToFloat64(telemetry.TrajectoryDisagreementTotal)
	shadow.Compare(context.Background(), rows, baseline)
	after := testutil.ToFloat64(telemetry.TrajectoryDisagreementTotal)

	if got := after - before; got != 1 {
		t.Errorf("disagreements recorded = %f, want 1", got)
	}
	if predictor.CallCount != 1 {
		t.Errorf("predict calls = %d, want 1", predictor.CallCount)
	}
}

func TestTrajectoryShadow_NoPredictorIsANoop(t *testing.T) {
	shadow := newTestShadow(nil)

	before := testutil.ToFloat64(telemetry.TrajectoryDisagreementTotal)
	shadow.Compare(context.Background(), []*domain.CandidateRow{{CandidateID: "cand-a"}}, map[string]float64{"cand-a": 0.5})
	after := testutil.ToFloat64(telemetry.TrajectoryDisagreementTotal)

	if after != before {
		t.Error("comparison ran without a configured predictor")
	}
}

func TestTrajectoryShadow_PredictorFailureIsAbsorbed(t *testing.T) {
	predictor := mocks.NewMockTrajectoryPredictor()
	predictor.Err = errors.New("model down")
	shadow := newTestShadow(predictor)

	// Must not panic or record anything.
	before := testutil.ToFloat64(telemetry.TrajectoryDisagreementTotal)
	shadow.Compare(context.Background(), []*domain.CandidateRow{{CandidateID: "cand-a"}}, map[string]float64{"cand-a": 0.5})
	after := testutil.ToFloat64(telemetry.TrajectoryDisagreementTotal)

	if after != before {
		t.Error("failed prediction recorded a disagreement")
	}
}

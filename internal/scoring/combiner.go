package scoring

import (
	"github.com/hiresignal-labs/hiresignal-core/internal/core/domain"
)

// Combiner blends signal scores into one 0-1 ranking score using a
// role-dependent weight profile.
type Combiner struct{}

// NewCombiner creates a Combiner.
func NewCombiner() *Combiner {
	return &Combiner{}
}

// WeightsFor resolves the effective weight config for a request: preset by
// role type, per-request overrides merged on top, then normalized so the
// populated weights sum to 1.0.
func (c *Combiner) WeightsFor(req *domain.SearchRequest) domain.SignalWeightConfig {
	preset := domain.WeightPreset(req.RoleType)
	if len(req.SignalWeights) > 0 {
		preset = preset.MergeOverrides(req.SignalWeights)
	}
	return preset.Normalize()
}

// Combine computes the weighted sum over the intersection of present signals
// and present weights. Presets already sum to 1.0 across the fields they
// define, so an absent signal with zero weight contributes nothing and the
// denominator is not renormalized over only present signals.
func (c *Combiner) Combine(scores domain.SignalScores, weights domain.SignalWeightConfig) float64 {
	combined := 0.0
	for name, w := range weights {
		s, ok := scores[name]
		if !ok {
			continue
		}
		combined += s * w
	}
	if combined < 0 {
		return 0
	}
	if combined > 1 {
		return 1
	}
	return combined
}

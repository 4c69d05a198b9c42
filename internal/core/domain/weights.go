package domain

import "math"

// SignalWeightConfig maps signal name to its weight in the combined score.
// A populated config must sum to 1.0 (±WeightSumTolerance) after Normalize.
type SignalWeightConfig map[string]float64

// WeightSumTolerance is the permitted deviation from 1.0 for a weight sum.
const WeightSumTolerance = 1e-6

// Built-in weight presets. Each preset sums to 1.0 across the fields it
// defines. Values are tuned defaults, not invariants; deployments may
// override per request.
var weightPresets = map[RoleType]SignalWeightConfig{
	RoleTypeExecutive: {
		SignalVectorSimilarity: 0.15,
		SignalLevelMatch:       0.15,
		SignalSpecialtyMatch:   0.05,
		SignalTechStackMatch:   0.05,
		SignalFunctionMatch:    0.10,
		SignalExperienceMatch:  0.05,
		SignalTrajectoryFit:    0.20,
		SignalCompanyPedigree:  0.15,
		SignalSkillsMatch:      0.05,
		SignalRecencyBoost:     0.05,
	},
	RoleTypeManager: {
		SignalVectorSimilarity: 0.20,
		SignalLevelMatch:       0.15,
		SignalSpecialtyMatch:   0.10,
		SignalTechStackMatch:   0.10,
		SignalFunctionMatch:    0.10,
		SignalExperienceMatch:  0.05,
		SignalTrajectoryFit:    0.10,
		SignalCompanyPedigree:  0.10,
		SignalSkillsMatch:      0.05,
		SignalRecencyBoost:     0.05,
	},
	RoleTypeIC: {
		SignalVectorSimilarity: 0.20,
		SignalLevelMatch:       0.10,
		SignalSpecialtyMatch:   0.15,
		SignalTechStackMatch:   0.15,
		SignalFunctionMatch:    0.05,
		SignalExperienceMatch:  0.05,
		SignalTrajectoryFit:    0.05,
		SignalCompanyPedigree:  0.05,
		SignalSkillsMatch:      0.15,
		SignalRecencyBoost:     0.05,
	},
	RoleTypeDefault: {
		SignalVectorSimilarity: 0.20,
		SignalLevelMatch:       0.10,
		SignalSpecialtyMatch:   0.10,
		SignalTechStackMatch:   0.10,
		SignalFunctionMatch:    0.10,
		SignalExperienceMatch:  0.05,
		SignalTrajectoryFit:    0.10,
		SignalCompanyPedigree:  0.10,
		SignalSkillsMatch:      0.10,
		SignalRecencyBoost:     0.05,
	},
}

// WeightPreset returns a copy of the preset for the given role type.
// Unknown role types resolve to the default preset.
func WeightPreset(role RoleType) SignalWeightConfig {
	preset := weightPresets[role.Normalize()]
	out := make(SignalWeightConfig, len(preset))
	for k, v := range preset {
		out[k] = v
	}
	return out
}

// MergeOverrides lays per-request overrides on top of the config. Unknown
// signal names are ignored; callers validate them earlier. Returns a new map.
func (w SignalWeightConfig) MergeOverrides(overrides map[string]float64) SignalWeightConfig {
	out := make(SignalWeightConfig, len(w))
	for k, v := range w {
		out[k] = v
	}
	for k, v := range overrides {
		if KnownSignal(k) {
			out[k] = v
		}
	}
	return out
}

// Normalize scales the populated weights so they sum to exactly 1.0.
// A config whose weights sum to zero is replaced by the default preset.
func (w SignalWeightConfig) Normalize() SignalWeightConfig {
	sum := 0.0
	for _, v := range w {
		sum += v
	}
	if sum <= 0 {
		return WeightPreset(RoleTypeDefault)
	}
	out := make(SignalWeightConfig, len(w))
	for k, v := range w {
		out[k] = v / sum
	}
	return out
}

// Sum returns the total of all populated weights.
func (w SignalWeightConfig) Sum() float64 {
	sum := 0.0
	for _, v := range w {
		sum += v
	}
	return sum
}

// IsNormalized reports whether the weight sum is 1.0 within tolerance.
func (w SignalWeightConfig) IsNormalized() bool {
	return math.Abs(w.Sum()-1.0) <= WeightSumTolerance
}

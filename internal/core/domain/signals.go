package domain

// Signal names. Each names one independent 0-1 measure of candidate-role fit.
const (
	SignalVectorSimilarity = "vectorSimilarity"
	SignalLevelMatch       = "levelMatch"
	SignalSpecialtyMatch   = "specialtyMatch"
	SignalTechStackMatch   = "techStackMatch"
	SignalFunctionMatch    = "functionMatch"
	SignalExperienceMatch  = "experienceMatch"
	SignalTrajectoryFit    = "trajectoryFit"
	SignalCompanyPedigree  = "companyPedigree"
	SignalSkillsMatch      = "skillsMatch"
	SignalRecencyBoost     = "recencyBoost"
)

// NeutralScore is what every signal returns when its source data is missing.
// Missing data must never exclude a candidate or zero out a signal.
const NeutralScore = 0.5

// MismatchFloor is the lowest value a clear mismatch may produce. A floor above
// zero keeps the door open for reranking to override a heuristic mismatch.
const MismatchFloor = 0.2

var signalNames = map[string]struct{}{
	SignalVectorSimilarity: {},
	SignalLevelMatch:       {},
	SignalSpecialtyMatch:   {},
	SignalTechStackMatch:   {},
	SignalFunctionMatch:    {},
	SignalExperienceMatch:  {},
	SignalTrajectoryFit:    {},
	SignalCompanyPedigree:  {},
	SignalSkillsMatch:      {},
	SignalRecencyBoost:     {},
}

// KnownSignal reports whether name is a registered signal.
func KnownSignal(name string) bool {
	_, ok := signalNames[name]
	return ok
}

// SignalNames returns all registered signal names.
func SignalNames() []string {
	names := make([]string, 0, len(signalNames))
	for n := range signalNames {
		names = append(names, n)
	}
	return names
}

// SignalScores maps signal name to its computed 0-1 value for one candidate.
type SignalScores map[string]float64

// Clamp forces every value into [0,1].
func (s SignalScores) Clamp() {
	for k, v := range s {
		if v < 0 {
			s[k] = 0
		} else if v > 1 {
			s[k] = 1
		}
	}
}

// Package scoring computes per-signal candidate fit and blends it into one
// ranking score. Every signal is a named pure function of the candidate row
// and the request; signals reorder candidates but never remove them.
package scoring

import (
	"sort"
	"strings"
	"time"

	"github.com/hiresignal-labs/hiresignal-core/internal/core/domain"
)

// SignalFunc computes one 0-1 signal for a candidate. Implementations must
// not error: missing source data resolves to domain.NeutralScore and any
// out-of-range value is clamped by the registry.
type SignalFunc func(row *domain.CandidateRow, req *domain.SearchRequest) float64

// Registry holds the named signal functions applied to every retrieved
// candidate. The set is fixed at construction; there is no runtime mutation.
type Registry struct {
	signals map[string]SignalFunc
}

// NewRegistry creates a registry with the full built-in signal set.
func NewRegistry() *Registry {
	return &Registry{
		signals: map[string]SignalFunc{
			domain.SignalVectorSimilarity: vectorSimilarity,
			domain.SignalLevelMatch:       levelMatch,
			domain.SignalSpecialtyMatch:   specialtyMatch,
			domain.SignalTechStackMatch:   techStackMatch,
			domain.SignalFunctionMatch:    functionMatch,
			domain.SignalExperienceMatch:  experienceMatch,
			domain.SignalTrajectoryFit:    trajectoryFit,
			domain.SignalCompanyPedigree:  companyPedigree,
			domain.SignalSkillsMatch:      skillsMatch,
			domain.SignalRecencyBoost:     recencyBoost,
		},
	}
}

// Score computes all signals for one candidate. The result is always fully
// populated and clamped to [0,1].
func (r *Registry) Score(row *domain.CandidateRow, req *domain.SearchRequest) domain.SignalScores {
	scores := make(domain.SignalScores, len(r.signals))
	for name, fn := range r.signals {
		scores[name] = fn(row, req)
	}
	scores.Clamp()
	return scores
}

// Names returns the registered signal names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.signals))
	for n := range r.signals {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// seniorityTiers orders recognized seniority levels for distance scoring.
var seniorityTiers = map[string]int{
	"intern":    0,
	"junior":    1,
	"mid":       2,
	"senior":    3,
	"staff":     4,
	"principal": 5,
	"director":  6,
	"vp":        7,
	"executive": 8,
}

// adjacentSpecialties maps a searched specialty to specialties counted as
// transferable. Fullstack counts for both backend and frontend searches.
var adjacentSpecialties = map[string][]string{
	"backend":  {"fullstack", "platform", "infrastructure"},
	"frontend": {"fullstack", "mobile"},
	"platform": {"backend", "infrastructure", "sre"},
	"data":     {"ml", "analytics"},
	"ml":       {"data"},
	"mobile":   {"frontend"},
	"security": {"platform", "infrastructure"},
}

// companyTierRank orders company pedigree tiers.
var companyTierRank = map[string]int{
	"startup":    0,
	"growth":     1,
	"enterprise": 2,
	"faang":      3,
}

// vectorSimilarity passes through the retrieval-stage cosine score,
// re-normalized when the source scale is 0-100.
func vectorSimilarity(row *domain.CandidateRow, _ *domain.SearchRequest) float64 {
	v := row.VectorScore
	if v > 1 {
		v = v / 100
	}
	if v <= 0 {
		// Absent from the vector list: no similarity evidence either way.
		if !row.HasVectorRank() {
			return domain.NeutralScore
		}
		return 0
	}
	return v
}

// levelMatch scores seniority distance between the candidate and the
// requested levels: exact tier 1.0, one tier off 0.7, two tiers 0.4,
// further 0.2, unknown 0.5.
func levelMatch(row *domain.CandidateRow, req *domain.SearchRequest) float64 {
	wanted := req.Filters.SeniorityLevels
	if len(wanted) == 0 {
		return domain.NeutralScore
	}
	have, ok := seniorityTiers[strings.ToLower(row.Seniority)]
	if !ok {
		return domain.NeutralScore
	}

	best := domain.MismatchFloor
	for _, w := range wanted {
		want, ok := seniorityTiers[strings.ToLower(w)]
		if !ok {
			continue
		}
		var s float64
		switch dist := abs(have - want); dist {
		case 0:
			s = 1.0
		case 1:
			s = 0.7
		case 2:
			s = 0.4
		default:
			s = domain.MismatchFloor
		}
		if s > best {
			best = s
		}
	}
	return best
}

// specialtyMatch is categorical: direct 1.0, transferable 0.75, no data 0.5,
// clear mismatch floors at 0.2.
func specialtyMatch(row *domain.CandidateRow, req *domain.SearchRequest) float64 {
	want := strings.ToLower(req.Filters.Specialty)
	if want == "" {
		return domain.NeutralScore
	}
	if len(row.Specialties) == 0 {
		return domain.NeutralScore
	}
	adjacent := adjacentSpecialties[want]
	best := domain.MismatchFloor
	for _, s := range row.Specialties {
		s = strings.ToLower(s)
		if s == want {
			return 1.0
		}
		for _, adj := range adjacent {
			if s == adj && best < 0.75 {
				best = 0.75
			}
		}
	}
	return best
}

// techStackMatch scores the overlap between requested and candidate stacks.
func techStackMatch(row *domain.CandidateRow, req *domain.SearchRequest) float64 {
	wanted := req.Filters.TechStack
	if len(wanted) == 0 {
		return domain.NeutralScore
	}
	if len(row.TechStack) == 0 {
		return domain.NeutralScore
	}
	have := toLowerSet(row.TechStack)
	matched := 0
	for _, w := range wanted {
		if _, ok := have[strings.ToLower(w)]; ok {
			matched++
		}
	}
	if matched == 0 {
		return domain.MismatchFloor
	}
	// Scale overlap into [MismatchFloor, 1.0].
	frac := float64(matched) / float64(len(wanted))
	return domain.MismatchFloor + frac*(1.0-domain.MismatchFloor)
}

// functionMatch is categorical on the candidate's job function.
func functionMatch(row *domain.CandidateRow, req *domain.SearchRequest) float64 {
	want := strings.ToLower(req.Filters.Function)
	if want == "" {
		return domain.NeutralScore
	}
	have := strings.ToLower(row.Function)
	if have == "" {
		return domain.NeutralScore
	}
	if have == want {
		return 1.0
	}
	return domain.MismatchFloor
}

// experienceMatch scores shortfall against the requested minimum years:
// at or above 1.0, one or two years short 0.7, three or four short 0.4,
// further 0.2, unknown 0.5. Meeting the bar exactly and exceeding it score
// the same; seniority fit is levelMatch's job.
func experienceMatch(row *domain.CandidateRow, req *domain.SearchRequest) float64 {
	min := req.Filters.MinYearsExperience
	if min <= 0 {
		return domain.NeutralScore
	}
	if row.YearsExperience <= 0 {
		return domain.NeutralScore
	}
	switch shortfall := min - row.YearsExperience; {
	case shortfall <= 0:
		return 1.0
	case shortfall <= 2:
		return 0.7
	case shortfall <= 4:
		return 0.4
	default:
		return domain.MismatchFloor
	}
}

// trajectoryFit passes through the rule-based trajectory slope estimate.
func trajectoryFit(row *domain.CandidateRow, _ *domain.SearchRequest) float64 {
	if row.TrajectorySlope <= 0 {
		return domain.NeutralScore
	}
	return row.TrajectorySlope
}

// companyPedigree scores company-tier distance: exact 1.0, one tier 0.7,
// further 0.4, unknown 0.5.
func companyPedigree(row *domain.CandidateRow, req *domain.SearchRequest) float64 {
	want := strings.ToLower(req.Filters.CompanyTier)
	if want == "" {
		return domain.NeutralScore
	}
	wantRank, ok := companyTierRank[want]
	if !ok {
		return domain.NeutralScore
	}
	haveRank, ok := companyTierRank[strings.ToLower(row.CompanyTier)]
	if !ok {
		return domain.NeutralScore
	}
	switch abs(haveRank - wantRank) {
	case 0:
		return 1.0
	case 1:
		return 0.7
	default:
		return 0.4
	}
}

// skillsMatch scores overlap between requested skills and the candidate's
// skill list (exact, case-insensitive).
func skillsMatch(row *domain.CandidateRow, req *domain.SearchRequest) float64 {
	wanted := req.Filters.Skills
	if len(wanted) == 0 {
		return domain.NeutralScore
	}
	if len(row.Skills) == 0 {
		return domain.NeutralScore
	}
	have := toLowerSet(row.Skills)
	matched := 0
	for _, w := range wanted {
		if _, ok := have[strings.ToLower(w)]; ok {
			matched++
		}
	}
	if matched == 0 {
		return domain.MismatchFloor
	}
	frac := float64(matched) / float64(len(wanted))
	return domain.MismatchFloor + frac*(1.0-domain.MismatchFloor)
}

// recencyDecayYears is the horizon at which recency bottoms out at the floor.
const recencyDecayYears = 5.0

// recencyBoost decays linearly from 1.0 (active now) to the floor at five or
// more years since the candidate was last active.
func recencyBoost(row *domain.CandidateRow, _ *domain.SearchRequest) float64 {
	if row.LastActive.IsZero() {
		return domain.NeutralScore
	}
	years := time.Since(row.LastActive).Hours() / (24 * 365.25)
	if years <= 0 {
		return 1.0
	}
	if years >= recencyDecayYears {
		return domain.MismatchFloor
	}
	return 1.0 - (years/recencyDecayYears)*(1.0-domain.MismatchFloor)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func toLowerSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, s := range items {
		set[strings.ToLower(s)] = struct{}{}
	}
	return set
}

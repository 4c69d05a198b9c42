package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hiresignal-labs/hiresignal-core/internal/core/domain"
)

func TestRegistry_ScoreIsAlwaysFullAndBounded(t *testing.T) {
	reg := NewRegistry()
	rows := []*domain.CandidateRow{
		{},
		{CandidateID: "c-1", VectorScore: 0.91, Seniority: "senior", Specialties: []string{"backend"}},
		{CandidateID: "c-2", VectorScore: 87, TrajectorySlope: 3.4, LastActive: time.Now().AddDate(-12, 0, 0)},
		{CandidateID: "c-3", VectorScore: -0.2, Seniority: "unrecognized tier"},
	}
	reqs := []*domain.SearchRequest{
		{TenantID: "t-1", Query: "engineer"},
		{TenantID: "t-1", Filters: domain.SearchFilters{
			Skills:             []string{"go", "postgres"},
			SeniorityLevels:    []string{"staff"},
			Specialty:          "backend",
			Function:           "engineering",
			CompanyTier:        "growth",
			MinYearsExperience: 8,
			TechStack:          []string{"kubernetes"},
		}},
	}

	for _, row := range rows {
		for _, req := range reqs {
			scores := reg.Score(row, req)
			assert.Len(t, scores, len(reg.Names()))
			for name, v := range scores {
				assert.GreaterOrEqual(t, v, 0.0, "signal %s for %s", name, row.CandidateID)
				assert.LessOrEqual(t, v, 1.0, "signal %s for %s", name, row.CandidateID)
			}
		}
	}
}

func TestVectorSimilarity_NormalizesPercentScale(t *testing.T) {
	row := &domain.CandidateRow{VectorScore: 87}
	assert.InDelta(t, 0.87, vectorSimilarity(row, nil), 1e-9)
}

func TestVectorSimilarity_MissingIsNeutral(t *testing.T) {
	row := &domain.CandidateRow{VectorScore: 0}
	assert.Equal(t, domain.NeutralScore, vectorSimilarity(row, nil))
}

func TestLevelMatch_TieredDistance(t *testing.T) {
	req := &domain.SearchRequest{Filters: domain.SearchFilters{SeniorityLevels: []string{"senior"}}}

	tests := []struct {
		seniority string
		want      float64
	}{
		{"senior", 1.0},
		{"Staff", 0.7},
		{"mid", 0.7},
		{"junior", 0.4},
		{"intern", domain.MismatchFloor},
		{"executive", domain.MismatchFloor},
		{"", domain.NeutralScore},
		{"wizard", domain.NeutralScore},
	}
	for _, tt := range tests {
		row := &domain.CandidateRow{Seniority: tt.seniority}
		assert.Equal(t, tt.want, levelMatch(row, req), "seniority %q", tt.seniority)
	}
}

func TestLevelMatch_BestOfRequestedLevels(t *testing.T) {
	req := &domain.SearchRequest{Filters: domain.SearchFilters{SeniorityLevels: []string{"intern", "staff"}}}
	row := &domain.CandidateRow{Seniority: "staff"}

	assert.Equal(t, 1.0, levelMatch(row, req))
}

func TestSpecialtyMatch_Categorical(t *testing.T) {
	req := &domain.SearchRequest{Filters: domain.SearchFilters{Specialty: "backend"}}

	tests := []struct {
		specialties []string
		want        float64
	}{
		{[]string{"backend"}, 1.0},
		{[]string{"Fullstack"}, 0.75},
		{[]string{"platform", "frontend"}, 0.75},
		{[]string{"frontend"}, domain.MismatchFloor},
		{nil, domain.NeutralScore},
	}
	for _, tt := range tests {
		row := &domain.CandidateRow{Specialties: tt.specialties}
		assert.Equal(t, tt.want, specialtyMatch(row, req), "specialties %v", tt.specialties)
	}
}

func TestSkillsMatch_OverlapScalesAboveFloor(t *testing.T) {
	req := &domain.SearchRequest{Filters: domain.SearchFilters{Skills: []string{"go", "postgres", "kafka", "redis"}}}

	full := &domain.CandidateRow{Skills: []string{"Go", "Postgres", "Kafka", "Redis"}}
	half := &domain.CandidateRow{Skills: []string{"go", "postgres"}}
	none := &domain.CandidateRow{Skills: []string{"cobol"}}

	assert.Equal(t, 1.0, skillsMatch(full, req))
	assert.InDelta(t, 0.6, skillsMatch(half, req), 1e-9)
	assert.Equal(t, domain.MismatchFloor, skillsMatch(none, req))
}

func TestCompanyPedigree_TierDistance(t *testing.T) {
	req := &domain.SearchRequest{Filters: domain.SearchFilters{CompanyTier: "enterprise"}}

	tests := []struct {
		tier string
		want float64
	}{
		{"enterprise", 1.0},
		{"faang", 0.7},
		{"growth", 0.7},
		{"startup", 0.4},
		{"", domain.NeutralScore},
	}
	for _, tt := range tests {
		row := &domain.CandidateRow{CompanyTier: tt.tier}
		assert.Equal(t, tt.want, companyPedigree(row, req), "tier %q", tt.tier)
	}
}

func TestRecencyBoost_LinearDecay(t *testing.T) {
	now := time.Now()

	active := &domain.CandidateRow{LastActive: now}
	stale := &domain.CandidateRow{LastActive: now.AddDate(-10, 0, 0)}
	missing := &domain.CandidateRow{}

	assert.InDelta(t, 1.0, recencyBoost(active, nil), 0.01)
	assert.Equal(t, domain.MismatchFloor, recencyBoost(stale, nil))
	assert.Equal(t, domain.NeutralScore, recencyBoost(missing, nil))

	// Halfway through the decay window sits halfway between 1.0 and the floor.
	midway := &domain.CandidateRow{LastActive: now.AddDate(0, -30, 0)}
	assert.InDelta(t, 0.6, recencyBoost(midway, nil), 0.02)
}

func TestExperienceMatch_ShortfallTiers(t *testing.T) {
	req := &domain.SearchRequest{Filters: domain.SearchFilters{MinYearsExperience: 10}}

	tests := []struct {
		years int
		want  float64
	}{
		{20, 1.0},
		{10, 1.0},
		{9, 0.7},
		{8, 0.7},
		{7, 0.4},
		{6, 0.4},
		{5, domain.MismatchFloor},
		{1, domain.MismatchFloor},
		{0, domain.NeutralScore},
	}
	for _, tt := range tests {
		row := &domain.CandidateRow{YearsExperience: tt.years}
		assert.Equal(t, tt.want, experienceMatch(row, req), "years %d", tt.years)
	}
}

func TestExperienceMatch_NoMinimumIsNeutral(t *testing.T) {
	row := &domain.CandidateRow{YearsExperience: 15}
	req := &domain.SearchRequest{}

	assert.Equal(t, domain.NeutralScore, experienceMatch(row, req))
}

func TestFunctionMatch(t *testing.T) {
	req := &domain.SearchRequest{Filters: domain.SearchFilters{Function: "Engineering"}}

	assert.Equal(t, 1.0, functionMatch(&domain.CandidateRow{Function: "engineering"}, req))
	assert.Equal(t, domain.MismatchFloor, functionMatch(&domain.CandidateRow{Function: "sales"}, req))
	assert.Equal(t, domain.NeutralScore, functionMatch(&domain.CandidateRow{}, req))
}

func TestTrajectoryFit_PassThrough(t *testing.T) {
	assert.Equal(t, 0.8, trajectoryFit(&domain.CandidateRow{TrajectorySlope: 0.8}, nil))
	assert.Equal(t, domain.NeutralScore, trajectoryFit(&domain.CandidateRow{}, nil))
}

package domain

import "strings"

// RoleType selects the signal weight preset applied to a search.
type RoleType string

const (
	RoleTypeExecutive RoleType = "executive"
	RoleTypeManager   RoleType = "manager"
	RoleTypeIC        RoleType = "ic"
	RoleTypeDefault   RoleType = "default"
)

// Normalize maps unknown or empty role types to the default preset.
func (r RoleType) Normalize() RoleType {
	switch r {
	case RoleTypeExecutive, RoleTypeManager, RoleTypeIC:
		return r
	default:
		return RoleTypeDefault
	}
}

// SearchFilters carries the structured side of a search request.
// Filters never exclude candidates at retrieval time; every filter is
// converted into a soft scoring signal downstream.
type SearchFilters struct {
	Skills             []string `json:"skills,omitempty"`
	SeniorityLevels    []string `json:"seniorityLevels,omitempty"`
	CompanyTier        string   `json:"companyTier,omitempty"`
	MinYearsExperience int      `json:"minYearsExperience,omitempty"`
	Specialty          string   `json:"specialty,omitempty"`
	Function           string   `json:"function,omitempty"`
	TechStack          []string `json:"techStack,omitempty"`
}

// IsEmpty reports whether no structured filter is set.
func (f SearchFilters) IsEmpty() bool {
	return len(f.Skills) == 0 &&
		len(f.SeniorityLevels) == 0 &&
		f.CompanyTier == "" &&
		f.MinYearsExperience == 0 &&
		f.Specialty == "" &&
		f.Function == "" &&
		len(f.TechStack) == 0
}

// SearchRequest is a validated candidate search request.
// TenantID is populated by the gateway middleware, never by the client body.
type SearchRequest struct {
	TenantID string `json:"-"`
	Query    string `json:"query,omitempty"`

	// TextQuery is an accepted alias for Query; Validate folds it in when
	// Query is empty.
	TextQuery     string             `json:"textQuery,omitempty"`
	Filters       SearchFilters      `json:"filters,omitempty"`
	RoleType      RoleType           `json:"roleType,omitempty"`
	SignalWeights map[string]float64 `json:"signalWeights,omitempty"`
	Limit         int                `json:"limit,omitempty"`
	Offset        int                `json:"offset,omitempty"`
	IncludeDebug  bool               `json:"includeDebug,omitempty"`
}

const (
	// DefaultLimit is the page size applied when the client omits one.
	DefaultLimit = 20

	// MaxLimit caps the page size regardless of what the client asks for.
	MaxLimit = 100
)

// Validate checks the request invariants and applies paging defaults.
func (r *SearchRequest) Validate() error {
	if r.TenantID == "" {
		return ErrTenantRequired
	}
	if strings.TrimSpace(r.Query) == "" {
		r.Query = r.TextQuery
	}
	if strings.TrimSpace(r.Query) == "" && r.Filters.IsEmpty() {
		return ErrEmptyQuery
	}
	for name, w := range r.SignalWeights {
		if w < 0 {
			return ErrInvalidInput
		}
		if !KnownSignal(name) {
			return ErrUnknownSignal
		}
	}
	if r.Limit <= 0 {
		r.Limit = DefaultLimit
	}
	if r.Limit > MaxLimit {
		r.Limit = MaxLimit
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
	return nil
}

// RankedResult is one candidate in the final ordered result set.
type RankedResult struct {
	CandidateID    string             `json:"candidateId"`
	Rank           int                `json:"rank"`
	Score          float64            `json:"score"`
	SignalScores   map[string]float64 `json:"signalScores,omitempty"`
	WeightsApplied map[string]float64 `json:"weightsApplied,omitempty"`
	RerankScore    *float64           `json:"rerankScore,omitempty"`
	MatchReasons   []string           `json:"matchReasons"`
	RerankApplied  bool               `json:"rerankApplied"`
}

// Timings records per-stage latency for one request, in milliseconds.
type Timings struct {
	TotalMs     int64  `json:"totalMs"`
	EmbeddingMs int64  `json:"embeddingMs"`
	RetrievalMs int64  `json:"retrievalMs"`
	ScoringMs   int64  `json:"scoringMs"`
	RerankMs    *int64 `json:"rerankMs,omitempty"`
}

// RerankMetadata flags how the rerank stage behaved for one request.
type RerankMetadata struct {
	CacheHit     bool `json:"cacheHit"`
	UsedFallback bool `json:"usedFallback"`
}

// SearchMetadata carries degradation flags for observability.
type SearchMetadata struct {
	Rerank *RerankMetadata `json:"rerank,omitempty"`
}

// SearchResponse is the final assembled search response.
type SearchResponse struct {
	Results  []*RankedResult `json:"results"`
	Total    int             `json:"total"`
	CacheHit bool            `json:"cacheHit"`
	Timings  Timings         `json:"timings"`
	Metadata SearchMetadata  `json:"metadata"`
}

package services

import (
	"github.com/hiresignal-labs/hiresignal-core/internal/core/domain"
)

// reasonThreshold is the signal value above which a rule-based match reason
// is emitted.
const reasonThreshold = 0.9

// reasonText maps signal names to the short rationale surfaced to recruiters.
var reasonText = map[string]string{
	domain.SignalVectorSimilarity: "strong profile relevance",
	domain.SignalLevelMatch:       "seniority matches the role",
	domain.SignalSpecialtyMatch:   "specialty matches the role",
	domain.SignalTechStackMatch:   "tech stack matches the role",
	domain.SignalFunctionMatch:    "function matches the role",
	domain.SignalExperienceMatch:  "meets the experience bar",
	domain.SignalTrajectoryFit:    "strong career trajectory",
	domain.SignalCompanyPedigree:  "relevant company background",
	domain.SignalSkillsMatch:      "requested skills present",
	domain.SignalRecencyBoost:     "recently active",
}

// matchReasons derives rule-based rationale from high signals that actually
// carry weight in this request. The reranker may append model reasons later.
func matchReasons(signals domain.SignalScores, weights domain.SignalWeightConfig) []string {
	var reasons []string
	for _, name := range orderedReasonSignals {
		if weights[name] <= 0 {
			continue
		}
		if signals[name] >= reasonThreshold {
			reasons = append(reasons, reasonText[name])
		}
	}
	if reasons == nil {
		reasons = []string{}
	}
	return reasons
}

// orderedReasonSignals fixes reason ordering so responses are deterministic.
var orderedReasonSignals = []string{
	domain.SignalSkillsMatch,
	domain.SignalSpecialtyMatch,
	domain.SignalTechStackMatch,
	domain.SignalLevelMatch,
	domain.SignalFunctionMatch,
	domain.SignalExperienceMatch,
	domain.SignalVectorSimilarity,
	domain.SignalTrajectoryFit,
	domain.SignalCompanyPedigree,
	domain.SignalRecencyBoost,
}

// assemble paginates the ranked set, stamps final 1-based ranks and strips
// the debug breakdown unless the request asked for it.
func assemble(req *domain.SearchRequest, results []*domain.RankedResult, outcome RerankOutcome, timings domain.Timings, cacheHit bool) *domain.SearchResponse {
	total := len(results)

	startIdx := req.Offset
	if startIdx > total {
		startIdx = total
	}
	endIdx := startIdx + req.Limit
	if endIdx > total {
		endIdx = total
	}
	page := results[startIdx:endIdx]

	for i, r := range page {
		r.Rank = startIdx + i + 1
		if !req.IncludeDebug {
			r.SignalScores = nil
			r.WeightsApplied = nil
		}
	}
	if page == nil {
		page = []*domain.RankedResult{}
	}

	resp := &domain.SearchResponse{
		Results:  page,
		Total:    total,
		CacheHit: cacheHit,
		Timings:  timings,
	}
	if outcome.Applied || outcome.UsedFallback {
		resp.Metadata.Rerank = &domain.RerankMetadata{
			CacheHit:     outcome.CacheHit,
			UsedFallback: outcome.UsedFallback,
		}
	}
	return resp
}

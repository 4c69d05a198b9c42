package domain

import "time"

// CandidateRow is a retrieved candidate ready for scoring. Produced fresh per
// request by the hybrid retriever; never persisted.
//
// VectorRank and TextRank are 1-based ranks within each retrieval method and
// are nil when the candidate was absent from that method's list.
type CandidateRow struct {
	CandidateID string

	VectorScore float64 // cosine similarity, 0-1
	TextScore   float64 // ts_rank, unbounded positive
	VectorRank  *int
	TextRank    *int
	FusedScore  float64

	// Denormalized profile fields consumed by signal functions.
	Seniority       string
	YearsExperience int
	Specialties     []string
	TechStack       []string
	Function        string
	CompanyTier     string
	CompanyHistory  []string
	TrajectorySlope float64 // rule-based career trajectory estimate, 0-1
	Skills          []string
	LastActive      time.Time

	// Extra holds profile attributes consumed only by specific signal
	// functions. Typed as a string map to avoid stringly-typed access on a
	// dynamically-shaped record.
	Extra map[string]string
}

// HasVectorRank reports whether the candidate appeared in the vector list.
func (c *CandidateRow) HasVectorRank() bool { return c.VectorRank != nil }

// HasTextRank reports whether the candidate appeared in the text list.
func (c *CandidateRow) HasTextRank() bool { return c.TextRank != nil }

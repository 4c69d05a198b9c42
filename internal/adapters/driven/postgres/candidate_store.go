package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/hiresignal-labs/hiresignal-core/internal/core/domain"
	"github.com/hiresignal-labs/hiresignal-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.CandidateRetriever = (*CandidateStore)(nil)

// CandidateStore implements driven.CandidateRetriever over Postgres with
// pgvector. Retrieval is a single round trip: two independently ranked CTEs
// (vector and text) fused with reciprocal-rank fusion in SQL.
type CandidateStore struct {
	db *DB
}

// NewCandidateStore creates a Postgres-backed CandidateRetriever.
func NewCandidateStore(db *DB) *CandidateStore {
	return &CandidateStore{db: db}
}

// retrieveQuery fuses the vector and text lists with a FULL OUTER JOIN so a
// candidate missing from one list still carries the other's rank; an absent
// rank contributes 0 to the fused score, not a penalty.
//
// The only predicates are the tenant scope and the vector similarity floor,
// applied before ranking so fusion ranks stay meaningful. Structured request
// filters deliberately never appear here: they are soft scoring signals, and
// pushing them into WHERE was found to collapse result counts.
const retrieveQuery = `
WITH vector_matches AS (
    SELECT id,
           1 - (embedding <=> $2::vector)                          AS vector_score,
           ROW_NUMBER() OVER (ORDER BY embedding <=> $2::vector)   AS vector_rank
    FROM candidates
    WHERE tenant_id = $1
      AND embedding IS NOT NULL
      AND 1 - (embedding <=> $2::vector) >= $3
    ORDER BY embedding <=> $2::vector
    LIMIT $4
),
text_matches AS (
    SELECT id,
           ts_rank(search_document, plainto_tsquery('english', $5)) AS text_score,
           ROW_NUMBER() OVER (
               ORDER BY ts_rank(search_document, plainto_tsquery('english', $5)) DESC
           ) AS text_rank
    FROM candidates
    WHERE tenant_id = $1
      AND $5 <> ''
      AND search_document @@ plainto_tsquery('english', $5)
    ORDER BY text_score DESC
    LIMIT $4
),
fused AS (
    SELECT COALESCE(v.id, t.id)          AS id,
           COALESCE(v.vector_score, 0)   AS vector_score,
           COALESCE(t.text_score, 0)     AS text_score,
           v.vector_rank,
           t.text_rank,
           COALESCE(1.0 / ($6 + v.vector_rank), 0)
             + COALESCE(1.0 / ($6 + t.text_rank), 0) AS fused_score
    FROM vector_matches v
    FULL OUTER JOIN text_matches t ON v.id = t.id
)
SELECT c.id,
       f.vector_score, f.text_score, f.vector_rank, f.text_rank, f.fused_score,
       c.seniority, c.years_experience, c.specialties, c.tech_stack,
       c.job_function, c.company_tier, c.company_history, c.trajectory_slope,
       c.skills, c.last_active, c.extra
FROM fused f
JOIN candidates c ON c.id = f.id
ORDER BY f.fused_score DESC, c.id`

// Retrieve runs the fused hybrid query for one tenant.
func (s *CandidateStore) Retrieve(ctx context.Context, tenantID string, embedding []float32, textQuery string, params driven.RetrievalParams) ([]*domain.CandidateRow, error) {
	if len(embedding) == 0 {
		return nil, fmt.Errorf("%w: empty query embedding", domain.ErrInvalidInput)
	}

	rows, err := s.db.QueryContext(ctx, retrieveQuery,
		tenantID,
		vectorLiteral(embedding),
		params.MinSimilarity,
		params.PerMethodLimit,
		strings.TrimSpace(textQuery),
		params.RRFK,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: hybrid retrieval failed: %v", domain.ErrDatabaseUnavailable, err)
	}
	defer rows.Close()

	var out []*domain.CandidateRow
	for rows.Next() {
		row, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: candidate rows: %v", domain.ErrDatabaseUnavailable, err)
	}

	return out, nil
}

func scanCandidate(rows *sql.Rows) (*domain.CandidateRow, error) {
	var (
		row        domain.CandidateRow
		vectorRank sql.NullInt64
		textRank   sql.NullInt64
		lastActive sql.NullTime
		extraJSON  []byte
	)

	err := rows.Scan(
		&row.CandidateID,
		&row.VectorScore,
		&row.TextScore,
		&vectorRank,
		&textRank,
		&row.FusedScore,
		&row.Seniority,
		&row.YearsExperience,
		pq.Array(&row.Specialties),
		pq.Array(&row.TechStack),
		&row.Function,
		&row.CompanyTier,
		pq.Array(&row.CompanyHistory),
		&row.TrajectorySlope,
		pq.Array(&row.Skills),
		&lastActive,
		&extraJSON,
	)
	if err != nil {
		return nil, err
	}

	row.VectorRank = IntPtr(vectorRank)
	row.TextRank = IntPtr(textRank)
	if lastActive.Valid {
		row.LastActive = lastActive.Time
	}
	if len(extraJSON) > 0 {
		// Malformed extra attributes degrade to an empty map; they only feed
		// optional signals.
		_ = json.Unmarshal(extraJSON, &row.Extra)
	}

	return &row, nil
}

// vectorLiteral renders an embedding in pgvector's text format: [f1,f2,...]
func vectorLiteral(embedding []float32) string {
	var b strings.Builder
	b.Grow(len(embedding) * 10)
	b.WriteByte('[')
	for i, v := range embedding {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}

// HealthCheck verifies the database is reachable
func (s *CandidateStore) HealthCheck(ctx context.Context) error {
	return s.db.Ping(ctx)
}

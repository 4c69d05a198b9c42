package postgres

import (
	"database/sql"
	"strings"
	"testing"
)

func TestVectorLiteral(t *testing.T) {
	tests := []struct {
		in   []float32
		want string
	}{
		{[]float32{}, "[]"},
		{[]float32{0.5}, "[0.5]"},
		{[]float32{0.25, -1, 0}, "[0.25,-1,0]"},
	}
	for _, tt := range tests {
		if got := vectorLiteral(tt.in); got != tt.want {
			t.Errorf("vectorLiteral(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestVectorLiteral_RoundTripsFloat32(t *testing.T) {
	got := vectorLiteral([]float32{0.1, 0.2, 0.3})
	// Shortest round-trip formatting, no float64 noise like 0.10000000149.
	if strings.Contains(got, "000000") {
		t.Errorf("literal carries float64 conversion noise: %q", got)
	}
}

func TestIntPtr(t *testing.T) {
	if got := IntPtr(sql.NullInt64{}); got != nil {
		t.Errorf("IntPtr(null) = %v, want nil", *got)
	}
	got := IntPtr(sql.NullInt64{Int64: 4, Valid: true})
	if got == nil || *got != 4 {
		t.Errorf("IntPtr(4) = %v, want 4", got)
	}
}

func TestRetrieveQuery_FilterSurface(t *testing.T) {
	// The tenant scope and similarity floor are the only predicates; request
	// filters must never reach the SQL.
	if !strings.Contains(retrieveQuery, "tenant_id = $1") {
		t.Error("query is missing the tenant scope")
	}
	if !strings.Contains(retrieveQuery, "FULL OUTER JOIN") {
		t.Error("fusion must keep candidates present in only one list")
	}
	for _, banned := range []string{"skills", "seniority =", "company_tier =", "job_function ="} {
		if strings.Contains(strings.ToLower(retrieveQuery), "where "+banned) {
			t.Errorf("structured filter %q leaked into the retrieval predicate", banned)
		}
	}
}

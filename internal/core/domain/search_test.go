package domain

import (
	"errors"
	"testing"
)

func TestSearchRequest_Validate_RequiresTenant(t *testing.T) {
	req := &SearchRequest{Query: "senior backend engineer"}

	if err := req.Validate(); !errors.Is(err, ErrTenantRequired) {
		t.Errorf("expected ErrTenantRequired, got %v", err)
	}
}

func TestSearchRequest_Validate_RequiresQueryOrFilters(t *testing.T) {
	req := &SearchRequest{TenantID: "t-1", Query: "   "}

	if err := req.Validate(); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestSearchRequest_Validate_TextQueryAlias(t *testing.T) {
	req := &SearchRequest{TenantID: "t-1", TextQuery: "senior backend"}

	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Query != "senior backend" {
		t.Errorf("query = %q, want the alias folded in", req.Query)
	}
}

func TestSearchRequest_Validate_QueryWinsOverAlias(t *testing.T) {
	req := &SearchRequest{TenantID: "t-1", Query: "staff platform", TextQuery: "senior backend"}

	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Query != "staff platform" {
		t.Errorf("query = %q, alias must not override an explicit query", req.Query)
	}
}

func TestSearchFilters_MinYearsAloneIsNotEmpty(t *testing.T) {
	f := SearchFilters{MinYearsExperience: 5}
	if f.IsEmpty() {
		t.Error("a minimum-years filter must count as a populated filter set")
	}
}

func TestSearchRequest_Validate_FiltersOnlyIsValid(t *testing.T) {
	req := &SearchRequest{
		TenantID: "t-1",
		Filters:  SearchFilters{Skills: []string{"go"}},
	}

	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSearchRequest_Validate_AppliesPagingDefaults(t *testing.T) {
	req := &SearchRequest{TenantID: "t-1", Query: "engineer", Offset: -5}

	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Limit != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, req.Limit)
	}
	if req.Offset != 0 {
		t.Errorf("expected offset clamped to 0, got %d", req.Offset)
	}
}

func TestSearchRequest_Validate_CapsLimit(t *testing.T) {
	req := &SearchRequest{TenantID: "t-1", Query: "engineer", Limit: 5000}

	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Limit != MaxLimit {
		t.Errorf("expected limit capped at %d, got %d", MaxLimit, req.Limit)
	}
}

func TestSearchRequest_Validate_RejectsUnknownSignal(t *testing.T) {
	req := &SearchRequest{
		TenantID:      "t-1",
		Query:         "engineer",
		SignalWeights: map[string]float64{"astrology": 0.5},
	}

	if err := req.Validate(); !errors.Is(err, ErrUnknownSignal) {
		t.Errorf("expected ErrUnknownSignal, got %v", err)
	}
}

func TestSearchRequest_Validate_RejectsNegativeWeight(t *testing.T) {
	req := &SearchRequest{
		TenantID:      "t-1",
		Query:         "engineer",
		SignalWeights: map[string]float64{SignalSkillsMatch: -0.1},
	}

	if err := req.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRoleType_Normalize(t *testing.T) {
	tests := []struct {
		in   RoleType
		want RoleType
	}{
		{RoleTypeExecutive, RoleTypeExecutive},
		{RoleTypeManager, RoleTypeManager},
		{RoleTypeIC, RoleTypeIC},
		{RoleTypeDefault, RoleTypeDefault},
		{"", RoleTypeDefault},
		{"intergalactic", RoleTypeDefault},
	}

	for _, tt := range tests {
		if got := tt.in.Normalize(); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

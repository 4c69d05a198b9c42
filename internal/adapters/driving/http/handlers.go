package http

import (
	"encoding/json"
	"net/http"

	"github.com/hiresignal-labs/hiresignal-core/internal/core/domain"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"query or filters required"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// handleSearch godoc
// @Summary      Search candidates
// @Description  Runs the hybrid retrieval, multi-signal scoring and reranking pipeline
// @Tags         Search
// @Accept       json
// @Produce      json
// @Param        request  body      domain.SearchRequest  true  "Search request"
// @Success      200      {object}  domain.SearchResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request"
// @Failure      401      {object}  ErrorResponse  "Missing tenant"
// @Failure      503      {object}  ErrorResponse  "Upstream dependency unavailable"
// @Router       /api/v1/search [post]
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req domain.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.TenantID = GetTenantID(r.Context())

	resp, err := s.searchService.Search(r.Context(), &req)
	if err != nil {
		switch {
		case domain.IsValidationError(err):
			writeError(w, http.StatusBadRequest, err.Error())
		case domain.IsFatalDependencyError(err):
			writeError(w, http.StatusServiceUnavailable, "upstream dependency unavailable")
		default:
			writeError(w, http.StatusInternalServerError, "search failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleHealth godoc
// @Summary      Health check
// @Description  Returns component statuses and the rolling performance snapshot.
// @Description  503 only when a required dependency (database) is down; optional
// @Description  dependency impairment reports 200 with a degraded status.
// @Tags         Health
// @Produce      json
// @Success      200  {object}  domain.HealthReport
// @Failure      503  {object}  domain.HealthReport
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.healthService.Report(r.Context())

	status := http.StatusOK
	if report.Status == domain.StatusUnavailable {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

// handleVersion godoc
// @Summary      Get API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

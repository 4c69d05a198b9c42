package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hiresignal-labs/hiresignal-core/internal/core/domain"
	"github.com/hiresignal-labs/hiresignal-core/internal/core/ports/driven"
)

// Ensure TrajectoryClient implements TrajectoryPredictor
var _ driven.TrajectoryPredictor = (*TrajectoryClient)(nil)

// TrajectoryClient calls the career-trajectory inference service. It only
// runs in shadow mode, so its timeout is hard and its failures never reach
// the caller's response.
type TrajectoryClient struct {
	baseURL    string
	httpClient *http.Client
}

// TrajectoryConfig holds trajectory service connection configuration
type TrajectoryConfig struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultTrajectoryConfig returns sensible defaults
func DefaultTrajectoryConfig(baseURL string) TrajectoryConfig {
	return TrajectoryConfig{
		BaseURL: baseURL,
		Timeout: 300 * time.Millisecond,
	}
}

// NewTrajectoryClient creates an HTTP trajectory inference client
func NewTrajectoryClient(cfg TrajectoryConfig) *TrajectoryClient {
	return &TrajectoryClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type trajectoryRequest struct {
	Candidates []trajectoryCandidate `json:"candidates"`
}

type trajectoryCandidate struct {
	CandidateID     string   `json:"candidateId"`
	Seniority       string   `json:"seniority"`
	YearsExperience int      `json:"yearsExperience"`
	CompanyHistory  []string `json:"companyHistory"`
}

type trajectoryResponse struct {
	Predictions []driven.TrajectoryPrediction `json:"predictions"`
}

// Predict returns trajectory fit estimates for the given candidates
func (c *TrajectoryClient) Predict(ctx context.Context, rows []*domain.CandidateRow) ([]driven.TrajectoryPrediction, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	reqBody := trajectoryRequest{Candidates: make([]trajectoryCandidate, 0, len(rows))}
	for _, row := range rows {
		reqBody.Candidates = append(reqBody.Candidates, trajectoryCandidate{
			CandidateID:     row.CandidateID,
			Seniority:       row.Seniority,
			YearsExperience: row.YearsExperience,
			CompanyHistory:  row.CompanyHistory,
		})
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal trajectory request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build trajectory request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: trajectory request failed: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: trajectory inference failed: %s - %s", domain.ErrServiceUnavailable, resp.Status, string(respBody))
	}

	var parsed trajectoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode trajectory response: %w", err)
	}

	return parsed.Predictions, nil
}

// HealthCheck verifies the trajectory service is reachable
func (c *TrajectoryClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("trajectory health check failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("trajectory health check failed: %s", resp.Status)
	}
	return nil
}

// Close releases resources
func (c *TrajectoryClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

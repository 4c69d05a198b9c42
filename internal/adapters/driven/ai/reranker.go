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

// Ensure RerankClient implements RerankService
var _ driven.RerankService = (*RerankClient)(nil)

// RerankClient calls the external reranking model over HTTP. The model scores
// query/candidate pairs together and may attach natural-language match reasons.
type RerankClient struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
}

// RerankConfig holds rerank service connection configuration
type RerankConfig struct {
	// BaseURL is the rerank endpoint (e.g. http://localhost:9200)
	BaseURL string

	// Model is the rerank model identifier
	Model string

	// APIKey is optional bearer auth
	APIKey string

	// Timeout bounds each HTTP request. Kept strict; a slow reranker is
	// treated the same as a broken one.
	Timeout time.Duration
}

// DefaultRerankConfig returns sensible defaults
func DefaultRerankConfig(baseURL string) RerankConfig {
	return RerankConfig{
		BaseURL: baseURL,
		Model:   "rerank-v2",
		Timeout: 400 * time.Millisecond,
	}
}

// NewRerankClient creates an HTTP rerank client
func NewRerankClient(cfg RerankConfig) *RerankClient {
	return &RerankClient{
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// rerankRequest is the request body for the rerank API
type rerankRequest struct {
	Model      string                   `json:"model"`
	JobContext string                   `json:"jobContext"`
	Candidates []driven.RerankCandidate `json:"candidates"`
}

// rerankResponse is the response from the rerank API
type rerankResponse struct {
	Results []driven.RerankJudgement `json:"results"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Rerank scores the candidate set against the job context
func (c *RerankClient) Rerank(ctx context.Context, jobContext string, candidates []driven.RerankCandidate) ([]driven.RerankJudgement, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(rerankRequest{
		Model:      c.model,
		JobContext: jobContext,
		Candidates: candidates,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rerank request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/rerank", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build rerank request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: rerank request failed: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: rerank failed: %s - %s", domain.ErrServiceUnavailable, resp.Status, string(respBody))
	}

	var parsed rerankResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode rerank response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("%w: rerank error: %s", domain.ErrServiceUnavailable, parsed.Error.Message)
	}

	return parsed.Results, nil
}

// HealthCheck verifies the rerank service is reachable
func (c *RerankClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("rerank health check failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("rerank health check failed: %s", resp.Status)
	}
	return nil
}

// Close releases resources
func (c *RerankClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

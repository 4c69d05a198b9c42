// Package runtime holds the registry of swappable external AI services.
// Replaces process-wide singletons: one registry is constructed at startup
// and injected into every component that needs a dependency.
package runtime

import (
	"sync"

	"github.com/hiresignal-labs/hiresignal-core/internal/core/ports/driven"
)

// Services holds references to dynamically configurable services.
// The embedding, rerank and trajectory clients can be replaced at runtime
// (e.g. on credential rotation). Thread-safe for concurrent access.
type Services struct {
	mu sync.RWMutex

	embeddingService driven.EmbeddingService
	rerankService    driven.RerankService
	trajectoryClient driven.TrajectoryPredictor
}

// NewServices creates a new Services registry
func NewServices() *Services {
	return &Services{}
}

// EmbeddingService returns the current embedding service (may be nil)
func (s *Services) EmbeddingService() driven.EmbeddingService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.embeddingService
}

// RerankService returns the current rerank service (may be nil)
func (s *Services) RerankService() driven.RerankService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rerankService
}

// TrajectoryClient returns the current trajectory predictor (may be nil)
func (s *Services) TrajectoryClient() driven.TrajectoryPredictor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trajectoryClient
}

// SetEmbeddingService updates the embedding service, closing the old one.
func (s *Services) SetEmbeddingService(svc driven.EmbeddingService) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.embeddingService != nil {
		_ = s.embeddingService.Close()
	}
	s.embeddingService = svc
}

// SetRerankService updates the rerank service, closing the old one.
func (s *Services) SetRerankService(svc driven.RerankService) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rerankService != nil {
		_ = s.rerankService.Close()
	}
	s.rerankService = svc
}

// SetTrajectoryClient updates the trajectory predictor, closing the old one.
func (s *Services) SetTrajectoryClient(svc driven.TrajectoryPredictor) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.trajectoryClient != nil {
		_ = s.trajectoryClient.Close()
	}
	s.trajectoryClient = svc
}

// CanRerank reports whether a rerank service is configured.
func (s *Services) CanRerank() bool {
	return s.RerankService() != nil
}

// Close shuts down all services
func (s *Services) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.embeddingService != nil {
		_ = s.embeddingService.Close()
		s.embeddingService = nil
	}
	if s.rerankService != nil {
		_ = s.rerankService.Close()
		s.rerankService = nil
	}
	if s.trajectoryClient != nil {
		_ = s.trajectoryClient.Close()
		s.trajectoryClient = nil
	}
	return nil
}

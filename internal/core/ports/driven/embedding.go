package driven

import "context"

// EmbeddingService generates embeddings for queries (external model service)
type EmbeddingService interface {
	// EmbedQuery generates an embedding for a single search query
	EmbedQuery(ctx context.Context, query string) ([]float32, error)

	// Dimensions returns the embedding dimension for this model
	Dimensions() int

	// Model returns the model identifier
	Model() string

	// HealthCheck verifies the service is reachable
	HealthCheck(ctx context.Context) error

	// Close releases resources
	Close() error
}

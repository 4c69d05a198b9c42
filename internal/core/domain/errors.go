package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrTenantRequired indicates the request carried no tenant identifier
	ErrTenantRequired = errors.New("tenant required")

	// ErrEmptyQuery indicates neither free text nor structured filters were given
	ErrEmptyQuery = errors.New("query or filters required")

	// ErrUnknownSignal indicates a weight override names a signal that does not exist
	ErrUnknownSignal = errors.New("unknown signal")

	// ErrEmbeddingUnavailable indicates the embedding dependency failed; fatal to
	// the request since no query vector can be produced
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrDatabaseUnavailable indicates the candidate store cannot be reached
	ErrDatabaseUnavailable = errors.New("database unavailable")

	// ErrCircuitOpen indicates a call was skipped because the breaker is open
	ErrCircuitOpen = errors.New("circuit open")

	// ErrDependencyTimeout indicates an external call exceeded its deadline.
	// Distinct from explicit error responses so telemetry can tell slow from broken.
	ErrDependencyTimeout = errors.New("dependency timeout")

	// ErrServiceUnavailable indicates an external AI service could not be reached
	ErrServiceUnavailable = errors.New("service unavailable")
)

// IsValidationError reports whether err is client-caused and should map to a 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrTenantRequired) ||
		errors.Is(err, ErrEmptyQuery) ||
		errors.Is(err, ErrUnknownSignal)
}

// IsFatalDependencyError reports whether err means the request cannot produce
// results at all. Degradable dependencies (rerank, trajectory) never surface here.
func IsFatalDependencyError(err error) bool {
	return errors.Is(err, ErrEmbeddingUnavailable) ||
		errors.Is(err, ErrDatabaseUnavailable)
}

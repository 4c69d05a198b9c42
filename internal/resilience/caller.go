package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/hiresignal-labs/hiresignal-core/internal/core/domain"
)

// CallerConfig parameterizes a resilient caller for one dependency.
type CallerConfig struct {
	// Timeout bounds each attempt.
	Timeout time.Duration

	// MaxRetries is the number of additional attempts after the first.
	MaxRetries int

	// Backoff is the fixed delay between attempts.
	Backoff time.Duration
}

// Caller wraps calls to one external dependency with a per-attempt timeout,
// a small fixed-backoff retry budget, and circuit-breaker accounting. The
// same wrapper serves the embedding, rerank and trajectory clients.
type Caller struct {
	cfg     CallerConfig
	breaker *Breaker
}

// NewCaller creates a caller. breaker may be nil for dependencies that retry
// but never trip a circuit (the embedding path, whose failure is fatal to the
// request rather than degradable).
func NewCaller(cfg CallerConfig, breaker *Breaker) *Caller {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 100 * time.Millisecond
	}
	return &Caller{cfg: cfg, breaker: breaker}
}

// Breaker returns the breaker guarding this caller, or nil.
func (c *Caller) Breaker() *Breaker { return c.breaker }

// Do runs fn with timeout, retries and breaker accounting. A breaker in the
// open state short-circuits with domain.ErrCircuitOpen before any network
// attempt. Timeouts are surfaced as domain.ErrDependencyTimeout so they count
// toward breaker thresholds distinctly from explicit error responses.
func (c *Caller) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if c.breaker != nil && !c.breaker.Allow() {
		return domain.ErrCircuitOpen
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				// Caller-side abort, not a dependency failure: no breaker
				// accounting.
				return ctx.Err()
			case <-time.After(c.cfg.Backoff):
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		err := fn(attemptCtx)
		cancel()

		if err == nil {
			if c.breaker != nil {
				c.breaker.RecordSuccess()
			}
			return nil
		}
		if errors.Is(err, context.DeadlineExceeded) {
			err = domain.ErrDependencyTimeout
		}
		lastErr = err
	}

	if c.breaker != nil {
		c.breaker.RecordFailure()
	}
	return lastErr
}

// Package resilience provides the shared failure-handling primitives wrapped
// around every optional external dependency: a three-state circuit breaker
// and a caller combining timeout, retry and breaker accounting.
package resilience

import (
	"sync"
	"time"

	"github.com/hiresignal-labs/hiresignal-core/internal/telemetry"
)

// BreakerState is the circuit breaker state.
type BreakerState string

const (
	StateClosed   BreakerState = "closed"
	StateOpen     BreakerState = "open"
	StateHalfOpen BreakerState = "half-open"
)

// BreakerConfig configures a circuit breaker.
type BreakerConfig struct {
	// Name labels the guarded dependency in transition metrics.
	Name string

	// FailureThreshold is the consecutive-failure count that opens the breaker.
	FailureThreshold int

	// Cooldown is how long the breaker stays open before allowing one probe.
	Cooldown time.Duration
}

// DefaultBreakerConfig returns sensible defaults.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 3,
		Cooldown:         30 * time.Second,
	}
}

// Breaker is a three-state circuit breaker. One instance models the health of
// one dependency and is shared across all requests; all transitions happen
// under a single mutex.
type Breaker struct {
	mu sync.Mutex

	cfg          BreakerConfig
	state        BreakerState
	failureCount int
	openedAt     time.Time
	probing      bool

	now func() time.Time
}

// NewBreaker creates a closed breaker.
func NewBreaker(cfg BreakerConfig) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = DefaultBreakerConfig().FailureThreshold
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = DefaultBreakerConfig().Cooldown
	}
	if cfg.Name == "" {
		cfg.Name = "dependency"
	}
	return &Breaker{
		cfg:   cfg,
		state: StateClosed,
		now:   time.Now,
	}
}

// Allow reports whether a call may proceed. In the open state it returns
// false until the cooldown elapses, then transitions to half-open and lets
// exactly one probe through.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		return true
	case StateOpen:
		if b.now().Sub(b.openedAt) < b.cfg.Cooldown {
			return false
		}
		b.transition(StateHalfOpen)
		b.probing = true
		return true
	case StateHalfOpen:
		if b.probing {
			return false
		}
		b.probing = true
		return true
	}
	return false
}

// RecordSuccess records a successful call. In half-open state this closes the
// breaker and resets the failure count.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failureCount = 0
	b.probing = false
	if b.state != StateClosed {
		b.transition(StateClosed)
	}
}

// RecordFailure records a failed call. Reaching the threshold in closed
// state, or any failure in half-open state, opens the breaker and restarts
// the cooldown.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.probing = false
	switch b.state {
	case StateHalfOpen:
		b.open()
	case StateClosed:
		b.failureCount++
		if b.failureCount >= b.cfg.FailureThreshold {
			b.open()
		}
	}
}

func (b *Breaker) open() {
	b.transition(StateOpen)
	b.openedAt = b.now()
}

// transition must be called with the mutex held.
func (b *Breaker) transition(to BreakerState) {
	b.state = to
	telemetry.BreakerTransitionsTotal.WithLabelValues(b.cfg.Name, string(to)).Inc()
}

// State returns the current state without side effects.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// FailureCount returns the current consecutive failure count.
func (b *Breaker) FailureCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failureCount
}

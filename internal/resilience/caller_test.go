package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hiresignal-labs/hiresignal-core/internal/core/domain"
)

func TestCaller_RetriesUntilSuccess(t *testing.T) {
	c := NewCaller(CallerConfig{Timeout: time.Second, MaxRetries: 2, Backoff: time.Millisecond}, nil)

	calls := 0
	err := c.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestCaller_ExhaustsRetriesAndReturnsLastError(t *testing.T) {
	c := NewCaller(CallerConfig{Timeout: time.Second, MaxRetries: 1, Backoff: time.Millisecond}, nil)

	wantErr := errors.New("boom")
	calls := 0
	err := c.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return wantErr
	})

	if !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want %v", err, wantErr)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestCaller_MapsDeadlineToDependencyTimeout(t *testing.T) {
	c := NewCaller(CallerConfig{Timeout: 10 * time.Millisecond, MaxRetries: 0, Backoff: time.Millisecond}, nil)

	err := c.Do(context.Background(), func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	if !errors.Is(err, domain.ErrDependencyTimeout) {
		t.Fatalf("error = %v, want ErrDependencyTimeout", err)
	}
}

func TestCaller_OpenBreakerShortCircuits(t *testing.T) {
	b := NewBreaker(BreakerConfig{FailureThreshold: 1, Cooldown: time.Hour})
	c := NewCaller(CallerConfig{Timeout: time.Second, MaxRetries: 0, Backoff: time.Millisecond}, b)

	if err := c.Do(context.Background(), func(ctx context.Context) error {
		return errors.New("boom")
	}); err == nil {
		t.Fatal("expected the first call to fail")
	}

	calls := 0
	err := c.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	if !errors.Is(err, domain.ErrCircuitOpen) {
		t.Fatalf("error = %v, want ErrCircuitOpen", err)
	}
	if calls != 0 {
		t.Errorf("function ran %d times behind an open breaker", calls)
	}
}

func TestCaller_SuccessRecordsOnBreaker(t *testing.T) {
	b := NewBreaker(BreakerConfig{FailureThreshold: 2, Cooldown: time.Hour})
	c := NewCaller(CallerConfig{Timeout: time.Second, MaxRetries: 0, Backoff: time.Millisecond}, b)

	_ = c.Do(context.Background(), func(ctx context.Context) error { return errors.New("boom") })
	if b.FailureCount() != 1 {
		t.Fatalf("failure count = %d, want 1", b.FailureCount())
	}

	_ = c.Do(context.Background(), func(ctx context.Context) error { return nil })
	if b.FailureCount() != 0 {
		t.Errorf("failure count after success = %d, want 0", b.FailureCount())
	}
}

func TestCaller_RetryBudgetCountsAsOneBreakerFailure(t *testing.T) {
	b := NewBreaker(BreakerConfig{FailureThreshold: 3, Cooldown: time.Hour})
	c := NewCaller(CallerConfig{Timeout: time.Second, MaxRetries: 2, Backoff: time.Millisecond}, b)

	_ = c.Do(context.Background(), func(ctx context.Context) error { return errors.New("boom") })

	if b.FailureCount() != 1 {
		t.Errorf("failure count = %d, want 1 per exhausted call", b.FailureCount())
	}
	if b.State() != StateClosed {
		t.Errorf("state = %s, want closed", b.State())
	}
}

func TestCaller_CancelDuringBackoffSkipsBreakerAccounting(t *testing.T) {
	b := NewBreaker(BreakerConfig{FailureThreshold: 1, Cooldown: time.Hour})
	c := NewCaller(CallerConfig{Timeout: time.Second, MaxRetries: 3, Backoff: time.Hour}, b)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	errs := make(chan error, 1)
	go func() {
		errs <- c.Do(ctx, func(ctx context.Context) error {
			calls++
			return errors.New("boom")
		})
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	var err error
	select {
	case err = <-errs:
	case <-time.After(time.Second):
		t.Fatal("caller did not return after cancellation during backoff")
	}

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if b.FailureCount() != 0 {
		t.Errorf("failure count = %d, a client abort must not charge the breaker", b.FailureCount())
	}
	if b.State() != StateClosed {
		t.Errorf("state = %s, want closed", b.State())
	}
}

func TestCaller_StopsRetryingOnCanceledContext(t *testing.T) {
	c := NewCaller(CallerConfig{Timeout: time.Second, MaxRetries: 5, Backoff: 50 * time.Millisecond}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	errs := make(chan error, 1)
	go func() {
		errs <- c.Do(ctx, func(ctx context.Context) error {
			calls++
			return errors.New("boom")
		})
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-errs:
		if err == nil {
			t.Fatal("expected an error after cancellation")
		}
	case <-time.After(time.Second):
		t.Fatal("caller kept retrying after context cancellation")
	}
}

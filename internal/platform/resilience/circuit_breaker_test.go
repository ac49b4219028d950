package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreakerOpensAtThreshold(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(3, 15*time.Second, 1)
	for i := 0; i < 2; i++ {
		b.RecordFailure()
		if err := b.Allow(); err != nil {
			t.Fatalf("breaker must stay closed below threshold, failure %d: %v", i+1, err)
		}
	}

	b.RecordFailure()
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("got %v, want ErrCircuitOpen", err)
	}
	if got := b.State(); got != CircuitStateOpen {
		t.Fatalf("state = %q, want open", got)
	}
}

func TestCircuitBreakerSuccessResetsCount(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(2, 15*time.Second, 1)
	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()
	if err := b.Allow(); err != nil {
		t.Fatalf("success must reset the failure count: %v", err)
	}
}

func TestCircuitBreakerHalfOpenRecovery(t *testing.T) {
	t.Parallel()

	current := time.Now()
	b := NewCircuitBreaker(1, 10*time.Second, 1)
	b.now = func() time.Time { return current }

	b.RecordFailure()
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("got %v, want ErrCircuitOpen", err)
	}

	current = current.Add(11 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("half-open must admit a trial request: %v", err)
	}
	b.RecordSuccess()

	if got := b.State(); got != CircuitStateClosed {
		t.Fatalf("state = %q, want closed after trial success", got)
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("closed breaker must allow: %v", err)
	}
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	t.Parallel()

	current := time.Now()
	b := NewCircuitBreaker(1, 10*time.Second, 1)
	b.now = func() time.Time { return current }

	b.RecordFailure()
	current = current.Add(11 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("half-open must admit a trial request: %v", err)
	}
	b.RecordFailure()

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("got %v, want ErrCircuitOpen after trial failure", err)
	}
}

func TestNormalizeCircuitBreakerConfig(t *testing.T) {
	t.Parallel()

	got := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{Enabled: true})
	want := DefaultCircuitBreakerConfig()
	if got.FailureThreshold != want.FailureThreshold ||
		got.OpenTimeout != want.OpenTimeout ||
		got.HalfOpenMaxReq != want.HalfOpenMaxReq {
		t.Fatalf("normalized = %+v, want defaults %+v", got, want)
	}
}

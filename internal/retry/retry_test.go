package retry

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

type statusError struct {
	status int
}

func (e *statusError) Error() string   { return fmt.Sprintf("api error: status %d", e.status) }
func (e *statusError) HTTPStatus() int { return e.status }

func testPolicy(delays *[]time.Duration) *Policy {
	p := DefaultPolicy()
	p.sleep = func(d time.Duration) { *delays = append(*delays, d) }
	return p
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) {
		t.Error("nil error should not be retryable")
	}
	if !Retryable(errors.New("connection reset")) {
		t.Error("error without status should be retryable")
	}
	if !Retryable(&statusError{status: 429}) {
		t.Error("rate limit should be retryable")
	}
	if !Retryable(&statusError{status: 502}) {
		t.Error("5xx should be retryable")
	}
	if Retryable(&statusError{status: 403}) {
		t.Error("non-429 4xx should be terminal")
	}
	if Retryable(fmt.Errorf("create thread: %w", &statusError{status: 404})) {
		t.Error("wrapped 4xx should be terminal")
	}
}

func TestRunExhaustsAttempts(t *testing.T) {
	var delays []time.Duration
	p := testPolicy(&delays)

	calls := 0
	err := p.Run("test", func() error {
		calls++
		return &statusError{status: 500}
	})

	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if calls != 4 {
		t.Errorf("expected 4 attempts, got %d", calls)
	}
	if len(delays) != 3 {
		t.Fatalf("expected 3 inter-attempt delays, got %d", len(delays))
	}
	for i, d := range delays {
		lo := 600 * time.Millisecond << uint(i)
		hi := lo + 300*time.Millisecond
		if d < lo || d >= hi {
			t.Errorf("delay %d = %v, want [%v, %v)", i, d, lo, hi)
		}
	}
}

func TestRunTerminalShortCircuit(t *testing.T) {
	var delays []time.Duration
	p := testPolicy(&delays)

	calls := 0
	err := p.Run("test", func() error {
		calls++
		return &statusError{status: 404}
	})

	if err == nil {
		t.Fatal("expected terminal error")
	}
	if calls != 1 {
		t.Errorf("expected exactly 1 attempt, got %d", calls)
	}
	if len(delays) != 0 {
		t.Errorf("expected no sleeps, got %d", len(delays))
	}
}

func TestRunEventualSuccess(t *testing.T) {
	var delays []time.Duration
	p := testPolicy(&delays)

	calls := 0
	err := p.Run("test", func() error {
		calls++
		if calls < 3 {
			return &statusError{status: 429}
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

// Package retry wraps outbound platform calls with bounded
// exponential-backoff retry.
package retry

import (
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"time"
)

// Policy controls how failed platform calls are retried.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Jitter      time.Duration

	sleep func(time.Duration)
}

// DefaultPolicy returns the standard policy: 4 attempts, 600ms base
// delay doubling per attempt, up to 300ms of jitter. Worst case is a
// few seconds, enough to absorb rate limits and network blips without
// amplifying load.
func DefaultPolicy() *Policy {
	return &Policy{
		MaxAttempts: 4,
		BaseDelay:   600 * time.Millisecond,
		Jitter:      300 * time.Millisecond,
		sleep:       time.Sleep,
	}
}

// statusCarrier is implemented by errors that carry an HTTP status from
// the platform API.
type statusCarrier interface {
	HTTPStatus() int
}

// Retryable classifies an error. Rate limiting (429) and anything
// without a 4xx status is retryable; other 4xx responses are terminal.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	var sc statusCarrier
	if !errors.As(err, &sc) {
		return true
	}
	status := sc.HTTPStatus()
	if status == http.StatusTooManyRequests {
		return true
	}
	return status < 400 || status >= 500
}

// Run attempts fn up to MaxAttempts times, sleeping with exponential
// backoff plus jitter between attempts. Terminal errors abort
// immediately; exhausting all attempts returns the last error.
func (p *Policy) Run(label string, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !Retryable(err) {
			slog.Warn("terminal platform error", "op", label, "error", err)
			return err
		}
		if attempt < p.MaxAttempts-1 {
			p.sleep(p.backoff(attempt))
		}
	}
	slog.Error("retries exhausted", "op", label, "attempts", p.MaxAttempts, "error", lastErr)
	return lastErr
}

// backoff returns the delay after the given failed attempt (0-indexed):
// BaseDelay * 2^attempt plus uniform jitter.
func (p *Policy) backoff(attempt int) time.Duration {
	delay := p.BaseDelay << uint(attempt)
	if p.Jitter > 0 {
		delay += time.Duration(rand.Int63n(int64(p.Jitter)))
	}
	return delay
}

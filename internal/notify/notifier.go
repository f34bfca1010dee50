// Package notify emits a repeating "still working" indication for
// operations that run long. Best-effort UX only; update failures are
// swallowed.
package notify

import (
	"sync"
	"time"

	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/types"
)

// Notifier decorates slow operations with a wait ticker.
type Notifier struct {
	// Threshold is how long an operation may run before the first
	// indication is emitted.
	Threshold time.Duration
	// Interval is the cadence of subsequent indications.
	Interval time.Duration
}

// New returns a Notifier with the standard 6s threshold and 2s cadence.
func New() *Notifier {
	return &Notifier{
		Threshold: 6 * time.Second,
		Interval:  2 * time.Second,
	}
}

var dots = [...]string{".", "..", "..."}

// Start begins watching the operation answered by rsp. The returned
// stop function cancels the ticker and must be called on every exit
// path; nothing is emitted after it returns. Calling stop more than
// once is safe.
func (n *Notifier) Start(rsp types.Responder) (stop func()) {
	done := make(chan struct{})

	go func() {
		delay := time.NewTimer(n.Threshold)
		defer delay.Stop()
		select {
		case <-done:
			return
		case <-delay.C:
		}

		tick := time.NewTicker(n.Interval)
		defer tick.Stop()
		for i := 0; ; i++ {
			// The race between a firing timer and cancellation must favor
			// cancellation: re-check before each emission.
			select {
			case <-done:
				return
			default:
			}
			_ = rsp.Edit("⏳ Please wait"+dots[i%len(dots)]+"… – slow connection or server load.", nil)

			select {
			case <-done:
				return
			case <-tick.C:
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

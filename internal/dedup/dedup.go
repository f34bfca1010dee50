// Package dedup collapses duplicate delivery of inbound events.
// Delivery from the platform is at-least-once; a short-lived seen-set
// is cheaper than making every handler naturally idempotent.
package dedup

import (
	"sync"
	"time"

	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/types"
)

// DefaultRetention matches the platform's redelivery window: after it
// elapses an identical identifier is treated as new.
const DefaultRetention = 60 * time.Second

// Deduplicator tracks recently seen event identifiers.
type Deduplicator struct {
	mu        sync.Mutex
	retention time.Duration
	seen      map[types.EventID]time.Time
	now       func() time.Time
}

// New creates a Deduplicator with the given retention window.
func New(retention time.Duration) *Deduplicator {
	return &Deduplicator{
		retention: retention,
		seen:      make(map[types.EventID]time.Time),
		now:       time.Now,
	}
}

// Seen reports whether id was already recorded within the retention
// window, marking it seen on first call.
func (d *Deduplicator) Seen(id types.EventID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	at, ok := d.seen[id]
	if ok && now.Sub(at) < d.retention {
		return true
	}
	d.seen[id] = now
	return false
}

// Sweep drops expired records and returns how many were removed.
func (d *Deduplicator) Sweep() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	removed := 0
	for id, at := range d.seen {
		if now.Sub(at) >= d.retention {
			delete(d.seen, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked identifiers, expired or not.
func (d *Deduplicator) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}

// Package gateway funnels inbound platform events through the
// deduplication gate into per-user processing lanes.
package gateway

import (
	"log/slog"

	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/dedup"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/types"
)

// Gateway gates and queues inbound events.
type Gateway struct {
	dedup *dedup.Deduplicator
	Queue *Queue
}

// New creates a Gateway with the given concurrency limit for
// simultaneous event processing across users.
func New(d *dedup.Deduplicator, maxConcurrent int64) *Gateway {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &Gateway{
		dedup: d,
		Queue: NewQueue(maxConcurrent),
	}
}

// HandleInbound drops redelivered events and enqueues the rest on the
// user's lane. Duplicates are dropped silently with no reply.
func (g *Gateway) HandleInbound(ev *types.InboundEvent) error {
	if ev.ID != "" && g.dedup.Seen(ev.ID) {
		slog.Debug("duplicate event dropped", "event_id", ev.ID, "kind", ev.Kind.String())
		return nil
	}
	return g.Queue.Enqueue(NewRun(ev))
}

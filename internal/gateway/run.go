package gateway

import (
	"time"

	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/types"
)

// Run tracks a single processing of an inbound event.
type Run struct {
	ID        types.RunID
	UserID    types.UserID
	Event     *types.InboundEvent
	CreatedAt time.Time
}

// NewRun wraps an inbound event for queueing.
func NewRun(ev *types.InboundEvent) *Run {
	return &Run{
		ID:        types.NewRunID(),
		UserID:    ev.UserID,
		Event:     ev,
		CreatedAt: time.Now(),
	}
}

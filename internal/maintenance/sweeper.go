// Package maintenance runs the periodic housekeeping sweeps: expiring
// processed-event records and reaping idle sessions.
package maintenance

import (
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/dedup"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/session"
)

// SessionIdleTimeout is how long a session may sit untouched before
// the reaper removes it. Memory pressure is bounded by active users,
// so this is generous.
const SessionIdleTimeout = 2 * time.Hour

// Sweeper schedules the housekeeping jobs on a cron ticker.
type Sweeper struct {
	dedup    *dedup.Deduplicator
	sessions *session.Store
	cron     *cron.Cron
}

// New creates a Sweeper for the given deduplicator and session store.
func New(d *dedup.Deduplicator, sessions *session.Store) *Sweeper {
	return &Sweeper{
		dedup:    d,
		sessions: sessions,
		cron:     cron.New(),
	}
}

// Start registers the sweep jobs and starts the ticker: the dedup set
// is swept every minute, idle sessions every ten.
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc("* * * * *", s.sweepDedup); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("*/10 * * * *", s.reapSessions); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop stops the cron ticker.
func (s *Sweeper) Stop() {
	s.cron.Stop()
}

func (s *Sweeper) sweepDedup() {
	if removed := s.dedup.Sweep(); removed > 0 {
		slog.Debug("swept processed events", "removed", removed, "remaining", s.dedup.Len())
	}
}

func (s *Sweeper) reapSessions() {
	if removed := s.sessions.Reap(SessionIdleTimeout); removed > 0 {
		slog.Info("reaped idle sessions", "removed", removed, "remaining", s.sessions.Len())
	}
}

package maintenance

import (
	"testing"
	"time"

	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/dedup"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/session"
)

func TestStartAndStop(t *testing.T) {
	s := New(dedup.New(time.Minute), session.NewStore())
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	s.Stop()
}

func TestSweepJobs(t *testing.T) {
	d := dedup.New(time.Nanosecond)
	st := session.NewStore()
	s := New(d, st)

	d.Seen("ev-1")
	time.Sleep(time.Millisecond)
	s.sweepDedup()
	if d.Len() != 0 {
		t.Errorf("expected dedup set swept, %d left", d.Len())
	}

	st.Create("u1")
	s.reapSessions()
	if st.Len() != 1 {
		t.Error("expected fresh session to survive reaping")
	}
}

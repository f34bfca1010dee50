// Package session owns the in-memory session map. All session mutation
// goes through the store so the workflow invariants are enforced in one
// place; callers only ever see snapshots.
package session

import (
	"sync"
	"time"

	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/types"
)

// CaptureState is the outcome of an intake capture attempt.
type CaptureState int

const (
	CaptureNoMatch CaptureState = iota
	CaptureDuplicate
	CaptureDone
)

// BeginState is the outcome of a submission-begin attempt.
type BeginState int

const (
	BeginNoSession BeginState = iota
	BeginInProgress
	BeginAlreadyDone
	BeginStarted
)

// Store maps user identity to the user's active session. One active
// session per user; starting the wizard again abandons the old one.
type Store struct {
	mu     sync.Mutex
	byUser map[types.UserID]*types.Session
	now    func() time.Time
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		byUser: make(map[types.UserID]*types.Session),
		now:    time.Now,
	}
}

// Create starts a fresh session for user, overwriting any existing one.
func (st *Store) Create(user types.UserID) types.Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	s := &types.Session{
		Step:      types.StepKind,
		CreatedAt: now,
		UpdatedAt: now,
	}
	st.byUser[user] = s
	return *s
}

// Get returns a snapshot of the user's session.
func (st *Store) Get(user types.UserID) (types.Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.byUser[user]
	if !ok {
		return types.Session{}, false
	}
	return *s, true
}

// Mutate applies fn to the user's session while holding the store lock.
// fn must not block. Finalized sessions are not mutated. Reports
// whether fn ran.
func (st *Store) Mutate(user types.UserID, fn func(*types.Session)) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.byUser[user]
	if !ok || s.Finalized {
		return false
	}
	fn(s)
	s.UpdatedAt = st.now()
	return true
}

// RecordIntakeThread links an intake thread to the user's session.
func (st *Store) RecordIntakeThread(user types.UserID, thread types.ChannelID) bool {
	return st.Mutate(user, func(s *types.Session) {
		s.IntakeThreadID = thread
	})
}

// CaptureIntake finds the live session owning thread and captures the
// given attachments and links into it exactly once. The captured flag
// flips before the caller performs any platform call, so overlapping
// messages in the same thread cannot both capture.
func (st *Store) CaptureIntake(thread types.ChannelID, atts []types.Attachment, links []string) (types.UserID, CaptureState) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for user, s := range st.byUser {
		if s.IntakeThreadID != thread || s.Finalized {
			continue
		}
		if s.IntakeCaptured {
			return user, CaptureDuplicate
		}
		s.Attachments = atts
		s.Links = links
		s.IntakeCaptured = true
		s.UpdatedAt = st.now()
		return user, CaptureDone
	}
	return "", CaptureNoMatch
}

// BeginSubmission marks the user's session as posting and records the
// submitted version. Duplicate finalize requests are answered from the
// session state: an existing result thread, or an in-progress notice.
func (st *Store) BeginSubmission(user types.UserID, version string) (types.ChannelID, BeginState) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.byUser[user]
	if !ok {
		return "", BeginNoSession
	}
	if s.Finalized {
		return s.ResultThreadID, BeginAlreadyDone
	}
	if s.SubmissionInProgress {
		return s.ResultThreadID, BeginInProgress
	}
	s.SubmissionInProgress = true
	s.Version = version
	s.UpdatedAt = st.now()
	return "", BeginStarted
}

// CompleteSubmission records the posted artifact and finalizes the
// session. The result thread is set at most once.
func (st *Store) CompleteSubmission(user types.UserID, thread types.ChannelID) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.byUser[user]
	if !ok || s.Finalized {
		return false
	}
	s.ResultThreadID = thread
	s.Finalized = true
	s.SubmissionInProgress = false
	s.UpdatedAt = st.now()
	return true
}

// AbortSubmission clears the posting guard after a failed submission,
// leaving the session retryable.
func (st *Store) AbortSubmission(user types.UserID) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if s, ok := st.byUser[user]; ok && !s.Finalized {
		s.SubmissionInProgress = false
		s.UpdatedAt = st.now()
	}
}

// FindByIntakeThread returns the owner of the live session linked to
// the given intake thread.
func (st *Store) FindByIntakeThread(thread types.ChannelID) (types.UserID, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for user, s := range st.byUser {
		if s.IntakeThreadID == thread && !s.Finalized {
			return user, true
		}
	}
	return "", false
}

// Reap removes sessions idle for longer than idleFor and returns how
// many were removed. Finalized sessions age out the same way so that
// duplicate finalize requests keep getting answered for a while.
func (st *Store) Reap(idleFor time.Duration) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	removed := 0
	for user, s := range st.byUser {
		if now.Sub(s.UpdatedAt) > idleFor {
			delete(st.byUser, user)
			removed++
		}
	}
	return removed
}

// Len returns the number of active sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.byUser)
}

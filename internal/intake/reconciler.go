// Package intake reconciles the media side-channel with the owning
// session. A dedicated thread collects one free-form message whose
// attachments and links are merged into the session exactly once.
package intake

import (
	"fmt"
	"log/slog"
	"regexp"

	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/retry"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/session"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/types"
)

var linkPattern = regexp.MustCompile(`(?i)\bhttps?://\S+`)

// Reconciler opens intake threads and captures their first message.
type Reconciler struct {
	sessions  *session.Store
	platform  types.Platform
	retry     *retry.Policy
	parent    types.ChannelID
	scanLinks bool
	panelJump string
}

// New creates a Reconciler. parent is the channel intake threads are
// created under; scanLinks controls whether message text is scanned
// for URLs (off: attachments only).
func New(sessions *session.Store, platform types.Platform, policy *retry.Policy, parent types.ChannelID, scanLinks bool, panelJump string) *Reconciler {
	return &Reconciler{
		sessions:  sessions,
		platform:  platform,
		retry:     policy,
		parent:    parent,
		scanLinks: scanLinks,
		panelJump: panelJump,
	}
}

// Open creates an intake thread for the user's session, records it on
// the session, and posts the instruction message. The thread reference
// is recorded before the instruction send so a fast first message still
// matches.
func (r *Reconciler) Open(user types.UserID, title string) (types.ChannelID, error) {
	name := threadName(title)

	var thread types.ChannelID
	err := r.retry.Run("intake_create", func() error {
		id, err := r.platform.CreateIntakeThread(r.parent, name, user)
		if err != nil {
			return err
		}
		thread = id
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("create intake thread: %w", err)
	}

	if !r.sessions.RecordIntakeThread(user, thread) {
		// Session vanished while the thread was being created.
		if cerr := r.platform.CloseThread(thread); cerr != nil {
			slog.Warn("close orphaned intake thread", "thread", thread, "error", cerr)
		}
		return "", fmt.Errorf("no live session for user %s", user)
	}

	instructions := fmt.Sprintf(
		"<@%s> Please post **ONE** message with your description **and** screenshots/videos/links.\n"+
			"The intake will **auto-close** after the first message.\n\n"+
			"Then go %s and click **Enter version**.",
		user, r.panelJump)
	if _, err := r.platform.SendMessage(thread, instructions); err != nil {
		slog.Warn("send intake instructions", "thread", thread, "error", err)
	}

	return thread, nil
}

// HandleMessage processes a message posted in some thread. If the
// thread is a live session's intake thread and nothing was captured
// yet, the message's attachments and links become the session's; later
// messages are discarded with a best-effort delete.
func (r *Reconciler) HandleMessage(msg *types.ThreadMessage) {
	if msg == nil || msg.FromBot {
		return
	}

	var links []string
	if r.scanLinks && msg.Content != "" {
		links = linkPattern.FindAllString(msg.Content, -1)
	}

	user, state := r.sessions.CaptureIntake(msg.ThreadID, msg.Attachments, links)
	switch state {
	case session.CaptureNoMatch:
		return
	case session.CaptureDuplicate:
		if err := r.platform.DeleteMessage(msg.ThreadID, msg.MessageID); err != nil {
			slog.Debug("delete late intake message", "thread", msg.ThreadID, "error", err)
		}
		return
	}

	slog.Info("intake captured",
		"user", user,
		"thread", msg.ThreadID,
		"attachments", len(msg.Attachments),
		"links", len(links),
	)

	confirm := fmt.Sprintf("✅ Thanks! Intake captured.\n↩️ Go %s and click **Enter version**.", r.panelJump)
	if _, err := r.platform.SendMessage(msg.ThreadID, confirm); err != nil {
		slog.Warn("send intake confirmation", "thread", msg.ThreadID, "error", err)
	}
	if err := r.platform.CloseThread(msg.ThreadID); err != nil {
		slog.Warn("close intake thread", "thread", msg.ThreadID, "error", err)
	}
}

// threadName builds the intake thread title, capped at 80 runes.
func threadName(title string) string {
	if title == "" {
		title = "Feedback"
	}
	name := "Intake – " + title
	runes := []rune(name)
	if len(runes) > 80 {
		name = string(runes[:80])
	}
	return name
}

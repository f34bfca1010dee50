// Package submit posts the finished feedback artifact. The pipeline is
// the only producer of result threads; its begin/complete/abort guard
// makes duplicate finalize requests informational instead of harmful.
package submit

import (
	"fmt"
	"log/slog"

	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/retry"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/session"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/types"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/wizard"
)

// At most this many attachments are carried into the artifact.
const maxAttachments = 10

const dismissHint = "✔ You can now **dismiss** these bot messages (bottom-right)."

// Pipeline builds and posts feedback artifacts.
type Pipeline struct {
	sessions *session.Store
	platform types.Platform
	retry    *retry.Policy
	forum    types.ChannelID
}

// New creates a Pipeline posting into the given forum channel.
func New(sessions *session.Store, platform types.Platform, policy *retry.Policy, forum types.ChannelID) *Pipeline {
	return &Pipeline{
		sessions: sessions,
		platform: platform,
		retry:    policy,
		forum:    forum,
	}
}

// Finalize handles the version modal submission carried by ev. The
// posting guard flips before any platform call; a duplicate request
// arriving while the artifact is in flight is answered without
// re-invoking the pipeline.
func (p *Pipeline) Finalize(ev *types.InboundEvent) {
	user := ev.UserID
	rsp := ev.Responder
	version := ev.Fields[wizard.FieldVersion]

	existing, state := p.sessions.BeginSubmission(user, version)
	switch state {
	case session.BeginNoSession:
		p.reply(rsp, "❌ No active feedback session. Start again from the panel.")
		return
	case session.BeginAlreadyDone:
		p.reply(rsp, fmt.Sprintf("✔ Feedback already exists: <#%s>", existing))
		p.followUp(rsp, dismissHint)
		return
	case session.BeginInProgress:
		p.reply(rsp, "⏳ Your feedback is being posted …")
		p.followUp(rsp, dismissHint)
		return
	}

	if err := p.platform.ValidateForum(p.forum); err != nil {
		// Config/permission problems are terminal and carry their own
		// remediation text.
		p.sessions.AbortSubmission(user)
		p.reply(rsp, "❌ "+err.Error())
		return
	}

	s, ok := p.sessions.Get(user)
	if !ok {
		p.sessions.AbortSubmission(user)
		p.reply(rsp, "❌ No active feedback session. Start again from the panel.")
		return
	}

	files := s.Attachments
	if len(files) > maxAttachments {
		files = files[:maxAttachments]
	}

	var thread types.ChannelID
	var starter types.MessageID
	err := p.retry.Run("forum_post", func() error {
		id, msg, err := p.platform.CreateForumPost(p.forum, ThreadTitle(&s), Body(user, &s), files)
		if err != nil {
			return err
		}
		thread = id
		starter = msg
		return nil
	})
	if err != nil {
		p.sessions.AbortSubmission(user)
		slog.Error("post feedback artifact", "user", user, "error", err)
		p.reply(rsp, "❌ Failed to post feedback. Please try again.")
		return
	}

	p.sessions.CompleteSubmission(user, thread)
	p.decorate(thread, starter, &s)

	controls := []types.Control{{
		Type:  types.ControlLink,
		Label: "Open thread",
		URL:   fmt.Sprintf("https://discord.com/channels/%s/%s", ev.GuildID, thread),
	}}
	if err := rsp.Edit(fmt.Sprintf("✔ Feedback created: <#%s>", thread), controls); err != nil {
		slog.Warn("edit finalize reply", "user", user, "error", err)
	}
	p.followUp(rsp, dismissHint)

	slog.Info("feedback posted", "user", user, "thread", thread)
}

// decorate applies the finishing touches to the posted thread: lock it,
// react with the kind/impact emoji, pin the starter. All best-effort.
func (p *Pipeline) decorate(thread types.ChannelID, starter types.MessageID, s *types.Session) {
	if err := p.platform.LockThread(thread); err != nil {
		slog.Warn("lock feedback thread", "thread", thread, "error", err)
	}
	if starter == "" {
		return
	}
	if kind, ok := wizard.KindOption(s.Kind); ok && kind.Emoji != "" {
		if err := p.platform.React(thread, starter, kind.Emoji); err != nil {
			slog.Debug("react kind emoji", "thread", thread, "error", err)
		}
	}
	if impact, ok := wizard.ImpactOption(s.Impact); ok && impact.Emoji != "" {
		if err := p.platform.React(thread, starter, impact.Emoji); err != nil {
			slog.Debug("react impact emoji", "thread", thread, "error", err)
		}
	}
	if err := p.platform.PinMessage(thread, starter); err != nil {
		slog.Debug("pin starter message", "thread", thread, "error", err)
	}
}

func (p *Pipeline) reply(rsp types.Responder, content string) {
	if err := rsp.Edit(content, nil); err != nil {
		slog.Warn("edit reply", "error", err)
	}
}

func (p *Pipeline) followUp(rsp types.Responder, content string) {
	if err := rsp.FollowUp(content); err != nil {
		slog.Debug("follow up", "error", err)
	}
}

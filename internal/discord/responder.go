// internal/discord/responder.go
package discord

import (
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/types"
)

// interactionResponder answers one interaction with ephemeral
// responses. Buttons living on the public panel defer into a new
// ephemeral reply; components on the ephemeral wizard message defer
// into an update of that message.
type interactionResponder struct {
	s *discordgo.Session
	i *discordgo.Interaction

	// ephemeralDefer selects DeferredChannelMessageWithSource over
	// DeferredMessageUpdate.
	ephemeralDefer bool

	mu    sync.Mutex
	acked bool
}

var _ types.Responder = (*interactionResponder)(nil)

func newResponder(s *discordgo.Session, i *discordgo.Interaction, ephemeralDefer bool) *interactionResponder {
	return &interactionResponder{s: s, i: i, ephemeralDefer: ephemeralDefer}
}

func (r *interactionResponder) Defer() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.acked {
		return nil
	}

	response := &discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredMessageUpdate}
	if r.ephemeralDefer {
		response = &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
		}
	}
	if err := r.s.InteractionRespond(r.i, response); err != nil {
		return wrapErr(err)
	}
	r.acked = true
	return nil
}

func (r *interactionResponder) Edit(content string, controls []types.Control) error {
	r.mu.Lock()
	acked := r.acked
	if !acked {
		r.acked = true
	}
	r.mu.Unlock()

	components := renderControls(controls)

	if !acked {
		err := r.s.InteractionRespond(r.i, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content:    content,
				Components: components,
				Flags:      discordgo.MessageFlagsEphemeral,
			},
		})
		return wrapErr(err)
	}

	_, err := r.s.InteractionResponseEdit(r.i, &discordgo.WebhookEdit{
		Content:    &content,
		Components: &components,
	})
	return wrapErr(err)
}

func (r *interactionResponder) Modal(m types.Modal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.acked {
		return nil
	}
	if err := r.s.InteractionRespond(r.i, renderModal(m)); err != nil {
		return wrapErr(err)
	}
	r.acked = true
	return nil
}

func (r *interactionResponder) FollowUp(content string) error {
	_, err := r.s.FollowupMessageCreate(r.i, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	return wrapErr(err)
}

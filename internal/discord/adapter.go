// Package discord adapts the bot's platform-neutral core to the
// Discord gateway: it normalizes interactions and thread messages into
// inbound events, renders control descriptors into message components,
// and implements the platform capability surface.
package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/gateway"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/types"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/wizard"
)

// NewSession builds a configured but unopened discordgo session. The
// message-content intent is privileged and only requested when link
// scanning is enabled.
func NewSession(token string, scanLinks bool) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentGuilds | discordgo.IntentGuildMessages
	if scanLinks {
		s.Identify.Intents |= discordgo.IntentMessageContent
	}
	return s, nil
}

// Adapter feeds Discord events into the gateway.
type Adapter struct {
	s     *discordgo.Session
	gw    *gateway.Gateway
	panel *Panel
}

func NewAdapter(s *discordgo.Session, gw *gateway.Gateway, panel *Panel) *Adapter {
	return &Adapter{s: s, gw: gw, panel: panel}
}

// Start registers the event handlers and opens the gateway connection.
func (a *Adapter) Start() error {
	a.s.AddHandler(a.onReady)
	a.s.AddHandler(a.onInteraction)
	a.s.AddHandler(a.onMessage)
	if err := a.s.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}
	return nil
}

func (a *Adapter) Close() error {
	return a.s.Close()
}

func (a *Adapter) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	slog.Info("discord gateway ready", "user", r.User.Username, "guilds", len(r.Guilds))
}

func (a *Adapter) onInteraction(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	switch ic.Type {
	case discordgo.InteractionApplicationCommand:
		if ic.ApplicationCommandData().Name == wizard.CommandPanel {
			go a.panel.Handle(s, ic.Interaction)
		}
	case discordgo.InteractionMessageComponent:
		a.dispatch(a.componentEvent(s, ic))
	case discordgo.InteractionModalSubmit:
		a.dispatch(a.modalEvent(s, ic))
	}
}

// componentEvent normalizes a button press or menu selection. Buttons
// on the public panel get a fresh ephemeral reply; controls on the
// ephemeral wizard message update it in place.
func (a *Adapter) componentEvent(s *discordgo.Session, ic *discordgo.InteractionCreate) *types.InboundEvent {
	data := ic.MessageComponentData()

	kind := types.EventMenuSelected
	ephemeralDefer := false
	if data.ComponentType == discordgo.ButtonComponent {
		kind = types.EventButtonPressed
		ephemeralDefer = data.CustomID == wizard.ButtonOpen || data.CustomID == wizard.ButtonResume
	}

	return &types.InboundEvent{
		ID:        types.EventID(ic.ID),
		Kind:      kind,
		UserID:    interactionUser(ic.Interaction),
		GuildID:   ic.GuildID,
		ControlID: data.CustomID,
		Values:    data.Values,
		Responder: newResponder(s, ic.Interaction, ephemeralDefer),
	}
}

func (a *Adapter) modalEvent(s *discordgo.Session, ic *discordgo.InteractionCreate) *types.InboundEvent {
	data := ic.ModalSubmitData()
	return &types.InboundEvent{
		ID:        types.EventID(ic.ID),
		Kind:      types.EventModalSubmitted,
		UserID:    interactionUser(ic.Interaction),
		GuildID:   ic.GuildID,
		ControlID: data.CustomID,
		Fields:    modalFields(data),
		Responder: newResponder(s, ic.Interaction, true),
	}
}

func (a *Adapter) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	atts := make([]types.Attachment, 0, len(m.Attachments))
	for _, att := range m.Attachments {
		atts = append(atts, types.Attachment{URL: att.URL, Name: att.Filename})
	}

	a.dispatch(&types.InboundEvent{
		ID:     types.EventID(m.ID),
		Kind:   types.EventMessagePosted,
		UserID: types.UserID(m.Author.ID),
		Message: &types.ThreadMessage{
			ThreadID:    types.ChannelID(m.ChannelID),
			MessageID:   types.MessageID(m.ID),
			AuthorID:    types.UserID(m.Author.ID),
			Content:     m.Content,
			Attachments: atts,
		},
	})
}

func (a *Adapter) dispatch(ev *types.InboundEvent) {
	if err := a.gw.HandleInbound(ev); err != nil {
		slog.Error("enqueue inbound event", "kind", ev.Kind.String(), "user", ev.UserID, "error", err)
	}
}

func interactionUser(i *discordgo.Interaction) types.UserID {
	if i.Member != nil && i.Member.User != nil {
		return types.UserID(i.Member.User.ID)
	}
	if i.User != nil {
		return types.UserID(i.User.ID)
	}
	return ""
}

// RegisterCommands upserts the panel slash command. An empty guildID
// registers globally.
func RegisterCommands(s *discordgo.Session, guildID string) error {
	manageGuild := int64(discordgo.PermissionManageServer)
	_, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, &discordgo.ApplicationCommand{
		Name:                     wizard.CommandPanel,
		Description:              "Post the feedback guide panel into the forum",
		DefaultMemberPermissions: &manageGuild,
	})
	if err != nil {
		return fmt.Errorf("register %s command: %w", wizard.CommandPanel, err)
	}
	return nil
}

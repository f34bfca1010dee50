// internal/discord/panel.go
package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/retry"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/types"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/wizard"
)

const panelThreadName = "📌 Feedback Guide and Start"

// Panel posts the feedback guide thread into the forum on demand.
type Panel struct {
	client *Client
	retry  *retry.Policy
	forum  types.ChannelID
}

func NewPanel(client *Client, policy *retry.Policy, forum types.ChannelID) *Panel {
	return &Panel{client: client, retry: policy, forum: forum}
}

// Handle answers the panel slash command: validate the forum, then
// create a pinned guide thread with the entry button.
func (p *Panel) Handle(s *discordgo.Session, i *discordgo.Interaction) {
	rsp := newResponder(s, i, true)
	if err := rsp.Defer(); err != nil {
		slog.Warn("defer panel command", "error", err)
		return
	}

	if p.forum == "" {
		p.reply(rsp, "❌ FORUM_CHANNEL_ID is not set in the bot environment.")
		return
	}
	if err := p.client.ValidateForum(p.forum); err != nil {
		p.reply(rsp, "❌ "+err.Error())
		return
	}

	var thread *discordgo.Channel
	err := p.retry.Run("panel_create", func() error {
		var err error
		thread, err = s.ForumThreadStartComplex(string(p.forum), &discordgo.ThreadStart{
			Name:                panelThreadName,
			AutoArchiveDuration: threadAutoArchiveMinutes,
		}, &discordgo.MessageSend{
			Embeds: []*discordgo.MessageEmbed{panelEmbed()},
			Components: []discordgo.MessageComponent{discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{discordgo.Button{
					CustomID: wizard.ButtonOpen,
					Label:    "Give Feedback",
					Style:    discordgo.SuccessButton,
				}},
			}},
		})
		return wrapErr(err)
	})
	if err != nil {
		slog.Error("create feedback panel", "error", err)
		p.reply(rsp, "❌ Failed to post feedback panel. Check permissions and logs.")
		return
	}

	slog.Info("feedback panel created", "thread", thread.ID)
	p.reply(rsp, fmt.Sprintf("✅ Panel created: <#%s>", thread.ID))
}

func (p *Panel) reply(rsp types.Responder, content string) {
	if err := rsp.Edit(content, nil); err != nil {
		slog.Warn("panel command reply", "error", err)
	}
}

func panelEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       0x8fd3ff,
		Title:       "🗳️ Feedback — Guide & Start",
		Description: "Share clear, actionable feedback. We’ll create a locked thread and follow up there.",
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "How it works",
				Value: "1️⃣ Click **Give Feedback**\n" +
					"2️⃣ Pick **Kind → Topic → Impact**\n" +
					"3️⃣ Enter **Title & Description**\n" +
					"4️⃣ *(Optional)* Add media via a short **intake**\n" +
					"5️⃣ Enter **Version** (to help QA)\n",
			},
			{
				Name:  "Kinds",
				Value: "❤️ Praise • 💡 Suggestion • ⚠️ Concern • 🧰 QoL • ⚖️ Balance • 🚀 Performance • 🌐 Localization • 🧩 Other",
			},
			{
				Name:  "Topics",
				Value: "🖱️ UI/UX • 🎮 Gameplay • 📈 Progression • 💰 Economy • ♿ Accessibility • 🧑‍🤝‍🧑 Multiplayer • 🗂️ Other",
			},
			{
				Name:  "Impact",
				Value: "✨ Nice-to-have • 👍 Useful • ❗ Important • 🛑 Critical",
			},
			{
				Name:  "Notes",
				Value: "• One idea per thread • Threads are read-only for reporter • You can dismiss bot pop-ups (bottom-right)",
			},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Thanks for helping us improve!"},
	}
}

// internal/discord/components.go
package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/types"
)

// renderControls translates control descriptors into component rows.
// Menus get a row of their own; consecutive buttons share one.
func renderControls(controls []types.Control) []discordgo.MessageComponent {
	if len(controls) == 0 {
		return nil
	}

	var rows []discordgo.MessageComponent
	var buttons []discordgo.MessageComponent

	flush := func() {
		if len(buttons) > 0 {
			rows = append(rows, discordgo.ActionsRow{Components: buttons})
			buttons = nil
		}
	}

	for _, c := range controls {
		switch c.Type {
		case types.ControlMenu:
			flush()
			rows = append(rows, discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{renderMenu(c)},
			})
		case types.ControlButton:
			buttons = append(buttons, discordgo.Button{
				CustomID: c.ID,
				Label:    c.Label,
				Style:    buttonStyle(c.Style),
			})
		case types.ControlLink:
			buttons = append(buttons, discordgo.Button{
				Label: c.Label,
				Style: discordgo.LinkButton,
				URL:   c.URL,
			})
		}
	}
	flush()
	return rows
}

func renderMenu(c types.Control) discordgo.SelectMenu {
	menu := discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    c.ID,
		Placeholder: c.Placeholder,
	}
	for _, o := range c.Options {
		opt := discordgo.SelectMenuOption{
			Label:       o.Label,
			Value:       o.Value,
			Description: o.Description,
			Default:     o.Default,
		}
		if o.Emoji != "" {
			opt.Emoji = &discordgo.ComponentEmoji{Name: o.Emoji}
		}
		menu.Options = append(menu.Options, opt)
	}
	return menu
}

func buttonStyle(s types.ButtonStyle) discordgo.ButtonStyle {
	if s == types.ButtonSuccess {
		return discordgo.SuccessButton
	}
	return discordgo.PrimaryButton
}

// renderModal translates a modal descriptor into an interaction
// response.
func renderModal(m types.Modal) *discordgo.InteractionResponse {
	var rows []discordgo.MessageComponent
	for _, f := range m.Fields {
		style := discordgo.TextInputShort
		if f.Paragraph {
			style = discordgo.TextInputParagraph
		}
		rows = append(rows, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{discordgo.TextInput{
				CustomID:    f.ID,
				Label:       f.Label,
				Style:       style,
				Placeholder: f.Placeholder,
				Required:    f.Required,
				MaxLength:   f.MaxLength,
			}},
		})
	}
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   m.ID,
			Title:      m.Title,
			Components: rows,
		},
	}
}

// modalFields flattens submitted modal rows into field values keyed by
// custom ID.
func modalFields(data discordgo.ModalSubmitInteractionData) map[string]string {
	fields := make(map[string]string)
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range actionsRow.Components {
			if input, ok := comp.(*discordgo.TextInput); ok {
				fields[input.CustomID] = input.Value
			}
		}
	}
	return fields
}

// internal/wizard/render.go
package wizard

import (
	"fmt"

	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/types"
)

// Renderer produces the prompt text and control descriptors for the
// session's current step. Rendering is pure; re-rendering the current
// step (resume) never mutates the session.
type Renderer struct {
	// PanelJump is markdown pointing back at the feedback panel.
	PanelJump string
}

// Prompt returns the prompt for the session's current step.
func (r *Renderer) Prompt(s *types.Session) (string, []types.Control) {
	if s.Finalized {
		return "Done.", nil
	}

	switch s.Step {
	case types.StepKind:
		return "Choose the **kind** of your feedback.",
			[]types.Control{menu(MenuKind, "Select the kind of feedback", Kinds, s.Kind)}
	case types.StepTopic:
		return "Which **topic** does it relate to?",
			[]types.Control{menu(MenuTopic, "Select the topic", Topics, s.Topic)}
	case types.StepImpact:
		return "How **impactful** is the feedback?",
			[]types.Control{menu(MenuImpact, "How impactful is it?", Impacts, s.Impact)}
	case types.StepDetails:
		return "Add a **concise title** and a **clear description**.",
			[]types.Control{{Type: types.ControlButton, ID: ButtonContinue, Label: "Enter title & description", Style: types.ButtonPrimary}}
	case types.StepMedia:
		return "Do you want to share **media** to illustrate your feedback?",
			[]types.Control{menu(MenuMedia, "Share screenshots/videos/video links?", MediaChoices, s.MediaChoice)}
	case types.StepVersion:
		return r.versionNote(s),
			[]types.Control{{Type: types.ControlButton, ID: ButtonVersion, Label: "Enter version", Style: types.ButtonSuccess}}
	default:
		return "Done.", nil
	}
}

func (r *Renderer) versionNote(s *types.Session) string {
	var note string
	switch {
	case s.MediaChoice != "yes":
		note = "No intake opened. Continue with **Enter version**."
	case s.IntakeCaptured:
		note = "✅ Intake captured. Click **Enter version**."
	case s.IntakeThreadID == "":
		// Media was requested but no thread exists (creation failed).
		note = "No intake opened. Continue with **Enter version**."
	default:
		note = "✉️ A **temporary intake** was opened. Post **ONE** message there (text + media/links). It will **auto-close**. Then click **Enter version**."
	}
	if s.IntakeThreadID != "" {
		note += fmt.Sprintf("\n🔗 Intake: <#%s>", s.IntakeThreadID)
	}
	return note
}

func menu(id, placeholder string, opts []Option, selected string) types.Control {
	c := types.Control{
		Type:        types.ControlMenu,
		ID:          id,
		Placeholder: placeholder,
	}
	for _, o := range opts {
		c.Options = append(c.Options, types.MenuOption{
			Label:       o.Label,
			Value:       o.Value,
			Emoji:       o.Emoji,
			Description: o.Description,
			Default:     selected != "" && o.Value == selected,
		})
	}
	return c
}

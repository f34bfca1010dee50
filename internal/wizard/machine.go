// internal/wizard/machine.go
package wizard

import "github.com/MuhacklGames/Discord-Feedback-Bot/internal/types"

// Effect is a side effect the caller must perform after a transition.
type Effect int

const (
	EffectNone Effect = iota
	// EffectOpenIntake: open the media intake thread before showing the
	// version step.
	EffectOpenIntake
	// EffectSubmit: run the submission pipeline. The machine does not
	// advance here; finalization is owned by the pipeline's guard.
	EffectSubmit
)

// Transition applies ev to s and returns the effect to perform plus
// whether the event matched the session's current step. Events whose
// type or originating control does not match are stale/duplicate UI
// and leave the session untouched. Steps only ever move forward along
// the fixed sequence.
func Transition(s *types.Session, ev *types.InboundEvent) (Effect, bool) {
	if s.Finalized {
		return EffectNone, false
	}

	switch ev.Kind {
	case types.EventMenuSelected:
		if len(ev.Values) == 0 {
			return EffectNone, false
		}
		value := ev.Values[0]
		switch {
		case ev.ControlID == MenuKind && s.Step == types.StepKind:
			s.Kind = value
			s.Step = types.StepTopic
			return EffectNone, true
		case ev.ControlID == MenuTopic && s.Step == types.StepTopic:
			s.Topic = value
			s.Step = types.StepImpact
			return EffectNone, true
		case ev.ControlID == MenuImpact && s.Step == types.StepImpact:
			s.Impact = value
			s.Step = types.StepDetails
			return EffectNone, true
		case ev.ControlID == MenuMedia && s.Step == types.StepMedia:
			s.MediaChoice = value
			s.Step = types.StepVersion
			if value == "yes" && s.IntakeThreadID == "" {
				return EffectOpenIntake, true
			}
			return EffectNone, true
		}

	case types.EventModalSubmitted:
		switch {
		case ev.ControlID == ModalMain && s.Step == types.StepDetails:
			s.Title = ev.Fields[FieldTitle]
			s.Description = ev.Fields[FieldDescription]
			s.Step = types.StepMedia
			return EffectNone, true
		case ev.ControlID == ModalVersion && s.Step == types.StepVersion:
			return EffectSubmit, true
		}
	}

	return EffectNone, false
}

// DetailsModal describes the title/description form shown at step 4.
func DetailsModal() types.Modal {
	return types.Modal{
		ID:    ModalMain,
		Title: "Feedback Details",
		Fields: []types.ModalField{
			{ID: FieldTitle, Label: "Short title", Required: true, MaxLength: 80},
			{ID: FieldDescription, Label: "Detailed description", Paragraph: true, Required: true},
		},
	}
}

// VersionModal describes the version form shown at step 6. Version
// entry is required.
func VersionModal() types.Modal {
	return types.Modal{
		ID:    ModalVersion,
		Title: "Version",
		Fields: []types.ModalField{
			{ID: FieldVersion, Label: "Game version (e.g., v 0.0.16)", Placeholder: "v 0.0.16", Required: true, MaxLength: 20},
		},
	}
}

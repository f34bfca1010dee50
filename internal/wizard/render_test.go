package wizard

import (
	"strings"
	"testing"

	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/types"
)

func TestPromptPerStep(t *testing.T) {
	r := &Renderer{PanelJump: "back to the panel"}

	cases := []struct {
		step      types.Step
		wantWord  string
		controlID string
	}{
		{types.StepKind, "kind", MenuKind},
		{types.StepTopic, "topic", MenuTopic},
		{types.StepImpact, "impactful", MenuImpact},
		{types.StepDetails, "title", ButtonContinue},
		{types.StepMedia, "media", MenuMedia},
		{types.StepVersion, "Enter version", ButtonVersion},
	}

	for _, c := range cases {
		s := &types.Session{Step: c.step}
		text, controls := r.Prompt(s)
		if !strings.Contains(text, c.wantWord) {
			t.Errorf("step %d: expected %q in prompt %q", c.step, c.wantWord, text)
		}
		if len(controls) != 1 || controls[0].ID != c.controlID {
			t.Errorf("step %d: expected control %s", c.step, c.controlID)
		}
	}
}

func TestPromptMarksSelectedDefault(t *testing.T) {
	r := &Renderer{}
	s := &types.Session{Step: types.StepKind, Kind: "Balance"}

	// Resuming at a step pre-selects the previous choice.
	_, controls := r.Prompt(s)
	var marked int
	for _, o := range controls[0].Options {
		if o.Default {
			marked++
			if o.Value != "Balance" {
				t.Errorf("expected Balance marked, got %s", o.Value)
			}
		}
	}
	if marked != 1 {
		t.Errorf("expected exactly one default option, got %d", marked)
	}
}

func TestPromptVersionNotes(t *testing.T) {
	r := &Renderer{}

	text, _ := r.Prompt(&types.Session{Step: types.StepVersion, MediaChoice: "no"})
	if !strings.Contains(text, "No intake opened") {
		t.Errorf("expected no-intake note, got %q", text)
	}

	text, _ = r.Prompt(&types.Session{Step: types.StepVersion, MediaChoice: "yes", IntakeThreadID: "t-1"})
	if !strings.Contains(text, "temporary intake") || !strings.Contains(text, "<#t-1>") {
		t.Errorf("expected intake link note, got %q", text)
	}

	text, _ = r.Prompt(&types.Session{Step: types.StepVersion, MediaChoice: "yes", IntakeThreadID: "t-1", IntakeCaptured: true})
	if !strings.Contains(text, "Intake captured") {
		t.Errorf("expected captured note, got %q", text)
	}

	// Media wanted but thread creation failed: no thread to point at.
	text, _ = r.Prompt(&types.Session{Step: types.StepVersion, MediaChoice: "yes"})
	if !strings.Contains(text, "No intake opened") {
		t.Errorf("expected no-intake note when no thread exists, got %q", text)
	}
	if strings.Contains(text, "temporary intake") || strings.Contains(text, "🔗") {
		t.Errorf("note must not reference an intake thread, got %q", text)
	}
}

func TestPromptFinalized(t *testing.T) {
	r := &Renderer{}
	text, controls := r.Prompt(&types.Session{Finalized: true})
	if text != "Done." || len(controls) != 0 {
		t.Error("expected terminal prompt with no controls")
	}
}

func TestPromptIsPure(t *testing.T) {
	r := &Renderer{}
	s := &types.Session{Step: types.StepMedia, Kind: "Praise"}
	r.Prompt(s)
	if s.Step != types.StepMedia || s.Kind != "Praise" || s.MediaChoice != "" {
		t.Error("expected rendering to leave the session untouched")
	}
}

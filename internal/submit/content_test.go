package submit

import (
	"strings"
	"testing"

	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/types"
)

func TestBody(t *testing.T) {
	s := &types.Session{
		Kind:        "Suggestion",
		Topic:       "Gameplay",
		Impact:      "Important",
		Title:       "Dash feels stiff",
		Description: "Add momentum",
		Version:     "v0.0.16",
		Links:       []string{"https://example.com/x"},
	}

	body := Body("u1", s)
	for _, want := range []string{"### 💬 Dash feels stiff", "<@u1>", "Suggestion", "Gameplay", "Important", "Add momentum", "v0.0.16", "• https://example.com/x"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in body", want)
		}
	}
}

func TestBodyEmptyFieldsDash(t *testing.T) {
	body := Body("u1", &types.Session{Title: "t", Description: "d"})
	if !strings.Contains(body, "**Kind:** -") {
		t.Error("expected dash for missing kind")
	}
	if strings.Contains(body, "Additional links") {
		t.Error("expected no links block without links")
	}
}

func TestThreadTitle(t *testing.T) {
	s := &types.Session{Kind: "Suggestion", Topic: "Gameplay", Impact: "Important", Title: "Dash feels stiff"}
	name := ThreadTitle(s)
	for _, want := range []string{"💡", "🎮", "Gameplay – Dash feels stiff", "[IMPORTANT]"} {
		if !strings.Contains(name, want) {
			t.Errorf("expected %q in thread title %q", want, name)
		}
	}
}

func TestThreadTitleCapped(t *testing.T) {
	s := &types.Session{Title: strings.Repeat("x", 200)}
	if got := len([]rune(ThreadTitle(s))); got > 90 {
		t.Errorf("expected title capped at 90 runes, got %d", got)
	}
}

func TestThreadTitleUnknownVocab(t *testing.T) {
	name := ThreadTitle(&types.Session{Kind: "Mystery", Title: "t"})
	if !strings.Contains(name, "💬") || !strings.Contains(name, "General") {
		t.Errorf("expected fallback emoji and topic, got %q", name)
	}
}

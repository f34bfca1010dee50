// Package engine dispatches inbound events against the session
// workflow: it matches (event kind, control, current step) pairs,
// drives the step machine, and executes the resulting effects.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/gateway"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/intake"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/notify"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/session"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/submit"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/types"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/wizard"
)

// Engine processes queued runs.
type Engine struct {
	sessions *session.Store
	renderer *wizard.Renderer
	intake   *intake.Reconciler
	pipeline *submit.Pipeline
	notifier *notify.Notifier
}

// New wires the engine to its collaborators.
func New(sessions *session.Store, renderer *wizard.Renderer, rec *intake.Reconciler, pipeline *submit.Pipeline, notifier *notify.Notifier) *Engine {
	return &Engine{
		sessions: sessions,
		renderer: renderer,
		intake:   rec,
		pipeline: pipeline,
		notifier: notifier,
	}
}

// Process handles one run; it is the gateway queue's processor.
func (e *Engine) Process(run *gateway.Run) error {
	ev := run.Event
	switch ev.Kind {
	case types.EventMessagePosted:
		e.intake.HandleMessage(ev.Message)
		return nil
	case types.EventButtonPressed:
		return e.handleButton(ev)
	case types.EventMenuSelected, types.EventModalSubmitted:
		return e.handleStep(ev)
	default:
		return nil
	}
}

func (e *Engine) handleButton(ev *types.InboundEvent) error {
	switch ev.ControlID {
	case wizard.ButtonOpen:
		return e.startSession(ev)

	case wizard.ButtonContinue:
		if s, ok := e.sessions.Get(ev.UserID); ok && !s.Finalized && s.Step == types.StepDetails {
			return ev.Responder.Modal(wizard.DetailsModal())
		}
		return nil

	case wizard.ButtonVersion:
		if s, ok := e.sessions.Get(ev.UserID); ok && !s.Finalized && s.Step == types.StepVersion {
			return ev.Responder.Modal(wizard.VersionModal())
		}
		return nil

	case wizard.ButtonResume:
		return e.resume(ev)

	default:
		return nil
	}
}

// startSession begins a fresh wizard, abandoning any prior session.
func (e *Engine) startSession(ev *types.InboundEvent) error {
	if err := ev.Responder.Defer(); err != nil {
		slog.Debug("defer open", "user", ev.UserID, "error", err)
	}
	stop := e.notifier.Start(ev.Responder)
	defer stop()

	s := e.sessions.Create(ev.UserID)
	text, controls := e.renderer.Prompt(&s)
	if err := ev.Responder.Edit(text, controls); err != nil {
		return fmt.Errorf("show first step: %w", err)
	}
	slog.Info("feedback session started", "user", ev.UserID)
	return nil
}

// resume re-renders the current step without mutating the session.
func (e *Engine) resume(ev *types.InboundEvent) error {
	s, ok := e.sessions.Get(ev.UserID)
	if !ok || s.Finalized {
		return nil
	}
	if err := ev.Responder.Defer(); err != nil {
		slog.Debug("defer resume", "user", ev.UserID, "error", err)
	}
	stop := e.notifier.Start(ev.Responder)
	defer stop()

	text, controls := e.renderer.Prompt(&s)
	if err := ev.Responder.Edit(text, controls); err != nil {
		return fmt.Errorf("resume step: %w", err)
	}
	return nil
}

// handleStep applies menu selections and modal submissions. The
// transition runs inside the store lock so the step check and the
// mutation are atomic with respect to interleaved events.
func (e *Engine) handleStep(ev *types.InboundEvent) error {
	var effect wizard.Effect
	matched := false
	ran := e.sessions.Mutate(ev.UserID, func(s *types.Session) {
		effect, matched = wizard.Transition(s, ev)
	})
	if !ran || !matched {
		// Stale or duplicate UI; finalized duplicates still deserve an
		// answer, which the pipeline's guard provides.
		if ev.Kind == types.EventModalSubmitted && ev.ControlID == wizard.ModalVersion {
			if s, ok := e.sessions.Get(ev.UserID); ok && s.Finalized {
				return e.finalize(ev)
			}
		}
		return nil
	}

	switch effect {
	case wizard.EffectSubmit:
		return e.finalize(ev)
	case wizard.EffectOpenIntake:
		return e.openIntake(ev)
	default:
		return e.showCurrentStep(ev, "")
	}
}

func (e *Engine) finalize(ev *types.InboundEvent) error {
	if err := ev.Responder.Defer(); err != nil {
		slog.Debug("defer finalize", "user", ev.UserID, "error", err)
	}
	stop := e.notifier.Start(ev.Responder)
	defer stop()

	e.pipeline.Finalize(ev)
	return nil
}

func (e *Engine) openIntake(ev *types.InboundEvent) error {
	if err := ev.Responder.Defer(); err != nil {
		slog.Debug("defer intake open", "user", ev.UserID, "error", err)
	}
	stop := e.notifier.Start(ev.Responder)
	defer stop()

	s, ok := e.sessions.Get(ev.UserID)
	if !ok {
		return nil
	}
	var reason string
	if _, err := e.intake.Open(ev.UserID, s.Title); err != nil {
		slog.Warn("open intake thread", "user", ev.UserID, "error", err)
		reason = fmt.Sprintf("\n⚠️ Reason: %v", err)
	}
	return e.showCurrentStep(ev, reason)
}

// showCurrentStep renders the session's current step into the reply,
// appending extra (a failure note) when non-empty.
func (e *Engine) showCurrentStep(ev *types.InboundEvent, extra string) error {
	if err := ev.Responder.Defer(); err != nil {
		slog.Debug("defer step", "user", ev.UserID, "error", err)
	}
	s, ok := e.sessions.Get(ev.UserID)
	if !ok {
		return nil
	}
	text, controls := e.renderer.Prompt(&s)
	if err := ev.Responder.Edit(text+extra, controls); err != nil {
		return fmt.Errorf("show step %d: %w", s.Step, err)
	}
	return nil
}

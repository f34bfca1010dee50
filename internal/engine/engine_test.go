package engine

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/gateway"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/intake"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/notify"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/retry"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/session"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/submit"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/types"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/wizard"
)

// fakePlatform records every platform call the workflow makes.
type fakePlatform struct {
	mu            sync.Mutex
	threadSeq     int
	intakeThreads []types.ChannelID
	forumPosts    int
	postedFiles   []types.Attachment
	postedBody    string
	closed        []types.ChannelID
	locked        []types.ChannelID
}

func (p *fakePlatform) CreateIntakeThread(parent types.ChannelID, name string, invite types.UserID) (types.ChannelID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.threadSeq++
	id := types.ChannelID(fmt.Sprintf("intake-%d", p.threadSeq))
	p.intakeThreads = append(p.intakeThreads, id)
	return id, nil
}

func (p *fakePlatform) SendMessage(types.ChannelID, string) (types.MessageID, error) {
	return "m-1", nil
}

func (p *fakePlatform) CloseThread(thread types.ChannelID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = append(p.closed, thread)
	return nil
}

func (p *fakePlatform) LockThread(thread types.ChannelID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.locked = append(p.locked, thread)
	return nil
}

func (p *fakePlatform) DeleteMessage(types.ChannelID, types.MessageID) error { return nil }
func (p *fakePlatform) ValidateForum(types.ChannelID) error                  { return nil }

func (p *fakePlatform) CreateForumPost(forum types.ChannelID, name, body string, files []types.Attachment) (types.ChannelID, types.MessageID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.forumPosts++
	p.postedBody = body
	p.postedFiles = files
	return types.ChannelID(fmt.Sprintf("result-%d", p.forumPosts)), "starter-1", nil
}

func (p *fakePlatform) React(types.ChannelID, types.MessageID, string) error { return nil }
func (p *fakePlatform) PinMessage(types.ChannelID, types.MessageID) error    { return nil }

type fakeResponder struct {
	mu     sync.Mutex
	edits  []string
	modals []string
}

func (r *fakeResponder) Defer() error { return nil }
func (r *fakeResponder) Edit(content string, controls []types.Control) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.edits = append(r.edits, content)
	return nil
}
func (r *fakeResponder) Modal(m types.Modal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modals = append(r.modals, m.ID)
	return nil
}
func (r *fakeResponder) FollowUp(string) error { return nil }

func (r *fakeResponder) lastEdit() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.edits) == 0 {
		return ""
	}
	return r.edits[len(r.edits)-1]
}

type fixture struct {
	engine   *Engine
	sessions *session.Store
	platform *fakePlatform
}

func newFixture() *fixture {
	platform := &fakePlatform{}
	sessions := session.NewStore()
	policy := &retry.Policy{MaxAttempts: 1, BaseDelay: time.Millisecond, Jitter: 0}
	renderer := &wizard.Renderer{PanelJump: "back to the panel"}
	rec := intake.New(sessions, platform, policy, "intake-parent", true, renderer.PanelJump)
	pipeline := submit.New(sessions, platform, policy, "forum-1")
	notifier := &notify.Notifier{Threshold: time.Hour, Interval: time.Hour}
	return &fixture{
		engine:   New(sessions, renderer, rec, pipeline, notifier),
		sessions: sessions,
		platform: platform,
	}
}

func (f *fixture) deliver(t *testing.T, ev *types.InboundEvent) {
	t.Helper()
	if err := f.engine.Process(gateway.NewRun(ev)); err != nil {
		t.Fatalf("process %s/%s: %v", ev.Kind, ev.ControlID, err)
	}
}

func button(user types.UserID, control string, rsp types.Responder) *types.InboundEvent {
	return &types.InboundEvent{Kind: types.EventButtonPressed, UserID: user, ControlID: control, Responder: rsp}
}

func menu(user types.UserID, control, value string, rsp types.Responder) *types.InboundEvent {
	return &types.InboundEvent{Kind: types.EventMenuSelected, UserID: user, ControlID: control, Values: []string{value}, Responder: rsp}
}

func modal(user types.UserID, control string, fields map[string]string, rsp types.Responder) *types.InboundEvent {
	return &types.InboundEvent{Kind: types.EventModalSubmitted, UserID: user, ControlID: control, Fields: fields, Responder: rsp}
}

func TestFullFlowWithoutMedia(t *testing.T) {
	f := newFixture()
	rsp := &fakeResponder{}

	f.deliver(t, button("u1", wizard.ButtonOpen, rsp))
	f.deliver(t, menu("u1", wizard.MenuKind, "Suggestion", rsp))
	f.deliver(t, menu("u1", wizard.MenuTopic, "Gameplay", rsp))
	f.deliver(t, menu("u1", wizard.MenuImpact, "Important", rsp))
	f.deliver(t, button("u1", wizard.ButtonContinue, rsp))
	f.deliver(t, modal("u1", wizard.ModalMain, map[string]string{wizard.FieldTitle: "Dash feels stiff", wizard.FieldDescription: "Add momentum"}, rsp))
	f.deliver(t, menu("u1", wizard.MenuMedia, "no", rsp))
	f.deliver(t, button("u1", wizard.ButtonVersion, rsp))
	f.deliver(t, modal("u1", wizard.ModalVersion, map[string]string{wizard.FieldVersion: "v0.0.16"}, rsp))

	if f.platform.forumPosts != 1 {
		t.Fatalf("expected exactly one artifact, got %d", f.platform.forumPosts)
	}
	if len(f.platform.intakeThreads) != 0 {
		t.Error("expected no side thread for media=no")
	}

	s, _ := f.sessions.Get("u1")
	if !s.Finalized || s.ResultThreadID != "result-1" {
		t.Error("expected finalized session with result thread")
	}
	if len(s.Links) != 0 || len(s.Attachments) != 0 {
		t.Error("expected empty links and attachments")
	}
	if len(rsp.modals) != 2 || rsp.modals[0] != wizard.ModalMain || rsp.modals[1] != wizard.ModalVersion {
		t.Errorf("expected details then version modal, got %v", rsp.modals)
	}
}

func TestFullFlowWithMediaIntake(t *testing.T) {
	f := newFixture()
	rsp := &fakeResponder{}

	f.deliver(t, button("u1", wizard.ButtonOpen, rsp))
	f.deliver(t, menu("u1", wizard.MenuKind, "Concern", rsp))
	f.deliver(t, menu("u1", wizard.MenuTopic, "UI/UX", rsp))
	f.deliver(t, menu("u1", wizard.MenuImpact, "Critical", rsp))
	f.deliver(t, modal("u1", wizard.ModalMain, map[string]string{wizard.FieldTitle: "Menu froze", wizard.FieldDescription: "See clips"}, rsp))
	f.deliver(t, menu("u1", wizard.MenuMedia, "yes", rsp))

	if len(f.platform.intakeThreads) != 1 {
		t.Fatalf("expected one intake thread, got %d", len(f.platform.intakeThreads))
	}
	intakeThread := f.platform.intakeThreads[0]
	if !strings.Contains(rsp.lastEdit(), string(intakeThread)) {
		t.Errorf("expected step-6 prompt to link the intake thread, got %q", rsp.lastEdit())
	}

	f.deliver(t, &types.InboundEvent{
		Kind:   types.EventMessagePosted,
		UserID: "u1",
		Message: &types.ThreadMessage{
			ThreadID: intakeThread,
			AuthorID: "u1",
			Content:  "see https://example.com/x",
			Attachments: []types.Attachment{
				{URL: "https://cdn/a.png", Name: "a.png"},
				{URL: "https://cdn/b.png", Name: "b.png"},
			},
		},
	})

	s, _ := f.sessions.Get("u1")
	if !s.IntakeCaptured {
		t.Fatal("expected intake captured")
	}
	if len(s.Attachments) != 2 || len(s.Links) != 1 || s.Links[0] != "https://example.com/x" {
		t.Errorf("expected 2 attachments and 1 link, got %d/%v", len(s.Attachments), s.Links)
	}
	if len(f.platform.closed) != 1 || f.platform.closed[0] != intakeThread {
		t.Error("expected intake thread closed after capture")
	}

	f.deliver(t, modal("u1", wizard.ModalVersion, map[string]string{wizard.FieldVersion: "v0.0.16"}, rsp))

	if f.platform.forumPosts != 1 {
		t.Fatalf("expected one artifact, got %d", f.platform.forumPosts)
	}
	if len(f.platform.postedFiles) != 2 {
		t.Errorf("expected captured attachments on the artifact, got %d", len(f.platform.postedFiles))
	}
	if !strings.Contains(f.platform.postedBody, "https://example.com/x") {
		t.Error("expected captured link in the artifact body")
	}
}

func TestDuplicateVersionSubmit(t *testing.T) {
	f := newFixture()
	rsp := &fakeResponder{}

	f.deliver(t, button("u1", wizard.ButtonOpen, rsp))
	f.deliver(t, menu("u1", wizard.MenuKind, "Praise", rsp))
	f.deliver(t, menu("u1", wizard.MenuTopic, "Gameplay", rsp))
	f.deliver(t, menu("u1", wizard.MenuImpact, "Useful", rsp))
	f.deliver(t, modal("u1", wizard.ModalMain, map[string]string{wizard.FieldTitle: "Nice", wizard.FieldDescription: "Good"}, rsp))
	f.deliver(t, menu("u1", wizard.MenuMedia, "no", rsp))

	f.deliver(t, modal("u1", wizard.ModalVersion, map[string]string{wizard.FieldVersion: "v1"}, rsp))

	// The control fires again after finalization (e.g. redelivery past
	// the dedup window). Answered with the existing thread, no new post.
	dup := &fakeResponder{}
	f.deliver(t, modal("u1", wizard.ModalVersion, map[string]string{wizard.FieldVersion: "v1"}, dup))

	if f.platform.forumPosts != 1 {
		t.Fatalf("expected one artifact, got %d", f.platform.forumPosts)
	}
	if !strings.Contains(dup.lastEdit(), "already exists: <#result-1>") {
		t.Errorf("expected existing-thread answer, got %q", dup.lastEdit())
	}
}

func TestStaleEventsIgnored(t *testing.T) {
	f := newFixture()
	rsp := &fakeResponder{}

	f.deliver(t, button("u1", wizard.ButtonOpen, rsp))

	// Controls from a previous, abandoned wizard render.
	f.deliver(t, menu("u1", wizard.MenuTopic, "Economy", rsp))
	f.deliver(t, modal("u1", wizard.ModalMain, map[string]string{wizard.FieldTitle: "x"}, rsp))
	f.deliver(t, button("u1", wizard.ButtonVersion, rsp))

	s, _ := f.sessions.Get("u1")
	if s.Step != types.StepKind || s.Topic != "" || s.Title != "" {
		t.Error("expected stale events to leave the session at step 1")
	}
	if len(rsp.modals) != 0 {
		t.Error("expected no modal for out-of-step button")
	}
}

func TestResumeIsIdempotent(t *testing.T) {
	f := newFixture()
	rsp := &fakeResponder{}

	f.deliver(t, button("u1", wizard.ButtonOpen, rsp))
	f.deliver(t, menu("u1", wizard.MenuKind, "QoL", rsp))

	before, _ := f.sessions.Get("u1")
	f.deliver(t, button("u1", wizard.ButtonResume, rsp))
	f.deliver(t, button("u1", wizard.ButtonResume, rsp))
	after, _ := f.sessions.Get("u1")

	if before.Step != after.Step || before.Kind != after.Kind {
		t.Error("expected resume to not mutate the session")
	}
	if !strings.Contains(rsp.lastEdit(), "topic") {
		t.Errorf("expected current step re-rendered, got %q", rsp.lastEdit())
	}
}

func TestRestartAbandonsPriorSession(t *testing.T) {
	f := newFixture()
	rsp := &fakeResponder{}

	f.deliver(t, button("u1", wizard.ButtonOpen, rsp))
	f.deliver(t, menu("u1", wizard.MenuKind, "Balance", rsp))
	f.deliver(t, button("u1", wizard.ButtonOpen, rsp))

	s, _ := f.sessions.Get("u1")
	if s.Step != types.StepKind || s.Kind != "" {
		t.Error("expected a fresh session after reopening")
	}
}

// internal/types/session.go
package types

import "time"

// Step is one stage of the fixed wizard sequence.
type Step int

const (
	StepKind Step = iota + 1
	StepTopic
	StepImpact
	StepDetails
	StepMedia
	StepVersion
)

// Attachment is a file posted in an intake thread, referenced by URL.
type Attachment struct {
	URL  string
	Name string
}

// Session tracks one user's progress through the feedback wizard.
// Sessions are in-memory only and owned by the session store; nothing
// outside the store mutates them.
type Session struct {
	Step        Step
	Kind        string
	Topic       string
	Impact      string
	Title       string
	Description string
	Version     string
	MediaChoice string

	Attachments []Attachment
	Links       []string

	IntakeThreadID ChannelID
	IntakeCaptured bool

	SubmissionInProgress bool
	ResultThreadID       ChannelID
	Finalized            bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

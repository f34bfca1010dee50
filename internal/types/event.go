// internal/types/event.go
package types

// EventKind tags an inbound platform event.
type EventKind int

const (
	EventButtonPressed EventKind = iota
	EventMenuSelected
	EventModalSubmitted
	EventMessagePosted
)

func (k EventKind) String() string {
	switch k {
	case EventButtonPressed:
		return "button"
	case EventMenuSelected:
		return "menu"
	case EventModalSubmitted:
		return "modal"
	case EventMessagePosted:
		return "message"
	default:
		return "unknown"
	}
}

// InboundEvent is a platform event normalized into a tagged variant.
// Which fields are populated depends on Kind: ControlID and Values for
// menu selections, ControlID and Fields for modal submissions, ControlID
// for button presses, and Message for thread messages.
type InboundEvent struct {
	ID        EventID
	Kind      EventKind
	UserID    UserID
	GuildID   string
	ControlID string
	Values    []string
	Fields    map[string]string
	Message   *ThreadMessage
	Responder Responder
}

// ThreadMessage is a message posted into a thread, as seen by the
// intake reconciler.
type ThreadMessage struct {
	ThreadID    ChannelID
	MessageID   MessageID
	AuthorID    UserID
	FromBot     bool
	Content     string
	Attachments []Attachment
}

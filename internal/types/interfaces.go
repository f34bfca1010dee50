// internal/types/interfaces.go
package types

// Responder answers a single interaction with ephemeral (user-only)
// responses. Implementations decide how to acknowledge based on the
// interaction they wrap.
type Responder interface {
	// Defer acknowledges the interaction so a reply can follow later.
	// Calling it on an already acknowledged interaction is a no-op.
	Defer() error
	// Edit sets the content and controls of the pending reply.
	Edit(content string, controls []Control) error
	// Modal presents a form to the user. Must be the first response.
	Modal(modal Modal) error
	// FollowUp sends an additional ephemeral message.
	FollowUp(content string) error
}

// Platform is the capability surface of the chat platform consumed by
// the workflow engine. Every method is a suspension point; callers set
// their session guards before invoking any of them.
type Platform interface {
	// CreateIntakeThread opens a side thread under parent and invites the
	// user, preferring a private thread with a public fallback.
	CreateIntakeThread(parent ChannelID, name string, invite UserID) (ChannelID, error)
	// SendMessage posts content into a channel or thread.
	SendMessage(channel ChannelID, content string) (MessageID, error)
	// CloseThread locks and archives a thread.
	CloseThread(thread ChannelID) error
	// LockThread locks a thread but keeps it visible (unarchived).
	LockThread(thread ChannelID) error
	// DeleteMessage removes a message.
	DeleteMessage(channel ChannelID, msg MessageID) error
	// ValidateForum checks the forum destination exists, is a forum
	// channel, and the bot holds the permissions needed to post.
	ValidateForum(forum ChannelID) error
	// CreateForumPost creates a forum thread with an initial message and
	// returns the thread together with its starter message.
	CreateForumPost(forum ChannelID, name, body string, files []Attachment) (ChannelID, MessageID, error)
	// React adds an emoji reaction to a message.
	React(channel ChannelID, msg MessageID, emoji string) error
	// PinMessage pins a message in its channel.
	PinMessage(channel ChannelID, msg MessageID) error
}

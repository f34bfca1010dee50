// internal/discord/platform.go
package discord

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/types"
)

// threadAutoArchiveMinutes is the auto-archive duration for threads
// the bot creates (one day).
const threadAutoArchiveMinutes = 1440

// forumPermissions the bot needs to post feedback artifacts.
var forumPermissions = []struct {
	bit  int64
	name string
}{
	{discordgo.PermissionViewChannel, "View Channel"},
	{discordgo.PermissionSendMessages, "Send Messages"},
	{discordgo.PermissionCreatePublicThreads, "Create Posts"},
	{discordgo.PermissionSendMessagesInThreads, "Send Messages in Threads"},
	{discordgo.PermissionManageThreads, "Manage Threads"},
	{discordgo.PermissionReadMessageHistory, "Read Message History"},
}

// Client implements the platform capability surface on top of a
// discordgo session.
type Client struct {
	s    *discordgo.Session
	http *http.Client
}

var _ types.Platform = (*Client)(nil)

// NewClient wraps a connected discordgo session.
func NewClient(s *discordgo.Session) *Client {
	return &Client{
		s:    s,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateIntakeThread opens a side thread under parent, preferring a
// private thread and falling back to a public one when the bot lacks
// the private-thread permission.
func (c *Client) CreateIntakeThread(parent types.ChannelID, name string, invite types.UserID) (types.ChannelID, error) {
	perms, err := c.s.UserChannelPermissions(c.s.State.User.ID, string(parent))
	if err != nil {
		return "", wrapErr(err)
	}

	threadType := discordgo.ChannelTypeGuildPrivateThread
	switch {
	case perms&discordgo.PermissionCreatePrivateThreads != 0:
	case perms&discordgo.PermissionCreatePublicThreads != 0:
		threadType = discordgo.ChannelTypeGuildPublicThread
	default:
		return "", fmt.Errorf("missing CreatePrivateThreads/CreatePublicThreads in intake channel")
	}

	thread, err := c.s.ThreadStartComplex(string(parent), &discordgo.ThreadStart{
		Name:                name,
		Type:                threadType,
		AutoArchiveDuration: threadAutoArchiveMinutes,
		Invitable:           false,
	})
	if err != nil {
		return "", wrapErr(err)
	}

	if err := c.s.ThreadMemberAdd(thread.ID, string(invite)); err != nil {
		slog.Warn("invite user to intake thread", "thread", thread.ID, "error", err)
	}
	return types.ChannelID(thread.ID), nil
}

func (c *Client) SendMessage(channel types.ChannelID, content string) (types.MessageID, error) {
	msg, err := c.s.ChannelMessageSend(string(channel), content)
	if err != nil {
		return "", wrapErr(err)
	}
	return types.MessageID(msg.ID), nil
}

func (c *Client) CloseThread(thread types.ChannelID) error {
	locked, archived := true, true
	_, err := c.s.ChannelEditComplex(string(thread), &discordgo.ChannelEdit{
		Locked:   &locked,
		Archived: &archived,
	})
	return wrapErr(err)
}

func (c *Client) LockThread(thread types.ChannelID) error {
	locked, archived := true, false
	_, err := c.s.ChannelEditComplex(string(thread), &discordgo.ChannelEdit{
		Locked:   &locked,
		Archived: &archived,
	})
	return wrapErr(err)
}

func (c *Client) DeleteMessage(channel types.ChannelID, msg types.MessageID) error {
	return wrapErr(c.s.ChannelMessageDelete(string(channel), string(msg)))
}

// ValidateForum checks the destination before any retry loop: it must
// exist, be a forum channel, and grant the posting permissions. The
// returned errors carry their own remediation text.
func (c *Client) ValidateForum(forum types.ChannelID) error {
	ch, err := c.s.Channel(string(forum))
	if err != nil {
		return fmt.Errorf("feedback forum not found; check FORUM_CHANNEL_ID and bot access")
	}
	if ch.Type != discordgo.ChannelTypeGuildForum {
		return fmt.Errorf("FORUM_CHANNEL_ID is not a forum channel; use the parent forum ID")
	}

	perms, err := c.s.UserChannelPermissions(c.s.State.User.ID, string(forum))
	if err != nil {
		return fmt.Errorf("feedback forum permissions unavailable; check bot access")
	}
	var missing []string
	for _, p := range forumPermissions {
		if perms&p.bit == 0 {
			missing = append(missing, p.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing forum permissions: %s", strings.Join(missing, ", "))
	}
	return nil
}

// CreateForumPost creates the artifact thread. Attachments are
// re-uploaded from their URLs; a failed download drops that file
// rather than the post. The starter message of a forum thread shares
// the thread's ID.
func (c *Client) CreateForumPost(forum types.ChannelID, name, body string, files []types.Attachment) (types.ChannelID, types.MessageID, error) {
	send := &discordgo.MessageSend{
		Content: body,
		Files:   c.downloadAll(files),
	}
	thread, err := c.s.ForumThreadStartComplex(string(forum), &discordgo.ThreadStart{
		Name:                name,
		AutoArchiveDuration: threadAutoArchiveMinutes,
	}, send)
	if err != nil {
		return "", "", wrapErr(err)
	}
	return types.ChannelID(thread.ID), types.MessageID(thread.ID), nil
}

func (c *Client) React(channel types.ChannelID, msg types.MessageID, emoji string) error {
	return wrapErr(c.s.MessageReactionAdd(string(channel), string(msg), emoji))
}

func (c *Client) PinMessage(channel types.ChannelID, msg types.MessageID) error {
	return wrapErr(c.s.ChannelMessagePin(string(channel), string(msg)))
}

// downloadAll fetches attachment contents into memory. Bodies are
// fully read and closed here; handing an open response body to
// discordgo would leak it, since the multipart builder only copies
// from the reader.
func (c *Client) downloadAll(atts []types.Attachment) []*discordgo.File {
	var files []*discordgo.File
	for _, a := range atts {
		resp, err := c.http.Get(a.URL)
		if err != nil {
			slog.Warn("download attachment", "url", a.URL, "error", err)
			continue
		}
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			slog.Warn("download attachment", "url", a.URL, "error", err)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			slog.Warn("download attachment", "url", a.URL, "status", resp.StatusCode)
			continue
		}
		files = append(files, &discordgo.File{
			Name:        a.Name,
			ContentType: resp.Header.Get("Content-Type"),
			Reader:      bytes.NewReader(data),
		})
	}
	return files
}

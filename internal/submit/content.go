// internal/submit/content.go
package submit

import (
	"fmt"
	"strings"

	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/types"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/wizard"
)

// Body formats the artifact's initial message from the accumulated
// session fields. Pure.
func Body(user types.UserID, s *types.Session) string {
	var links string
	if len(s.Links) > 0 {
		var b strings.Builder
		b.WriteString("\n🔗 **Additional links**\n")
		for _, u := range s.Links {
			fmt.Fprintf(&b, "• %s\n", u)
		}
		links = b.String()
	}

	return fmt.Sprintf(
		"### 💬 %s\n\n"+
			"**Reporter:** <@%s>  \n"+
			"**Kind:** %s  \n"+
			"**Topic:** %s  \n"+
			"**Impact:** %s\n\n"+
			"📝 **Description:**  \n"+
			"%s\n\n"+
			"**Version:** %s\n\n"+
			"%s—",
		s.Title, user,
		orDash(s.Kind), orDash(s.Topic), orDash(s.Impact),
		s.Description, orDash(s.Version), links,
	)
}

// ThreadTitle builds the forum thread name from the session's kind,
// topic, impact and title, capped at 90 runes.
func ThreadTitle(s *types.Session) string {
	kindEmoji := "💬"
	if kind, ok := wizard.KindOption(s.Kind); ok {
		kindEmoji = kind.Emoji
	}
	topicEmoji := ""
	if topic, ok := wizard.TopicOption(s.Topic); ok {
		topicEmoji = " " + topic.Emoji
	}
	impactTag := "FEEDBACK"
	if impact, ok := wizard.ImpactOption(s.Impact); ok {
		impactTag = strings.ToUpper(impact.Label)
	}
	topic := s.Topic
	if topic == "" {
		topic = "General"
	}

	name := fmt.Sprintf("%s%s | Feedback | %s – %s [%s]", kindEmoji, topicEmoji, topic, s.Title, impactTag)
	return truncate(name, 90)
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

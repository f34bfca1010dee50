// internal/wizard/options.go
package wizard

// Option is one entry of a step vocabulary. The kind/topic/impact lists
// are configuration data feeding a single parameterized workflow.
type Option struct {
	Label       string
	Value       string
	Emoji       string
	Description string
}

var Kinds = []Option{
	{Label: "Praise", Value: "Praise", Emoji: "❤️"},
	{Label: "Suggestion", Value: "Suggestion", Emoji: "💡"},
	{Label: "Concern", Value: "Concern", Emoji: "⚠️"},
	{Label: "QoL", Value: "QoL", Emoji: "🧰"},
	{Label: "Balance", Value: "Balance", Emoji: "⚖️"},
	{Label: "Performance", Value: "Performance", Emoji: "🚀"},
	{Label: "Localization", Value: "Localization", Emoji: "🌐"},
	{Label: "Other", Value: "Other", Emoji: "🧩"},
}

var Topics = []Option{
	{Label: "UI/UX", Value: "UI/UX", Emoji: "🖱️"},
	{Label: "Gameplay", Value: "Gameplay", Emoji: "🎮"},
	{Label: "Progression", Value: "Progression", Emoji: "📈"},
	{Label: "Economy", Value: "Economy", Emoji: "💰"},
	{Label: "Accessibility", Value: "Accessibility", Emoji: "♿"},
	{Label: "Multiplayer", Value: "Multiplayer", Emoji: "🧑‍🤝‍🧑"},
	{Label: "Other topics", Value: "Other topics", Emoji: "🗂️"},
}

var Impacts = []Option{
	{Label: "Nice-to-have", Value: "Nice-to-have", Emoji: "✨", Description: "Small improvement"},
	{Label: "Useful", Value: "Useful", Emoji: "👍", Description: "Helps many players"},
	{Label: "Important", Value: "Important", Emoji: "❗", Description: "High impact feedback"},
	{Label: "Critical", Value: "Critical", Emoji: "🛑", Description: "Blocks fun/flow"},
}

var MediaChoices = []Option{
	{Label: "Yes, I have media", Value: "yes"},
	{Label: "No, continue without", Value: "no"},
}

func find(opts []Option, value string) (Option, bool) {
	for _, o := range opts {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// KindOption looks up a kind by its stored value.
func KindOption(value string) (Option, bool) { return find(Kinds, value) }

// TopicOption looks up a topic by its stored value.
func TopicOption(value string) (Option, bool) { return find(Topics, value) }

// ImpactOption looks up an impact bucket by its stored value.
func ImpactOption(value string) (Option, bool) { return find(Impacts, value) }

// internal/wizard/ids.go
package wizard

// Custom IDs of the interactive controls the wizard registers with the
// platform. Inbound events are matched against these.
const (
	CommandPanel = "post_feedback_panel"

	ButtonOpen     = "fb_open"
	ButtonContinue = "fb_continue"
	ButtonVersion  = "fb_version"
	ButtonResume   = "fb_resume"

	MenuKind   = "sel_kind"
	MenuTopic  = "sel_topic"
	MenuImpact = "sel_impact"
	MenuMedia  = "sel_media"

	ModalMain    = "mod_main"
	ModalVersion = "mod_version"

	FieldTitle       = "title"
	FieldDescription = "desc"
	FieldVersion     = "ver"
)

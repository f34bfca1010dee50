// internal/types/controls.go
package types

// ControlType distinguishes the interactive controls a prompt can carry.
type ControlType int

const (
	ControlButton ControlType = iota
	ControlMenu
	ControlLink
)

// ButtonStyle maps onto the platform's button styles.
type ButtonStyle int

const (
	ButtonPrimary ButtonStyle = iota
	ButtonSuccess
)

// Control describes one interactive component without committing to a
// platform representation. The platform adapter renders these.
type Control struct {
	Type        ControlType
	ID          string
	Label       string
	Style       ButtonStyle
	URL         string
	Placeholder string
	Options     []MenuOption
}

// MenuOption is one entry of a select menu.
type MenuOption struct {
	Label       string
	Value       string
	Emoji       string
	Description string
	Default     bool
}

// Modal describes a form the platform shows to the user.
type Modal struct {
	ID     string
	Title  string
	Fields []ModalField
}

// ModalField is one text input of a modal.
type ModalField struct {
	ID          string
	Label       string
	Placeholder string
	Paragraph   bool
	Required    bool
	MaxLength   int
}

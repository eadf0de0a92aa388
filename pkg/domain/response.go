package domain

// ButtonStyle selects the visual style of a button.
type ButtonStyle int

const (
	ButtonPrimary ButtonStyle = iota
	ButtonSecondary
	ButtonSuccess
	ButtonDanger
)

// Embed is a rich card attached to a reply.
type Embed struct {
	Title       string
	Description string
	Color       int
}

// MenuOption is one entry in a selection menu.
type MenuOption struct {
	Label       string
	Value       string
	Description string
}

// Menu is a single-choice selection control.
type Menu struct {
	ControlID   string
	Placeholder string
	Options     []MenuOption
}

// Button is a clickable control.
type Button struct {
	ControlID string
	Label     string
	Style     ButtonStyle
}

// Response is the payload sent back for exactly one interaction.
// Private replies are only visible to the actor.
type Response struct {
	Content string
	Embeds  []Embed
	Menu    *Menu
	Buttons []Button
	Private bool
}

// Notice builds a private text-only reply.
func Notice(content string) Response {
	return Response{Content: content, Private: true}
}

// OptionType is the value type of a command option.
type OptionType int

const (
	OptionString OptionType = iota
	OptionNumber
)

// CommandOption describes one input of a slash command.
type CommandOption struct {
	Name        string
	Description string
	Type        OptionType
	Required    bool
}

// CommandSpec describes a slash command for registration.
type CommandSpec struct {
	Name        string
	Description string
	AdminOnly   bool
	GuildOnly   bool
	Options     []CommandOption
}

package domain

// InteractionKind is the category of an inbound platform event.
type InteractionKind string

const (
	KindCommand InteractionKind = "command"
	KindChoice  InteractionKind = "choice"
	KindButton  InteractionKind = "button"
)

// Context locates an interaction on the platform. GuildID is empty for direct messages.
type Context struct {
	GuildID   string
	ChannelID string
}

// InGuild reports whether the interaction happened inside a guild.
func (c Context) InGuild() bool {
	return c.GuildID != ""
}

// Interaction is an inbound platform event.
// Target holds the command name for commands and the control id for components.
type Interaction struct {
	ID      string
	Token   string
	Kind    InteractionKind
	Target  string
	Options map[string]any
	Value   string
	Actor   User
	Context Context
}

// CommandInvoked builds a slash command interaction.
func CommandInvoked(name string, options map[string]any, actor User, ctx Context) Interaction {
	return Interaction{Kind: KindCommand, Target: name, Options: options, Actor: actor, Context: ctx}
}

// ChoiceMade builds a menu selection interaction.
func ChoiceMade(controlID, value string, actor User, ctx Context) Interaction {
	return Interaction{Kind: KindChoice, Target: controlID, Value: value, Actor: actor, Context: ctx}
}

// ButtonPressed builds a button interaction.
func ButtonPressed(controlID string, actor User, ctx Context) Interaction {
	return Interaction{Kind: KindButton, Target: controlID, Actor: actor, Context: ctx}
}

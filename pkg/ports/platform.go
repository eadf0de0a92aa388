package ports

import (
	"context"

	"github.com/asianjeff44490-crypto/discord-bot/pkg/domain"
)

// Responder sends the single reply an interaction is owed.
//
// An interaction is answered either with Reply, or with Defer followed by
// Edit. Defer acknowledges it at once and shows a pending placeholder whose
// visibility is fixed by private; Edit later fills the placeholder in.
type Responder interface {
	Reply(ctx context.Context, in domain.Interaction, resp domain.Response) error
	Defer(ctx context.Context, in domain.Interaction, private bool) error
	Edit(ctx context.Context, in domain.Interaction, resp domain.Response) error
}

// Guild exposes the parts of a guild's channel and role graph the ticket
// provisioner reads and mutates.
type Guild interface {
	Categories(ctx context.Context, guildID string) ([]domain.Category, error)
	Roles(ctx context.Context, guildID string) ([]domain.Role, error)
	CreateChannel(ctx context.Context, guildID string, spec domain.ChannelSpec) (domain.Channel, error)
	SendMessage(ctx context.Context, channelID, text string) error
}

// Platform is everything the storefront needs from the chat service.
type Platform interface {
	Responder
	Guild
}

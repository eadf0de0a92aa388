package discord

import (
	"context"
	"fmt"

	"github.com/asianjeff44490-crypto/discord-bot/pkg/domain"
	"github.com/bwmarrin/discordgo"
)

// Reply answers an interaction with a channel message.
func (b *Bot) Reply(ctx context.Context, in domain.Interaction, resp domain.Response) error {
	return b.api.InteractionRespond(
		&discordgo.Interaction{ID: in.ID, Token: in.Token, AppID: b.appID},
		&discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: toResponseData(resp),
		},
		discordgo.WithContext(ctx),
	)
}

// Defer acknowledges an interaction and shows a loading state until Edit.
func (b *Bot) Defer(ctx context.Context, in domain.Interaction, private bool) error {
	var data *discordgo.InteractionResponseData
	if private {
		data = &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral}
	}
	return b.api.InteractionRespond(
		&discordgo.Interaction{ID: in.ID, Token: in.Token, AppID: b.appID},
		&discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
			Data: data,
		},
		discordgo.WithContext(ctx),
	)
}

// Edit replaces the loading state of a deferred interaction with resp.
func (b *Bot) Edit(ctx context.Context, in domain.Interaction, resp domain.Response) error {
	_, err := b.api.InteractionResponseEdit(
		&discordgo.Interaction{ID: in.ID, Token: in.Token, AppID: b.appID},
		toWebhookEdit(resp),
		discordgo.WithContext(ctx),
	)
	return err
}

// cachedGuild returns the gateway's cached copy of a guild, if any.
func (b *Bot) cachedGuild(guildID string) *discordgo.Guild {
	if b.state == nil {
		return nil
	}
	g, err := b.state.Guild(guildID)
	if err != nil {
		return nil
	}
	return g
}

// Categories lists the guild's channel categories, preferring the gateway cache.
func (b *Bot) Categories(ctx context.Context, guildID string) ([]domain.Category, error) {
	var channels []*discordgo.Channel
	if g := b.cachedGuild(guildID); g != nil {
		channels = g.Channels
	} else {
		var err error
		channels, err = b.api.GuildChannels(guildID, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list channels: %w", err)
		}
	}

	var out []domain.Category
	for _, c := range channels {
		if c.Type == discordgo.ChannelTypeGuildCategory {
			out = append(out, domain.Category{ID: c.ID, Name: c.Name})
		}
	}
	return out, nil
}

// Roles lists the guild's roles, preferring the gateway cache.
func (b *Bot) Roles(ctx context.Context, guildID string) ([]domain.Role, error) {
	var roles []*discordgo.Role
	if g := b.cachedGuild(guildID); g != nil {
		roles = g.Roles
	} else {
		var err error
		roles, err = b.api.GuildRoles(guildID, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list roles: %w", err)
		}
	}

	out := make([]domain.Role, 0, len(roles))
	for _, r := range roles {
		out = append(out, domain.Role{ID: r.ID, Name: r.Name, Permissions: fromPlatformPermissions(r.Permissions)})
	}
	return out, nil
}

// CreateChannel creates a text channel with the given access list.
func (b *Bot) CreateChannel(ctx context.Context, guildID string, spec domain.ChannelSpec) (domain.Channel, error) {
	ch, err := b.api.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:                 spec.Name,
		Type:                 discordgo.ChannelTypeGuildText,
		ParentID:             spec.ParentID,
		PermissionOverwrites: toOverwrites(spec.Grants),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return domain.Channel{}, err
	}
	return domain.Channel{ID: ch.ID, Name: ch.Name}, nil
}

// SendMessage posts text into a channel.
func (b *Bot) SendMessage(ctx context.Context, channelID, text string) error {
	_, err := b.api.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx))
	return err
}

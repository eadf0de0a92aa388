package discord

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/asianjeff44490-crypto/discord-bot/internal/logging"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/domain"
	"github.com/bwmarrin/discordgo"
)

// api is the subset of *discordgo.Session the bot calls.
type api interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error)
	GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error)
	GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// Dispatcher receives every supported interaction.
type Dispatcher interface {
	Dispatch(ctx context.Context, in domain.Interaction) error
}

// Bot bridges the Discord gateway and REST API to the storefront.
// It implements ports.Platform.
type Bot struct {
	session *discordgo.Session
	api     api
	state   *discordgo.State

	appID   string
	guildID string
	logger  *slog.Logger
	ready   atomic.Bool
}

// Option configures the Bot.
type Option func(*Bot)

// WithGuild scopes command registration to one guild. Guild commands update
// instantly; global ones can take up to an hour.
func WithGuild(guildID string) Option {
	return func(b *Bot) {
		b.guildID = guildID
	}
}

// WithLogger configures a logger for the Bot.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) {
		b.logger = logger
	}
}

// New creates a Bot for the given bot token and application id. It does not connect.
func New(token, appID string, opts ...Option) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds

	b := &Bot{
		session: s,
		api:     s,
		state:   s.State,
		appID:   appID,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Start subscribes d to interactions and opens the gateway connection.
// Each interaction runs on its own goroutine with a context derived from ctx.
func (b *Bot) Start(ctx context.Context, d Dispatcher) error {
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.ready.Store(true)
		b.logger.Info("Logged in", "user", r.User.Username, "guilds", len(r.Guilds))
	})
	b.session.AddHandler(func(s *discordgo.Session, _ *discordgo.Disconnect) {
		b.ready.Store(false)
		b.logger.Warn("Gateway disconnected")
	})
	b.session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		b.handle(ctx, d, i.Interaction)
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open gateway: %w", err)
	}
	return nil
}

func (b *Bot) handle(ctx context.Context, d Dispatcher, i *discordgo.Interaction) {
	in, ok := toInteraction(i)
	if !ok {
		b.logger.Debug("Ignoring interaction", "type", i.Type.String())
		return
	}
	if err := d.Dispatch(ctx, in); err != nil {
		b.logger.Error("Interaction dropped", "id", in.ID, "err", err)
	}
}

// RegisterCommands overwrites the application's slash commands with specs.
func (b *Bot) RegisterCommands(ctx context.Context, specs []domain.CommandSpec) error {
	b.logger.Info("Registering slash commands...", "count", len(specs), "guild_id", b.guildID)
	_, err := b.api.ApplicationCommandBulkOverwrite(b.appID, b.guildID, toCommands(specs), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}
	b.logger.Info("Commands registered")
	return nil
}

// Ready reports whether the gateway session is up.
func (b *Bot) Ready() bool {
	return b.ready.Load()
}

// Close disconnects from the gateway.
func (b *Bot) Close() error {
	b.ready.Store(false)
	return b.session.Close()
}

package ticket

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/asianjeff44490-crypto/discord-bot/internal/logging"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/domain"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/ports"
	"golang.org/x/time/rate"
)

const (
	DefaultCategory = "tickets"
	DefaultPrefix   = "snowy"
	DefaultTimeout  = 15 * time.Second
)

// Request asks for a ticket for one user and product.
type Request struct {
	Owner   domain.User
	GuildID string
	Product domain.Product
}

// Provisioner creates ticket channels in a guild.
type Provisioner struct {
	guild    ports.Guild
	category string
	prefix   string
	timeout  time.Duration
	limiter  *rate.Limiter
	logger   *slog.Logger
	onTicket func(context.Context, *domain.TicketEvent)
	now      func() time.Time
}

// Option configures the Provisioner.
type Option func(*Provisioner)

// WithCategory sets the name of the category tickets are created in.
func WithCategory(name string) Option {
	return func(p *Provisioner) {
		p.category = name
	}
}

// WithPrefix sets the channel name prefix.
func WithPrefix(prefix string) Option {
	return func(p *Provisioner) {
		p.prefix = prefix
	}
}

// WithTimeout bounds the platform calls of one provisioning attempt.
func WithTimeout(d time.Duration) Option {
	return func(p *Provisioner) {
		p.timeout = d
	}
}

// WithRateLimit throttles channel creation to perSecond with the given burst.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(p *Provisioner) {
		if perSecond <= 0 {
			p.limiter = nil
			return
		}
		p.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithLogger configures a logger for the Provisioner.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provisioner) {
		p.logger = logger
	}
}

// WithTicketHook is called after every channel creation attempt.
func WithTicketHook(fn func(context.Context, *domain.TicketEvent)) Option {
	return func(p *Provisioner) {
		p.onTicket = fn
	}
}

// NewProvisioner creates a Provisioner working against guild.
func NewProvisioner(guild ports.Guild, opts ...Option) *Provisioner {
	p := &Provisioner{
		guild:    guild,
		category: DefaultCategory,
		prefix:   DefaultPrefix,
		timeout:  DefaultTimeout,
		logger:   logging.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Timeout returns the bound on one provisioning attempt. Zero means unbounded.
func (p *Provisioner) Timeout() time.Duration {
	return p.timeout
}

// Provision runs the guild checks and creates the ticket channel.
//
// Failures before channel creation are precondition errors. Failures of the
// platform while creating the channel or posting into it are provisioning
// errors. In both cases nothing about the caller's selection is touched.
func (p *Provisioner) Provision(ctx context.Context, req Request) (domain.Ticket, error) {
	if req.GuildID == "" {
		return domain.Ticket{}, domain.Precondition(domain.ErrNotInGuild)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	categories, err := p.guild.Categories(ctx, req.GuildID)
	if err != nil {
		return domain.Ticket{}, domain.Provisioning("list categories", err)
	}
	category, ok := findCategory(categories, p.category)
	if !ok {
		return domain.Ticket{}, domain.Precondition(domain.ErrNoTicketCategory)
	}

	roles, err := p.guild.Roles(ctx, req.GuildID)
	if err != nil {
		return domain.Ticket{}, domain.Provisioning("list roles", err)
	}

	spec := domain.ChannelSpec{
		Name:     ChannelName(p.prefix, req.Owner.Username),
		ParentID: category.ID,
		Grants:   ComputeGrants(req.GuildID, req.Owner.ID, roles),
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return domain.Ticket{}, domain.Provisioning("wait for rate limit", err)
		}
	}

	start := p.now()
	channel, err := p.guild.CreateChannel(ctx, req.GuildID, spec)
	p.emit(ctx, req, spec, channel, err, p.now().Sub(start))
	if err != nil {
		p.logger.Error("Error creating ticket channel",
			"guild_id", req.GuildID,
			"user_id", req.Owner.ID,
			"channel", spec.Name,
			"err", err,
		)
		return domain.Ticket{}, domain.Provisioning("create channel", err)
	}

	t := domain.Ticket{Owner: req.Owner, Product: req.Product, Channel: channel}
	if err := p.guild.SendMessage(ctx, channel.ID, WelcomeMessage(t)); err != nil {
		p.logger.Error("Error posting ticket welcome message",
			"channel_id", channel.ID,
			"err", err,
		)
		return domain.Ticket{}, domain.Provisioning("send welcome message", err)
	}

	p.logger.Info("Ticket created",
		"guild_id", req.GuildID,
		"user_id", req.Owner.ID,
		"channel_id", channel.ID,
		"product_id", req.Product.ID,
		"grants", len(spec.Grants),
	)
	return t, nil
}

func (p *Provisioner) emit(ctx context.Context, req Request, spec domain.ChannelSpec, ch domain.Channel, err error, d time.Duration) {
	if p.onTicket == nil {
		return
	}
	p.onTicket(ctx, &domain.TicketEvent{
		Timestamp: p.now(),
		GuildID:   req.GuildID,
		UserID:    req.Owner.ID,
		ProductID: req.Product.ID,
		ChannelID: ch.ID,
		Grants:    len(spec.Grants),
		Err:       err,
		Duration:  d,
	})
}

// WelcomeMessage is the first message posted into a new ticket.
func WelcomeMessage(t domain.Ticket) string {
	var b strings.Builder
	b.WriteString("🎫 **New Ticket Created**\n")
	fmt.Fprintf(&b, "User: %s\n", t.Owner.Mention())
	fmt.Fprintf(&b, "Product: **%s**\n", t.Product.Name)
	fmt.Fprintf(&b, "Price: **%s**\n\n", t.Product.PriceLabel())
	b.WriteString("A staff member will assist you shortly.")
	return b.String()
}

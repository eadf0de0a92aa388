package storefront

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/asianjeff44490-crypto/discord-bot/internal/logging"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/adapters/memory"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/catalog"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/dispatch"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/domain"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/ports"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/session"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/shop"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/ticket"
)

// Version is the release version, overridable at link time.
var Version = "0.1.0"

// App is the assembled storefront. It routes platform interactions to the
// shop handlers and replies through the platform.
type App struct {
	Catalog     *catalog.Catalog
	Sessions    *session.Manager
	Provisioner *ticket.Provisioner
	Shop        *shop.Shop
	Dispatcher  *dispatch.Dispatcher

	logger *slog.Logger
}

type settings struct {
	catalog       *catalog.Catalog
	store         ports.SelectionStore
	locker        ports.DistributedLocker
	hooks         domain.LifecycleHooks
	logger        *slog.Logger
	ticketOptions []ticket.Option
}

// Option configures New.
type Option func(*settings)

// WithCatalog replaces the default two-product catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *settings) {
		s.catalog = c
	}
}

// WithSelectionStore sets where selections live. Defaults to process memory.
func WithSelectionStore(store ports.SelectionStore) Option {
	return func(s *settings) {
		s.store = store
	}
}

// WithLocker makes the per-user purchase guard hold across replicas.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(s *settings) {
		s.locker = locker
	}
}

// WithLifecycleHooks registers observability hooks. Hooks from repeated
// calls are all invoked, in order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *settings) {
		s.hooks = chainHooks(s.hooks, hooks)
	}
}

// WithTicketOptions passes options through to the ticket provisioner.
func WithTicketOptions(opts ...ticket.Option) Option {
	return func(s *settings) {
		s.ticketOptions = append(s.ticketOptions, opts...)
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// New assembles the storefront on top of a chat platform.
func New(platform ports.Platform, opts ...Option) (*App, error) {
	s := &settings{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	if s.catalog == nil {
		c, err := catalog.New(catalog.Defaults()...)
		if err != nil {
			return nil, fmt.Errorf("failed to seed default catalog: %w", err)
		}
		s.catalog = c
	}
	if s.store == nil {
		s.store = memory.NewStore()
	}

	ticketOpts := append([]ticket.Option{ticket.WithLogger(s.logger)}, s.ticketOptions...)
	if s.hooks.OnTicket != nil {
		ticketOpts = append(ticketOpts, ticket.WithTicketHook(s.hooks.OnTicket))
	}
	provisioner := ticket.NewProvisioner(platform, ticketOpts...)

	sessionOpts := []session.Option{
		session.WithLogger(s.logger),
		session.WithLockTTL(lockTTL(provisioner.Timeout())),
	}
	if s.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(s.locker))
	}
	sessions := session.NewManager(s.store, sessionOpts...)

	shopOpts := []shop.Option{shop.WithLogger(s.logger)}
	if s.hooks.OnSelection != nil {
		shopOpts = append(shopOpts, shop.WithSelectionHook(s.hooks.OnSelection))
	}
	handlers := shop.New(s.catalog, sessions, provisioner, shopOpts...)

	dispatcher := dispatch.New(platform,
		dispatch.WithErrorRenderer(shop.RenderError),
		dispatch.WithLifecycleHooks(s.hooks),
		dispatch.WithLogger(s.logger),
	)
	handlers.Register(dispatcher)

	return &App{
		Catalog:     s.catalog,
		Sessions:    sessions,
		Provisioner: provisioner,
		Shop:        handlers,
		Dispatcher:  dispatcher,
		logger:      s.logger,
	}, nil
}

// Dispatch handles one inbound interaction. See dispatch.Dispatcher.
func (a *App) Dispatch(ctx context.Context, in domain.Interaction) error {
	return a.Dispatcher.Dispatch(ctx, in)
}

// Commands returns the slash commands the app answers to.
func (a *App) Commands() []domain.CommandSpec {
	return shop.Commands()
}

// lockMargin covers the selection reads and writes around provisioning.
const lockMargin = 10 * time.Second

// lockTTL keeps the purchase guard alive for a whole provisioning attempt.
func lockTTL(timeout time.Duration) time.Duration {
	return max(session.DefaultLockTTL, timeout+lockMargin)
}

func chainHooks(a, b domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnInteraction: chain(a.OnInteraction, b.OnInteraction),
		OnSelection:   chain(a.OnSelection, b.OnSelection),
		OnTicket:      chain(a.OnTicket, b.OnTicket),
	}
}

func chain[E any](first, second func(context.Context, E)) func(context.Context, E) {
	switch {
	case first == nil:
		return second
	case second == nil:
		return first
	}
	return func(ctx context.Context, e E) {
		first(ctx, e)
		second(ctx, e)
	}
}

package shop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/asianjeff44490-crypto/discord-bot/internal/logging"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/dispatch"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/domain"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/ports"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/session"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/ticket"
	"github.com/mitchellh/mapstructure"
)

// Shop holds the storefront handlers.
type Shop struct {
	catalog     ports.Catalog
	sessions    *session.Manager
	provisioner *ticket.Provisioner
	logger      *slog.Logger
	onSelection func(context.Context, *domain.Selection)
}

// Option configures the Shop.
type Option func(*Shop)

// WithLogger configures a logger for the Shop.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Shop) {
		s.logger = logger
	}
}

// WithSelectionHook is called after every recorded selection.
func WithSelectionHook(fn func(context.Context, *domain.Selection)) Option {
	return func(s *Shop) {
		s.onSelection = fn
	}
}

// New creates the storefront handlers.
func New(catalog ports.Catalog, sessions *session.Manager, provisioner *ticket.Provisioner, opts ...Option) *Shop {
	s := &Shop{
		catalog:     catalog,
		sessions:    sessions,
		provisioner: provisioner,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register wires the handlers into a dispatcher.
func (s *Shop) Register(d *dispatch.Dispatcher) {
	d.Register(domain.KindCommand, CommandShop, s.ShowShop)
	d.Register(domain.KindCommand, CommandAddProduct, s.AddProduct)
	d.Register(domain.KindChoice, ControlMenu, s.Choose)
	// Provisioning can wait on the rate limiter and several platform calls.
	d.RegisterDeferred(domain.KindButton, ControlBuy, s.Buy)
}

// ShowShop renders the product menu and the buy button.
func (s *Shop) ShowShop(ctx context.Context, in domain.Interaction) (domain.Response, error) {
	products := s.catalog.List()
	if len(products) == 0 {
		return domain.Response{
			Embeds: []domain.Embed{{Title: shopTitle, Description: MsgShopEmpty, Color: brandColor}},
		}, nil
	}

	if len(products) > maxMenuOptions {
		s.logger.Warn("Catalog exceeds menu capacity, truncating",
			"products", len(products),
			"shown", maxMenuOptions,
		)
		products = products[:maxMenuOptions]
	}

	menu := &domain.Menu{ControlID: ControlMenu, Placeholder: menuPlaceholder}
	for _, p := range products {
		menu.Options = append(menu.Options, domain.MenuOption{
			Label:       truncate(p.Name, maxOptionLabel),
			Value:       p.ID,
			Description: truncate(p.PriceLabel(), maxOptionSubtitle),
		})
	}

	return domain.Response{
		Embeds:  []domain.Embed{{Title: shopTitle, Description: shopDescription, Color: brandColor}},
		Menu:    menu,
		Buttons: []domain.Button{{ControlID: ControlBuy, Label: buyLabel, Style: domain.ButtonSuccess}},
	}, nil
}

// productInput mirrors the addproduct options. Pointers tell absent from zero.
type productInput struct {
	Name        *string  `mapstructure:"name"`
	Description *string  `mapstructure:"description"`
	Price       *float64 `mapstructure:"price"`
}

func decodeProduct(options map[string]any) (domain.Product, error) {
	var in productInput
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &in,
		TagName: "mapstructure",
	})
	if err != nil {
		return domain.Product{}, err
	}
	if err := dec.Decode(options); err != nil {
		return domain.Product{}, domain.Validation("malformed options: %v", err)
	}

	switch {
	case in.Name == nil:
		return domain.Product{}, domain.Validation("name is required")
	case in.Description == nil:
		return domain.Product{}, domain.Validation("description is required")
	case in.Price == nil:
		return domain.Product{}, domain.Validation("price is required")
	}
	return domain.Product{Name: *in.Name, Description: *in.Description, Price: *in.Price}, nil
}

// AddProduct appends a product to the catalog. The platform restricts the
// command to administrators.
func (s *Shop) AddProduct(ctx context.Context, in domain.Interaction) (domain.Response, error) {
	p, err := decodeProduct(in.Options)
	if err != nil {
		return domain.Response{}, err
	}
	p, err = s.catalog.Add(p)
	if err != nil {
		return domain.Response{}, err
	}

	s.logger.Info("Product added",
		"product_id", p.ID,
		"name", p.Name,
		"price", p.Price,
		"by", in.Actor.ID,
	)
	return domain.Response{
		Content: fmt.Sprintf("✅ Added product:\n**%s**\n%s\n💰 %s", p.Name, p.Description, p.PriceLabel()),
	}, nil
}

// Choose records the product picked from the menu.
func (s *Shop) Choose(ctx context.Context, in domain.Interaction) (domain.Response, error) {
	p, err := s.catalog.Resolve(in.Value)
	if err != nil {
		return domain.Response{}, err
	}

	sel, err := s.sessions.Set(ctx, in.Actor.ID, p)
	if err != nil {
		return domain.Response{}, err
	}
	if s.onSelection != nil {
		s.onSelection(ctx, sel)
	}

	return domain.Response{
		Embeds: []domain.Embed{{
			Title:       p.Name,
			Description: fmt.Sprintf("%s\n\n💵 **%s**", p.Description, p.PriceLabel()),
			Color:       brandColor,
		}},
		Private: true,
	}, nil
}

// Buy runs the purchase protocol under the user's guard. A concurrent second
// attempt by the same user is rejected with domain.ErrBusy. The selection is
// cleared only after the ticket is fully provisioned.
func (s *Shop) Buy(ctx context.Context, in domain.Interaction) (domain.Response, error) {
	var resp domain.Response
	err := s.sessions.TryWithLock(ctx, in.Actor.ID, func(ctx context.Context) error {
		product, ok, err := s.sessions.Get(ctx, in.Actor.ID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.Precondition(domain.ErrNoSelection)
		}

		t, err := s.provisioner.Provision(ctx, ticket.Request{
			Owner:   in.Actor,
			GuildID: in.Context.GuildID,
			Product: product,
		})
		if err != nil {
			return err
		}

		if err := s.sessions.Clear(ctx, in.Actor.ID); err != nil {
			// The ticket exists; the stale selection only allows a duplicate later.
			s.logger.Warn("Failed to clear selection after ticket creation",
				"user_id", in.Actor.ID,
				"channel_id", t.Channel.ID,
				"err", err,
			)
		}

		resp = domain.Notice(fmt.Sprintf(MsgTicketCreated, t.Channel.Mention()))
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrBusy) {
			return domain.Response{}, domain.Precondition(domain.ErrBusy)
		}
		return domain.Response{}, err
	}
	return resp, nil
}

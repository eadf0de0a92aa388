package storefront_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	storefront "github.com/asianjeff44490-crypto/discord-bot"
	"github.com/asianjeff44490-crypto/discord-bot/internal/testutils"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/adapters/redis"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/catalog"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/domain"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/observability"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/shop"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/ticket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const guildID = "guild-1"

var (
	alice = domain.User{ID: "user-alice", Username: "Alice"}
	here  = domain.Context{GuildID: guildID, ChannelID: "general"}
)

func newPlatform(category string) *testutils.FakePlatform {
	p := testutils.NewFakePlatform()
	p.AddGuild(guildID,
		[]domain.Category{{ID: "cat-1", Name: category}},
		[]domain.Role{
			{ID: guildID, Name: "@everyone"},
			{ID: "role-mod", Name: "Mods", Permissions: domain.PermissionManageChannels},
		},
	)
	return p
}

func lastReply(t *testing.T, p *testutils.FakePlatform) domain.Response {
	t.Helper()
	resp, ok := p.LastReply()
	require.True(t, ok, "expected a reply")
	return resp
}

// purchase runs the full shop, choose and buy sequence for one user.
func purchase(t *testing.T, app *storefront.App, p *testutils.FakePlatform, user domain.User) domain.Response {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, app.Dispatch(ctx, domain.CommandInvoked(shop.CommandShop, nil, user, here)))
	menu := lastReply(t, p).Menu
	require.NotNil(t, menu)
	require.NotEmpty(t, menu.Options)

	require.NoError(t, app.Dispatch(ctx, domain.ChoiceMade(shop.ControlMenu, menu.Options[0].Value, user, here)))
	require.NoError(t, app.Dispatch(ctx, domain.ButtonPressed(shop.ControlBuy, user, here)))
	return lastReply(t, p)
}

func TestApp_PurchaseWithDefaults(t *testing.T) {
	p := newPlatform("Tickets")
	app, err := storefront.New(p)
	require.NoError(t, err)

	assert.Equal(t, 2, app.Catalog.Len())

	resp := purchase(t, app, p, alice)
	assert.Contains(t, resp.Content, "<#chan-1>")
	assert.True(t, resp.Private)

	require.Len(t, p.Channels, 1)
	assert.Equal(t, "snowy-alice", p.Channels[0].Name)
	assert.Equal(t, "cat-1", p.Channels[0].ParentID)
	_, staff := p.Channels[0].Grants.For("role-mod")
	assert.True(t, staff)

	require.Len(t, p.Messages, 1)
	assert.Contains(t, p.Messages[0].Text, "YouTube Premium Yearly")

	_, ok, err := app.Sessions.Get(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.False(t, ok, "selection must be consumed")
}

func TestApp_Commands(t *testing.T) {
	app, err := storefront.New(newPlatform("tickets"))
	require.NoError(t, err)

	var names []string
	for _, c := range app.Commands() {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{shop.CommandShop, shop.CommandAddProduct}, names)
}

func TestApp_CustomCatalogAndTicketOptions(t *testing.T) {
	c, err := catalog.New(domain.Product{Name: "Spotify", Description: "1 Month", Price: 3})
	require.NoError(t, err)

	p := newPlatform("Support")
	app, err := storefront.New(p,
		storefront.WithCatalog(c),
		storefront.WithTicketOptions(ticket.WithCategory("support"), ticket.WithPrefix("shop")),
	)
	require.NoError(t, err)

	purchase(t, app, p, alice)
	require.Len(t, p.Channels, 1)
	assert.Equal(t, "shop-alice", p.Channels[0].Name)
	assert.Contains(t, p.Messages[0].Text, "Spotify")
}

func TestApp_LifecycleHooks(t *testing.T) {
	var interactions, selections, tickets, extra atomic.Int32
	p := newPlatform("tickets")

	app, err := storefront.New(p,
		storefront.WithLifecycleHooks(domain.LifecycleHooks{
			OnInteraction: func(context.Context, *domain.InteractionEvent) { interactions.Add(1) },
			OnSelection:   func(context.Context, *domain.Selection) { selections.Add(1) },
			OnTicket:      func(context.Context, *domain.TicketEvent) { tickets.Add(1) },
		}),
		storefront.WithLifecycleHooks(domain.LifecycleHooks{
			OnInteraction: func(context.Context, *domain.InteractionEvent) { extra.Add(1) },
		}),
	)
	require.NoError(t, err)

	purchase(t, app, p, alice)
	assert.Equal(t, int32(3), interactions.Load())
	assert.Equal(t, int32(3), extra.Load())
	assert.Equal(t, int32(1), selections.Load())
	assert.Equal(t, int32(1), tickets.Load())
}

func TestApp_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	p := newPlatform("tickets")

	app, err := storefront.New(p, storefront.WithLifecycleHooks(m.Hooks(nil)))
	require.NoError(t, err)

	purchase(t, app, p, alice)
	require.NoError(t, app.Dispatch(context.Background(), domain.ButtonPressed(shop.ControlBuy, alice, here)))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Tickets.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Selections))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Interactions.WithLabelValues("button", shop.ControlBuy, "rejected")))
}

// Two replicas sharing Redis see the same selection and the same guard.
func TestApp_SharedRedisState(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	c, err := catalog.New(catalog.Defaults()...)
	require.NoError(t, err)

	p := newPlatform("tickets")
	newReplica := func() *storefront.App {
		app, err := storefront.New(p,
			storefront.WithCatalog(c),
			storefront.WithSelectionStore(redis.NewFromClient(client)),
			storefront.WithLocker(redis.NewLocker(client, "test:")),
		)
		require.NoError(t, err)
		return app
	}
	first, second := newReplica(), newReplica()
	ctx := context.Background()

	product := c.List()[1]
	require.NoError(t, first.Dispatch(ctx, domain.ChoiceMade(shop.ControlMenu, product.ID, alice, here)))
	require.NoError(t, second.Dispatch(ctx, domain.ButtonPressed(shop.ControlBuy, alice, here)))

	assert.Contains(t, lastReply(t, p).Content, "<#chan-1>")
	require.Len(t, p.Messages, 1)
	assert.Contains(t, p.Messages[0].Text, product.Name)

	_, ok, err := first.Sessions.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestApp_LockOutlivesProvisionTimeout(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	p := newPlatform("tickets")
	app, err := storefront.New(p,
		storefront.WithSelectionStore(redis.NewFromClient(client)),
		storefront.WithLocker(redis.NewLocker(client, "test:")),
		storefront.WithTicketOptions(ticket.WithTimeout(2*time.Minute)),
	)
	require.NoError(t, err)

	var held time.Duration
	p.BeforeCreate = func(context.Context) {
		held = mr.TTL("test:lock:" + alice.ID)
	}

	resp := purchase(t, app, p, alice)
	assert.Contains(t, resp.Content, "<#chan-1>")
	assert.Greater(t, held, 2*time.Minute, "the guard must not expire while provisioning may still run")
	assert.False(t, mr.Exists("test:lock:"+alice.ID))
}

func TestApp_ConcurrentUsers(t *testing.T) {
	p := newPlatform("tickets")
	app, err := storefront.New(p)
	require.NoError(t, err)

	const users = 20
	ctx := context.Background()
	value := app.Catalog.List()[0].ID

	done := make(chan struct{})
	for i := 0; i < users; i++ {
		go func(u domain.User) {
			defer func() { done <- struct{}{} }()
			_ = app.Dispatch(ctx, domain.ChoiceMade(shop.ControlMenu, value, u, here))
			_ = app.Dispatch(ctx, domain.ButtonPressed(shop.ControlBuy, u, here))
		}(domain.User{ID: fmt.Sprintf("user-%d", i), Username: fmt.Sprintf("buyer%d", i)})
	}
	for i := 0; i < users; i++ {
		<-done
	}

	assert.Equal(t, users, p.CreatedChannels())
	sels, err := app.Sessions.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sels)
}

package ticket_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/asianjeff44490-crypto/discord-bot/internal/testutils"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/domain"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/ticket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var netflix = domain.Product{ID: "p-netflix", Name: "Netflix Yearly", Description: "1 Year", Price: 15}

func setup() *testutils.FakePlatform {
	platform := testutils.NewFakePlatform()
	platform.AddGuild("guild-1",
		[]domain.Category{{ID: "cat-general", Name: "General"}, {ID: "cat-tickets", Name: "Tickets"}},
		[]domain.Role{
			{ID: "guild-1", Name: "@everyone"},
			{ID: "admin", Name: "Admin", Permissions: domain.PermissionAdministrator},
		},
	)
	return platform
}

func request() ticket.Request {
	return ticket.Request{
		Owner:   domain.User{ID: "user-1", Username: "alice"},
		GuildID: "guild-1",
		Product: netflix,
	}
}

func TestProvision_Success(t *testing.T) {
	platform := setup()
	var events []*domain.TicketEvent
	p := ticket.NewProvisioner(platform, ticket.WithTicketHook(func(_ context.Context, e *domain.TicketEvent) {
		events = append(events, e)
	}))

	tk, err := p.Provision(context.Background(), request())
	require.NoError(t, err)

	require.Len(t, platform.Channels, 1)
	spec := platform.Channels[0]
	assert.Equal(t, "snowy-alice", spec.Name)
	assert.Equal(t, "cat-tickets", spec.ParentID, "category match ignores case")
	assert.Len(t, spec.Grants, 3)

	assert.Equal(t, "chan-1", tk.Channel.ID)
	assert.Equal(t, netflix, tk.Product)

	require.Len(t, platform.Messages, 1)
	assert.Equal(t, "chan-1", platform.Messages[0].ChannelID)
	assert.Contains(t, platform.Messages[0].Text, "Netflix Yearly")

	require.Len(t, events, 1)
	assert.Equal(t, "chan-1", events[0].ChannelID)
	assert.NoError(t, events[0].Err)
}

func TestProvision_NotInGuild(t *testing.T) {
	platform := setup()
	p := ticket.NewProvisioner(platform)

	req := request()
	req.GuildID = ""
	_, err := p.Provision(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrNotInGuild)
	assert.Equal(t, domain.KindPrecondition, domain.KindOf(err))
	assert.Zero(t, platform.CreatedChannels())
}

func TestProvision_MissingCategory(t *testing.T) {
	platform := testutils.NewFakePlatform()
	platform.AddGuild("guild-1", []domain.Category{{ID: "c1", Name: "support"}}, nil)
	p := ticket.NewProvisioner(platform)

	_, err := p.Provision(context.Background(), request())

	assert.ErrorIs(t, err, domain.ErrNoTicketCategory)
	assert.Equal(t, domain.KindPrecondition, domain.KindOf(err))
	assert.Zero(t, platform.CreatedChannels())
}

func TestProvision_CustomCategoryAndPrefix(t *testing.T) {
	platform := testutils.NewFakePlatform()
	platform.AddGuild("guild-1", []domain.Category{{ID: "c1", Name: "ORDERS"}}, nil)
	p := ticket.NewProvisioner(platform, ticket.WithCategory("orders"), ticket.WithPrefix("shop"))

	_, err := p.Provision(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, "shop-alice", platform.Channels[0].Name)
	assert.Equal(t, "c1", platform.Channels[0].ParentID)
}

func TestProvision_CreateFails(t *testing.T) {
	platform := setup()
	platform.CreateErr = errors.New("missing permissions")
	var events []*domain.TicketEvent
	p := ticket.NewProvisioner(platform, ticket.WithTicketHook(func(_ context.Context, e *domain.TicketEvent) {
		events = append(events, e)
	}))

	_, err := p.Provision(context.Background(), request())

	assert.Equal(t, domain.KindProvisioning, domain.KindOf(err))
	assert.ErrorIs(t, err, platform.CreateErr)
	assert.Empty(t, platform.Messages)
	require.Len(t, events, 1)
	assert.Error(t, events[0].Err)
}

func TestProvision_WelcomeMessageFails(t *testing.T) {
	platform := setup()
	platform.SendErr = errors.New("cannot send")
	p := ticket.NewProvisioner(platform)

	_, err := p.Provision(context.Background(), request())

	assert.Equal(t, domain.KindProvisioning, domain.KindOf(err))
	assert.Equal(t, 1, platform.CreatedChannels())
}

func TestProvision_Timeout(t *testing.T) {
	platform := setup()
	platform.BeforeCreate = func(ctx context.Context) { <-ctx.Done() }
	platform.CreateErr = context.DeadlineExceeded
	p := ticket.NewProvisioner(platform, ticket.WithTimeout(20*time.Millisecond))

	start := time.Now()
	_, err := p.Provision(context.Background(), request())

	assert.Equal(t, domain.KindProvisioning, domain.KindOf(err))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestProvision_RateLimitHonoursContext(t *testing.T) {
	platform := setup()
	p := ticket.NewProvisioner(platform, ticket.WithRateLimit(0.001, 1))

	_, err := p.Provision(context.Background(), request())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = p.Provision(ctx, request())

	assert.Equal(t, domain.KindProvisioning, domain.KindOf(err))
	assert.Equal(t, 1, platform.CreatedChannels(), "throttled attempt must not reach the platform")
}

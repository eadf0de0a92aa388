package ticket_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/asianjeff44490-crypto/discord-bot/pkg/domain"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/ticket"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestComputeGrants(t *testing.T) {
	roles := []domain.Role{
		{ID: "guild-1", Name: "@everyone", Permissions: domain.PermissionViewChannel},
		{ID: "admin", Name: "Admin", Permissions: domain.PermissionAdministrator},
		{ID: "mods", Name: "Mods", Permissions: domain.PermissionManageChannels | domain.PermissionSendMessages},
		{ID: "members", Name: "Members", Permissions: domain.PermissionSendMessages},
	}

	grants := ticket.ComputeGrants("guild-1", "user-1", roles)

	assert.Equal(t, domain.GrantSet{
		{TargetID: "guild-1", Target: domain.TargetRole, Deny: domain.PermissionViewChannel},
		{TargetID: "user-1", Target: domain.TargetMember, Allow: ticket.Member},
		{TargetID: "admin", Target: domain.TargetRole, Allow: ticket.Member},
		{TargetID: "mods", Target: domain.TargetRole, Allow: ticket.Member},
	}, grants)
}

func TestComputeGrantsProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("owner allowed, everyone hidden, every staff role allowed", prop.ForAll(
		func(perms []uint32) bool {
			roles := make([]domain.Role, len(perms))
			for i, p := range perms {
				roles[i] = domain.Role{ID: fmt.Sprintf("role-%d", i), Permissions: domain.Permission(p)}
			}

			grants := ticket.ComputeGrants("guild", "owner", roles)

			owner, ok := grants.For("owner")
			if !ok || !owner.Allow.Has(ticket.Member) || owner.Deny != 0 {
				return false
			}
			everyone, ok := grants.For("guild")
			if !ok || !everyone.Deny.Has(domain.PermissionViewChannel) || everyone.Allow.Has(domain.PermissionViewChannel) {
				return false
			}
			for _, r := range roles {
				g, ok := grants.For(r.ID)
				if r.IsStaff() != ok {
					return false
				}
				if ok && !g.Allow.Has(ticket.Member) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.UInt32Range(0, 15)),
	))

	properties.TestingRun(t)
}

func TestChannelName(t *testing.T) {
	cases := map[string]string{
		"alice":           "snowy-alice",
		"Alice.Smith":     "snowy-alice-smith",
		"bob__builder":    "snowy-bob__builder",
		"...":             "snowy-ticket",
		"x  y":            "snowy-x-y",
		"trailing.":       "snowy-trailing",
		"Über":            "snowy-über",
		"":                "snowy-ticket",
		"ends-with-dash-": "snowy-ends-with-dash",
	}
	for in, want := range cases {
		assert.Equal(t, want, ticket.ChannelName("snowy", in), in)
	}

	long := ticket.ChannelName("snowy", strings.Repeat("a", 200))
	assert.Len(t, []rune(long), 100)
}

func TestWelcomeMessage(t *testing.T) {
	msg := ticket.WelcomeMessage(domain.Ticket{
		Owner:   domain.User{ID: "42", Username: "alice"},
		Product: domain.Product{Name: "Netflix Yearly", Price: 15},
	})

	assert.Contains(t, msg, "<@42>")
	assert.Contains(t, msg, "**Netflix Yearly**")
	assert.Contains(t, msg, "**$15**")
	assert.Contains(t, msg, "A staff member will assist you shortly.")
}

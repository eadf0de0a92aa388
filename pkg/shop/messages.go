package shop

import (
	"errors"
	"fmt"

	"github.com/asianjeff44490-crypto/discord-bot/pkg/dispatch"
	"github.com/asianjeff44490-crypto/discord-bot/pkg/domain"
)

// User-visible texts.
const (
	MsgPickFirst      = "❌ Please pick a product first."
	MsgServerOnly     = "❌ This command can only be used in a server."
	MsgNoCategory     = "❌ Error: No 'Tickets' category found. Please ask an admin to create one."
	MsgTicketFailed   = "❌ Failed to create ticket. Please make sure the bot has 'Manage Channels' permission."
	MsgBusy           = "⏳ Your ticket is already being processed. Please wait a moment."
	MsgUnavailable    = "❌ That product is no longer available. Please run /shop again."
	MsgUnknown        = "❌ This action is no longer supported."
	MsgTicketCreated  = "🎫 Your ticket has been created: %s"
	MsgShopEmpty      = "The shop has no products yet."
	shopTitle         = "❄ Snowy Solutions Shop"
	shopDescription   = "Choose a product from the dropdown below."
	menuPlaceholder   = "Select a product to buy..."
	buyLabel          = "Buy Now"
	brandColor        = 0x00BFFF
	maxMenuOptions    = 25
	maxOptionLabel    = 100
	maxOptionSubtitle = 100
)

// RenderError maps handler errors to replies. Every reply is private.
func RenderError(err error) domain.Response {
	switch {
	case errors.Is(err, domain.ErrBusy):
		return domain.Notice(MsgBusy)
	case errors.Is(err, domain.ErrNoSelection):
		return domain.Notice(MsgPickFirst)
	case errors.Is(err, domain.ErrNotInGuild):
		return domain.Notice(MsgServerOnly)
	case errors.Is(err, domain.ErrNoTicketCategory):
		return domain.Notice(MsgNoCategory)
	case errors.Is(err, domain.ErrUnknownInteraction):
		return domain.Notice(MsgUnknown)
	}

	var e *domain.Error
	if errors.As(err, &e) {
		switch e.Kind {
		case domain.KindValidation:
			return domain.Notice(fmt.Sprintf("❌ Invalid product: %s.", e.Msg))
		case domain.KindIndex:
			return domain.Notice(MsgUnavailable)
		case domain.KindProvisioning:
			return domain.Notice(MsgTicketFailed)
		}
	}
	return domain.Notice(dispatch.GenericFailure)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

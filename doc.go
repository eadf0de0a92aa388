/*
Package storefront is a chat storefront bot: it lists a product catalog in an
interactive menu, remembers what each user picked, and opens a private ticket
channel shared with staff when the user confirms the purchase.

# Architecture

The core is platform neutral. Inbound events arrive as domain.Interaction
values and are routed by a dispatch.Dispatcher to the shop handlers. Outbound
effects go through ports.Platform, implemented for Discord by
pkg/adapters/discord and by an in-memory fake in tests.

  - pkg/catalog holds the products, each with a stable id.
  - pkg/session keeps one selection per user and guards purchases so a user
    can only run one at a time.
  - pkg/ticket validates the guild, computes the channel access list and
    creates the ticket channel.
  - pkg/dispatch turns every handler result, error or panic into exactly one
    reply.

# Usage

	app, err := storefront.New(bot,
		storefront.WithLogger(logger),
		storefront.WithTicketOptions(ticket.WithTimeout(10*time.Second)),
	)
	if err != nil {
		return err
	}
	return bot.Start(ctx, app)

Selections are kept in memory by default. Pass WithSelectionStore and
WithLocker with the Redis adapters to share them between processes.
*/
package storefront

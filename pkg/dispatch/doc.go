/*
Package dispatch routes inbound interactions to handlers.

Handlers are registered by interaction kind and target (a command name or a
control id). The Dispatcher is the failure boundary of the bot: handler errors
are rendered into replies and panics are recovered, so a single interaction
can never take the process down.
*/
package dispatch

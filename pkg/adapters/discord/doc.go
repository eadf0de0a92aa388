/*
Package discord connects the storefront to Discord through discordgo.

Gateway interactions are translated into domain interactions and handed to a
Dispatcher. Replies, guild lookups and channel creation go through the REST
API, with the gateway's guild cache used for categories and roles when it is
populated.
*/
package discord

/*
Package domain defines the storefront's core types: catalog products, user
selections, guild roles and channel grants, inbound interactions and the
responses sent back for them.

It also defines the error taxonomy shared by every layer. Handlers return
*Error values classified by Kind, and the dispatcher turns them into
user-visible replies.
*/
package domain

/*
Package ticket provisions private support channels for purchases.

A ticket lives in the guild's "tickets" category, which an admin must create
beforehand. Its access list hides it from everyone except the buyer and the
roles that can administer the guild or manage channels.
*/
package ticket

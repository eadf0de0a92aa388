/*
Package session implements the selection registry.

It records the product each user most recently picked and provides the
per-user guard that keeps two purchase attempts from the same user from
interleaving. The guard is a local mutex, optionally backed by a
DistributedLocker when several bot replicas share one store.
*/
package session

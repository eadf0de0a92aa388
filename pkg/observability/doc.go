/*
Package observability provides Prometheus metrics for the storefront.

Metrics are fed through domain.LifecycleHooks, so the dispatcher, the shop
and the ticket provisioner stay unaware of the metrics backend.
*/
package observability

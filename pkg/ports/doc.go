/*
Package ports defines the driven ports (interfaces) of the storefront.

These interfaces decouple the interaction handlers from the chat platform and
from the selection storage backend.

# Key Interfaces

  - SelectionStore: keeps the product each user most recently picked.
  - DistributedLocker: provides the per-user purchase guard across replicas.
  - Responder and Guild: the reply and guild-graph capabilities of the platform.
  - Catalog: the ordered product list.
*/
package ports

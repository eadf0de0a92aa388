package ports

import (
	"context"

	"github.com/asianjeff44490-crypto/discord-bot/pkg/domain"
)

// SelectionStore defines the interface for keeping per-user selections.
// Selections are ephemeral; implementations may expire them.
type SelectionStore interface {
	// Save replaces the selection for a given user.
	Save(ctx context.Context, userID string, sel *domain.Selection) error

	// Load retrieves the selection for a given user.
	// Returns domain.ErrSelectionNotFound if the user has none.
	Load(ctx context.Context, userID string) (*domain.Selection, error)

	// Delete removes the selection. Deleting a missing selection is not an error.
	Delete(ctx context.Context, userID string) error

	// List returns the ids of users holding a selection.
	List(ctx context.Context) ([]string, error)
}

// Catalog is the ordered product list shown in the shop.
type Catalog interface {
	Add(p domain.Product) (domain.Product, error)
	Resolve(value string) (domain.Product, error)
	List() []domain.Product
	Len() int
}

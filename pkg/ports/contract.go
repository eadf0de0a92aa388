package ports

import (
	"context"
	"testing"
	"time"

	"github.com/asianjeff44490-crypto/discord-bot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSelectionStoreContract runs a suite of tests to verify that a SelectionStore
// implementation adheres to the defined interface contract.
func RunSelectionStoreContract(t *testing.T, store SelectionStore) {
	ctx := context.Background()
	userID := "contract-user-" + time.Now().Format("20060102150405")

	netflix := domain.Product{ID: "p-1", Name: "Netflix Yearly", Description: "1 Year Access", Price: 15}
	youtube := domain.Product{ID: "p-2", Name: "YouTube Premium Yearly", Description: "1 Year Access", Price: 23.5}

	t.Run("Save and Load", func(t *testing.T) {
		sel := &domain.Selection{UserID: userID, Product: netflix, SelectedAt: time.Now().UTC()}

		err := store.Save(ctx, userID, sel)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, userID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, userID, loaded.UserID)
		assert.Equal(t, netflix, loaded.Product)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, userID, &domain.Selection{UserID: userID, Product: netflix}))
		require.NoError(t, store.Save(ctx, userID, &domain.Selection{UserID: userID, Product: youtube}))

		loaded, err := store.Load(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, youtube, loaded.Product, "last write must win")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+userID)
		assert.ErrorIs(t, err, domain.ErrSelectionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, userID, &domain.Selection{UserID: userID, Product: netflix}))

		err := store.Delete(ctx, userID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, userID)
		assert.ErrorIs(t, err, domain.ErrSelectionNotFound, "Load after Delete should return ErrSelectionNotFound")

		assert.NoError(t, store.Delete(ctx, userID), "Delete must be idempotent")
	})

	t.Run("List", func(t *testing.T) {
		id1 := userID + "-1"
		id2 := userID + "-2"
		_ = store.Save(ctx, id1, &domain.Selection{UserID: id1, Product: netflix})
		_ = store.Save(ctx, id2, &domain.Selection{UserID: id2, Product: youtube})

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		users, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, users, id1)
		assert.Contains(t, users, id2)
	})
}

// Package shoppinglists stores shopping lists under
// users/{userId}/shoppingLists.
package shoppinglists

import (
	"context"

	"github.com/dmitrijs2005/pantrykeeper/internal/server/models"
)

type Repository interface {
	// Create stores an empty list with createdAt set to the commit time and
	// returns its store-assigned id.
	Create(ctx context.Context, userID string, list *models.ShoppingList) (string, error)
	Get(ctx context.Context, userID, listID string) (*models.ShoppingList, error)
	// AppendItem atomically appends item with addedAt set to the commit time.
	AppendItem(ctx context.Context, userID, listID string, item models.ShoppingListItem) error
	// RemoveItemsNamed atomically drops every entry whose itemName equals name.
	RemoveItemsNamed(ctx context.Context, userID, listID, name string) error
	// RewriteItemsWithout reads the stored entries, drops those whose
	// itemName equals name and writes the rest back unchanged. An append
	// committed between the read and the write is lost.
	RewriteItemsWithout(ctx context.Context, userID, listID, name string) error
}

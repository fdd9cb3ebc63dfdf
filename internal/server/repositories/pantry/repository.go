// Package pantry stores pantry items under users/{userId}/pantry.
package pantry

import (
	"context"

	"github.com/dmitrijs2005/pantrykeeper/internal/server/models"
)

type Repository interface {
	// Add stores item under a store-assigned id and returns that id.
	Add(ctx context.Context, userID string, item *models.PantryItem) (string, error)
	Get(ctx context.Context, userID, itemID string) (*models.PantryItem, error)
	// Update merges fields into an existing item; common.ErrorNotFound if
	// the item does not exist under that user.
	Update(ctx context.Context, userID, itemID string, fields map[string]any) error
}

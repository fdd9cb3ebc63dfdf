package client

import "context"

// PantryItem is the input of AddPantryItem. Nil numbers are left for the
// server to default.
type PantryItem struct {
	Name       string
	Calories   *float64
	Servings   *float64
	Likability *float64
	Macros     map[string]float64
}

// ShoppingList is the input of CreateShoppingList. A nil Title gets the
// server's default title.
type ShoppingList struct {
	Title *string
	Store *string
}

type Client interface {
	Close() error
	SetAccessToken(token string)
	Ping(ctx context.Context) error
	AddPantryItem(ctx context.Context, item PantryItem) (string, error)
	UpdatePantryItem(ctx context.Context, itemID string, fields map[string]any) error
	CreateShoppingList(ctx context.Context, list ShoppingList) (string, error)
	AddItemToShoppingList(ctx context.Context, listID, itemName string, quantity *float64) error
	RemoveItemFromShoppingList(ctx context.Context, listID, itemName string) error
}

package models

import "time"

// DefaultShoppingListTitle is used when a list is created without a title.
const DefaultShoppingListTitle = "My Shopping List"

// Shopping list field names.
const (
	FieldTitle     = "title"
	FieldStore     = "store"
	FieldCreatedAt = "createdAt"
	FieldItems     = "items"

	FieldItemName = "itemName"
	FieldQuantity = "quantity"
	FieldAddedAt  = "addedAt"
)

// ShoppingList lives at users/{userId}/shoppingLists/{listId}. Items keep
// insertion order and may repeat names.
type ShoppingList struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Store     *string            `json:"store"`
	CreatedAt time.Time          `json:"createdAt"`
	Items     []ShoppingListItem `json:"items"`
}

type ShoppingListItem struct {
	ItemName string    `json:"itemName"`
	Quantity float64   `json:"quantity"`
	AddedAt  time.Time `json:"addedAt"`
}

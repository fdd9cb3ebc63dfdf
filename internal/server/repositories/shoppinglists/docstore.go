package shoppinglists

import (
	"context"

	"github.com/dmitrijs2005/pantrykeeper/internal/server/docstore"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/models"
)

type DocstoreRepository struct {
	store docstore.Store
}

func NewDocstoreRepository(store docstore.Store) *DocstoreRepository {
	return &DocstoreRepository{store: store}
}

func (r *DocstoreRepository) Create(ctx context.Context, userID string, list *models.ShoppingList) (string, error) {
	collection, err := models.ShoppingListsPath(userID)
	if err != nil {
		return "", err
	}

	var store any
	if list.Store != nil {
		store = *list.Store
	}

	return r.store.Add(ctx, collection, map[string]any{
		models.FieldTitle:     list.Title,
		models.FieldStore:     store,
		models.FieldItems:     []any{},
		models.FieldCreatedAt: docstore.ServerTimestamp,
	})
}

func (r *DocstoreRepository) Get(ctx context.Context, userID, listID string) (*models.ShoppingList, error) {
	path, err := models.ShoppingListPath(userID, listID)
	if err != nil {
		return nil, err
	}
	doc, err := r.store.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	list := &models.ShoppingList{
		ID:        doc.ID,
		Title:     doc.String(models.FieldTitle),
		CreatedAt: doc.Time(models.FieldCreatedAt),
		Items:     []models.ShoppingListItem{},
	}
	if s, ok := doc.Fields[models.FieldStore].(string); ok {
		list.Store = &s
	}
	for _, e := range doc.Array(models.FieldItems) {
		m := docstore.AsMap(e)
		list.Items = append(list.Items, models.ShoppingListItem{
			ItemName: docstore.AsString(m[models.FieldItemName]),
			Quantity: docstore.AsFloat(m[models.FieldQuantity]),
			AddedAt:  docstore.AsTime(m[models.FieldAddedAt]),
		})
	}
	return list, nil
}

func (r *DocstoreRepository) AppendItem(ctx context.Context, userID, listID string, item models.ShoppingListItem) error {
	path, err := models.ShoppingListPath(userID, listID)
	if err != nil {
		return err
	}
	return r.store.ArrayAppend(ctx, path, models.FieldItems, map[string]any{
		models.FieldItemName: item.ItemName,
		models.FieldQuantity: item.Quantity,
		models.FieldAddedAt:  docstore.ServerTimestamp,
	})
}

func (r *DocstoreRepository) RemoveItemsNamed(ctx context.Context, userID, listID, name string) error {
	path, err := models.ShoppingListPath(userID, listID)
	if err != nil {
		return err
	}
	return r.store.ArrayRemoveWhere(ctx, path, models.FieldItems, map[string]any{
		models.FieldItemName: name,
	})
}

func (r *DocstoreRepository) RewriteItemsWithout(ctx context.Context, userID, listID, name string) error {
	path, err := models.ShoppingListPath(userID, listID)
	if err != nil {
		return err
	}
	doc, err := r.store.Get(ctx, path)
	if err != nil {
		return err
	}

	entries := doc.Array(models.FieldItems)
	kept := make([]any, 0, len(entries))
	for _, e := range entries {
		if n, ok := docstore.AsMap(e)[models.FieldItemName].(string); ok && n == name {
			continue
		}
		kept = append(kept, e)
	}
	return r.store.ArrayReplace(ctx, path, models.FieldItems, kept)
}

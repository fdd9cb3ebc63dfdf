package pantry

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

func (r *DocstoreRepository) Add(ctx context.Context, userID string, item *models.PantryItem) (string, error) {
	collection, err := models.PantryPath(userID)
	if err != nil {
		return "", err
	}

	macros := item.Macros
	if macros == nil {
		macros = map[string]float64{}
	}

	return r.store.Add(ctx, collection, map[string]any{
		models.FieldName:       item.Name,
		models.FieldCalories:   item.Calories,
		models.FieldServings:   item.Servings,
		models.FieldLikability: item.Likability,
		models.FieldMacros:     macros,
	})
}

func (r *DocstoreRepository) Get(ctx context.Context, userID, itemID string) (*models.PantryItem, error) {
	path, err := models.PantryItemPath(userID, itemID)
	if err != nil {
		return nil, err
	}
	doc, err := r.store.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	macros := map[string]float64{}
	for k, v := range doc.Map(models.FieldMacros) {
		macros[k] = docstore.AsFloat(v)
	}
	return &models.PantryItem{
		ID:         doc.ID,
		Name:       doc.String(models.FieldName),
		Calories:   doc.Float(models.FieldCalories),
		Servings:   doc.Float(models.FieldServings),
		Likability: doc.Float(models.FieldLikability),
		Macros:     macros,
	}, nil
}

func (r *DocstoreRepository) Update(ctx context.Context, userID, itemID string, fields map[string]any) error {
	path, err := models.PantryItemPath(userID, itemID)
	if err != nil {
		return err
	}
	return r.store.Update(ctx, path, fields)
}

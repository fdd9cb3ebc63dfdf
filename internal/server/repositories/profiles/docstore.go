package profiles

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

func (r *DocstoreRepository) CreateIfAbsent(ctx context.Context, p *models.Profile) error {
	path, err := models.UserPath(p.ID)
	if err != nil {
		return err
	}

	providers := p.PreferredProviders
	if providers == nil {
		providers = map[string]any{}
	}

	return r.store.Create(ctx, path, map[string]any{
		models.FieldEmail:              p.Email,
		models.FieldOnboarded:          p.Onboarded,
		models.FieldPreferredProviders: providers,
		models.FieldOnboardDate:        docstore.ServerTimestamp,
	})
}

func (r *DocstoreRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	path, err := models.UserPath(userID)
	if err != nil {
		return nil, err
	}
	doc, err := r.store.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	providers := doc.Map(models.FieldPreferredProviders)
	if providers == nil {
		providers = map[string]any{}
	}
	return &models.Profile{
		ID:                 doc.ID,
		Email:              doc.String(models.FieldEmail),
		OnboardDate:        doc.Time(models.FieldOnboardDate),
		Onboarded:          doc.Bool(models.FieldOnboarded),
		PreferredProviders: providers,
	}, nil
}

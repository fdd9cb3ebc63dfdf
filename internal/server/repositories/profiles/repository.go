// Package profiles stores user root documents.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/pantrykeeper/internal/server/models"
)

type Repository interface {
	// CreateIfAbsent writes a fresh profile with onboardDate set to the
	// commit time. An existing profile is left untouched and
	// common.ErrorAlreadyExists is returned.
	CreateIfAbsent(ctx context.Context, p *models.Profile) error
	Get(ctx context.Context, userID string) (*models.Profile, error)
}

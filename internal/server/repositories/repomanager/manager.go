package repomanager

import (
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/pantry"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/shoppinglists"
)

type RepositoryManager interface {
	Profiles() profiles.Repository
	Pantry() pantry.Repository
	ShoppingLists() shoppinglists.Repository
}

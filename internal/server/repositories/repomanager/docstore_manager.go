// Package repomanager vends the document-store backed repositories over a
// single shared docstore.Store handle.
package repomanager

import (
	"github.com/dmitrijs2005/pantrykeeper/internal/server/docstore"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/pantry"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/shoppinglists"
)

// DocstoreRepositoryManager binds every repository to the same store.
type DocstoreRepositoryManager struct {
	store docstore.Store
}

// Profiles returns a profiles.Repository bound to the store.
func (m *DocstoreRepositoryManager) Profiles() profiles.Repository {
	return profiles.NewDocstoreRepository(m.store)
}

// Pantry returns a pantry.Repository bound to the store.
func (m *DocstoreRepositoryManager) Pantry() pantry.Repository {
	return pantry.NewDocstoreRepository(m.store)
}

// ShoppingLists returns a shoppinglists.Repository bound to the store.
func (m *DocstoreRepositoryManager) ShoppingLists() shoppinglists.Repository {
	return shoppinglists.NewDocstoreRepository(m.store)
}

// NewDocstoreRepositoryManager constructs a RepositoryManager over store.
func NewDocstoreRepositoryManager(store docstore.Store) RepositoryManager {
	return &DocstoreRepositoryManager{store: store}
}

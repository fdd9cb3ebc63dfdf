package models

import (
	"testing"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaths(t *testing.T) {
	p, err := UserPath("u1")
	require.NoError(t, err)
	assert.Equal(t, "users/u1", p)

	p, err = PantryItemPath("u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "users/u1/pantry/p1", p)

	p, err = ShoppingListPath("u1", "l1")
	require.NoError(t, err)
	assert.Equal(t, "users/u1/shoppingLists/l1", p)

	p, err = ShoppingListsPath("u1")
	require.NoError(t, err)
	assert.Equal(t, "users/u1/shoppingLists", p)
}

func TestPaths_RejectInjection(t *testing.T) {
	tests := []struct {
		name string
		fn   func() (string, error)
	}{
		{"empty user", func() (string, error) { return UserPath("") }},
		{"slash in user", func() (string, error) { return PantryPath("u1/pantry/x") }},
		{"empty item", func() (string, error) { return PantryItemPath("u1", "") }},
		{"slash in list", func() (string, error) { return ShoppingListPath("u1", "l1/items") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fn()
			assert.ErrorIs(t, err, common.ErrorInvalidArgument)
		})
	}
}

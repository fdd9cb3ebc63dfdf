package models

import (
	"fmt"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/docstore"
)

func checkID(kind, id string) error {
	if !docstore.ValidID(id) {
		return fmt.Errorf("%w: invalid %s %q", common.ErrorInvalidArgument, kind, id)
	}
	return nil
}

// UserPath returns users/{userID}.
func UserPath(userID string) (string, error) {
	if err := checkID("user id", userID); err != nil {
		return "", err
	}
	return docstore.JoinPath(CollectionUsers, userID), nil
}

// PantryPath returns users/{userID}/pantry.
func PantryPath(userID string) (string, error) {
	p, err := UserPath(userID)
	if err != nil {
		return "", err
	}
	return docstore.JoinPath(p, CollectionPantry), nil
}

// PantryItemPath returns users/{userID}/pantry/{itemID}.
func PantryItemPath(userID, itemID string) (string, error) {
	p, err := PantryPath(userID)
	if err != nil {
		return "", err
	}
	if err := checkID("pantry item id", itemID); err != nil {
		return "", err
	}
	return docstore.JoinPath(p, itemID), nil
}

// ShoppingListsPath returns users/{userID}/shoppingLists.
func ShoppingListsPath(userID string) (string, error) {
	p, err := UserPath(userID)
	if err != nil {
		return "", err
	}
	return docstore.JoinPath(p, CollectionShoppingLists), nil
}

// ShoppingListPath returns users/{userID}/shoppingLists/{listID}.
func ShoppingListPath(userID, listID string) (string, error) {
	p, err := ShoppingListsPath(userID)
	if err != nil {
		return "", err
	}
	if err := checkID("list id", listID); err != nil {
		return "", err
	}
	return docstore.JoinPath(p, listID), nil
}

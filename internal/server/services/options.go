package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/models"
	layering "github.com/goliatone/go-options/layering"
)

// PantryItemOptions are the caller-supplied fields of a new pantry item.
// Nil fields take the value from defaultPantryItem.
type PantryItemOptions struct {
	Name       string
	Calories   *float64
	Servings   *float64
	Likability *float64
	Macros     map[string]float64
}

var defaultPantryItem = PantryItemOptions{
	Calories:   ptr(0.0),
	Servings:   ptr(1.0),
	Likability: ptr(0.0),
	Macros:     map[string]float64{},
}

// ShoppingListOptions are the caller-supplied fields of a new list.
type ShoppingListOptions struct {
	Title *string
	Store *string
}

var defaultShoppingList = ShoppingListOptions{
	Title: ptr(models.DefaultShoppingListTitle),
}

// ShoppingListItemOptions describe one entry appended to a list.
type ShoppingListItemOptions struct {
	ItemName string
	Quantity *float64
}

var defaultShoppingListItem = ShoppingListItemOptions{
	Quantity: ptr(1.0),
}

func (o PantryItemOptions) withDefaults() PantryItemOptions {
	return layering.MergeLayers(o, defaultPantryItem)
}

func (o ShoppingListOptions) withDefaults() ShoppingListOptions {
	if o.Title != nil && *o.Title == "" {
		o.Title = nil
	}
	if o.Store != nil && *o.Store == "" {
		o.Store = nil
	}
	return layering.MergeLayers(o, defaultShoppingList)
}

func (o ShoppingListItemOptions) withDefaults() ShoppingListItemOptions {
	return layering.MergeLayers(o, defaultShoppingListItem)
}

func ptr[T any](v T) *T {
	return &v
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrorInvalidArgument, fmt.Sprintf(format, args...))
}

// number converts the numeric types a decoded payload may carry.
func number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func nonNegative(field string, v float64) error {
	if v < 0 {
		return invalid("%s must be >= 0", field)
	}
	return nil
}

// validMacroName rejects names that document stores treat as operators or
// nested paths.
func validMacroName(name string) bool {
	return name != "" && !strings.HasPrefix(name, "$") && !strings.Contains(name, ".")
}

func validateMacros(macros map[string]float64) error {
	for k, v := range macros {
		if !validMacroName(k) {
			return invalid("invalid macro name %q", k)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalid("macro %q is not a finite number", k)
		}
	}
	return nil
}

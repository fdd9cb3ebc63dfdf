package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/pantrykeeper/internal/client/client"
)

// rpcContext bounds a single RPC by the configured request timeout.
func (a *App) rpcContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.RequestTimeout > 0 {
		return context.WithTimeout(ctx, a.config.RequestTimeout)
	}
	return context.WithCancel(ctx)
}

func (a *App) report(err error) error {
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
	}
	return err
}

func (a *App) Ping(ctx context.Context) error {
	ctx, cancel := a.rpcContext(ctx)
	defer cancel()

	if err := a.client.Ping(ctx); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Server is reachable")
	return nil
}

func (a *App) AddPantryItem(ctx context.Context) error {
	var item client.PantryItem
	var err error

	if item.Name, err = GetSimpleText(a.reader, "Item name:", a.out); err != nil {
		return a.report(err)
	}
	if item.Calories, err = GetOptionalNumber(a.reader, "Calories:", a.out); err != nil {
		return a.report(err)
	}
	if item.Servings, err = GetOptionalNumber(a.reader, "Servings:", a.out); err != nil {
		return a.report(err)
	}
	if item.Likability, err = GetOptionalNumber(a.reader, "Likability:", a.out); err != nil {
		return a.report(err)
	}
	if item.Macros, err = GetNumberMap(a.reader, "Macros", a.out); err != nil {
		return a.report(err)
	}

	ctx, cancel := a.rpcContext(ctx)
	defer cancel()

	id, err := a.client.AddPantryItem(ctx, item)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Pantry item added:", id)
	return nil
}

func (a *App) UpdatePantryItem(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Pantry item id:", a.out)
	if err != nil {
		return a.report(err)
	}

	fields := map[string]any{}
	name, err := GetOptionalText(a.reader, "New name:", a.out)
	if err != nil {
		return a.report(err)
	}
	if name != nil {
		fields["name"] = *name
	}
	for _, key := range []string{"calories", "servings", "likability"} {
		v, err := GetOptionalNumber(a.reader, "New "+key+":", a.out)
		if err != nil {
			return a.report(err)
		}
		if v != nil {
			fields[key] = *v
		}
	}
	macros, err := GetNumberMap(a.reader, "New macros", a.out)
	if err != nil {
		return a.report(err)
	}
	if macros != nil {
		m := make(map[string]any, len(macros))
		for k, v := range macros {
			m[k] = v
		}
		fields["macros"] = m
	}

	ctx, cancel := a.rpcContext(ctx)
	defer cancel()

	if err := a.client.UpdatePantryItem(ctx, id, fields); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Pantry item updated")
	return nil
}

func (a *App) CreateShoppingList(ctx context.Context) error {
	var list client.ShoppingList
	var err error

	if list.Title, err = GetOptionalText(a.reader, "List title:", a.out); err != nil {
		return a.report(err)
	}
	if list.Store, err = GetOptionalText(a.reader, "Store:", a.out); err != nil {
		return a.report(err)
	}

	ctx, cancel := a.rpcContext(ctx)
	defer cancel()

	id, err := a.client.CreateShoppingList(ctx, list)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Shopping list created:", id)
	return nil
}

func (a *App) AddToShoppingList(ctx context.Context) error {
	listID, err := GetSimpleText(a.reader, "List id:", a.out)
	if err != nil {
		return a.report(err)
	}
	name, err := GetSimpleText(a.reader, "Item name:", a.out)
	if err != nil {
		return a.report(err)
	}
	qty, err := GetOptionalNumber(a.reader, "Quantity:", a.out)
	if err != nil {
		return a.report(err)
	}

	ctx, cancel := a.rpcContext(ctx)
	defer cancel()

	if err := a.client.AddItemToShoppingList(ctx, listID, name, qty); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Item added")
	return nil
}

func (a *App) RemoveFromShoppingList(ctx context.Context) error {
	listID, err := GetSimpleText(a.reader, "List id:", a.out)
	if err != nil {
		return a.report(err)
	}
	name, err := GetSimpleText(a.reader, "Item name:", a.out)
	if err != nil {
		return a.report(err)
	}

	ctx, cancel := a.rpcContext(ctx)
	defer cancel()

	if err := a.client.RemoveItemFromShoppingList(ctx, listID, name); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Item removed")
	return nil
}

func (a *App) SetToken(_ context.Context) error {
	token, err := GetSimpleText(a.reader, "Access token:", a.out)
	if err != nil {
		return a.report(err)
	}
	a.client.SetAccessToken(token)
	fmt.Fprintln(a.out, "Token set")
	return nil
}

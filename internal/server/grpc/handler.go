package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func (s *GRPCServer) AddPantryItem(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, s.mapError(ctx, common.ErrorUnauthenticated)
	}

	opts, err := pantryItemOptions(decode(in))
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	id, err := s.pantry.AddItem(ctx, userID, opts)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	s.logger.Info(ctx, "Pantry item added", "user_id", userID, "item_id", id)
	return result(map[string]any{"pantryItemId": id})
}

func pantryItemOptions(p payload) (services.PantryItemOptions, error) {
	var o services.PantryItemOptions

	name, err := p.optionalString("name")
	if err != nil {
		return o, err
	}
	if name != nil {
		o.Name = *name
	}
	if o.Calories, err = p.optionalNumber("calories"); err != nil {
		return o, err
	}
	if o.Servings, err = p.optionalNumber("servings"); err != nil {
		return o, err
	}
	if o.Likability, err = p.optionalNumber("likability"); err != nil {
		return o, err
	}
	if o.Macros, err = p.optionalNumberMap("macros"); err != nil {
		return o, err
	}
	return o, nil
}

func (s *GRPCServer) UpdatePantryItem(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, s.mapError(ctx, common.ErrorUnauthenticated)
	}

	p := decode(in)
	itemID, err := p.requiredString("pantryItemId")
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	fields, err := p.optionalObject("fieldsToUpdate")
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	if fields == nil {
		return nil, s.mapError(ctx, invalidArg("fieldsToUpdate is required"))
	}

	if err := s.pantry.UpdateItem(ctx, userID, itemID, fields); err != nil {
		return nil, s.mapError(ctx, err)
	}

	s.logger.Info(ctx, "Pantry item updated", "user_id", userID, "item_id", itemID)
	return success()
}

func (s *GRPCServer) CreateShoppingList(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, s.mapError(ctx, common.ErrorUnauthenticated)
	}

	p := decode(in)
	title, err := p.optionalString("title")
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	store, err := p.optionalString("store")
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	id, err := s.lists.CreateList(ctx, userID, services.ShoppingListOptions{Title: title, Store: store})
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	s.logger.Info(ctx, "Shopping list created", "user_id", userID, "list_id", id)
	return result(map[string]any{"listId": id})
}

func (s *GRPCServer) AddItemToShoppingList(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, s.mapError(ctx, common.ErrorUnauthenticated)
	}

	p := decode(in)
	listID, err := p.requiredString("listId")
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	itemName, err := p.requiredString("itemName")
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	quantity, err := p.optionalNumber("quantity")
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	err = s.lists.AddItem(ctx, userID, listID, services.ShoppingListItemOptions{ItemName: itemName, Quantity: quantity})
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	s.logger.Info(ctx, "Shopping list item added", "user_id", userID, "list_id", listID)
	return success()
}

func (s *GRPCServer) RemoveItemFromShoppingList(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, s.mapError(ctx, common.ErrorUnauthenticated)
	}

	p := decode(in)
	listID, err := p.requiredString("listId")
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	itemName, err := p.requiredString("itemName")
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	if err := s.lists.RemoveItem(ctx, userID, listID, itemName); err != nil {
		return nil, s.mapError(ctx, err)
	}

	s.logger.Info(ctx, "Shopping list item removed", "user_id", userID, "list_id", listID)
	return success()
}

func (s *GRPCServer) Ping(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {

	return result(map[string]any{"status": "OK"})

}

// mapError converts a service error into a caller-facing status. Unexpected
// errors are logged and reported as Internal without details.
func (s *GRPCServer) mapError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorUnauthenticated):
		return status.Error(codes.Unauthenticated, "unauthenticated")
	case errors.Is(err, common.ErrorInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	default:
		s.logger.Error(ctx, "request failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

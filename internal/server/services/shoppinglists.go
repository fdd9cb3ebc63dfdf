package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/logging"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/events"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/models"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/repomanager"
)

// RemovalMode selects how RemoveItem drops entries from a list.
type RemovalMode string

const (
	// RemovalAtomic removes matching entries in a single store operation.
	RemovalAtomic RemovalMode = "atomic"
	// RemovalRewrite reads the list, filters it and writes the result back.
	// An append committed between the read and the write is lost.
	RemovalRewrite RemovalMode = "rewrite"
)

func ParseRemovalMode(s string) (RemovalMode, error) {
	switch RemovalMode(s) {
	case "", RemovalAtomic:
		return RemovalAtomic, nil
	case RemovalRewrite:
		return RemovalRewrite, nil
	default:
		return "", fmt.Errorf("unknown list removal mode %q", s)
	}
}

// ShoppingListService manages the shopping lists of one user at a time.
type ShoppingListService struct {
	repomanager repomanager.RepositoryManager
	notifier    events.Notifier
	log         logging.Logger
	mode        RemovalMode
	now         func() time.Time
}

func NewShoppingListService(m repomanager.RepositoryManager, n events.Notifier, log logging.Logger, mode RemovalMode) *ShoppingListService {
	if n == nil {
		n = events.Nop{}
	}
	if mode == "" {
		mode = RemovalAtomic
	}
	return &ShoppingListService{repomanager: m, notifier: n, log: log, mode: mode, now: time.Now}
}

func (s *ShoppingListService) Mode() RemovalMode {
	return s.mode
}

// CreateList creates an empty list and returns its id.
func (s *ShoppingListService) CreateList(ctx context.Context, userID string, in ShoppingListOptions) (string, error) {
	if userID == "" {
		return "", common.ErrorUnauthenticated
	}

	o := in.withDefaults()
	id, err := s.repomanager.ShoppingLists().Create(ctx, userID, &models.ShoppingList{
		Title: *o.Title,
		Store: o.Store,
	})
	if err != nil {
		return "", fmt.Errorf("create shopping list: %w", err)
	}

	s.log.Debug(ctx, "shopping list created", "user_id", userID, "list_id", id)
	s.notifier.Notify(ctx, events.Change{UserID: userID, Kind: events.KindShoppingListCreated, DocumentID: id, At: s.now()})
	return id, nil
}

// AddItem appends an entry to the list. Repeated names accumulate as
// separate entries.
func (s *ShoppingListService) AddItem(ctx context.Context, userID, listID string, in ShoppingListItemOptions) error {
	if userID == "" {
		return common.ErrorUnauthenticated
	}
	if listID == "" || in.ItemName == "" {
		return invalid("listId and itemName are required")
	}

	o := in.withDefaults()
	if *o.Quantity <= 0 {
		return invalid("quantity must be > 0")
	}

	err := s.repomanager.ShoppingLists().AppendItem(ctx, userID, listID, models.ShoppingListItem{
		ItemName: o.ItemName,
		Quantity: *o.Quantity,
	})
	if err != nil {
		return fmt.Errorf("add shopping list item: %w", err)
	}

	s.log.Debug(ctx, "shopping list item added", "user_id", userID, "list_id", listID)
	s.notifier.Notify(ctx, events.Change{UserID: userID, Kind: events.KindShoppingListItemAdded, DocumentID: listID, At: s.now()})
	return nil
}

// RemoveItem drops every entry whose itemName equals itemName exactly,
// keeping the order of the rest.
func (s *ShoppingListService) RemoveItem(ctx context.Context, userID, listID, itemName string) error {
	if userID == "" {
		return common.ErrorUnauthenticated
	}
	if listID == "" || itemName == "" {
		return invalid("listId and itemName are required")
	}

	var err error
	if s.mode == RemovalRewrite {
		err = s.repomanager.ShoppingLists().RewriteItemsWithout(ctx, userID, listID, itemName)
	} else {
		err = s.repomanager.ShoppingLists().RemoveItemsNamed(ctx, userID, listID, itemName)
	}
	if err != nil {
		return fmt.Errorf("remove shopping list item: %w", err)
	}

	s.log.Debug(ctx, "shopping list item removed", "user_id", userID, "list_id", listID, "mode", s.mode)
	s.notifier.Notify(ctx, events.Change{UserID: userID, Kind: events.KindShoppingListItemRemoved, DocumentID: listID, At: s.now()})
	return nil
}

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

// PantryService adds and edits the pantry items of one user at a time.
type PantryService struct {
	repomanager repomanager.RepositoryManager
	notifier    events.Notifier
	log         logging.Logger
	now         func() time.Time
}

func NewPantryService(m repomanager.RepositoryManager, n events.Notifier, log logging.Logger) *PantryService {
	if n == nil {
		n = events.Nop{}
	}
	return &PantryService{repomanager: m, notifier: n, log: log, now: time.Now}
}

// AddItem stores a new pantry item with defaults applied to omitted fields
// and returns its id. Items are not deduplicated by name.
func (s *PantryService) AddItem(ctx context.Context, userID string, in PantryItemOptions) (string, error) {
	if userID == "" {
		return "", common.ErrorUnauthenticated
	}
	if in.Name == "" {
		return "", invalid("name is required")
	}

	o := in.withDefaults()
	if err := nonNegative(models.FieldCalories, *o.Calories); err != nil {
		return "", err
	}
	if err := nonNegative(models.FieldServings, *o.Servings); err != nil {
		return "", err
	}
	if err := validateMacros(o.Macros); err != nil {
		return "", err
	}

	id, err := s.repomanager.Pantry().Add(ctx, userID, &models.PantryItem{
		Name:       o.Name,
		Calories:   *o.Calories,
		Servings:   *o.Servings,
		Likability: *o.Likability,
		Macros:     o.Macros,
	})
	if err != nil {
		return "", fmt.Errorf("add pantry item: %w", err)
	}

	s.log.Debug(ctx, "pantry item added", "user_id", userID, "item_id", id)
	s.notifier.Notify(ctx, events.Change{UserID: userID, Kind: events.KindPantryItemAdded, DocumentID: id, At: s.now()})
	return id, nil
}

// UpdateItem merges fields into an existing item. Only name, calories,
// servings, likability and macros may be changed.
func (s *PantryService) UpdateItem(ctx context.Context, userID, itemID string, fields map[string]any) error {
	if userID == "" {
		return common.ErrorUnauthenticated
	}
	if itemID == "" {
		return invalid("pantryItemId is required")
	}
	if len(fields) == 0 {
		return invalid("fieldsToUpdate is required")
	}

	update, err := pantryUpdate(fields)
	if err != nil {
		return err
	}

	if err := s.repomanager.Pantry().Update(ctx, userID, itemID, update); err != nil {
		return fmt.Errorf("update pantry item: %w", err)
	}

	s.log.Debug(ctx, "pantry item updated", "user_id", userID, "item_id", itemID, "fields", len(update))
	s.notifier.Notify(ctx, events.Change{UserID: userID, Kind: events.KindPantryItemUpdated, DocumentID: itemID, At: s.now()})
	return nil
}

// pantryUpdate type-checks a partial update and returns it in store form.
func pantryUpdate(fields map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		switch k {
		case models.FieldName:
			name, ok := v.(string)
			if !ok || name == "" {
				return nil, invalid("name must be a non-empty string")
			}
			out[k] = name
		case models.FieldCalories, models.FieldServings:
			n, ok := number(v)
			if !ok {
				return nil, invalid("%s must be a number", k)
			}
			if err := nonNegative(k, n); err != nil {
				return nil, err
			}
			out[k] = n
		case models.FieldLikability:
			n, ok := number(v)
			if !ok {
				return nil, invalid("%s must be a number", k)
			}
			out[k] = n
		case models.FieldMacros:
			raw, ok := v.(map[string]any)
			if !ok {
				return nil, invalid("macros must be an object")
			}
			macros := make(map[string]float64, len(raw))
			for name, val := range raw {
				n, ok := number(val)
				if !ok {
					return nil, invalid("macro %q must be a number", name)
				}
				macros[name] = n
			}
			if err := validateMacros(macros); err != nil {
				return nil, err
			}
			out[k] = macros
		default:
			return nil, invalid("field %q cannot be updated", k)
		}
	}
	return out, nil
}

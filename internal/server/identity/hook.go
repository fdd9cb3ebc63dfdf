// Package identity provisions a user's root profile when the identity
// provider reports a newly created identity.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/logging"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/events"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/models"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/profiles"
)

// Event is an identity-created notification. Delivery is at-least-once.
type Event struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
}

// Outcome of a provisioning attempt.
type Outcome string

const (
	OutcomeCreated       Outcome = "created"
	OutcomeAlreadyExists Outcome = "already_exists"
	OutcomeFailed        Outcome = "failed"
)

type Hook struct {
	profiles profiles.Repository
	notifier events.Notifier
	log      logging.Logger
	now      func() time.Time
}

func NewHook(p profiles.Repository, n events.Notifier, log logging.Logger) *Hook {
	if n == nil {
		n = events.Nop{}
	}
	return &Hook{profiles: p, notifier: n, log: log, now: time.Now}
}

// Provision creates the profile for ev unless one already exists. A
// repeated delivery is a no-op reported as OutcomeAlreadyExists, so a caller
// may redeliver after any failure.
func (h *Hook) Provision(ctx context.Context, ev Event) (Outcome, error) {
	if ev.UserID == "" {
		return OutcomeFailed, fmt.Errorf("%w: empty user id", common.ErrorInvalidArgument)
	}

	err := h.profiles.CreateIfAbsent(ctx, &models.Profile{
		ID:                 ev.UserID,
		Email:              ev.Email,
		Onboarded:          false,
		PreferredProviders: map[string]any{},
	})
	switch {
	case err == nil:
		h.log.Info(ctx, "profile provisioned", "user_id", ev.UserID, "outcome", OutcomeCreated)
		h.notifier.Notify(ctx, events.Change{
			UserID:     ev.UserID,
			Kind:       events.KindProfileProvisioned,
			DocumentID: ev.UserID,
			At:         h.now(),
		})
		return OutcomeCreated, nil
	case errors.Is(err, common.ErrorAlreadyExists):
		h.log.Info(ctx, "profile already provisioned", "user_id", ev.UserID, "outcome", OutcomeAlreadyExists)
		return OutcomeAlreadyExists, nil
	default:
		h.log.Error(ctx, "profile provisioning failed", "user_id", ev.UserID, "outcome", OutcomeFailed, "error", err)
		return OutcomeFailed, fmt.Errorf("provision %s: %w", ev.UserID, err)
	}
}

// Package events describes per-user change notifications emitted after
// successful mutations.
package events

import (
	"context"
	"sync"
	"time"
)

type Kind string

const (
	KindProfileProvisioned      Kind = "profile.provisioned"
	KindPantryItemAdded         Kind = "pantry.item.added"
	KindPantryItemUpdated       Kind = "pantry.item.updated"
	KindShoppingListCreated     Kind = "shopping_list.created"
	KindShoppingListItemAdded   Kind = "shopping_list.item.added"
	KindShoppingListItemRemoved Kind = "shopping_list.item.removed"
)

// Change is delivered to every subscriber of UserID.
type Change struct {
	UserID     string    `json:"userId"`
	Kind       Kind      `json:"kind"`
	DocumentID string    `json:"documentId"`
	At         time.Time `json:"at"`
}

// Notifier publishes changes. Delivery is best-effort: Notify never fails
// the caller.
type Notifier interface {
	Notify(ctx context.Context, c Change)
}

// Nop drops every change.
type Nop struct{}

func (Nop) Notify(context.Context, Change) {}

// Recorder keeps every change in memory.
type Recorder struct {
	mu      sync.Mutex
	changes []Change
}

func (r *Recorder) Notify(_ context.Context, c Change) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, c)
}

// Changes returns a copy of the recorded changes.
func (r *Recorder) Changes() []Change {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Change, len(r.changes))
	copy(out, r.changes)
	return out
}

// Kinds returns the recorded change kinds in order.
func (r *Recorder) Kinds() []Kind {
	changes := r.Changes()
	out := make([]Kind, len(changes))
	for i, c := range changes {
		out[i] = c.Kind
	}
	return out
}

// Fanout forwards each change to every notifier in order.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, c Change) {
	for _, n := range f {
		n.Notify(ctx, c)
	}
}

// Package subject provides the in-memory subjects driven by the cycling
// engine and the roster that attaches them.
package subject

import (
	"context"
	"fmt"
	"sync"

	"presetdeck/internal/adapters/notify"
	"presetdeck/internal/domain"
	"presetdeck/internal/ports"
)

// Actor is a subject holding one selected preset. When a selection store is
// set, every change is persisted under the actor's ID.
type Actor struct {
	id    string
	label string
	store ports.SelectionStore

	mu      sync.RWMutex
	current domain.Item

	changed notify.Listeners[struct{}]
}

// Ensure Actor implements SelectableSubject
var _ ports.SelectableSubject = (*Actor)(nil)

// NewActor creates an actor starting at item. store may be nil.
func NewActor(id, label string, item domain.Item, store ports.SelectionStore) *Actor {
	if label == "" {
		label = id
	}
	return &Actor{id: id, label: label, current: item, store: store}
}

func (a *Actor) ID() string    { return a.id }
func (a *Actor) Label() string { return a.label }

// CurrentItem returns the selected preset
func (a *Actor) CurrentItem() domain.Item {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current
}

// Apply switches to item on behalf of the engine. It does not notify
// change listeners.
func (a *Actor) Apply(item domain.Item) error {
	return a.set(context.Background(), item)
}

// Select switches to item as an external choice and notifies listeners,
// which lets an attached engine resynchronize its cursor.
func (a *Actor) Select(ctx context.Context, item domain.Item) error {
	if err := a.set(ctx, item); err != nil {
		return err
	}
	a.changed.Emit(struct{}{})
	return nil
}

// OnItemChanged registers fn for external selection changes
func (a *Actor) OnItemChanged(fn func()) ports.Unsubscribe {
	return a.changed.Add(notify.Signal(fn))
}

func (a *Actor) set(ctx context.Context, item domain.Item) error {
	if a.store != nil {
		if err := a.store.SaveSelection(ctx, a.id, item); err != nil {
			return fmt.Errorf("persist selection: %w", err)
		}
	}

	a.mu.Lock()
	a.current = item
	a.mu.Unlock()
	return nil
}

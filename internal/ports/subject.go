package ports

import (
	"context"

	"presetdeck/internal/domain"
)

// Subject is an opaque handle that owns exactly one cursor.
type Subject interface {
	// ID is the stable handle used to address the subject
	ID() string

	// CurrentItem returns the item the subject currently uses
	CurrentItem() domain.Item

	// Apply switches the subject to item on behalf of the cycling engine.
	// It must not notify OnItemChanged listeners.
	Apply(item domain.Item) error

	// OnItemChanged registers a listener for selection changes made outside
	// the cycling engine (e.g. a user picking a preset directly)
	OnItemChanged(fn func()) Unsubscribe
}

// SelectableSubject is a subject that can also be pointed at an item
// directly, outside the cycling engine. Select notifies OnItemChanged.
type SelectableSubject interface {
	Subject
	Select(ctx context.Context, item domain.Item) error
}

package ports

import "presetdeck/internal/domain"

// Unsubscribe removes a previously registered listener. Calling it more than
// once is harmless.
type Unsubscribe func()

// CatalogSource is a read-only, enumerable catalog of categories and items.
//
// While Busy reports true, Categories and Items must not be called. A source
// becomes ready exactly once in its lifetime; OnReady listeners registered
// after that point are invoked immediately.
type CatalogSource interface {
	Tag() domain.SourceTag
	Busy() bool
	OnReady(fn func()) Unsubscribe

	// Categories returns the category names in storage order
	Categories() ([]string, error)
	// Items returns the items of a category in storage order
	Items(category string) ([]domain.Item, error)
}

// MutableCatalogSource is a catalog that changes at runtime.
// Listeners are invoked synchronously after the change is visible through
// Categories/Items.
type MutableCatalogSource interface {
	CatalogSource

	// OnItemAdded fires once per inserted item
	OnItemAdded(fn func(item domain.Item)) Unsubscribe
	// OnRefreshed fires after the whole catalog was rebuilt or reloaded
	OnRefreshed(fn func()) Unsubscribe
}

// Sorter defines the canonical enumeration order (and filtering) of a catalog.
// Implementations must be pure with respect to the source contents.
type Sorter interface {
	Categories(src CatalogSource) ([]string, error)
	Items(category string, src CatalogSource) ([]domain.Item, error)
}

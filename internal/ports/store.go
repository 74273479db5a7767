package ports

import (
	"context"

	"presetdeck/internal/domain"
)

// UserCatalog is the user-editable catalog. Writes are reported to listeners
// through the MutableCatalogSource events.
type UserCatalog interface {
	MutableCatalogSource

	AddItem(ctx context.Context, category, name string) (domain.Item, error)
	RemoveCategory(ctx context.Context, category string) error
	Reload(ctx context.Context) error
}

// SelectionStore persists the current item of each subject across runs
type SelectionStore interface {
	LoadSelection(ctx context.Context, subjectID string) (domain.Item, bool, error)
	SaveSelection(ctx context.Context, subjectID string, item domain.Item) error
	ListSelections(ctx context.Context) (map[string]domain.Item, error)
	DeleteSelection(ctx context.Context, subjectID string) error
}

// CatalogExporter writes a catalog snapshot to a file
type CatalogExporter interface {
	Export(path string, categories []domain.CategorySnapshot) error
}

// Package sorting provides the catalog sorters used by the hosts.
package sorting

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"presetdeck/internal/domain"
	"presetdeck/internal/ports"
)

// Collated orders categories and items by locale-aware collation of their
// display names. An optional filter hides items whose name does not contain
// it (case-folded); categories stay listed even when the filter empties them.
type Collated struct {
	mu       sync.Mutex // guards collator and fold
	collator *collate.Collator
	fold     cases.Caser
	filter   string
}

// Ensure Collated implements Sorter
var _ ports.Sorter = (*Collated)(nil)

// NewCollated creates a sorter for the BCP 47 language tag lang.
// An empty tag selects English.
func NewCollated(lang, filter string) (*Collated, error) {
	tag := language.English
	if strings.TrimSpace(lang) != "" {
		parsed, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("invalid collation language %q: %w", lang, err)
		}
		tag = parsed
	}

	fold := cases.Fold()
	return &Collated{
		collator: collate.New(tag, collate.IgnoreCase, collate.Numeric),
		fold:     fold,
		filter:   fold.String(strings.TrimSpace(filter)),
	}, nil
}

// Filter returns the active (case-folded) filter
func (s *Collated) Filter() string {
	return s.filter
}

// Categories returns the category names of src in collation order
func (s *Collated) Categories(src ports.CatalogSource) ([]string, error) {
	names, err := src.Categories()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s categories: %w", src.Tag(), err)
	}

	names = slices.Clone(names)

	s.mu.Lock()
	defer s.mu.Unlock()

	slices.SortStableFunc(names, s.collator.CompareString)
	return names, nil
}

// Items returns the items of category in collation order, after filtering
func (s *Collated) Items(category string, src ports.CatalogSource) ([]domain.Item, error) {
	items, err := src.Items(category)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s items of %q: %w", src.Tag(), category, err)
	}

	items = slices.Clone(items)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.filter != "" {
		items = slices.DeleteFunc(items, func(item domain.Item) bool {
			return !strings.Contains(s.fold.String(item.Name), s.filter)
		})
	}

	slices.SortStableFunc(items, func(a, b domain.Item) int {
		if c := s.collator.CompareString(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return items, nil
}

// Storage keeps the order the source reports. It is the sorter used when no
// collation is configured.
type Storage struct{}

// Ensure Storage implements Sorter
var _ ports.Sorter = Storage{}

// Categories returns the source's categories unchanged
func (Storage) Categories(src ports.CatalogSource) ([]string, error) {
	return src.Categories()
}

// Items returns the source's items unchanged
func (Storage) Items(category string, src ports.CatalogSource) ([]domain.Item, error) {
	return src.Items(category)
}

package catalog

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"presetdeck/internal/domain"
	"presetdeck/internal/ports"
)

// Cache memoizes the sorted view of a single catalog source.
//
// Lists are computed on first use and kept until Invalidate or NoteInserted
// says otherwise; nothing ages out. Returned slices are shared with the cache
// and must be treated as read-only. A Cache is not safe for concurrent use.
type Cache struct {
	source ports.CatalogSource
	sorter ports.Sorter

	names     []string       // nil until computed
	positions map[string]int // category name -> index in names

	// Item lists keyed by category name, kept in sorter order. Categories
	// asked for but not (or no longer) listed are kept at the end.
	items *orderedmap.OrderedMap[string, []domain.Item]
}

// NewCache creates an empty cache for source
func NewCache(source ports.CatalogSource, sorter ports.Sorter) *Cache {
	return &Cache{
		source: source,
		sorter: sorter,
		items:  orderedmap.New[string, []domain.Item](),
	}
}

// Source returns the catalog source behind the cache
func (c *Cache) Source() ports.CatalogSource {
	return c.source
}

// Tag returns the source tag of the cached catalog
func (c *Cache) Tag() domain.SourceTag {
	return c.source.Tag()
}

// Categories returns the sorter-ordered category names
func (c *Cache) Categories() ([]string, error) {
	if c.names != nil {
		return c.names, nil
	}
	names, err := c.sorter.Categories(c.source)
	if err != nil {
		return nil, err
	}
	c.setNames(names)
	return c.names, nil
}

// Items returns the sorter-ordered items of category
func (c *Cache) Items(category string) ([]domain.Item, error) {
	if items, ok := c.items.Get(category); ok {
		return items, nil
	}
	items, err := c.sorter.Items(category, c.source)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Item{}
	}
	c.items.Set(category, items)
	return items, nil
}

// IndexOfCategory returns the position of category, or -1
func (c *Cache) IndexOfCategory(category string) (int, error) {
	if _, err := c.Categories(); err != nil {
		return -1, err
	}
	if i, ok := c.positions[category]; ok {
		return i, nil
	}
	return -1, nil
}

// IndexOfItem returns the position of item within its category, or -1
func (c *Cache) IndexOfItem(item domain.Item) (int, error) {
	items, err := c.Items(item.Category)
	if err != nil {
		return -1, err
	}
	return domain.IndexOfItem(items, item), nil
}

// Invalidate drops every memoized list
func (c *Cache) Invalidate() {
	c.names = nil
	c.positions = nil
	c.items = orderedmap.New[string, []domain.Item]()
}

// NoteInserted patches the cache after item was added to the source.
//
// A category the cache has not listed yet triggers a recomputation of the
// category list. A memoized item list for the item's category is re-read from
// the sorter so the item lands where the sorter puts it. Lists that were
// never computed stay absent.
func (c *Cache) NoteInserted(item domain.Item) error {
	if c.names != nil {
		if _, listed := c.positions[item.Category]; !listed {
			names, err := c.sorter.Categories(c.source)
			if err != nil {
				return err
			}
			c.setNames(names)
		}
	}

	if _, ok := c.items.Get(item.Category); ok {
		items, err := c.sorter.Items(item.Category, c.source)
		if err != nil {
			return err
		}
		if items == nil {
			items = []domain.Item{}
		}
		c.items.Set(item.Category, items)
	}
	return nil
}

// Summaries returns every listed category with its item count, populating
// all item lists on the way.
func (c *Cache) Summaries() ([]domain.CategorySummary, error) {
	names, err := c.Categories()
	if err != nil {
		return nil, err
	}
	summaries := make([]domain.CategorySummary, 0, len(names))
	for _, name := range names {
		items, err := c.Items(name)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, domain.CategorySummary{
			Name:   name,
			Source: c.Tag(),
			Count:  len(items),
		})
	}
	return summaries, nil
}

// memoized reports whether the item list of category is cached
func (c *Cache) memoized(category string) bool {
	_, ok := c.items.Get(category)
	return ok
}

func (c *Cache) setNames(names []string) {
	if names == nil {
		names = []string{}
	}
	c.names = names
	c.positions = make(map[string]int, len(names))
	for i, name := range names {
		if _, dup := c.positions[name]; !dup {
			c.positions[name] = i
		}
	}

	// Re-key the item memo in the new category order
	reordered := orderedmap.New[string, []domain.Item]()
	for _, name := range names {
		if items, ok := c.items.Get(name); ok {
			reordered.Set(name, items)
		}
	}
	for pair := c.items.Oldest(); pair != nil; pair = pair.Next() {
		if _, listed := c.positions[pair.Key]; !listed {
			reordered.Set(pair.Key, pair.Value)
		}
	}
	c.items = reordered
}

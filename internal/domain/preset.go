package domain

import (
	"fmt"
	"slices"
	"strings"
)

// SourceTag identifies which catalog an item came from
type SourceTag int

const (
	SourceBuiltin SourceTag = iota // Shipped catalog, loaded once in the background
	SourceUser                     // User-editable catalog, mutated at runtime
)

// Sources lists every known source in display order
var Sources = []SourceTag{SourceBuiltin, SourceUser}

func (t SourceTag) String() string {
	switch t {
	case SourceBuiltin:
		return "builtin"
	case SourceUser:
		return "user"
	default:
		return "unknown"
	}
}

// ParseSourceTag parses the string form of a source tag
func ParseSourceTag(s string) (SourceTag, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "builtin", "built-in":
		return SourceBuiltin, nil
	case "user":
		return SourceUser, nil
	default:
		return 0, fmt.Errorf("unknown source: %q", s)
	}
}

// Item represents a single preset within a category
type Item struct {
	ID       string    // Stable identity within its source (e.g., "idle/breathe")
	Name     string    // Display name (e.g., "Breathe")
	Category string    // Owning category name (e.g., "Idle")
	Source   SourceTag // Catalog the item belongs to
}

// SameAs reports whether both items share the same identity.
// Name and category are not part of an item's identity.
func (i Item) SameAs(other Item) bool {
	return i.Source == other.Source && i.ID == other.ID
}

// IsZero reports whether the item is unset
func (i Item) IsZero() bool {
	return i.ID == ""
}

func (i Item) String() string {
	if i.IsZero() {
		return "<none>"
	}
	return fmt.Sprintf("%s/%s", i.Category, i.Name)
}

// IndexOfItem returns the position of the item with the same identity, or -1
func IndexOfItem(items []Item, item Item) int {
	return slices.IndexFunc(items, item.SameAs)
}

// CategorySummary describes a category and how many items it holds
type CategorySummary struct {
	Name   string
	Source SourceTag
	Count  int
}

// IsEmpty reports whether the category currently holds no items
func (c CategorySummary) IsEmpty() bool {
	return c.Count == 0
}

// Slug builds a stable item ID from a category and item name
// e.g., ("Idle", "Slow Breathe") -> "idle/slow-breathe"
func Slug(category, name string) string {
	return slugPart(category) + "/" + slugPart(name)
}

func slugPart(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	return strings.Join(fields, "-")
}

// SortItemsByID sorts items by ID in ascending order
func SortItemsByID(items []Item) {
	slices.SortFunc(items, func(a, b Item) int {
		return strings.Compare(a.ID, b.ID)
	})
}

// CategorySnapshot is a category together with its items, in display order
type CategorySnapshot struct {
	Name  string
	Items []Item
}

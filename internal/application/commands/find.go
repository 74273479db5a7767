package commands

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"presetdeck/internal/application"
	"presetdeck/internal/domain"
	"presetdeck/internal/ports"
)

// FindItemCommand resolves a user-typed query to a preset.
//
// A query matches an item exactly by ID, by name, or by "Category/Name"
// (case-insensitive). Otherwise the closest name by edit distance wins when
// it is close enough; a LookupError carrying the closest name is returned
// when nothing is.
type FindItemCommand struct {
	cycler  ports.Cycler
	Query   string
	Sources []domain.SourceTag
}

// NewFindItemCommand creates a new FindItemCommand searching sources in
// order. No sources means every source.
func NewFindItemCommand(cycler ports.Cycler, query string, sources ...domain.SourceTag) *FindItemCommand {
	if len(sources) == 0 {
		sources = domain.Sources
	}
	return &FindItemCommand{
		cycler:  cycler,
		Query:   query,
		Sources: sources,
	}
}

// Validate checks the query
func (c *FindItemCommand) Validate() error {
	return application.ValidateRequired("query", c.Query)
}

// Execute runs the lookup. Busy sources are skipped.
func (c *FindItemCommand) Execute(ctx context.Context) (domain.Item, error) {
	if err := c.Validate(); err != nil {
		return domain.Item{}, err
	}

	candidates, err := c.candidates()
	if err != nil {
		return domain.Item{}, err
	}

	query := strings.TrimSpace(c.Query)
	folded := strings.ToLower(query)
	for _, item := range candidates {
		if item.ID == query ||
			strings.ToLower(item.Name) == folded ||
			strings.ToLower(item.Category+"/"+item.Name) == folded {
			return item, nil
		}
	}

	best, distance := closest(folded, candidates)
	if best.IsZero() {
		return domain.Item{}, &application.LookupError{Query: query}
	}
	if distance <= MaxEditDistance(folded) {
		return best, nil
	}
	return domain.Item{}, &application.LookupError{Query: query, Suggestion: best.Name}
}

// MaxEditDistance is the largest distance accepted as a match for query:
// a third of its length, at least 1.
func MaxEditDistance(query string) int {
	return max(1, utf8.RuneCountInString(query)/3)
}

func (c *FindItemCommand) candidates() ([]domain.Item, error) {
	var all []domain.Item
	for _, tag := range c.Sources {
		if c.cycler.Busy(tag) {
			continue
		}
		names, err := c.cycler.Categories(tag)
		if errors.Is(err, application.ErrUnknownSource) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			items, err := c.cycler.Items(tag, name)
			if err != nil {
				return nil, err
			}
			all = append(all, items...)
		}
	}
	return all, nil
}

// closest returns the item whose lowercased name is nearest to query.
// Ties keep the earlier item.
func closest(query string, items []domain.Item) (domain.Item, int) {
	var best domain.Item
	bestDistance := -1
	for _, item := range items {
		d := levenshtein.ComputeDistance(query, strings.ToLower(item.Name))
		if bestDistance < 0 || d < bestDistance {
			best, bestDistance = item, d
		}
	}
	return best, bestDistance
}

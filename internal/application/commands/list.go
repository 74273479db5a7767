package commands

import (
	"context"
	"fmt"
	"slices"

	"presetdeck/internal/application"
	"presetdeck/internal/domain"
	"presetdeck/internal/ports"
)

// ListCategoriesCommand lists the categories of a source with their item counts
type ListCategoriesCommand struct {
	cycler ports.Cycler
	Source domain.SourceTag
}

// NewListCategoriesCommand creates a new ListCategoriesCommand
func NewListCategoriesCommand(cycler ports.Cycler, source domain.SourceTag) *ListCategoriesCommand {
	return &ListCategoriesCommand{cycler: cycler, Source: source}
}

// Execute runs the list categories command
func (c *ListCategoriesCommand) Execute(ctx context.Context) ([]domain.CategorySummary, error) {
	return c.cycler.Summaries(c.Source)
}

// ListItemsCommand lists the items of one category
type ListItemsCommand struct {
	cycler   ports.Cycler
	Source   domain.SourceTag
	Category string
}

// NewListItemsCommand creates a new ListItemsCommand
func NewListItemsCommand(cycler ports.Cycler, source domain.SourceTag, category string) *ListItemsCommand {
	return &ListItemsCommand{
		cycler:   cycler,
		Source:   source,
		Category: category,
	}
}

// Validate checks the command arguments
func (c *ListItemsCommand) Validate() error {
	return application.ValidateRequired("category", c.Category)
}

// Execute runs the list items command. Unknown categories are reported as
// application.ErrNotFound; listed but empty ones yield no items.
func (c *ListItemsCommand) Execute(ctx context.Context) ([]domain.Item, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	names, err := c.cycler.Categories(c.Source)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(names, c.Category) {
		return nil, fmt.Errorf("category %q in %s catalog: %w", c.Category, c.Source, application.ErrNotFound)
	}
	return c.cycler.Items(c.Source, c.Category)
}

// BuildTreeCommand snapshots a whole source in display order
type BuildTreeCommand struct {
	cycler ports.Cycler
	Source domain.SourceTag
}

// NewBuildTreeCommand creates a new BuildTreeCommand
func NewBuildTreeCommand(cycler ports.Cycler, source domain.SourceTag) *BuildTreeCommand {
	return &BuildTreeCommand{cycler: cycler, Source: source}
}

// Execute runs the build tree command
func (c *BuildTreeCommand) Execute(ctx context.Context) ([]domain.CategorySnapshot, error) {
	names, err := c.cycler.Categories(c.Source)
	if err != nil {
		return nil, err
	}

	tree := make([]domain.CategorySnapshot, 0, len(names))
	for _, name := range names {
		items, err := c.cycler.Items(c.Source, name)
		if err != nil {
			return nil, err
		}
		tree = append(tree, domain.CategorySnapshot{Name: name, Items: items})
	}
	return tree, nil
}

package commands

import (
	"context"
	"fmt"
	"strings"

	"presetdeck/internal/application"
	"presetdeck/internal/domain"
	"presetdeck/internal/ports"
)

// AddItemCommand adds a preset to the user catalog
type AddItemCommand struct {
	catalog  ports.UserCatalog
	Category string
	Name     string
}

// NewAddItemCommand creates a new AddItemCommand
func NewAddItemCommand(catalog ports.UserCatalog, category, name string) *AddItemCommand {
	return &AddItemCommand{
		catalog:  catalog,
		Category: category,
		Name:     name,
	}
}

// Validate checks the category and preset names
func (c *AddItemCommand) Validate() error {
	if err := application.ValidateName("category", strings.TrimSpace(c.Category)); err != nil {
		return err
	}
	return application.ValidateName("name", strings.TrimSpace(c.Name))
}

// Execute runs the add command
func (c *AddItemCommand) Execute(ctx context.Context) (domain.Item, error) {
	if err := c.Validate(); err != nil {
		return domain.Item{}, err
	}
	if c.catalog.Busy() {
		return domain.Item{}, fmt.Errorf("%w: %s", application.ErrSourceBusy, c.catalog.Tag())
	}

	item, err := c.catalog.AddItem(ctx, strings.TrimSpace(c.Category), strings.TrimSpace(c.Name))
	if err != nil {
		return domain.Item{}, fmt.Errorf("failed to add preset: %w", err)
	}
	return item, nil
}

// RemoveCategoryCommand deletes a category with all its presets from the
// user catalog
type RemoveCategoryCommand struct {
	catalog  ports.UserCatalog
	Category string
}

// NewRemoveCategoryCommand creates a new RemoveCategoryCommand
func NewRemoveCategoryCommand(catalog ports.UserCatalog, category string) *RemoveCategoryCommand {
	return &RemoveCategoryCommand{catalog: catalog, Category: category}
}

// Execute runs the remove command
func (c *RemoveCategoryCommand) Execute(ctx context.Context) error {
	if err := application.ValidateRequired("category", c.Category); err != nil {
		return err
	}
	return c.catalog.RemoveCategory(ctx, strings.TrimSpace(c.Category))
}

// RefreshCommand reloads the user catalog from storage
type RefreshCommand struct {
	catalog ports.UserCatalog
}

// NewRefreshCommand creates a new RefreshCommand
func NewRefreshCommand(catalog ports.UserCatalog) *RefreshCommand {
	return &RefreshCommand{catalog: catalog}
}

// Execute runs the refresh command
func (c *RefreshCommand) Execute(ctx context.Context) error {
	if err := c.catalog.Reload(ctx); err != nil {
		return fmt.Errorf("failed to refresh user catalog: %w", err)
	}
	return nil
}

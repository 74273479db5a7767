package commands

import (
	"context"
	"fmt"

	"presetdeck/internal/domain"
	"presetdeck/internal/ports"
)

// SelectItemCommand points a subject at an item directly, outside the
// cycling engine, and resynchronizes its cursor.
type SelectItemCommand struct {
	cycler  ports.Cycler
	subject ports.SelectableSubject
	Item    domain.Item
}

// NewSelectItemCommand creates a new SelectItemCommand
func NewSelectItemCommand(cycler ports.Cycler, subject ports.SelectableSubject, item domain.Item) *SelectItemCommand {
	return &SelectItemCommand{
		cycler:  cycler,
		subject: subject,
		Item:    item,
	}
}

// Execute runs the select command and returns the subject's new cursor
func (c *SelectItemCommand) Execute(ctx context.Context) (domain.Cursor, error) {
	if c.Item.IsZero() {
		return domain.Cursor{}, fmt.Errorf("no preset to select")
	}

	id := c.subject.ID()
	if err := c.subject.Select(ctx, c.Item); err != nil {
		return domain.Cursor{}, fmt.Errorf("failed to select %s for %s: %w", c.Item.ID, id, err)
	}
	// Subjects that do not notify still get their cursor updated
	if err := c.cycler.Resync(id); err != nil {
		return domain.Cursor{}, err
	}
	return c.cycler.Cursor(id)
}

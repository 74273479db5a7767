package commands

import (
	"context"
	"fmt"

	"presetdeck/internal/application"
	"presetdeck/internal/domain"
	"presetdeck/internal/ports"
)

// ExportResult contains the result of an export operation
type ExportResult struct {
	Path       string
	Categories int
	Items      int
	Message    string
}

// ExportCommand writes a source's catalog, in display order, to a file
type ExportCommand struct {
	cycler   ports.Cycler
	exporter ports.CatalogExporter
	Source   domain.SourceTag
	Path     string
}

// NewExportCommand creates a new ExportCommand
func NewExportCommand(cycler ports.Cycler, exporter ports.CatalogExporter, source domain.SourceTag, path string) *ExportCommand {
	return &ExportCommand{
		cycler:   cycler,
		exporter: exporter,
		Source:   source,
		Path:     path,
	}
}

// Validate checks the destination path
func (c *ExportCommand) Validate() error {
	return application.ValidateRequired("path", c.Path)
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context) (*ExportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	tree, err := NewBuildTreeCommand(c.cycler, c.Source).Execute(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.exporter.Export(c.Path, tree); err != nil {
		return nil, err
	}

	items := 0
	for _, category := range tree {
		items += len(category.Items)
	}
	return &ExportResult{
		Path:       c.Path,
		Categories: len(tree),
		Items:      items,
		Message:    fmt.Sprintf("Exported %d presets in %d categories to %s", items, len(tree), c.Path),
	}, nil
}

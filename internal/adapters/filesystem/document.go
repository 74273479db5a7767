package filesystem

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"presetdeck/internal/domain"
	"presetdeck/internal/ports"
)

// Document is the on-disk YAML form of a preset catalog:
//
//	categories:
//	  - name: Idle
//	    items:
//	      - name: Breathe
//	      - id: idle/yawn-long
//	        name: Yawn
type Document struct {
	Categories []CategoryEntry `yaml:"categories"`
}

// CategoryEntry is one category of a Document
type CategoryEntry struct {
	Name  string      `yaml:"name"`
	Items []ItemEntry `yaml:"items"`
}

// ItemEntry is one preset of a Document. An empty ID is derived from the
// category and preset names.
type ItemEntry struct {
	ID   string `yaml:"id,omitempty"`
	Name string `yaml:"name"`
}

// DecodeDocument parses a catalog document
func DecodeDocument(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return &doc, nil
}

// index turns a document into storage-ordered categories and items for tag.
// Category names and item IDs must be unique.
func (d *Document) index(tag domain.SourceTag) ([]string, map[string][]domain.Item, error) {
	order := make([]string, 0, len(d.Categories))
	items := make(map[string][]domain.Item, len(d.Categories))
	seen := make(map[string]string)

	for i, c := range d.Categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, nil, fmt.Errorf("category #%d has no name", i+1)
		}
		if _, dup := items[name]; dup {
			return nil, nil, fmt.Errorf("duplicate category %q", name)
		}

		list := make([]domain.Item, 0, len(c.Items))
		for j, e := range c.Items {
			itemName := strings.TrimSpace(e.Name)
			if itemName == "" {
				return nil, nil, fmt.Errorf("item #%d of %q has no name", j+1, name)
			}
			id := strings.TrimSpace(e.ID)
			if id == "" {
				id = domain.Slug(name, itemName)
			}
			if prev, dup := seen[id]; dup {
				return nil, nil, fmt.Errorf("duplicate item id %q in %q and %q", id, prev, name)
			}
			seen[id] = name

			list = append(list, domain.Item{ID: id, Name: itemName, Category: name, Source: tag})
		}

		order = append(order, name)
		items[name] = list
	}
	return order, items, nil
}

// NewDocument builds a document from category snapshots, keeping their order
func NewDocument(categories []domain.CategorySnapshot) *Document {
	doc := &Document{Categories: make([]CategoryEntry, 0, len(categories))}
	for _, c := range categories {
		entry := CategoryEntry{Name: c.Name, Items: make([]ItemEntry, 0, len(c.Items))}
		for _, item := range c.Items {
			entry.Items = append(entry.Items, ItemEntry{ID: item.ID, Name: item.Name})
		}
		doc.Categories = append(doc.Categories, entry)
	}
	return doc
}

// Encode writes the document as YAML
func (d *Document) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return enc.Close()
}

// Exporter writes catalog snapshots as YAML documents
type Exporter struct{}

// Ensure Exporter implements CatalogExporter
var _ ports.CatalogExporter = Exporter{}

// Export atomically replaces path with the YAML form of categories
func (Exporter) Export(path string, categories []domain.CategorySnapshot) error {
	var buf bytes.Buffer
	if err := NewDocument(categories).Encode(&buf); err != nil {
		return err
	}
	if err := atomic.WriteFile(ExpandHome(path), &buf); err != nil {
		return fmt.Errorf("failed to write catalog %s: %w", path, err)
	}
	return nil
}

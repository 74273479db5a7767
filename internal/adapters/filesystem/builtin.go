package filesystem

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"sync"

	"presetdeck/internal/adapters/notify"
	"presetdeck/internal/application"
	"presetdeck/internal/domain"
	"presetdeck/internal/ports"
)

//go:embed catalogs/default.yaml
var defaultCatalog embed.FS

// DefaultCatalog returns the catalog shipped with the binary
func DefaultCatalog() []byte {
	data, _ := defaultCatalog.ReadFile("catalogs/default.yaml")
	return data
}

// BuiltinCatalog is the read-only preset catalog, parsed once in the background.
//
// The catalog is busy from construction until Load has finished. A failed
// load still makes the catalog ready, but empty; the failure is kept in Err.
type BuiltinCatalog struct {
	path   string // empty selects the embedded default
	logger *slog.Logger

	mu      sync.RWMutex
	started bool
	ready   bool
	order   []string
	items   map[string][]domain.Item
	err     error

	done    chan struct{}
	onReady notify.Listeners[struct{}]
}

// Ensure BuiltinCatalog implements CatalogSource
var _ ports.CatalogSource = (*BuiltinCatalog)(nil)

// NewBuiltinCatalog creates a catalog backed by the YAML file at path.
// An empty path uses the embedded default catalog.
func NewBuiltinCatalog(path string, logger *slog.Logger) *BuiltinCatalog {
	if logger == nil {
		logger = slog.Default()
	}
	if path != "" {
		path = ExpandHome(path)
	}
	return &BuiltinCatalog{
		path:   path,
		logger: logger,
		items:  make(map[string][]domain.Item),
		done:   make(chan struct{}),
	}
}

// Tag reports SourceBuiltin
func (c *BuiltinCatalog) Tag() domain.SourceTag {
	return domain.SourceBuiltin
}

// Path returns the catalog file, or "" for the embedded default
func (c *BuiltinCatalog) Path() string {
	return c.path
}

// Busy reports whether the catalog is still loading
func (c *BuiltinCatalog) Busy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.ready
}

// Err returns the load failure, if any
func (c *BuiltinCatalog) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// OnReady registers fn for the one-shot ready event. If the catalog is
// already ready, fn runs immediately.
func (c *BuiltinCatalog) OnReady(fn func()) ports.Unsubscribe {
	c.mu.RLock()
	ready := c.ready
	var unsubscribe ports.Unsubscribe
	if !ready {
		unsubscribe = c.onReady.Add(notify.Signal(fn))
	}
	c.mu.RUnlock()

	if ready {
		fn()
		return func() {}
	}
	return unsubscribe
}

// Load starts parsing the catalog in a background goroutine. Calling Load
// again is a no-op. Cancelling ctx before parsing finishes makes the catalog
// ready and empty with ctx's error.
func (c *BuiltinCatalog) Load(ctx context.Context) {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	c.logger.Debug("loading builtin catalog", "path", c.displayPath())
	go c.load(ctx)
}

// Wait blocks until the catalog is ready or ctx is done
func (c *BuiltinCatalog) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return c.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Categories returns the category names in file order
func (c *BuiltinCatalog) Categories() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.ready {
		return nil, fmt.Errorf("%w: %s", application.ErrSourceBusy, c.Tag())
	}
	return slices.Clone(c.order), nil
}

// Items returns the presets of category in file order. Unknown categories
// have no items.
func (c *BuiltinCatalog) Items(category string) ([]domain.Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.ready {
		return nil, fmt.Errorf("%w: %s", application.ErrSourceBusy, c.Tag())
	}
	return slices.Clone(c.items[category]), nil
}

func (c *BuiltinCatalog) load(ctx context.Context) {
	order, items, err := c.parse(ctx)
	if err == nil {
		err = ctx.Err()
	}

	c.mu.Lock()
	if err != nil {
		c.err = err
	} else {
		c.order = order
		c.items = items
	}
	c.ready = true
	c.mu.Unlock()
	close(c.done)

	if err != nil {
		c.logger.Error("builtin catalog failed to load", "path", c.displayPath(), "error", err)
	} else {
		c.logger.Info("builtin catalog loaded", "path", c.displayPath(), "categories", len(order))
	}

	c.onReady.Emit(struct{}{})
	c.onReady.Clear()
}

func (c *BuiltinCatalog) parse(ctx context.Context) ([]string, map[string][]domain.Item, error) {
	var r io.Reader
	if c.path == "" {
		r = bytes.NewReader(DefaultCatalog())
	} else {
		f, err := os.Open(c.path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open catalog: %w", err)
		}
		defer f.Close()
		r = f
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	doc, err := DecodeDocument(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", c.displayPath(), err)
	}
	return doc.index(c.Tag())
}

func (c *BuiltinCatalog) displayPath() string {
	if c.path == "" {
		return "<embedded>"
	}
	return c.path
}

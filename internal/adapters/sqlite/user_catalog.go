package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"presetdeck/internal/adapters/notify"
	"presetdeck/internal/application"
	"presetdeck/internal/domain"
	"presetdeck/internal/ports"
)

// UserCatalog is the user-editable preset catalog stored in SQLite.
//
// Reads are served from an in-memory snapshot taken by Reload. The catalog is
// busy until the first Reload succeeds; that Reload fires the ready event and
// every later one fires the refreshed event.
type UserCatalog struct {
	store  *Store
	logger *slog.Logger

	mu    sync.RWMutex
	ready bool
	order []string
	items map[string][]domain.Item

	onReady     notify.Listeners[struct{}]
	onItemAdded notify.Listeners[domain.Item]
	onRefreshed notify.Listeners[struct{}]
}

// Ensure UserCatalog implements UserCatalog
var _ ports.UserCatalog = (*UserCatalog)(nil)

// NewUserCatalog creates a catalog over store. Call Reload to populate it.
func NewUserCatalog(store *Store, logger *slog.Logger) *UserCatalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserCatalog{
		store:  store,
		logger: logger,
		items:  make(map[string][]domain.Item),
	}
}

// Tag reports SourceUser
func (c *UserCatalog) Tag() domain.SourceTag {
	return domain.SourceUser
}

// Busy reports whether the first Reload is still pending
func (c *UserCatalog) Busy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.ready
}

// OnReady registers fn for the one-shot ready event, or runs it right away
// when the catalog is already loaded.
func (c *UserCatalog) OnReady(fn func()) ports.Unsubscribe {
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

// OnItemAdded registers fn for every preset added through AddItem
func (c *UserCatalog) OnItemAdded(fn func(item domain.Item)) ports.Unsubscribe {
	return c.onItemAdded.Add(fn)
}

// OnRefreshed registers fn for every Reload after the first
func (c *UserCatalog) OnRefreshed(fn func()) ports.Unsubscribe {
	return c.onRefreshed.Add(notify.Signal(fn))
}

// Categories returns category names in creation order
func (c *UserCatalog) Categories() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.ready {
		return nil, fmt.Errorf("%w: %s", application.ErrSourceBusy, c.Tag())
	}
	return slices.Clone(c.order), nil
}

// Items returns the presets of category in creation order
func (c *UserCatalog) Items(category string) ([]domain.Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.ready {
		return nil, fmt.Errorf("%w: %s", application.ErrSourceBusy, c.Tag())
	}
	return slices.Clone(c.items[category]), nil
}

// AddItem stores a new preset and fires the item added event.
// Names must be unique within a category.
func (c *UserCatalog) AddItem(ctx context.Context, category, name string) (domain.Item, error) {
	category = strings.TrimSpace(category)
	name = strings.TrimSpace(name)
	if err := application.ValidateName("category", category); err != nil {
		return domain.Item{}, err
	}
	if err := application.ValidateName("name", name); err != nil {
		return domain.Item{}, err
	}

	item := domain.Item{
		ID:       uuid.NewString(),
		Name:     name,
		Category: category,
		Source:   domain.SourceUser,
	}

	_, err := c.store.db.ExecContext(ctx, `
		INSERT INTO presets (id, category, name, created_at)
		VALUES (?, ?, ?, ?)
	`, item.ID, item.Category, item.Name, now())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Item{}, fmt.Errorf("preset %q in %q: %w", name, category, application.ErrAlreadyExists)
		}
		return domain.Item{}, fmt.Errorf("failed to add preset: %w", err)
	}

	c.mu.Lock()
	ready := c.ready
	if ready {
		if _, ok := c.items[category]; !ok {
			c.order = append(c.order, category)
		}
		c.items[category] = append(c.items[category], item)
	}
	c.mu.Unlock()

	c.logger.Info("preset added", "id", item.ID, "category", category, "name", name)

	// Before the first load the snapshot does not exist yet; Reload picks it up.
	if ready {
		c.onItemAdded.Emit(item)
	}
	return item, nil
}

// RemoveCategory deletes every preset of category and reloads the catalog
func (c *UserCatalog) RemoveCategory(ctx context.Context, category string) error {
	if err := application.ValidateRequired("category", category); err != nil {
		return err
	}

	var removed int64
	err := c.store.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM presets WHERE category = ?`, category)
		if err != nil {
			return fmt.Errorf("failed to remove category: %w", err)
		}
		removed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return err
	}
	if removed == 0 {
		return fmt.Errorf("category %q: %w", category, application.ErrNotFound)
	}

	c.logger.Info("category removed", "category", category, "presets", removed)
	return c.Reload(ctx)
}

// Reload re-reads the whole catalog. The first successful call makes the
// catalog ready; later calls fire the refreshed event.
func (c *UserCatalog) Reload(ctx context.Context) error {
	order, items, err := c.readAll(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	first := !c.ready
	c.order = order
	c.items = items
	c.ready = true
	c.mu.Unlock()

	c.logger.Debug("user catalog reloaded", "categories", len(order), "first", first)

	if first {
		c.onReady.Emit(struct{}{})
		c.onReady.Clear()
		return nil
	}
	c.onRefreshed.Emit(struct{}{})
	return nil
}

func (c *UserCatalog) readAll(ctx context.Context) ([]string, map[string][]domain.Item, error) {
	rows, err := c.store.db.QueryContext(ctx, `
		SELECT id, category, name FROM presets ORDER BY seq
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read presets: %w", err)
	}
	defer rows.Close()

	var order []string
	items := make(map[string][]domain.Item)
	for rows.Next() {
		item := domain.Item{Source: domain.SourceUser}
		if err := rows.Scan(&item.ID, &item.Category, &item.Name); err != nil {
			return nil, nil, fmt.Errorf("failed to scan preset: %w", err)
		}
		if _, ok := items[item.Category]; !ok {
			order = append(order, item.Category)
		}
		items[item.Category] = append(items[item.Category], item)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read presets: %w", err)
	}
	return order, items, nil
}

// Package bootstrap wires the catalogs, the cycling engine and the roster
// shared by every presetdeck binary.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"presetdeck/internal/adapters/filesystem"
	"presetdeck/internal/adapters/sorting"
	"presetdeck/internal/adapters/sqlite"
	"presetdeck/internal/adapters/subject"
	"presetdeck/internal/application/catalog"
	"presetdeck/internal/config"
)

// Deck is a fully wired presetdeck instance
type Deck struct {
	Builtin *filesystem.BuiltinCatalog
	User    *sqlite.UserCatalog
	Store   *sqlite.Store
	Sorter  *sorting.Collated
	Engine  *catalog.Engine
	Roster  *subject.Roster
	Logger  *slog.Logger
}

// Open builds a deck from cfg. The built-in catalog starts loading in the
// background; the user catalog is loaded before Open returns.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Deck, error) {
	if logger == nil {
		logger = slog.Default()
	}

	sorter, err := sorting.NewCollated(cfg.Catalog.Language, cfg.Catalog.Filter)
	if err != nil {
		return nil, err
	}

	store, err := sqlite.Open(filesystem.ExpandHome(cfg.Database.Path))
	if err != nil {
		return nil, err
	}

	builtin := filesystem.NewBuiltinCatalog(cfg.Catalog.BuiltinPath, logger.With("source", "builtin"))
	user := sqlite.NewUserCatalog(store, logger.With("source", "user"))
	engine := catalog.NewEngine(sorter, logger.With("component", "engine"), builtin, user)

	d := &Deck{
		Builtin: builtin,
		User:    user,
		Store:   store,
		Sorter:  sorter,
		Engine:  engine,
		Roster:  subject.NewRoster(engine, store, logger.With("component", "roster")),
		Logger:  logger,
	}

	if err := user.Reload(ctx); err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to load user catalog: %w", err)
	}
	builtin.Load(ctx)
	return d, nil
}

// WaitReady blocks until the built-in catalog has loaded. A catalog that
// failed to load is reported but leaves the deck usable.
func (d *Deck) WaitReady(ctx context.Context) error {
	err := d.Builtin.Wait(ctx)
	if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return err
	}
	if err != nil {
		d.Logger.Warn("continuing without builtin catalog", "error", err)
	}
	return nil
}

// Close detaches every subject and closes the database
func (d *Deck) Close() error {
	d.Roster.Close()
	d.Engine.Close()
	return d.Store.Close()
}

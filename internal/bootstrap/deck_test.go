package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presetdeck/internal/config"
	"presetdeck/internal/domain"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Catalog:  config.CatalogConfig{Language: "en"},
		Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "deck.db")},
		Log:      config.LogConfig{Level: "info"},
	}
}

func TestOpen_WiresEverything(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	d, err := Open(ctx, testConfig(t), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, d.WaitReady(ctx))
	assert.False(t, d.Engine.Busy(domain.SourceBuiltin))
	assert.False(t, d.Engine.Busy(domain.SourceUser))

	item, err := d.User.AddItem(ctx, "Mine", "Stretch")
	require.NoError(t, err)

	a, err := d.Roster.Spawn(ctx, "left", item)
	require.NoError(t, err)
	require.NoError(t, d.Engine.CycleNext(a.ID()))
	assert.Equal(t, item, a.CurrentItem(), "a single user preset wraps onto itself")

	names, err := d.Engine.Categories(domain.SourceBuiltin)
	require.NoError(t, err)
	assert.NotEmpty(t, names)
}

func TestOpen_InvalidLanguage(t *testing.T) {
	cfg := testConfig(t)
	cfg.Catalog.Language = "??"

	_, err := Open(context.Background(), cfg, nil)
	assert.Error(t, err)
}

package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presetdeck/internal/application"
	"presetdeck/internal/domain"
)

const sampleCatalog = `
categories:
  - name: Idle
    items:
      - name: Breathe
      - id: idle/custom
        name: Look Around
  - name: Wave
    items: []
  - name: Sit
    items:
      - name: Cross Legged
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func loadCatalog(t *testing.T, path string) *BuiltinCatalog {
	t.Helper()
	c := NewBuiltinCatalog(path, nil)
	c.Load(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = c.Wait(ctx)
	return c
}

func TestBuiltinCatalog_BusyUntilLoaded(t *testing.T) {
	c := NewBuiltinCatalog(writeCatalog(t, sampleCatalog), nil)

	assert.True(t, c.Busy())
	_, err := c.Categories()
	assert.ErrorIs(t, err, application.ErrSourceBusy)
	_, err = c.Items("Idle")
	assert.ErrorIs(t, err, application.ErrSourceBusy)

	ready := make(chan struct{})
	c.OnReady(func() { close(ready) })
	c.Load(context.Background())

	select {
	case <-ready:
	case <-time.After(5 * time.Second):
		t.Fatal("ready event never fired")
	}
	assert.False(t, c.Busy())
}

func TestBuiltinCatalog_Contents(t *testing.T) {
	c := loadCatalog(t, writeCatalog(t, sampleCatalog))
	require.NoError(t, c.Err())

	names, err := c.Categories()
	require.NoError(t, err)
	assert.Equal(t, []string{"Idle", "Wave", "Sit"}, names)

	idle, err := c.Items("Idle")
	require.NoError(t, err)
	assert.Equal(t, []domain.Item{
		{ID: "idle/breathe", Name: "Breathe", Category: "Idle", Source: domain.SourceBuiltin},
		{ID: "idle/custom", Name: "Look Around", Category: "Idle", Source: domain.SourceBuiltin},
	}, idle)

	wave, err := c.Items("Wave")
	require.NoError(t, err)
	assert.Empty(t, wave)

	missing, err := c.Items("Nope")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestBuiltinCatalog_LateReadyListenerRunsImmediately(t *testing.T) {
	c := loadCatalog(t, writeCatalog(t, sampleCatalog))

	calls := 0
	c.OnReady(func() { calls++ })
	assert.Equal(t, 1, calls)
}

func TestBuiltinCatalog_ReadyFiresOnce(t *testing.T) {
	c := NewBuiltinCatalog(writeCatalog(t, sampleCatalog), nil)
	calls := 0
	c.OnReady(func() { calls++ })

	c.Load(context.Background())
	c.Load(context.Background())
	require.NoError(t, c.Wait(context.Background()))

	assert.Equal(t, 1, calls)
}

func TestBuiltinCatalog_LoadFailureIsReadyAndEmpty(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"duplicate category", "categories:\n  - name: A\n  - name: A\n", "duplicate category"},
		{"duplicate id", "categories:\n  - name: A\n    items:\n      - name: x\n  - name: B\n    items:\n      - id: a/x\n        name: y\n", "duplicate item id"},
		{"unnamed item", "categories:\n  - name: A\n    items:\n      - id: a/1\n", "has no name"},
		{"unknown field", "categories:\n  - name: A\n    colour: red\n", "failed to parse catalog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := loadCatalog(t, writeCatalog(t, tt.content))

			require.Error(t, c.Err())
			assert.Contains(t, c.Err().Error(), tt.errMsg)
			assert.False(t, c.Busy())

			names, err := c.Categories()
			require.NoError(t, err)
			assert.Empty(t, names)
		})
	}
}

func TestBuiltinCatalog_MissingFile(t *testing.T) {
	c := loadCatalog(t, filepath.Join(t.TempDir(), "absent.yaml"))

	assert.True(t, errors.Is(c.Err(), os.ErrNotExist))
}

func TestBuiltinCatalog_CancelledLoad(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewBuiltinCatalog("", nil)
	c.Load(ctx)
	<-c.done

	assert.ErrorIs(t, c.Err(), context.Canceled)
	assert.False(t, c.Busy())
}

func TestBuiltinCatalog_EmbeddedDefault(t *testing.T) {
	c := loadCatalog(t, "")
	require.NoError(t, c.Err())

	names, err := c.Categories()
	require.NoError(t, err)
	assert.NotEmpty(t, names)
	assert.Contains(t, names, "Idle")
}

func TestExporter_RoundTrip(t *testing.T) {
	src := loadCatalog(t, writeCatalog(t, sampleCatalog))
	names, _ := src.Categories()

	var snapshot []domain.CategorySnapshot
	for _, name := range names {
		items, _ := src.Items(name)
		snapshot = append(snapshot, domain.CategorySnapshot{Name: name, Items: items})
	}

	out := filepath.Join(t.TempDir(), "export.yaml")
	require.NoError(t, Exporter{}.Export(out, snapshot))

	again := loadCatalog(t, out)
	require.NoError(t, again.Err())
	exported, _ := again.Categories()
	assert.Equal(t, names, exported)

	idle, _ := again.Items("Idle")
	orig, _ := src.Items("Idle")
	assert.Equal(t, orig, idle)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "presets.yaml"), ExpandHome("~/presets.yaml"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
}

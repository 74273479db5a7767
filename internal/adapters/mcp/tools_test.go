package mcp

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presetdeck/internal/adapters/filesystem"
	"presetdeck/internal/bootstrap"
	"presetdeck/internal/config"
	"presetdeck/internal/domain"
)

func newTestDeps(t *testing.T) (Deps, *bootstrap.Deck) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg := config.Config{
		Catalog:  config.CatalogConfig{Language: "en"},
		Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "deck.db")},
	}
	deck, err := bootstrap.Open(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { deck.Close() })
	require.NoError(t, deck.WaitReady(ctx))

	return Deps{
		Cycler: deck.Engine,
		User:   deck.User,
		Roster: deck.Roster,
		Export: filesystem.Exporter{},
	}, deck
}

func call(t *testing.T, handler server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args

	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text, result.IsError
}

func TestListCategories(t *testing.T) {
	deps, _ := newTestDeps(t)

	text, isErr := call(t, listCategoriesHandler(deps), nil)
	assert.False(t, isErr)
	assert.Equal(t, "Dance  3\nEmote  0\nGreet  4\nIdle  4\nSit  3\n", text)
}

func TestListItems_UnknownCategory(t *testing.T) {
	deps, _ := newTestDeps(t)

	text, isErr := call(t, listItemsHandler(deps), map[string]any{"category": "Juggle"})
	assert.True(t, isErr)
	assert.Contains(t, text, "not found")
}

func TestListItems_InvalidSource(t *testing.T) {
	deps, _ := newTestDeps(t)

	_, isErr := call(t, listItemsHandler(deps), map[string]any{"category": "Idle", "source": "remote"})
	assert.True(t, isErr)
}

func TestCycle_SkipsToNextCategory(t *testing.T) {
	deps, deck := newTestDeps(t)
	ctx := context.Background()

	start := domain.Item{ID: domain.Slug("Idle", "Yawn"), Name: "Yawn", Category: "Idle", Source: domain.SourceBuiltin}
	actor, err := deck.Roster.Spawn(ctx, "left", start)
	require.NoError(t, err)

	text, isErr := call(t, cycleHandler(deps), map[string]any{"subject_id": actor.ID(), "direction": "next"})
	assert.False(t, isErr)
	assert.Contains(t, text, "Sit/Chair")

	text, isErr = call(t, cycleHandler(deps), map[string]any{"subject_id": actor.ID(), "direction": "previous"})
	assert.False(t, isErr)
	assert.Contains(t, text, "Idle/Yawn")
}

func TestCycle_UnknownSubject(t *testing.T) {
	deps, _ := newTestDeps(t)

	text, isErr := call(t, cycleHandler(deps), map[string]any{"subject_id": "ghost"})
	assert.True(t, isErr)
	assert.Contains(t, text, "ghost")
}

func TestSpawnAndSelect(t *testing.T) {
	deps, deck := newTestDeps(t)

	text, isErr := call(t, spawnSubjectHandler(deps), map[string]any{"label": "left", "preset": "Wave"})
	require.False(t, isErr, text)
	assert.Contains(t, text, "Greet/Wave")

	actors := deck.Roster.Actors()
	require.Len(t, actors, 1)
	id := actors[0].ID()

	text, isErr = call(t, selectHandler(deps), map[string]any{"subject_id": id, "query": "sit/lean back"})
	require.False(t, isErr, text)
	assert.Contains(t, text, "Sit/Lean Back")
	assert.Equal(t, "Lean Back", actors[0].CurrentItem().Name)

	text, isErr = call(t, cursorHandler(deps), map[string]any{"subject_id": id})
	assert.False(t, isErr)
	assert.Contains(t, text, "[4:2]")
}

func TestSpawn_UnknownPreset(t *testing.T) {
	deps, deck := newTestDeps(t)

	_, isErr := call(t, spawnSubjectHandler(deps), map[string]any{"preset": "Moonwalk Backflip Extravaganza"})
	assert.True(t, isErr)
	assert.Empty(t, deck.Roster.Actors())
}

func TestAddPreset_ShowsUpInUserCatalog(t *testing.T) {
	deps, _ := newTestDeps(t)

	_, isErr := call(t, addPresetHandler(deps), map[string]any{"category": "Mine", "name": "Stretch"})
	require.False(t, isErr)

	text, isErr := call(t, listItemsHandler(deps), map[string]any{"category": "Mine", "source": "user"})
	assert.False(t, isErr)
	assert.Contains(t, text, "Stretch")

	text, isErr = call(t, addPresetHandler(deps), map[string]any{"category": "Mine", "name": "Stretch"})
	assert.True(t, isErr)
	assert.Contains(t, text, "already exists")
}

func TestSubjects_Empty(t *testing.T) {
	deps, _ := newTestDeps(t)

	text, isErr := call(t, subjectsHandler(deps), nil)
	assert.False(t, isErr)
	assert.Equal(t, "No subjects.", text)
}

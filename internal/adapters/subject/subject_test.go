package subject

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presetdeck/internal/adapters/sorting"
	"presetdeck/internal/application"
	"presetdeck/internal/application/catalog"
	"presetdeck/internal/domain"
	"presetdeck/internal/ports"
)

type staticSource struct {
	order []string
	items map[string][]domain.Item
}

func (s *staticSource) Tag() domain.SourceTag               { return domain.SourceBuiltin }
func (s *staticSource) Busy() bool                          { return false }
func (s *staticSource) OnReady(fn func()) ports.Unsubscribe { fn(); return func() {} }
func (s *staticSource) Categories() ([]string, error)       { return s.order, nil }
func (s *staticSource) Items(c string) ([]domain.Item, error) {
	return s.items[c], nil
}

func preset(category, name string) domain.Item {
	return domain.Item{ID: domain.Slug(category, name), Name: name, Category: category, Source: domain.SourceBuiltin}
}

func newSource() *staticSource {
	return &staticSource{
		order: []string{"Idle", "Sit"},
		items: map[string][]domain.Item{
			"Idle": {preset("Idle", "Breathe"), preset("Idle", "Yawn")},
			"Sit":  {preset("Sit", "Chair")},
		},
	}
}

type memoryStore struct {
	saved   map[string]domain.Item
	saveErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{saved: make(map[string]domain.Item)}
}

func (m *memoryStore) LoadSelection(_ context.Context, id string) (domain.Item, bool, error) {
	item, ok := m.saved[id]
	return item, ok, nil
}

func (m *memoryStore) SaveSelection(_ context.Context, id string, item domain.Item) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved[id] = item
	return nil
}

func (m *memoryStore) ListSelections(context.Context) (map[string]domain.Item, error) {
	out := make(map[string]domain.Item, len(m.saved))
	for k, v := range m.saved {
		out[k] = v
	}
	return out, nil
}

func (m *memoryStore) DeleteSelection(_ context.Context, id string) error {
	delete(m.saved, id)
	return nil
}

func newEngine(t *testing.T) *catalog.Engine {
	t.Helper()
	e := catalog.NewEngine(sorting.Storage{}, slog.New(slog.NewTextHandler(io.Discard, nil)), newSource())
	t.Cleanup(e.Close)
	return e
}

func TestActor_ApplyIsSilent(t *testing.T) {
	a := NewActor("a1", "", preset("Idle", "Breathe"), nil)
	calls := 0
	a.OnItemChanged(func() { calls++ })

	require.NoError(t, a.Apply(preset("Idle", "Yawn")))
	assert.Equal(t, preset("Idle", "Yawn"), a.CurrentItem())
	assert.Zero(t, calls)
	assert.Equal(t, "a1", a.Label())
}

func TestActor_SelectNotifies(t *testing.T) {
	a := NewActor("a1", "Left", preset("Idle", "Breathe"), nil)
	calls := 0
	a.OnItemChanged(func() { calls++ })

	require.NoError(t, a.Select(context.Background(), preset("Sit", "Chair")))
	assert.Equal(t, 1, calls)
}

func TestActor_PersistFailureKeepsSelection(t *testing.T) {
	store := newMemoryStore()
	store.saveErr = errors.New("read-only database")
	a := NewActor("a1", "", preset("Idle", "Breathe"), store)

	err := a.Apply(preset("Idle", "Yawn"))
	assert.ErrorIs(t, err, store.saveErr)
	assert.Equal(t, preset("Idle", "Breathe"), a.CurrentItem())
}

func TestRoster_SpawnAndCycle(t *testing.T) {
	ctx := context.Background()
	engine := newEngine(t)
	store := newMemoryStore()
	roster := NewRoster(engine, store, nil)

	a, err := roster.Spawn(ctx, "", preset("Idle", "Yawn"))
	require.NoError(t, err)
	assert.Contains(t, a.Label(), "actor-")
	assert.Equal(t, []string{a.ID()}, engine.Subjects())

	require.NoError(t, engine.CycleNext(a.ID()))
	assert.Equal(t, preset("Sit", "Chair"), a.CurrentItem())
	assert.Equal(t, preset("Sit", "Chair"), store.saved[a.ID()])
}

func TestRoster_SelectResyncsEngine(t *testing.T) {
	ctx := context.Background()
	engine := newEngine(t)
	roster := NewRoster(engine, nil, nil)

	a, err := roster.Spawn(ctx, "left", preset("Idle", "Breathe"))
	require.NoError(t, err)

	require.NoError(t, a.Select(ctx, preset("Sit", "Chair")))
	cursor, err := engine.Cursor(a.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, cursor.CategoryIndex)

	require.NoError(t, engine.CyclePrevious(a.ID()))
	assert.Equal(t, preset("Idle", "Yawn"), a.CurrentItem())
}

func TestRoster_RestoreUsesPersistedSelection(t *testing.T) {
	ctx := context.Background()
	engine := newEngine(t)
	store := newMemoryStore()
	store.saved["left"] = preset("Sit", "Chair")
	roster := NewRoster(engine, store, nil)

	a, err := roster.Restore(ctx, "left", preset("Idle", "Breathe"))
	require.NoError(t, err)
	assert.Equal(t, preset("Sit", "Chair"), a.CurrentItem())

	b, err := roster.Restore(ctx, "right", preset("Idle", "Breathe"))
	require.NoError(t, err)
	assert.Equal(t, preset("Idle", "Breathe"), b.CurrentItem())
	assert.Equal(t, preset("Idle", "Breathe"), store.saved["right"])

	again, err := roster.Restore(ctx, "left", domain.Item{})
	require.NoError(t, err)
	assert.Same(t, a, again)

	_, err = roster.Restore(ctx, " ", domain.Item{})
	var validationErr *application.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestRoster_RestoreAll(t *testing.T) {
	ctx := context.Background()
	engine := newEngine(t)
	store := newMemoryStore()
	store.saved["b"] = preset("Idle", "Yawn")
	store.saved["a"] = preset("Sit", "Chair")
	roster := NewRoster(engine, store, nil)

	require.NoError(t, roster.RestoreAll(ctx))

	actors := roster.Actors()
	require.Len(t, actors, 2)
	assert.Equal(t, "a", actors[0].ID())
	assert.Equal(t, []string{"a", "b"}, engine.Subjects())
}

func TestRoster_Detach(t *testing.T) {
	ctx := context.Background()
	engine := newEngine(t)
	store := newMemoryStore()
	roster := NewRoster(engine, store, nil)

	a, err := roster.Spawn(ctx, "", preset("Idle", "Breathe"))
	require.NoError(t, err)
	b, err := roster.Spawn(ctx, "", preset("Idle", "Breathe"))
	require.NoError(t, err)

	require.NoError(t, roster.Detach(ctx, a.ID(), true))
	require.NoError(t, roster.Detach(ctx, b.ID(), false))

	assert.Empty(t, engine.Subjects())
	assert.Empty(t, roster.Actors())
	assert.NotContains(t, store.saved, a.ID())
	assert.Contains(t, store.saved, b.ID())

	_, err = engine.Cursor(a.ID())
	assert.ErrorIs(t, err, application.ErrNotAttached)
}

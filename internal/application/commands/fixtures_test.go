package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"testing"

	"presetdeck/internal/application"
	"presetdeck/internal/application/catalog"
	"presetdeck/internal/domain"
	"presetdeck/internal/ports"
)

// memoryCatalog is an in-memory catalog usable as either source
type memoryCatalog struct {
	tag   domain.SourceTag
	busy  bool
	order []string
	items map[string][]domain.Item

	added     []func(domain.Item)
	refreshed []func()
	reloads   int
}

func newMemoryCatalog(tag domain.SourceTag) *memoryCatalog {
	return &memoryCatalog{tag: tag, items: make(map[string][]domain.Item)}
}

func (m *memoryCatalog) with(category string, names ...string) *memoryCatalog {
	if _, ok := m.items[category]; !ok {
		m.order = append(m.order, category)
		m.items[category] = []domain.Item{}
	}
	for _, name := range names {
		m.items[category] = append(m.items[category], m.item(category, name))
	}
	return m
}

func (m *memoryCatalog) item(category, name string) domain.Item {
	return domain.Item{ID: domain.Slug(category, name), Name: name, Category: category, Source: m.tag}
}

func (m *memoryCatalog) Tag() domain.SourceTag               { return m.tag }
func (m *memoryCatalog) Busy() bool                          { return m.busy }
func (m *memoryCatalog) OnReady(fn func()) ports.Unsubscribe { fn(); return func() {} }

func (m *memoryCatalog) Categories() ([]string, error) {
	return slices.Clone(m.order), nil
}

func (m *memoryCatalog) Items(category string) ([]domain.Item, error) {
	return slices.Clone(m.items[category]), nil
}

func (m *memoryCatalog) OnItemAdded(fn func(domain.Item)) ports.Unsubscribe {
	m.added = append(m.added, fn)
	return func() {}
}

func (m *memoryCatalog) OnRefreshed(fn func()) ports.Unsubscribe {
	m.refreshed = append(m.refreshed, fn)
	return func() {}
}

func (m *memoryCatalog) AddItem(_ context.Context, category, name string) (domain.Item, error) {
	item := m.item(category, name)
	if slices.ContainsFunc(m.items[category], item.SameAs) {
		return domain.Item{}, fmt.Errorf("preset %q: %w", name, application.ErrAlreadyExists)
	}
	m.with(category, name)
	for _, fn := range m.added {
		fn(item)
	}
	return item, nil
}

func (m *memoryCatalog) RemoveCategory(_ context.Context, category string) error {
	if _, ok := m.items[category]; !ok {
		return application.ErrNotFound
	}
	delete(m.items, category)
	m.order = slices.DeleteFunc(m.order, func(c string) bool { return c == category })
	return m.Reload(context.Background())
}

func (m *memoryCatalog) Reload(context.Context) error {
	m.reloads++
	for _, fn := range m.refreshed {
		fn()
	}
	return nil
}

var _ ports.UserCatalog = (*memoryCatalog)(nil)

// testSubject is a selectable subject that records what it was given
type testSubject struct {
	id        string
	current   domain.Item
	selectErr error
	listeners []func()
}

func (s *testSubject) ID() string                   { return s.id }
func (s *testSubject) CurrentItem() domain.Item     { return s.current }
func (s *testSubject) Apply(item domain.Item) error { s.current = item; return nil }
func (s *testSubject) OnItemChanged(fn func()) ports.Unsubscribe {
	s.listeners = append(s.listeners, fn)
	return func() {}
}

func (s *testSubject) Select(_ context.Context, item domain.Item) error {
	if s.selectErr != nil {
		return s.selectErr
	}
	s.current = item
	return nil
}

// fixture wires a builtin and a user catalog into a real engine:
//
//	builtin: Idle [Breathe, Yawn], Wave [], Sit [Chair, Cross Legged]
//	user:    Mine [Stretch]
type fixture struct {
	builtin *memoryCatalog
	user    *memoryCatalog
	engine  *catalog.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	builtin := newMemoryCatalog(domain.SourceBuiltin).
		with("Idle", "Breathe", "Yawn").
		with("Wave").
		with("Sit", "Chair", "Cross Legged")
	user := newMemoryCatalog(domain.SourceUser).with("Mine", "Stretch")

	engine := catalog.NewEngine(storageSorter{}, slog.New(slog.NewTextHandler(io.Discard, nil)), builtin, user)
	t.Cleanup(engine.Close)
	return &fixture{builtin: builtin, user: user, engine: engine}
}

func (f *fixture) attach(t *testing.T, id string, item domain.Item) *testSubject {
	t.Helper()
	s := &testSubject{id: id, current: item}
	if err := f.engine.Attach(s); err != nil {
		t.Fatalf("Attach(%s) failed: %v", id, err)
	}
	return s
}

type storageSorter struct{}

func (storageSorter) Categories(src ports.CatalogSource) ([]string, error) {
	return src.Categories()
}

func (storageSorter) Items(category string, src ports.CatalogSource) ([]domain.Item, error) {
	return src.Items(category)
}

type recordingExporter struct {
	path string
	tree []domain.CategorySnapshot
	err  error
}

func (r *recordingExporter) Export(path string, tree []domain.CategorySnapshot) error {
	if r.err != nil {
		return r.err
	}
	r.path, r.tree = path, tree
	return nil
}

func isValidationError(err error) bool {
	var validationErr *application.ValidationError
	return errors.As(err, &validationErr)
}

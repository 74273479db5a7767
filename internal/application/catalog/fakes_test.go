package catalog

import (
	"errors"
	"slices"
	"strings"

	"presetdeck/internal/domain"
	"presetdeck/internal/ports"
)

// fakeSource is an in-memory mutable catalog with call counters
type fakeSource struct {
	tag   domain.SourceTag
	busy  bool
	order []string
	items map[string][]domain.Item

	readyFired bool
	ready      []func()
	added      []func(domain.Item)
	refreshed  []func()

	categoriesCalls int
	itemsCalls      map[string]int
}

type categoryFixture struct {
	name  string
	items []string
}

func cat(name string, items ...string) categoryFixture {
	return categoryFixture{name: name, items: items}
}

func newFakeSource(tag domain.SourceTag, categories ...categoryFixture) *fakeSource {
	s := &fakeSource{
		tag:        tag,
		items:      make(map[string][]domain.Item),
		itemsCalls: make(map[string]int),
		readyFired: true,
	}
	for _, c := range categories {
		s.order = append(s.order, c.name)
		s.items[c.name] = []domain.Item{}
		for _, name := range c.items {
			s.items[c.name] = append(s.items[c.name], s.item(c.name, name))
		}
	}
	return s
}

func (s *fakeSource) item(category, name string) domain.Item {
	return domain.Item{
		ID:       strings.ToLower(category) + "/" + name,
		Name:     name,
		Category: category,
		Source:   s.tag,
	}
}

func (s *fakeSource) Tag() domain.SourceTag { return s.tag }
func (s *fakeSource) Busy() bool            { return s.busy }

func (s *fakeSource) OnReady(fn func()) ports.Unsubscribe {
	if s.readyFired {
		fn()
		return func() {}
	}
	s.ready = append(s.ready, fn)
	return func() {}
}

func (s *fakeSource) OnItemAdded(fn func(domain.Item)) ports.Unsubscribe {
	s.added = append(s.added, fn)
	i := len(s.added) - 1
	return func() { s.added[i] = nil }
}

func (s *fakeSource) OnRefreshed(fn func()) ports.Unsubscribe {
	s.refreshed = append(s.refreshed, fn)
	i := len(s.refreshed) - 1
	return func() { s.refreshed[i] = nil }
}

func (s *fakeSource) Categories() ([]string, error) {
	if s.busy {
		return nil, errors.New("queried while busy")
	}
	s.categoriesCalls++
	return slices.Clone(s.order), nil
}

func (s *fakeSource) Items(category string) ([]domain.Item, error) {
	if s.busy {
		return nil, errors.New("queried while busy")
	}
	s.itemsCalls[category]++
	return slices.Clone(s.items[category]), nil
}

// startLoading puts the source back into its busy phase (before first ready)
func (s *fakeSource) startLoading() {
	s.busy = true
	s.readyFired = false
}

func (s *fakeSource) finishLoading() {
	s.busy = false
	s.readyFired = true
	for _, fn := range s.ready {
		fn()
	}
	s.ready = nil
}

// add inserts an item at position at (or appends when at < 0) and fires ItemAdded
func (s *fakeSource) add(category, name string, at int) domain.Item {
	item := s.item(category, name)
	if _, ok := s.items[category]; !ok {
		s.order = append(s.order, category)
	}
	list := s.items[category]
	if at < 0 || at > len(list) {
		at = len(list)
	}
	s.items[category] = slices.Insert(list, at, item)
	for _, fn := range s.added {
		if fn != nil {
			fn(item)
		}
	}
	return item
}

func (s *fakeSource) removeCategory(category string) {
	delete(s.items, category)
	s.order = slices.DeleteFunc(s.order, func(c string) bool { return c == category })
}

func (s *fakeSource) removeItem(category, name string) {
	target := s.item(category, name)
	s.items[category] = slices.DeleteFunc(s.items[category], target.SameAs)
}

func (s *fakeSource) refresh() {
	for _, fn := range s.refreshed {
		if fn != nil {
			fn()
		}
	}
}

// testSorter keeps storage order, optionally sorting items by name
type testSorter struct {
	byName bool
	err    error
}

func (s testSorter) Categories(src ports.CatalogSource) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return src.Categories()
}

func (s testSorter) Items(category string, src ports.CatalogSource) ([]domain.Item, error) {
	if s.err != nil {
		return nil, s.err
	}
	items, err := src.Items(category)
	if err != nil {
		return nil, err
	}
	if s.byName {
		slices.SortFunc(items, func(a, b domain.Item) int {
			return strings.Compare(a.Name, b.Name)
		})
	}
	return items, nil
}

// fakeSubject records applied items
type fakeSubject struct {
	id        string
	current   domain.Item
	applied   []domain.Item
	applyErr  error
	listeners []func()
}

func newFakeSubject(id string, current domain.Item) *fakeSubject {
	return &fakeSubject{id: id, current: current}
}

func (s *fakeSubject) ID() string               { return s.id }
func (s *fakeSubject) CurrentItem() domain.Item { return s.current }

func (s *fakeSubject) Apply(item domain.Item) error {
	if s.applyErr != nil {
		return s.applyErr
	}
	s.current = item
	s.applied = append(s.applied, item)
	return nil
}

func (s *fakeSubject) OnItemChanged(fn func()) ports.Unsubscribe {
	s.listeners = append(s.listeners, fn)
	i := len(s.listeners) - 1
	return func() { s.listeners[i] = nil }
}

// pick simulates the user choosing an item outside the engine
func (s *fakeSubject) pick(item domain.Item) {
	s.current = item
	for _, fn := range s.listeners {
		if fn != nil {
			fn()
		}
	}
}

func (s *fakeSubject) subscribed() int {
	n := 0
	for _, fn := range s.listeners {
		if fn != nil {
			n++
		}
	}
	return n
}

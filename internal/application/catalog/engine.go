package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"presetdeck/internal/application"
	"presetdeck/internal/domain"
	"presetdeck/internal/ports"
)

// Engine owns the per-source caches and the cursor table, and implements
// cycling on top of them.
type Engine struct {
	mu      sync.Mutex
	logger  *slog.Logger
	caches  map[domain.SourceTag]*Cache
	cursors *CursorTable

	subscriptions []ports.Unsubscribe
}

// Ensure Engine implements Cycler
var _ ports.Cycler = (*Engine)(nil)

// NewEngine creates an engine over sources and subscribes to their events.
// A nil logger falls back to slog.Default().
func NewEngine(sorter ports.Sorter, logger *slog.Logger, sources ...ports.CatalogSource) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		logger:  logger,
		caches:  make(map[domain.SourceTag]*Cache, len(sources)),
		cursors: NewCursorTable(),
	}
	for _, src := range sources {
		e.caches[src.Tag()] = NewCache(src, sorter)
	}

	// Subscribe only once every cache exists: OnReady may fire right away.
	for _, src := range sources {
		tag := src.Tag()
		e.subscriptions = append(e.subscriptions, src.OnReady(func() {
			e.logger.Info("catalog ready", "source", tag)
			e.logEventErr("ready", tag, e.Invalidate(tag))
		}))

		mutable, ok := src.(ports.MutableCatalogSource)
		if !ok {
			continue
		}
		e.subscriptions = append(e.subscriptions,
			mutable.OnItemAdded(func(item domain.Item) {
				e.logEventErr("item added", tag, e.NoteInserted(item))
			}),
			mutable.OnRefreshed(func() {
				e.logEventErr("refreshed", tag, e.Invalidate(tag))
			}),
		)
	}
	return e
}

// Close drops every source subscription and detaches all subjects
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, unsubscribe := range e.subscriptions {
		unsubscribe()
	}
	e.subscriptions = nil
	e.cursors.Clear()
}

// Attach creates a cursor for subject from its current item and starts
// listening for external selection changes. Attaching an already attached
// subject re-resolves its cursor.
func (e *Engine) Attach(subject ports.Subject) error {
	id := subject.ID()
	if err := application.ValidateRequired("subjectID", id); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	cursor, err := e.resolveLocked(subject.CurrentItem())
	if err != nil {
		return err
	}

	unsubscribe := subject.OnItemChanged(func() {
		if err := e.Resync(id); err != nil && !errors.Is(err, application.ErrNotAttached) {
			e.logger.Error("resync after external change failed", "subject", id, "error", err)
		}
	})
	e.cursors.Put(subject, cursor, unsubscribe)

	e.logger.Debug("subject attached",
		"subject", id,
		"item", cursor.Current.ID,
		"category_index", cursor.CategoryIndex,
		"item_index", cursor.ItemIndex,
	)
	return nil
}

// Detach stops tracking a subject. Detaching an unknown subject is a no-op.
func (e *Engine) Detach(subjectID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cursors.Remove(subjectID) {
		e.logger.Debug("subject detached", "subject", subjectID)
	}
}

// Cursor returns the cursor of an attached subject.
// It fails with application.ErrNotAttached for unknown subjects.
func (e *Engine) Cursor(subjectID string) (domain.Cursor, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cursor, ok := e.cursors.Get(subjectID)
	if !ok {
		return domain.Cursor{}, &application.SubjectError{SubjectID: subjectID}
	}
	return cursor, nil
}

// Subjects returns the attached subject IDs in sorted order
func (e *Engine) Subjects() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.cursors.IDs()
}

// CycleNext moves a subject to the next item
func (e *Engine) CycleNext(subjectID string) error {
	return e.Cycle(subjectID, domain.Forward)
}

// CyclePrevious moves a subject to the previous item
func (e *Engine) CyclePrevious(subjectID string) error {
	return e.Cycle(subjectID, domain.Backward)
}

// CycleAllNext moves every attached subject to its next item
func (e *Engine) CycleAllNext() error {
	return e.CycleAll(domain.Forward)
}

// CycleAllPrevious moves every attached subject to its previous item
func (e *Engine) CycleAllPrevious() error {
	return e.CycleAll(domain.Backward)
}

// Cycle moves a subject one item in direction dir.
//
// Within a category this is a plain index step. Stepping off either end
// probes the neighbouring categories in sorter order and lands on the first
// (forward) or last (backward) item of the first non-empty one, wrapping
// around the category list. When no category has items, or the source is
// still loading, the call does nothing.
func (e *Engine) Cycle(subjectID string, dir domain.Direction) error {
	if err := application.ValidateDirection(dir); err != nil {
		return fmt.Errorf("%w: %v", application.ErrInvalidDirection, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.cycleLocked(subjectID, dir)
}

// CycleAll applies Cycle to a snapshot of the attached subjects. Each subject
// moves independently; failures are joined and do not stop the others.
func (e *Engine) CycleAll(dir domain.Direction) error {
	if err := application.ValidateDirection(dir); err != nil {
		return fmt.Errorf("%w: %v", application.ErrInvalidDirection, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var errs []error
	for _, id := range e.cursors.IDs() {
		if err := e.cycleLocked(id, dir); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Resync adopts the subject's current item after an external selection
// change and re-derives its indices by identity. It does nothing when the
// subject still holds the item the cursor knows about.
func (e *Engine) Resync(subjectID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	subject, ok := e.cursors.Subject(subjectID)
	if !ok {
		return &application.SubjectError{SubjectID: subjectID}
	}
	cursor, _ := e.cursors.Get(subjectID)

	item := subject.CurrentItem()
	if item.SameAs(cursor.Current) {
		return nil
	}

	next, err := e.resolveLocked(item)
	if err != nil {
		return err
	}
	e.cursors.Set(subjectID, next)

	e.logger.Debug("subject resynced",
		"subject", subjectID,
		"item", item.ID,
		"category_index", next.CategoryIndex,
		"item_index", next.ItemIndex,
	)
	return nil
}

// Invalidate clears the cache of a source and remaps every cursor that
// belongs to it. Hosts call it when a catalog was rebuilt wholesale.
func (e *Engine) Invalidate(tag domain.SourceTag) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cache, ok := e.caches[tag]
	if !ok {
		return fmt.Errorf("%w: %s", application.ErrUnknownSource, tag)
	}
	cache.Invalidate()
	e.logger.Info("catalog cache invalidated", "source", tag)

	return e.remapLocked(cache)
}

// NoteInserted patches the cache of the item's source and remaps every cursor
// that belongs to it. Hosts call it after an item was added.
func (e *Engine) NoteInserted(item domain.Item) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cache, ok := e.caches[item.Source]
	if !ok {
		return fmt.Errorf("%w: %s", application.ErrUnknownSource, item.Source)
	}
	if cache.Source().Busy() {
		// Nothing was read yet; the ready event rebuilds everything.
		cache.Invalidate()
		return nil
	}
	if err := cache.NoteInserted(item); err != nil {
		return err
	}
	e.logger.Debug("catalog cache patched", "source", item.Source, "category", item.Category, "item", item.ID)

	return e.remapLocked(cache)
}

// Busy reports whether a source is still loading. Unknown sources are never busy.
func (e *Engine) Busy(tag domain.SourceTag) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	cache, ok := e.caches[tag]
	return ok && cache.Source().Busy()
}

// Categories returns a copy of the sorted category names of a source
func (e *Engine) Categories(tag domain.SourceTag) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cache, err := e.readyCacheLocked(tag)
	if err != nil {
		return nil, err
	}
	names, err := cache.Categories()
	if err != nil {
		return nil, err
	}
	return slices.Clone(names), nil
}

// Items returns a copy of the sorted items of a category
func (e *Engine) Items(tag domain.SourceTag, category string) ([]domain.Item, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cache, err := e.readyCacheLocked(tag)
	if err != nil {
		return nil, err
	}
	items, err := cache.Items(category)
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

// Summaries returns every category of a source with its item count
func (e *Engine) Summaries(tag domain.SourceTag) ([]domain.CategorySummary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cache, err := e.readyCacheLocked(tag)
	if err != nil {
		return nil, err
	}
	return cache.Summaries()
}

func (e *Engine) readyCacheLocked(tag domain.SourceTag) (*Cache, error) {
	cache, ok := e.caches[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %s", application.ErrUnknownSource, tag)
	}
	if cache.Source().Busy() {
		return nil, fmt.Errorf("%w: %s", application.ErrSourceBusy, tag)
	}
	return cache, nil
}

func (e *Engine) cycleLocked(subjectID string, dir domain.Direction) error {
	subject, ok := e.cursors.Subject(subjectID)
	if !ok {
		return &application.SubjectError{SubjectID: subjectID}
	}
	cursor, _ := e.cursors.Get(subjectID)

	cache, ok := e.caches[cursor.Source()]
	if !ok {
		e.logger.Warn("cycle skipped: unknown source", "subject", subjectID, "source", cursor.Source())
		return nil
	}
	if cache.Source().Busy() {
		e.logger.Debug("cycle skipped: source busy", "subject", subjectID, "source", cursor.Source())
		return nil
	}

	next, err := step(cache, cursor, dir)
	if err != nil {
		return err
	}
	if next.Current.SameAs(cursor.Current) {
		// Nowhere else to go; still keep any corrected indices.
		e.cursors.Set(subjectID, next)
		return nil
	}

	if err := subject.Apply(next.Current); err != nil {
		return fmt.Errorf("apply %s to subject %s: %w", next.Current.ID, subjectID, err)
	}
	e.cursors.Set(subjectID, next)

	if next.CategoryIndex != cursor.CategoryIndex {
		e.logger.Debug("cycle crossed category",
			"subject", subjectID,
			"direction", dir,
			"from", cursor.Current.Category,
			"to", next.Current.Category,
		)
	}
	e.logger.Debug("subject cycled",
		"subject", subjectID,
		"direction", dir,
		"item", next.Current.ID,
		"category_index", next.CategoryIndex,
		"item_index", next.ItemIndex,
	)
	return nil
}

// step computes the cursor one item away from cur. It returns cur unchanged
// when no category holds any item.
func step(cache *Cache, cur domain.Cursor, dir domain.Direction) (domain.Cursor, error) {
	if !cur.Current.IsZero() {
		items, err := cache.Items(cur.Current.Category)
		if err != nil {
			return cur, err
		}
		if i := cur.ItemIndex + int(dir); i >= 0 && i < len(items) {
			return domain.Cursor{Current: items[i], CategoryIndex: cur.CategoryIndex, ItemIndex: i}, nil
		}
	}

	names, err := cache.Categories()
	if err != nil {
		return cur, err
	}
	n := len(names)
	if n == 0 {
		return cur, nil
	}

	base := cur.CategoryIndex
	if cur.Current.IsZero() && dir == domain.Forward {
		// No selection yet: start from the very first category
		base = -1
	}

	// k == n probes the starting category itself, so a lone non-empty
	// category wraps onto its opposite end.
	for k := 1; k <= n; k++ {
		ci := domain.Wrap(base+int(dir)*k, n)
		items, err := cache.Items(names[ci])
		if err != nil {
			return cur, err
		}
		if len(items) == 0 {
			continue
		}
		ii := 0
		if dir == domain.Backward {
			ii = len(items) - 1
		}
		return domain.Cursor{Current: items[ii], CategoryIndex: ci, ItemIndex: ii}, nil
	}
	return cur, nil
}

// resolveLocked builds a fresh cursor for item. Items of unknown or busy
// sources get a cursor at (0, 0) until the source becomes ready.
func (e *Engine) resolveLocked(item domain.Item) (domain.Cursor, error) {
	cache, ok := e.caches[item.Source]
	if !ok || cache.Source().Busy() {
		return domain.Cursor{Current: item}, nil
	}
	return e.remapCursor(cache, domain.Cursor{Current: item})
}

func (e *Engine) remapLocked(cache *Cache) error {
	if cache.Source().Busy() {
		return nil
	}
	tag := cache.Tag()
	for _, id := range e.cursors.IDs() {
		cursor, _ := e.cursors.Get(id)
		if cursor.Source() != tag {
			continue
		}
		next, err := e.remapCursor(cache, cursor)
		if err != nil {
			return err
		}
		e.cursors.Set(id, next)
	}
	return nil
}

// remapCursor re-derives the indices of cur from its item's identity.
//
// A vanished category resets both indices to 0 and keeps the (now stale)
// item. A vanished item keeps the previous item index, unclamped, so the
// next step continues from where the subject was.
func (e *Engine) remapCursor(cache *Cache, cur domain.Cursor) (domain.Cursor, error) {
	item := cur.Current
	ci, err := cache.IndexOfCategory(item.Category)
	if err != nil {
		return cur, err
	}
	if ci < 0 {
		if !item.IsZero() {
			e.logger.Warn("cursor category vanished; indices reset",
				"source", cache.Tag(),
				"category", item.Category,
				"item", item.ID,
			)
		}
		return domain.Cursor{Current: item}, nil
	}

	ii, err := cache.IndexOfItem(item)
	if err != nil {
		return cur, err
	}
	if ii < 0 {
		e.logger.Warn("cursor item vanished; keeping previous item index",
			"source", cache.Tag(),
			"category", item.Category,
			"item", item.ID,
			"item_index", cur.ItemIndex,
		)
		ii = cur.ItemIndex
	}
	return domain.Cursor{Current: item, CategoryIndex: ci, ItemIndex: ii}, nil
}

func (e *Engine) logEventErr(event string, tag domain.SourceTag, err error) {
	if err != nil {
		e.logger.Error("catalog event handling failed", "event", event, "source", tag, "error", err)
	}
}

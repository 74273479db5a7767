package subject

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"presetdeck/internal/application"
	"presetdeck/internal/domain"
	"presetdeck/internal/ports"
)

// Roster creates actors and attaches them to a cycler
type Roster struct {
	cycler ports.Cycler
	store  ports.SelectionStore
	logger *slog.Logger

	mu     sync.Mutex
	actors map[string]*Actor
}

// NewRoster creates a roster for cycler. store may be nil, in which case
// selections only live in memory.
func NewRoster(cycler ports.Cycler, store ports.SelectionStore, logger *slog.Logger) *Roster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Roster{
		cycler: cycler,
		store:  store,
		logger: logger,
		actors: make(map[string]*Actor),
	}
}

// Spawn creates an actor with a fresh ID, starting at item
func (r *Roster) Spawn(ctx context.Context, label string, item domain.Item) (*Actor, error) {
	id := uuid.NewString()
	if strings.TrimSpace(label) == "" {
		label = "actor-" + id[:8]
	}
	return r.attach(ctx, NewActor(id, label, item, r.store), true)
}

// Restore attaches the actor with the given ID, starting from its persisted
// selection when there is one and from fallback otherwise.
func (r *Roster) Restore(ctx context.Context, id string, fallback domain.Item) (*Actor, error) {
	if err := application.ValidateRequired("subjectID", id); err != nil {
		return nil, err
	}
	if a, ok := r.Get(id); ok {
		return a, nil
	}

	item := fallback
	persist := true
	if r.store != nil {
		saved, ok, err := r.store.LoadSelection(ctx, id)
		if err != nil {
			return nil, err
		}
		if ok {
			item = saved
			persist = false
		}
	}
	return r.attach(ctx, NewActor(id, id, item, r.store), persist)
}

// RestoreAll attaches every actor with a persisted selection
func (r *Roster) RestoreAll(ctx context.Context) error {
	if r.store == nil {
		return nil
	}
	saved, err := r.store.ListSelections(ctx)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(saved))
	for id := range saved {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		if _, ok := r.Get(id); ok {
			continue
		}
		if _, err := r.attach(ctx, NewActor(id, id, saved[id], r.store), false); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the actor with the given ID
func (r *Roster) Get(id string) (*Actor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.actors[id]
	return a, ok
}

// Actors returns all actors sorted by ID
func (r *Roster) Actors() []*Actor {
	r.mu.Lock()
	defer r.mu.Unlock()

	actors := make([]*Actor, 0, len(r.actors))
	for _, a := range r.actors {
		actors = append(actors, a)
	}
	slices.SortFunc(actors, func(x, y *Actor) int {
		return strings.Compare(x.id, y.id)
	})
	return actors
}

// Detach removes an actor from the cycler. With forget set its persisted
// selection is deleted as well.
func (r *Roster) Detach(ctx context.Context, id string, forget bool) error {
	r.mu.Lock()
	_, ok := r.actors[id]
	delete(r.actors, id)
	r.mu.Unlock()

	r.cycler.Detach(id)
	if ok {
		r.logger.Debug("actor detached", "subject", id)
	}
	if forget && r.store != nil {
		return r.store.DeleteSelection(ctx, id)
	}
	return nil
}

// Close detaches every actor, keeping persisted selections
func (r *Roster) Close() {
	for _, a := range r.Actors() {
		_ = r.Detach(context.Background(), a.id, false)
	}
}

func (r *Roster) attach(ctx context.Context, a *Actor, persist bool) (*Actor, error) {
	if persist && r.store != nil && !a.CurrentItem().IsZero() {
		if err := r.store.SaveSelection(ctx, a.id, a.CurrentItem()); err != nil {
			return nil, fmt.Errorf("persist selection: %w", err)
		}
	}
	if err := r.cycler.Attach(a); err != nil {
		return nil, fmt.Errorf("attach %s: %w", a.id, err)
	}

	r.mu.Lock()
	r.actors[a.id] = a
	r.mu.Unlock()

	r.logger.Debug("actor attached", "subject", a.id, "label", a.label, "item", a.CurrentItem().ID)
	return a, nil
}

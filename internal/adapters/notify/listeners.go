// Package notify implements the listener registries behind catalog and
// subject events.
package notify

import (
	"slices"
	"sync"

	"presetdeck/internal/ports"
)

// Listeners is a set of callbacks receiving values of type T.
// The zero value is ready to use and safe for concurrent use.
type Listeners[T any] struct {
	mu     sync.Mutex
	nextID int
	fns    map[int]func(T)
}

// Add registers fn and returns the hook that removes it again
func (l *Listeners[T]) Add(fn func(T)) ports.Unsubscribe {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fns == nil {
		l.fns = make(map[int]func(T))
	}
	id := l.nextID
	l.nextID++
	l.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.fns, id)
			l.mu.Unlock()
		})
	}
}

// Emit calls every registered listener in registration order.
// Listeners run on the caller's goroutine, outside the registry lock, so
// they may register or remove listeners themselves.
func (l *Listeners[T]) Emit(v T) {
	for _, fn := range l.snapshot() {
		fn(v)
	}
}

// Len returns the number of registered listeners
func (l *Listeners[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.fns)
}

// Clear removes every listener
func (l *Listeners[T]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fns = nil
}

func (l *Listeners[T]) snapshot() []func(T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make([]int, 0, len(l.fns))
	for id := range l.fns {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	fns := make([]func(T), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, l.fns[id])
	}
	return fns
}

// Signal adapts a func() listener to a Listeners[struct{}] registry
func Signal(fn func()) func(struct{}) {
	return func(struct{}) { fn() }
}

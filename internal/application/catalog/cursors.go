package catalog

import (
	"slices"

	"presetdeck/internal/domain"
	"presetdeck/internal/ports"
)

type attachment struct {
	subject     ports.Subject
	cursor      domain.Cursor
	unsubscribe ports.Unsubscribe
}

// CursorTable holds one cursor per attached subject.
// It is not safe for concurrent use; Engine serializes access.
type CursorTable struct {
	entries map[string]*attachment
}

// NewCursorTable creates an empty table
func NewCursorTable() *CursorTable {
	return &CursorTable{entries: make(map[string]*attachment)}
}

// Put stores a cursor for subject, replacing (and unsubscribing) any
// previous attachment with the same ID.
func (t *CursorTable) Put(subject ports.Subject, cursor domain.Cursor, unsubscribe ports.Unsubscribe) {
	id := subject.ID()
	t.Remove(id)
	t.entries[id] = &attachment{
		subject:     subject,
		cursor:      cursor,
		unsubscribe: unsubscribe,
	}
}

// Remove detaches a subject. It reports whether the subject was attached.
func (t *CursorTable) Remove(id string) bool {
	a, ok := t.entries[id]
	if !ok {
		return false
	}
	delete(t.entries, id)
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	return true
}

// Get returns the cursor of an attached subject
func (t *CursorTable) Get(id string) (domain.Cursor, bool) {
	a, ok := t.entries[id]
	if !ok {
		return domain.Cursor{}, false
	}
	return a.cursor, true
}

// Set overwrites the cursor of an attached subject. Unknown IDs are ignored.
func (t *CursorTable) Set(id string, cursor domain.Cursor) {
	if a, ok := t.entries[id]; ok {
		a.cursor = cursor
	}
}

// Subject returns the subject attached under id
func (t *CursorTable) Subject(id string) (ports.Subject, bool) {
	a, ok := t.entries[id]
	if !ok {
		return nil, false
	}
	return a.subject, true
}

// IDs returns a sorted snapshot of the attached subject IDs
func (t *CursorTable) IDs() []string {
	ids := make([]string, 0, len(t.entries))
	for id := range t.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of attached subjects
func (t *CursorTable) Len() int {
	return len(t.entries)
}

// Clear detaches every subject
func (t *CursorTable) Clear() {
	for _, id := range t.IDs() {
		t.Remove(id)
	}
}

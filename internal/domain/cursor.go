package domain

import "fmt"

// Direction is the step taken by a cycle request
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "next"
	case Backward:
		return "previous"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Valid reports whether d is one of Forward or Backward
func (d Direction) Valid() bool {
	return d == Forward || d == Backward
}

// ParseDirection parses "next"/"prev" style arguments
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "next", "forward", "+1":
		return Forward, nil
	case "prev", "previous", "back", "backward", "-1":
		return Backward, nil
	default:
		return 0, fmt.Errorf("unknown direction: %q", s)
	}
}

// Cursor is a subject's position within a catalog.
//
// CategoryIndex and ItemIndex point into the cached, sorted lists of the
// source that Current belongs to. After a structural change they are
// re-derived from Current's identity; when Current's category disappears
// both indices fall back to 0 while Current is kept as-is.
type Cursor struct {
	Current       Item
	CategoryIndex int
	ItemIndex     int
}

// Source returns the catalog governing this cursor
func (c Cursor) Source() SourceTag {
	return c.Current.Source
}

// Wrap maps any integer onto [0, n). n must be positive.
func Wrap(index, n int) int {
	return ((index % n) + n) % n
}

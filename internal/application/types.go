package application

import "presetdeck/internal/domain"

// Re-export source tags for use by adapters
type SourceTag = domain.SourceTag

const (
	SourceBuiltin = domain.SourceBuiltin
	SourceUser    = domain.SourceUser
)

// Re-export domain types for use by adapters
type (
	Item            = domain.Item
	Cursor          = domain.Cursor
	Direction       = domain.Direction
	CategorySummary = domain.CategorySummary
)

// ParseSourceTag parses the string form of a source tag
func ParseSourceTag(s string) (SourceTag, error) {
	return domain.ParseSourceTag(s)
}

// ParseDirection parses "next"/"prev" style arguments
func ParseDirection(s string) (Direction, error) {
	return domain.ParseDirection(s)
}

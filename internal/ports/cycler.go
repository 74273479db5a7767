package ports

import "presetdeck/internal/domain"

// Cycler is the cursor-and-cache core consumed by the host surfaces
// (TUI, CLI, MCP). catalog.Engine is the implementation.
type Cycler interface {
	Attach(subject Subject) error
	Detach(subjectID string)
	Cursor(subjectID string) (domain.Cursor, error)
	Subjects() []string

	CycleNext(subjectID string) error
	CyclePrevious(subjectID string) error
	CycleAllNext() error
	CycleAllPrevious() error
	Resync(subjectID string) error

	Busy(tag domain.SourceTag) bool
	Categories(tag domain.SourceTag) ([]string, error)
	Items(tag domain.SourceTag, category string) ([]domain.Item, error)
	Summaries(tag domain.SourceTag) ([]domain.CategorySummary, error)
}

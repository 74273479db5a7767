package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Source colors
	SourceBuiltin = lipgloss.Color("#6366F1") // Indigo
	SourceUser    = lipgloss.Color("#F97316") // Orange

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	SectionTitle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// Subject list
	SubjectLabel = lipgloss.NewStyle().
			Bold(true)

	SubjectSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	// Catalog tree
	Category = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60A5FA")) // Blue

	CategoryEmpty = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	Item = lipgloss.NewStyle()

	ItemCurrent = lipgloss.NewStyle().
			Foreground(Black).
			Background(Warning).
			Bold(true)

	TreeExpanded  = "▼ "
	TreeCollapsed = "▶ "
	TreeLeaf      = "  "

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	StatusText = lipgloss.NewStyle().
			Foreground(Muted)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Spinner = lipgloss.NewStyle().
		Foreground(Primary)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// SourceColor returns the accent color for a catalog source
func SourceColor(source string) lipgloss.Color {
	switch source {
	case "builtin":
		return SourceBuiltin
	case "user":
		return SourceUser
	default:
		return Primary
	}
}

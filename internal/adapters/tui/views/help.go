package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"presetdeck/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToDeckMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("presetdeck help"))
	b.WriteString("\n\n")

	b.WriteString(styles.SectionTitle.Render("Subjects"))
	b.WriteString("\n")
	for _, binding := range []key.Binding{DeckKeys.Up, DeckKeys.Down, DeckKeys.Spawn, DeckKeys.Detach, DeckKeys.Yank} {
		b.WriteString(helpLine(binding))
	}
	b.WriteString("\n")

	b.WriteString(styles.SectionTitle.Render("Cycling"))
	b.WriteString("\n")
	for _, binding := range []key.Binding{DeckKeys.Next, DeckKeys.Prev, DeckKeys.NextAll, DeckKeys.PrevAll, DeckKeys.Source} {
		b.WriteString(helpLine(binding))
	}
	b.WriteString("\n")

	b.WriteString(styles.SectionTitle.Render("User catalog"))
	b.WriteString("\n")
	b.WriteString(helpLine(DeckKeys.Add))
	b.WriteString(helpLine(DeckKeys.Refresh))
	b.WriteString("\n")

	b.WriteString(styles.SectionTitle.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine(DeckKeys.Help))
	b.WriteString(helpLine(DeckKeys.Quit))
	b.WriteString("\n")

	b.WriteString(styles.MutedText.Render("Empty categories are skipped. Cycling wraps around the whole catalog."))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(binding key.Binding) string {
	h := binding.Help()
	return "  " + styles.HelpKey.Render(padRight(h.Key, 16)) + styles.HelpDesc.Render(h.Desc) + "\n"
}

func padRight(s string, length int) string {
	if n := len([]rune(s)); n < length {
		return s + strings.Repeat(" ", length-n)
	}
	return s
}

package views

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"presetdeck/internal/adapters/subject"
	"presetdeck/internal/adapters/tui/styles"
	"presetdeck/internal/application"
	"presetdeck/internal/application/commands"
	"presetdeck/internal/domain"
	"presetdeck/internal/ports"
)

// DeckKeyMap defines key bindings for the deck view
type DeckKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Next    key.Binding
	Prev    key.Binding
	NextAll key.Binding
	PrevAll key.Binding
	Source  key.Binding
	Spawn   key.Binding
	Detach  key.Binding
	Add     key.Binding
	Refresh key.Binding
	Yank    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var DeckKeys = DeckKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "previous subject"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "next subject"),
	),
	Next: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next preset"),
	),
	Prev: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "previous preset"),
	),
	NextAll: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "next preset, all subjects"),
	),
	PrevAll: key.NewBinding(
		key.WithKeys("H"),
		key.WithHelp("H", "previous preset, all subjects"),
	),
	Source: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch catalog"),
	),
	Spawn: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "spawn subject"),
	),
	Detach: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "detach and forget subject"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add preset"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload user catalog"),
	),
	Yank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy preset ID"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// DeckModel shows the attached subjects and steps them through the catalogs
type DeckModel struct {
	ViewState
	cycler ports.Cycler
	user   ports.UserCatalog
	roster *subject.Roster

	selectedID string
	spinner    spinner.Model

	// copy writes to the system clipboard
	copy func(string) error
}

// NewDeckModel creates the deck view
func NewDeckModel(cycler ports.Cycler, user ports.UserCatalog, roster *subject.Roster) *DeckModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	m := &DeckModel{
		cycler:  cycler,
		user:    user,
		roster:  roster,
		spinner: s,
		copy:    clipboard.WriteAll,
	}
	if actors := roster.Actors(); len(actors) > 0 {
		m.selectedID = actors[0].ID()
	}
	return m
}

// Init starts the spinner when a catalog is still loading
func (m *DeckModel) Init() tea.Cmd {
	if m.anyBusy() {
		return m.spinner.Tick
	}
	return nil
}

// Update handles messages for the deck view
func (m *DeckModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.anyBusy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case CatalogChangedMsg:
		if m.anyBusy() {
			return m, m.spinner.Tick
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *DeckModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.ClearMessage()
	ctx := context.Background()

	switch {
	case key.Matches(msg, DeckKeys.Quit):
		return tea.Quit
	case key.Matches(msg, DeckKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }
	case key.Matches(msg, DeckKeys.Add):
		return func() tea.Msg { return SwitchToAddMsg{} }

	case key.Matches(msg, DeckKeys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, DeckKeys.Down):
		m.moveSelection(1)

	case key.Matches(msg, DeckKeys.Next):
		m.cycle(commands.NewCycleCommand(m.cycler, m.Selected(), domain.Forward))
	case key.Matches(msg, DeckKeys.Prev):
		m.cycle(commands.NewCycleCommand(m.cycler, m.Selected(), domain.Backward))
	case key.Matches(msg, DeckKeys.NextAll):
		m.cycle(commands.NewCycleAllCommand(m.cycler, domain.Forward))
	case key.Matches(msg, DeckKeys.PrevAll):
		m.cycle(commands.NewCycleAllCommand(m.cycler, domain.Backward))

	case key.Matches(msg, DeckKeys.Source):
		m.switchSource(ctx)

	case key.Matches(msg, DeckKeys.Spawn):
		m.spawn(ctx)
	case key.Matches(msg, DeckKeys.Detach):
		m.detach(ctx)

	case key.Matches(msg, DeckKeys.Refresh):
		if err := commands.NewRefreshCommand(m.user).Execute(ctx); err != nil {
			m.SetMessage(err.Error(), true)
		} else {
			m.SetMessage("User catalog reloaded", false)
		}

	case key.Matches(msg, DeckKeys.Yank):
		m.yank()
	}

	if m.anyBusy() {
		return m.spinner.Tick
	}
	return nil
}

// Selected returns the ID of the highlighted subject, or "" when there is none
func (m *DeckModel) Selected() string {
	if _, ok := m.roster.Get(m.selectedID); !ok {
		m.selectedID = ""
		if actors := m.roster.Actors(); len(actors) > 0 {
			m.selectedID = actors[0].ID()
		}
	}
	return m.selectedID
}

// SelectedCategory returns the category of the highlighted subject's preset
func (m *DeckModel) SelectedCategory() string {
	if cursor, err := m.cycler.Cursor(m.Selected()); err == nil {
		return cursor.Current.Category
	}
	return ""
}

func (m *DeckModel) moveSelection(delta int) {
	actors := m.roster.Actors()
	if len(actors) == 0 {
		return
	}
	current := slices.IndexFunc(actors, func(a *subject.Actor) bool { return a.ID() == m.Selected() })
	m.selectedID = actors[domain.Wrap(current+delta, len(actors))].ID()
}

func (m *DeckModel) cycle(cmd *commands.CycleCommand) {
	if cmd.SubjectID == "" && !cmd.All {
		m.SetMessage("No subject selected, press s to spawn one", true)
		return
	}
	if _, err := cmd.Execute(context.Background()); err != nil {
		m.SetMessage(err.Error(), true)
	}
}

// switchSource points the selected subject at the first preset of the other
// catalog.
func (m *DeckModel) switchSource(ctx context.Context) {
	a, ok := m.roster.Get(m.Selected())
	if !ok {
		m.SetMessage("No subject selected", true)
		return
	}

	target := domain.SourceUser
	if a.CurrentItem().Source == domain.SourceUser {
		target = domain.SourceBuiltin
	}

	item, err := m.firstItem(target)
	if err != nil {
		m.SetMessage(err.Error(), true)
		return
	}
	if _, err := commands.NewSelectItemCommand(m.cycler, a, item).Execute(ctx); err != nil {
		m.SetMessage(err.Error(), true)
		return
	}
	m.SetMessage("Switched to "+target.String()+" catalog", false)
}

func (m *DeckModel) firstItem(tag domain.SourceTag) (domain.Item, error) {
	tree, err := commands.NewBuildTreeCommand(m.cycler, tag).Execute(context.Background())
	if err != nil {
		return domain.Item{}, err
	}
	for _, category := range tree {
		if len(category.Items) > 0 {
			return category.Items[0], nil
		}
	}
	return domain.Item{}, fmt.Errorf("%s catalog has no presets: %w", tag, application.ErrNotFound)
}

func (m *DeckModel) spawn(ctx context.Context) {
	a, err := m.roster.Spawn(ctx, "", domain.Item{})
	if err != nil {
		m.SetMessage(err.Error(), true)
		return
	}
	m.selectedID = a.ID()
	m.SetMessage("Spawned "+a.Label(), false)
}

func (m *DeckModel) detach(ctx context.Context) {
	id := m.Selected()
	if id == "" {
		return
	}
	if err := m.roster.Detach(ctx, id, true); err != nil {
		m.SetMessage(err.Error(), true)
		return
	}
	m.selectedID = ""
	m.SetMessage("Detached subject", false)
}

func (m *DeckModel) yank() {
	cursor, err := m.cycler.Cursor(m.Selected())
	if err != nil {
		m.SetMessage(err.Error(), true)
		return
	}
	if cursor.Current.IsZero() {
		m.SetMessage("Subject has no preset yet", true)
		return
	}
	if err := m.copy(cursor.Current.ID); err != nil {
		m.SetMessage("Copy failed: "+err.Error(), true)
		return
	}
	m.SetMessage("Copied "+cursor.Current.ID, false)
}

func (m *DeckModel) anyBusy() bool {
	return slices.ContainsFunc(domain.Sources, m.cycler.Busy)
}

// View renders the deck view
func (m *DeckModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("presetdeck"))
	b.WriteString("\n")

	b.WriteString(styles.SectionTitle.Render("Subjects"))
	b.WriteString("\n")
	b.WriteString(m.renderSubjects())
	b.WriteString("\n")

	if cursor, err := m.cycler.Cursor(m.Selected()); err == nil {
		b.WriteString(m.renderCatalog(cursor))
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus())
	return styles.App.Render(b.String())
}

func (m *DeckModel) renderSubjects() string {
	actors := m.roster.Actors()
	if len(actors) == 0 {
		return styles.MutedText.Render("  No subjects. Press s to spawn one.") + "\n"
	}

	var b strings.Builder
	for _, a := range actors {
		line := fmt.Sprintf("%-16s %s", a.Label(), a.CurrentItem())
		if cursor, err := m.cycler.Cursor(a.ID()); err == nil {
			line += fmt.Sprintf("  [%d:%d]", cursor.CategoryIndex, cursor.ItemIndex)
		}
		if a.ID() == m.Selected() {
			b.WriteString(styles.SubjectSelected.Render("▶ " + line))
		} else {
			b.WriteString(styles.SubjectLabel.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderCatalog lists the categories of the cursor's source, expanding the
// one that holds the current preset.
func (m *DeckModel) renderCatalog(cursor domain.Cursor) string {
	source := cursor.Source()
	header := lipgloss.NewStyle().Foreground(styles.SourceColor(source.String())).Bold(true)

	var b strings.Builder
	b.WriteString(header.Render(source.String() + " catalog"))
	b.WriteString("\n")

	summaries, err := m.cycler.Summaries(source)
	if errors.Is(err, application.ErrSourceBusy) {
		b.WriteString("  " + m.spinner.View() + styles.MutedText.Render(" loading..."))
		b.WriteString("\n")
		return b.String()
	}
	if err != nil {
		b.WriteString(styles.ErrorMsg.Render("  " + err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	for i, summary := range summaries {
		expanded := i == cursor.CategoryIndex && summary.Name == cursor.Current.Category
		switch {
		case summary.IsEmpty():
			b.WriteString(styles.TreeLeaf + styles.CategoryEmpty.Render(summary.Name+" (empty)"))
		case expanded:
			b.WriteString(styles.TreeExpanded + styles.Category.Render(fmt.Sprintf("%s (%d)", summary.Name, summary.Count)))
		default:
			b.WriteString(styles.TreeCollapsed + styles.Category.Render(fmt.Sprintf("%s (%d)", summary.Name, summary.Count)))
		}
		b.WriteString("\n")

		if !expanded {
			continue
		}
		items, err := m.cycler.Items(source, summary.Name)
		if err != nil {
			continue
		}
		for _, item := range items {
			b.WriteString("    ")
			if item.SameAs(cursor.Current) {
				b.WriteString(styles.ItemCurrent.Render(item.Name))
			} else {
				b.WriteString(styles.Item.Render(item.Name))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *DeckModel) renderStatus() string {
	if m.Message != "" {
		if m.MessageErr {
			return styles.ErrorMsg.Render(m.Message)
		}
		return styles.Success.Render(m.Message)
	}

	hints := []key.Binding{DeckKeys.Next, DeckKeys.Prev, DeckKeys.Source, DeckKeys.Spawn, DeckKeys.Add, DeckKeys.Help, DeckKeys.Quit}
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = styles.HelpKey.Render(h.Help().Key) + " " + styles.HelpDesc.Render(h.Help().Desc)
	}
	return styles.StatusText.Render(strings.Join(parts, "  "))
}

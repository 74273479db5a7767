package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"presetdeck/internal/adapters/tui/styles"
	"presetdeck/internal/application/commands"
	"presetdeck/internal/ports"
)

const (
	fieldCategory = iota
	fieldName
)

// AddModel is the form that stores a new preset in the user catalog
type AddModel struct {
	ViewState
	user ports.UserCatalog
	form *InputForm
}

// NewAddModel creates the add-preset form
func NewAddModel(user ports.UserCatalog) *AddModel {
	return &AddModel{
		user: user,
		form: NewInputForm(
			NewInputField("Category", "e.g. Idle", 64),
			NewInputField("Name", "e.g. Slow Breathe", 64),
		),
	}
}

// Init resets the form and starts the cursor blinking
func (m *AddModel) Init() tea.Cmd {
	m.form.Reset()
	m.ClearMessage()
	return m.form.Init()
}

// SetCategory pre-fills the category field
func (m *AddModel) SetCategory(category string) {
	m.form.Fields[fieldCategory].Input.SetValue(category)
	if category != "" {
		m.form.focus(fieldName)
	}
}

// Update handles messages for the add form
func (m *AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, InputFormKeys.Cancel):
			return m, func() tea.Msg { return SwitchToDeckMsg{} }
		case key.Matches(msg, InputFormKeys.Submit):
			return m, m.submit()
		}
	}

	return m, m.form.Update(msg)
}

func (m *AddModel) submit() tea.Cmd {
	values := m.form.Values()
	cmd := commands.NewAddItemCommand(m.user, values[fieldCategory], values[fieldName])
	if err := cmd.Validate(); err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}
	return func() tea.Msg {
		item, err := cmd.Execute(context.Background())
		if err != nil {
			return AddErrMsg{Err: err}
		}
		return PresetAddedMsg{Item: item}
	}
}

// View renders the add form
func (m *AddModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Add preset"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("New categories are created on first use"))
	b.WriteString("\n\n")
	b.WriteString(m.form.View("add"))

	if m.Message != "" {
		b.WriteString("\n\n")
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
	}

	return styles.App.Render(b.String())
}

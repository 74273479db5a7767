package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"presetdeck/internal/adapters/tui/styles"
)

// InputFormKeyMap defines key bindings for input forms
type InputFormKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Next   key.Binding
	Prev   key.Binding
}

var InputFormKeys = InputFormKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "previous field"),
	),
}

// InputField is a labelled text input
type InputField struct {
	Label string
	Input textinput.Model
}

// NewInputField creates an input field with a placeholder and character limit
func NewInputField(label, placeholder string, charLimit int) InputField {
	input := textinput.New()
	input.Placeholder = placeholder
	if charLimit > 0 {
		input.CharLimit = charLimit
	}
	return InputField{Label: label, Input: input}
}

// InputForm is a vertical stack of input fields with one focused at a time
type InputForm struct {
	Fields  []InputField
	focused int
}

// NewInputForm creates a form focused on its first field
func NewInputForm(fields ...InputField) *InputForm {
	f := &InputForm{Fields: fields}
	f.focus(0)
	return f
}

// Init returns the blink command for the focused input
func (f *InputForm) Init() tea.Cmd {
	return textinput.Blink
}

// Update moves focus on navigation keys and forwards everything else to
// the focused input.
func (f *InputForm) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, InputFormKeys.Next):
			f.focus(f.focused + 1)
			return nil
		case key.Matches(msg, InputFormKeys.Prev):
			f.focus(f.focused - 1)
			return nil
		}
	}

	if len(f.Fields) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.Fields[f.focused].Input, cmd = f.Fields[f.focused].Input.Update(msg)
	return cmd
}

// Focused returns the index of the focused field
func (f *InputForm) Focused() int {
	return f.focused
}

func (f *InputForm) focus(index int) {
	if len(f.Fields) == 0 {
		return
	}
	f.Fields[f.focused].Input.Blur()
	f.focused = ((index % len(f.Fields)) + len(f.Fields)) % len(f.Fields)
	f.Fields[f.focused].Input.Focus()
}

// Values returns the trimmed value of every field, in order
func (f *InputForm) Values() []string {
	values := make([]string, len(f.Fields))
	for i := range f.Fields {
		values[i] = strings.TrimSpace(f.Fields[i].Input.Value())
	}
	return values
}

// Reset clears every field and focuses the first one
func (f *InputForm) Reset() {
	for i := range f.Fields {
		f.Fields[i].Input.Reset()
	}
	f.focus(0)
}

// View renders every field followed by the key hints
func (f *InputForm) View(submitText string) string {
	var b strings.Builder
	for i, field := range f.Fields {
		b.WriteString(styles.InputLabel.Render(field.Label))
		b.WriteString("\n")
		style := styles.InputField
		if i == f.focused {
			style = styles.InputFocused
		}
		b.WriteString(style.Render(field.Input.View()))
		b.WriteString("\n\n")
	}

	hints := []string{
		styles.HelpKey.Render("tab") + " " + styles.HelpDesc.Render("next field"),
		styles.HelpKey.Render("enter") + " " + styles.HelpDesc.Render(submitText),
		styles.HelpKey.Render("esc") + " " + styles.HelpDesc.Render("cancel"),
	}
	b.WriteString(strings.Join(hints, "  "))
	return b.String()
}

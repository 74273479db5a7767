package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"presetdeck/internal/adapters/subject"
	"presetdeck/internal/adapters/tui/views"
	"presetdeck/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewDeck ViewState = iota
	ViewAdd
	ViewHelp
)

// App is the main TUI application model
type App struct {
	state ViewState
	deck  *views.DeckModel
	add   *views.AddModel
	help  *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(cycler ports.Cycler, user ports.UserCatalog, roster *subject.Roster) *App {
	return &App{
		state: ViewDeck,
		deck:  views.NewDeckModel(cycler, user, roster),
		add:   views.NewAddModel(user),
		help:  views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.deck.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.deck.SetSize(msg.Width, msg.Height)
		a.add.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case views.SwitchToAddMsg:
		a.state = ViewAdd
		cmd := a.add.Init()
		a.add.SetCategory(a.deck.SelectedCategory())
		return a, cmd

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToDeckMsg:
		a.state = ViewDeck
		return a, nil

	case views.PresetAddedMsg:
		a.state = ViewDeck
		a.deck.SetMessage("Added "+msg.Item.String(), false)
		return a, nil

	case views.AddErrMsg:
		a.add.SetMessage(msg.Err.Error(), true)
		return a, nil

	case views.CatalogChangedMsg, spinner.TickMsg:
		// the deck owns the loading spinner whichever view is shown
		_, cmd := a.deck.Update(msg)
		return a, cmd
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewDeck:
		_, cmd = a.deck.Update(msg)
	case ViewAdd:
		_, cmd = a.add.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewAdd:
		return a.add.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.deck.View()
	}
}

package views

import "presetdeck/internal/domain"

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// View switching messages
type (
	SwitchToDeckMsg struct{}
	SwitchToAddMsg  struct{}
	SwitchToHelpMsg struct{}
)

// CatalogChangedMsg is sent when a catalog finished loading or changed
// underneath the deck view.
type CatalogChangedMsg struct{}

// PresetAddedMsg is sent when the add form stored a new preset
type PresetAddedMsg struct {
	Item domain.Item
}

// AddErrMsg is sent when the add form failed to store a preset
type AddErrMsg struct {
	Err error
}

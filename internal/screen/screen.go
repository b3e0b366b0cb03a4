package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abonetti/vetprep/internal/ui/layout"
)

// Screen is the interface every application screen implements.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen plus a command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider lets a screen supply its own footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscHandler lets a screen consume an escape press instead of navigating
// back. HandleEsc returns true when the press was consumed.
type EscHandler interface {
	HandleEsc() bool
}

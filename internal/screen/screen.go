package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vocabiz/internal/ui/layout"
)

// Screen is one page of the TUI. The router owns the stack of screens and
// draws the header and footer around View.
type Screen interface {
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area only.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeHandler lets a screen consume Esc instead of the router popping it.
type EscapeHandler interface {
	// HandlesEscape reports whether Esc should be forwarded to the screen.
	HandlesEscape() bool
}

// Focuser is notified when the screen becomes active again after the
// screen above it was popped.
type Focuser interface {
	Focus() tea.Cmd
}

package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hanzidrill/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for a short status shown on the
// right of the header, such as the running score.
type StatusProvider interface {
	Status() string
}

// Leaver is an optional interface for screens that need to flush state when
// they are popped or replaced.
type Leaver interface {
	Leave() tea.Cmd
}

// Capturer is an optional interface for screens that are editing text.
// While Capturing reports true the app forwards Esc to the screen instead
// of navigating back.
type Capturer interface {
	Capturing() bool
}

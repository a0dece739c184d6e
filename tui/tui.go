// Package tui provides the terminal playback control surface.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kinocast-cli/kinocast/playback"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	Controller *playback.Controller
	Surface    *Surface
	Source     playback.Source

	// PlayerExited is closed when the player dies for good; it must survive
	// the process relaunches a session recreation performs.
	PlayerExited <-chan struct{}
}

// Run initializes and executes the primary Bubble Tea control loop. It blocks
// until the user quits or the external player exits.
func Run(options *Options) error {
	bubble := newBubble(options)

	program := tea.NewProgram(bubble, tea.WithAltScreen())
	options.Surface.Attach(program)

	_, err := program.Run()
	return err
}

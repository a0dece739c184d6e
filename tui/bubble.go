// Package tui provides the terminal playback control surface.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/mo"

	"github.com/kinocast-cli/kinocast/playback"
	"github.com/kinocast-cli/kinocast/util"
)

// statefulBubble encapsulates the control-surface state: the latest published
// status projection plus the component models rendering it.
type statefulBubble struct {
	keymap *statefulKeymap

	// components
	spinnerC  spinner.Model
	progressC progress.Model
	helpC     help.Model

	status         playback.StatusProjection
	statusReceived bool
	preview        mo.Option[playback.SeekPreview]
	subtitleActive bool

	width, height int

	options *Options
}

// resize propagates terminal dimension changes to the child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y

	b.progressC.Width = util.Min(b.width, 64)
	b.helpC.Width = b.width
}

// newBubble performs a complete initialization of the control-surface model.
func newBubble(options *Options) *statefulBubble {
	bubble := statefulBubble{
		keymap:  newStatefulKeymap(),
		options: options,
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.progressC = progress.New(progress.WithDefaultGradient())
	bubble.progressC.ShowPercentage = false

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return &bubble
}

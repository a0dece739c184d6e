// Package tui provides the terminal playback control surface.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// statefulKeymap defines the keyboard interactions of the playback surface.
type statefulKeymap struct {
	playPause,
	stepBack, stepForward,
	commitSeek, discardSeek,
	seekBack, seekForward,
	volumeUp, volumeDown,
	subtitles,
	fullscreen,
	quit, forceQuit key.Binding
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		playPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause/resume"),
		),
		stepBack: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "step back"),
		),
		stepForward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "step forward"),
		),
		commitSeek: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "jump"),
		),
		discardSeek: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel jump"),
		),
		seekBack: key.NewBinding(
			key.WithKeys(","),
			key.WithHelp(",", "-5s"),
		),
		seekForward: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "+5s"),
		),
		volumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "volume up"),
		),
		volumeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "volume down"),
		),
		subtitles: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "subtitles"),
		),
		fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fullscreen"),
		),
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.playPause, k.stepBack, k.stepForward, k.commitSeek, k.fullscreen, k.quit,
	}
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.playPause, k.stepBack, k.stepForward, k.commitSeek, k.discardSeek},
		{k.seekBack, k.seekForward, k.volumeUp, k.volumeDown},
		{k.subtitles, k.fullscreen, k.quit, k.forceQuit},
	}
}

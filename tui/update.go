// Package tui provides the terminal playback control surface.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"

	"github.com/kinocast-cli/kinocast/log"
	"github.com/kinocast-cli/kinocast/playback"
)

func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(b.spinnerC.Tick, b.waitForPlayerExit())
}

// waitForPlayerExit turns the session-done channel into a message so closing
// the player window also ends the control surface. The channel stays open
// across recreation relaunches.
func (b *statefulBubble) waitForPlayerExit() tea.Cmd {
	exited := b.options.PlayerExited
	if exited == nil {
		return nil
	}

	return func() tea.Msg {
		<-exited
		return playerGoneMsg{}
	}
}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	controller := b.options.Controller

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil

	case statusMsg:
		b.status = playback.StatusProjection(msg)
		b.statusReceived = true
		return b, nil

	case previewMsg:
		b.preview = mo.Some(playback.SeekPreview(msg))
		return b, nil

	case hidePreviewMsg:
		b.preview = mo.None[playback.SeekPreview]()
		return b, nil

	case badgeMsg:
		b.subtitleActive = bool(msg)
		return b, nil

	case playerGoneMsg:
		return b, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd

	case tea.KeyMsg:
		keymap := b.keymap

		switch {
		case key.Matches(msg, keymap.quit), key.Matches(msg, keymap.forceQuit):
			if err := controller.Close(); err != nil {
				log.Warnf("closing session on quit: %v", err)
			}
			return b, tea.Quit

		case key.Matches(msg, keymap.playPause):
			_ = controller.TogglePause()

		case key.Matches(msg, keymap.stepBack):
			controller.StepSeek(-1)

		case key.Matches(msg, keymap.stepForward):
			controller.StepSeek(+1)

		case key.Matches(msg, keymap.commitSeek):
			controller.CommitSeek()

		case key.Matches(msg, keymap.discardSeek):
			controller.DiscardSeek()

		case key.Matches(msg, keymap.seekBack):
			_ = controller.SeekBy(-5)

		case key.Matches(msg, keymap.seekForward):
			_ = controller.SeekBy(+5)

		case key.Matches(msg, keymap.volumeUp):
			_ = controller.SetVolume(controller.Snapshot().Volume + 5)

		case key.Matches(msg, keymap.volumeDown):
			_ = controller.SetVolume(controller.Snapshot().Volume - 5)

		case key.Matches(msg, keymap.subtitles):
			controller.ToggleSubtitles()

		case key.Matches(msg, keymap.fullscreen):
			// The transition sleeps through settle delays; keep the loop responsive.
			return b, func() tea.Msg {
				controller.ToggleFullscreen()
				return nil
			}
		}
	}

	return b, nil
}

// Package tui provides the terminal playback control surface.
package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kinocast-cli/kinocast/playback"
)

// Messages the playback controller publishes into the Bubble Tea loop.
type (
	statusMsg      playback.StatusProjection
	previewMsg     playback.SeekPreview
	hidePreviewMsg struct{}
	badgeMsg       bool
	playerGoneMsg  struct{}
)

// Surface adapts the asynchronous control-surface callbacks to Bubble Tea
// messages. Callbacks arriving before Attach are dropped; the first status
// poll after attach repopulates everything.
type Surface struct {
	mu      sync.Mutex
	program *tea.Program
}

// NewSurface returns an unattached surface adapter.
func NewSurface() *Surface {
	return &Surface{}
}

// Attach binds the surface to a running program.
func (s *Surface) Attach(program *tea.Program) {
	s.mu.Lock()
	s.program = program
	s.mu.Unlock()
}

func (s *Surface) send(msg tea.Msg) {
	s.mu.Lock()
	program := s.program
	s.mu.Unlock()

	if program != nil {
		program.Send(msg)
	}
}

func (s *Surface) UpdateStatus(projection playback.StatusProjection) {
	s.send(statusMsg(projection))
}

func (s *Surface) ShowSeekPreview(preview playback.SeekPreview) {
	s.send(previewMsg(preview))
}

func (s *Surface) HideSeekPreview() {
	s.send(hidePreviewMsg{})
}

func (s *Surface) SetSubtitleBadge(active bool) {
	s.send(badgeMsg(active))
}

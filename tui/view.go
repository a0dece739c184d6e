// Package tui provides the terminal playback control surface.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"

	"github.com/kinocast-cli/kinocast/color"
	"github.com/kinocast-cli/kinocast/style"
	"github.com/kinocast-cli/kinocast/util"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (b *statefulBubble) View() string {
	title := b.options.Source.Title
	if title == "" {
		title = b.options.Source.MediaURL
	}

	lines := []string{
		style.Title("Now Playing"),
		"",
		wrap.String(style.Fg(color.Purple)(title), util.Max(b.width, 10)),
		"",
	}

	if !b.statusReceived {
		lines = append(lines, b.spinnerC.View()+" waiting for the player...")
	} else {
		lines = append(lines,
			b.progressC.ViewAs(b.status.ProgressPercent/100),
			"",
			b.viewStatusLine(),
		)
	}

	if preview, ok := b.preview.Get(); ok {
		lines = append(lines, "", b.viewFilmstrip(preview.FocusIndex, len(preview.Thumbnails)),
			style.Faint(fmt.Sprintf("jump to %s", preview.TimeLabel)))
	}

	return b.renderLines(lines)
}

// viewStatusLine renders the clock plus the small indicator row.
func (b *statefulBubble) viewStatusLine() string {
	var indicators []string

	if b.status.Paused {
		indicators = append(indicators, style.Fg(color.Yellow)("⏸ paused"))
	} else {
		indicators = append(indicators, style.Fg(color.Green)("▶ playing"))
	}

	indicators = append(indicators, fmt.Sprintf("vol %d%%", b.status.Volume))

	if b.status.HardwareDecode {
		indicators = append(indicators, style.Fg(color.Cyan)("hw"))
	}

	if b.subtitleActive {
		indicators = append(indicators, style.Fg(color.Blue)("cc"))
	}

	return b.status.TimeLabel + "  " + style.Faint(strings.Join(indicators, "  "))
}

// viewFilmstrip renders the trickplay thumbnail strip as cells with the focus
// frame highlighted; thumbnails themselves cannot render in a terminal.
func (b *statefulBubble) viewFilmstrip(focus, count int) string {
	if count == 0 {
		return ""
	}

	cells := make([]string, count)
	for i := range cells {
		if i == focus {
			cells[i] = style.Fg(color.Orange)("▣")
		} else {
			cells[i] = style.Faint("▢")
		}
	}

	return strings.Join(cells, " ")
}

func (b *statefulBubble) renderLines(lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if b.height > h {
		l += strings.Repeat("\n", b.height-h)
	}
	l += b.helpC.View(b.keymap)

	return paddingStyle.Render(l)
}

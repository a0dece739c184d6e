// Package playback implements the delegated playback session controller: session
// lifecycle, live-state polling, fullscreen transition coordination, trickplay
// seeking, and subtitle track resolution on top of the command bridge.
package playback

import "github.com/kinocast-cli/kinocast/bridge"

// Status describes the lifecycle state of a playback session.
type Status int

const (
	Idle Status = iota
	Launching
	Ready
	Recreating
	Closed
)

// String returns the lowercase identifier of the status.
func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Launching:
		return "launching"
	case Ready:
		return "ready"
	case Recreating:
		return "recreating"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Active reports whether the session currently owns the external player process.
func (s Status) Active() bool {
	return s == Launching || s == Ready || s == Recreating
}

// Source identifies the media of one playback session. Immutable for the
// lifetime of a session generation.
type Source struct {
	Title       string
	MediaURL    string
	SubtitleURL string
	ContentPath string
	SourceID    string
}

// Session is the central playback entity, owned exclusively by the Controller.
// Live fields are populated only by the state poller, never by UI code.
type Session struct {
	Generation int64
	Status     Status
	Source     Source

	LivePosition         float64
	LiveDuration         float64
	Paused               bool
	Volume               int
	SubtitleTrackID      int
	HardwareDecodeActive bool
}

// newSession initializes a session at the given generation for the given source.
func newSession(generation int64, src Source) Session {
	return Session{
		Generation:      generation,
		Status:          Launching,
		Source:          src,
		SubtitleTrackID: bridge.NoSubtitleTrack,
	}
}

// Package bridge defines the narrow asynchronous command interface to the delegated
// external player process. The primary implementation targets 'mpv' via its JSON-IPC interface.
package bridge

// NoSubtitleTrack is the sentinel track identifier meaning no subtitle selection.
const NoSubtitleTrack = -1

// LaunchSpec describes a single delegated playback launch.
type LaunchSpec struct {
	Title         string
	MediaURL      string
	SubtitleURL   string
	StartPosition float64
	StartPaused   bool
}

// State is a point-in-time snapshot of the delegated player.
type State struct {
	Position        float64
	Duration        float64
	Paused          bool
	SubtitleTrackID int
	Volume          int
	DecoderName     string
	OSDWidth        float64
}

// SubtitleTrack describes one text track known to the player.
type SubtitleTrack struct {
	ID       int
	Lang     string
	Title    string
	Selected bool
	External bool
}

// Bridge encapsulates the required capabilities of a delegated playback backend.
// All calls are request/response with one command in flight per call; the backend
// offers no cancellation, so callers discard stale results rather than abort.
type Bridge interface {
	// Launch starts a playback session for the given media.
	Launch(spec LaunchSpec) error

	// Close terminates the playback backend and releases all associated system resources.
	Close() error

	// PlayPause sets the playback suspension state.
	PlayPause(pause bool) error

	// Seek transitions the playback position to an absolute timestamp in seconds.
	Seek(seconds float64) error

	// SetVolume sets the playback volume (0-100).
	SetVolume(percent int) error

	// State retrieves a full playback state snapshot.
	State() (State, error)

	// Fullscreen reports whether the backend window is currently fullscreen.
	Fullscreen() (bool, error)

	// SetFullscreen requests the backend window fullscreen state.
	SetFullscreen(enabled bool) error

	// SetSurfaceFullscreen requests the backend's internal video surface fullscreen state,
	// independently of the window itself.
	SetSurfaceFullscreen(enabled bool) error

	// ResizeSurface re-asserts the embedded video surface geometry.
	ResizeSurface() error

	// SubtitleTracks lists the text tracks the backend has discovered so far.
	SubtitleTracks() ([]SubtitleTrack, error)

	// SetSubtitleTrack selects a subtitle track by id; NoSubtitleTrack disables subtitles.
	SetSubtitleTrack(id int) error

	// SetSubtitleStyle applies subtitle rendering preferences.
	SetSubtitleStyle(scale float64, verticalOffset int) error

	// AddExternalSubtitle injects a sidecar subtitle file by URL.
	AddExternalSubtitle(url, title string) error

	// IsRunning validates the liveness of the underlying playback process.
	IsRunning() bool

	// Wait returns a channel that is closed when the playback process terminates.
	Wait() <-chan struct{}
}

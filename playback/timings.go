package playback

import "time"

// Timings collects every interval and delay the playback subsystem uses.
// Most of them are empirically tuned compensation for OS/backend animation timing,
// not protocol requirements; tests override them with short values.
type Timings struct {
	// PollInterval is the fixed state poller tick interval.
	PollInterval time.Duration

	// SubtitleSettleDelay is how long after launch subtitle auto-selection waits.
	// The backend needs time to parse embedded tracks.
	SubtitleSettleDelay time.Duration
	// SubtitleRetryDelay spaces auto-selection retries while the track list is empty.
	SubtitleRetryDelay time.Duration

	// RecreateReadyInterval and RecreateReadyRetries bound the readiness poll after
	// a session recreation, waiting for the backend to report a duration.
	RecreateReadyInterval time.Duration
	RecreateReadyRetries  int

	// FullscreenCooldown rejects toggles arriving too soon after a completed one,
	// absorbing remote-control key repeat.
	FullscreenCooldown time.Duration
	// FullscreenConfirmInterval and FullscreenConfirmTimeout bound the poll that waits
	// for the backend to report the requested fullscreen state.
	FullscreenConfirmInterval time.Duration
	FullscreenConfirmTimeout  time.Duration
	// FullscreenTrailingGuard keeps the transition marked in-progress a little longer
	// to absorb trailing OS animation callbacks.
	FullscreenTrailingGuard time.Duration

	// PreviewRecentWindow is how recent a preview position must be to serve as the
	// baseline of a new trickplay step sequence.
	PreviewRecentWindow time.Duration
	// PreviewHideDelay auto-hides the trickplay overlay once stepping pauses.
	PreviewHideDelay time.Duration
}

// DefaultTimings returns the production timing profile.
func DefaultTimings() Timings {
	return Timings{
		PollInterval:              500 * time.Millisecond,
		SubtitleSettleDelay:       3 * time.Second,
		SubtitleRetryDelay:        2 * time.Second,
		RecreateReadyInterval:     250 * time.Millisecond,
		RecreateReadyRetries:      12,
		FullscreenCooldown:        1800 * time.Millisecond,
		FullscreenConfirmInterval: 80 * time.Millisecond,
		FullscreenConfirmTimeout:  1400 * time.Millisecond,
		FullscreenTrailingGuard:   900 * time.Millisecond,
		PreviewRecentWindow:       1600 * time.Millisecond,
		PreviewHideDelay:          1200 * time.Millisecond,
	}
}

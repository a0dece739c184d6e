package playback

import (
	"runtime"
	"time"

	"github.com/kinocast-cli/kinocast/constant"
)

// QuirkProfile captures platform-specific fullscreen behavior discovered empirically.
// The underlying cause is a rendering bug in a specific decode backend, so the
// profile is data rather than hard-coded branches: a platform can swap in its own.
type QuirkProfile struct {
	Name string

	// AllowSurfaceFullscreen mirrors the window fullscreen state onto the backend's
	// internal video surface. Must stay false on the problematic hardware, where the
	// surface-level transition triggers the rendering bug.
	AllowSurfaceFullscreen bool

	// ConditionalRecreate replaces the unconditional post-transition session recreation
	// with a resize plus an OSD-width mismatch check.
	ConditionalRecreate bool

	// Settle resize schedules after the OS reports the transition done. Entering
	// fullscreen animates longer than leaving it on most compositors.
	EnterSettleDelays []time.Duration
	ExitSettleDelays  []time.Duration

	// OSDMismatchThreshold is the tolerated difference (physical pixels) between the
	// backend-reported OSD width and the actual display width before a recreation is
	// considered necessary.
	OSDMismatchThreshold float64

	// DisplayWidth reports the current display width in physical pixels
	// (window width times device pixel ratio). Nil when not measurable; the
	// mismatch check is then skipped.
	DisplayWidth func() float64
}

// DetectProfile selects the quirk profile for the current platform.
func DetectProfile() QuirkProfile {
	if runtime.GOOS == constant.Linux && runtime.GOARCH == "arm64" {
		return armLinuxProfile()
	}
	return defaultProfile()
}

// defaultProfile recreates the session after every completed transition and lets the
// video surface follow the window.
func defaultProfile() QuirkProfile {
	return QuirkProfile{
		Name:                   "default",
		AllowSurfaceFullscreen: true,
		ConditionalRecreate:    false,
		EnterSettleDelays:      settle(300, 700, 1300),
		ExitSettleDelays:       settle(250, 600),
		OSDMismatchThreshold:   64,
	}
}

// armLinuxProfile compensates for the known sizing defect of the ARM decode backend:
// the surface must not follow the window into fullscreen, and recreation happens only
// when the OSD width proves the backend got the size wrong.
func armLinuxProfile() QuirkProfile {
	return QuirkProfile{
		Name:                   "arm-linux",
		AllowSurfaceFullscreen: false,
		ConditionalRecreate:    true,
		EnterSettleDelays:      settle(200, 500),
		ExitSettleDelays:       settle(150, 400),
		OSDMismatchThreshold:   64,
	}
}

func settle(millis ...int) []time.Duration {
	delays := make([]time.Duration, len(millis))
	for i, ms := range millis {
		delays[i] = time.Duration(ms) * time.Millisecond
	}
	return delays
}

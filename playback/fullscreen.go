package playback

import (
	"math"
	"sync"
	"time"

	"github.com/kinocast-cli/kinocast/log"
)

// FullscreenTransition tracks the state of the current or most recent toggle.
type FullscreenTransition struct {
	InProgress   bool
	LastToggleAt time.Time
	TargetState  bool
}

// FullscreenCoordinator serializes fullscreen toggles, resizes the embedded
// surface around the OS transition, and recreates the session when the platform
// quirk profile calls for it.
type FullscreenCoordinator struct {
	c *Controller

	mu         sync.Mutex
	transition FullscreenTransition
}

func newFullscreenCoordinator(c *Controller) *FullscreenCoordinator {
	return &FullscreenCoordinator{c: c}
}

// Toggle requests a fullscreen transition. Requests arriving while a transition is
// in progress or within the cooldown window of the last one are dropped silently;
// remote controls repeat keys faster than OS compositors animate.
func (f *FullscreenCoordinator) Toggle() {
	timings := f.c.timings

	f.mu.Lock()
	if f.transition.InProgress || time.Since(f.transition.LastToggleAt) < timings.FullscreenCooldown {
		f.mu.Unlock()
		log.Debugf("fullscreen toggle dropped: transition in progress or cooling down")
		return
	}
	f.transition.InProgress = true
	f.transition.LastToggleAt = time.Now()
	f.mu.Unlock()

	defer func() {
		// Hold the guard a little longer: the OS keeps delivering animation
		// callbacks after it reports the transition done.
		time.Sleep(timings.FullscreenTrailingGuard)
		f.mu.Lock()
		f.transition.InProgress = false
		f.transition.LastToggleAt = time.Now()
		f.mu.Unlock()
	}()

	b := f.c.bridge
	quirks := f.c.quirks

	// One pre-resize before the OS-level request reduces the visible jump.
	if err := b.ResizeSurface(); err != nil {
		log.Warnf("fullscreen pre-resize: %v", err)
	}

	current, err := b.Fullscreen()
	if err != nil {
		log.Warnf("fullscreen state read: %v", err)
		return
	}
	target := !current

	f.mu.Lock()
	f.transition.TargetState = target
	f.mu.Unlock()

	if err := b.SetFullscreen(target); err != nil {
		log.Warnf("fullscreen request: %v", err)
		return
	}

	if !f.awaitTargetState(target) {
		// Non-fatal: the UI follows whatever the backend actually reports.
		log.Warnf("fullscreen: backend did not confirm %v within timeout", target)
	}

	// The internal video surface mirrors the window except on the problematic
	// hardware, where the surface-level transition triggers a rendering bug.
	if err := b.SetSurfaceFullscreen(target && quirks.AllowSurfaceFullscreen); err != nil {
		log.Warnf("surface fullscreen: %v", err)
	}

	// Animated OS transitions report done before layout stabilizes; resize again
	// at increasing delays.
	delays := quirks.ExitSettleDelays
	if target {
		delays = quirks.EnterSettleDelays
	}
	for _, delay := range delays {
		time.Sleep(delay)
		if err := b.ResizeSurface(); err != nil {
			log.Warnf("fullscreen settle resize: %v", err)
		}
	}

	if f.c.Status() != Ready {
		return
	}

	if quirks.ConditionalRecreate {
		if err := b.ResizeSurface(); err != nil {
			log.Warnf("fullscreen final resize: %v", err)
		}
		// Recreation is visually disruptive; on this path it happens only when
		// the backend demonstrably got the surface size wrong.
		if !target && f.osdWidthMismatch() {
			f.c.Recreate("fullscreen-exit")
		}
		return
	}

	if target {
		f.c.Recreate("fullscreen-enter")
	} else {
		f.c.Recreate("fullscreen-exit")
	}
}

// awaitTargetState polls the backend until it reports the requested fullscreen
// state or the bounded window elapses.
func (f *FullscreenCoordinator) awaitTargetState(target bool) bool {
	timings := f.c.timings
	deadline := time.Now().Add(timings.FullscreenConfirmTimeout)

	for time.Now().Before(deadline) {
		time.Sleep(timings.FullscreenConfirmInterval)
		if state, err := f.c.bridge.Fullscreen(); err == nil && state == target {
			return true
		}
	}
	return false
}

// osdWidthMismatch compares the backend-reported OSD width against the actual
// display width; only a difference beyond the quirk threshold justifies recreation.
func (f *FullscreenCoordinator) osdWidthMismatch() bool {
	quirks := f.c.quirks
	if quirks.DisplayWidth == nil {
		return false
	}

	state, err := f.c.bridge.State()
	if err != nil {
		log.Warnf("osd width read: %v", err)
		return false
	}

	return math.Abs(state.OSDWidth-quirks.DisplayWidth()) > quirks.OSDMismatchThreshold
}

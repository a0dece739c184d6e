package playback

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func newFullscreenController(b *fakeBridge, quirks QuirkProfile) *Controller {
	return NewController(Options{
		Bridge:      b,
		Surface:     NopSurface{},
		Timings:     testTimings(),
		Quirks:      quirks,
		Preferences: Preferences{Volume: 80, StepSeconds: 10, SubtitleLanguage: "en"},
	})
}

func TestToggle(t *testing.T) {
	Convey("Toggle", t, func() {
		b := newFakeBridge()
		b.state.Duration = 1200
		c := newFullscreenController(b, testQuirks())
		So(c.Launch(testSource()), ShouldBeNil)
		makeReady(c, 10, 1200)

		Convey("Should request the inverse of the current state and recreate the session", func() {
			c.ToggleFullscreen()

			So(b.count("setFullscreen"), ShouldEqual, 1)
			So(b.fullscreen, ShouldBeTrue)
			// The video surface mirrors the window on non-quirky hardware.
			So(b.count("setSurfaceFullscreen"), ShouldEqual, 1)
			So(b.count("launch"), ShouldEqual, 2)
			So(c.Status(), ShouldEqual, Ready)
		})

		Convey("A second toggle within the cooldown window is dropped", func() {
			c.ToggleFullscreen()
			c.ToggleFullscreen()

			So(b.count("setFullscreen"), ShouldEqual, 1)
		})
	})
}

func TestToggleConditionalRecreate(t *testing.T) {
	Convey("Toggle on quirky hardware", t, func() {
		b := newFakeBridge()
		b.state.Duration = 1200

		displayWidth := 1920.0
		quirks := QuirkProfile{
			Name:                 "arm-linux",
			ConditionalRecreate:  true,
			OSDMismatchThreshold: 64,
			DisplayWidth:         func() float64 { return displayWidth },
		}

		c := newFullscreenController(b, quirks)
		So(c.Launch(testSource()), ShouldBeNil)
		makeReady(c, 10, 1200)

		Convey("Entering fullscreen never recreates, regardless of mismatch", func() {
			b.fullscreen = false
			b.state.OSDWidth = 400

			c.ToggleFullscreen()

			So(b.count("launch"), ShouldEqual, 1)
			// The internal surface stays windowed to dodge the rendering bug.
			So(b.count("setSurfaceFullscreen"), ShouldEqual, 1)
		})

		Convey("Exiting recreates only when the OSD width disagrees with the display", func() {
			b.fullscreen = true
			b.state.OSDWidth = 800

			c.ToggleFullscreen()
			So(b.count("launch"), ShouldEqual, 2)
		})

		Convey("Exiting with a matching OSD width skips the recreation", func() {
			b.fullscreen = true
			b.state.OSDWidth = 1900

			c.ToggleFullscreen()
			So(b.count("launch"), ShouldEqual, 1)
		})
	})
}

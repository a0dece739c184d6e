package playback

import (
	"errors"
	"testing"

	"github.com/kinocast-cli/kinocast/catalog"
	. "github.com/smartystreets/goconvey/convey"
)

func testManifest() *catalog.Manifest {
	m := &catalog.Manifest{IntervalSeconds: 10}
	for i := 0; i < 120; i++ {
		m.Items = append(m.Items, catalog.ManifestItem{
			TimeOffset:   float64(i * 10),
			ThumbnailURL: "https://x/thumb",
		})
	}
	return m
}

func TestOnStep(t *testing.T) {
	Convey("OnStep", t, func() {
		b := newFakeBridge()
		cat := &fakeCatalog{manifest: testManifest()}
		surf := &fakeSurface{}
		c := newTestController(b, cat, surf)

		Convey("Should be ignored without a ready session", func() {
			c.StepSeek(+1)
			_, pending := c.trickplay.pending.Get()
			So(pending, ShouldBeFalse)
		})

		Convey("With a ready session at 100s of 1200s", func() {
			So(c.Launch(testSource()), ShouldBeNil)
			makeReady(c, 100, 1200)

			Convey("Steps accumulate against the baseline", func() {
				c.StepSeek(+1)
				c.StepSeek(+1)
				c.StepSeek(-1)

				p, exists := c.trickplay.pending.Get()
				So(exists, ShouldBeTrue)
				So(p.Baseline, ShouldEqual, 100)
				So(p.StepCount, ShouldEqual, 1)
				So(p.PreviewPosition, ShouldEqual, 110)
			})

			Convey("The preview position clamps to the media bounds", func() {
				for i := 0; i < 30; i++ {
					c.StepSeek(-1)
				}
				p, _ := c.trickplay.pending.Get()
				So(p.PreviewPosition, ShouldEqual, 0)
			})

			Convey("Each step publishes a filmstrip preview", func() {
				c.StepSeek(+1)

				So(surf.previews, ShouldNotBeEmpty)
				preview := surf.previews[len(surf.previews)-1]
				So(preview.TimeLabel, ShouldEqual, "01:50 / 20:00")
				So(preview.Thumbnails, ShouldHaveLength, 2*previewRadius+1)
				So(preview.FocusIndex, ShouldEqual, previewRadius)
			})

			Convey("The manifest is fetched once and cached for the process", func() {
				c.StepSeek(+1)
				c.StepSeek(+1)
				So(cat.manifestCalls, ShouldEqual, 1)
			})

			Convey("A missing manifest degrades to a label-only preview", func() {
				cat.manifestErr = errors.New("not found")
				cat.manifest = nil

				c.StepSeek(+1)

				p, exists := c.trickplay.pending.Get()
				So(exists, ShouldBeTrue)
				So(p.PreviewPosition, ShouldEqual, 110)
				preview := surf.previews[len(surf.previews)-1]
				So(preview.Thumbnails, ShouldBeEmpty)
			})
		})
	})
}

func TestCommitAndDiscard(t *testing.T) {
	Convey("Commit and Discard", t, func() {
		b := newFakeBridge()
		surf := &fakeSurface{}
		c := newTestController(b, nil, surf)

		So(c.Launch(testSource()), ShouldBeNil)
		makeReady(c, 100, 1200)

		Convey("Commit issues exactly one backend seek for any number of steps", func() {
			c.StepSeek(+1)
			c.StepSeek(+1)
			c.StepSeek(+1)
			c.CommitSeek()

			So(b.count("seek"), ShouldEqual, 1)
			So(b.lastSeek, ShouldEqual, 130)
			So(c.Snapshot().LivePosition, ShouldEqual, 130)

			_, pending := c.trickplay.pending.Get()
			So(pending, ShouldBeFalse)
		})

		Convey("Commit without a pending seek is a no-op", func() {
			c.CommitSeek()
			So(b.count("seek"), ShouldEqual, 0)
		})

		Convey("Discard clears the pending seek without seeking", func() {
			c.StepSeek(+1)
			c.DiscardSeek()

			So(b.count("seek"), ShouldEqual, 0)
			_, pending := c.trickplay.pending.Get()
			So(pending, ShouldBeFalse)
			So(surf.hides, ShouldBeGreaterThan, 0)
		})

		Convey("Any non-step control action discards the pending seek", func() {
			actions := map[string]func(){
				"togglePause":      func() { _ = c.TogglePause() },
				"seek":             func() { _ = c.Seek(500) },
				"setVolume":        func() { _ = c.SetVolume(10) },
				"toggleFullscreen": func() { c.ToggleFullscreen() },
				"setQuality":       func() { c.SetQualityProfile("720p") },
			}

			for name, action := range actions {
				Convey(name, func() {
					c.StepSeek(+1)
					action()
					_, pending := c.trickplay.pending.Get()
					So(pending, ShouldBeFalse)
				})
			}
		})

		Convey("A step right after a commit baselines at the committed position", func() {
			c.StepSeek(+1)
			c.CommitSeek()
			c.StepSeek(+1)

			p, _ := c.trickplay.pending.Get()
			So(p.Baseline, ShouldEqual, 110)
			So(p.PreviewPosition, ShouldEqual, 120)
		})
	})
}

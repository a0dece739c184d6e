package playback

import (
	"errors"
	"testing"

	"github.com/kinocast-cli/kinocast/bridge"
	"github.com/kinocast-cli/kinocast/catalog"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAutoSelect(t *testing.T) {
	Convey("AutoSelect", t, func() {
		b := newFakeBridge()
		surf := &fakeSurface{}
		c := newTestController(b, nil, surf)
		So(c.Launch(testSource()), ShouldBeNil)

		Convey("An empty track list is retried exactly maxRetries times", func() {
			c.subtitles.AutoSelect(3)

			So(b.count("subtitleTracks"), ShouldEqual, 4)
			So(b.count("setSubtitleTrack"), ShouldEqual, 0)
			So(b.count("addExternalSubtitle"), ShouldEqual, 0)
			// The badge reflects the empty list on every attempt.
			So(surf.badges[len(surf.badges)-1], ShouldBeFalse)
		})

		Convey("Re-injects the session's sidecar before the final retry", func() {
			src := testSource()
			src.SubtitleURL = "https://x/en.vtt"
			So(c.Launch(src), ShouldBeNil)

			c.subtitles.AutoSelect(2)

			// The injection stays within the retry budget; no backend calls
			// happen after the final fetch.
			So(b.count("addExternalSubtitle"), ShouldEqual, 1)
			So(b.count("subtitleTracks"), ShouldEqual, 3)
		})

		Convey("Discovery errors count as empty lists", func() {
			b.tracksErr = errors.New("not ready")
			c.subtitles.AutoSelect(2)
			So(b.count("subtitleTracks"), ShouldEqual, 3)
		})

		Convey("Selects the first preferred-language track when the selection is wrong", func() {
			b.tracks = []bridge.SubtitleTrack{
				{ID: 1, Lang: "ja", Selected: true},
				{ID: 2, Lang: "en"},
				{ID: 3, Lang: "en-US"},
			}

			c.subtitles.AutoSelect(0)

			So(b.count("setSubtitleTrack"), ShouldEqual, 1)
			So(b.lastSubtitleTrack, ShouldEqual, 2)
			So(surf.badges[len(surf.badges)-1], ShouldBeTrue)
		})

		Convey("Leaves an already suitable selection alone", func() {
			b.tracks = []bridge.SubtitleTrack{
				{ID: 1, Lang: "en", Selected: true},
				{ID: 2, Lang: "ja"},
			}

			c.subtitles.AutoSelect(0)

			So(b.count("setSubtitleTrack"), ShouldEqual, 0)
			So(surf.badges[len(surf.badges)-1], ShouldBeTrue)
		})

		Convey("Matches language by title when the code is missing", func() {
			b.tracks = []bridge.SubtitleTrack{
				{ID: 1, Title: "Forced"},
				{ID: 2, Title: "English (SDH)"},
			}

			c.subtitles.AutoSelect(0)
			So(b.lastSubtitleTrack, ShouldEqual, 2)
		})

		Convey("Stops when the session is gone", func() {
			So(c.Close(), ShouldBeNil)
			c.subtitles.AutoSelect(3)
			So(b.count("subtitleTracks"), ShouldEqual, 0)
		})
	})
}

func TestResolveExternalTrack(t *testing.T) {
	Convey("ResolveExternalTrack", t, func() {
		b := newFakeBridge()
		cat := &fakeCatalog{}
		c := newTestController(b, cat, NopSurface{})
		resolve := func() string {
			return c.subtitles.ResolveExternalTrack("shows/ep01", "src1", "https://x/fallback.vtt")
		}

		Convey("Returns the fallback unchanged when the metadata fetch fails", func() {
			cat.subsErr = errors.New("catalog down")
			So(resolve(), ShouldEqual, "https://x/fallback.vtt")
		})

		Convey("Prefers a sidecar in the preferred language", func() {
			cat.subs = []catalog.SubtitleDescriptor{
				{Type: catalog.SubtitleEmbedded, Lang: "en", URL: "https://x/embedded-en"},
				{Type: catalog.SubtitleSidecar, Lang: "fr", URL: "https://x/sidecar-fr"},
				{Type: catalog.SubtitleSidecar, Lang: "en", URL: "https://x/sidecar-en"},
			}
			So(resolve(), ShouldEqual, "https://x/sidecar-en")
		})

		Convey("Falls back to any sidecar", func() {
			cat.subs = []catalog.SubtitleDescriptor{
				{Type: catalog.SubtitleEmbedded, Lang: "en", URL: "https://x/embedded-en"},
				{Type: catalog.SubtitleSidecar, Lang: "fr", URL: "https://x/sidecar-fr"},
			}
			So(resolve(), ShouldEqual, "https://x/sidecar-fr")
		})

		Convey("Then to an embedded track in the preferred language", func() {
			cat.subs = []catalog.SubtitleDescriptor{
				{Type: catalog.SubtitleEmbedded, Lang: "ja", URL: "https://x/embedded-ja"},
				{Type: catalog.SubtitleEmbedded, Lang: "en", URL: "https://x/embedded-en"},
			}
			So(resolve(), ShouldEqual, "https://x/embedded-en")
		})

		Convey("Descriptors without a URL are skipped", func() {
			cat.subs = []catalog.SubtitleDescriptor{
				{Type: catalog.SubtitleSidecar, Lang: "en"},
			}
			So(resolve(), ShouldEqual, "https://x/fallback.vtt")
		})
	})
}

func TestLanguageMatching(t *testing.T) {
	Convey("codeMatchesLanguage", t, func() {
		So(codeMatchesLanguage("en", "en"), ShouldBeTrue)
		So(codeMatchesLanguage("en-US", "en"), ShouldBeTrue)
		So(codeMatchesLanguage("eng", "en"), ShouldBeTrue)
		So(codeMatchesLanguage("ja", "en"), ShouldBeFalse)
		So(codeMatchesLanguage("", "en"), ShouldBeFalse)
	})

	Convey("trackMatchesLanguage", t, func() {
		So(trackMatchesLanguage(bridge.SubtitleTrack{Lang: "en-GB"}, "en"), ShouldBeTrue)
		So(trackMatchesLanguage(bridge.SubtitleTrack{Title: "Deutsch (CC)"}, "de"), ShouldBeTrue)
		So(trackMatchesLanguage(bridge.SubtitleTrack{Title: "Commentary"}, "en"), ShouldBeFalse)
	})
}

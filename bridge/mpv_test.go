package bridge

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLaunchArgs(t *testing.T) {
	Convey("launchArgs", t, func() {
		spec := LaunchSpec{
			Title:    "Ep01",
			MediaURL: "https://x/stream",
		}

		Convey("Should always carry the IPC socket and media URL", func() {
			args := launchArgs(spec, "/tmp/kinocast-ab.sock", "https://x/stream")
			So(args, ShouldContain, "--input-ipc-server=/tmp/kinocast-ab.sock")
			So(args[len(args)-1], ShouldEqual, "https://x/stream")
		})

		Convey("Should omit start and pause flags by default", func() {
			args := launchArgs(spec, "/tmp/s.sock", "https://x/stream")
			So(args, ShouldNotContain, "--pause")
			for _, a := range args {
				So(a, ShouldNotStartWith, "--start=")
			}
		})

		Convey("Should encode start position and paused launch", func() {
			spec.StartPosition = 42.5
			spec.StartPaused = true
			args := launchArgs(spec, "/tmp/s.sock", "https://x/stream")
			So(args, ShouldContain, "--start=+42.500")
			So(args, ShouldContain, "--pause")
		})

		Convey("Should inject a sidecar subtitle when present", func() {
			spec.SubtitleURL = "https://x/subs.vtt"
			args := launchArgs(spec, "/tmp/s.sock", "https://x/stream")
			So(args, ShouldContain, "--sub-file=https://x/subs.vtt")
		})
	})
}

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("sanitizeMediaTarget", t, func() {
		Convey("Should accept http and https URLs", func() {
			u, err := sanitizeMediaTarget("https://x/stream")
			So(err, ShouldBeNil)
			So(u, ShouldEqual, "https://x/stream")
		})

		Convey("Should reject flag-like inputs", func() {
			_, err := sanitizeMediaTarget("--vo=null")
			So(err, ShouldNotBeNil)
		})

		Convey("Should reject unsupported schemes", func() {
			_, err := sanitizeMediaTarget("ftp://x/stream")
			So(err, ShouldNotBeNil)
		})

		Convey("Should clean local paths", func() {
			p, err := sanitizeMediaTarget("./media/../video.mkv")
			So(err, ShouldBeNil)
			So(p, ShouldEqual, "video.mkv")
		})
	})
}

func TestSessionDoneChannel(t *testing.T) {
	closed := func(ch <-chan struct{}) bool {
		select {
		case <-ch:
			return true
		default:
			return false
		}
	}

	Convey("Session done channel", t, func() {
		m := NewMPV()

		Convey("Stays open across a requested relaunch", func() {
			// Close asks the old process to quit before a recreation relaunch.
			first := make(chan struct{})
			m.closing = true
			m.playerExited(first)

			So(closed(first), ShouldBeTrue)
			So(closed(m.Wait()), ShouldBeFalse)

			// The relaunched process later dies on its own; now the session is over.
			second := make(chan struct{})
			m.closing = false
			m.playerExited(second)

			So(closed(second), ShouldBeTrue)
			So(closed(m.Wait()), ShouldBeTrue)
		})

		Convey("Closes when the player dies without being asked", func() {
			m.playerExited(make(chan struct{}))
			So(closed(m.Wait()), ShouldBeTrue)
		})
	})
}

func TestParseSubtitleTracks(t *testing.T) {
	Convey("parseSubtitleTracks", t, func() {
		trackList := []interface{}{
			map[string]interface{}{"type": "video", "id": float64(1)},
			map[string]interface{}{
				"type": "sub", "id": float64(1), "lang": "en",
				"title": "English", "selected": true,
			},
			map[string]interface{}{
				"type": "sub", "id": float64(2), "lang": "ja", "external": true,
			},
		}

		Convey("Should keep only subtitle entries", func() {
			tracks := parseSubtitleTracks(trackList)
			So(tracks, ShouldHaveLength, 2)
			So(tracks[0].ID, ShouldEqual, 1)
			So(tracks[0].Lang, ShouldEqual, "en")
			So(tracks[0].Selected, ShouldBeTrue)
			So(tracks[1].External, ShouldBeTrue)
		})

		Convey("Should tolerate malformed data", func() {
			So(parseSubtitleTracks(nil), ShouldBeEmpty)
			So(parseSubtitleTracks("garbage"), ShouldBeEmpty)
			So(parseSubtitleTracks([]interface{}{42}), ShouldBeEmpty)
		})
	})
}

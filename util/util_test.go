package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "track", "tracks"), ShouldEqual, "1 track")
		So(Quantify(2, "track", "tracks"), ShouldEqual, "2 tracks")
	})
}

func TestClamp(t *testing.T) {
	Convey("Clamp", t, func() {
		So(Clamp(5, 0, 10), ShouldEqual, 5)
		So(Clamp(-3, 0, 10), ShouldEqual, 0)
		So(Clamp(42, 0, 10), ShouldEqual, 10)
		So(Clamp(99.5, 0.0, 100.0), ShouldEqual, 99.5)
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max/Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
	})
}

func TestFormatClock(t *testing.T) {
	Convey("FormatClock", t, func() {
		Convey("Should render sub-hour durations as MM:SS", func() {
			So(FormatClock(0), ShouldEqual, "00:00")
			So(FormatClock(75), ShouldEqual, "01:15")
			So(FormatClock(1200), ShouldEqual, "20:00")
		})
		Convey("Should render hour-plus durations with an hour segment", func() {
			So(FormatClock(3661), ShouldEqual, "1:01:01")
		})
		Convey("Should treat negative positions as zero", func() {
			So(FormatClock(-5), ShouldEqual, "00:00")
		})
	})
}

func TestClockRange(t *testing.T) {
	Convey("ClockRange", t, func() {
		So(ClockRange(0, 1200), ShouldEqual, "00:00 / 20:00")
		So(ClockRange(90, 3600), ShouldEqual, "01:30 / 1:00:00")
	})
}

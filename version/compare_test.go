package version

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Compare", t, func() {
		Convey("Should order semantic versions", func() {
			So(mustCompare("1.2.3", "1.2.3"), ShouldEqual, 0)
			So(mustCompare("1.2.4", "1.2.3"), ShouldEqual, 1)
			So(mustCompare("1.2.3", "1.3.0"), ShouldEqual, -1)
			So(mustCompare("2.0.0", "1.9.9"), ShouldEqual, 1)
		})

		Convey("Should accept a leading v prefix", func() {
			So(mustCompare("v1.0.0", "1.0.0"), ShouldEqual, 0)
		})

		Convey("Should reject malformed versions", func() {
			_, err := Compare("not-a-version", "1.0.0")
			So(err, ShouldNotBeNil)
		})
	})
}

func mustCompare(a, b string) int {
	c, err := Compare(a, b)
	So(err, ShouldBeNil)
	return c
}

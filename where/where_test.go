package where

import (
	"os"
	"strings"
	"testing"

	"github.com/kinocast-cli/kinocast/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWhere(t *testing.T) {
	filesystem.SetMemMapFs()
	defer filesystem.SetOsFs()

	Convey("Where", t, func() {
		Convey("Config honors the override environment variable", func() {
			So(os.Setenv(EnvConfigPath, "/custom/kinocast"), ShouldBeNil)
			defer os.Unsetenv(EnvConfigPath)

			So(Config(), ShouldEqual, "/custom/kinocast")
		})

		Convey("Logs lives under the config directory", func() {
			So(os.Setenv(EnvConfigPath, "/custom/kinocast"), ShouldBeNil)
			defer os.Unsetenv(EnvConfigPath)

			So(Logs(), ShouldEqual, "/custom/kinocast/logs")
		})

		Convey("Cache paths point at the cache directory", func() {
			So(strings.HasSuffix(Trickplay(), "trickplay.json"), ShouldBeTrue)
			So(strings.HasSuffix(VideoInfo(), "videoinfo.json"), ShouldBeTrue)
		})
	})
}

package config

import (
	"testing"

	"github.com/kinocast-cli/kinocast/filesystem"
	"github.com/kinocast-cli/kinocast/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestSetup(t *testing.T) {
	filesystem.SetMemMapFs()
	defer filesystem.SetOsFs()

	Convey("Setup", t, func() {
		viper.Reset()
		So(Setup(), ShouldBeNil)

		Convey("Should expose factory defaults", func() {
			So(viper.GetInt(key.PlayerVolume), ShouldEqual, 100)
			So(viper.GetInt(key.PlayerStepSize), ShouldEqual, 10)
			So(viper.GetString(key.SubtitleLanguage), ShouldEqual, "en")
		})

		Convey("Env names carry the application prefix", func() {
			f := Default[key.PlayerVolume]
			So(f.Env(), ShouldEqual, "KINOCAST_PLAYER_VOLUME")
		})
	})
}

// Package cmd implements the command-line interface for kinocast.
package cmd

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kinocast-cli/kinocast/bridge"
	"github.com/kinocast-cli/kinocast/catalog"
	"github.com/kinocast-cli/kinocast/key"
	"github.com/kinocast-cli/kinocast/playback"
	"github.com/kinocast-cli/kinocast/tui"
)

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringP("title", "t", "", "Display title for the player window")
	playCmd.Flags().StringP("subtitle", "s", "", "Fallback subtitle file URL")
	playCmd.Flags().StringP("content-path", "p", "", "Catalog content path of the media (enables trickplay and subtitle metadata)")
	playCmd.Flags().StringP("source-id", "i", "", "Catalog source identifier of the media")
	playCmd.Flags().StringP("quality", "q", "", "Quality profile to request")
}

// playCmd launches a playback session for a media URL and runs the control surface.
var playCmd = &cobra.Command{
	Use:   "play <url>",
	Short: "Play a media URL in the external player under session control",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		src := playback.Source{
			Title:       lo.Must(cmd.Flags().GetString("title")),
			MediaURL:    args[0],
			ContentPath: lo.Must(cmd.Flags().GetString("content-path")),
			SourceID:    lo.Must(cmd.Flags().GetString("source-id")),
		}
		if src.Title == "" {
			src.Title = src.MediaURL
		}

		mpv := bridge.NewMPV()
		surface := tui.NewSurface()

		prefs := playback.LoadPreferences()
		if quality := lo.Must(cmd.Flags().GetString("quality")); quality != "" {
			prefs.Quality = quality
		}

		options := playback.Options{
			Bridge:      mpv,
			Surface:     surface,
			Quirks:      playback.DetectProfile(),
			Preferences: prefs,
		}
		if base := viper.GetString(key.CatalogBaseURL); base != "" {
			options.Catalog = catalog.NewClient(base)
		}

		controller := playback.NewController(options)

		src.SubtitleURL = controller.ResolveExternalSubtitle(
			src, lo.Must(cmd.Flags().GetString("subtitle")),
		)

		handleErr(controller.Launch(src))

		err := tui.Run(&tui.Options{
			Controller:   controller,
			Surface:      surface,
			Source:       src,
			PlayerExited: mpv.Wait(),
		})
		_ = controller.Close()
		handleErr(err)
	},
}

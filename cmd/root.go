// Package cmd implements the command-line interface for kinocast.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kinocast-cli/kinocast/color"
	"github.com/kinocast-cli/kinocast/constant"
	"github.com/kinocast-cli/kinocast/key"
	"github.com/kinocast-cli/kinocast/log"
	"github.com/kinocast-cli/kinocast/style"
	"github.com/kinocast-cli/kinocast/util"
	"github.com/kinocast-cli/kinocast/version"
	"github.com/kinocast-cli/kinocast/where"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("catalog", "C", "", "Override the catalog server base URL")
	lo.Must0(viper.BindPFlag(key.CatalogBaseURL, rootCmd.PersistentFlags().Lookup("catalog")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Initialize cleanup of localized temporary files on application startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the kinocast application.
var rootCmd = &cobra.Command{
	Use:   constant.Kinocast,
	Short: "A terminal remote control for delegated media playback",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A terminal remote control for delegated media playback"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "✗ %s\n", strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

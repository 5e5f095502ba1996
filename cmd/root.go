// Package cmd holds the command line of handoff.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "handoff",
	Short: "Terminal media player with an overlay mode",
	Long: `handoff plays a media file in the terminal.

The decoded output follows whichever pane is shown: the main view, or a
small overlay pane that keeps playing while the rest of the screen is
hidden. Playback can also be driven over MPRIS and from desktop
notifications.`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	SilenceUsage: true,
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/handoff/config.toml)")
}

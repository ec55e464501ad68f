package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"voice-renamer/cmd/v2n/cmd/cli"
	"voice-renamer/cmd/v2n/cmd/history"
	"voice-renamer/cmd/v2n/cmd/providers"
	"voice-renamer/cmd/v2n/cmd/rename"
	"voice-renamer/cmd/v2n/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "v2n",
	Short: "Rename voice recordings after what is said in them",
	Long: `Rename voice recordings after what is said in them.

- Every recording in a directory is transcribed, oldest first
- Only the first seconds are transcribed unless more are needed for a usable name
- Renamed copies go to <dir>_renamed_<timestamp>, the originals are left untouched
- Every rename is saved to a local sqlite history`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(rename.Cmd)
	rootCmd.AddCommand(history.Cmd)
	rootCmd.AddCommand(providers.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().Bool(cli.FlagDebug, false, "log every duration rung with timings and transcriptions")
	rootCmd.PersistentFlags().String(cli.FlagConfig, "", "config file (default is $HOME/.v2n/config.yaml)")
}

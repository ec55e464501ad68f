// Package cli holds what the v2n subcommands share.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"voice-renamer/internal/app/common"
	"voice-renamer/internal/config"
)

// Persistent flags defined on the root command
const (
	FlagDebug  = "debug"
	FlagConfig = "config"
)

// LoadSettings reads the config file named by --config and applies --debug
func LoadSettings(cmd *cobra.Command) (*config.Settings, error) {
	configPath, _ := cmd.Flags().GetString(FlagConfig)
	settings, err := config.LoadSettings(configPath)
	if err != nil {
		return nil, err
	}
	if debug, _ := cmd.Flags().GetBool(FlagDebug); debug {
		settings.Debug = true
	}
	return settings, nil
}

// NewLogger builds the process logger for settings
func NewLogger(settings *config.Settings) (*zap.Logger, error) {
	return common.NewLogger(settings.Debug)
}

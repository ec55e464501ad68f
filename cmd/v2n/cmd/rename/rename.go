package rename

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"voice-renamer/cmd/v2n/cmd/cli"
	"voice-renamer/internal/app"
	"voice-renamer/internal/app/renamer"
	"voice-renamer/internal/config"
)

const (
	flagProvider        = "provider"
	flagModel           = "model"
	flagLanguage        = "language"
	flagInitialDuration = "initial-duration"
	flagMinWords        = "min-words"
	flagMaxWords        = "max-words"
	flagAudioBackend    = "audio-backend"
	flagTempDir         = "temp-dir"
	flagMetricsFile     = "metrics-file"
	flagDryRun          = "dry-run"
	flagFailFast        = "fail-fast"
	flagNoProgress      = "no-progress"
)

func init() {
	registerFlags(Cmd.Flags())
}

func registerFlags(flags *pflag.FlagSet) {
	defaults := config.DefaultSettings()

	flags.StringP(flagProvider, "p", defaults.Provider, "speech provider: whisper_cpp, openai or gemini")
	flags.StringP(flagModel, "m", "", "model of the provider (ggml file for whisper_cpp, model name otherwise)")
	flags.StringP(flagLanguage, "l", defaults.Language, "language spoken in the recordings")
	flags.Int(flagInitialDuration, defaults.InitialDuration, "seconds transcribed on the first attempt")
	flags.Int(flagMinWords, defaults.MinWords, "words a transcription needs before it is accepted")
	flags.Int(flagMaxWords, defaults.MaxNameWords, "words used in the new file name")
	flags.String(flagAudioBackend, defaults.AudioBackend, "audio decoder: auto, ffmpeg or native")
	flags.String(flagTempDir, "", "directory for trimmed audio (default is the system temp dir)")
	flags.String(flagMetricsFile, "", "write Prometheus textfile metrics here after the run")
	flags.Bool(flagDryRun, false, "only print the new names")
	flags.Bool(flagFailFast, false, "stop at the first file that cannot be renamed")
	flags.Bool(flagNoProgress, false, "hide the progress bar")
}

// Cmd represents the rename command
var Cmd = &cobra.Command{
	Use:   "rename <input_dir>",
	Short: "Copy the recordings of a directory under names taken from their transcription",
	Long: `Copy the recordings of a directory under names taken from their transcription

- Recordings are processed oldest first and numbered from 1
- The first 8 seconds are transcribed, then 16, then the whole file, until the text has enough words
- The new name is <number>_<first words><extension>`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	settings, err := cli.LoadSettings(cmd)
	if err != nil {
		return err
	}
	applyFlags(cmd.Flags(), settings)
	if err := settings.Validate(); err != nil {
		return err
	}

	logger, err := cli.NewLogger(settings)
	if err != nil {
		return err
	}
	defer logger.Sync()

	r, err := app.InitializeRenamer(settings, logger)
	if err != nil {
		logger.Error("failed to initialise", zap.String("provider", settings.Provider), zap.Error(err))
		return err
	}
	defer r.Close()

	dryRun, _ := cmd.Flags().GetBool(flagDryRun)
	failFast, _ := cmd.Flags().GetBool(flagFailFast)
	noProgress, _ := cmd.Flags().GetBool(flagNoProgress)

	summary, err := r.Run(cmd.Context(), args[0], Options(settings, dryRun, failFast, !noProgress && renamer.ShouldShowProgress(false)))
	if summary != nil {
		summary.Print(cmd.OutOrStdout())
	}
	return err
}

// Options translates settings into the options of one run
func Options(settings *config.Settings, dryRun, failFast, progress bool) renamer.Options {
	return renamer.Options{
		Extensions:      settings.Extensions,
		InitialDuration: settings.InitialDurationValue(),
		MinWords:        settings.MinWords,
		MaxNameWords:    settings.MaxNameWords,
		Language:        settings.Language,
		Provider:        settings.Provider,
		TempDir:         settings.TempDir,
		DryRun:          dryRun,
		FailFast:        failFast,
		Progress:        progress,
		ProgressWriter:  os.Stderr,
		MetricsFile:     settings.MetricsFile,
	}
}

// applyFlags overrides settings with the flags given on the command line
func applyFlags(flags *pflag.FlagSet, settings *config.Settings) {
	if flags.Changed(flagProvider) {
		settings.Provider, _ = flags.GetString(flagProvider)
	}
	if flags.Changed(flagModel) {
		model, _ := flags.GetString(flagModel)
		settings.ApplyModel(model)
	}
	if flags.Changed(flagLanguage) {
		settings.Language, _ = flags.GetString(flagLanguage)
	}
	if flags.Changed(flagInitialDuration) {
		settings.InitialDuration, _ = flags.GetInt(flagInitialDuration)
	}
	if flags.Changed(flagMinWords) {
		settings.MinWords, _ = flags.GetInt(flagMinWords)
	}
	if flags.Changed(flagMaxWords) {
		settings.MaxNameWords, _ = flags.GetInt(flagMaxWords)
	}
	if flags.Changed(flagAudioBackend) {
		settings.AudioBackend, _ = flags.GetString(flagAudioBackend)
	}
	if flags.Changed(flagTempDir) {
		settings.TempDir, _ = flags.GetString(flagTempDir)
	}
	if flags.Changed(flagMetricsFile) {
		settings.MetricsFile, _ = flags.GetString(flagMetricsFile)
	}
}

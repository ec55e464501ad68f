package whisper_cpp

import (
	"go.uber.org/zap"

	"voice-renamer/internal/app/api/provider"
	"voice-renamer/internal/config"
)

// Info describes the whisper.cpp provider
var Info = provider.ProviderInfo{
	Name:        "whisper_cpp",
	DisplayName: "Whisper.cpp (Local)",
	Type:        provider.ProviderTypeLocal,
	SupportedFormats: []provider.AudioFormat{
		provider.FormatWAV,
		provider.FormatMP3,
		provider.FormatM4A,
		provider.FormatFLAC,
		provider.FormatOGG,
	},
	RequiresBinary: true,
	DefaultModel:   "ggml-large-v3.bin",
	AvailableModels: []string{
		"ggml-tiny.bin", "ggml-base.bin", "ggml-small.bin",
		"ggml-medium.bin", "ggml-large-v2.bin", "ggml-large-v3.bin", "ggml-large-v3-turbo.bin",
	},
}

func init() {
	// Register whisper_cpp provider with the factory
	provider.RegisterProvider("whisper_cpp", Info, createWhisperCppProvider)
}

func createWhisperCppProvider(settings *config.Settings, logger *zap.Logger) (provider.TranscriptionProvider, error) {
	return NewLocalTranscriber(LocalConfig{
		BinaryPath: settings.WhisperCpp.BinaryPath,
		ModelPath:  settings.WhisperCpp.ModelPath,
		Prompt:     settings.WhisperCpp.Prompt,
		Threads:    settings.WhisperCpp.Threads,
		Timeout:    settings.WhisperCppTimeout(),
		TempDir:    settings.TempDir,
	}, logger), nil
}

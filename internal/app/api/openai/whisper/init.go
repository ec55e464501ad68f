package whisper

import (
	"go.uber.org/zap"

	"voice-renamer/internal/app/api/openai"
	"voice-renamer/internal/app/api/provider"
	apperrors "voice-renamer/internal/app/errors"
	"voice-renamer/internal/config"
)

// Info describes the OpenAI Whisper API provider
var Info = provider.ProviderInfo{
	Name:        "openai",
	DisplayName: "OpenAI Whisper API",
	Type:        provider.ProviderTypeRemote,
	SupportedFormats: []provider.AudioFormat{
		provider.FormatMP3,
		provider.FormatM4A,
		provider.FormatWAV,
		provider.FormatFLAC,
		provider.FormatOGG,
		provider.FormatWEBM,
	},
	MaxFileSizeMB:    25,
	RequiresInternet: true,
	RequiresAPIKey:   true,
	DefaultModel:     config.DefaultOpenAIModel,
	AvailableModels:  []string{"whisper-1", "gpt-4o-transcribe", "gpt-4o-mini-transcribe"},
}

func init() {
	// Register openai provider with the factory
	provider.RegisterProvider("openai", Info, createOpenAIProvider)
}

func createOpenAIProvider(settings *config.Settings, logger *zap.Logger) (provider.TranscriptionProvider, error) {
	apiKeys := settings.APIKeys
	if apiKeys == nil {
		var err error
		if apiKeys, err = config.GetAPIKeys(); err != nil {
			return nil, err
		}
	}

	if settings.OpenAI.BaseURL != "" {
		if err := config.ValidateURL(settings.OpenAI.BaseURL, "OpenAI"); err != nil {
			return nil, apperrors.Tag(apperrors.ErrInvalidConfiguration, err)
		}
	}

	apiKey, err := config.RequireAPIKey(apiKeys, "openai")
	if err != nil {
		return nil, err
	}

	client := openai.NewClient(apiKey, settings.OpenAI.BaseURL)
	return NewRemoteTranscriber(client, settings.OpenAI.Model, settings.OpenAI.Prompt, logger), nil
}

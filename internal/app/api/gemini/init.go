package gemini

import (
	"context"

	"go.uber.org/zap"

	"voice-renamer/internal/app/api/provider"
	apperrors "voice-renamer/internal/app/errors"
	"voice-renamer/internal/config"
)

// Info describes the Gemini provider
var Info = provider.ProviderInfo{
	Name:        "gemini",
	DisplayName: "Google Gemini",
	Type:        provider.ProviderTypeRemote,
	SupportedFormats: []provider.AudioFormat{
		provider.FormatWAV,
		provider.FormatMP3,
		provider.FormatM4A,
		provider.FormatFLAC,
		provider.FormatOGG,
		provider.FormatWEBM,
	},
	MaxFileSizeMB:    20, // inline request limit
	RequiresInternet: true,
	RequiresAPIKey:   true,
	DefaultModel:     config.DefaultGeminiModel,
	AvailableModels:  []string{"gemini-2.5-flash", "gemini-2.5-flash-lite", "gemini-2.5-pro"},
}

func init() {
	provider.RegisterProvider("gemini", Info, createGeminiProvider)
}

func createGeminiProvider(settings *config.Settings, logger *zap.Logger) (provider.TranscriptionProvider, error) {
	apiKeys := settings.APIKeys
	if apiKeys == nil {
		var err error
		if apiKeys, err = config.GetAPIKeys(); err != nil {
			return nil, err
		}
	}

	if settings.Gemini.BaseURL != "" {
		if err := config.ValidateURL(settings.Gemini.BaseURL, "Gemini"); err != nil {
			return nil, apperrors.Tag(apperrors.ErrInvalidConfiguration, err)
		}
	}

	apiKey, err := config.RequireAPIKey(apiKeys, "gemini")
	if err != nil {
		return nil, err
	}

	client, err := NewClient(context.Background(), apiKey, settings.Gemini.BaseURL)
	if err != nil {
		return nil, err
	}
	return NewAudioTranscriber(client, settings.Gemini.Model, logger), nil
}

package provider

import (
	"context"
	"path/filepath"
	"strings"

	"voice-renamer/internal/app/api"
)

// AudioFormat defines supported audio formats
type AudioFormat string

const (
	FormatWAV  AudioFormat = "wav"
	FormatMP3  AudioFormat = "mp3"
	FormatM4A  AudioFormat = "m4a"
	FormatFLAC AudioFormat = "flac"
	FormatOGG  AudioFormat = "ogg"
	FormatWEBM AudioFormat = "webm"
)

// ProviderType defines the type of transcription provider
type ProviderType string

const (
	ProviderTypeLocal  ProviderType = "local"
	ProviderTypeRemote ProviderType = "remote"
)

// TranscriptionProvider is a speech model the rename pipeline can drive.
type TranscriptionProvider interface {
	api.Transcriber

	// ValidateConfiguration reports missing binaries, models or keys before any audio is sent
	ValidateConfiguration() error

	// HealthCheck verifies the provider is reachable
	HealthCheck(ctx context.Context) error
}

// ProviderInfo contains metadata about a transcription provider
type ProviderInfo struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"display_name"`
	Type        ProviderType `json:"type"`

	SupportedFormats   []AudioFormat `json:"supported_formats"`
	SupportedLanguages []string      `json:"supported_languages,omitempty"` // Empty means all languages
	MaxFileSizeMB      int           `json:"max_file_size_mb,omitempty"`    // 0 means no limit

	RequiresInternet bool `json:"requires_internet"`
	RequiresAPIKey   bool `json:"requires_api_key"`
	RequiresBinary   bool `json:"requires_binary"`

	DefaultModel    string   `json:"default_model,omitempty"`
	AvailableModels []string `json:"available_models,omitempty"`
}

// SupportsFormat reports whether the provider accepts the given format
func (i ProviderInfo) SupportsFormat(format AudioFormat) bool {
	for _, f := range i.SupportedFormats {
		if f == format {
			return true
		}
	}
	return false
}

// SupportsLanguage reports whether the provider can transcribe the given language
func (i ProviderInfo) SupportsLanguage(language string) bool {
	if len(i.SupportedLanguages) == 0 || language == "" {
		return true
	}
	for _, l := range i.SupportedLanguages {
		if strings.EqualFold(l, language) {
			return true
		}
	}
	return false
}

// GetAudioFormatFromFilename extracts audio format from filename
func GetAudioFormatFromFilename(filename string) AudioFormat {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return FormatWAV
	case ".mp3":
		return FormatMP3
	case ".m4a":
		return FormatM4A
	case ".flac":
		return FormatFLAC
	case ".ogg":
		return FormatOGG
	case ".webm":
		return FormatWEBM
	default:
		return ""
	}
}

package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "voice-renamer/internal/app/errors"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "whisper_cpp", s.Provider)
	assert.Equal(t, "uk", s.Language)
	assert.Equal(t, 8, s.InitialDuration)
	assert.Equal(t, 8, s.MinWords)
	assert.Equal(t, 8, s.MaxNameWords)
	assert.Equal(t, []string{".wav", ".mp3", ".m4a", ".flac", ".ogg"}, s.Extensions)
	assert.NoError(t, s.Validate())
}

func TestLoadSettings_MissingDefaultFileFallsBack(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, DefaultProvider, s.Provider)
}

func TestLoadSettings_MissingExplicitFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadSettings_OverlaysYAML(t *testing.T) {
	t.Setenv("V2N_TEST_MODEL", "/models/ggml-large-v3.bin")
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
provider: OpenAI
language: en
initial_duration: 5
min_words: 3
extensions: [WAV, "mp3"]
whisper_cpp:
  model_path: ${V2N_TEST_MODEL}
openai:
  model: whisper-1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", s.Provider)
	assert.Equal(t, "en", s.Language)
	assert.Equal(t, 5, s.InitialDuration)
	assert.Equal(t, 3, s.MinWords)
	assert.Equal(t, DefaultMaxNameWords, s.MaxNameWords, "keys absent from the file keep their defaults")
	assert.Equal(t, []string{".wav", ".mp3"}, s.Extensions)
	assert.Equal(t, "/models/ggml-large-v3.bin", s.WhisperCpp.ModelPath)
}

func TestLoadSettings_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: [unclosed"), 0644))

	_, err := LoadSettings(path)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, apperrors.ErrInvalidConfiguration))
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(s *Settings)
		errorContains string
	}{
		{
			name:   "defaults are valid",
			mutate: func(s *Settings) {},
		},
		{
			name:          "zero initial duration",
			mutate:        func(s *Settings) { s.InitialDuration = 0 },
			errorContains: "initial_duration",
		},
		{
			name:          "negative initial duration",
			mutate:        func(s *Settings) { s.InitialDuration = -3 },
			errorContains: "initial_duration",
		},
		{
			name:          "negative min words",
			mutate:        func(s *Settings) { s.MinWords = -1 },
			errorContains: "min_words",
		},
		{
			name:   "zero min words is allowed",
			mutate: func(s *Settings) { s.MinWords = 0 },
		},
		{
			name:          "unknown audio backend",
			mutate:        func(s *Settings) { s.AudioBackend = "sox" },
			errorContains: "audio_backend",
		},
		{
			name:          "no extensions",
			mutate:        func(s *Settings) { s.Extensions = nil },
			errorContains: "extensions",
		},
		{
			name: "upload enabled without bucket",
			mutate: func(s *Settings) {
				s.Upload = UploadSettings{Enabled: true, Endpoint: "localhost:9000"}
			},
			errorContains: "upload.bucket",
		},
		{
			name:          "bad openai base url",
			mutate:        func(s *Settings) { s.OpenAI.BaseURL = "not a url" },
			errorContains: "openai.base_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(s)

			err := s.Validate()
			if tt.errorContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
			assert.True(t, stderrors.Is(err, apperrors.ErrInvalidConfiguration))
		})
	}
}

func TestSaveSettings_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	s := DefaultSettings()
	s.Language = "de"
	s.InitialDuration = 12

	require.NoError(t, SaveSettings(s, path))

	loaded, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "de", loaded.Language)
	assert.Equal(t, 12, loaded.InitialDuration)
}

func TestSettings_ApplyModel(t *testing.T) {
	tests := []struct {
		provider string
		check    func(t *testing.T, s *Settings)
	}{
		{"whisper_cpp", func(t *testing.T, s *Settings) { assert.Equal(t, "/models/ggml-small.bin", s.WhisperCpp.ModelPath) }},
		{"openai", func(t *testing.T, s *Settings) { assert.Equal(t, "/models/ggml-small.bin", s.OpenAI.Model) }},
		{" Gemini ", func(t *testing.T, s *Settings) { assert.Equal(t, "/models/ggml-small.bin", s.Gemini.Model) }},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			s := DefaultSettings()
			s.Provider = tt.provider
			s.ApplyModel("/models/ggml-small.bin")
			tt.check(t, s)
		})
	}

	s := DefaultSettings()
	s.Provider = "unknown"
	s.ApplyModel("x")
	assert.Equal(t, DefaultOpenAIModel, s.OpenAI.Model)
	assert.Equal(t, DefaultGeminiModel, s.Gemini.Model)
}

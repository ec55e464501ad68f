package whisper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"voice-renamer/internal/app/api/openai"
	"voice-renamer/internal/app/api/provider"
	"voice-renamer/internal/config"
)

func createTempAudioFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "voice.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF....WAVE"), 0644))
	return path
}

// TestRemoteTranscriber_Transcript tests the RemoteTranscriber implementation
func TestRemoteTranscriber_Transcript(t *testing.T) {
	tests := []struct {
		name          string
		language      string
		mockResponse  string
		mockStatus    int
		expectedText  string
		expectError   bool
		errorContains string
	}{
		{
			name:         "successful transcription",
			language:     "uk",
			mockResponse: `{"text": " Привіт, це голосова нотатка "}`,
			mockStatus:   http.StatusOK,
			expectedText: "Привіт, це голосова нотатка",
		},
		{
			name:         "language detection",
			language:     "",
			mockResponse: `{"text": "Hello, 世界!"}`,
			mockStatus:   http.StatusOK,
			expectedText: "Hello, 世界!",
		},
		{
			name:          "API error - unauthorized",
			language:      "uk",
			mockResponse:  `{"error": {"message": "Invalid API key", "type": "invalid_request_error"}}`,
			mockStatus:    http.StatusUnauthorized,
			expectError:   true,
			errorContains: "401",
		},
		{
			name:          "API error - rate limit",
			language:      "uk",
			mockResponse:  `{"error": {"message": "Rate limit exceeded", "type": "rate_limit_error"}}`,
			mockStatus:    http.StatusTooManyRequests,
			expectError:   true,
			errorContains: "429",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotModel, gotLanguage, gotPrompt, gotPath string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				if err := r.ParseMultipartForm(1 << 20); err == nil {
					gotModel = r.FormValue("model")
					gotLanguage = r.FormValue("language")
					gotPrompt = r.FormValue("prompt")
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.mockStatus)
				fmt.Fprint(w, tt.mockResponse)
			}))
			defer server.Close()

			client := openai.NewClient("sk-test-key-1234567890", server.URL+"/v1")
			rt := NewRemoteTranscriber(client, "", "voice memo", zap.NewNop())

			text, err := rt.Transcript(context.Background(), createTempAudioFile(t), tt.language)
			assert.Equal(t, "/v1/audio/transcriptions", gotPath)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedText, text)
			assert.Equal(t, "whisper-1", gotModel)
			assert.Equal(t, tt.language, gotLanguage)
			assert.Equal(t, "voice memo", gotPrompt)
		})
	}
}

func TestRemoteTranscriber_MissingFile(t *testing.T) {
	client := openai.NewClient("sk-test-key-1234567890", "http://127.0.0.1:0/v1")
	rt := NewRemoteTranscriber(client, "whisper-1", "", nil)

	_, err := rt.Transcript(context.Background(), filepath.Join(t.TempDir(), "missing.wav"), "uk")
	assert.Error(t, err)
}

func TestCreateOpenAIProvider(t *testing.T) {
	settings := config.DefaultSettings()
	settings.OpenAI.Model = "gpt-4o-mini-transcribe"

	settings.APIKeys = &config.APIKeys{}
	_, err := createOpenAIProvider(settings, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")

	settings.APIKeys = &config.APIKeys{OpenAI: "sk-1234567890abcdef1234567890abcdef"}
	p, err := createOpenAIProvider(settings, zap.NewNop())
	require.NoError(t, err)
	rt, ok := p.(*RemoteTranscriber)
	require.True(t, ok)
	assert.Equal(t, "gpt-4o-mini-transcribe", rt.model)
	assert.NoError(t, rt.ValidateConfiguration())

	info, err := provider.GetProviderInfo("openai")
	require.NoError(t, err)
	assert.True(t, info.RequiresAPIKey)
}

package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"voice-renamer/internal/config"
)

const testAPIKey = "AIzaSyTestKey1234567890abcdefghijk"

func TestResolveAudioMIMEType(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"voice.wav", "audio/wav", false},
		{"VOICE.MP3", "audio/mpeg", false},
		{"memo.m4a", "audio/mp4", false},
		{"take.flac", "audio/flac", false},
		{"note.ogg", "audio/ogg", false},
		{"noext", "", true},
		{"notes.txt", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := resolveAudioMIMEType(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	assert.Equal(t, basePrompt, buildPrompt(""))

	prompt := buildPrompt("uk")
	assert.True(t, strings.HasPrefix(prompt, basePrompt))
	assert.Contains(t, prompt, "language uk")
}

func TestAudioTranscriber_Transcript(t *testing.T) {
	var requestBody map[string]any
	var requestPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &requestBody)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"  Купити хліб і молоко  "}]},"finishReason":"STOP"}]}`)
	}))
	defer server.Close()

	ctx := context.Background()
	client, err := NewClient(ctx, testAPIKey, server.URL)
	require.NoError(t, err)

	audioPath := filepath.Join(t.TempDir(), "memo.wav")
	require.NoError(t, os.WriteFile(audioPath, []byte("RIFF....WAVE"), 0644))

	transcriber := NewAudioTranscriber(client, "gemini-2.5-flash", zap.NewNop())
	text, err := transcriber.Transcript(ctx, audioPath, "uk")
	require.NoError(t, err)
	assert.Equal(t, "Купити хліб і молоко", text)

	assert.Contains(t, requestPath, "gemini-2.5-flash:generateContent")
	require.NotNil(t, requestBody)
	assert.Contains(t, fmt.Sprint(requestBody["contents"]), "audio/wav")
}

func TestAudioTranscriber_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`)
	}))
	defer server.Close()

	ctx := context.Background()
	client, err := NewClient(ctx, testAPIKey, server.URL)
	require.NoError(t, err)

	audioPath := filepath.Join(t.TempDir(), "memo.mp3")
	require.NoError(t, os.WriteFile(audioPath, []byte("ID3"), 0644))

	_, err = NewAudioTranscriber(client, "gemini-2.5-flash", nil).Transcript(ctx, audioPath, "uk")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generateContent failed")
}

func TestCreateGeminiProvider(t *testing.T) {
	settings := config.DefaultSettings()

	settings.APIKeys = &config.APIKeys{}
	_, err := createGeminiProvider(settings, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")

	settings.APIKeys = &config.APIKeys{Gemini: testAPIKey}
	p, err := createGeminiProvider(settings, zap.NewNop())
	require.NoError(t, err)
	assert.NoError(t, p.ValidateConfiguration())
	assert.Equal(t, config.DefaultGeminiModel, p.(*AudioTranscriber).model)
}

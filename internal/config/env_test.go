package config

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "voice-renamer/internal/app/errors"
)

func TestGetAPIKeys(t *testing.T) {
	testCases := []struct {
		name          string
		openaiKey     string
		geminiKey     string
		expectError   bool
		errorContains string
	}{
		{
			name:      "valid OpenAI key",
			openaiKey: "sk-1234567890abcdef1234567890abcdef",
		},
		{
			name:      "valid Gemini key",
			geminiKey: "AIzaTest-1234567890abcdef1234567890",
		},
		{
			name:          "invalid OpenAI key format",
			openaiKey:     "invalid-key",
			expectError:   true,
			errorContains: "invalid OPENAI_API_KEY",
		},
		{
			name:          "OpenAI key too short",
			openaiKey:     "sk-short",
			expectError:   true,
			errorContains: "too short",
		},
		{
			name:          "invalid Gemini key format",
			geminiKey:     "invalid-key",
			expectError:   true,
			errorContains: "invalid GEMINI_API_KEY",
		},
		{
			name: "empty keys are allowed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", tc.openaiKey)
			t.Setenv("GEMINI_API_KEY", tc.geminiKey)

			apiKeys, err := GetAPIKeys()

			if tc.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errorContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.openaiKey, apiKeys.OpenAI)
			assert.Equal(t, tc.geminiKey, apiKeys.Gemini)
		})
	}
}

func TestRequireAPIKey(t *testing.T) {
	keys := &APIKeys{OpenAI: "sk-1234567890abcdef1234567890abcdef"}

	key, err := RequireAPIKey(keys, "openai")
	require.NoError(t, err)
	assert.Equal(t, keys.OpenAI, key)

	_, err = RequireAPIKey(keys, "gemini")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	assert.True(t, stderrors.Is(err, apperrors.ErrMissingAPIKey))

	key, err = RequireAPIKey(keys, "whisper_cpp")
	assert.NoError(t, err)
	assert.Empty(t, key)
}

func TestValidateURL(t *testing.T) {
	assert.NoError(t, ValidateURL("https://api.openai.com/v1", "OpenAI"))
	assert.Error(t, ValidateURL("", "OpenAI"))
	assert.Error(t, ValidateURL("ftp://example.com", "OpenAI"))
}

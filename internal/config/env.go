package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	apperrors "voice-renamer/internal/app/errors"
)

// APIKeys holds all API keys loaded from environment
type APIKeys struct {
	OpenAI string
	Gemini string
}

// LoadEnv loads environment variables from .env file if it exists
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
	}
	if home, err := os.UserHomeDir(); err == nil {
		envPaths = append(envPaths, filepath.Join(home, ".v2n", ".env"))
	}

	// Look for .env file, but don't fail if not found (environment variables might be set system-wide)
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}

	return nil
}

// GetAPIKeys retrieves and validates API keys from environment variables
func GetAPIKeys() (*APIKeys, error) {
	apiKeys := &APIKeys{
		OpenAI: strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		Gemini: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
	}

	if apiKeys.OpenAI != "" {
		if err := ValidateAPIKey(apiKeys.OpenAI, "OpenAI"); err != nil {
			return nil, fmt.Errorf("invalid OPENAI_API_KEY: %w", err)
		}
	}

	if apiKeys.Gemini != "" {
		if err := ValidateAPIKey(apiKeys.Gemini, "Gemini"); err != nil {
			return nil, fmt.Errorf("invalid GEMINI_API_KEY: %w", err)
		}
	}

	return apiKeys, nil
}

// RequireAPIKey returns the key a remote provider needs, failing fast when it is missing.
func RequireAPIKey(apiKeys *APIKeys, providerName string) (string, error) {
	var key, envName string
	switch providerName {
	case "openai":
		key, envName = apiKeys.OpenAI, "OPENAI_API_KEY"
	case "gemini":
		key, envName = apiKeys.Gemini, "GEMINI_API_KEY"
	default:
		return "", nil
	}
	if key == "" {
		return "", apperrors.Wrapf(apperrors.ErrMissingAPIKey, "provider %s requires %s, set it in the environment or a .env file", providerName, envName)
	}
	return key, nil
}

// InitializeConfig loads environment and validates configuration
// This is the main entry point for configuration loading
func InitializeConfig() (*APIKeys, error) {
	if err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	apiKeys, err := GetAPIKeys()
	if err != nil {
		return nil, fmt.Errorf("failed to get API keys: %w", err)
	}

	return apiKeys, nil
}

package gemini

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const basePrompt = "Transcribe this audio accurately. Return only the transcript text, without timestamps, speaker labels or commentary."

// AudioTranscriber sends recordings inline to a Gemini model and asks for a
// verbatim transcript.
type AudioTranscriber struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewClient creates a Gemini API client. baseURL overrides the public endpoint.
func NewClient(ctx context.Context, apiKey string, baseURL string) (*genai.Client, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return client, nil
}

func NewAudioTranscriber(client *genai.Client, model string, logger *zap.Logger) *AudioTranscriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AudioTranscriber{client: client, model: model, logger: logger}
}

func (t *AudioTranscriber) Transcript(ctx context.Context, inputFilePath string, language string) (string, error) {
	mimeType, err := resolveAudioMIMEType(inputFilePath)
	if err != nil {
		return "", err
	}
	audioBytes, err := os.ReadFile(inputFilePath)
	if err != nil {
		return "", err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(
			[]*genai.Part{
				genai.NewPartFromText(buildPrompt(language)),
				genai.NewPartFromBytes(audioBytes, mimeType),
			},
			genai.RoleUser,
		),
	}

	t.logger.Debug("sending audio to Gemini",
		zap.String("file", inputFilePath),
		zap.String("model", t.model),
		zap.Int("bytes", len(audioBytes)))

	response, err := t.client.Models.GenerateContent(ctx, t.model, contents, &genai.GenerateContentConfig{})
	if err != nil {
		return "", fmt.Errorf("generateContent failed: %w", err)
	}

	// silence legitimately yields an empty transcript
	return strings.TrimSpace(response.Text()), nil
}

func (t *AudioTranscriber) ValidateConfiguration() error {
	if t.client == nil {
		return errors.New("gemini client is not configured")
	}
	if strings.TrimSpace(t.model) == "" {
		return errors.New("gemini.model is not set")
	}
	return nil
}

func (t *AudioTranscriber) HealthCheck(ctx context.Context) error {
	if _, err := t.client.Models.Get(ctx, t.model, nil); err != nil {
		return fmt.Errorf("gemini health check failed: %w", err)
	}
	return nil
}

func buildPrompt(language string) string {
	language = strings.TrimSpace(language)
	if language == "" {
		return basePrompt
	}
	return basePrompt + " The speech is in language " + language + " (ISO-639-1); do not translate it."
}

func resolveAudioMIMEType(filePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filePath)))
	if ext == "" {
		return "", errors.New("audio file extension is required to determine mime type")
	}

	switch ext {
	case ".wav":
		return "audio/wav", nil
	case ".mp3":
		return "audio/mpeg", nil
	case ".m4a", ".mp4":
		return "audio/mp4", nil
	case ".webm":
		return "audio/webm", nil
	case ".ogg":
		return "audio/ogg", nil
	case ".flac":
		return "audio/flac", nil
	case ".aac":
		return "audio/aac", nil
	}

	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		return "", errors.New("unsupported audio file extension: " + ext)
	}
	mimeType = strings.TrimSpace(strings.Split(mimeType, ";")[0])
	if !strings.HasPrefix(mimeType, "audio/") {
		return "", errors.New("unsupported audio mime type: " + mimeType)
	}
	return mimeType, nil
}

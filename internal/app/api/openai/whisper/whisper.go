package whisper

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	client *openai.Client
	model  string
	prompt string
	logger *zap.Logger
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client, model string, prompt string, logger *zap.Logger) *RemoteTranscriber {
	if model == "" {
		model = openai.Whisper1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RemoteTranscriber{client: client, model: model, prompt: prompt, logger: logger}
}

// Transcript uses the OpenAI API for remote transcription.
func (rt *RemoteTranscriber) Transcript(ctx context.Context, inputFilePath string, language string) (string, error) {
	req := openai.AudioRequest{
		Model:    rt.model,
		FilePath: inputFilePath,
		Language: language,
		Prompt:   rt.prompt,
	}

	rt.logger.Debug("sending audio to OpenAI",
		zap.String("file", inputFilePath),
		zap.String("model", rt.model),
		zap.String("language", language))

	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("createTranscription failed: %w", err)
	}

	return strings.TrimSpace(resp.Text), nil
}

// ValidateConfiguration validates the provider configuration
func (rt *RemoteTranscriber) ValidateConfiguration() error {
	if rt.client == nil {
		return fmt.Errorf("openai client is not configured")
	}
	return nil
}

// HealthCheck lists the available models to verify the key and endpoint
func (rt *RemoteTranscriber) HealthCheck(ctx context.Context) error {
	if _, err := rt.client.ListModels(ctx); err != nil {
		return fmt.Errorf("openai health check failed: %w", err)
	}
	return nil
}

package openai

import (
	"github.com/sashabaranov/go-openai"
)

// NewClient returns an OpenAI API client. baseURL overrides the public
// endpoint, for proxies and OpenAI-compatible servers.
func NewClient(apiKey string, baseURL string) *openai.Client {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(clientConfig)
}

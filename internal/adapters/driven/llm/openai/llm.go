// Package openai provides an answer generator adapter using the OpenAI
// API via the go-openai client.
package openai

import (
	"context"
	"fmt"
	"strings"

	gopenai "github.com/sashabaranov/go-openai"

	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure GeneratorService implements the interface.
var _ driven.GeneratorService = (*GeneratorService)(nil)

// DefaultModel is the default generation model.
const DefaultModel = "gpt-4o-mini"

// Config holds configuration for the OpenAI generator service.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL overrides the API base URL for Azure OpenAI or compatible
	// APIs. Empty means the public endpoint.
	BaseURL string

	// Model is the generation model to use (default: gpt-4o-mini).
	Model string
}

// GeneratorService produces answer text using the OpenAI API.
type GeneratorService struct {
	client *gopenai.Client
	model  string
}

// NewGeneratorService creates a new OpenAI generator service.
func NewGeneratorService(cfg Config) (*GeneratorService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	clientCfg := gopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &GeneratorService{
		client: gopenai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}, nil
}

// Generate produces text completion from a prompt.
func (s *GeneratorService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	req := gopenai.ChatCompletionRequest{
		Model: s.model,
		Messages: []gopenai.ChatCompletionMessage{
			{Role: gopenai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: float32(opts.Temperature),
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = opts.MaxTokens
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai: create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no response choices returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// ModelName returns the name of the generation model being used.
func (s *GeneratorService) ModelName() string {
	return s.model
}

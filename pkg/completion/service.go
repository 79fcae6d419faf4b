// Package completion provides non-streaming LLM chat completions.
//
// Supports two providers:
//   - OpenAI (api.openai.com)
//   - OpenRouter (openrouter.ai, OpenAI-compatible API)
//
// Calls are rate-limited and bounded by a per-request timeout; the
// caller owns any retry policy.
package completion

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// Provider type for LLM providers.
type Provider string

const (
	ProviderOpenAI     Provider = "openai"
	ProviderOpenRouter Provider = "openrouter"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// ErrNotConfigured is returned when the selected provider has no credentials.
var ErrNotConfigured = errors.New("completion: provider not configured")

// Config holds completion settings.
type Config struct {
	Provider         Provider
	OpenAIAPIKey     string
	OpenAIModel      string
	OpenRouterAPIKey string
	OpenRouterModel  string

	// Timeout bounds a single request. Zero means 60s.
	Timeout time.Duration
	// RequestsPerSecond throttles outbound calls. Zero means 1.
	RequestsPerSecond float64
}

// Service handles non-streaming LLM completions.
type Service struct {
	config  Config
	client  *openai.Client
	limiter *rate.Limiter
}

// NewService creates a completion service for the configured provider.
func NewService(config Config) *Service {
	if config.Timeout <= 0 {
		config.Timeout = 60 * time.Second
	}
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = 1
	}
	if config.OpenAIModel == "" {
		config.OpenAIModel = openai.GPT4o
	}
	if config.OpenRouterModel == "" {
		config.OpenRouterModel = "openai/gpt-4o"
	}

	s := &Service{
		config:  config,
		limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1),
	}

	switch config.Provider {
	case ProviderOpenAI:
		if config.OpenAIAPIKey != "" {
			s.client = openai.NewClient(config.OpenAIAPIKey)
		}
	case ProviderOpenRouter:
		if config.OpenRouterAPIKey != "" {
			cfg := openai.DefaultConfig(config.OpenRouterAPIKey)
			cfg.BaseURL = openRouterBaseURL
			s.client = openai.NewClientWithConfig(cfg)
		}
	}

	return s
}

// IsConfigured checks if the current provider has valid credentials.
func (s *Service) IsConfigured() bool {
	switch s.config.Provider {
	case ProviderOpenAI:
		return s.config.OpenAIAPIKey != ""
	case ProviderOpenRouter:
		return s.config.OpenRouterAPIKey != ""
	default:
		return false
	}
}

// Model returns the model for the current provider.
func (s *Service) Model() string {
	switch s.config.Provider {
	case ProviderOpenAI:
		return s.config.OpenAIModel
	case ProviderOpenRouter:
		return s.config.OpenRouterModel
	default:
		return ""
	}
}

// Complete makes a non-streaming completion request and returns the
// full response text.
func (s *Service) Complete(ctx context.Context, userPrompt, systemPrompt string) (string, error) {
	if !s.IsConfigured() || s.client == nil {
		return "", ErrNotConfigured
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("completion: rate limiter: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model:       s.Model(),
		Temperature: 0.1,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("completion: %s request failed: %w", s.config.Provider, err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion: empty response")
	}

	return resp.Choices[0].Message.Content, nil
}

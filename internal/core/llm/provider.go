package llm

import (
	"context"
	"fmt"
)

// LLMProvider generates a completion for a system prompt and one user message.
type LLMProvider interface {
	GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error)
	GetProviderName() string
}

// ProviderConfig describes how to build a provider.
type ProviderConfig struct {
	OpenAIKey   string
	BaseURL     string // optional OpenAI-compatible endpoint
	Model       string
	Temperature float32
	MaxTokens   int
}

// NewProvider builds the OpenAI provider. An empty key is an error so callers
// can leave the fallback disabled.
func NewProvider(cfg *ProviderConfig) (LLMProvider, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	return NewOpenAIProvider(cfg), nil
}

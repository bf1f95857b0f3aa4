package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyReply means the model returned nothing worth showing a visitor
var ErrEmptyReply = errors.New("empty reply from model")

// support answers stay short and close to the FAQ wording
const (
	defaultModel       = "gpt-4o-mini"
	defaultTemperature = 0.3
	defaultMaxTokens   = 300
)

type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewOpenAIProvider talks to the OpenAI API, or to any compatible endpoint
// when cfg.BaseURL is set.
func NewOpenAIProvider(cfg *ProviderConfig) *OpenAIProvider {
	clientCfg := openai.DefaultConfig(cfg.OpenAIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	p := &OpenAIProvider{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
	if p.model == "" {
		p.model = defaultModel
	}
	if p.temperature == 0 {
		p.temperature = defaultTemperature
	}
	if p.maxTokens == 0 {
		p.maxTokens = defaultMaxTokens
	}
	return p
}

func (p *OpenAIProvider) GetProviderName() string {
	return "OpenAI"
}

// GenerateResponse returns the first usable choice, trimmed. Filtered or
// blank choices are skipped and ErrEmptyReply is returned when none is left.
func (p *OpenAIProvider) GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
		N:           1,
	})
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}

	for _, choice := range resp.Choices {
		if choice.FinishReason == openai.FinishReasonContentFilter {
			continue
		}
		if text := strings.TrimSpace(choice.Message.Content); text != "" {
			return text, nil
		}
	}
	return "", ErrEmptyReply
}

package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Service wraps an LLM provider for dependency injection
type Service struct {
	provider LLMProvider
	timeout  time.Duration
}

// NewService returns nil when no provider can be built, which leaves the
// chatbot on its static fallback.
func NewService(cfg *ProviderConfig) *Service {
	provider, err := NewProvider(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("LLM fallback disabled")
		return nil
	}

	log.Info().Str("provider", provider.GetProviderName()).Str("model", cfg.Model).Msg("LLM fallback enabled")
	return NewServiceWithProvider(provider)
}

// NewServiceWithProvider creates service with custom provider (for testing)
func NewServiceWithProvider(provider LLMProvider) *Service {
	return &Service{provider: provider, timeout: 15 * time.Second}
}

// GenerateResponse generates an AI response bounded by the service timeout.
func (s *Service) GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if s == nil || s.provider == nil {
		return "", fmt.Errorf("llm service not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.provider.GenerateResponse(ctx, systemPrompt, userMessage)
}

// GetProviderName returns current provider name
func (s *Service) GetProviderName() string {
	if s == nil || s.provider == nil {
		return "none"
	}
	return s.provider.GetProviderName()
}

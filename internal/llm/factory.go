package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"remindme-service/internal/config"
)

// NewFromConfig builds the configured provider client. Without a key it
// returns a generator that always fails with ErrMissingAPIKey, so message
// generation degrades to the fallback instead of refusing to start.
func NewFromConfig(cfg *config.Config, log *zap.Logger) (TextGenerator, error) {
	key := cfg.LLMKey()
	if key == "" {
		return unconfigured{provider: cfg.LLMProvider}, nil
	}
	switch cfg.LLMProvider {
	case "gemini":
		return NewGeminiClient(GeminiConfig{
			APIKey: key, Model: cfg.LLMModel, BaseURL: cfg.LLMBaseURL, Timeout: cfg.LLMTimeout,
		}, log), nil
	case "openai":
		return NewOpenAIClient(OpenAIConfig{
			APIKey: key, Model: cfg.LLMModel, BaseURL: cfg.LLMBaseURL, Timeout: cfg.LLMTimeout,
		}, log), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.LLMProvider)
	}
}

type unconfigured struct {
	provider string
}

func (u unconfigured) Generate(context.Context, Request) (string, error) {
	return "", fmt.Errorf("%s: %w", u.provider, ErrMissingAPIKey)
}

func (u unconfigured) GetModel() string {
	return "none"
}

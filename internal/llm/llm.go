package llm

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/codescribe/server/internal/config"
)

// creates a generator for the configured provider
func New(ctx context.Context, cfg Config) (TextGenerator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%s API key is required", cfg.Provider)
	}

	if cfg.Model == "" {
		cfg.Model = config.DefaultModel(string(cfg.Provider))
	}

	switch cfg.Provider {
	case ProviderOpenAI, "":
		cfg.Model = firstNonEmpty(cfg.Model, config.DefaultModel(config.ProviderOpenAI))
		return NewOpenAIGenerator(cfg), nil
	case ProviderAnthropic:
		return NewAnthropicGenerator(cfg), nil
	case ProviderGemini:
		return NewGeminiGenerator(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}

// creates the process-wide generator from loaded configuration.
// returns a nil generator without error when no credential is configured (demo mode).
func NewFromConfig(ctx context.Context, cfg *config.Config) (TextGenerator, error) {
	if !cfg.AIEnabled() {
		return nil, nil
	}

	return New(ctx, Config{
		Provider: Provider(cfg.Provider),
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		BaseURL:  cfg.BaseURL,
		Timeout:  cfg.LLMTimeout,
	})
}

// creates a generator for a credential entered during an interactive session,
// reusing the process configuration for everything but the key
func NewSessionGenerator(ctx context.Context, cfg *config.Config, apiKey string) (TextGenerator, error) {
	return New(ctx, Config{
		Provider: Provider(cfg.Provider),
		APIKey:   strings.TrimSpace(apiKey),
		Model:    cfg.Model,
		BaseURL:  cfg.BaseURL,
		Timeout:  cfg.LLMTimeout,
	})
}

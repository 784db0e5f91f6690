package main

import (
	"context"
	"fmt"

	"codeberg.org/codescribe/server/internal/config"
	"codeberg.org/codescribe/server/internal/llm"
	"codeberg.org/codescribe/server/internal/logger"
	"codeberg.org/codescribe/server/internal/scribe"
)

// creates the completion backend and the dispatcher shared by every adapter
func InitializeServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	generator, err := llm.NewFromConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	dispatcher := scribe.New(scribe.Config{
		Generator: generator,
		Model:     cfg.Model,
		Timeout:   cfg.LLMTimeout,
	})

	if dispatcher.AIEnabled() {
		logger.Info("AI mode enabled",
			"provider", cfg.Provider,
			"model", dispatcher.Model(),
			"key_source", cfg.KeySource,
		)
	} else {
		logger.Warn("no API key configured, running in demo mode",
			"provider", cfg.Provider,
			"key_var", config.APIKeyVar(cfg.Provider),
		)
	}

	return &Services{
		Dispatcher: dispatcher,
	}, nil
}

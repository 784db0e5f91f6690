package llm

import (
	"context"
	"time"
)

// represents different LLM providers
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
)

// completes a single system + user prompt pair
type TextGenerator interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	Model() string
	Provider() Provider
}

// one request to the completion backend. built fresh per call, never stored.
type CompletionRequest struct {
	SystemInstruction string
	UserPrompt        string
	Model             string  // empty means the generator's configured model
	Temperature       float32 // sent as-is, including 0
	MaxTokens         int     // 0 means provider default
}

type CompletionResponse struct {
	Text  string
	Model string
	Usage Usage
}

type Usage struct {
	InputTokens  int
	OutputTokens int
}

// holds configuration for a generator
type Config struct {
	Provider Provider
	APIKey   string
	Model    string
	BaseURL  string        // optional endpoint override
	Timeout  time.Duration // 0 means defaultTimeout
}

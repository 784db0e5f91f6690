package config

import (
	"strings"
	"time"
)

// completion providers understood by internal/llm
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// where the credential was found
const (
	KeySourceNone    = ""
	KeySourceSecrets = "secrets"
	KeySourceEnv     = "env"
)

type Config struct {
	Provider    string
	Model       string
	APIKey      string
	KeySource   string
	BaseURL     string // empty means the provider's public endpoint
	LLMTimeout  time.Duration
	SecretsFile string

	Port           string
	Environment    string
	AllowedOrigins []string
	RateLimit      string   // ulule limiter format, e.g. "30-M"
	TrustedProxies []string // nil means client IP is always the socket peer
}

// reports whether a usable credential is configured
func (c *Config) AIEnabled() bool {
	return c != nil && strings.TrimSpace(c.APIKey) != ""
}

// secrets store contents, keyed like the environment variables they shadow
type Secrets map[string]string

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/ulule/limiter/v3"
)

const (
	defaultProvider    = ProviderOpenAI
	defaultSecretsFile = ".secrets.yaml"
	defaultLLMTimeout  = 60 * time.Second
	defaultPort        = "8080"
	defaultRateLimit   = "30-M"
)

var defaultModels = map[string]string{
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-3-5-haiku-latest",
	ProviderGemini:    "gemini-2.0-flash",
}

var apiKeyVars = map[string]string{
	ProviderOpenAI:    "OPENAI_API_KEY",
	ProviderAnthropic: "ANTHROPIC_API_KEY",
	ProviderGemini:    "GEMINI_API_KEY",
}

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	provider := strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER")))
	if provider == "" {
		provider = defaultProvider
	}

	if _, ok := defaultModels[provider]; !ok {
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", provider)
	}

	model := os.Getenv("LLM_MODEL")
	if model == "" && provider == ProviderOpenAI {
		model = os.Getenv("OPENAI_MODEL")
	}

	if model == "" {
		model = defaultModels[provider]
	}

	secretsFile := os.Getenv("SECRETS_FILE")
	if secretsFile == "" {
		secretsFile = defaultSecretsFile
	}

	secrets, err := LoadSecrets(secretsFile)
	if err != nil {
		return nil, err
	}

	apiKey, keySource := LookupAPIKey(provider, secrets)

	timeout := defaultLLMTimeout
	if raw := os.Getenv("LLM_TIMEOUT"); raw != "" {
		timeout, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid LLM_TIMEOUT: %w", err)
		}

		if timeout <= 0 {
			return nil, fmt.Errorf("LLM_TIMEOUT must be positive, got %s", raw)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	rateLimit := os.Getenv("RATE_LIMIT")
	if rateLimit == "" {
		rateLimit = defaultRateLimit
	}

	if _, err := limiter.NewRateFromFormatted(rateLimit); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT %q: %w", rateLimit, err)
	}

	return &Config{
		Provider:       provider,
		Model:          model,
		APIKey:         apiKey,
		KeySource:      keySource,
		BaseURL:        os.Getenv("LLM_BASE_URL"),
		LLMTimeout:     timeout,
		SecretsFile:    secretsFile,
		Port:           port,
		Environment:    environment,
		AllowedOrigins: splitOrigins(os.Getenv("CORS_ALLOWED_ORIGINS")),
		RateLimit:      rateLimit,
		TrustedProxies: splitList(os.Getenv("TRUSTED_PROXIES")),
	}, nil
}

// returns the environment variable holding the provider's credential
func APIKeyVar(provider string) string {
	return apiKeyVars[provider]
}

// returns the default model for a provider
func DefaultModel(provider string) string {
	return defaultModels[provider]
}

// resolves the credential: secrets store first, then the environment.
// blank values are skipped so an empty secret does not mask the env var.
func LookupAPIKey(provider string, secrets Secrets) (string, string) {
	name := apiKeyVars[provider]
	if name == "" {
		return "", KeySourceNone
	}

	if key := strings.TrimSpace(secrets[name]); key != "" {
		return key, KeySourceSecrets
	}

	if key := strings.TrimSpace(os.Getenv(name)); key != "" {
		return key, KeySourceEnv
	}

	return "", KeySourceNone
}

func splitOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{"*"}
	}

	return splitList(raw)
}

// comma separated values with blanks dropped; nil when nothing is left
func splitList(raw string) []string {
	var values []string
	for _, value := range strings.Split(raw, ",") {
		if value = strings.TrimSpace(value); value != "" {
			values = append(values, value)
		}
	}

	return values
}

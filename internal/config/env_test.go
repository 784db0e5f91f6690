package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clears every variable the loader reads so the host environment cannot leak in
func clearEnv(t *testing.T) {
	t.Helper()

	for _, name := range []string{
		"LLM_PROVIDER", "LLM_MODEL", "OPENAI_MODEL", "OPENAI_API_KEY", "ANTHROPIC_API_KEY",
		"GEMINI_API_KEY", "LLM_BASE_URL", "LLM_TIMEOUT", "PORT", "ENVIRONMENT",
		"CORS_ALLOWED_ORIGINS", "RATE_LIMIT", "TRUSTED_PROXIES",
	} {
		t.Setenv(name, "")
	}

	t.Setenv("SECRETS_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
}

func TestLoadEnvironmentVariables_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadEnvironmentVariables()

	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, KeySourceNone, cfg.KeySource)
	assert.False(t, cfg.AIEnabled())
	assert.Equal(t, 60*time.Second, cfg.LLMTimeout)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "30-M", cfg.RateLimit)
	assert.Nil(t, cfg.TrustedProxies)
}

func TestLoadEnvironmentVariables_OpenAIModelFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_MODEL", "gpt-4.1")
	t.Setenv("OPENAI_API_KEY", "  sk-test  ")

	cfg, err := LoadEnvironmentVariables()

	require.NoError(t, err)
	assert.Equal(t, "gpt-4.1", cfg.Model)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, KeySourceEnv, cfg.KeySource)
	assert.True(t, cfg.AIEnabled())
}

func TestLoadEnvironmentVariables_ProviderDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("OPENAI_MODEL", "ignored-for-gemini")
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := LoadEnvironmentVariables()

	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.Equal(t, "g-key", cfg.APIKey)
}

func TestLoadEnvironmentVariables_BlankKeyIsDemoMode(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "   ")

	cfg, err := LoadEnvironmentVariables()

	require.NoError(t, err)
	assert.False(t, cfg.AIEnabled())
}

func TestLoadEnvironmentVariables_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"provider", "LLM_PROVIDER", "cohere", "unsupported LLM_PROVIDER"},
		{"timeout format", "LLM_TIMEOUT", "soon", "invalid LLM_TIMEOUT"},
		{"timeout sign", "LLM_TIMEOUT", "-5s", "must be positive"},
		{"rate limit", "RATE_LIMIT", "lots", "invalid RATE_LIMIT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadEnvironmentVariables()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadEnvironmentVariables_Origins(t *testing.T) {
	clearEnv(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.dev, ,https://b.dev ")

	cfg, err := LoadEnvironmentVariables()

	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, cfg.AllowedOrigins)
}

func TestLoadEnvironmentVariables_TrustedProxies(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1,")

	cfg, err := LoadEnvironmentVariables()

	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxies)
}

func TestLookupAPIKey_SecretsBeforeEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "from-env")

	key, source := LookupAPIKey(ProviderOpenAI, Secrets{"OPENAI_API_KEY": "from-secrets"})
	assert.Equal(t, "from-secrets", key)
	assert.Equal(t, KeySourceSecrets, source)

	key, source = LookupAPIKey(ProviderOpenAI, Secrets{"OPENAI_API_KEY": " "})
	assert.Equal(t, "from-env", key)
	assert.Equal(t, KeySourceEnv, source)

	key, source = LookupAPIKey("unknown", Secrets{})
	assert.Empty(t, key)
	assert.Equal(t, KeySourceNone, source)
}

func TestLoadSecrets(t *testing.T) {
	dir := t.TempDir()

	secrets, err := LoadSecrets(filepath.Join(dir, "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, secrets)

	path := filepath.Join(dir, "secrets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ANTHROPIC_API_KEY: sk-ant\n"), 0o600))

	secrets, err = LoadSecrets(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-ant", secrets["ANTHROPIC_API_KEY"])

	require.NoError(t, os.WriteFile(path, []byte("- a\n- b\n"), 0o600))
	_, err = LoadSecrets(path)
	assert.Error(t, err)
}

func TestLoadEnvironmentVariables_SecretsFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "secrets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("OPENAI_API_KEY: sk-secret\n"), 0o600))
	t.Setenv("SECRETS_FILE", path)
	t.Setenv("OPENAI_API_KEY", "sk-env")

	cfg, err := LoadEnvironmentVariables()

	require.NoError(t, err)
	assert.Equal(t, "sk-secret", cfg.APIKey)
	assert.Equal(t, KeySourceSecrets, cfg.KeySource)
}

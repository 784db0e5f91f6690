package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// reads the optional YAML secrets store. a missing file yields an empty store.
//
//	OPENAI_API_KEY: sk-...
//	GEMINI_API_KEY: ...
func LoadSecrets(path string) (Secrets, error) {
	if path == "" {
		return Secrets{}, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from operator config
	if errors.Is(err, fs.ErrNotExist) {
		return Secrets{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read secrets file: %w", err)
	}

	secrets := Secrets{}
	if err := yaml.Unmarshal(data, &secrets); err != nil {
		return nil, fmt.Errorf("failed to parse secrets file %s: %w", path, err)
	}

	return secrets, nil
}

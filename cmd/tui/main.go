package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"codeberg.org/codescribe/server/internal/config"
	"codeberg.org/codescribe/server/internal/llm"
	"codeberg.org/codescribe/server/internal/logger"
	"codeberg.org/codescribe/server/internal/scribe"
	"codeberg.org/codescribe/server/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	// the screen belongs to bubbletea; logs go to a file or nowhere
	if path := os.Getenv("CODESCRIBE_LOG_FILE"); path != "" {
		f, err := tea.LogToFile(path, "codescribe")
		if err != nil {
			fmt.Printf("error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close() //nolint:errcheck

		logger.SetOutput(f)
	} else {
		logger.SetOutput(io.Discard)
	}

	backend, err := newBackend()
	if err != nil {
		fmt.Printf("error starting codescribe: %v\n", err)
		os.Exit(1)
	}

	app := tui.NewApp(backend)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("error running codescribe: %v\n", err)
		os.Exit(1)
	}
}

// a running server when CODESCRIBE_API_ENDPOINT is set, otherwise the dispatcher in-process
func newBackend() (tui.Backend, error) {
	ctx := context.Background()

	if endpoint := os.Getenv("CODESCRIBE_API_ENDPOINT"); endpoint != "" {
		client := tui.NewAPIClient(endpoint)

		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		if err := client.Connect(connectCtx); err != nil {
			return nil, fmt.Errorf("failed to reach %s: %w", endpoint, err)
		}

		return client, nil
	}

	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	generator, err := llm.NewFromConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	dispatcher := scribe.New(scribe.Config{
		Generator: generator,
		Model:     cfg.Model,
		Timeout:   cfg.LLMTimeout,
	})

	return tui.NewLocalBackend(dispatcher, func(apiKey string) (llm.TextGenerator, error) {
		return llm.NewSessionGenerator(ctx, cfg, apiKey)
	}), nil
}

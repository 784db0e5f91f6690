package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"codeberg.org/codescribe/server/internal/config"
	"codeberg.org/codescribe/server/internal/llm"
	"codeberg.org/codescribe/server/internal/scribe"
)

const (
	exitOK         = 0
	exitFailure    = 1
	exitInputError = 2
)

func main() {
	a := &app{
		stdin:         os.Stdin,
		stdout:        os.Stdout,
		stderr:        os.Stderr,
		newDispatcher: newDispatcher,
	}

	os.Exit(a.run(os.Args[1:]))
}

// builds the dispatcher from environment configuration; model overrides the configured one when set
func newDispatcher(ctx context.Context, model string) (*scribe.Dispatcher, error) {
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if model != "" {
		cfg.Model = model
	}

	generator, err := llm.NewFromConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return scribe.New(scribe.Config{
		Generator: generator,
		Model:     cfg.Model,
		Timeout:   cfg.LLMTimeout,
	}), nil
}

// executes the command line and maps the outcome to an exit code
func (a *app) run(args []string) int {
	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.Execute()
	if err == nil {
		return exitOK
	}

	fmt.Fprintf(a.stderr, "error: %v\n", err) //nolint:errcheck

	if scribe.IsInputError(err) {
		return exitInputError
	}

	return exitFailure
}

type app struct {
	stdin         io.Reader
	stdout        io.Writer
	stderr        io.Writer
	newDispatcher func(ctx context.Context, model string) (*scribe.Dispatcher, error)
}

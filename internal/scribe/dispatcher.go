package scribe

import (
	"context"
	"errors"
	"strings"
	"time"

	"codeberg.org/codescribe/server/internal/llm"
	"codeberg.org/codescribe/server/internal/logger"
)

const (
	// low and fixed to bias toward repeatable output
	Temperature = float32(0.2)

	defaultTimeout = 60 * time.Second
)

var errEmptyResponse = errors.New("backend returned no response")

func New(cfg Config) *Dispatcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	model := cfg.Model
	if model == "" && cfg.Generator != nil {
		model = cfg.Generator.Model()
	}

	return &Dispatcher{
		generator: cfg.Generator,
		model:     model,
		timeout:   timeout,
	}
}

// returns a copy of the dispatcher that calls gen instead, keeping model and timeout.
// used for credentials entered during an interactive session.
func (d *Dispatcher) WithGenerator(gen llm.TextGenerator) *Dispatcher {
	clone := *d
	clone.generator = gen

	if clone.model == "" && gen != nil {
		clone.model = gen.Model()
	}

	return &clone
}

// reports whether calls reach a completion backend rather than the fallback
func (d *Dispatcher) AIEnabled() bool {
	return d.generator != nil
}

func (d *Dispatcher) Model() string {
	return d.model
}

// bound on a single backend call
func (d *Dispatcher) Timeout() time.Duration {
	return d.timeout
}

// validates input, builds the prompt and forwards it to the backend.
// only input errors are returned; backend failures come back as a degraded result.
func (d *Dispatcher) Run(ctx context.Context, action, code string) (Result, error) {
	req, err := NewActionRequest(action, code)
	if err != nil {
		return Result{}, err
	}

	return d.Dispatch(ctx, req), nil
}

// runs an already validated request
func (d *Dispatcher) Dispatch(ctx context.Context, req ActionRequest) Result {
	prompt := BuildPrompt(req)

	if d.generator == nil {
		logger.Debug("no credential configured, using demo output", "action", req.Action)
		return Result{OK: true, Text: Fallback(prompt.User), Demo: true, Model: d.model}
	}

	text, err := d.complete(ctx, prompt)
	if err != nil {
		logger.Warn("completion failed, degrading to demo output",
			"action", req.Action,
			"provider", d.generator.Provider(),
			"model", d.model,
			"error", err,
		)

		return Result{OK: true, Text: Degrade(prompt.User, err), Demo: true, Model: d.model}
	}

	return Result{OK: true, Text: text, Model: d.model}
}

// the single outbound call. any error returned is a *BackendError.
func (d *Dispatcher) complete(ctx context.Context, prompt Prompt) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	resp, err := d.generator.Complete(ctx, llm.CompletionRequest{
		SystemInstruction: prompt.System,
		UserPrompt:        prompt.User,
		Model:             d.model,
		Temperature:       Temperature,
	})
	if err != nil {
		return "", &BackendError{Provider: d.generator.Provider(), Err: err}
	}

	if resp == nil {
		return "", &BackendError{Provider: d.generator.Provider(), Err: errEmptyResponse}
	}

	return strings.TrimSpace(resp.Text), nil
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/codescribe/server/internal/llm"
	"codeberg.org/codescribe/server/internal/scribe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	prompts []string
}

func (s *stubGenerator) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	s.prompts = append(s.prompts, req.UserPrompt)
	return &llm.CompletionResponse{Text: "  answer for " + req.Model + "  ", Model: req.Model}, nil
}

func (s *stubGenerator) Model() string          { return "stub-model" }
func (s *stubGenerator) Provider() llm.Provider { return llm.ProviderOpenAI }

type harness struct {
	app    *app
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	gen    *stubGenerator
	model  string
	built  int
}

func newHarness(stdin string, withGenerator bool) *harness {
	h := &harness{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		gen:    &stubGenerator{},
	}

	h.app = &app{
		stdin:  strings.NewReader(stdin),
		stdout: h.stdout,
		stderr: h.stderr,
		newDispatcher: func(_ context.Context, model string) (*scribe.Dispatcher, error) {
			h.built++
			h.model = model

			cfg := scribe.Config{Model: model}
			if withGenerator {
				cfg.Generator = h.gen
			}

			return scribe.New(cfg), nil
		},
	}

	return h
}

func TestRun_StdinInput(t *testing.T) {
	h := newHarness("def add(a, b): return a + b", true)

	code := h.app.run([]string{"Tests"})

	require.Equal(t, exitOK, code, h.stderr.String())
	assert.Equal(t, "answer for stub-model\n", h.stdout.String())
	require.Len(t, h.gen.prompts, 1)
	assert.Contains(t, h.gen.prompts[0], "Write pytest unit tests")
}

func TestRun_FileInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "add.js")
	require.NoError(t, os.WriteFile(path, []byte("function add(a, b) { return a + b }"), 0o600))

	h := newHarness("", true)

	code := h.app.run([]string{"tests", path, "--model", "gpt-4o"})

	require.Equal(t, exitOK, code, h.stderr.String())
	assert.Equal(t, "gpt-4o", h.model)
	assert.Equal(t, "answer for gpt-4o\n", h.stdout.String())
	assert.Contains(t, h.gen.prompts[0], "Write Jest unit tests")
}

func TestRun_MissingFile(t *testing.T) {
	h := newHarness("", true)

	code := h.app.run([]string{"explain", filepath.Join(t.TempDir(), "missing.py")})

	assert.Equal(t, exitFailure, code)
	assert.Contains(t, h.stderr.String(), "failed to read")
	assert.Zero(t, h.built)
}

func TestRun_InputErrors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{"blank code", []string{"explain"}, "   \n", "no code received"},
		{"unknown action", []string{"translate"}, "x = 1", `unknown action "translate"`},
		{"unknown action with blank code", []string{"translate"}, "", "unknown action"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(tt.stdin, true)

			code := h.app.run(tt.args)

			assert.Equal(t, exitInputError, code)
			assert.Contains(t, h.stderr.String(), tt.want)
			assert.Empty(t, h.stdout.String())
			assert.Empty(t, h.gen.prompts)
		})
	}
}

func TestRun_ReadmeWithoutCode(t *testing.T) {
	h := newHarness("", true)

	code := h.app.run([]string{"readme"})

	require.Equal(t, exitOK, code, h.stderr.String())
	require.Len(t, h.gen.prompts, 1)
	assert.Contains(t, h.gen.prompts[0], scribe.ReadmePlaceholder)
}

func TestRun_DemoModeJSON(t *testing.T) {
	h := newHarness("x = 1", false)

	code := h.app.run([]string{"audit", "--json"})
	require.Equal(t, exitOK, code, h.stderr.String())

	var result scribe.Result
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &result))

	assert.True(t, result.OK)
	assert.True(t, result.Demo)
	assert.True(t, strings.HasPrefix(result.Text, scribe.DemoHeader))
}

func TestRun_DispatcherError(t *testing.T) {
	h := newHarness("x = 1", true)
	h.app.newDispatcher = func(context.Context, string) (*scribe.Dispatcher, error) {
		return nil, errors.New("failed to load configuration: unsupported LLM_PROVIDER")
	}

	code := h.app.run([]string{"explain"})

	assert.Equal(t, exitFailure, code)
	assert.Contains(t, h.stderr.String(), "unsupported LLM_PROVIDER")
}

func TestRun_Actions(t *testing.T) {
	h := newHarness("", true)

	code := h.app.run([]string{"actions"})

	require.Equal(t, exitOK, code)
	assert.Equal(t, "explain\ntests\ndocs\naudit\nreadme\n", h.stdout.String())
}

func TestRun_NoArgs(t *testing.T) {
	h := newHarness("", true)

	code := h.app.run(nil)

	assert.Equal(t, exitFailure, code)
	assert.Contains(t, h.stderr.String(), "arg")
}

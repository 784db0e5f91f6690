package scribe

import (
	"time"

	"codeberg.org/codescribe/server/internal/llm"
)

// one of the supported code transformation requests
type Action string

const (
	ActionExplain Action = "explain"
	ActionTests   Action = "tests"
	ActionDocs    Action = "docs"
	ActionAudit   Action = "audit"
	ActionReadme  Action = "readme"
)

// validated input for a single dispatch
type ActionRequest struct {
	Action Action
	Code   string
}

// system instruction and user prompt built for one action
type Prompt struct {
	System string
	User   string
}

// target language and framework picked for test generation
type TestTarget struct {
	Language  string
	Framework string
}

// outcome of a dispatch. Demo is set whenever Text came from the fallback path.
type Result struct {
	OK    bool   `json:"ok"`
	Text  string `json:"text"`
	Demo  bool   `json:"demo"`
	Model string `json:"model,omitempty"`
}

// holds dispatcher construction parameters
type Config struct {
	Generator llm.TextGenerator // nil routes every call to the fallback
	Model     string            // overrides the generator's model when set
	Timeout   time.Duration     // bound on the backend call, 0 means defaultTimeout
}

// maps actions to prompts and forwards them to the completion backend.
// immutable after construction; safe for concurrent use.
type Dispatcher struct {
	generator llm.TextGenerator
	model     string
	timeout   time.Duration
}

package tui

import (
	"context"
	"net/http"
	"sync"

	"codeberg.org/codescribe/server/internal/llm"
	"codeberg.org/codescribe/server/internal/scribe"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
)

// represents the current state of the TUI
type AppState int

const (
	StateWelcome AppState = iota
	StateEditor
)

// runs actions for the editor, either in-process or against a remote server
type Backend interface {
	Run(ctx context.Context, action, code string) (scribe.Result, error)
	AIEnabled() bool
	Model() string
	Name() string
}

// implemented by backends that accept a credential typed into the running program
type KeySetter interface {
	// reports whether a credential came from secrets or the environment
	Configured() bool
	SetKey(apiKey string) error
}

// builds a generator from a key entered in the TUI
type GeneratorFactory func(apiKey string) (llm.TextGenerator, error)

// runs the dispatcher in this process
type LocalBackend struct {
	base   *scribe.Dispatcher
	newGen GeneratorFactory

	mu      sync.RWMutex
	current *scribe.Dispatcher
	session bool
}

// talks to a running server over POST /analyze
type APIClient struct {
	endpoint   string
	httpClient *http.Client
	model      string
	aiEnabled  bool
}

// main TUI application model
type Model struct {
	state   AppState
	width   int
	height  int
	err     error
	welcome *Welcome
	editor  *EditorModel
}

// code editor with action triggers and an output pane
type EditorModel struct {
	backend  Backend
	code     textarea.Model
	keyInput textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	width  int
	height int

	markdown  string // last output before rendering
	inlineErr string
	notice    string
	pending   scribe.Action
	demo      bool
	fetching  bool
	keyEntry  bool
}

// welcome screen model
type Welcome struct {
	backend  Backend
	input    string
	commands []Command
}

// represents an available TUI command
type Command struct {
	Name        string
	Description string
}

// sent when an error occurs
type ErrorMsg struct {
	err error
}

// sent to transition to the editor state
type EnterEditorMsg struct{}

// sent when an action completes
type ResultMsg struct {
	action scribe.Action
	code   string
	result scribe.Result
}

// sent when an action cannot be run
type ActionErrorMsg struct {
	action scribe.Action
	err    error
}

package tui

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/codescribe/server/internal/logger"
	"codeberg.org/codescribe/server/internal/scribe"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultWidth  = 100
	defaultHeight = 30

	// header, status, error and help lines around the panes
	chromeHeight = 8
)

// action triggers, in display order
var actionKeys = []struct {
	key    string
	action scribe.Action
	label  string
}{
	{"ctrl+e", scribe.ActionExplain, "Explain"},
	{"ctrl+t", scribe.ActionTests, "Tests"},
	{"ctrl+d", scribe.ActionDocs, "Docstrings"},
	{"ctrl+a", scribe.ActionAudit, "Audit"},
	{"ctrl+r", scribe.ActionReadme, "README"},
}

// returns a new code editor bound to backend
func NewEditorModel(backend Backend) *EditorModel {
	ta := textarea.New()
	ta.Placeholder = "// Paste code..."
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.Focus()

	ki := textinput.New()
	ki.Placeholder = "API key (optional)"
	ki.Prompt = "key> "
	ki.EchoMode = textinput.EchoPassword
	ki.EchoCharacter = '•'
	ki.PromptStyle = promptStyle
	ki.TextStyle = inputStyle

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorLightGray)

	m := &EditorModel{
		backend:  backend,
		code:     ta,
		keyInput: ki,
		viewport: viewport.New(0, 0),
		spinner:  sp,
	}

	m.setSize(defaultWidth, defaultHeight)

	return m
}

func (m *EditorModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *EditorModel) Update(msg tea.Msg) (*EditorModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.keyEntry {
			return m.updateKeyEntry(msg)
		}

		for _, k := range actionKeys {
			if msg.String() == k.key {
				return m, m.trigger(k.action)
			}
		}

		switch msg.String() {
		case "ctrl+k":
			return m, m.startKeyEntry()

		case "ctrl+l":
			m.code.Reset()
			m.markdown = ""
			m.inlineErr = ""
			m.notice = ""
			m.demo = false
			m.refreshOutput()
			return m, nil

		case "pgup", "pgdown":
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case ResultMsg:
		m.fetching = false
		m.demo = msg.result.Demo
		m.markdown = formatOutput(msg.action, msg.code, msg.result.Text)
		m.refreshOutput()
		m.viewport.GotoTop()
		return m, nil

	case ActionErrorMsg:
		m.fetching = false

		if scribe.IsInputError(msg.err) {
			m.inlineErr = inputErrorMessage(msg.err)
			return m, nil
		}

		m.demo = false
		m.markdown = fmt.Sprintf("Error: %v", msg.err)
		m.refreshOutput()
		return m, nil

	case spinner.TickMsg:
		if !m.fetching {
			return m, nil
		}

		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil
	}

	m.code, cmd = m.code.Update(msg)

	return m, cmd
}

func (m *EditorModel) View() string {
	var b strings.Builder

	header := headerStyle.Render("CODESCRIBE")

	var triggers []string
	for _, k := range actionKeys {
		triggers = append(triggers, fmt.Sprintf("[%s: %s]", k.key, k.label))
	}

	help := infoStyle.Render(strings.Join(triggers, " "))

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left,
		header,
		strings.Repeat(" ", max(1, m.width-lipgloss.Width(header)-lipgloss.Width(help))),
		help,
	))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Render(m.code.View()),
		paneStyle.Render(m.viewport.View()),
	))
	b.WriteString("\n")

	if m.inlineErr != "" {
		b.WriteString(errorStyle.Render(m.inlineErr))
	} else if m.notice != "" {
		b.WriteString(infoStyle.Render(m.notice))
	}
	b.WriteString("\n")

	b.WriteString(m.statusLine())
	b.WriteString("\n")

	if m.keyEntry {
		b.WriteString(m.keyInput.View())
		b.WriteString("  ")
		b.WriteString(infoStyle.Render("enter to save (used only in this session), esc to cancel"))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("[ctrl+k: API key] [ctrl+l: clear] [pgup/pgdn: scroll output] [ctrl+c: back]"))

	return b.String()
}

// runs action against the current code, or sets the inline error when there is nothing to send
func (m *EditorModel) trigger(action scribe.Action) tea.Cmd {
	if m.fetching {
		return nil
	}

	code := m.code.Value()

	// readme drafts a scaffold from nothing
	if action != scribe.ActionReadme && strings.TrimSpace(code) == "" {
		m.inlineErr = msgNoCode
		return nil
	}

	m.inlineErr = ""
	m.notice = ""
	m.fetching = true
	m.pending = action

	return tea.Batch(m.spinner.Tick, runAction(m.backend, action, code))
}

func runAction(backend Backend, action scribe.Action, code string) tea.Cmd {
	return func() tea.Msg {
		result, err := backend.Run(context.Background(), string(action), code)
		if err != nil {
			logger.Debug("action failed", "action", action, "error", err)
			return ActionErrorMsg{action: action, err: err}
		}

		return ResultMsg{action: action, code: code, result: result}
	}
}

func (m *EditorModel) startKeyEntry() tea.Cmd {
	setter, ok := m.backend.(KeySetter)
	if !ok {
		m.notice = "API keys are managed by the server."
		return nil
	}

	// a configured credential always wins over one typed here
	if setter.Configured() {
		m.notice = "Using the configured API key."
		return nil
	}

	m.keyEntry = true
	m.code.Blur()

	return m.keyInput.Focus()
}

func (m *EditorModel) updateKeyEntry(msg tea.KeyMsg) (*EditorModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		setter, _ := m.backend.(KeySetter)
		key := m.keyInput.Value()

		m.endKeyEntry()

		if err := setter.SetKey(key); err != nil {
			m.inlineErr = fmt.Sprintf("Could not use API key: %v", err)
			return m, m.code.Focus()
		}

		m.inlineErr = ""
		if strings.TrimSpace(key) == "" {
			m.notice = "API key cleared. Running in demo mode."
		} else {
			m.notice = "API key set for this session."
		}

		return m, m.code.Focus()

	case "esc":
		m.endKeyEntry()
		return m, m.code.Focus()
	}

	var cmd tea.Cmd
	m.keyInput, cmd = m.keyInput.Update(msg)

	return m, cmd
}

func (m *EditorModel) endKeyEntry() {
	m.keyEntry = false
	m.keyInput.Reset()
	m.keyInput.Blur()
}

func (m *EditorModel) statusLine() string {
	enabled := m.backend.AIEnabled()

	parts := []string{
		"AI mode: " + aiModeStyle(enabled).Render(aiModeLabel(enabled)),
		"Model: " + m.backend.Model(),
		"Backend: " + m.backend.Name(),
	}

	status := infoStyle.Render(strings.Join(parts, " | "))

	if m.fetching {
		status += "  " + m.spinner.View() + " " + progressLabel(m.pending)
	} else if m.demo {
		status += "  " + aiOffStyle.Render("demo output")
	}

	return status
}

func (m *EditorModel) setSize(width, height int) {
	m.width = width
	m.height = height

	// each pane adds a border and horizontal padding
	paneWidth := max((width-2*paneStyle.GetHorizontalFrameSize())/2, minOutputWidth)
	paneHeight := max(height-chromeHeight, 5)

	m.code.SetWidth(paneWidth)
	m.code.SetHeight(paneHeight)
	m.viewport.Width = paneWidth
	m.viewport.Height = paneHeight

	renderer, err := newRenderer(paneWidth)
	if err != nil {
		logger.Warn("markdown renderer unavailable, showing raw output", "error", err)
	}
	m.renderer = renderer

	m.refreshOutput()
}

func (m *EditorModel) refreshOutput() {
	if m.markdown == "" {
		m.viewport.SetContent(infoStyle.Render("paste code on the left, then pick an action."))
		return
	}

	content := m.markdown

	if m.renderer != nil {
		if rendered, err := m.renderer.Render(m.markdown); err == nil {
			content = rendered
		}
	}

	m.viewport.SetContent(content)
}

// Output returns the unrendered markdown of the last result
func (m *EditorModel) Output() string {
	return m.markdown
}

func inputErrorMessage(err error) string {
	if scribe.IsUnknownAction(err) {
		return "Unknown action."
	}

	return msgNoCode
}

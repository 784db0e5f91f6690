package tui

import (
	"fmt"
	"strings"

	"codeberg.org/codescribe/server/internal/scribe"
	"github.com/charmbracelet/glamour"
)

const (
	msgNoCode = "Please paste some code first."

	minOutputWidth = 20
)

// explain and audit are prose; everything else is shown as a code block
func formatOutput(action scribe.Action, code, text string) string {
	switch action {
	case scribe.ActionExplain, scribe.ActionAudit:
		return text

	case scribe.ActionReadme:
		return fence("markdown", text)

	default:
		return fence(scribe.DetectTestTarget(code).Language, text)
	}
}

// the fence is one backtick longer than any run inside text, so nested fences stay literal
func fence(lang, text string) string {
	marker := strings.Repeat("`", max(3, longestBacktickRun(text)+1))

	return fmt.Sprintf("%s%s\n%s\n%s", marker, lang, text, marker)
}

func longestBacktickRun(text string) int {
	longest, run := 0, 0
	for _, r := range text {
		if r != '`' {
			run = 0
			continue
		}

		run++
		longest = max(longest, run)
	}

	return longest
}

// spinner caption while an action is in flight
func progressLabel(action scribe.Action) string {
	switch action {
	case scribe.ActionExplain:
		return "Explaining..."
	case scribe.ActionTests:
		return "Generating tests..."
	case scribe.ActionDocs:
		return "Adding docstrings..."
	case scribe.ActionAudit:
		return "Auditing..."
	case scribe.ActionReadme:
		return "Drafting README..."
	default:
		return "Working..."
	}
}

func newRenderer(width int) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width, minOutputWidth)),
	)
}

func aiModeLabel(enabled bool) string {
	if enabled {
		return "ON"
	}

	return "OFF (demo)"
}

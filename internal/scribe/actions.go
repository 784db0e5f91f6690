package scribe

import (
	"fmt"
	"strings"
)

const (
	defaultSystem = "You are a senior software engineer. Be precise and actionable."
	testsSystem   = "You write minimal, excellent unit tests. Output only the test file content."
	docsSystem    = "Return ONLY the revised code."
	auditSystem   = "You are a careful code auditor. Be specific and practical."

	// substituted for blank code on readme so a scaffold can still be drafted
	ReadmePlaceholder = "# Project\n\n(Describe your project here)"
)

var allActions = []Action{ActionExplain, ActionTests, ActionDocs, ActionAudit, ActionReadme}

// returns the supported actions in display order
func Actions() []Action {
	out := make([]Action, len(allActions))
	copy(out, allActions)

	return out
}

// resolves an action identifier, case-insensitively
func ParseAction(raw string) (Action, error) {
	candidate := Action(strings.ToLower(strings.TrimSpace(raw)))

	for _, action := range allActions {
		if candidate == action {
			return action, nil
		}
	}

	return "", &UnknownActionError{Action: raw}
}

// validates raw input. the action is resolved first, so an unknown action
// is reported as such whatever the code contains.
func NewActionRequest(action, code string) (ActionRequest, error) {
	act, err := ParseAction(action)
	if err != nil {
		return ActionRequest{}, err
	}

	if strings.TrimSpace(code) == "" {
		if act != ActionReadme {
			return ActionRequest{}, &ValidationError{Message: "no code received"}
		}

		code = ReadmePlaceholder
	}

	return ActionRequest{Action: act, Code: code}, nil
}

// builds the prompt pair for a validated request. deterministic for a given request.
func BuildPrompt(req ActionRequest) Prompt {
	code := req.Code

	switch req.Action {
	case ActionExplain:
		return Prompt{
			System: defaultSystem,
			User:   "Explain this code to a mid-level dev. Include purpose, key logic, edge cases, and complexity.\n\n" + fence("code", code),
		}

	case ActionTests:
		target := DetectTestTarget(code)

		return Prompt{
			System: testsSystem,
			User: fmt.Sprintf("Write %s unit tests with good coverage for this %s code. Keep deterministic.\n\n%s",
				target.Framework, target.Language, fence(target.Language, code)),
		}

	case ActionDocs:
		return Prompt{
			System: docsSystem,
			User:   "Add clear docstrings/comments (PEP257 for Python or JSDoc for JS/TS). Do not change behavior. Return the revised code only.\n\n" + fence("code", code),
		}

	case ActionAudit:
		return Prompt{
			System: auditSystem,
			User: "Review this code for bugs, smells, risks, and security issues.\n" +
				"- List each issue with severity (High/Med/Low) and a one-line fix.\n" +
				"- End with 3 refactor suggestions.\n\n" +
				fence("code", code),
		}

	default: // readme
		return Prompt{
			System: defaultSystem,
			User:   "Given this code, draft a concise README.md with features, setup, usage examples, and limitations.\n\n" + fence("code", code),
		}
	}
}

func fence(lang, code string) string {
	return "```" + lang + "\n" + code + "\n```"
}

package scribe

import "fmt"

const (
	DemoHeader = "### (Demo Output)\n"
	demoNotice = "Running in demo mode. Structured mock result based on your code & action."

	// fallback echoes at most this many characters of the user prompt
	FallbackPromptLimit = 1200
)

// network-free substitute for a model response
func Fallback(prompt string) string {
	return DemoHeader + demoNotice + "\n\n" + truncate(prompt, FallbackPromptLimit)
}

// maps a backend failure to the fallback text, prefixed with a visible error marker
func Degrade(prompt string, err error) string {
	return fmt.Sprintf("(LLM error: %v)\n\n", err) + Fallback(prompt)
}

// cuts s to n characters without splitting a multi-byte rune
func truncate(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}

	return s
}

package scribe

import "regexp"

// a def-style function head: keyword, name, opening paren
var pythonFuncPattern = regexp.MustCompile(`def\s+\w+\(`)

var (
	targetPython     = TestTarget{Language: "python", Framework: "pytest"}
	targetJavaScript = TestTarget{Language: "javascript", Framework: "Jest"}
)

// picks the test target for code. a single regexp probe, not a parser:
// mixed or ambiguous inputs resolve to python as soon as one def head matches.
func DetectTestTarget(code string) TestTarget {
	if pythonFuncPattern.MatchString(code) {
		return targetPython
	}

	return targetJavaScript
}

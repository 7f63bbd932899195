package llm

import "strings"

// StripCodeFence removes markdown code fence wrapping from a response.
// Backends occasionally wrap JSON output in ```json ... ``` despite the
// structured-output mime type.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-len("```")]
	}

	return strings.TrimSpace(s)
}

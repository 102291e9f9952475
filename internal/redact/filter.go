// Package redact rewrites text before it leaves the gateway: dangerous
// fragments are replaced with a fixed placeholder, and credentials are masked
// before anything is written to logs or the audit trail.
package redact

import "strings"

// Placeholder replaces every blocked fragment in filtered output.
const Placeholder = "[BLOCKED: Dangerous command removed for security]"

// Filter replaces every occurrence of each blocked text with Placeholder.
// Texts are applied in first-seen order and matched literally, so a text that
// no longer occurs after an earlier replacement is simply skipped. Empty
// texts are ignored.
func Filter(content string, blocked []string) string {
	if len(blocked) == 0 {
		return content
	}

	result := content
	for _, text := range Unique(blocked) {
		if text == "" {
			continue
		}
		result = strings.ReplaceAll(result, text, Placeholder)
	}
	return result
}

// Unique returns blocked with duplicates removed, keeping first-seen order.
func Unique(blocked []string) []string {
	seen := make(map[string]bool, len(blocked))
	out := make([]string, 0, len(blocked))
	for _, text := range blocked {
		if seen[text] {
			continue
		}
		seen[text] = true
		out = append(out, text)
	}
	return out
}

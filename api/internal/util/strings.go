package util

import (
	"strings"
	"unicode/utf8"
)

// StripCodeFences removes a surrounding markdown code fence from a model
// reply. Engines ask for raw JSON but some models wrap it anyway.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Truncate cuts s to at most max bytes, backing up to a rune boundary,
// and marks the cut with an ellipsis. Telegram rejects messages over
// 4096 bytes, so bot replies go through this with a margin.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}

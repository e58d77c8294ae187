package solver

import (
	"regexp"
	"strings"
)

// Exam-style boundary markers, tried first. The FIRST pattern that yields
// at least two surviving pieces wins; candidates are never ranked against
// each other.
var examSplits = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^\s*\d+\s*[.)]\s+`),
	regexp.MustCompile(`(?mi)^\s*question\s+\d+\s*[:.)]?\s*`),
	regexp.MustCompile(`(?m)^\s*\(?[a-h]\)\s+`),
	regexp.MustCompile(`(?m)^\s*[ivx]+\s*[.)]\s+`),
}

// Content markers: phrases that usually open a fresh problem statement.
var reContentMarker = regexp.MustCompile(`(?i)(?:the\s+(?:line|plane|point)\b|find\s+the\b|show\s+that\b|prove\s+that\b|evaluate\b|calculate\s+the\b)`)

// Generic separators for the last-resort cascade, applied in order while
// each one strictly increases the fragment count.
var genericSplits = []*regexp.Regexp{
	regexp.MustCompile(`\n\s*\n`),
	regexp.MustCompile(`\d+\)\s*(?=[A-Z])`),
	regexp.MustCompile(`\d+\.\s+(?=[A-Z])`),
	regexp.MustCompile(`\b[a-z]\)\s*(?=[A-Z])`),
	regexp.MustCompile(`;`),
}

var reMathChar = regexp.MustCompile(`[0-9+\-*/=^√()\[\]]|[xyz]\b`)

// Segment splits a block of text into individual problems. Deterministic,
// never empty: when nothing else works the whole input is one problem.
func Segment(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{text}
	}

	for _, re := range examSplits {
		parts := survivors(splitDrop(re, text), examWorthy)
		if len(parts) >= 2 {
			return finalFilter(parts, text)
		}
	}

	if parts := splitAtMarkers(text); len(parts) >= 2 {
		return finalFilter(parts, text)
	}

	frags := []string{text}
	for _, re := range genericSplits {
		next := resplit(frags, re)
		if len(next) > len(frags) {
			frags = next
		}
		if len(frags) > 10 {
			break
		}
	}
	return finalFilter(frags, text)
}

func splitDrop(re *regexp.Regexp, text string) []string {
	var out []string
	for _, p := range re.Split(text, -1) {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func resplit(frags []string, re *regexp.Regexp) []string {
	var out []string
	for _, f := range frags {
		out = append(out, splitDrop(re, f)...)
	}
	return out
}

// examWorthy keeps only fragments that look like whole exam questions.
func examWorthy(s string) bool {
	return len(s) > 15 && strings.IndexFunc(s, isLetter) >= 0 && strings.IndexFunc(s, isDigit) >= 0
}

func survivors(parts []string, keep func(string) bool) []string {
	var out []string
	for _, p := range parts {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// splitAtMarkers cuts at content-marker positions, keeping the marker with
// the text it introduces.
func splitAtMarkers(text string) []string {
	locs := reContentMarker.FindAllStringIndex(text, -1)
	if len(locs) < 2 {
		return nil
	}
	var parts []string
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		p := strings.TrimSpace(text[loc[0]:end])
		if len(p) > 20 {
			parts = append(parts, p)
		}
	}
	if len(parts) >= 2 {
		return parts
	}
	return nil
}

// finalFilter drops fragments too short or with no math in them at all.
func finalFilter(parts []string, whole string) []string {
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) < 5 || !reMathChar.MatchString(p) {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return []string{whole}
	}
	return out
}

func isLetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }

package llm

import "strings"

// ConfirmThreshold is the minimum extraction confidence that may skip the
// user confirmation step.
const ConfirmThreshold = 0.80

// ApplyReadPolicy fills the confirmation fields of a ReadResult. Models
// report their own confirmation flags inconsistently, so the decision is
// made here and never trusted from the wire.
func ApplyReadPolicy(rr *ReadResult) {
	text := strings.TrimSpace(rr.Text)

	auto := rr.Confidence >= ConfirmThreshold &&
		countBracketedSpans(text) == 0 &&
		text != ""

	if auto {
		rr.ConfirmationNeeded = false
		rr.ConfirmationReason = "none"
		return
	}

	rr.ConfirmationNeeded = true
	switch {
	case text == "":
		rr.ConfirmationReason = "empty_text"
	case rr.Confidence < ConfirmThreshold:
		rr.ConfirmationReason = "low_confidence"
	default:
		rr.ConfirmationReason = "unreadable_spans"
	}
}

// countBracketedSpans counts [unreadable] markers. Index accesses like
// a[0] do not appear in photographed school problems, so a plain bracket
// count is good enough.
func countBracketedSpans(s string) int {
	n := 0
	depth := 0
	for _, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				n++
				depth--
			}
		}
	}
	return n
}

package solver

import (
	"regexp"
	"strings"
)

// Substitutions run in a fixed order; every rule is written so it cannot
// re-trigger on its own output (Normalize is idempotent).
var (
	// Newlines survive: the segmenter keys on them.
	reSpaces = regexp.MustCompile(`[ \t]+`)

	// OCR confusions: a lone lowercase l between non-letters is the digit 1;
	// O is the digit 0 only when an operator or digit sits next to it, so
	// variable names survive.
	reLoneEll   = regexp.MustCompile(`(^|[^A-Za-z])l([^A-Za-z]|$)`)
	reOhAfterOp = regexp.MustCompile(`([0-9+\-*/^=(])( ?)O`)
	reOhPreOp   = regexp.MustCompile(`O( ?)([0-9+\-*/^=)])`)

	// Implicit multiplication around parentheses.
	reNumOpen    = regexp.MustCompile(`(\d)\(`)
	reCloseNum   = regexp.MustCompile(`\)(\d)`)
	reCloseOpen  = regexp.MustCompile(`\)\(`)
	reVarOpenMul = regexp.MustCompile(`(^|[^A-Za-z])([xyzt])\(`)

	// Space-separated coordinate pairs/triples inside parentheses.
	reTriple = regexp.MustCompile(`\(\s*(-?\d+(?:\.\d+)?)\s+(-?\d+(?:\.\d+)?)\s+(-?\d+(?:\.\d+)?)\s*\)`)
	rePair   = regexp.MustCompile(`\(\s*(-?\d+(?:\.\d+)?)\s+(-?\d+(?:\.\d+)?)\s*\)`)
)

var glyphReplacer = strings.NewReplacer(
	"×", "*", "·", "*", "⋅", "*", "∗", "*",
	"÷", "/", "∕", "/",
	"−", "-", "–", "-", "—", "-",
	"“", `"`, "”", `"`, "‘", "'", "’", "'",
	"²", "^2", "³", "^3",
	"π", "pi",
)

// Normalize fixes OCR-style character confusions, canonicalizes operator
// glyphs, inserts implicit multiplication and reformats coordinate tuples.
// Pure and total: where no rule matches the input passes through unchanged.
func Normalize(raw string) string {
	s := glyphReplacer.Replace(raw)

	s = reLoneEll.ReplaceAllString(s, "${1}1${2}")
	s = reOhAfterOp.ReplaceAllString(s, "${1}${2}0")
	s = reOhPreOp.ReplaceAllString(s, "0${1}${2}")

	s = reNumOpen.ReplaceAllString(s, "$1*(")
	s = reCloseNum.ReplaceAllString(s, ")*$1")
	s = reCloseOpen.ReplaceAllString(s, ")*(")
	s = reVarOpenMul.ReplaceAllString(s, "${1}${2}*(")

	s = reTriple.ReplaceAllString(s, "($1, $2, $3)")
	s = rePair.ReplaceAllString(s, "($1, $2)")

	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

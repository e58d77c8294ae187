package solver

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ---------------- term model -----------------

// termKind discriminates the variants the calculus rules match on.
type termKind int

const (
	termConstant termKind = iota // coef
	termMonomial                 // coef * x^exp
	termFunc                     // coef * fn(x); fn names a table entry
)

// term is one additive component of an expression in the variable x.
// Derived transiently while differentiating or integrating, never stored.
type term struct {
	kind termKind
	coef float64
	exp  float64 // termMonomial only
	fn   string  // termFunc only
	k    float64 // inner coefficient for fn "exp": e^(k*x)
	raw  string  // original text, kept for messages
}

// ---------------- term recognizers -----------------

// All recognizers run against a space-stripped term, sign included.
var (
	reTermMono  = regexp.MustCompile(`^([+-]?\d*\.?\d*)\*?x(?:\^(\(?-?\d+(?:\.\d+)?\)?|\(\d+/\d+\)))?(?:/(\d+(?:\.\d+)?))?$`)
	reTermFrac  = regexp.MustCompile(`^([+-]?\d*\.?\d*)/x(?:\^(\(?\d+(?:\.\d+)?\)?))?$`)
	reTermTrig  = regexp.MustCompile(`^([+-]?\d*\.?\d*)\*?(sin|cos|tan|sec|csc|cot)\(x\)$`)
	reTermTrig2 = regexp.MustCompile(`^([+-]?\d*\.?\d*)\*?(sec|csc)\^2\(x\)$`)
	reTermProd  = regexp.MustCompile(`^([+-]?\d*\.?\d*)\*?(sec\(x\)\*?tan\(x\)|csc\(x\)\*?cot\(x\))$`)
	reTermExpo  = regexp.MustCompile(`^([+-]?\d*\.?\d*)\*?(?:e\^|exp)(x|\(?-?\d*\.?\d*\*?x\)?)$`)
	reTermLog   = regexp.MustCompile(`^([+-]?\d*\.?\d*)\*?(ln|log)\(x\)$`)
	reTermSqrt  = regexp.MustCompile(`^([+-]?\d*\.?\d*)\*?(?:sqrt\(x\)|√\(?x\)?)$`)
	reTermAtan  = regexp.MustCompile(`^1/\(1\+x\^2\)$`)
	reTermAsin  = regexp.MustCompile(`^1/(?:sqrt|√)\(1-x\^2\)$`)
	reVarX      = regexp.MustCompile(`(?:^|[^a-zA-Z])x`)
)

// splitTerms breaks an expression into signed additive terms. Splits only at
// top-level + and -, so exponents like x^-2 and inner signs like e^(-x)
// survive intact.
func splitTerms(expr string) []string {
	var (
		out   []string
		cur   strings.Builder
		depth int
		prev  rune
	)
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			out = append(out, s)
		}
		cur.Reset()
	}
	for _, r := range expr {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		}
		if (r == '+' || r == '-') && depth == 0 && cur.Len() > 0 && !strings.ContainsRune("^*/(,+-", prev) {
			flush()
			if r == '-' {
				cur.WriteRune('-')
			}
			prev = r
			continue
		}
		cur.WriteRune(r)
		if r != ' ' {
			prev = r
		}
	}
	flush()
	return out
}

// parseTerm recognizes one additive term. Order matters: the special
// function forms must win before the generic monomial rule.
func parseTerm(s string) (term, bool) {
	raw := strings.TrimSpace(s)
	c := strings.ReplaceAll(raw, " ", "")
	if c == "" {
		return term{}, false
	}

	if v, err := strconv.ParseFloat(c, 64); err == nil {
		return term{kind: termConstant, coef: v, raw: raw}, true
	}
	if !reVarX.MatchString(c) {
		// Letter-free forms like 3/4 still count as constants.
		if v, ok := evalRatio(c); ok {
			return term{kind: termConstant, coef: v, raw: raw}, true
		}
		return term{}, false
	}

	if m := reTermAtan.FindStringSubmatch(c); m != nil {
		return term{kind: termFunc, coef: 1, fn: "inv1px2", raw: raw}, true
	}
	if m := reTermAsin.FindStringSubmatch(c); m != nil {
		return term{kind: termFunc, coef: 1, fn: "invsqrt1mx2", raw: raw}, true
	}
	if m := reTermTrig2.FindStringSubmatch(c); m != nil {
		return term{kind: termFunc, coef: coefValue(m[1]), fn: m[2] + "2", raw: raw}, true
	}
	if m := reTermProd.FindStringSubmatch(c); m != nil {
		fn := "sectan"
		if strings.HasPrefix(m[2], "csc") {
			fn = "csccot"
		}
		return term{kind: termFunc, coef: coefValue(m[1]), fn: fn, raw: raw}, true
	}
	if m := reTermTrig.FindStringSubmatch(c); m != nil {
		return term{kind: termFunc, coef: coefValue(m[1]), fn: m[2], raw: raw}, true
	}
	if m := reTermExpo.FindStringSubmatch(c); m != nil {
		return term{kind: termFunc, coef: coefValue(m[1]), fn: "exp", k: innerCoef(m[2]), raw: raw}, true
	}
	if m := reTermLog.FindStringSubmatch(c); m != nil {
		return term{kind: termFunc, coef: coefValue(m[1]), fn: m[2], raw: raw}, true
	}
	if m := reTermSqrt.FindStringSubmatch(c); m != nil {
		return term{kind: termFunc, coef: coefValue(m[1]), fn: "sqrt", raw: raw}, true
	}
	if m := reTermFrac.FindStringSubmatch(c); m != nil {
		exp := 1.0
		if m[2] != "" {
			exp = parseExponent(m[2])
		}
		return term{kind: termMonomial, coef: coefValue(m[1]), exp: -exp, raw: raw}, true
	}
	if m := reTermMono.FindStringSubmatch(c); m != nil {
		exp := 1.0
		if m[2] != "" {
			exp = parseExponent(m[2])
		}
		coef := coefValue(m[1])
		if m[3] != "" {
			if d, err := strconv.ParseFloat(m[3], 64); err == nil && d != 0 {
				coef /= d
			}
		}
		return term{kind: termMonomial, coef: coef, exp: exp, raw: raw}, true
	}
	return term{}, false
}

// coefValue reads an optional signed coefficient: empty means 1, a bare
// minus means -1.
func coefValue(s string) float64 {
	switch s {
	case "", "+":
		return 1
	case "-":
		return -1
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 1
	}
	return v
}

// parseExponent reads an exponent with optional parentheses, including
// parenthesized fractions like (1/2).
func parseExponent(s string) float64 {
	s = strings.Trim(s, "()")
	if v, ok := evalRatio(s); ok {
		return v
	}
	return 1
}

// innerCoef reads k from the inside of e^(k*x).
func innerCoef(s string) float64 {
	s = strings.Trim(s, "()")
	s = strings.TrimSuffix(s, "x")
	s = strings.TrimSuffix(s, "*")
	return coefValue(s)
}

// evalRatio parses either a plain float or a p/q ratio.
func evalRatio(s string) (float64, bool) {
	if p, q, ok := strings.Cut(s, "/"); ok {
		pv, err1 := strconv.ParseFloat(p, 64)
		qv, err2 := strconv.ParseFloat(q, 64)
		if err1 != nil || err2 != nil || qv == 0 {
			return 0, false
		}
		return pv / qv, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ---------------- rendering -----------------

// roundNice rounds away float error so answers read like hand computation:
// sin(30°) prints 0.5, not 0.49999999999999994.
func roundNice(v float64) float64 {
	r := math.Round(v*1e9) / 1e9
	if r == 0 {
		return 0
	}
	return r
}

// fmtNum renders a float the way a worked solution would write it: whole
// numbers without a decimal point, everything else in shortest form.
func fmtNum(f float64) string {
	if f == 0 {
		return "0"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// coefPrefix renders a multiplying coefficient: 1 vanishes, -1 keeps only
// its sign.
func coefPrefix(c float64) string {
	switch c {
	case 1:
		return ""
	case -1:
		return "-"
	}
	return fmtNum(c)
}

// monoText renders coef*x^exp with the usual simplifications for exponents
// 0, 1, 0.5 and negatives.
func monoText(coef, exp float64) string {
	switch {
	case coef == 0:
		return "0"
	case exp == 0:
		return fmtNum(coef)
	case exp == 1:
		return coefPrefix(coef) + "x"
	case exp == 0.5:
		return coefPrefix(coef) + "√x"
	case exp == -1:
		return fmtNum(coef) + "/x"
	case exp < 0:
		return fmtNum(coef) + "/x^" + fmtNum(-exp)
	}
	return coefPrefix(coef) + "x^" + fmtNum(exp)
}

// joinTerms assembles additive terms, folding "+ -c" into "- c".
func joinTerms(parts []string) string {
	s := strings.Join(parts, " + ")
	return strings.ReplaceAll(s, "+ -", "- ")
}

// renderTerm writes a parsed term back to text in canonical form.
func renderTerm(t term) string {
	switch t.kind {
	case termConstant:
		return fmtNum(t.coef)
	case termMonomial:
		return monoText(t.coef, t.exp)
	}
	switch t.fn {
	case "exp":
		if t.k == 1 {
			return coefPrefix(t.coef) + "e^x"
		}
		return coefPrefix(t.coef) + "e^(" + fmtNum(t.k) + "x)"
	case "sec2", "csc2":
		return coefPrefix(t.coef) + t.fn[:3] + "^2(x)"
	case "sectan":
		return coefPrefix(t.coef) + "sec(x)tan(x)"
	case "csccot":
		return coefPrefix(t.coef) + "csc(x)cot(x)"
	case "sqrt":
		return coefPrefix(t.coef) + "√x"
	case "inv1px2":
		return "1/(1+x^2)"
	case "invsqrt1mx2":
		return "1/√(1-x^2)"
	}
	return coefPrefix(t.coef) + t.fn + "(x)"
}

// simplifyExpression combines like terms. ok is false when any term fails
// to parse or nothing actually merges, so callers never present a no-op as
// a simplification.
func simplifyExpression(expr string) (string, bool) {
	parts := splitTerms(expr)
	if len(parts) < 2 {
		return "", false
	}
	type likeKey struct {
		kind termKind
		exp  float64
		fn   string
		k    float64
	}
	sums := make(map[likeKey]*term, len(parts))
	var order []likeKey
	for _, p := range parts {
		t, ok := parseTerm(p)
		if !ok {
			return "", false
		}
		k := likeKey{t.kind, t.exp, t.fn, t.k}
		if prev, found := sums[k]; found {
			prev.coef += t.coef
			continue
		}
		cp := t
		sums[k] = &cp
		order = append(order, k)
	}
	if len(order) == len(parts) {
		return "", false
	}
	var rendered []string
	for _, k := range order {
		t := sums[k]
		if t.coef == 0 {
			continue
		}
		rendered = append(rendered, renderTerm(*t))
	}
	if len(rendered) == 0 {
		return "0", true
	}
	return joinTerms(rendered), true
}

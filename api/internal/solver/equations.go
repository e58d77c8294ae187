package solver

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
)

var (
	errNotCubic   = errors.New("leading cubic coefficient is zero")
	errNoEquation = errors.New("no equation found")
)

// reEquation finds the equation inside a word problem: the longest run of
// math characters around an equals sign.
var reEquation = regexp.MustCompile(`[0-9a-zA-Z^+\-*/ ().,²³√]+=[0-9a-zA-Z^+\-*/ ().,²³√]+`)

// reCommandWord matches request phrasing that must not leak into an
// extracted equation even though it is made of equation-legal characters.
var reCommandWord = regexp.MustCompile(`(?i)\b(solve|find|compute|evaluate|determine|graph|plot|sketch|draw|then|and|also|for|what|is|are|the|value|values|of|equation|function|curve|line|roots?|where|when|given)\b`)

// reVarLetter finds a standalone variable letter. e is skipped so Euler's
// constant never becomes the unknown.
var reVarLetter = regexp.MustCompile(`(?:^|[^a-zA-Z])([a-df-zA-DF-Z])(?:[^a-zA-Z]|$)`)

// findEquation extracts the equation part of a problem statement. Command
// words are turned into barriers first so the match cannot span them.
func findEquation(problem string) (string, error) {
	s := reCommandWord.ReplaceAllString(problem, ";")
	m := reEquation.FindString(s)
	if m == "" || !strings.Contains(m, "=") {
		return "", errNoEquation
	}
	return strings.TrimSpace(m), nil
}

// canonicalVariable detects the unknown and rewrites it to x so the term
// parser applies. Returns the display name of the original unknown.
func canonicalVariable(eq string) (string, string) {
	m := reVarLetter.FindStringSubmatch(eq)
	if m == nil {
		return "x", eq
	}
	v := strings.ToLower(m[1])
	if v == "x" {
		return "x", eq
	}
	re := regexp.MustCompile(`(^|[^a-zA-Z])[` + strings.ToLower(m[1]) + strings.ToUpper(m[1]) + `]([^a-zA-Z]|$)`)
	out := eq
	for i := 0; i < 4; i++ {
		next := re.ReplaceAllString(out, "${1}x${2}")
		if next == out {
			break
		}
		out = next
	}
	return v, out
}

// polySides reads both sides of an equation and returns net coefficients
// by degree, left minus right. Degrees above maxDeg or non-polynomial
// terms fail.
func polySides(eq string, maxDeg int) ([]float64, error) {
	left, right, ok := strings.Cut(eq, "=")
	if !ok {
		return nil, errNoEquation
	}
	coeffs := make([]float64, maxDeg+1)
	if err := accumulatePoly(coeffs, left, 1); err != nil {
		return nil, err
	}
	if err := accumulatePoly(coeffs, right, -1); err != nil {
		return nil, err
	}
	return coeffs, nil
}

func accumulatePoly(coeffs []float64, side string, sign float64) error {
	side = strings.TrimSpace(side)
	if side == "" || side == "0" {
		return nil
	}
	for _, p := range splitTerms(side) {
		t, ok := parseTerm(p)
		if !ok {
			return fmt.Errorf("cannot read term %q", p)
		}
		switch t.kind {
		case termConstant:
			coeffs[0] += sign * t.coef
		case termMonomial:
			d := int(t.exp)
			if float64(d) != t.exp || d < 0 || d >= len(coeffs) {
				return fmt.Errorf("term %q is not part of a degree %d polynomial", p, len(coeffs)-1)
			}
			coeffs[d] += sign * t.coef
		default:
			return fmt.Errorf("term %q is not polynomial", p)
		}
	}
	return nil
}

// renderPoly writes coefficients as a standard-form polynomial equal to
// zero, highest degree first.
func renderPoly(coeffs []float64) string {
	var parts []string
	for d := len(coeffs) - 1; d >= 0; d-- {
		if coeffs[d] == 0 {
			continue
		}
		parts = append(parts, monoText(coeffs[d], float64(d)))
	}
	if len(parts) == 0 {
		parts = []string{"0"}
	}
	return joinTerms(parts) + " = 0"
}

// ---------------- linear -----------------

type LinearResult struct {
	Var   string
	Value float64
}

// SolveLinear solves ax + b = c by collecting coefficient and constant
// contributions from both sides. A zero net coefficient is an error, not a
// division by zero.
func SolveLinear(eq string, log *StepLog) (*LinearResult, error) {
	vname, canon := canonicalVariable(eq)
	coeffs, err := polySides(canon, 1)
	if err != nil {
		return nil, fmt.Errorf("linear: %w", err)
	}
	a, b := coeffs[1], coeffs[0]
	log.Add("Collect variable terms on the left and constants on the right",
		fmt.Sprintf("%s%s = %s", coefPrefix(a), vname, fmtNum(-b)))
	if a == 0 {
		return nil, fmt.Errorf("linear: equation has no %s term", vname)
	}
	v := -b / a
	log.Add("Divide both sides by the coefficient",
		fmt.Sprintf("%s = %s / %s = %s", vname, fmtNum(-b), fmtNum(a), fmtNum(v)))
	return &LinearResult{Var: vname, Value: v}, nil
}

// ---------------- quadratic -----------------

type QuadraticResult struct {
	Var     string
	A, B, C float64
	Disc    float64
	Real    []float64 // two roots, or one repeated
	Complex string    // rendered conjugate pair when Disc < 0
}

// SolveQuadratic solves ax^2 + bx + c = 0 by the discriminant, branching
// on its sign.
func SolveQuadratic(eq string, log *StepLog) (*QuadraticResult, error) {
	vname, canon := canonicalVariable(eq)
	coeffs, err := polySides(canon, 2)
	if err != nil {
		return nil, fmt.Errorf("quadratic: %w", err)
	}
	a, b, c := coeffs[2], coeffs[1], coeffs[0]
	if a == 0 {
		return nil, fmt.Errorf("quadratic: no squared term in %q", eq)
	}
	log.Add("Write the equation in standard form", rebrandVar(renderPoly(coeffs), vname))

	res := &QuadraticResult{Var: vname, A: a, B: b, C: c, Disc: b*b - 4*a*c}
	log.Add("Compute the discriminant",
		fmt.Sprintf("Δ = b² - 4ac = (%s)² - 4·%s·%s = %s", fmtNum(b), fmtNum(a), fmtNum(c), fmtNum(res.Disc)))

	switch {
	case res.Disc > 0:
		sq := math.Sqrt(res.Disc)
		r1 := (-b + sq) / (2 * a)
		r2 := (-b - sq) / (2 * a)
		res.Real = []float64{r1, r2}
		log.Add("Δ > 0, two distinct real roots",
			fmt.Sprintf("%s = (-b ± √Δ) / 2a = (%s ± %s) / %s", vname, fmtNum(-b), fmtNum(sq), fmtNum(2*a)))
		log.Add("Roots", fmt.Sprintf("%s₁ = %s, %s₂ = %s", vname, fmtNum(r1), vname, fmtNum(r2)))
	case res.Disc == 0:
		r := -b / (2 * a)
		res.Real = []float64{r}
		log.Add("Δ = 0, one repeated real root",
			fmt.Sprintf("%s = -b / 2a = %s / %s = %s", vname, fmtNum(-b), fmtNum(2*a), fmtNum(r)))
	default:
		re := -b / (2 * a)
		im := math.Sqrt(-res.Disc) / (2 * a)
		res.Complex = fmt.Sprintf("%s ± %si", fmtNum(re), fmtNum(math.Abs(im)))
		log.Add("Δ < 0, complex conjugate roots",
			fmt.Sprintf("%s = %s", vname, res.Complex))
	}
	return res, nil
}

// ---------------- cubic -----------------

type CubicResult struct {
	Var        string
	A, B, C, D float64
	P, Q, Disc float64
	Real       []float64
	Complex    string // rendered conjugate pair when Disc > 0
}

const cubicEps = 1e-9

// SolveCubic solves ax^3 + bx^2 + cx + d = 0 by reducing to the depressed
// form t^3 + pt + q = 0 and branching on the cubic discriminant. A zero
// leading coefficient returns errNotCubic so the caller can degrade to the
// quadratic path.
func SolveCubic(eq string, log *StepLog) (*CubicResult, error) {
	vname, canon := canonicalVariable(eq)
	coeffs, err := polySides(canon, 3)
	if err != nil {
		return nil, fmt.Errorf("cubic: %w", err)
	}
	a, b, c, d := coeffs[3], coeffs[2], coeffs[1], coeffs[0]
	if a == 0 {
		return nil, errNotCubic
	}
	log.Add("Write the equation in standard form", rebrandVar(renderPoly(coeffs), vname))

	p := (3*a*c - b*b) / (3 * a * a)
	q := (2*b*b*b - 9*a*b*c + 27*a*a*d) / (27 * a * a * a)
	offset := b / (3 * a)
	disc := q*q/4 + p*p*p/27

	log.Add("Substitute "+vname+" = t - b/3a to remove the squared term",
		fmt.Sprintf("t³ + pt + q = 0 with p = %s, q = %s", fmtNum(p), fmtNum(q)))
	log.Add("Compute the cubic discriminant",
		fmt.Sprintf("Δ = q²/4 + p³/27 = %s", fmtNum(disc)))

	res := &CubicResult{Var: vname, A: a, B: b, C: c, D: d, P: p, Q: q, Disc: disc}

	switch {
	case disc > cubicEps:
		sq := math.Sqrt(disc)
		u := math.Cbrt(-q/2 + sq)
		v := math.Cbrt(-q/2 - sq)
		t1 := u + v
		res.Real = []float64{t1 - offset}
		re := -t1/2 - offset
		im := (u - v) * math.Sqrt(3) / 2
		res.Complex = fmt.Sprintf("%s ± %si", fmtNum(re), fmtNum(math.Abs(im)))
		log.Add("Δ > 0, one real root by Cardano's formula",
			fmt.Sprintf("t = ∛(-q/2 + √Δ) + ∛(-q/2 - √Δ), %s = %s", vname, fmtNum(res.Real[0])))
		log.Add("The remaining pair is complex", fmt.Sprintf("%s = %s", vname, res.Complex))
	case disc < -cubicEps:
		m := 2 * math.Sqrt(-p/3)
		theta := math.Acos(3*q/(p*m)) / 3
		for k := 0; k < 3; k++ {
			res.Real = append(res.Real, m*math.Cos(theta-2*math.Pi*float64(k)/3)-offset)
		}
		log.Add("Δ < 0, three real roots by the trigonometric method",
			fmt.Sprintf("%s ∈ {%s, %s, %s}", vname, fmtNum(res.Real[0]), fmtNum(res.Real[1]), fmtNum(res.Real[2])))
	default:
		if p == 0 {
			res.Real = []float64{-offset}
			log.Add("Δ = 0 and p = 0, a triple root",
				fmt.Sprintf("%s = %s", vname, fmtNum(-offset)))
			break
		}
		t1 := 3 * q / p
		t2 := -3 * q / (2 * p)
		res.Real = []float64{t1 - offset, t2 - offset}
		log.Add("Δ = 0, a simple root and a double root",
			fmt.Sprintf("%s₁ = %s, %s₂ = %s (double)", vname, fmtNum(res.Real[0]), vname, fmtNum(res.Real[1])))
	}
	return res, nil
}

// rebrandVar writes x-canonical math back in terms of the display variable.
func rebrandVar(s, vname string) string {
	if vname == "x" {
		return s
	}
	return strings.ReplaceAll(s, "x", vname)
}

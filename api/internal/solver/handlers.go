package solver

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ---------------- text extraction -----------------

var (
	reQuestionWords = regexp.MustCompile(`(?i)\b(evaluate|calculate|compute|find|simplify|solve|determine|what|is|the|value|values|of|exactly|expression|answer|result|please|equals)\b|[?]`)
	reCalcWords     = regexp.MustCompile(`(?i)\b(find|the|derivative|of|differentiate|with|respect|to|integrate|integral|indefinite|definite|antiderivative|evaluate|compute|function|d/dx|dy/dx|dx)\b|[?:]`)
	reIntBounds     = regexp.MustCompile(`(?i)\bfrom\s+(-?\d+(?:\.\d+)?)\s+to\s+(-?\d+(?:\.\d+)?)`)
	reIntBetween    = regexp.MustCompile(`(?i)\bbetween\s+(-?\d+(?:\.\d+)?)\s+and\s+(-?\d+(?:\.\d+)?)`)
	reGraphWords    = regexp.MustCompile(`(?i)\b(graph|plot|sketch|draw|then|and|also|the|curve|line|function|equation)\b|[?:]`)
)

var (
	reSqrtPhrase    = regexp.MustCompile(`(?i)square roots? of\s*(-?\d+(?:\.\d+)?)`)
	rePercentPhrase = regexp.MustCompile(`%\s*of\b`)
)

// stripQuestionWords removes command phrasing so only the math remains.
// Spoken forms that the evaluator understands symbolically are rewritten
// first.
func stripQuestionWords(s string) string {
	out := reSqrtPhrase.ReplaceAllString(s, "sqrt($1)")
	out = rePercentPhrase.ReplaceAllString(out, "% *")
	out = reQuestionWords.ReplaceAllString(out, " ")
	out = reSpaces.ReplaceAllString(out, " ")
	return strings.Trim(out, " .,;:=")
}

// extractCalcExpr isolates the expression of a differentiate/integrate
// request, dropping bounds and command words first.
func extractCalcExpr(problem string) string {
	s := reIntBounds.ReplaceAllString(problem, " ")
	s = reIntBetween.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "∫", " ")
	s = reCalcWords.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return unwrapParens(strings.Trim(s, " .,;:"))
}

// unwrapParens removes one layer of parentheses enclosing the whole
// expression.
func unwrapParens(s string) string {
	for len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		depth := 0
		balanced := true
		for i := 0; i < len(s)-1; i++ {
			switch s[i] {
			case '(':
				depth++
			case ')':
				depth--
			}
			if depth == 0 {
				balanced = false
				break
			}
		}
		if !balanced {
			return s
		}
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// integralBounds reads "from a to b" or "between a and b".
func integralBounds(problem string) (lo, hi float64, ok bool) {
	m := reIntBounds.FindStringSubmatch(problem)
	if m == nil {
		m = reIntBetween.FindStringSubmatch(problem)
	}
	if m == nil {
		return 0, 0, false
	}
	loV, ok1 := evalRatio(m[1])
	hiV, ok2 := evalRatio(m[2])
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return loV, hiV, true
}

// ---------------- arithmetic -----------------

func (s *Solver) solveArithmetic(ctx context.Context, problem string, log *StepLog) (string, *Visualization, error) {
	expr := strings.Trim(problem, " .,;:=?")
	v, err := EvalNumeric(expr)
	if err != nil {
		return "", nil, err
	}
	log.Add("Apply operator precedence", fmt.Sprintf("%s = %s", expr, fmtNum(roundNice(v))))
	return fmtNum(roundNice(v)), nil, nil
}

// ---------------- calculus -----------------

func (s *Solver) solveDerivative(ctx context.Context, problem string, log *StepLog) (string, *Visualization, error) {
	expr := extractCalcExpr(problem)
	if expr == "" {
		return "", nil, fmt.Errorf("derivative: no expression in %q", problem)
	}
	log.Add("Differentiate term by term", fmt.Sprintf("d/dx(%s)", expr))
	d, err := Differentiate(expr, log)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("d/dx(%s) = %s", expr, d), nil, nil
}

func (s *Solver) solveIntegral(ctx context.Context, problem string, log *StepLog) (string, *Visualization, error) {
	expr := extractCalcExpr(problem)
	if expr == "" {
		return "", nil, fmt.Errorf("integral: no expression in %q", problem)
	}
	log.Add("Integrate term by term", fmt.Sprintf("∫ %s dx", expr))
	parts, err := integrateParts(ctx, s.oracle, expr, log)
	if err != nil {
		return "", nil, err
	}
	anti := joinAntiderivatives(parts)

	if lo, hi, ok := integralBounds(problem); ok {
		v, done, err := evaluateBounds(parts, lo, hi, log)
		if err != nil {
			return "", nil, err
		}
		if done {
			return fmt.Sprintf("∫ %s dx from %s to %s = %s", expr, fmtNum(lo), fmtNum(hi), fmtNum(roundNice(v))), nil, nil
		}
		log.Add("The antiderivative cannot be evaluated at the bounds; reporting the indefinite form", anti+" + C")
	}
	return fmt.Sprintf("∫ %s dx = %s + C", expr, anti), nil, nil
}

// ---------------- equations -----------------

func (s *Solver) solveLinearEq(ctx context.Context, problem string, log *StepLog) (string, *Visualization, error) {
	eq, err := findEquation(problem)
	if err != nil {
		return "", nil, err
	}
	res, err := SolveLinear(eq, log)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("%s = %s", res.Var, fmtNum(roundNice(res.Value))), nil, nil
}

func (s *Solver) solveQuadraticEq(ctx context.Context, problem string, log *StepLog) (string, *Visualization, error) {
	eq, err := findEquation(problem)
	if err != nil {
		return "", nil, err
	}
	res, err := SolveQuadratic(eq, log)
	if err != nil {
		return "", nil, err
	}
	return quadraticAnswer(res), nil, nil
}

func quadraticAnswer(res *QuadraticResult) string {
	switch {
	case res.Complex != "":
		return fmt.Sprintf("%s = %s", res.Var, res.Complex)
	case len(res.Real) == 1:
		return fmt.Sprintf("%s = %s (double root)", res.Var, fmtNum(roundNice(res.Real[0])))
	}
	return fmt.Sprintf("%s = %s or %s = %s",
		res.Var, fmtNum(roundNice(res.Real[0])), res.Var, fmtNum(roundNice(res.Real[1])))
}

func (s *Solver) solveCubicEq(ctx context.Context, problem string, log *StepLog) (string, *Visualization, error) {
	eq, err := findEquation(problem)
	if err != nil {
		return "", nil, err
	}
	res, err := SolveCubic(eq, log)
	if errors.Is(err, errNotCubic) {
		log.Add("The cubic coefficient is zero; the equation is quadratic", eq)
		qres, qerr := SolveQuadratic(eq, log)
		if qerr != nil {
			return "", nil, qerr
		}
		return quadraticAnswer(qres), nil, nil
	}
	if err != nil {
		return "", nil, err
	}
	return cubicAnswer(res), nil, nil
}

func cubicAnswer(res *CubicResult) string {
	roots := make([]string, len(res.Real))
	for i, r := range res.Real {
		roots[i] = fmtNum(roundNice(r))
	}
	switch {
	case res.Complex != "":
		return fmt.Sprintf("%s = %s, complex pair %s = %s", res.Var, roots[0], res.Var, res.Complex)
	case len(roots) == 1:
		return fmt.Sprintf("%s = %s (triple root)", res.Var, roots[0])
	case len(roots) == 2:
		return fmt.Sprintf("%s = %s, %s = %s (double root)", res.Var, roots[0], res.Var, roots[1])
	}
	return fmt.Sprintf("%s = %s, %s = %s, %s = %s", res.Var, roots[0], res.Var, roots[1], res.Var, roots[2])
}

// solveAnyEquation routes an extracted equation by its literal degree
// markers. Shared by the compound handler.
func (s *Solver) solveAnyEquation(ctx context.Context, eq string, log *StepLog) (answer string, err error) {
	switch {
	case strings.Contains(eq, "^3"):
		answer, _, err = s.solveCubicEq(ctx, eq, log)
	case strings.Contains(eq, "^2"):
		answer, _, err = s.solveQuadraticEq(ctx, eq, log)
	default:
		answer, _, err = s.solveLinearEq(ctx, eq, log)
	}
	return answer, err
}

// ---------------- graphing -----------------

// extractGraphExpr pulls the function out of a graph request, preferring
// the right-hand side of y = f(x).
func extractGraphExpr(problem string) string {
	s := reGraphWords.ReplaceAllString(problem, " ")
	if i := strings.LastIndex(s, "="); i >= 0 {
		s = s[i+1:]
	}
	s = reSpaces.ReplaceAllString(s, " ")
	return unwrapParens(strings.Trim(s, " .,;:"))
}

func (s *Solver) solveGraph(ctx context.Context, problem string, log *StepLog) (string, *Visualization, error) {
	expr := extractGraphExpr(problem)
	if expr == "" {
		return "", nil, fmt.Errorf("graph: no function in %q", problem)
	}
	desc, err := describeCurve(expr, log)
	if err != nil {
		return "", nil, err
	}
	viz := &Visualization{Kind: "graph", Expression: "y = " + expr, Note: desc}
	return desc, viz, nil
}

// describeCurve reports the features a hand-drawn sketch would start from.
func describeCurve(expr string, log *StepLog) (string, error) {
	coeffs := make([]float64, 4)
	if err := accumulatePoly(coeffs, expr, 1); err != nil {
		return "", fmt.Errorf("graph: %w", err)
	}
	switch {
	case coeffs[3] != 0:
		end := "falls to the left and rises to the right"
		if coeffs[3] < 0 {
			end = "rises to the left and falls to the right"
		}
		log.Add("Identify the curve", fmt.Sprintf("y = %s is a cubic; it %s", expr, end))
		log.Add("Find the y-intercept", fmt.Sprintf("y(0) = %s", fmtNum(coeffs[0])))
		return fmt.Sprintf("a cubic curve that %s, crossing the y-axis at %s", end, fmtNum(coeffs[0])), nil

	case coeffs[2] != 0:
		a, b, c := coeffs[2], coeffs[1], coeffs[0]
		vx := -b / (2 * a)
		vy := a*vx*vx + b*vx + c
		opens := "upward"
		if a < 0 {
			opens = "downward"
		}
		log.Add("Identify the curve", fmt.Sprintf("y = %s is a parabola opening %s", expr, opens))
		log.Add("Find the vertex", fmt.Sprintf("x = -b/2a = %s, y = %s", fmtNum(roundNice(vx)), fmtNum(roundNice(vy))))
		log.Add("Find the y-intercept", fmt.Sprintf("y(0) = %s", fmtNum(c)))
		return fmt.Sprintf("a parabola opening %s with vertex (%s, %s)", opens, fmtNum(roundNice(vx)), fmtNum(roundNice(vy))), nil

	case coeffs[1] != 0:
		m, b := coeffs[1], coeffs[0]
		log.Add("Identify the curve", fmt.Sprintf("y = %s is a line with slope %s", expr, fmtNum(m)))
		log.Add("Find the intercepts", fmt.Sprintf("y-intercept %s, x-intercept %s", fmtNum(b), fmtNum(roundNice(-b/m))))
		return fmt.Sprintf("a line with slope %s and y-intercept %s", fmtNum(m), fmtNum(b)), nil
	}
	log.Add("Identify the curve", fmt.Sprintf("y = %s is a horizontal line", fmtNum(coeffs[0])))
	return fmt.Sprintf("a horizontal line at y = %s", fmtNum(coeffs[0])), nil
}

// ---------------- compound -----------------

// solveCompound handles "solve ... then graph ..." requests: the equation
// first, then a sketch description of the related function.
func (s *Solver) solveCompound(ctx context.Context, problem string, log *StepLog) (string, *Visualization, error) {
	eq, err := findEquation(problem)
	if err != nil {
		return s.solveGraph(ctx, problem, log)
	}
	// "y = f(x)" means find the roots of f, not solve for the letter y.
	if left, right, ok := strings.Cut(eq, "="); ok && strings.EqualFold(strings.TrimSpace(left), "y") {
		eq = strings.TrimSpace(right) + " = 0"
	}
	answer, err := s.solveAnyEquation(ctx, eq, log)
	if err != nil {
		return "", nil, err
	}

	fn := graphPartOf(problem)
	if fn == "" {
		left, _, _ := strings.Cut(eq, "=")
		fn = strings.TrimSpace(left)
	}
	desc, derr := describeCurve(fn, log)
	if derr != nil {
		return answer, nil, nil
	}
	viz := &Visualization{Kind: "graph", Expression: "y = " + fn, Note: desc}
	return answer + "; the graph is " + desc, viz, nil
}

var reGraphVerb = regexp.MustCompile(`(?i)\b(?:graph|plot|sketch|draw)\b`)

// graphPartOf returns the function text after the graph verb, if any.
func graphPartOf(problem string) string {
	loc := reGraphVerb.FindStringIndex(problem)
	if loc == nil {
		return ""
	}
	return extractGraphExpr(problem[loc[1]:])
}

// ---------------- generic -----------------

// solveGeneric is the last route: direct evaluation, then like-term
// simplification, then an error for the fallback chain.
func (s *Solver) solveGeneric(ctx context.Context, problem string, log *StepLog) (string, *Visualization, error) {
	expr := stripQuestionWords(strings.ToLower(problem))
	if expr != "" {
		if v, err := EvalNumeric(expr); err == nil {
			log.Add("Evaluate directly", fmt.Sprintf("%s = %s", expr, fmtNum(roundNice(v))))
			return fmtNum(roundNice(v)), nil, nil
		}
		if simp, ok := simplifyExpression(expr); ok {
			log.Add("Combine like terms", fmt.Sprintf("%s = %s", expr, simp))
			return simp, nil, nil
		}
	}
	return "", nil, fmt.Errorf("no solving path matched %q", problem)
}

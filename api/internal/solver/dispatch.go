package solver

import (
	"context"
	"regexp"
	"strings"
)

// route pairs a detection predicate with its solver. Routes are evaluated
// in slice order and the FIRST match wins, so the order below encodes
// precedence between overlapping categories:
//
//   - compound solve-and-graph requests outrank everything;
//   - vectors outrank geometry because coordinate problems often also say
//     "plane" or "area";
//   - calculus outranks trigonometry and logarithms, so "differentiate
//     sin(x)" differentiates instead of evaluating, and outranks the
//     polynomial-equation routes, which key off literal ^3 and ^2 markers;
//   - trigonometry excludes area/perimeter wording so geometry problems
//     that merely use an angle stay geometric;
//   - the generic route matches everything and must stay last.
type route struct {
	name  string
	match func(lower string) bool
	solve func(ctx context.Context, problem string, log *StepLog) (string, *Visualization, error)
}

func (s *Solver) buildRoutes() []route {
	return []route{
		{"compound", matchCompound, s.solveCompound},
		{"graph", matchGraph, s.solveGraph},
		{"vector", matchVector, s.solveVector},
		{"matrix", matchMatrix, s.solveMatrix},
		{"statistics", matchStatistics, s.solveStatistics},
		{"geometry", matchGeometry, s.solveGeometry},
		{"derivative", matchDerivative, s.solveDerivative},
		{"integral", matchIntegral, s.solveIntegral},
		{"trigonometry", matchTrig, s.solveTrig},
		{"logarithm", matchLogarithm, s.solveLogarithm},
		{"cubic", matchCubic, s.solveCubicEq},
		{"quadratic", matchQuadratic, s.solveQuadraticEq},
		{"linear", matchLinear, s.solveLinearEq},
		{"arithmetic", matchArithmetic, s.solveArithmetic},
		{"generic", matchAlways, s.solveGeneric},
	}
}

// dispatch runs the first matching route. A route's failure is returned,
// not retried on later routes; the caller owns the fallback.
func (s *Solver) dispatch(ctx context.Context, problem string, log *StepLog) (name, answer string, viz *Visualization, err error) {
	lower := strings.ToLower(problem)
	for _, r := range s.routes {
		if !r.match(lower) {
			continue
		}
		answer, viz, err = r.solve(ctx, problem, log)
		return r.name, answer, viz, err
	}
	return "generic", "", nil, nil // unreachable, matchAlways is last
}

// ---------------- predicates -----------------

var (
	reVectorWord  = regexp.MustCompile(`\bvectors?\b|dot product|cross product|scalar product|unit vector|\bmagnitude\b`)
	reMatrixWord  = regexp.MustCompile(`\bmatrix\b|\bmatrices\b|\bdeterminant\b|inverse of|\btranspose\b|\[\s*\[`)
	reStatsWord   = regexp.MustCompile(`\bmean\b|\bmedian\b|\bmode\b|standard deviation|\bvariance\b|\baverage\b|range of|data set`)
	reGeoWord     = regexp.MustCompile(`\barea\b|\bperimeter\b|\bvolume\b|circumference|\bradius\b|\bdiameter\b|\btriangle\b|\bcircle\b|\brectangle\b|\bsphere\b|\bcylinder\b|\bcone\b|hypotenuse|surface area|\bsquare\b`)
	reTrigWord    = regexp.MustCompile(`\b(?:sin|cos|tan|sec|csc|cot|arcsin|arccos|arctan)\s*\(|\bsine\b|\bcosine\b|\btangent\b|trigonometr`)
	reLogWord     = regexp.MustCompile(`\blog\b|\bln\b|\blog\s*\(|\bln\s*\(|logarithm|\blog_?\d`)
	reDerivWord   = regexp.MustCompile(`derivative|differentiate|\bd/dx\b|\bdy/dx\b`)
	reIntWord     = regexp.MustCompile(`integral|integrate|∫|antiderivative`)
	rePureNumeric = regexp.MustCompile(`^[\d\s+\-*/().^%!,]+$`)
)

func matchCompound(l string) bool {
	return strings.Contains(l, "solve") && matchGraph(l)
}

func matchGraph(l string) bool { return reGraphVerb.MatchString(l) }

func matchVector(l string) bool {
	if reVectorWord.MatchString(l) {
		return true
	}
	return countTriples(l) >= 2
}

// countTriples counts 3-component coordinate tuples; two or more strongly
// suggest a vector problem even without the word.
func countTriples(l string) int {
	n := 0
	for _, m := range reTuple.FindAllStringSubmatch(l, -1) {
		if m[3] != "" {
			n++
		}
	}
	return n
}

func matchMatrix(l string) bool     { return reMatrixWord.MatchString(l) }
func matchStatistics(l string) bool { return reStatsWord.MatchString(l) }

func matchGeometry(l string) bool {
	// "square root" is not a shape.
	return reGeoWord.MatchString(l) && !strings.Contains(l, "square root")
}

func matchTrig(l string) bool {
	return reTrigWord.MatchString(l) && !reAreaPerim.MatchString(l)
}

func matchLogarithm(l string) bool  { return reLogWord.MatchString(l) }
func matchDerivative(l string) bool { return reDerivWord.MatchString(l) }
func matchIntegral(l string) bool   { return reIntWord.MatchString(l) }

func matchCubic(l string) bool {
	if strings.Contains(l, "cubic") && strings.Contains(l, "equation") {
		return true
	}
	return strings.Contains(l, "^3") && strings.Contains(l, "=")
}

func matchQuadratic(l string) bool {
	if strings.Contains(l, "quadratic") {
		return true
	}
	return strings.Contains(l, "^2") && strings.Contains(l, "=")
}

func matchLinear(l string) bool {
	return strings.Contains(l, "=") && reVarLetter.MatchString(l)
}

func matchArithmetic(l string) bool {
	t := strings.TrimSpace(l)
	return t != "" && rePureNumeric.MatchString(t)
}

func matchAlways(string) bool { return true }

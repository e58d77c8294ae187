package solver

import (
	"regexp"
	"strings"
)

// ---------------- category table -----------------

// Category pairs a topic label with its keyword list. A keyword scores its
// own character length on a case-insensitive substring hit, so longer and
// more specific keywords outweigh short generic ones.
type Category struct {
	Name     string
	Keywords []string
}

// DefaultCategories is the topic taxonomy in tie-break order: on equal
// scores the earlier entry wins. Read-only after init.
var DefaultCategories = []Category{
	{"Algebra", []string{"solve", "equation", "variable", "simplify", "expand", "factor", "polynomial", "quadratic", "cubic", "linear", "roots", "inequality", "expression"}},
	{"Calculus", []string{"derivative", "differentiate", "integral", "integrate", "antiderivative", "limit", "tangent line", "rate of change", "critical point", "maxima", "minima"}},
	{"Geometry", []string{"area", "perimeter", "volume", "circle", "triangle", "rectangle", "square", "radius", "diameter", "circumference", "angle", "polygon", "sphere", "cylinder", "cone", "hypotenuse", "pythagorean"}},
	{"Trigonometry", []string{"sin", "cos", "tan", "sine", "cosine", "tangent", "sec", "csc", "cot", "trigonometric", "radian", "degree"}},
	{"Vector", []string{"vector", "dot product", "cross product", "magnitude", "unit vector", "scalar", "direction", "component"}},
	{"Matrix", []string{"matrix", "matrices", "determinant", "inverse", "transpose", "eigenvalue", "identity matrix"}},
	{"Statistics", []string{"mean", "median", "mode", "standard deviation", "variance", "probability", "average", "data set"}},
	{"Number Theory", []string{"prime", "factorial", "divisible", "divisor", "remainder", "modulo", "gcd", "lcm", "greatest common", "least common"}},
	{"Complex Numbers", []string{"complex number", "imaginary", "real part", "conjugate"}},
	{"Logarithms", []string{"log", "ln", "logarithm", "natural log", "exponential"}},
	{"Sequences", []string{"sequence", "series", "arithmetic progression", "geometric progression", "nth term", "common difference", "common ratio", "fibonacci"}},
	{"Combinatorics", []string{"permutation", "combination", "choose", "arrange", "binomial", "how many ways"}},
	{"Graphing", []string{"graph", "plot", "sketch", "intercept", "slope", "parabola", "axis"}},
	{"Arithmetic", []string{"sum of", "difference of", "product of", "quotient", "percent"}},
}

// GeneralCategory labels problems no category scored on.
const GeneralCategory = "General Mathematics"

// ---------------- pattern bonuses -----------------

// Bonus adds fixed points to one category when a structural cue matches.
type Bonus struct {
	Category string
	Pattern  *regexp.Regexp
	Points   int
}

var (
	reExponent  = regexp.MustCompile(`\^|²|³`)
	reCalcCue   = regexp.MustCompile(`∫|\bd/dx\b|derivative|integral|antiderivative`)
	reTripleCue = regexp.MustCompile(`\(\s*-?\d+(?:\.\d+)?\s*,\s*-?\d+(?:\.\d+)?\s*,\s*-?\d+(?:\.\d+)?\s*\)`)
	reMatrixCue = regexp.MustCompile(`\[\s*\[`)
	reTrigCall  = regexp.MustCompile(`\b(?:sin|cos|tan|sec|csc|cot)\s*\(`)
	reLogCall   = regexp.MustCompile(`\b(?:log|ln)\s*\(`)
	rePureArith = regexp.MustCompile(`^[\d\s+\-*/().^%=,]+$`)
	reAreaPerim = regexp.MustCompile(`area|perimeter`)
)

// DefaultBonuses rewards structural cues keyword matching cannot see.
// Read-only after init.
var DefaultBonuses = []Bonus{
	{"Algebra", reExponent, 10},
	{"Calculus", reCalcCue, 15},
	{"Vector", reTripleCue, 15},
	{"Matrix", reMatrixCue, 20},
	{"Trigonometry", reTrigCall, 10},
	{"Logarithms", reLogCall, 10},
	{"Arithmetic", rePureArith, 25},
}

// ---------------- classifier -----------------

// Classifier labels problems with a topic from a fixed taxonomy. Tables are
// immutable after construction, so one Classifier is safe for concurrent use.
type Classifier struct {
	categories []Category
	bonuses    []Bonus
}

// NewClassifier builds a classifier over the given tables. Nil tables fall
// back to the defaults.
func NewClassifier(categories []Category, bonuses []Bonus) *Classifier {
	if categories == nil {
		categories = DefaultCategories
	}
	if bonuses == nil {
		bonuses = DefaultBonuses
	}
	return &Classifier{categories: categories, bonuses: bonuses}
}

var defaultClassifier = NewClassifier(nil, nil)

// Classify labels a problem using the default tables. Advisory only: the
// dispatcher routes on its own predicates, this label is for records and
// reports.
func Classify(problem string) string {
	return defaultClassifier.Classify(problem)
}

// Classify scores every category and returns the strict winner. Ties keep
// the earlier category; a zero score maps to GeneralCategory.
func (c *Classifier) Classify(problem string) string {
	lower := strings.ToLower(problem)

	// A problem about area or perimeter is a geometry problem even when it
	// computes with trig functions along the way.
	geometric := reAreaPerim.MatchString(lower)

	best, bestScore := GeneralCategory, 0
	for _, cat := range c.categories {
		if cat.Name == "Trigonometry" && geometric {
			continue
		}
		score := 0
		for _, kw := range cat.Keywords {
			if strings.Contains(lower, kw) {
				score += len(kw)
			}
		}
		for _, b := range c.bonuses {
			if b.Category == cat.Name && b.Pattern.MatchString(lower) {
				score += b.Points
			}
		}
		if score > bestScore {
			best, bestScore = cat.Name, score
		}
	}
	return best
}

package solver

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// antiderivative pairs the printed antiderivative of one term with a
// closure evaluating it at a bound. at is nil when the term came from the
// oracle or the placeholder rule and cannot be evaluated numerically.
type antiderivative struct {
	text string
	at   func(float64) float64
}

// Oracle is an external symbolic evaluator consulted when the rule table
// has no answer. Implementations live outside this package.
type Oracle interface {
	SolveText(ctx context.Context, problem string) (string, error)
	Evaluate(ctx context.Context, expr string) (string, error)
}

// Integrate computes the indefinite integral of a sum of recognized terms,
// appending one justification step per term to log. The constant of
// integration is left to the caller.
func Integrate(expr string, log *StepLog) (string, error) {
	parts, err := integrateParts(context.Background(), nil, expr, log)
	if err != nil {
		return "", err
	}
	return joinAntiderivatives(parts), nil
}

// IntegrateDefinite evaluates the antiderivative at both bounds and
// subtracts. ok is false when the antiderivative is not numerically
// evaluable; callers should then present the indefinite form instead.
func IntegrateDefinite(expr string, lo, hi float64, log *StepLog) (float64, bool, error) {
	parts, err := integrateParts(context.Background(), nil, expr, log)
	if err != nil {
		return 0, false, err
	}
	return evaluateBounds(parts, lo, hi, log)
}

func joinAntiderivatives(parts []antiderivative) string {
	texts := make([]string, 0, len(parts))
	for _, p := range parts {
		texts = append(texts, p.text)
	}
	return joinTerms(texts)
}

// evaluateBounds computes F(hi) - F(lo) across all terms.
func evaluateBounds(parts []antiderivative, lo, hi float64, log *StepLog) (float64, bool, error) {
	var upper, lower float64
	for _, p := range parts {
		if p.at == nil {
			return 0, false, nil
		}
		upper += p.at(hi)
		lower += p.at(lo)
	}
	v := upper - lower
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, nil
	}
	log.Add("Evaluate the antiderivative at the bounds",
		fmt.Sprintf("F(%s) - F(%s) = %s - %s = %s", fmtNum(hi), fmtNum(lo), fmtNum(upper), fmtNum(lower), fmtNum(v)))
	return v, true, nil
}

// integrateParts splits the expression and integrates term by term.
func integrateParts(ctx context.Context, oracle Oracle, expr string, log *StepLog) ([]antiderivative, error) {
	terms := splitTerms(expr)
	if len(terms) == 0 {
		return nil, fmt.Errorf("integrate: empty expression")
	}
	parts := make([]antiderivative, 0, len(terms))
	for _, p := range terms {
		parts = append(parts, integrateTerm(ctx, oracle, p, log))
	}
	return parts, nil
}

// integrateTerm applies the first matching rule in fixed priority order.
// Total: unmatched terms go to the oracle, then to a placeholder.
func integrateTerm(ctx context.Context, oracle Oracle, p string, log *StepLog) antiderivative {
	t, ok := parseTerm(p)
	if !ok {
		return integrateUnknown(ctx, oracle, p, log)
	}

	var a antiderivative
	switch t.kind {
	case termConstant:
		c := t.coef
		a = antiderivative{monoText(c, 1), func(v float64) float64 { return c * v }}

	case termFunc:
		a = integrateFunc(t)
		if a.text == "" {
			return integrateUnknown(ctx, oracle, p, log)
		}

	default:
		a = integratePower(t)
	}

	log.Add("Integrate the term", fmt.Sprintf("∫ %s dx = %s", t.raw, a.text))
	return a
}

// integrateFunc handles the named special functions. An empty text means
// no rule exists for this function.
func integrateFunc(t term) antiderivative {
	c := t.coef
	switch t.fn {
	case "sin":
		return antiderivative{coefPrefix(-c) + "cos(x)", func(v float64) float64 { return -c * math.Cos(v) }}
	case "cos":
		return antiderivative{coefPrefix(c) + "sin(x)", func(v float64) float64 { return c * math.Sin(v) }}
	case "sec2":
		return antiderivative{coefPrefix(c) + "tan(x)", func(v float64) float64 { return c * math.Tan(v) }}
	case "csc2":
		return antiderivative{coefPrefix(-c) + "cot(x)", func(v float64) float64 { return -c * math.Cos(v) / math.Sin(v) }}
	case "sectan":
		return antiderivative{coefPrefix(c) + "sec(x)", func(v float64) float64 { return c / math.Cos(v) }}
	case "csccot":
		return antiderivative{coefPrefix(-c) + "csc(x)", func(v float64) float64 { return -c / math.Sin(v) }}
	case "exp":
		k := t.k
		switch k {
		case 0:
			return antiderivative{monoText(c, 1), func(v float64) float64 { return c * v }}
		case 1:
			return antiderivative{coefPrefix(c) + "e^x", func(v float64) float64 { return c * math.Exp(v) }}
		}
		return antiderivative{coefPrefix(c/k) + "e^(" + fmtNum(k) + "x)", func(v float64) float64 { return c / k * math.Exp(k*v) }}
	case "ln", "log":
		name := t.fn
		text := "x·" + name + "(x) - x"
		if c != 1 {
			text = coefPrefix(c) + "(x·" + name + "(x) - x)"
		}
		return antiderivative{text, func(v float64) float64 { return c * (v*math.Log(v) - v) }}
	case "sqrt":
		// coef·x^(1/2) under the power rule: (2·coef/3)·x^(3/2).
		num := 2 * c
		text := coefPrefix(num) + "x^(3/2)/3"
		if q := num / 3; q == math.Trunc(q) {
			text = coefPrefix(q) + "x^(3/2)"
		}
		return antiderivative{text, func(v float64) float64 { return num / 3 * math.Pow(v, 1.5) }}
	case "inv1px2":
		return antiderivative{"arctan(x)", math.Atan}
	case "invsqrt1mx2":
		return antiderivative{"arcsin(x)", math.Asin}
	}
	return antiderivative{}
}

// integratePower applies the power rule, with exponent -1 routed to the
// logarithm form instead of a division by zero.
func integratePower(t term) antiderivative {
	c := t.coef
	if t.exp == -1 {
		return antiderivative{coefPrefix(c) + "ln|x|", func(v float64) float64 { return c * math.Log(math.Abs(v)) }}
	}
	n := t.exp + 1
	return antiderivative{fracPowerText(c, t.exp), func(v float64) float64 { return c * math.Pow(v, n) / n }}
}

// fracPowerText renders coef·x^(n+1)/(n+1), folding the division into the
// coefficient when it comes out whole.
func fracPowerText(coef, exp float64) string {
	n := exp + 1
	q := coef / n
	if q == math.Trunc(q) {
		return monoText(q, n)
	}
	if coef == 1 {
		return fmt.Sprintf("x^%s/%s", fmtNum(n), fmtNum(n))
	}
	return fmt.Sprintf("%sx^%s/%s", fmtNum(coef), fmtNum(n), fmtNum(n))
}

// integrateUnknown defers to the oracle, then falls back to the documented
// placeholder of appending the integration variable.
func integrateUnknown(ctx context.Context, oracle Oracle, p string, log *StepLog) antiderivative {
	if oracle != nil {
		res, err := oracle.Evaluate(ctx, "indefinite integral of "+p+" with respect to x")
		res = strings.TrimSpace(res)
		if err == nil && res != "" && res != "undefined" && res != "NaN" {
			log.Add("Integrate via the symbolic evaluator", fmt.Sprintf("∫ %s dx = %s", p, res))
			return antiderivative{text: res}
		}
	}
	log.Add("No closed-form rule matched; keeping the term as-is", fmt.Sprintf("∫ %s dx ≈ %s·x", p, p))
	return antiderivative{text: p + "·x"}
}

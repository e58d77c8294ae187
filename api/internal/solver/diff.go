package solver

import (
	"fmt"
)

// Differentiate computes d/dx of a sum of recognized terms, appending one
// justification step per term to log. Unrecognized terms fail the whole
// call; the caller decides whether to fall back.
func Differentiate(expr string, log *StepLog) (string, error) {
	parts := splitTerms(expr)
	if len(parts) == 0 {
		return "", fmt.Errorf("differentiate: empty expression")
	}

	var out []string
	for _, p := range parts {
		t, ok := parseTerm(p)
		if !ok {
			return "", fmt.Errorf("differentiate: unrecognized term %q", p)
		}
		d, err := differentiateTerm(t, log)
		if err != nil {
			return "", err
		}
		if d != "0" {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		return "0", nil
	}
	return joinTerms(out), nil
}

// differentiateTerm applies the first matching rule, in fixed priority:
// constant, named function, power rule.
func differentiateTerm(t term, log *StepLog) (string, error) {
	switch t.kind {
	case termConstant:
		log.Add("The derivative of a constant is zero", fmt.Sprintf("d/dx(%s) = 0", t.raw))
		return "0", nil

	case termFunc:
		var d string
		switch t.fn {
		case "sin":
			d = coefPrefix(t.coef) + "cos(x)"
		case "cos":
			d = coefPrefix(-t.coef) + "sin(x)"
		case "tan":
			d = coefPrefix(t.coef) + "sec^2(x)"
		case "exp":
			if t.k == 1 {
				d = coefPrefix(t.coef) + "e^x"
			} else {
				d = coefPrefix(t.coef*t.k) + "e^(" + fmtNum(t.k) + "x)"
			}
		case "ln", "log":
			d = fmtNum(t.coef) + "/x"
		case "sqrt":
			if t.coef == 1 {
				d = "1/(2√x)"
			} else {
				d = fmtNum(t.coef) + "/(2√x)"
			}
		default:
			return "", fmt.Errorf("differentiate: no rule for %q", t.raw)
		}
		log.Add("Differentiate the function term", fmt.Sprintf("d/dx(%s) = %s", t.raw, d))
		return d, nil

	default:
		d := monoText(t.coef*t.exp, t.exp-1)
		log.Add("Apply the power rule", fmt.Sprintf("d/dx(%s) = %s", t.raw, d))
		return d, nil
	}
}

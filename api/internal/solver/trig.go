package solver

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// reTrigCallArg matches one trig call with its argument expression.
var reTrigCallArg = regexp.MustCompile(`\b(arcsin|arccos|arctan|asin|acos|atan|sin|cos|tan|sec|csc|cot)\s*\(\s*([^()]+?)\s*\)`)

// solveTrig evaluates trig expressions with degree arguments, stepping
// through each function value before combining them.
func (s *Solver) solveTrig(ctx context.Context, problem string, log *StepLog) (string, *Visualization, error) {
	lower := strings.ToLower(problem)
	calls := reTrigCallArg.FindAllStringSubmatch(lower, -1)
	if len(calls) == 0 {
		return "", nil, fmt.Errorf("trigonometry: no trig function call in %q", problem)
	}

	for _, m := range calls {
		fn, argText := m[1], m[2]
		arg, err := EvalNumeric(argText)
		if err != nil {
			return "", nil, fmt.Errorf("trigonometry: bad argument %q: %w", argText, err)
		}
		v, err := applyFunc(fn, arg)
		if err != nil {
			return "", nil, err
		}
		if strings.HasPrefix(fn, "a") {
			log.Add("Evaluate the inverse function", fmt.Sprintf("%s(%s) = %s°", fn, fmtNum(arg), fmtNum(roundNice(v))))
		} else {
			log.Add("Evaluate at the angle in degrees", fmt.Sprintf("%s(%s°) = %s", fn, fmtNum(arg), fmtNum(roundNice(v))))
		}
	}

	expr := stripQuestionWords(lower)
	v, err := EvalNumeric(expr)
	if err != nil {
		// The calls themselves evaluated; report them without combining.
		var parts []string
		for _, m := range calls {
			arg, aerr := EvalNumeric(m[2])
			if aerr != nil {
				continue
			}
			val, verr := applyFunc(m[1], arg)
			if verr != nil {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s(%s) = %s", m[1], fmtNum(arg), fmtNum(roundNice(val))))
		}
		if len(parts) == 0 {
			return "", nil, err
		}
		return strings.Join(parts, ", "), nil, nil
	}
	log.Add("Combine the values", fmt.Sprintf("%s = %s", expr, fmtNum(roundNice(v))))
	return fmtNum(roundNice(v)), nil, nil
}

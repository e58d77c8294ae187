package solver

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// "log base 2 of 8" and "log2(8)" phrasings.
	reLogBaseOf = regexp.MustCompile(`log\s+base\s+(\d+(?:\.\d+)?)\s+of\s+(-?\d+(?:\.\d+)?)`)
	reLogSubNum = regexp.MustCompile(`\blog_?(\d+(?:\.\d+)?)\s*\(\s*(-?\d+(?:\.\d+)?)\s*\)`)
	reLogCalls  = regexp.MustCompile(`\b(log|ln)\s*\(\s*([^()]+?)\s*\)`)
)

// solveLogarithm evaluates logarithm expressions: explicit bases via the
// change-of-base rule, log as base 10, ln as natural.
func (s *Solver) solveLogarithm(ctx context.Context, problem string, log *StepLog) (string, *Visualization, error) {
	lower := strings.ToLower(problem)

	if m := reLogBaseOf.FindStringSubmatch(lower); m != nil {
		return logWithBase(m[1], m[2], log)
	}
	if m := reLogSubNum.FindStringSubmatch(lower); m != nil {
		return logWithBase(m[1], m[2], log)
	}

	calls := reLogCalls.FindAllStringSubmatch(lower, -1)
	if len(calls) == 0 {
		return "", nil, fmt.Errorf("logarithm: no log expression in %q", problem)
	}
	for _, m := range calls {
		arg, err := EvalNumeric(m[2])
		if err != nil {
			return "", nil, fmt.Errorf("logarithm: bad argument %q: %w", m[2], err)
		}
		v, err := applyFunc(m[1], arg)
		if err != nil {
			return "", nil, err
		}
		base := "base 10"
		if m[1] == "ln" {
			base = "base e"
		}
		log.Add("Evaluate the logarithm ("+base+")",
			fmt.Sprintf("%s(%s) = %s", m[1], fmtNum(roundNice(arg)), fmtNum(roundNice(v))))
	}

	expr := stripQuestionWords(lower)
	v, err := EvalNumeric(expr)
	if err != nil {
		if len(calls) == 1 {
			arg, _ := EvalNumeric(calls[0][2])
			val, verr := applyFunc(calls[0][1], arg)
			if verr != nil {
				return "", nil, verr
			}
			return fmtNum(roundNice(val)), nil, nil
		}
		return "", nil, err
	}
	log.Add("Combine the values", fmt.Sprintf("%s = %s", expr, fmtNum(roundNice(v))))
	return fmtNum(roundNice(v)), nil, nil
}

// logWithBase applies the change-of-base rule for an explicit base.
func logWithBase(baseText, argText string, log *StepLog) (string, *Visualization, error) {
	base, err := strconv.ParseFloat(baseText, 64)
	if err != nil || base <= 0 || base == 1 {
		return "", nil, fmt.Errorf("logarithm: bad base %q", baseText)
	}
	arg, err := strconv.ParseFloat(argText, 64)
	if err != nil || arg <= 0 {
		return "", nil, fmt.Errorf("logarithm: log of a non-positive number")
	}
	v := math.Log(arg) / math.Log(base)
	log.Add("Apply the change-of-base rule",
		fmt.Sprintf("log_%s(%s) = ln(%s)/ln(%s) = %s", fmtNum(base), fmtNum(arg), fmtNum(arg), fmtNum(base), fmtNum(roundNice(v))))
	return fmtNum(roundNice(v)), nil, nil
}

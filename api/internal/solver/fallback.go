package solver

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Strategy is one generic attempt in the fallback chain. Try reports ok
// only when it produced a presentable answer; failures carry no error
// because the chain simply moves on.
type Strategy struct {
	Name string
	Try  func(ctx context.Context, s *Solver, problem string, log *StepLog) (string, bool)
}

// defaultStrategies is the ranked chain: external symbolic solve, external
// symbolic evaluate, direct numeric evaluation, like-term simplification,
// then the closed set of word patterns.
func defaultStrategies() []Strategy {
	return []Strategy{
		{"symbolic solve", tryOracleSolve},
		{"symbolic evaluate", tryOracleEvaluate},
		{"numeric evaluate", tryDirectEval},
		{"combine like terms", trySimplify},
		{"pattern match", tryPatterns},
	}
}

// fallback guarantees a record for any input. It never returns an error
// and never panics: when every strategy fails it produces a diagnostic
// record carrying the original failure for observability.
func (s *Solver) fallback(ctx context.Context, problem string, number int, category string, cause error) Solution {
	for _, st := range s.strategies {
		slog := &StepLog{}
		ans, ok := st.Try(ctx, s, problem, slog)
		ans = strings.TrimSpace(ans)
		if !ok || ans == "" || ans == "undefined" || ans == "NaN" {
			continue
		}
		return Solution{
			Number:   number,
			Problem:  problem,
			Category: category,
			Steps:    slog.Steps(),
			Answer:   ans,
		}
	}

	slog := &StepLog{}
	vars := detectVariables(problem)
	ops := detectOperators(problem)
	if len(vars) > 0 || len(ops) > 0 {
		slog.Add("Identify the structure",
			fmt.Sprintf("variables: %s; operators: %s", orNone(vars), orNone(ops)))
	}
	slog.Add("Every solving strategy was exhausted", "the problem needs manual analysis")
	msg := "no solving strategy matched"
	if cause != nil {
		msg = cause.Error()
	}
	return Solution{
		Number:   number,
		Problem:  problem,
		Category: category,
		Steps:    slog.Steps(),
		Answer:   "This problem requires manual analysis.",
		Err:      msg,
	}
}

// ---------------- strategies -----------------

func tryOracleSolve(ctx context.Context, s *Solver, problem string, log *StepLog) (string, bool) {
	if s.oracle == nil {
		return "", false
	}
	res, err := s.oracle.SolveText(ctx, problem)
	res = strings.TrimSpace(res)
	if err != nil || res == "" {
		return "", false
	}
	log.Add("Solve with the external symbolic solver", res)
	return res, true
}

func tryOracleEvaluate(ctx context.Context, s *Solver, problem string, log *StepLog) (string, bool) {
	if s.oracle == nil {
		return "", false
	}
	expr := stripQuestionWords(strings.ToLower(problem))
	if expr == "" {
		return "", false
	}
	res, err := s.oracle.Evaluate(ctx, expr)
	res = strings.TrimSpace(res)
	if err != nil || res == "" {
		return "", false
	}
	log.Add("Evaluate with the external symbolic evaluator", fmt.Sprintf("%s = %s", expr, res))
	return res, true
}

func tryDirectEval(ctx context.Context, s *Solver, problem string, log *StepLog) (string, bool) {
	expr := stripQuestionWords(strings.ToLower(problem))
	if expr == "" {
		return "", false
	}
	v, err := EvalNumeric(expr)
	if err != nil {
		return "", false
	}
	log.Add("Evaluate the expression directly", fmt.Sprintf("%s = %s", expr, fmtNum(roundNice(v))))
	return fmtNum(roundNice(v)), true
}

func trySimplify(ctx context.Context, s *Solver, problem string, log *StepLog) (string, bool) {
	expr := stripQuestionWords(strings.ToLower(problem))
	simp, ok := simplifyExpression(expr)
	if !ok {
		return "", false
	}
	log.Add("Combine like terms", fmt.Sprintf("%s = %s", expr, simp))
	return simp, true
}

// The closed set of word patterns: factorial, percentage, ratio
// simplification and primality.
var (
	reFactorialAsk = regexp.MustCompile(`(\d+)\s*!|factorial of\s*(\d+)`)
	rePercentAsk   = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s*(?:%|percent)\s*of\s*(-?\d+(?:\.\d+)?)`)
	reRatioAsk     = regexp.MustCompile(`(\d+)\s*:\s*(\d+)`)
	rePrimeAsk     = regexp.MustCompile(`is\s+(\d+)\s+(?:a\s+)?prime`)
)

func tryPatterns(ctx context.Context, s *Solver, problem string, log *StepLog) (string, bool) {
	lower := strings.ToLower(problem)

	if m := rePrimeAsk.FindStringSubmatch(lower); m != nil {
		n, _ := evalRatio(m[1])
		switch {
		case n < 2:
			log.Add("Check the definition", "primes start at 2")
			return m[1] + " is not a prime number", true
		case isPrime(int(n)):
			log.Add("Trial-divide up to the square root", fmt.Sprintf("%s has no divisors besides 1 and itself", m[1]))
			return m[1] + " is a prime number", true
		}
		d := smallestDivisor(int(n))
		log.Add("Trial-divide up to the square root", fmt.Sprintf("%s = %d · %d", m[1], d, int(n)/d))
		return m[1] + " is not a prime number", true
	}

	if m := rePercentAsk.FindStringSubmatch(lower); m != nil {
		p, _ := evalRatio(m[1])
		n, _ := evalRatio(m[2])
		v := p / 100 * n
		log.Add("Convert the percentage to a fraction",
			fmt.Sprintf("%s%% of %s = %s/100 · %s = %s", m[1], m[2], m[1], m[2], fmtNum(roundNice(v))))
		return fmtNum(roundNice(v)), true
	}

	if m := reFactorialAsk.FindStringSubmatch(lower); m != nil {
		text := m[1]
		if text == "" {
			text = m[2]
		}
		n, _ := evalRatio(text)
		v, err := factorial(n)
		if err != nil {
			return "", false
		}
		log.Add("Multiply the integers down from n", fmt.Sprintf("%s! = %s", text, fmtNum(v)))
		return fmt.Sprintf("%s! = %s", text, fmtNum(v)), true
	}

	if strings.Contains(lower, "ratio") || strings.Contains(lower, "simplif") {
		if m := reRatioAsk.FindStringSubmatch(lower); m != nil {
			a, _ := evalRatio(m[1])
			b, _ := evalRatio(m[2])
			g := gcd(int(a), int(b))
			if g > 1 {
				log.Add("Divide both parts by their greatest common divisor",
					fmt.Sprintf("%s:%s = %d:%d (gcd %d)", m[1], m[2], int(a)/g, int(b)/g, g))
				return fmt.Sprintf("%d:%d", int(a)/g, int(b)/g), true
			}
			log.Add("Check the greatest common divisor", fmt.Sprintf("%s:%s is already in simplest form", m[1], m[2]))
			return m[1] + ":" + m[2], true
		}
	}
	return "", false
}

// ---------------- diagnostics -----------------

func detectVariables(problem string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range reVarLetter.FindAllStringSubmatch(problem, -1) {
		v := strings.ToLower(m[1])
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func detectOperators(problem string) []string {
	var out []string
	for _, op := range []string{"+", "-", "*", "/", "^", "√", "="} {
		if strings.Contains(problem, op) {
			out = append(out, op)
		}
	}
	return out
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

func smallestDivisor(n int) int {
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return d
		}
	}
	return n
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

package solver

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// solveStatistics computes the requested summary statistics over every
// number mentioned in the problem. Population formulas throughout, the
// school convention.
func (s *Solver) solveStatistics(ctx context.Context, problem string, log *StepLog) (string, *Visualization, error) {
	xs := allNumbers(problem)
	if len(xs) == 0 {
		return "", nil, fmt.Errorf("statistics: no data values in %q", problem)
	}
	lower := strings.ToLower(problem)
	log.Add("Collect the data", fmt.Sprintf("values: %s (n = %d)", joinNums(xs), len(xs)))

	var answers []string
	add := func(name, text string) {
		answers = append(answers, name+" = "+text)
	}

	if strings.Contains(lower, "mean") || strings.Contains(lower, "average") {
		m := stat.Mean(xs, nil)
		log.Add("Divide the sum by the count",
			fmt.Sprintf("mean = %s / %d = %s", fmtNum(roundNice(floats.Sum(xs))), len(xs), fmtNum(roundNice(m))))
		add("mean", fmtNum(roundNice(m)))
	}
	if strings.Contains(lower, "median") {
		m := median(xs)
		log.Add("Sort the values and take the middle", fmt.Sprintf("median = %s", fmtNum(roundNice(m))))
		add("median", fmtNum(roundNice(m)))
	}
	if strings.Contains(lower, "mode") {
		m, ok := mode(xs)
		if ok {
			log.Add("Count occurrences and keep the most frequent", fmt.Sprintf("mode = %s", fmtNum(m)))
			add("mode", fmtNum(m))
		} else {
			log.Add("Count occurrences", "every value appears once, there is no mode")
			add("mode", "none")
		}
	}
	if strings.Contains(lower, "standard deviation") {
		sd := stat.PopStdDev(xs, nil)
		log.Add("Take the square root of the population variance",
			fmt.Sprintf("σ = √(Σ(xᵢ-μ)²/n) = %s", fmtNum(roundNice(sd))))
		add("standard deviation", fmtNum(roundNice(sd)))
	}
	if strings.Contains(lower, "variance") {
		v := stat.PopVariance(xs, nil)
		log.Add("Average the squared deviations from the mean",
			fmt.Sprintf("σ² = Σ(xᵢ-μ)²/n = %s", fmtNum(roundNice(v))))
		add("variance", fmtNum(roundNice(v)))
	}
	if strings.Contains(lower, "range") {
		r := floats.Max(xs) - floats.Min(xs)
		log.Add("Subtract the smallest value from the largest",
			fmt.Sprintf("range = %s - %s = %s", fmtNum(floats.Max(xs)), fmtNum(floats.Min(xs)), fmtNum(roundNice(r))))
		add("range", fmtNum(roundNice(r)))
	}
	if strings.Contains(lower, "sum") {
		t := floats.Sum(xs)
		log.Add("Add all values", fmt.Sprintf("sum = %s", fmtNum(roundNice(t))))
		add("sum", fmtNum(roundNice(t)))
	}

	if len(answers) == 0 {
		m := stat.Mean(xs, nil)
		log.Add("Divide the sum by the count",
			fmt.Sprintf("mean = %s / %d = %s", fmtNum(roundNice(floats.Sum(xs))), len(xs), fmtNum(roundNice(m))))
		add("mean", fmtNum(roundNice(m)))
	}
	return strings.Join(answers, ", "), nil, nil
}

func joinNums(xs []float64) string {
	parts := make([]string, len(xs))
	for i, v := range xs {
		parts[i] = fmtNum(v)
	}
	return strings.Join(parts, ", ")
}

func median(xs []float64) float64 {
	c := append([]float64(nil), xs...)
	sort.Float64s(c)
	n := len(c)
	if n%2 == 1 {
		return c[n/2]
	}
	return (c[n/2-1] + c[n/2]) / 2
}

// mode returns the most frequent value; ok is false when every value is
// unique. Ties keep the value seen first.
func mode(xs []float64) (float64, bool) {
	counts := make(map[float64]int, len(xs))
	for _, v := range xs {
		counts[v]++
	}
	best, bestN := 0.0, 1
	for _, v := range xs {
		if counts[v] > bestN {
			best, bestN = v, counts[v]
		}
	}
	return best, bestN > 1
}

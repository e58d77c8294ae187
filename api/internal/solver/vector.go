package solver

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// reTuple matches a parenthesized 2- or 3-component coordinate tuple after
// normalization.
var reTuple = regexp.MustCompile(`\(\s*(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)(?:\s*,\s*(-?\d+(?:\.\d+)?))?\s*\)`)

// parseVectors pulls every coordinate tuple out of the problem text.
func parseVectors(text string) []*mat.VecDense {
	var out []*mat.VecDense
	for _, m := range reTuple.FindAllStringSubmatch(text, -1) {
		comps := []string{m[1], m[2]}
		if m[3] != "" {
			comps = append(comps, m[3])
		}
		data := make([]float64, len(comps))
		for i, c := range comps {
			v, err := strconv.ParseFloat(c, 64)
			if err != nil {
				return nil
			}
			data[i] = v
		}
		out = append(out, mat.NewVecDense(len(data), data))
	}
	return out
}

func vecText(v *mat.VecDense) string {
	parts := make([]string, v.Len())
	for i := range parts {
		parts[i] = fmtNum(v.AtVec(i))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// cross3 is the 3D cross product; gonum's mat has no cross, the formula is
// written out.
func cross3(a, b *mat.VecDense) *mat.VecDense {
	return mat.NewVecDense(3, []float64{
		a.AtVec(1)*b.AtVec(2) - a.AtVec(2)*b.AtVec(1),
		a.AtVec(2)*b.AtVec(0) - a.AtVec(0)*b.AtVec(2),
		a.AtVec(0)*b.AtVec(1) - a.AtVec(1)*b.AtVec(0),
	})
}

// solveVector answers dot/cross/magnitude/angle/sum questions about the
// coordinate tuples found in the problem.
func (s *Solver) solveVector(ctx context.Context, problem string, log *StepLog) (string, *Visualization, error) {
	vs := parseVectors(problem)
	if len(vs) == 0 {
		return "", nil, fmt.Errorf("vector: no coordinate tuples in %q", problem)
	}
	lower := strings.ToLower(problem)

	if len(vs) == 1 {
		v := vs[0]
		n := mat.Norm(v, 2)
		log.Add("Compute the magnitude", fmt.Sprintf("|%s| = √(Σ aᵢ²) = %s", vecText(v), fmtNum(roundNice(n))))
		if strings.Contains(lower, "unit") {
			if n == 0 {
				return "", nil, fmt.Errorf("vector: the zero vector has no unit vector")
			}
			u := mat.NewVecDense(v.Len(), nil)
			u.ScaleVec(1/n, v)
			log.Add("Divide each component by the magnitude", fmt.Sprintf("û = %s", roundedVecText(u)))
			return "û = " + roundedVecText(u), nil, nil
		}
		return fmt.Sprintf("|v| = %s", fmtNum(roundNice(n))), nil, nil
	}

	a, b := vs[0], vs[1]
	if a.Len() != b.Len() {
		return "", nil, fmt.Errorf("vector: mixed %d- and %d-component vectors", a.Len(), b.Len())
	}
	log.Add("Read the vectors", fmt.Sprintf("a = %s, b = %s", vecText(a), vecText(b)))

	switch {
	case strings.Contains(lower, "cross"):
		if a.Len() != 3 {
			return "", nil, fmt.Errorf("vector: cross product needs 3 components")
		}
		c := cross3(a, b)
		log.Add("Apply the cross product formula",
			fmt.Sprintf("a × b = (a₂b₃-a₃b₂, a₃b₁-a₁b₃, a₁b₂-a₂b₁) = %s", vecText(c)))
		return "a × b = " + vecText(c), nil, nil

	case strings.Contains(lower, "angle"):
		dot := mat.Dot(a, b)
		na, nb := mat.Norm(a, 2), mat.Norm(b, 2)
		if na == 0 || nb == 0 {
			return "", nil, fmt.Errorf("vector: angle with a zero vector is undefined")
		}
		cos := dot / (na * nb)
		deg, err := applyFunc("arccos", clamp(cos, -1, 1))
		if err != nil {
			return "", nil, err
		}
		log.Add("Compute the dot product", fmt.Sprintf("a · b = %s", fmtNum(dot)))
		log.Add("Divide by the product of magnitudes",
			fmt.Sprintf("cos θ = %s / (%s · %s) = %s", fmtNum(dot), fmtNum(roundNice(na)), fmtNum(roundNice(nb)), fmtNum(roundNice(cos))))
		log.Add("Take the inverse cosine", fmt.Sprintf("θ = %s°", fmtNum(roundNice(deg))))
		return fmt.Sprintf("θ = %s°", fmtNum(roundNice(deg))), nil, nil

	case strings.Contains(lower, "sum") || strings.Contains(lower, "add"):
		c := mat.NewVecDense(a.Len(), nil)
		c.AddVec(a, b)
		log.Add("Add component-wise", fmt.Sprintf("a + b = %s", vecText(c)))
		return "a + b = " + vecText(c), nil, nil

	case strings.Contains(lower, "magnitude") || strings.Contains(lower, "length"):
		na, nb := mat.Norm(a, 2), mat.Norm(b, 2)
		log.Add("Compute each magnitude",
			fmt.Sprintf("|a| = %s, |b| = %s", fmtNum(roundNice(na)), fmtNum(roundNice(nb))))
		return fmt.Sprintf("|a| = %s, |b| = %s", fmtNum(roundNice(na)), fmtNum(roundNice(nb))), nil, nil
	}

	// Dot product is the default question about a pair of vectors.
	dot := mat.Dot(a, b)
	log.Add("Multiply matching components and add",
		fmt.Sprintf("a · b = Σ aᵢbᵢ = %s", fmtNum(dot)))
	return "a · b = " + fmtNum(dot), nil, nil
}

func roundedVecText(v *mat.VecDense) string {
	parts := make([]string, v.Len())
	for i := range parts {
		parts[i] = fmtNum(roundNice(v.AtVec(i)))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package solver

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

var (
	reMatrixLit = regexp.MustCompile(`\[\s*\[[^\[\]]*\](?:\s*,?\s*\[[^\[\]]*\])*\s*\]`)
	reMatrixRow = regexp.MustCompile(`\[([^\[\]]*)\]`)
)

// parseMatrices reads every [[a, b], [c, d]] literal in the text. Ragged
// rows fail the whole literal.
func parseMatrices(text string) ([]*mat.Dense, error) {
	var out []*mat.Dense
	for _, lit := range reMatrixLit.FindAllString(text, -1) {
		var rows [][]float64
		for _, rm := range reMatrixRow.FindAllStringSubmatch(lit[1:len(lit)-1], -1) {
			row, err := parseRow(rm[1])
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
		if len(rows) == 0 {
			continue
		}
		cols := len(rows[0])
		data := make([]float64, 0, len(rows)*cols)
		for _, r := range rows {
			if len(r) != cols {
				return nil, fmt.Errorf("matrix: ragged rows in %s", lit)
			}
			data = append(data, r...)
		}
		out = append(out, mat.NewDense(len(rows), cols, data))
	}
	return out, nil
}

func parseRow(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	if len(fields) == 0 {
		return nil, fmt.Errorf("matrix: empty row")
	}
	row := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("matrix: bad entry %q", f)
		}
		row[i] = v
	}
	return row, nil
}

func matText(m *mat.Dense) string {
	r, c := m.Dims()
	rows := make([]string, r)
	for i := 0; i < r; i++ {
		cells := make([]string, c)
		for j := 0; j < c; j++ {
			cells[j] = fmtNum(roundNice(m.At(i, j)))
		}
		rows[i] = "[" + strings.Join(cells, ", ") + "]"
	}
	return "[" + strings.Join(rows, ", ") + "]"
}

// solveMatrix answers determinant/inverse/product/sum/transpose questions
// about the bracket literals found in the problem.
func (s *Solver) solveMatrix(ctx context.Context, problem string, log *StepLog) (string, *Visualization, error) {
	ms, err := parseMatrices(problem)
	if err != nil {
		return "", nil, err
	}
	if len(ms) == 0 {
		return "", nil, fmt.Errorf("matrix: no matrix literal in %q", problem)
	}
	lower := strings.ToLower(problem)
	a := ms[0]
	ar, ac := a.Dims()
	log.Add("Read the matrix", fmt.Sprintf("A = %s (%d×%d)", matText(a), ar, ac))

	switch {
	case strings.Contains(lower, "determinant") || strings.Contains(lower, "det("):
		if ar != ac {
			return "", nil, fmt.Errorf("matrix: determinant needs a square matrix, got %d×%d", ar, ac)
		}
		d := mat.Det(a)
		log.Add("Expand the determinant", fmt.Sprintf("det(A) = %s", fmtNum(roundNice(d))))
		return "det(A) = " + fmtNum(roundNice(d)), nil, nil

	case strings.Contains(lower, "inverse"):
		if ar != ac {
			return "", nil, fmt.Errorf("matrix: inverse needs a square matrix, got %d×%d", ar, ac)
		}
		var inv mat.Dense
		if err := inv.Inverse(a); err != nil {
			return "", nil, fmt.Errorf("matrix: A is singular, no inverse")
		}
		log.Add("Invert via the adjugate over the determinant", fmt.Sprintf("A⁻¹ = %s", matText(&inv)))
		return "A⁻¹ = " + matText(&inv), nil, nil

	case strings.Contains(lower, "transpose"):
		var tr mat.Dense
		tr.CloneFrom(a.T())
		log.Add("Swap rows and columns", fmt.Sprintf("Aᵀ = %s", matText(&tr)))
		return "Aᵀ = " + matText(&tr), nil, nil
	}

	if len(ms) >= 2 {
		b := ms[1]
		br, bc := b.Dims()
		log.Add("Read the second matrix", fmt.Sprintf("B = %s (%d×%d)", matText(b), br, bc))
		switch {
		case strings.Contains(lower, "add") || strings.Contains(lower, "sum") || strings.Contains(lower, "+"):
			if ar != br || ac != bc {
				return "", nil, fmt.Errorf("matrix: cannot add %d×%d and %d×%d", ar, ac, br, bc)
			}
			var c mat.Dense
			c.Add(a, b)
			log.Add("Add entry-wise", fmt.Sprintf("A + B = %s", matText(&c)))
			return "A + B = " + matText(&c), nil, nil
		default:
			if ac != br {
				return "", nil, fmt.Errorf("matrix: cannot multiply %d×%d by %d×%d", ar, ac, br, bc)
			}
			var c mat.Dense
			c.Mul(a, b)
			log.Add("Multiply rows into columns", fmt.Sprintf("A·B = %s", matText(&c)))
			return "A·B = " + matText(&c), nil, nil
		}
	}

	// With one matrix and no keyword, the determinant is the usual ask.
	if ar == ac {
		d := mat.Det(a)
		log.Add("Expand the determinant", fmt.Sprintf("det(A) = %s", fmtNum(roundNice(d))))
		return "det(A) = " + fmtNum(roundNice(d)), nil, nil
	}
	var tr mat.Dense
	tr.CloneFrom(a.T())
	log.Add("Swap rows and columns", fmt.Sprintf("Aᵀ = %s", matText(&tr)))
	return "Aᵀ = " + matText(&tr), nil, nil
}

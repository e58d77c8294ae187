package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMatrices(t *testing.T) {
	ms, err := parseMatrices("A = [[1, 2], [3, 4]] and B = [[5, 6], [7, 8]]")
	require.NoError(t, err)
	require.Len(t, ms, 2)
	r, c := ms[0].Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 4.0, ms[0].At(1, 1))
	assert.Equal(t, 5.0, ms[1].At(0, 0))
}

func TestParseMatricesRagged(t *testing.T) {
	_, err := parseMatrices("[[1, 2], [3]]")
	assert.Error(t, err)
}

func TestSolveMatrixDeterminant(t *testing.T) {
	s := New(Options{})
	log := &StepLog{}
	ans, _, err := s.solveMatrix(context.Background(), "Find the determinant of [[1, 2], [3, 4]]", log)
	require.NoError(t, err)
	assert.Equal(t, "det(A) = -2", ans)
	assert.NotZero(t, log.Len())
}

func TestSolveMatrixInverse(t *testing.T) {
	s := New(Options{})
	ans, _, err := s.solveMatrix(context.Background(), "Find the inverse of [[4, 7], [2, 6]]", &StepLog{})
	require.NoError(t, err)
	assert.Equal(t, "A⁻¹ = [[0.6, -0.7], [-0.2, 0.4]]", ans)
}

func TestSolveMatrixInverseSingular(t *testing.T) {
	s := New(Options{})
	_, _, err := s.solveMatrix(context.Background(), "Find the inverse of [[1, 2], [2, 4]]", &StepLog{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "singular")
}

func TestSolveMatrixTranspose(t *testing.T) {
	s := New(Options{})
	ans, _, err := s.solveMatrix(context.Background(), "Find the transpose of [[1, 2, 3], [4, 5, 6]]", &StepLog{})
	require.NoError(t, err)
	assert.Equal(t, "Aᵀ = [[1, 4], [2, 5], [3, 6]]", ans)
}

func TestSolveMatrixAdd(t *testing.T) {
	s := New(Options{})
	ans, _, err := s.solveMatrix(context.Background(), "Add the matrices [[1, 2], [3, 4]] and [[5, 6], [7, 8]]", &StepLog{})
	require.NoError(t, err)
	assert.Equal(t, "A + B = [[6, 8], [10, 12]]", ans)

	_, _, err = s.solveMatrix(context.Background(), "Add the matrices [[1, 2]] and [[1, 2, 3]]", &StepLog{})
	assert.Error(t, err)
}

func TestSolveMatrixMultiply(t *testing.T) {
	s := New(Options{})
	ans, _, err := s.solveMatrix(context.Background(), "Multiply the matrices [[1, 2], [3, 4]] by [[5, 6], [7, 8]]", &StepLog{})
	require.NoError(t, err)
	assert.Equal(t, "A·B = [[19, 22], [43, 50]]", ans)

	_, _, err = s.solveMatrix(context.Background(), "Multiply the matrices [[1, 2], [3, 4]] by [[1, 2, 3]]", &StepLog{})
	assert.Error(t, err)
}

// Without a keyword the determinant answers for a square matrix and the
// transpose for a rectangular one.
func TestSolveMatrixDefaults(t *testing.T) {
	s := New(Options{})
	ans, _, err := s.solveMatrix(context.Background(), "Consider the matrix [[2, 0], [0, 3]]", &StepLog{})
	require.NoError(t, err)
	assert.Equal(t, "det(A) = 6", ans)

	ans, _, err = s.solveMatrix(context.Background(), "Consider the matrix [[1, 2, 3], [4, 5, 6]]", &StepLog{})
	require.NoError(t, err)
	assert.Equal(t, "Aᵀ = [[1, 4], [2, 5], [3, 6]]", ans)
}

func TestSolveMatrixNoLiteral(t *testing.T) {
	s := New(Options{})
	_, _, err := s.solveMatrix(context.Background(), "a matrix with no entries", &StepLog{})
	assert.Error(t, err)
}

func TestSolveMatrixDeterminantNonSquare(t *testing.T) {
	s := New(Options{})
	_, _, err := s.solveMatrix(context.Background(), "Find the determinant of [[1, 2, 3], [4, 5, 6]]", &StepLog{})
	assert.Error(t, err)
}

package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveExamSheet(t *testing.T) {
	text := "1. Solve 2x + 3 = 7 for x\n2. Find the area of a circle with radius 5"
	recs := Solve(context.Background(), text)
	require.Len(t, recs, 2)

	assert.Equal(t, 1, recs[0].Number)
	assert.Equal(t, "Algebra", recs[0].Category)
	assert.Equal(t, "x = 2", recs[0].Answer)
	assert.NotEmpty(t, recs[0].Steps)
	assert.Empty(t, recs[0].Err)

	assert.Equal(t, 2, recs[1].Number)
	assert.Equal(t, "Geometry", recs[1].Category)
	assert.Equal(t, "A = 78.53981634", recs[1].Answer)
	assert.NotEmpty(t, recs[1].Steps)
	assert.Empty(t, recs[1].Err)
}

func TestSolveCompoundEndToEnd(t *testing.T) {
	recs := Solve(context.Background(), "Solve x^2 - 4 = 0 and graph y = x^2 - 4")
	require.Len(t, recs, 1)
	r := recs[0]
	assert.Equal(t, "x = 2 or x = -2; the graph is a parabola opening upward with vertex (0, -4)", r.Answer)
	require.NotNil(t, r.Visualization)
	assert.Equal(t, "y = x^2 - 4", r.Visualization.Expression)
	assert.Empty(t, r.Err)
}

// Any input at all yields at least one record, and unsolvable input
// yields a diagnostic record rather than an error.
func TestSolveNeverEmpty(t *testing.T) {
	for _, text := range []string{"", "???", "qwerty asdf"} {
		recs := Solve(context.Background(), text)
		require.NotEmpty(t, recs, "input %q", text)
		r := recs[0]
		assert.Equal(t, "This problem requires manual analysis.", r.Answer)
		assert.NotEmpty(t, r.Err)
	}
}

func TestSolveMixedGoodAndBad(t *testing.T) {
	text := "1. What is 12 + 7 * 3?\n2. Explain the number 42 to me\n3. What is sin(30) + cos(60)?"
	recs := Solve(context.Background(), text)
	require.Len(t, recs, 3)

	assert.Equal(t, "33", recs[0].Answer)
	assert.Empty(t, recs[0].Err)

	assert.NotEmpty(t, recs[1].Err)
	assert.Equal(t, "This problem requires manual analysis.", recs[1].Answer)

	assert.Equal(t, "1", recs[2].Answer)
	assert.Empty(t, recs[2].Err)
}

func TestSolveNumbersProblemsSequentially(t *testing.T) {
	text := "a) Find 2 + 2\nb) Find 3 + 3\nc) Find 4 + 4"
	recs := Solve(context.Background(), text)
	require.Len(t, recs, 3)
	for i, want := range []string{"4", "6", "8"} {
		assert.Equal(t, i+1, recs[i].Number)
		assert.Equal(t, want, recs[i].Answer)
	}
}

func TestSolveFallbackRescuesFailedRoute(t *testing.T) {
	// No route can evaluate the question, so the record comes from the
	// fallback chain's pattern step.
	recs := Solve(context.Background(), "Is 97 a prime number?")
	require.Len(t, recs, 1)
	assert.Equal(t, "97 is a prime number", recs[0].Answer)
	assert.Equal(t, "Number Theory", recs[0].Category)
	assert.Empty(t, recs[0].Err)
}

func TestSolverClassify(t *testing.T) {
	s := New(Options{})
	assert.Equal(t, "Algebra", s.Classify("Solve 2x + 3 = 7 for x"))
	assert.Equal(t, GeneralCategory, s.Classify("hello there"))
}

func TestSolveOracleBackstop(t *testing.T) {
	s := New(Options{Oracle: &stubOracle{solve: "the answer is 7"}})
	recs := s.Solve(context.Background(), "an unsolvable riddle about numbers 1 2 3")
	require.Len(t, recs, 1)
	assert.Equal(t, "the answer is 7", recs[0].Answer)
	assert.Empty(t, recs[0].Err)
}

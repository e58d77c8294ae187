package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripQuestionWords(t *testing.T) {
	cases := []struct{ in, want string }{
		{"What is the square root of 16?", "sqrt(16)"},
		{"What is 20% of 50?", "20% * 50"},
		{"Evaluate 3 + 4 * 2", "3 + 4 * 2"},
		{"Simplify x + x", "x + x"},
		{"Compute the value of 7!", "7!"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, stripQuestionWords(tc.in))
		})
	}
}

func TestExtractCalcExpr(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Find the derivative of x^2 + 3x", "x^2 + 3x"},
		{"Integrate x^2 from 0 to 3", "x^2"},
		{"d/dx (sin(x))", "sin(x)"},
		{"Find the indefinite integral of e^(2x)", "e^(2x)"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, extractCalcExpr(tc.in))
		})
	}
}

func TestIntegralBounds(t *testing.T) {
	lo, hi, ok := integralBounds("integrate x from 0 to 3")
	require.True(t, ok)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 3.0, hi)

	lo, hi, ok = integralBounds("the area between 1 and 5")
	require.True(t, ok)
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 5.0, hi)

	lo, hi, ok = integralBounds("from -1 to 1")
	require.True(t, ok)
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 1.0, hi)

	_, _, ok = integralBounds("no bounds here")
	assert.False(t, ok)
}

func TestUnwrapParens(t *testing.T) {
	assert.Equal(t, "x + 1", unwrapParens("(x + 1)"))
	assert.Equal(t, "x", unwrapParens("((x))"))
	assert.Equal(t, "(a) + (b)", unwrapParens("(a) + (b)"))
	assert.Equal(t, "x", unwrapParens("x"))
	assert.Equal(t, "", unwrapParens(""))
}

func TestSolveArithmeticHandler(t *testing.T) {
	s := New(Options{})
	ans, _, err := s.solveArithmetic(context.Background(), "3 + 4 * 2.", &StepLog{})
	require.NoError(t, err)
	assert.Equal(t, "11", ans)
}

func TestSolveDerivativeHandler(t *testing.T) {
	s := New(Options{})
	log := &StepLog{}
	ans, _, err := s.solveDerivative(context.Background(), "Find the derivative of x^2 + 3x", log)
	require.NoError(t, err)
	assert.Equal(t, "d/dx(x^2 + 3x) = 2x + 3", ans)
	assert.NotZero(t, log.Len())
}

func TestSolveIntegralHandler(t *testing.T) {
	s := New(Options{})

	ans, _, err := s.solveIntegral(context.Background(), "Integrate x^2", &StepLog{})
	require.NoError(t, err)
	assert.Equal(t, "∫ x^2 dx = x^3/3 + C", ans)

	ans, _, err = s.solveIntegral(context.Background(), "Integrate x^2 from 0 to 3", &StepLog{})
	require.NoError(t, err)
	assert.Equal(t, "∫ x^2 dx from 0 to 3 = 9", ans)
}

// A quadratic fed to the cubic route degrades instead of failing.
func TestSolveCubicEqDegradesToQuadratic(t *testing.T) {
	s := New(Options{})
	ans, _, err := s.solveCubicEq(context.Background(), "x^2 - 1 = 0", &StepLog{})
	require.NoError(t, err)
	assert.Equal(t, "x = 1 or x = -1", ans)
}

func TestQuadraticAnswer(t *testing.T) {
	assert.Equal(t, "x = 3 or x = 2",
		quadraticAnswer(&QuadraticResult{Var: "x", Real: []float64{3, 2}}))
	assert.Equal(t, "t = 2 (double root)",
		quadraticAnswer(&QuadraticResult{Var: "t", Real: []float64{2}}))
	assert.Equal(t, "x = 0 ± 1i",
		quadraticAnswer(&QuadraticResult{Var: "x", Complex: "0 ± 1i"}))
}

func TestCubicAnswer(t *testing.T) {
	assert.Equal(t, "x = 1, x = 2, x = 3",
		cubicAnswer(&CubicResult{Var: "x", Real: []float64{1, 2, 3}}))
	assert.Equal(t, "x = -1 (triple root)",
		cubicAnswer(&CubicResult{Var: "x", Real: []float64{-1}}))
	assert.Equal(t, "x = 2, complex pair x = -1 ± 1.73i",
		cubicAnswer(&CubicResult{Var: "x", Real: []float64{2}, Complex: "-1 ± 1.73i"}))
	assert.Equal(t, "x = 4, x = 1 (double root)",
		cubicAnswer(&CubicResult{Var: "x", Real: []float64{4, 1}}))
}

func TestDescribeCurve(t *testing.T) {
	cases := []struct{ expr, want string }{
		{"x^2 - 4", "a parabola opening upward with vertex (0, -4)"},
		{"-x^2 + 4", "a parabola opening downward with vertex (0, 4)"},
		{"2x + 1", "a line with slope 2 and y-intercept 1"},
		{"x^3 - 3x", "a cubic curve that falls to the left and rises to the right, crossing the y-axis at 0"},
		{"5", "a horizontal line at y = 5"},
	}
	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			got, err := describeCurve(tc.expr, &StepLog{})
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := describeCurve("sin(x)", &StepLog{})
	assert.Error(t, err)
}

func TestGraphPartOf(t *testing.T) {
	assert.Equal(t, "x^2 - 4", graphPartOf("Solve x^2 - 4 = 0 and graph y = x^2 - 4"))
	assert.Equal(t, "", graphPartOf("no verbs in here"))
}

func TestSolveGraphHandler(t *testing.T) {
	s := New(Options{})
	log := &StepLog{}
	ans, viz, err := s.solveGraph(context.Background(), "Graph y = 2x + 1", log)
	require.NoError(t, err)
	assert.Equal(t, "a line with slope 2 and y-intercept 1", ans)
	require.NotNil(t, viz)
	assert.Equal(t, "graph", viz.Kind)
	assert.Equal(t, "y = 2x + 1", viz.Expression)
	assert.Equal(t, ans, viz.Note)

	_, _, err = s.solveGraph(context.Background(), "Sketch the curve", &StepLog{})
	assert.Error(t, err)
}

func TestSolveCompoundHandler(t *testing.T) {
	s := New(Options{})
	log := &StepLog{}
	ans, viz, err := s.solveCompound(context.Background(), "Solve x^2 - 4 = 0 and graph y = x^2 - 4", log)
	require.NoError(t, err)
	assert.Equal(t, "x = 2 or x = -2; the graph is a parabola opening upward with vertex (0, -4)", ans)
	require.NotNil(t, viz)
	assert.Equal(t, "y = x^2 - 4", viz.Expression)
}

// "Solve and graph y = f(x)" solves f(x) = 0 rather than treating y as
// the unknown.
func TestSolveCompoundFunctionForm(t *testing.T) {
	s := New(Options{})
	ans, _, err := s.solveCompound(context.Background(), "Solve and graph y = x^2 - 4", &StepLog{})
	require.NoError(t, err)
	assert.Equal(t, "x = 2 or x = -2; the graph is a parabola opening upward with vertex (0, -4)", ans)
}

func TestSolveCompoundCubic(t *testing.T) {
	s := New(Options{})
	ans, _, err := s.solveCompound(context.Background(), "Solve x^3 - 8 = 0 and graph y = x^3 - 8", &StepLog{})
	require.NoError(t, err)
	assert.Contains(t, ans, "x = 2")
	assert.Contains(t, ans, "the graph is a cubic curve")
}

func TestSolveCompoundNothingToDo(t *testing.T) {
	s := New(Options{})
	_, _, err := s.solveCompound(context.Background(), "Graph and solve something", &StepLog{})
	assert.Error(t, err)
}

func TestSolveGenericHandler(t *testing.T) {
	s := New(Options{})

	ans, _, err := s.solveGeneric(context.Background(), "What is 15% of 80?", &StepLog{})
	require.NoError(t, err)
	assert.Equal(t, "12", ans)

	ans, _, err = s.solveGeneric(context.Background(), "Simplify x + x", &StepLog{})
	require.NoError(t, err)
	assert.Equal(t, "2x", ans)

	_, _, err = s.solveGeneric(context.Background(), "Tell me a story", &StepLog{})
	assert.Error(t, err)
}

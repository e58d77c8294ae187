package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTerms(t *testing.T) {
	cases := []struct {
		expr string
		want []string
	}{
		{"3x^2 + 2x + 1", []string{"3x^2", "2x", "1"}},
		{"x^2 - 5x + 6", []string{"x^2", "-5x", "6"}},
		{"sin(x) + cos(x)", []string{"sin(x)", "cos(x)"}},
		{"2*(3+4) + 1", []string{"2*(3+4)", "1"}},
		{"x^-2 + 1", []string{"x^-2", "1"}}, // minus after ^ is an exponent sign
		{"-x + 2", []string{"-x", "2"}},
		{"x", []string{"x"}},
	}
	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			assert.Equal(t, tc.want, splitTerms(tc.expr))
		})
	}
}

func TestParseTermMonomial(t *testing.T) {
	cases := []struct {
		in   string
		coef float64
		exp  float64
	}{
		{"x", 1, 1},
		{"-x", -1, 1},
		{"3x", 3, 1},
		{"3*x", 3, 1},
		{"x^2", 1, 2},
		{"4x^3", 4, 3},
		{"x^(1/2)", 1, 0.5},
		{"x^-2", 1, -2},
		{"1/x", 1, -1},
		{"2/x^2", 2, -2},
		{"x^3/3", 1.0 / 3, 3}, // quotient form produced by integration
		{"x/2", 0.5, 1},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			tm, ok := parseTerm(tc.in)
			require.True(t, ok)
			assert.Equal(t, termMonomial, tm.kind)
			assert.InDelta(t, tc.coef, tm.coef, 1e-12)
			assert.InDelta(t, tc.exp, tm.exp, 1e-12)
		})
	}
}

func TestParseTermFunctions(t *testing.T) {
	tm, ok := parseTerm("2sin(x)")
	require.True(t, ok)
	assert.Equal(t, termFunc, tm.kind)
	assert.Equal(t, "sin", tm.fn)
	assert.Equal(t, 2.0, tm.coef)

	tm, ok = parseTerm("e^(2x)")
	require.True(t, ok)
	assert.Equal(t, "exp", tm.fn)
	assert.Equal(t, 2.0, tm.k)

	tm, ok = parseTerm("7")
	require.True(t, ok)
	assert.Equal(t, termConstant, tm.kind)
	assert.Equal(t, 7.0, tm.coef)

	_, ok = parseTerm("sin(x^2)")
	assert.False(t, ok)
}

func TestSimplifyExpression(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{"2x + 3x", "5x"},
		{"2x + 3x + 1", "5x + 1"},
		{"x^2 + 2x^2 - x^2", "2x^2"},
		{"2x - 2x", "0"},
		{"sin(x) + 2sin(x)", "3sin(x)"},
	}
	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			got, ok := simplifyExpression(tc.expr)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

// A no-op is not a simplification.
func TestSimplifyExpressionRejects(t *testing.T) {
	for _, expr := range []string{
		"x^2 + x", // nothing merges
		"3x + 4y", // unparseable second term
		"x",       // single term
		"",
	} {
		t.Run(expr, func(t *testing.T) {
			_, ok := simplifyExpression(expr)
			assert.False(t, ok)
		})
	}
}

func TestMonoText(t *testing.T) {
	cases := []struct {
		coef, exp float64
		want      string
	}{
		{1, 2, "x^2"},
		{-1, 1, "-x"},
		{6, 1, "6x"},
		{5, 0, "5"},
		{0, 3, "0"},
		{1, 0.5, "√x"},
		{2, -1, "2/x"},
		{3, -2, "3/x^2"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, monoText(tc.coef, tc.exp))
	}
}

func TestJoinTerms(t *testing.T) {
	assert.Equal(t, "6x + 2", joinTerms([]string{"6x", "2"}))
	assert.Equal(t, "x^2 - 5x", joinTerms([]string{"x^2", "-5x"}))
}

func TestFmtNum(t *testing.T) {
	assert.Equal(t, "3", fmtNum(3))
	assert.Equal(t, "-2", fmtNum(-2))
	assert.Equal(t, "2.5", fmtNum(2.5))
	assert.Equal(t, "0", fmtNum(0))
}

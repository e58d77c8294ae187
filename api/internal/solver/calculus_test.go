package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDifferentiate(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{"x^2", "2x"},
		{"3x^2 + 2x + 1", "6x + 2"},
		{"x^3 - x", "3x^2 - 1"},
		{"5", "0"},
		{"sin(x)", "cos(x)"},
		{"cos(x)", "-sin(x)"},
		{"tan(x)", "sec^2(x)"},
		{"2sin(x) + 3cos(x)", "2cos(x) - 3sin(x)"},
		{"e^x", "e^x"},
		{"ln(x)", "1/x"},
		{"sqrt(x)", "1/(2√x)"},
		{"1/x", "-1/x^2"},
	}
	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			log := &StepLog{}
			got, err := Differentiate(tc.expr, log)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.NotZero(t, log.Len(), "every term logs a step")
		})
	}
}

func TestDifferentiateUnrecognized(t *testing.T) {
	log := &StepLog{}
	_, err := Differentiate("sin(x^2)", log)
	assert.Error(t, err)
}

func TestIntegrate(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{"x^2", "x^3/3"},
		{"2x", "x^2"},
		{"3x^2", "x^3"},
		{"5", "5x"},
		{"x^2 + 1", "x^3/3 + x"},
		{"1/x", "ln|x|"},
		{"sin(x)", "-cos(x)"},
		{"cos(x)", "sin(x)"},
		{"e^x", "e^x"},
		{"ln(x)", "x·ln(x) - x"},
		{"sqrt(x)", "2x^(3/2)/3"},
	}
	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			log := &StepLog{}
			got, err := Integrate(tc.expr, log)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// The unmatched-term placeholder keeps the batch alive instead of failing.
func TestIntegratePlaceholder(t *testing.T) {
	log := &StepLog{}
	got, err := Integrate("sin(x^2)", log)
	require.NoError(t, err)
	assert.Equal(t, "sin(x^2)·x", got)
}

func TestIntegrateDefinite(t *testing.T) {
	log := &StepLog{}
	v, ok, err := IntegrateDefinite("x^2", 0, 3, log)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 9, v, 1e-9)

	v, ok, err = IntegrateDefinite("2x", 1, 3, log)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 8, v, 1e-9)

	// The antiderivative closures work in radians.
	v, ok, err = IntegrateDefinite("sin(x)", 0, math.Pi, log)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 2, v, 1e-9)

	v, ok, err = IntegrateDefinite("1/x", 1, math.E, log)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 1, v, 1e-9)
}

// A placeholder antiderivative cannot be evaluated at bounds; the caller
// falls back to the indefinite form.
func TestIntegrateDefiniteNotEvaluable(t *testing.T) {
	log := &StepLog{}
	_, ok, err := IntegrateDefinite("sin(x^2)", 0, 1, log)
	require.NoError(t, err)
	assert.False(t, ok)
}

// Differentiating the integral of c·x^n gives back c·x^n for n not in
// {0, -1}, up to the dropped constant of integration.
func TestCalculusRoundTrip(t *testing.T) {
	for _, expr := range []string{"x", "2x", "x^2", "4x^3", "6x^2", "x^4", "5"} {
		t.Run(expr, func(t *testing.T) {
			log := &StepLog{}
			anti, err := Integrate(expr, log)
			require.NoError(t, err)
			back, err := Differentiate(anti, log)
			require.NoError(t, err)
			assert.Equal(t, expr, back)
		})
	}
}

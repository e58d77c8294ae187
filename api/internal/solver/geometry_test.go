package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllNumbers(t *testing.T) {
	assert.Equal(t, []float64{2, 4, 6.5}, allNumbers("values 2, 4 and 6.5"))
	assert.Equal(t, []float64{-3, 1}, allNumbers("-3 up to 1"))
	assert.Empty(t, allNumbers("no digits"))
}

func TestDimValue(t *testing.T) {
	v, ok := dimValue("a circle with radius 5", "radius")
	assert.True(t, ok)
	assert.Equal(t, 5.0, v)

	v, ok = dimValue("height h = 12 here", "height")
	assert.True(t, ok)
	assert.Equal(t, 12.0, v)

	_, ok = dimValue("no dimensions at all", "radius")
	assert.False(t, ok)
}

func TestSolveGeometry(t *testing.T) {
	s := New(Options{})
	cases := []struct {
		problem string
		want    string
	}{
		{"Find the area of a circle with radius 5", "A = 78.53981634"},
		{"Find the area of a circle with a diameter of 10", "A = 78.53981634"},
		{"Find the circumference of a circle with radius 3", "C = 18.849555922"},
		{"Find the volume of a sphere with radius 2", "V = 33.510321638"},
		{"Find the surface area of a sphere with radius 1", "S = 12.566370614"},
		{"Find the volume of a cylinder with radius 2 and height 5", "V = 62.831853072"},
		{"Find the volume of a cone with radius 3 and height 4", "V = 37.699111843"},
		{"Find the hypotenuse of a right triangle with legs 3 and 4", "c = 5"},
		{"Find the area of a triangle with base 5 and height 8", "A = 20"},
		{"Find the area of a triangle with sides 3, 4 and 5", "A = 6"},
		{"Find the perimeter of a triangle with sides 3, 4 and 5", "P = 12"},
		{"Find the area of a rectangle with length 7 and width 3", "A = 21"},
		{"Find the perimeter of a rectangle with length 7 and width 3", "P = 20"},
		{"Find the area of a square with side 4", "A = 16"},
		{"Find the perimeter of a square with side 4", "P = 16"},
	}
	for _, tc := range cases {
		t.Run(tc.problem, func(t *testing.T) {
			ans, _, err := s.solveGeometry(context.Background(), tc.problem, &StepLog{})
			require.NoError(t, err)
			assert.Equal(t, tc.want, ans)
		})
	}
}

func TestSolveGeometryRejects(t *testing.T) {
	s := New(Options{})

	_, _, err := s.solveGeometry(context.Background(), "Find the area of a dodecahedron", &StepLog{})
	assert.Error(t, err)

	_, _, err = s.solveGeometry(context.Background(), "Find the area of a circle", &StepLog{})
	assert.Error(t, err)

	_, _, err = s.solveGeometry(context.Background(), "Find the volume of a cylinder with radius 2", &StepLog{})
	assert.Error(t, err)
}

// Sides that violate the triangle inequality fail Heron's formula.
func TestSolveGeometryImpossibleTriangle(t *testing.T) {
	s := New(Options{})
	_, _, err := s.solveGeometry(context.Background(), "Find the area of a triangle with sides 1, 2 and 10", &StepLog{})
	assert.Error(t, err)
}

package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentNumberedInline(t *testing.T) {
	got := Segment("1. Find x. 2. Find y.")
	require.Len(t, got, 2)
	assert.Equal(t, "Find x.", got[0])
	assert.Equal(t, "Find y.", got[1])
}

func TestSegmentNumberedLines(t *testing.T) {
	got := Segment("1. Solve 2x + 3 = 7 for x\n2. Compute the area of a circle with radius 5")
	require.Len(t, got, 2)
	assert.Equal(t, "Solve 2x + 3 = 7 for x", got[0])
	assert.Equal(t, "Compute the area of a circle with radius 5", got[1])
}

func TestSegmentLettered(t *testing.T) {
	got := Segment("a) Find 2 + 2\nb) Find 3 + 3")
	require.Len(t, got, 2)
	assert.Equal(t, "Find 2 + 2", got[0])
	assert.Equal(t, "Find 3 + 3", got[1])
}

func TestSegmentSemicolons(t *testing.T) {
	got := Segment("Solve x + 1 = 2; Solve y - 1 = 0")
	require.Len(t, got, 2)
	assert.Equal(t, "Solve x + 1 = 2", got[0])
	assert.Equal(t, "Solve y - 1 = 0", got[1])
}

func TestSegmentBlankLines(t *testing.T) {
	got := Segment("Evaluate 2 + 2\n\nEvaluate 3 * 3")
	require.Len(t, got, 2)
	assert.Equal(t, "Evaluate 2 + 2", got[0])
	assert.Equal(t, "Evaluate 3 * 3", got[1])
}

func TestSegmentContentMarkers(t *testing.T) {
	got := Segment("Find the area of a circle with radius 3 Find the volume of a sphere with radius 2")
	require.Len(t, got, 2)
	assert.Equal(t, "Find the area of a circle with radius 3", got[0])
	assert.Equal(t, "Find the volume of a sphere with radius 2", got[1])
}

func TestSegmentWholeInput(t *testing.T) {
	for _, in := range []string{
		"Compute the derivative of x^2",
		"hello there friend", // no math at all still yields one problem
		"",
	} {
		got := Segment(in)
		require.Len(t, got, 1, "input %q", in)
		assert.Equal(t, in, got[0])
	}
}

func TestSegmentDeterministic(t *testing.T) {
	in := "1. Find x. 2. Find y."
	assert.Equal(t, Segment(in), Segment(in))
}

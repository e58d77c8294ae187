package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveStatistics(t *testing.T) {
	s := New(Options{})
	cases := []struct {
		problem string
		want    string
	}{
		{"Find the mean of 2, 4, 6, 8", "mean = 5"},
		{"What is the average of 10, 20, 30?", "mean = 20"},
		{"Find the median of 3, 9, 6, 1, 8", "median = 6"},
		{"Find the median of 1, 2, 3, 4", "median = 2.5"},
		{"Find the mode of 2, 3, 2, 4", "mode = 2"},
		{"Find the mode of 1, 2, 3", "mode = none"},
		{"Find the standard deviation of 2, 4, 4, 4, 5, 5, 7, 9", "standard deviation = 2"},
		{"Find the variance of 2, 4, 4, 4, 5, 5, 7, 9", "variance = 4"},
		{"Find the range of 3, 9, 5", "range = 6"},
		{"Find the sum of the data set 1, 2, 3, 4", "sum = 10"},
	}
	for _, tc := range cases {
		t.Run(tc.problem, func(t *testing.T) {
			ans, _, err := s.solveStatistics(context.Background(), tc.problem, &StepLog{})
			require.NoError(t, err)
			assert.Equal(t, tc.want, ans)
		})
	}
}

// Several asks in one problem answer in a fixed order.
func TestSolveStatisticsMultipleAsks(t *testing.T) {
	s := New(Options{})
	ans, _, err := s.solveStatistics(context.Background(), "Find the mean and median of 1, 2, 3, 4, 5", &StepLog{})
	require.NoError(t, err)
	assert.Equal(t, "mean = 3, median = 3", ans)
}

// No recognized ask defaults to the mean.
func TestSolveStatisticsDefaultsToMean(t *testing.T) {
	s := New(Options{})
	ans, _, err := s.solveStatistics(context.Background(), "Describe the data 4, 8", &StepLog{})
	require.NoError(t, err)
	assert.Equal(t, "mean = 6", ans)
}

func TestSolveStatisticsNoData(t *testing.T) {
	s := New(Options{})
	_, _, err := s.solveStatistics(context.Background(), "the data set is empty", &StepLog{})
	assert.Error(t, err)
}

func TestMedianAndMode(t *testing.T) {
	assert.Equal(t, 6.0, median([]float64{3, 9, 6, 1, 8}))
	assert.Equal(t, 2.5, median([]float64{1, 2, 3, 4}))

	m, ok := mode([]float64{2, 3, 2, 4})
	assert.True(t, ok)
	assert.Equal(t, 2.0, m)

	_, ok = mode([]float64{1, 2, 3})
	assert.False(t, ok)
}

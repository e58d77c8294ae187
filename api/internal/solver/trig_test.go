package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveTrigCombined(t *testing.T) {
	s := New(Options{})
	log := &StepLog{}
	ans, _, err := s.solveTrig(context.Background(), "What is sin(30) + cos(60)?", log)
	require.NoError(t, err)
	assert.Equal(t, "1", ans)
	assert.GreaterOrEqual(t, log.Len(), 3) // one step per call plus the combine
}

func TestSolveTrigInverse(t *testing.T) {
	s := New(Options{})
	cases := []struct {
		problem string
		want    string
	}{
		{"Evaluate arcsin(0.5)", "30"},
		{"Evaluate arccos(0.5)", "60"},
		{"Evaluate arctan(1)", "45"},
	}
	for _, tc := range cases {
		t.Run(tc.problem, func(t *testing.T) {
			ans, _, err := s.solveTrig(context.Background(), tc.problem, &StepLog{})
			require.NoError(t, err)
			assert.Equal(t, tc.want, ans)
		})
	}
}

func TestSolveTrigSingleCall(t *testing.T) {
	s := New(Options{})
	ans, _, err := s.solveTrig(context.Background(), "tan(45)", &StepLog{})
	require.NoError(t, err)
	assert.Equal(t, "1", ans)
}

// When the surrounding text defeats the evaluator, each call is still
// reported on its own.
func TestSolveTrigReportsCallsWithoutCombining(t *testing.T) {
	s := New(Options{})
	ans, _, err := s.solveTrig(context.Background(), "sin(30) and separately cos(60)", &StepLog{})
	require.NoError(t, err)
	assert.Equal(t, "sin(30) = 0.5, cos(60) = 0.5", ans)
}

func TestSolveTrigNoCall(t *testing.T) {
	s := New(Options{})
	_, _, err := s.solveTrig(context.Background(), "the sine of thirty degrees", &StepLog{})
	assert.Error(t, err)
}

func TestSolveTrigBadArgument(t *testing.T) {
	s := New(Options{})
	_, _, err := s.solveTrig(context.Background(), "sin(q) + 1", &StepLog{})
	assert.Error(t, err)

	_, _, err = s.solveTrig(context.Background(), "What is tan(90)?", &StepLog{})
	assert.Error(t, err)
}

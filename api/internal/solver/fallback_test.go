package solver

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOracle scripts both oracle calls for fallback-chain tests.
type stubOracle struct {
	solve    string
	solveErr error
	eval     string
	evalErr  error
}

func (o *stubOracle) SolveText(ctx context.Context, problem string) (string, error) {
	return o.solve, o.solveErr
}

func (o *stubOracle) Evaluate(ctx context.Context, expr string) (string, error) {
	return o.eval, o.evalErr
}

func TestFallbackDiagnosticRecord(t *testing.T) {
	s := New(Options{})
	rec := s.fallback(context.Background(), "x + y = z ???", 3, "Algebra", fmt.Errorf("boom"))
	assert.Equal(t, 3, rec.Number)
	assert.Equal(t, "Algebra", rec.Category)
	assert.Equal(t, "This problem requires manual analysis.", rec.Answer)
	assert.Equal(t, "boom", rec.Err)
	require.NotEmpty(t, rec.Steps)
	assert.Contains(t, rec.Steps[0].Math, "x, y, z")
	assert.Contains(t, rec.Steps[0].Math, "+, =")
}

func TestFallbackNilCause(t *testing.T) {
	s := New(Options{})
	rec := s.fallback(context.Background(), "???", 1, GeneralCategory, nil)
	assert.Equal(t, "no solving strategy matched", rec.Err)
	assert.Equal(t, "This problem requires manual analysis.", rec.Answer)
}

func TestFallbackDirectEval(t *testing.T) {
	s := New(Options{})
	rec := s.fallback(context.Background(), "What is 6 * 7?", 1, GeneralCategory, fmt.Errorf("route failed"))
	assert.Equal(t, "42", rec.Answer)
	assert.Empty(t, rec.Err)
}

func TestFallbackSimplify(t *testing.T) {
	s := New(Options{})
	rec := s.fallback(context.Background(), "x + x + x", 1, "Algebra", fmt.Errorf("route failed"))
	assert.Equal(t, "3x", rec.Answer)
	assert.Empty(t, rec.Err)
}

func TestFallbackPrimePattern(t *testing.T) {
	s := New(Options{})

	rec := s.fallback(context.Background(), "Is 97 a prime number?", 1, "Number Theory", fmt.Errorf("x"))
	assert.Equal(t, "97 is a prime number", rec.Answer)
	assert.Empty(t, rec.Err)

	rec = s.fallback(context.Background(), "Is 91 a prime number?", 1, "Number Theory", fmt.Errorf("x"))
	assert.Equal(t, "91 is not a prime number", rec.Answer)

	rec = s.fallback(context.Background(), "Is 1 a prime number?", 1, "Number Theory", fmt.Errorf("x"))
	assert.Equal(t, "1 is not a prime number", rec.Answer)
}

func TestFallbackPercentPattern(t *testing.T) {
	s := New(Options{})
	rec := s.fallback(context.Background(), "What is 25 percent of 80?", 1, GeneralCategory, fmt.Errorf("x"))
	assert.Equal(t, "20", rec.Answer)
}

func TestFallbackFactorialPattern(t *testing.T) {
	s := New(Options{})
	rec := s.fallback(context.Background(), "What is the factorial of 6?", 1, GeneralCategory, fmt.Errorf("x"))
	assert.Equal(t, "6! = 720", rec.Answer)
}

func TestFallbackRatioPattern(t *testing.T) {
	s := New(Options{})

	rec := s.fallback(context.Background(), "Simplify the ratio 12:8", 1, GeneralCategory, fmt.Errorf("x"))
	assert.Equal(t, "3:2", rec.Answer)

	rec = s.fallback(context.Background(), "Simplify the ratio 3:7", 1, GeneralCategory, fmt.Errorf("x"))
	assert.Equal(t, "3:7", rec.Answer)
}

func TestFallbackOracleSolveWins(t *testing.T) {
	s := New(Options{Oracle: &stubOracle{solve: "x = 42"}})
	rec := s.fallback(context.Background(), "solve the riddle for x", 1, "Algebra", fmt.Errorf("x"))
	assert.Equal(t, "x = 42", rec.Answer)
	assert.Empty(t, rec.Err)
}

func TestFallbackOracleFailureMovesOn(t *testing.T) {
	s := New(Options{Oracle: &stubOracle{
		solveErr: errors.New("api down"),
		eval:     "4",
	}})
	rec := s.fallback(context.Background(), "2 + 2", 1, GeneralCategory, fmt.Errorf("x"))
	assert.Equal(t, "4", rec.Answer)
}

// Oracle answers that are blank or non-answers are skipped, not surfaced.
func TestFallbackOracleJunkAnswersSkipped(t *testing.T) {
	s := New(Options{Oracle: &stubOracle{solve: "undefined", eval: "  "}})
	rec := s.fallback(context.Background(), "What is 6 * 7?", 1, GeneralCategory, fmt.Errorf("x"))
	assert.Equal(t, "42", rec.Answer)
}

func TestIsPrimeAndDivisor(t *testing.T) {
	assert.True(t, isPrime(2))
	assert.True(t, isPrime(97))
	assert.False(t, isPrime(1))
	assert.False(t, isPrime(91))
	assert.Equal(t, 7, smallestDivisor(91))
	assert.Equal(t, 4, gcd(12, 8))
}

func TestDetectStructure(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, detectVariables("a + b = a"))
	assert.Empty(t, detectVariables("12 + 4"))
	assert.Equal(t, []string{"+", "="}, detectOperators("a + b = a"))
}

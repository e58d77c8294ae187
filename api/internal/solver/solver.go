// Package solver turns free-form math problem text into step-by-step
// solution records. The pipeline is normalize, segment, classify, dispatch
// to a specialized solver, and fall back when nothing fits; one bad
// problem never fails a batch.
package solver

import (
	"context"
	"fmt"
	"log"
)

// Options configures a Solver. The zero value works: no oracle, default
// classification tables.
type Options struct {
	// Oracle is the external symbolic evaluator consulted by the
	// integration engine and the fallback chain. Nil disables it.
	Oracle Oracle
	// Classifier overrides the default category tables.
	Classifier *Classifier
}

// Solver is safe for concurrent use: all tables are immutable after New
// and every solve call owns its own state.
type Solver struct {
	oracle     Oracle
	cls        *Classifier
	routes     []route
	strategies []Strategy
}

// New builds a Solver with its route table and fallback chain.
func New(opts Options) *Solver {
	cls := opts.Classifier
	if cls == nil {
		cls = defaultClassifier
	}
	s := &Solver{
		oracle:     opts.Oracle,
		cls:        cls,
		strategies: defaultStrategies(),
	}
	s.routes = s.buildRoutes()
	return s
}

var defaultSolver = New(Options{})

// Solve runs the full pipeline over a block of text with the default
// solver.
func Solve(ctx context.Context, text string) []Solution {
	return defaultSolver.Solve(ctx, text)
}

// Solve normalizes and segments the text, then solves each problem
// independently. The result is never empty and errors never escape: a
// problem nothing could solve yields a record with Err set.
func (s *Solver) Solve(ctx context.Context, text string) []Solution {
	problems := Segment(Normalize(text))
	out := make([]Solution, 0, len(problems))
	for i, p := range problems {
		out = append(out, s.solveProblem(ctx, p, i+1))
	}
	return out
}

// Classify labels a problem with this solver's category tables.
func (s *Solver) Classify(problem string) string {
	return s.cls.Classify(Normalize(problem))
}

// solveProblem dispatches one problem and converts any failure, error or
// panic alike, into a fallback record. A panicking solver must not take
// down the batch.
func (s *Solver) solveProblem(ctx context.Context, problem string, number int) (rec Solution) {
	category := s.cls.Classify(problem)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("solver: panic on problem %d: %v", number, r)
			rec = s.fallback(ctx, problem, number, category, fmt.Errorf("solver panic: %v", r))
		}
	}()

	steps := &StepLog{}
	name, answer, viz, err := s.dispatch(ctx, problem, steps)
	if err != nil {
		log.Printf("solver: %s route failed on problem %d: %v", name, number, err)
		return s.fallback(ctx, problem, number, category, err)
	}
	return Solution{
		Number:        number,
		Problem:       problem,
		Category:      category,
		Steps:         steps.Steps(),
		Answer:        answer,
		Visualization: viz,
	}
}

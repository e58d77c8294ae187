package solver

// Step is one line of a derivation: a human-readable justification paired
// with the math it produced. Steps are appended in writing order and never
// reordered or deduplicated afterwards.
type Step struct {
	Description string `json:"description"`
	Math        string `json:"math"`
}

// Visualization describes a graph the caller may want to draw for the
// solved problem. The core never plots; it only hands out the hint.
type Visualization struct {
	Kind       string `json:"kind"` // always "graph" for now
	Expression string `json:"expression"`
	Note       string `json:"note,omitempty"`
}

// Solution is the result of solving one problem. Exactly one solving path
// (a dispatched solver or the fallback chain) produces it. Err != ""
// means Answer is a diagnostic message rather than a computed result: a
// soft failure, never an exception.
type Solution struct {
	Number        int            `json:"number"`
	Problem       string         `json:"problem"`
	Category      string         `json:"category"`
	Steps         []Step         `json:"steps"`
	Answer        string         `json:"answer"`
	Err           string         `json:"error,omitempty"`
	Visualization *Visualization `json:"visualization,omitempty"`
}

// StepLog collects Steps for one solving path. Solvers append as they go;
// the log is handed to the Solution untouched.
type StepLog struct {
	steps []Step
}

func (l *StepLog) Add(description, math string) {
	l.steps = append(l.steps, Step{Description: description, Math: math})
}

func (l *StepLog) Steps() []Step {
	return l.steps
}

func (l *StepLog) Len() int { return len(l.steps) }

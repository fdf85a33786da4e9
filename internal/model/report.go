package model

// SweepKind identifies which sweep drove a test.
type SweepKind string

const (
	// SweepNone means the test ran once.
	SweepNone SweepKind = "none"
	// SweepFault means the test was swept over allocation ordinals.
	SweepFault SweepKind = "fault"
	// SweepFuzz means the test was swept over pseudo-random seeds.
	SweepFuzz SweepKind = "fuzz"
)

// SweepResult is what a sweep controller hands back to the executor.
type SweepResult struct {
	Outcome Outcome   `yaml:"outcome"`
	Kind    SweepKind `yaml:"kind"`
	// FailingIteration is the first perturbation that did not pass.
	FailingIteration *uint32 `yaml:"failing_iteration,omitempty"`
	// FailingParameter is the fuzz seed at the start of FailingIteration.
	FailingParameter *uint64 `yaml:"failing_parameter,omitempty"`
	// Iterations is how many perturbed runs were executed.
	Iterations int `yaml:"iterations"`
}

// Report is the result of executing a single test, as handed to the UI and
// the report store.
type Report struct {
	RunID string `yaml:"run_id"`
	// Index is the position of the test in execution order.
	Index  int         `yaml:"index"`
	Suite  string      `yaml:"suite"`
	Test   string      `yaml:"test"`
	Depth  int         `yaml:"depth"`
	Result SweepResult `yaml:"result"`
}

// Summary holds run totals.
type Summary struct {
	Assertions  int
	Total       int
	Passes      int
	Fails       int
	Errors      int
	Skipped     int
	SuitePasses int
	SuiteFails  int
	Aborted     bool
}

// Failed reports whether the run should exit unsuccessfully.
func (s Summary) Failed() bool {
	return s.Fails > 0 || s.Errors > 0 || s.Aborted
}

// RunInfo describes how a run is instrumented.
type RunInfo struct {
	RunID          string
	Tests          int
	Mode           string
	FaultPolicy    string
	FuzzIterations int
}

// PlanEntry is one registered suite or test, as listed before running.
type PlanEntry struct {
	Suite    string
	Name     string
	Depth    int
	Kind     string
	Selected bool
}

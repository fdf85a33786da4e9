package model

import "fmt"

// Status is the state of a test in the executor state machine.
type Status int

// Available Status values. Passed, Failed, Errored and Skipped are terminal.
const (
	NotStarted Status = iota
	Running
	Passed
	Failed
	Errored
	Skipped
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Errored:
		return "error"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of one test invocation. Which payload fields
// are populated depends on Reason.
type Outcome struct {
	Status Status        `yaml:"status"`
	Reason FailureReason `yaml:"reason,omitempty"`

	// Message and Expression describe assertion failures.
	Message    string `yaml:"message,omitempty"`
	Expression string `yaml:"expression,omitempty"`
	// Site is where the failure was raised.
	Site Site `yaml:"site,omitempty"`
	// Block is the offending block id for allocator validation failures.
	Block uint64 `yaml:"block,omitempty"`
	// Leaks lists the freeable records for ReasonLeaked.
	Leaks []AllocationRecord `yaml:"leaks,omitempty"`
}

// PassedOutcome returns an outcome in the Passed state.
func PassedOutcome() Outcome {
	return Outcome{Status: Passed}
}

// SkippedOutcome returns an outcome in the Skipped state.
func SkippedOutcome() Outcome {
	return Outcome{Status: Skipped}
}

// FailedOutcome returns a Failed outcome for an assertion style failure.
func FailedOutcome(reason FailureReason, message, expression string, site Site) Outcome {
	return Outcome{
		Status:     Failed,
		Reason:     reason,
		Message:    message,
		Expression: expression,
		Site:       site,
	}
}

// LeakedOutcome returns a Failed outcome listing leaked records.
func LeakedOutcome(leaks []AllocationRecord) Outcome {
	return Outcome{Status: Failed, Reason: ReasonLeaked, Leaks: leaks}
}

// ErroredOutcome converts an escape payload into an Errored outcome.
func ErroredOutcome(reason FailureReason, payload Outcome) Outcome {
	payload.Status = Errored
	payload.Reason = reason

	return payload
}

// IsPassed reports whether the outcome is Passed.
func (o Outcome) IsPassed() bool {
	return o.Status == Passed
}

// IsFailure reports whether the outcome counts against a suite.
func (o Outcome) IsFailure() bool {
	return o.Status == Failed || o.Status == Errored
}

var statusByName = map[string]Status{
	"not started": NotStarted,
	"running":     Running,
	"passed":      Passed,
	"failed":      Failed,
	"error":       Errored,
	"skipped":     Skipped,
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	status, ok := statusByName[string(text)]
	if !ok {
		return fmt.Errorf("unknown status %q", text)
	}

	*s = status

	return nil
}

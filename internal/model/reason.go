// Package model defines the data structures shared by the harness.
package model

import "fmt"

// FailureReason tags why a test did not pass.
type FailureReason int

const (
	// ReasonNone is the zero reason carried by passing and skipped outcomes.
	ReasonNone FailureReason = iota
	// ReasonAllocationExhausted means the underlying allocator had nothing left.
	ReasonAllocationExhausted
	// ReasonForeignPointer is a release of a block the tracker never issued.
	ReasonForeignPointer
	// ReasonDoubleFree is a release of an already released block.
	ReasonDoubleFree
	// ReasonUseOfSupersededBlock is a release of a block that was reallocated.
	ReasonUseOfSupersededBlock
	// ReasonReleaseOfNil is a release of a nil block.
	ReasonReleaseOfNil
	// ReasonReallocateOfForeign is a reallocation of a block the tracker never issued.
	ReasonReallocateOfForeign
	// ReasonReallocateOfFreed is a reallocation of an already released block.
	ReasonReallocateOfFreed
	// ReasonReallocateOfSuperseded is a reallocation of a block that was already reallocated.
	ReasonReallocateOfSuperseded
	// ReasonReallocateOfNil is a reallocation of a nil block.
	ReasonReallocateOfNil
	// ReasonAssertionFailure is an ordinary failed assertion in a test body.
	ReasonAssertionFailure
	// ReasonStructuralMismatch is a failed structural equality assertion.
	ReasonStructuralMismatch
	// ReasonUncaughtProgramFailure is an internal failure of the code under test
	// that nothing was waiting for.
	ReasonUncaughtProgramFailure
	// ReasonLeaked means blocks were still live when the test body finished.
	ReasonLeaked
)

var reasonNames = map[FailureReason]string{
	ReasonNone:                   "none",
	ReasonAllocationExhausted:    "allocation exhausted",
	ReasonForeignPointer:         "release of foreign pointer",
	ReasonDoubleFree:             "double free",
	ReasonUseOfSupersededBlock:   "release of reallocated block",
	ReasonReleaseOfNil:           "release of nil block",
	ReasonReallocateOfForeign:    "reallocate of foreign pointer",
	ReasonReallocateOfFreed:      "reallocate of freed block",
	ReasonReallocateOfSuperseded: "reallocate of reallocated block",
	ReasonReallocateOfNil:        "reallocate of nil block",
	ReasonAssertionFailure:       "assertion failure",
	ReasonStructuralMismatch:     "structural mismatch",
	ReasonUncaughtProgramFailure: "uncaught program failure",
	ReasonLeaked:                 "memory leak",
}

func (r FailureReason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}

	return "unknown"
}

// IsAllocatorMisuse reports whether r is raised by allocator validation.
func (r FailureReason) IsAllocatorMisuse() bool {
	switch r {
	case ReasonForeignPointer, ReasonDoubleFree, ReasonUseOfSupersededBlock, ReasonReleaseOfNil,
		ReasonReallocateOfForeign, ReasonReallocateOfFreed, ReasonReallocateOfSuperseded, ReasonReallocateOfNil:
		return true
	default:
		return false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r FailureReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *FailureReason) UnmarshalText(text []byte) error {
	for reason, name := range reasonNames {
		if name == string(text) {
			*r = reason

			return nil
		}
	}

	return fmt.Errorf("unknown failure reason %q", text)
}

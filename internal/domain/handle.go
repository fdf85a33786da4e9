package domain

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"

	"github.com/stretchr/testify/assert"

	m "github.com/mouse-blink/faultline/internal/model"
)

// Allocator is what instrumented code allocates through.
type Allocator interface {
	Acquire(size int) *Block
	Release(block *Block)
	Reallocate(block *Block, size int) *Block
	// Check is an internal assertion of the code under test. A false cond
	// raises an uncaught program failure.
	Check(cond bool, msg string)
}

// T is the handle a test body receives. It is only valid for the duration
// of one body invocation.
type T struct {
	name    string
	tracker Tracker
	escape  Escape
	fuzzer  *Fuzzer

	assertions int
	failure    *m.Outcome
}

var _ Allocator = (*T)(nil)

func newT(name string, tracker Tracker, escape Escape, fuzzer *Fuzzer) *T {
	return &T{name: name, tracker: tracker, escape: escape, fuzzer: fuzzer}
}

// Name returns the name the test was registered with.
func (t *T) Name() string {
	return t.name
}

// Allocator returns the instrumented allocator to hand to code under test.
func (t *T) Allocator() Allocator {
	return t
}

// Acquire allocates size bytes. A nil block means the allocation failed.
func (t *T) Acquire(size int) *Block {
	return t.tracker.Acquire(size, callerSite(2))
}

// Release frees block.
func (t *T) Release(block *Block) {
	t.tracker.Release(block, callerSite(2))
}

// Reallocate resizes block, returning the replacement. A nil result means the
// allocation failed and block is left untouched.
func (t *T) Reallocate(block *Block, size int) *Block {
	return t.tracker.Reallocate(block, size, callerSite(2))
}

// Check raises an uncaught program failure when cond is false.
func (t *T) Check(cond bool, msg string) {
	if cond {
		return
	}

	t.escape.Trigger(m.ReasonUncaughtProgramFailure, m.Outcome{Message: msg, Site: callerSite(2)})
}

// Assert records an assertion failure when cond is false and reports cond.
// The body keeps running; return early to stop it.
func (t *T) Assert(cond bool, msg string) bool {
	if cond {
		t.assertions++

		return true
	}

	t.fail(m.FailedOutcome(m.ReasonAssertionFailure, msg, "", callerSite(2)))

	return false
}

// AssertEqual records a structural mismatch unless expected and actual are
// equal.
func (t *T) AssertEqual(expected, actual any, msg string) bool {
	if assert.ObjectsAreEqual(expected, actual) {
		t.assertions++

		return true
	}

	expression := fmt.Sprintf("expected: %#v\nactual  : %#v", expected, actual)
	t.fail(m.FailedOutcome(m.ReasonStructuralMismatch, msg, expression, callerSite(2)))

	return false
}

// ExpectFailure runs fn and asserts that it raises reason. Failures with any
// other reason propagate as if fn had been called directly.
func (t *T) ExpectFailure(reason m.FailureReason, fn func()) bool {
	site := callerSite(2)

	result := t.escape.Catch(reason, fn)
	t.escape.Escalate(result)

	if result.Kind == Caught {
		t.assertions++

		return true
	}

	t.fail(m.FailedOutcome(m.ReasonAssertionFailure, fmt.Sprintf("expected %s", reason), "", site))

	return false
}

// Fail records a failure with msg.
func (t *T) Fail(msg string) {
	t.fail(m.FailedOutcome(m.ReasonAssertionFailure, msg, "", callerSite(2)))
}

// Failed reports whether a failure was recorded.
func (t *T) Failed() bool {
	return t.failure != nil
}

// Rand returns the next fuzz value reduced by modulus, zero modulus
// meaning the raw value.
func (t *T) Rand(modulus uint32) uint32 {
	return t.fuzzer.NextRandom(modulus)
}

// DumpAllocations writes the tracker's records as JSON.
func (t *T) DumpAllocations(w io.Writer) error {
	return DumpAllocations(w, t.tracker)
}

func (t *T) fail(out m.Outcome) {
	if t.failure == nil {
		t.failure = &out
	}
}

// outcome is the verdict of a body that returned normally.
func (t *T) outcome() m.Outcome {
	if t.failure != nil {
		return *t.failure
	}

	return m.PassedOutcome()
}

func callerSite(skip int) m.Site {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return m.Site{}
	}

	return m.Site{File: filepath.Base(file), Line: line}
}

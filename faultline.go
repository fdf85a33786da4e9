// Package faultline is an embeddable unit-test harness. Tests receive a *T
// whose allocator is tracked, so the harness can report leaks and misuse,
// re-run a test with each allocation failing in turn, and sweep fuzz tests
// over deterministic seeds.
//
// A test program registers its suites and hands control to Main:
//
//	func main() {
//		faultline.Main(faultline.NewSuite("stack",
//			faultline.NewTest("push", testPush),
//			faultline.FuzzTest("random pushes", fuzzPush),
//		))
//	}
package faultline

import (
	"github.com/mouse-blink/faultline/cmd"
	"github.com/mouse-blink/faultline/internal/domain"
	m "github.com/mouse-blink/faultline/internal/model"
)

type (
	// T is the handle a test body receives.
	T = domain.T
	// Test is one registered test case.
	Test = domain.Test
	// Suite groups tests and nested suites.
	Suite = domain.Suite
	// Plan is everything registered for one run.
	Plan = domain.Plan
	// Block is memory handed out by the tracked allocator.
	Block = domain.Block
	// Allocator is what code under test allocates through.
	Allocator = domain.Allocator
	// FailureReason tags why a test did not pass.
	FailureReason = m.FailureReason
)

// Failure reasons that can be awaited with T.ExpectFailure.
const (
	AllocationExhausted    = m.ReasonAllocationExhausted
	ForeignPointer         = m.ReasonForeignPointer
	DoubleFree             = m.ReasonDoubleFree
	UseOfSupersededBlock   = m.ReasonUseOfSupersededBlock
	ReleaseOfNil           = m.ReasonReleaseOfNil
	ReallocateOfForeign    = m.ReasonReallocateOfForeign
	ReallocateOfFreed      = m.ReasonReallocateOfFreed
	ReallocateOfSuperseded = m.ReasonReallocateOfSuperseded
	ReallocateOfNil        = m.ReasonReallocateOfNil
	UncaughtProgramFailure = m.ReasonUncaughtProgramFailure
)

// NewTest registers body under name.
func NewTest(name string, body func(t *T)) Test {
	return Test{Name: name, Body: body}
}

// FuzzTest registers body under name to be swept over pseudo-random seeds.
// Bodies draw values with T.Rand.
func FuzzTest(name string, body func(t *T)) Test {
	return Test{Name: name, Body: body, Fuzz: true}
}

// NewSuite groups tests under name.
func NewSuite(name string, tests ...Test) Suite {
	return Suite{Name: name, Tests: tests}
}

// Main runs the command line over suites and exits non-zero when any test
// failed.
func Main(suites ...Suite) {
	Run(Plan{Suites: suites})
}

// Run is Main for plans with top-level tests.
func Run(plan Plan) {
	cmd.Execute(plan)
}

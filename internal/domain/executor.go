package domain

import (
	"log/slog"
	"strings"

	"github.com/mouse-blink/faultline/internal/adapter"
	"github.com/mouse-blink/faultline/internal/config"
	"github.com/mouse-blink/faultline/internal/controller"
	"github.com/mouse-blink/faultline/internal/logging"
	m "github.com/mouse-blink/faultline/internal/model"
)

// Test is one registered test case.
type Test struct {
	Name string
	Body func(t *T)
	// Fuzz sweeps the body over pseudo-random seeds.
	Fuzz bool
	// FuzzIterations overrides the configured iteration count when positive.
	FuzzIterations int
}

// Suite groups tests and nested suites.
type Suite struct {
	Name   string
	Tests  []Test
	Suites []Suite
}

// Plan is everything registered for one run. Top-level tests run before
// suites.
type Plan struct {
	Tests  []Test
	Suites []Suite
}

// Options configures an Executor.
type Options struct {
	Mode           Mode
	FaultCheck     bool
	FaultPolicy    FaultMode
	FuzzIterations int
	// Tests and Suites are substring filters, empty matches everything.
	Tests  []string
	Suites []string
}

// OptionsFromConfig maps configuration switches onto executor options.
func OptionsFromConfig(cfg config.Config) Options {
	mode := ModeOff

	switch {
	case cfg.LeakCheckPass:
		mode = ModePassthrough
	case cfg.LeakCheck:
		mode = ModeLeakCheck
	case cfg.FaultCheck || cfg.FaultPersistent:
		mode = ModePassthrough
	}

	policy := FaultOneShot
	if cfg.FaultPersistent {
		policy = FaultPersistent
	}

	return Options{
		Mode:           mode,
		FaultCheck:     cfg.FaultCheck || cfg.FaultPersistent,
		FaultPolicy:    policy,
		FuzzIterations: cfg.FuzzIterations,
		Tests:          cfg.Tests,
		Suites:         cfg.Suites,
	}
}

// Executor runs a Plan test by test, deriving suite verdicts and run totals.
type Executor interface {
	Run(plan Plan) m.Summary
	// Entries lists the plan with the filter verdict of every entry.
	Entries(plan Plan) []m.PlanEntry
	Reports() []m.Report
	// Aborted reports whether the underlying allocator ran out, which stops
	// the run.
	Aborted() bool
}

type executor struct {
	opts    Options
	ui      controller.UI
	tracker Tracker
	escape  Escape
	fuzzer  *Fuzzer
	sweeper Sweeper

	summary m.Summary
	reports []m.Report
	aborted bool
}

// NewExecutor constructs an Executor allocating from alloc and reporting to ui.
func NewExecutor(alloc adapter.Allocator, ui controller.UI, opts Options) Executor {
	escape := NewEscape()
	tracker := NewTracker(alloc, escape)
	tracker.SetMode(opts.Mode)
	fuzzer := NewFuzzer()

	return &executor{
		opts:    opts,
		ui:      ui,
		tracker: tracker,
		escape:  escape,
		fuzzer:  fuzzer,
		sweeper: NewSweeper(tracker, escape, fuzzer),
	}
}

func (e *executor) Run(plan Plan) m.Summary {
	e.ui.DisplayRunInfo(m.RunInfo{
		RunID:          logging.RunID,
		Tests:          countSelected(e.Entries(plan)),
		Mode:           e.opts.Mode.String(),
		FaultPolicy:    e.faultPolicyName(),
		FuzzIterations: e.fuzzIterations(Test{}),
	})

	for _, test := range plan.Tests {
		e.runTest(test, "", 0)
	}

	for _, suite := range plan.Suites {
		e.runSuite(suite, "", 0, false)
	}

	e.summary.Aborted = e.aborted

	return e.summary
}

func (e *executor) Reports() []m.Report {
	return e.reports
}

func (e *executor) Aborted() bool {
	return e.aborted
}

func (e *executor) Entries(plan Plan) []m.PlanEntry {
	var entries []m.PlanEntry

	for _, test := range plan.Tests {
		entries = append(entries, e.testEntry(test, "", 0, true))
	}

	var walk func(suite Suite, parent string, depth int, inherited bool)

	walk = func(suite Suite, parent string, depth int, inherited bool) {
		path := suitePath(parent, suite.Name)
		selected := inherited || matches(e.opts.Suites, path)

		entries = append(entries, m.PlanEntry{
			Suite:    parent,
			Name:     suite.Name,
			Depth:    depth,
			Kind:     "suite",
			Selected: selected,
		})

		for _, test := range suite.Tests {
			entries = append(entries, e.testEntry(test, path, depth+1, selected))
		}

		for _, sub := range suite.Suites {
			walk(sub, path, depth+1, selected)
		}
	}

	for _, suite := range plan.Suites {
		walk(suite, "", 0, false)
	}

	return entries
}

func (e *executor) testEntry(test Test, suite string, depth int, suiteSelected bool) m.PlanEntry {
	kind := "test"
	if test.Fuzz {
		kind = "fuzz"
	}

	return m.PlanEntry{
		Suite:    suite,
		Name:     test.Name,
		Depth:    depth,
		Kind:     kind,
		Selected: suiteSelected && matches(e.opts.Tests, test.Name),
	}
}

func (e *executor) runSuite(suite Suite, parent string, depth int, inherited bool) m.Status {
	path := suitePath(parent, suite.Name)
	selected := inherited || matches(e.opts.Suites, path)

	if e.aborted {
		return m.Skipped
	}

	if !selected && !e.reachable(suite, path) {
		e.summary.Skipped += countTests(suite)

		return m.Skipped
	}

	e.ui.DisplaySuiteStart(suite.Name, depth)

	status := m.Passed

	if selected {
		for _, test := range suite.Tests {
			if e.runTest(test, path, depth+1) == m.Failed {
				status = m.Failed
			}
		}
	} else {
		e.summary.Skipped += len(suite.Tests)
	}

	for _, sub := range suite.Suites {
		if e.runSuite(sub, path, depth+1, selected) == m.Failed {
			status = m.Failed
		}
	}

	if status == m.Failed {
		e.summary.SuiteFails++
	} else {
		e.summary.SuitePasses++
	}

	logging.Logger.Debug("suite finished", slog.String("suite", path), slog.String("status", status.String()))
	e.ui.DisplaySuiteEnd(suite.Name, status, depth)

	return status
}

// reachable reports whether a nested suite below suite matches the suite
// filter, so suite has to be entered even though its own tests do not run.
func (e *executor) reachable(suite Suite, path string) bool {
	for _, sub := range suite.Suites {
		subPath := suitePath(path, sub.Name)
		if matches(e.opts.Suites, subPath) || e.reachable(sub, subPath) {
			return true
		}
	}

	return false
}

// runTest drives one test to a terminal state. Failed and Errored tests both
// report m.Failed so the enclosing suite fails.
func (e *executor) runTest(test Test, suite string, depth int) m.Status {
	if e.aborted {
		return m.Skipped
	}

	if !matches(e.opts.Tests, test.Name) {
		e.summary.Skipped++

		return m.Skipped
	}

	logging.Logger.Debug("test started", slog.String("suite", suite), slog.String("test", test.Name))
	e.ui.DisplayStartingTest(test.Name, depth)

	result := e.execute(test)
	status := result.Outcome.Status

	e.summary.Total++

	switch status {
	case m.Passed:
		e.summary.Passes++
	case m.Failed:
		e.summary.Fails++
	case m.Errored:
		e.summary.Errors++
	}

	report := m.Report{
		RunID:  logging.RunID,
		Index:  len(e.reports),
		Suite:  suite,
		Test:   test.Name,
		Depth:  depth,
		Result: result,
	}
	e.reports = append(e.reports, report)

	logging.Logger.Debug("test finished",
		slog.String("test", test.Name),
		slog.String("status", status.String()),
		slog.String("reason", result.Outcome.Reason.String()),
	)
	e.ui.DisplayCompletedTest(report)

	if result.Outcome.Reason == m.ReasonAllocationExhausted {
		e.aborted = true
		logging.Logger.Error("allocator exhausted, aborting run",
			slog.String("test", test.Name),
			slog.String("message", result.Outcome.Message),
		)
	}

	if result.Outcome.IsFailure() {
		return m.Failed
	}

	return status
}

func (e *executor) execute(test Test) m.SweepResult {
	defer e.tracker.Reset()

	body := e.bodyFor(test)

	switch {
	case test.Fuzz:
		return e.sweeper.FuzzSweep(body, e.fuzzIterations(test))

	case e.opts.FaultCheck:
		// calls are only counted while the tracker is on
		if mode := e.tracker.Mode(); mode == ModeOff {
			e.tracker.SetMode(ModePassthrough)
			defer e.tracker.SetMode(mode)
		}

		return e.sweeper.FaultSweep(body, e.opts.FaultPolicy)

	default:
		return m.SweepResult{Outcome: e.sweeper.RunOnce(body), Kind: m.SweepNone, Iterations: 1}
	}
}

func (e *executor) bodyFor(test Test) func() m.Outcome {
	return func() m.Outcome {
		t := newT(test.Name, e.tracker, e.escape, e.fuzzer)
		defer func() { e.summary.Assertions += t.assertions }()

		test.Body(t)

		return t.outcome()
	}
}

func (e *executor) fuzzIterations(test Test) int {
	switch {
	case test.FuzzIterations > 0:
		return test.FuzzIterations
	case e.opts.FuzzIterations > 0:
		return e.opts.FuzzIterations
	default:
		return DefaultFuzzIterations
	}
}

func (e *executor) faultPolicyName() string {
	if !e.opts.FaultCheck {
		return FaultOff.String()
	}

	return e.opts.FaultPolicy.String()
}

// countTests counts the tests of suite and all of its nested suites.
func countTests(suite Suite) int {
	n := len(suite.Tests)
	for _, sub := range suite.Suites {
		n += countTests(sub)
	}

	return n
}

func countSelected(entries []m.PlanEntry) int {
	n := 0

	for _, entry := range entries {
		if entry.Kind != "suite" && entry.Selected {
			n++
		}
	}

	return n
}

func suitePath(parent, name string) string {
	if parent == "" {
		return name
	}

	return parent + "/" + name
}

// matches reports whether name contains any of the filters. No filters
// match everything.
func matches(filters []string, name string) bool {
	if len(filters) == 0 {
		return true
	}

	for _, filter := range filters {
		if strings.Contains(name, filter) {
			return true
		}
	}

	return false
}

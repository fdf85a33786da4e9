package domain

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/faultline/internal/adapter"
	"github.com/mouse-blink/faultline/internal/config"
	controllermocks "github.com/mouse-blink/faultline/internal/controller/mocks"
	m "github.com/mouse-blink/faultline/internal/model"
)

// allowDisplays lets every display call through. Register specific
// expectations before calling it, the first matching expectation wins.
func allowDisplays(ui *controllermocks.MockUI) {
	ui.EXPECT().DisplayRunInfo(mock.Anything).Maybe()
	ui.EXPECT().DisplaySuiteStart(mock.Anything, mock.Anything).Maybe()
	ui.EXPECT().DisplaySuiteEnd(mock.Anything, mock.Anything, mock.Anything).Maybe()
	ui.EXPECT().DisplayStartingTest(mock.Anything, mock.Anything).Maybe()
	ui.EXPECT().DisplayCompletedTest(mock.Anything).Maybe()
}

func newTestExecutor(t *testing.T, opts Options) Executor {
	t.Helper()

	ui := controllermocks.NewMockUI(t)
	allowDisplays(ui)

	return NewExecutor(adapter.NewHeapAllocator(0), ui, opts)
}

func leakingTest(name string) Test {
	return Test{Name: name, Body: func(t *T) {
		t.Acquire(8)
	}}
}

func passingTest(name string) Test {
	return Test{Name: name, Body: func(t *T) {
		b := t.Acquire(8)
		t.Assert(b.Len() == 8, "size")
		t.Release(b)
	}}
}

func tolerantTest(name string) Test {
	return Test{Name: name, Body: func(t *T) {
		b := t.Acquire(8)
		if b == nil {
			return
		}

		t.Assert(b.Len() == 8, "size")
		t.Release(b)
	}}
}

func TestExecutor_LeakScenario(t *testing.T) {
	ex := newTestExecutor(t, Options{Mode: ModeLeakCheck})

	summary := ex.Run(Plan{Suites: []Suite{{Name: "alloc", Tests: []Test{leakingTest("leaks")}}}})

	require.Equal(t, 1, summary.Total)
	require.Equal(t, 1, summary.Fails)
	require.Equal(t, 1, summary.SuiteFails)

	reports := ex.Reports()
	require.Len(t, reports, 1)

	out := reports[0].Result.Outcome
	require.Equal(t, m.Failed, out.Status)
	require.Equal(t, m.ReasonLeaked, out.Reason)
	require.Len(t, out.Leaks, 1)
	require.Equal(t, 8, out.Leaks[0].Size)
	require.Equal(t, "alloc", reports[0].Suite)
	require.Equal(t, 1, reports[0].Depth)
	require.Equal(t, m.SweepNone, reports[0].Result.Kind)
}

func TestExecutor_DoubleFreeScenario(t *testing.T) {
	ex := newTestExecutor(t, Options{Mode: ModeLeakCheck})
	reached := false

	summary := ex.Run(Plan{Tests: []Test{{Name: "double", Body: func(t *T) {
		b := t.Acquire(8)
		t.Release(b)
		t.Release(b)
		reached = true
	}}}})

	require.False(t, reached)
	require.Equal(t, 1, summary.Errors)
	require.True(t, summary.Failed())

	out := ex.Reports()[0].Result.Outcome
	require.Equal(t, m.Errored, out.Status)
	require.Equal(t, m.ReasonDoubleFree, out.Reason)
}

func TestExecutor_FaultCheck_ToleratedNilPasses(t *testing.T) {
	ex := newTestExecutor(t, Options{Mode: ModeLeakCheck, FaultCheck: true, FaultPolicy: FaultOneShot})

	summary := ex.Run(Plan{Tests: []Test{{Name: "tolerant", Body: func(t *T) {
		b := t.Acquire(8)
		if b == nil {
			return
		}

		t.Release(b)
	}}}})

	require.Equal(t, 1, summary.Passes)

	result := ex.Reports()[0].Result
	require.Equal(t, m.SweepFault, result.Kind)
	require.Equal(t, 1, result.Iterations)
	require.Nil(t, result.FailingIteration)
}

func TestExecutor_FaultCheck_WorksWithTrackerOff(t *testing.T) {
	ex := newTestExecutor(t, Options{Mode: ModeOff, FaultCheck: true, FaultPolicy: FaultOneShot})

	summary := ex.Run(Plan{Tests: []Test{{Name: "unchecked nil", Body: func(t *T) {
		b := t.Acquire(8)
		t.Assert(b != nil, "acquire failed")
	}}}})

	require.Equal(t, 1, summary.Fails)

	result := ex.Reports()[0].Result
	require.Equal(t, uint32(0), *result.FailingIteration)
	require.Equal(t, "acquire failed", result.Outcome.Message)
	require.Equal(t, ModeOff, ex.(*executor).tracker.Mode())
}

func TestExecutor_FuzzTest_Passes(t *testing.T) {
	ex := newTestExecutor(t, Options{Mode: ModeLeakCheck})
	runs := 0

	summary := ex.Run(Plan{Tests: []Test{{Name: "fuzz", Fuzz: true, Body: func(t *T) {
		runs++
		t.Assert(t.Rand(10) < 10, "in range")
	}}}})

	require.Equal(t, 1, summary.Passes)
	require.Equal(t, DefaultFuzzIterations, runs)
	require.Equal(t, DefaultFuzzIterations, summary.Assertions)
	require.Equal(t, m.SweepFuzz, ex.Reports()[0].Result.Kind)
}

func TestExecutor_FuzzIterations_Precedence(t *testing.T) {
	ex := newTestExecutor(t, Options{FuzzIterations: 20})
	var runs []int

	counting := func(name string, iterations int) Test {
		n := len(runs)
		runs = append(runs, 0)

		return Test{Name: name, Fuzz: true, FuzzIterations: iterations, Body: func(*T) { runs[n]++ }}
	}

	ex.Run(Plan{Tests: []Test{counting("configured", 0), counting("own", 7)}})

	require.Equal(t, []int{20, 7}, runs)
}

func TestExecutor_TestFilter_SkipsWithoutRunning(t *testing.T) {
	ex := newTestExecutor(t, Options{Mode: ModeLeakCheck, Tests: []string{"keep"}})
	ran := false

	summary := ex.Run(Plan{Tests: []Test{
		passingTest("keep me"),
		{Name: "drop", Body: func(*T) { ran = true }},
	}})

	require.False(t, ran)
	require.Equal(t, 1, summary.Total)
	require.Equal(t, 1, summary.Passes)
	require.Equal(t, 1, summary.Skipped)
	require.Len(t, ex.Reports(), 1)
}

func TestExecutor_SuiteFilter_SelectsNestedSuites(t *testing.T) {
	ex := newTestExecutor(t, Options{Mode: ModeLeakCheck, Suites: []string{"outer/inner"}})

	summary := ex.Run(Plan{Suites: []Suite{
		{
			Name:  "outer",
			Tests: []Test{leakingTest("outer test")},
			Suites: []Suite{
				{Name: "inner", Tests: []Test{passingTest("inner test")}, Suites: []Suite{
					{Name: "deep", Tests: []Test{passingTest("deep test")}},
				}},
			},
		},
		{Name: "other", Tests: []Test{leakingTest("other test")}},
	}})

	require.Equal(t, 2, summary.Total)
	require.Equal(t, 2, summary.Passes)
	require.Equal(t, 2, summary.Skipped)
	require.Zero(t, summary.Fails)
	require.Equal(t, 3, summary.SuitePasses)

	var names []string
	for _, report := range ex.Reports() {
		names = append(names, report.Suite+":"+report.Test)
	}

	require.Equal(t, []string{"outer/inner:inner test", "outer/inner/deep:deep test"}, names)
}

func TestExecutor_SuiteVerdicts(t *testing.T) {
	ui := controllermocks.NewMockUI(t)
	ui.EXPECT().DisplaySuiteEnd("broken", m.Failed, 1).Once()
	ui.EXPECT().DisplaySuiteEnd("root", m.Failed, 0).Once()
	ui.EXPECT().DisplaySuiteEnd("clean", m.Passed, 0).Once()
	allowDisplays(ui)

	ex := NewExecutor(adapter.NewHeapAllocator(0), ui, Options{Mode: ModeLeakCheck, Tests: []string{"ok", "bad"}})

	summary := ex.Run(Plan{Suites: []Suite{
		{Name: "root", Tests: []Test{passingTest("ok")}, Suites: []Suite{
			{Name: "broken", Tests: []Test{leakingTest("bad"), passingTest("ok too")}},
		}},
		{Name: "clean", Tests: []Test{passingTest("ok"), leakingTest("skipped leak")}},
	}})

	require.Equal(t, 2, summary.SuiteFails)
	require.Equal(t, 1, summary.SuitePasses)
	require.Equal(t, 1, summary.Skipped)
	require.Equal(t, 4, summary.Total)
}

func TestExecutor_ExhaustionAbortsRun(t *testing.T) {
	ui := controllermocks.NewMockUI(t)
	allowDisplays(ui)

	ex := NewExecutor(adapter.NewHeapAllocator(4), ui, Options{Mode: ModeLeakCheck})
	ran := false

	summary := ex.Run(Plan{
		Tests:  []Test{passingTest("too big")},
		Suites: []Suite{{Name: "later", Tests: []Test{{Name: "never", Body: func(*T) { ran = true }}}}},
	})

	require.False(t, ran)
	require.True(t, ex.Aborted())
	require.True(t, summary.Aborted)
	require.Equal(t, 1, summary.Errors)
	require.Equal(t, m.ReasonAllocationExhausted, ex.Reports()[0].Result.Outcome.Reason)
	ui.AssertNotCalled(t, "DisplaySuiteStart", "later", 0)
}

func TestExecutor_LiveByteCapIsPerTest(t *testing.T) {
	holding := func(name string) Test {
		return Test{Name: name, Body: func(t *T) {
			t.Acquire(60)
		}}
	}

	for name, opts := range map[string]Options{
		"off":         {Mode: ModeOff},
		"fault check": {Mode: ModePassthrough, FaultCheck: true, FaultPolicy: FaultOneShot},
	} {
		t.Run(name, func(t *testing.T) {
			ui := controllermocks.NewMockUI(t)
			allowDisplays(ui)

			alloc := adapter.NewHeapAllocator(100)
			ex := NewExecutor(alloc, ui, opts)

			summary := ex.Run(Plan{Tests: []Test{holding("a"), holding("b"), holding("c")}})

			require.False(t, ex.Aborted())
			require.Equal(t, 3, summary.Passes)
			require.Zero(t, summary.Errors)
			require.Zero(t, alloc.InUse())
		})
	}
}

func TestExecutor_ResetsTrackerAfterEveryTest(t *testing.T) {
	ex := newTestExecutor(t, Options{Mode: ModeLeakCheck})

	ex.Run(Plan{Tests: []Test{leakingTest("one"), {Name: "panics", Body: func(t *T) {
		t.Acquire(1)
		panic("boom")
	}}}})

	tr := ex.(*executor).tracker
	require.Zero(t, tr.LiveCount())
	require.False(t, tr.HasLeaks())

	out := ex.Reports()[1].Result.Outcome
	require.Equal(t, m.ReasonUncaughtProgramFailure, out.Reason)
	require.Equal(t, "panic: boom", out.Message)
}

func TestExecutor_ReportsRunInfo(t *testing.T) {
	ui := controllermocks.NewMockUI(t)
	ui.EXPECT().DisplayRunInfo(mock.MatchedBy(func(info m.RunInfo) bool {
		return info.Tests == 2 && info.Mode == "leak-check" && info.FaultPolicy == "persistent" &&
			info.FuzzIterations == DefaultFuzzIterations && info.RunID != ""
	})).Once()
	allowDisplays(ui)

	ex := NewExecutor(adapter.NewHeapAllocator(0), ui, Options{Mode: ModeLeakCheck, FaultCheck: true, FaultPolicy: FaultPersistent})
	summary := ex.Run(Plan{Tests: []Test{tolerantTest("a")}, Suites: []Suite{{Name: "s", Tests: []Test{tolerantTest("b")}}}})

	require.Equal(t, 2, summary.Passes)
	require.Equal(t, 2, summary.Assertions)
}

func TestExecutor_Entries(t *testing.T) {
	ex := newTestExecutor(t, Options{Tests: []string{"a"}, Suites: []string{"x"}})

	entries := ex.Entries(Plan{
		Tests: []Test{{Name: "alpha"}, {Name: "echo", Fuzz: true}},
		Suites: []Suite{
			{Name: "x", Tests: []Test{{Name: "gamma"}}, Suites: []Suite{{Name: "y", Tests: []Test{{Name: "omicron"}}}}},
			{Name: "z", Tests: []Test{{Name: "alpha"}}},
		},
	})

	require.Equal(t, []m.PlanEntry{
		{Name: "alpha", Kind: "test", Selected: true},
		{Name: "echo", Kind: "fuzz", Selected: false},
		{Name: "x", Kind: "suite", Selected: true},
		{Suite: "x", Name: "gamma", Depth: 1, Kind: "test", Selected: true},
		{Suite: "x", Name: "y", Depth: 1, Kind: "suite", Selected: true},
		{Suite: "x/y", Name: "omicron", Depth: 2, Kind: "test", Selected: false},
		{Name: "z", Kind: "suite", Selected: false},
		{Suite: "z", Name: "alpha", Depth: 1, Kind: "test", Selected: false},
	}, entries)
}

func TestOptionsFromConfig(t *testing.T) {
	tests := []struct {
		name   string
		cfg    config.Config
		expect Options
	}{
		{
			name:   "defaults",
			cfg:    config.Default(),
			expect: Options{Mode: ModeOff, FaultPolicy: FaultOneShot, FuzzIterations: config.DefaultFuzzIterations},
		},
		{
			name:   "leak check",
			cfg:    config.Config{LeakCheck: true},
			expect: Options{Mode: ModeLeakCheck, FaultPolicy: FaultOneShot},
		},
		{
			name:   "leak check passthrough",
			cfg:    config.Config{LeakCheck: true, LeakCheckPass: true},
			expect: Options{Mode: ModePassthrough, FaultPolicy: FaultOneShot},
		},
		{
			name:   "fault check alone",
			cfg:    config.Config{FaultCheck: true},
			expect: Options{Mode: ModePassthrough, FaultCheck: true, FaultPolicy: FaultOneShot},
		},
		{
			name:   "persistent faults with leak check",
			cfg:    config.Config{LeakCheck: true, FaultPersistent: true, Tests: []string{"t"}, Suites: []string{"s"}},
			expect: Options{Mode: ModeLeakCheck, FaultCheck: true, FaultPolicy: FaultPersistent, Tests: []string{"t"}, Suites: []string{"s"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expect, OptionsFromConfig(tt.cfg))
		})
	}
}

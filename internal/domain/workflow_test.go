package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adaptermocks "github.com/mouse-blink/faultline/internal/adapter/mocks"
	controllermocks "github.com/mouse-blink/faultline/internal/controller/mocks"
	m "github.com/mouse-blink/faultline/internal/model"
)

func expectSession(ui *controllermocks.MockUI) {
	ui.EXPECT().Start(mock.Anything).Return(nil).Once()
	ui.EXPECT().Wait().Once()
	ui.EXPECT().Close().Once()
}

func TestWorkflow_Run_Passing(t *testing.T) {
	ui := controllermocks.NewMockUI(t)
	store := adaptermocks.NewMockReportStore(t)

	expectSession(ui)
	ui.EXPECT().DisplaySummary(mock.MatchedBy(func(s m.Summary) bool {
		return s.Total == 1 && s.Passes == 1
	})).Once()
	allowDisplays(ui)

	wf := NewWorkflow(store, ui)

	err := wf.Run(RunArgs{
		Plan:    Plan{Tests: []Test{passingTest("ok")}},
		Options: Options{Mode: ModeLeakCheck},
	})
	require.NoError(t, err)
}

func TestWorkflow_Run_FailingReturnsErrTestsFailed(t *testing.T) {
	ui := controllermocks.NewMockUI(t)
	store := adaptermocks.NewMockReportStore(t)

	expectSession(ui)
	ui.EXPECT().DisplaySummary(mock.Anything).Once()
	allowDisplays(ui)

	wf := NewWorkflow(store, ui)

	err := wf.Run(RunArgs{
		Plan:    Plan{Tests: []Test{leakingTest("leaks"), passingTest("ok")}},
		Options: Options{Mode: ModeLeakCheck},
	})
	require.ErrorIs(t, err, ErrTestsFailed)
	require.ErrorContains(t, err, "1 failed, 0 errored of 2")
}

func TestWorkflow_Run_MaxLiveBytesExhausts(t *testing.T) {
	ui := controllermocks.NewMockUI(t)
	store := adaptermocks.NewMockReportStore(t)

	expectSession(ui)
	ui.EXPECT().DisplaySummary(mock.MatchedBy(func(s m.Summary) bool {
		return s.Aborted && s.Errors == 1
	})).Once()
	allowDisplays(ui)

	err := NewWorkflow(store, ui).Run(RunArgs{
		Plan:         Plan{Tests: []Test{passingTest("big")}},
		Options:      Options{Mode: ModeLeakCheck},
		MaxLiveBytes: 4,
	})
	require.ErrorIs(t, err, ErrTestsFailed)
}

func TestWorkflow_Run_SavesReports(t *testing.T) {
	ui := controllermocks.NewMockUI(t)
	store := adaptermocks.NewMockReportStore(t)
	path := m.Path("reports")

	expectSession(ui)
	ui.EXPECT().DisplaySummary(mock.Anything).Once()
	allowDisplays(ui)

	store.EXPECT().CleanReports(path).Return(nil).Once()
	store.EXPECT().SaveReports(path, mock.MatchedBy(func(reports []m.Report) bool {
		return len(reports) == 2 && reports[0].Test == "a" && reports[1].Index == 1
	})).Return(nil).Once()
	store.EXPECT().RegenerateIndex(path, mock.MatchedBy(func(s m.Summary) bool {
		return s.Passes == 2
	})).Return(nil).Once()

	err := NewWorkflow(store, ui).Run(RunArgs{
		Plan:    Plan{Tests: []Test{passingTest("a"), passingTest("b")}},
		Options: Options{Mode: ModeLeakCheck},
		Reports: path,
	})
	require.NoError(t, err)
}

func TestWorkflow_Run_SaveErrorIsReturned(t *testing.T) {
	ui := controllermocks.NewMockUI(t)
	store := adaptermocks.NewMockReportStore(t)
	path := m.Path("reports")

	ui.EXPECT().Start(mock.Anything).Return(nil).Once()
	ui.EXPECT().Close().Once()
	ui.EXPECT().DisplaySummary(mock.Anything).Once()
	allowDisplays(ui)

	store.EXPECT().CleanReports(path).Return(nil).Once()
	store.EXPECT().SaveReports(path, mock.Anything).Return(errors.New("read-only")).Once()

	err := NewWorkflow(store, ui).Run(RunArgs{
		Plan:    Plan{Tests: []Test{passingTest("a")}},
		Reports: path,
	})
	require.ErrorContains(t, err, "failed to save reports: read-only")
}

func TestWorkflow_Run_StartError(t *testing.T) {
	ui := controllermocks.NewMockUI(t)
	store := adaptermocks.NewMockReportStore(t)

	ui.EXPECT().Start(mock.Anything).Return(errors.New("no tty")).Once()

	err := NewWorkflow(store, ui).Run(RunArgs{Plan: Plan{Tests: []Test{passingTest("a")}}})
	require.ErrorContains(t, err, "failed to start UI: no tty")
}

func TestWorkflow_List(t *testing.T) {
	ui := controllermocks.NewMockUI(t)
	store := adaptermocks.NewMockReportStore(t)

	expectSession(ui)
	ui.EXPECT().DisplayPlan([]m.PlanEntry{
		{Name: "a", Kind: "test", Selected: true},
		{Name: "s", Kind: "suite", Selected: true},
		{Suite: "s", Name: "b", Depth: 1, Kind: "fuzz", Selected: false},
	}).Return(nil).Once()

	err := NewWorkflow(store, ui).List(ListArgs{
		Plan: Plan{
			Tests:  []Test{{Name: "a"}},
			Suites: []Suite{{Name: "s", Tests: []Test{{Name: "b", Fuzz: true}}}},
		},
		Options: Options{Tests: []string{"a"}},
	})
	require.NoError(t, err)
}

func TestWorkflow_List_DisplayError(t *testing.T) {
	ui := controllermocks.NewMockUI(t)
	store := adaptermocks.NewMockReportStore(t)

	ui.EXPECT().Start(mock.Anything).Return(nil).Once()
	ui.EXPECT().Close().Once()
	ui.EXPECT().DisplayPlan(mock.Anything).Return(errors.New("render")).Once()

	err := NewWorkflow(store, ui).List(ListArgs{})
	require.ErrorContains(t, err, "failed to display plan: render")
}

func TestWorkflow_View(t *testing.T) {
	ui := controllermocks.NewMockUI(t)
	store := adaptermocks.NewMockReportStore(t)
	path := m.Path("reports")

	reports := []m.Report{
		{RunID: "run-9", Index: 0, Test: "first", Result: m.SweepResult{Outcome: m.PassedOutcome()}},
		{RunID: "run-9", Index: 1, Suite: "s", Test: "second", Depth: 1, Result: m.SweepResult{Outcome: m.PassedOutcome()}},
	}
	summary := m.Summary{Total: 2, Passes: 2}

	store.EXPECT().LoadReports(path).Return(reports, nil).Once()
	store.EXPECT().LoadSummary(path).Return(summary, nil).Once()

	expectSession(ui)
	ui.EXPECT().DisplayRunInfo(m.RunInfo{RunID: "run-9", Tests: 2, Mode: "saved", FaultPolicy: "saved"}).Once()
	ui.EXPECT().DisplayStartingTest("first", 0).Once()
	ui.EXPECT().DisplayStartingTest("second", 1).Once()
	ui.EXPECT().DisplayCompletedTest(reports[0]).Once()
	ui.EXPECT().DisplayCompletedTest(reports[1]).Once()
	ui.EXPECT().DisplaySummary(summary).Once()

	require.NoError(t, NewWorkflow(store, ui).View(ViewArgs{Reports: path}))
}

func TestWorkflow_View_LoadError(t *testing.T) {
	ui := controllermocks.NewMockUI(t)
	store := adaptermocks.NewMockReportStore(t)

	store.EXPECT().LoadReports(m.Path("missing")).Return(nil, errors.New("no such directory")).Once()

	err := NewWorkflow(store, ui).View(ViewArgs{Reports: "missing"})
	require.ErrorContains(t, err, "failed to load reports: no such directory")
}

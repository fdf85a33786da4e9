package domain

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/mouse-blink/faultline/internal/adapter"
	"github.com/mouse-blink/faultline/internal/controller"
	m "github.com/mouse-blink/faultline/internal/model"
)

// ErrTestsFailed is returned by Workflow.Run when any test failed or errored.
var ErrTestsFailed = errors.New("tests failed")

// RunArgs holds the arguments for running a plan.
type RunArgs struct {
	Plan    Plan
	Options Options
	// MaxLiveBytes caps the memory tests may hold at once, zero means no cap.
	MaxLiveBytes int
	// Reports is the directory reports are saved to, empty disables saving.
	Reports m.Path
}

// ListArgs holds the arguments for listing a plan.
type ListArgs struct {
	Plan    Plan
	Options Options
}

// ViewArgs holds the arguments for viewing saved reports.
type ViewArgs struct {
	Reports m.Path
}

// Workflow defines the harness operations exposed on the command line.
type Workflow interface {
	Run(args RunArgs) error
	List(args ListArgs) error
	View(args ViewArgs) error
}

type workflow struct {
	reportStore adapter.ReportStore
	ui          controller.UI
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(reportStore adapter.ReportStore, ui controller.UI) Workflow {
	return &workflow{
		reportStore: reportStore,
		ui:          ui,
	}
}

func (w *workflow) Run(args RunArgs) error {
	if err := w.ui.Start(controller.WithRunMode()); err != nil {
		return fmt.Errorf("failed to start UI: %w", err)
	}
	defer w.ui.Close()

	executor := NewExecutor(adapter.NewHeapAllocator(args.MaxLiveBytes), w.ui, args.Options)

	summary := executor.Run(args.Plan)
	w.ui.DisplaySummary(summary)

	if args.Reports != "" {
		if err := w.saveReports(args.Reports, executor.Reports(), summary); err != nil {
			return err
		}
	}

	w.ui.Wait()

	if summary.Failed() {
		return errors.Wrapf(ErrTestsFailed, "%d failed, %d errored of %d", summary.Fails, summary.Errors, summary.Total)
	}

	return nil
}

func (w *workflow) saveReports(path m.Path, reports []m.Report, summary m.Summary) error {
	if err := w.reportStore.CleanReports(path); err != nil {
		return fmt.Errorf("failed to clean reports: %w", err)
	}

	if err := w.reportStore.SaveReports(path, reports); err != nil {
		return fmt.Errorf("failed to save reports: %w", err)
	}

	if err := w.reportStore.RegenerateIndex(path, summary); err != nil {
		return fmt.Errorf("failed to regenerate index: %w", err)
	}

	return nil
}

func (w *workflow) List(args ListArgs) error {
	if err := w.ui.Start(controller.WithListMode()); err != nil {
		return fmt.Errorf("failed to start UI: %w", err)
	}
	defer w.ui.Close()

	executor := NewExecutor(adapter.NewHeapAllocator(0), w.ui, args.Options)
	if err := w.ui.DisplayPlan(executor.Entries(args.Plan)); err != nil {
		return fmt.Errorf("failed to display plan: %w", err)
	}

	w.ui.Wait()

	return nil
}

func (w *workflow) View(args ViewArgs) error {
	reports, err := w.reportStore.LoadReports(args.Reports)
	if err != nil {
		return fmt.Errorf("failed to load reports: %w", err)
	}

	summary, err := w.reportStore.LoadSummary(args.Reports)
	if err != nil {
		return fmt.Errorf("failed to load summary: %w", err)
	}

	if err := w.ui.Start(controller.WithRunMode()); err != nil {
		return fmt.Errorf("failed to start UI: %w", err)
	}
	defer w.ui.Close()

	info := m.RunInfo{Tests: len(reports), Mode: "saved", FaultPolicy: "saved"}
	if len(reports) > 0 {
		info.RunID = reports[0].RunID
	}

	w.ui.DisplayRunInfo(info)

	for _, report := range reports {
		w.ui.DisplayStartingTest(report.Test, report.Depth)
		w.ui.DisplayCompletedTest(report)
	}

	w.ui.DisplaySummary(summary)
	w.ui.Wait()

	return nil
}

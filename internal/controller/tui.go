package controller

import (
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	m "github.com/mouse-blink/faultline/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output  io.Writer
	program *tea.Program
	started bool
	done    chan struct{}
	err     error
	once    sync.Once
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output, done: make(chan struct{})}
}

// Start launches the Bubble Tea program in the background.
func (t *TUI) Start(options ...StartOption) error {
	return t.startWithModel(newRunModel(newStartConfig(options...).mode))
}

func (t *TUI) startWithModel(model tea.Model) error {
	if t.started {
		return nil
	}

	t.program = tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	t.started = true

	go func() {
		_, t.err = t.program.Run()
		close(t.done)
	}()

	return nil
}

// Close stops the program if the user has not already quit it.
func (t *TUI) Close() {
	t.once.Do(func() {
		if !t.started {
			return
		}

		t.program.Quit()
		<-t.done
	})
}

// Wait blocks until the user quits the program.
func (t *TUI) Wait() {
	if !t.started {
		return
	}

	<-t.done
}

// Err returns the error the program exited with, if any.
func (t *TUI) Err() error {
	return t.err
}

func (t *TUI) send(msg tea.Msg) {
	if !t.started {
		return
	}

	select {
	case <-t.done:
	default:
		t.program.Send(msg)
	}
}

// DisplayPlan shows the registered tests.
func (t *TUI) DisplayPlan(entries []m.PlanEntry) error {
	t.send(planMsg{entries: entries})

	return nil
}

// DisplayRunInfo shows how the run is instrumented.
func (t *TUI) DisplayRunInfo(info m.RunInfo) {
	t.send(runInfoMsg{info: info})
}

// DisplaySuiteStart tracks the running suite.
func (t *TUI) DisplaySuiteStart(name string, depth int) {
	t.send(suiteStartMsg{name: name, depth: depth})
}

// DisplaySuiteEnd leaves the finished suite.
func (t *TUI) DisplaySuiteEnd(name string, status m.Status, depth int) {
	t.send(suiteEndMsg{name: name, status: status, depth: depth})
}

// DisplayStartingTest shows the running test.
func (t *TUI) DisplayStartingTest(name string, depth int) {
	t.send(startTestMsg{name: name, depth: depth})
}

// DisplayCompletedTest records the result of a test.
func (t *TUI) DisplayCompletedTest(report m.Report) {
	t.send(completedTestMsg{report: report})
}

// DisplaySummary switches the display to the browsable results.
func (t *TUI) DisplaySummary(summary m.Summary) {
	t.send(summaryMsg{summary: summary})
}

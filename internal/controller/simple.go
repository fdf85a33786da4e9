package controller

import (
	"bytes"
	"fmt"

	"github.com/fatih/color"
	m "github.com/mouse-blink/faultline/internal/model"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	passColor = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	skipColor = color.New(color.FgYellow)
	infoColor = color.New(color.FgCyan)
	dimColor  = color.New(color.Faint)
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd  *cobra.Command
	mode StartMode
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(options ...StartOption) error {
	s.mode = newStartConfig(options...).mode

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {
}

// Wait returns immediately, there is nothing to dismiss.
func (s *SimpleUI) Wait() {
}

// DisplayPlan prints registered suites and tests as a table.
func (s *SimpleUI) DisplayPlan(entries []m.PlanEntry) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Name", "Kind", "Selected"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoFormatHeaders(true)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	tests, selected := 0, 0

	for _, entry := range entries {
		mark := ""
		if entry.Selected {
			mark = "x"
		}

		table.Append([]string{indent(entry.Depth) + entry.Name, entry.Kind, mark})

		if entry.Kind != "suite" {
			tests++

			if entry.Selected {
				selected++
			}
		}
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Tests %d", tests),
		"",
		fmt.Sprintf("%d", selected),
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayRunInfo prints how the run is instrumented.
func (s *SimpleUI) DisplayRunInfo(info m.RunInfo) {
	s.printf("%s %s\n", infoColor.Sprint("run"), dimColor.Sprint(info.RunID))
	s.printf("running %d test(s), memory: %s, faults: %s, fuzz iterations: %d\n",
		info.Tests, info.Mode, info.FaultPolicy, info.FuzzIterations)
}

// DisplaySuiteStart prints the suite header.
func (s *SimpleUI) DisplaySuiteStart(name string, depth int) {
	s.printf("%ssuite %s:\n", indent(depth), infoColor.Sprint(name))
}

// DisplaySuiteEnd prints the suite verdict.
func (s *SimpleUI) DisplaySuiteEnd(name string, status m.Status, depth int) {
	s.printf("%ssuite %s... %s\n", indent(depth), name, colorStatus(status))
}

// DisplayStartingTest prints the test name, the verdict follows on the
// same line once the test completes.
func (s *SimpleUI) DisplayStartingTest(name string, depth int) {
	s.printf("%stest %s... ", indent(depth), name)
}

// DisplayCompletedTest prints the verdict and failure details.
func (s *SimpleUI) DisplayCompletedTest(report m.Report) {
	s.printf("%s\n", colorStatus(report.Result.Outcome.Status))

	for _, line := range describeReport(report) {
		s.printf("%s%s\n", indent(report.Depth+1), line)
	}
}

// DisplaySummary prints run totals.
func (s *SimpleUI) DisplaySummary(summary m.Summary) {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"", "Total", "Passed", "Failed", "Errors", "Skipped"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	table.Append([]string{
		"tests",
		fmt.Sprintf("%d", summary.Total),
		fmt.Sprintf("%d", summary.Passes),
		fmt.Sprintf("%d", summary.Fails),
		fmt.Sprintf("%d", summary.Errors),
		fmt.Sprintf("%d", summary.Skipped),
	})
	table.Append([]string{
		"suites",
		fmt.Sprintf("%d", summary.SuitePasses+summary.SuiteFails),
		fmt.Sprintf("%d", summary.SuitePasses),
		fmt.Sprintf("%d", summary.SuiteFails),
		"-",
		"-",
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())
	s.printf("%d assertion(s) passed\n", summary.Assertions)

	if summary.Aborted {
		s.printf("%s\n", failColor.Sprint("run aborted: allocation exhausted"))
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func colorStatus(status m.Status) string {
	text := status.String()

	switch status {
	case m.Passed:
		return passColor.Sprint(text)
	case m.Failed, m.Errored:
		return failColor.Sprint(text)
	case m.Skipped:
		return skipColor.Sprint(text)
	default:
		return text
	}
}

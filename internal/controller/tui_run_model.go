package controller

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/faultline/internal/model"
)

// testResult holds information about a completed test, or a planned one in
// list mode.
type testResult struct {
	index   int
	suite   string
	name    string
	status  string
	details []string
}

// Implement list.Item interface for testResult.
func (r testResult) FilterValue() string {
	return r.suite + " " + r.name + " " + r.status
}

// testResultDelegate is the delegate for rendering test results in the list.
type testResultDelegate struct {
	offset int
}

func (d testResultDelegate) Height() int  { return 1 }
func (d testResultDelegate) Spacing() int { return 0 }
func (d testResultDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d testResultDelegate) Render(w io.Writer, model list.Model, index int, item list.Item) {
	result, ok := item.(testResult)
	if !ok {
		return
	}

	isSelected := index == model.Index()
	nameWidth := model.Width() - 24 // Reserve space for index and status columns

	name := result.name
	if result.suite != "" {
		name = result.suite + "/" + result.name
	}

	indexStyle, statusStyle, nameStyle := d.styles(result, isSelected)

	displayName := truncateName(name, nameWidth)
	if isSelected {
		displayName = animateScrollName(name, nameWidth, d.offset)
	}

	line := fmt.Sprintf("%s  %s  %s",
		indexStyle.Render(fmt.Sprintf("%-4d", result.index)),
		statusStyle.Render(fmt.Sprintf("%-8s", result.status)),
		nameStyle.Render(displayName),
	)
	_, _ = fmt.Fprint(w, line)
}

func (d testResultDelegate) styles(result testResult, isSelected bool) (lipgloss.Style, lipgloss.Style, lipgloss.Style) {
	if isSelected {
		selected := lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)

		return selected.Width(6).Align(lipgloss.Left), selected.Width(10).Align(lipgloss.Left), selected
	}

	statusColor, ok := statusColorMap[result.status]
	if !ok {
		statusColor = lipgloss.Color("8")
	}

	return lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true).
			Width(6).
			Align(lipgloss.Left),
		lipgloss.NewStyle().
			Foreground(statusColor).
			Bold(true).
			Width(10).
			Align(lipgloss.Left),
		lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))
}

var statusColorMap = map[string]lipgloss.Color{
	m.Passed.String():  lipgloss.Color("2"), // Green
	m.Failed.String():  lipgloss.Color("1"), // Red
	m.Errored.String(): lipgloss.Color("1"), // Red
	m.Skipped.String(): lipgloss.Color("3"), // Yellow
	"selected":         lipgloss.Color("2"),
	"filtered":         lipgloss.Color("8"),
}

// runModel handles the TUI display while tests execute, and the browsable
// results once the run is over.
type runModel struct {
	mode         StartMode
	width        int
	height       int
	progressBar  progress.Model
	info         m.RunInfo
	suites       []string
	currentTest  string
	completed    int
	percent      float64
	rendered     bool
	finished     bool
	summary      m.Summary
	results      []testResult
	resultsList  list.Model
	delegate     testResultDelegate
	animOffset   int
	lastSelected int
	showDetails  bool
}

func newRunModel(mode StartMode) runModel {
	prog := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	delegate := testResultDelegate{}
	resultsList := list.New([]list.Item{}, delegate, 80, 20)
	resultsList.SetShowPagination(false)
	resultsList.SetShowFilter(true)
	resultsList.SetShowHelp(false)
	resultsList.SetShowTitle(false)
	resultsList.SetShowStatusBar(false)
	resultsList.FilterInput.Placeholder = "Filter results…"

	return runModel{
		mode:         mode,
		progressBar:  prog,
		resultsList:  resultsList,
		delegate:     delegate,
		lastSelected: -1,
	}
}

func (rm runModel) Init() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (rm runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm = rm.handleWindowSize(msg)

	case tea.KeyMsg:
		rm, cmd = rm.handleKeyMsg(msg)

	case tickMsg:
		return rm.handleTickMsg(msg)

	case runInfoMsg:
		rm.info = msg.info
		rm.completed = 0
		rm.percent = 0
		rm.rendered = true

	case suiteStartMsg:
		rm.suites = append(rm.suites[:min(msg.depth, len(rm.suites))], msg.name)

	case suiteEndMsg:
		rm.suites = rm.suites[:min(msg.depth, len(rm.suites))]

	case startTestMsg:
		rm.currentTest = msg.name
		rm.rendered = true

	case completedTestMsg:
		rm = rm.handleCompletedTest(msg)

	case summaryMsg:
		rm.summary = msg.summary
		rm.finished = true
		rm.rendered = true
		rm.percent = 1

	case planMsg:
		rm = rm.handlePlan(msg)
	}

	return rm, cmd
}

func (rm runModel) View() string {
	if !rm.rendered {
		return "Initializing test run…\n"
	}

	if rm.finished {
		return rm.viewResults()
	}

	return rm.viewProgress()
}

func (rm runModel) viewProgress() string {
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	title := titleStyle.Render("faultline")

	summary := summaryStyle.Render(fmt.Sprintf(
		"Progress: %s / %s  •  Memory: %s  •  Faults: %s",
		accentStyle.Render(fmt.Sprintf("%d", rm.completed)),
		accentStyle.Render(fmt.Sprintf("%d", rm.info.Tests)),
		accentStyle.Render(rm.info.Mode),
		accentStyle.Render(rm.info.FaultPolicy),
	))

	progressView := lipgloss.NewStyle().
		Padding(0, 0, 1, 2).
		Render(rm.progressBar.ViewAs(rm.percent))

	current := strings.Join(append(append([]string{}, rm.suites...), rm.currentTest), "/")
	currentBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Padding(0, 1).
		Margin(0, 1).
		Render("running " + truncateName(current, max(rm.width-10, 20)))

	return lipgloss.JoinVertical(lipgloss.Left, title, summary, progressView, currentBox)
}

func (rm runModel) viewResults() string {
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	heading := "faultline results"
	line := fmt.Sprintf(
		"Total: %s  •  Passed: %s  •  Failed: %s  •  Errors: %s  •  Assertions: %s",
		accentStyle.Render(fmt.Sprintf("%d", rm.summary.Total)),
		accentStyle.Render(fmt.Sprintf("%d", rm.summary.Passes)),
		accentStyle.Render(fmt.Sprintf("%d", rm.summary.Fails)),
		accentStyle.Render(fmt.Sprintf("%d", rm.summary.Errors)),
		accentStyle.Render(fmt.Sprintf("%d", rm.summary.Assertions)),
	)

	if rm.mode == ModeList {
		heading = "faultline plan"
		line = fmt.Sprintf("Tests: %s", accentStyle.Render(fmt.Sprintf("%d", len(rm.results))))
	}

	if rm.summary.Aborted {
		line += "  •  " + lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render("aborted")
	}

	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(rm.width).
		Render("↑/k up • ↓/j down • / filter • enter details • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(heading),
		summaryStyle.Render(line),
		rm.renderResultsBox(),
		footer,
	)
}

func (rm runModel) renderResultsBox() string {
	details := rm.renderDetails()

	listHeight := rm.height - 9 - lipgloss.Height(details)
	if listHeight < 5 {
		listHeight = 5
	}

	rm.resultsList.SetHeight(listHeight)
	rm.resultsList.SetWidth(max(rm.width-4, 20))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Padding(0, 1).
		Margin(0, 1).
		Render(rm.resultsList.View())

	if details == "" {
		return box
	}

	return lipgloss.JoinVertical(lipgloss.Left, box, details)
}

func (rm runModel) renderDetails() string {
	if !rm.showDetails {
		return ""
	}

	result, ok := rm.resultsList.SelectedItem().(testResult)
	if !ok || len(result.details) == 0 {
		return ""
	}

	width := max(rm.width-8, 20)
	lines := make([]string, 0, len(result.details))

	for _, detail := range result.details {
		lines = append(lines, truncateName(detail, width))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("1")).
		Padding(0, 1).
		Margin(0, 1).
		Render(strings.Join(lines, "\n"))
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 0, 0, 2)

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 0, 1, 2)
)

func (rm runModel) handleCompletedTest(msg completedTestMsg) runModel {
	rm.completed++
	rm.rendered = true

	rm.results = append(rm.results, testResult{
		index:   rm.completed,
		suite:   msg.report.Suite,
		name:    msg.report.Test,
		status:  msg.report.Result.Outcome.Status.String(),
		details: describeReport(msg.report),
	})
	rm.resultsList.SetItems(resultItems(rm.results))

	if rm.info.Tests > 0 {
		rm.percent = min(float64(rm.completed)/float64(rm.info.Tests), 1)
	}

	return rm
}

func (rm runModel) handlePlan(msg planMsg) runModel {
	rm.results = rm.results[:0]

	for _, entry := range msg.entries {
		if entry.Kind == "suite" {
			continue
		}

		status := "filtered"
		if entry.Selected {
			status = "selected"
		}

		rm.results = append(rm.results, testResult{
			index:  len(rm.results) + 1,
			suite:  entry.Suite,
			name:   entry.Name,
			status: status,
		})
	}

	rm.resultsList.SetItems(resultItems(rm.results))
	rm.rendered = true
	rm.finished = true

	return rm
}

func resultItems(results []testResult) []list.Item {
	items := make([]list.Item, 0, len(results))
	for _, r := range results {
		items = append(items, r)
	}

	return items
}

func (rm runModel) handleKeyMsg(msg tea.KeyMsg) (runModel, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return rm, tea.Quit
	}

	if !rm.finished {
		return rm, nil
	}

	if msg.String() == "enter" || msg.String() == " " {
		rm.showDetails = !rm.showDetails

		return rm, nil
	}

	var cmd tea.Cmd

	rm.resultsList, cmd = rm.resultsList.Update(msg)

	// Detect selection change to reset animation
	if rm.resultsList.Index() != rm.lastSelected {
		rm.lastSelected = rm.resultsList.Index()
		rm.animOffset = 0
		rm.delegate.offset = 0
		rm.resultsList.SetDelegate(rm.delegate)
		rm.showDetails = false
	}

	return rm, cmd
}

func (rm runModel) handleWindowSize(msg tea.WindowSizeMsg) runModel {
	rm.width = msg.Width
	rm.height = msg.Height

	rm.progressBar.Width = rm.width - 8
	if rm.progressBar.Width < 20 {
		rm.progressBar.Width = 20
	}

	return rm
}

func (rm runModel) handleTickMsg(_ tickMsg) (runModel, tea.Cmd) {
	if rm.finished && rm.resultsList.FilterState() != list.Filtering {
		rm.animOffset++
		rm.delegate.offset = rm.animOffset
		rm.resultsList.SetDelegate(rm.delegate)
	}

	return rm, tea.Tick(time.Millisecond*150, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// animateScrollName scrolls text that does not fit width, after a short
// pause showing the truncated form.
func animateScrollName(text string, width int, offset int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const (
		gap   = "   "
		pause = 5
	)

	if offset < pause {
		return truncateName(text, width)
	}

	runes := []rune(text + gap)
	start := (offset - pause) % len(runes)

	window := make([]rune, 0, width)
	for i := 0; len(window) < width; i++ {
		window = append(window, runes[(start+i)%len(runes)])
	}

	return string(window)
}

// truncateName shortens text to width display cells, ending with an
// ellipsis when anything was cut.
func truncateName(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	ellipsis := "…"
	if width <= 1 {
		return ellipsis
	}

	maxWidth := width - lipgloss.Width(ellipsis)
	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

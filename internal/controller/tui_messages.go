package controller

import (
	"time"

	m "github.com/mouse-blink/faultline/internal/model"
)

// Message types.
type tickMsg time.Time

type runInfoMsg struct {
	info m.RunInfo
}

type suiteStartMsg struct {
	name  string
	depth int
}

type suiteEndMsg struct {
	name   string
	status m.Status
	depth  int
}

type startTestMsg struct {
	name  string
	depth int
}

type completedTestMsg struct {
	report m.Report
}

type summaryMsg struct {
	summary m.Summary
}

type planMsg struct {
	entries []m.PlanEntry
}

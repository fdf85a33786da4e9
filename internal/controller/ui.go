// Package controller provides output adapters for displaying harness runs.
package controller

import (
	m "github.com/mouse-blink/faultline/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeRun StartMode = iota
	ModeList
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithRunMode sets the UI to test execution mode.
func WithRunMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRun
	}
}

// WithListMode sets the UI to plan listing mode.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

func newStartConfig(options ...StartOption) StartConfig {
	cfg := StartConfig{mode: ModeRun}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI defines the interface for displaying a harness run.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(options ...StartOption) error
	Close()
	Wait() // Wait for UI to finish (user closes it)
	DisplayPlan(entries []m.PlanEntry) error
	DisplayRunInfo(info m.RunInfo)
	DisplaySuiteStart(name string, depth int)
	DisplaySuiteEnd(name string, status m.Status, depth int)
	DisplayStartingTest(name string, depth int)
	DisplayCompletedTest(report m.Report)
	DisplaySummary(summary m.Summary)
}

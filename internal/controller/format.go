package controller

import (
	"fmt"
	"strings"

	m "github.com/mouse-blink/faultline/internal/model"
)

// describeReport renders the failure details of a completed test, one line
// per entry. Passing and skipped tests have no details.
func describeReport(report m.Report) []string {
	out := report.Result.Outcome
	if !out.IsFailure() {
		return nil
	}

	var lines []string

	switch {
	case out.Reason == m.ReasonLeaked:
		lines = append(lines, fmt.Sprintf("%d memory leak(s) detected:", len(out.Leaks)))
		for _, leak := range out.Leaks {
			lines = append(lines, describeLeak(leak)...)
		}

	case out.Reason.IsAllocatorMisuse():
		lines = append(lines, fmt.Sprintf("%s: block #%d", out.Reason, out.Block))
		lines = append(lines, "...at "+out.Site.String())

	case out.Reason == m.ReasonStructuralMismatch:
		lines = append(lines, fmt.Sprintf("%s: %s", out.Reason, out.Message))
		lines = append(lines, "...at "+out.Site.String())
		if out.Expression != "" {
			lines = append(lines, strings.Split(strings.TrimRight(out.Expression, "\n"), "\n")...)
		}

	default:
		msg := out.Message
		if msg == "" {
			msg = out.Expression
		}

		lines = append(lines, fmt.Sprintf("%s: %s", out.Reason, msg))
		if !out.Site.IsZero() {
			lines = append(lines, "...at "+out.Site.String())
		}
	}

	return append(lines, describeSweep(report.Result)...)
}

func describeLeak(leak m.AllocationRecord) []string {
	lines := []string{fmt.Sprintf("leak of %d byte(s) in block #%d", leak.Size, leak.ID)}

	if leak.Flags&m.FlagReallocResult != 0 {
		lines = append(lines, fmt.Sprintf("...reallocated with Reallocate() from block #%d", leak.ReallocPrev))
	} else {
		lines = append(lines, "...allocated with Acquire()")
	}

	return append(lines, "...at "+leak.Site.String())
}

func describeSweep(result m.SweepResult) []string {
	switch result.Kind {
	case m.SweepFault:
		if result.FailingIteration == nil {
			return []string{"...in the unperturbed run"}
		}

		return []string{fmt.Sprintf("...with allocation %d failing", *result.FailingIteration)}
	case m.SweepFuzz:
		if result.FailingIteration == nil || result.FailingParameter == nil {
			return nil
		}

		return []string{fmt.Sprintf("...on iteration %d with seed 0x%X", *result.FailingIteration, *result.FailingParameter)}
	default:
		return nil
	}
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}

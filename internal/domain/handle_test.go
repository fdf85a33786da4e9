package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/faultline/internal/model"
)

func runBody(fx sweepFixture, body func(t *T)) (m.Outcome, *T) {
	var handle *T

	out := fx.sweeper.RunOnce(func() m.Outcome {
		handle = newT("body", fx.tracker, fx.escape, fx.fuzzer)
		body(handle)

		return handle.outcome()
	})

	return out, handle
}

func TestT_Acquire_CapturesCallerSite(t *testing.T) {
	fx := newSweepFixture(ModeLeakCheck)

	out, _ := runBody(fx, func(h *T) {
		h.Acquire(8)
	})

	require.Equal(t, m.ReasonLeaked, out.Reason)
	require.Len(t, out.Leaks, 1)
	require.Equal(t, 8, out.Leaks[0].Size)
	require.Equal(t, "handle_test.go", out.Leaks[0].Site.File)
	require.Positive(t, out.Leaks[0].Site.Line)
}

func TestT_DoubleFree_SkipsRestOfBody(t *testing.T) {
	fx := newSweepFixture(ModeLeakCheck)
	finished := false

	out, _ := runBody(fx, func(h *T) {
		b := h.Allocator().Acquire(8)
		h.Release(b)
		h.Release(b)
		finished = true
	})

	require.False(t, finished)
	require.Equal(t, m.Errored, out.Status)
	require.Equal(t, m.ReasonDoubleFree, out.Reason)
	require.Equal(t, "handle_test.go", out.Site.File)
	require.Equal(t, uint64(1), out.Block)
}

func TestT_Assert_RecordsFirstFailureAndContinues(t *testing.T) {
	fx := newSweepFixture(ModeLeakCheck)
	finished := false

	out, h := runBody(fx, func(h *T) {
		require.True(t, h.Assert(true, "fine"))
		require.False(t, h.Assert(false, "first"))
		require.False(t, h.Assert(false, "second"))
		require.True(t, h.Failed())
		finished = true
	})

	require.True(t, finished)
	require.Equal(t, m.Failed, out.Status)
	require.Equal(t, m.ReasonAssertionFailure, out.Reason)
	require.Equal(t, "first", out.Message)
	require.Equal(t, "handle_test.go", out.Site.File)
	require.Equal(t, 1, h.assertions)
}

func TestT_AssertEqual(t *testing.T) {
	fx := newSweepFixture(ModeLeakCheck)

	out, h := runBody(fx, func(h *T) {
		h.AssertEqual([]int{1, 2}, []int{1, 2}, "same")
		h.AssertEqual(map[string]int{"a": 1}, map[string]int{"a": 2}, "maps differ")
	})

	require.Equal(t, m.Failed, out.Status)
	require.Equal(t, m.ReasonStructuralMismatch, out.Reason)
	require.Equal(t, "maps differ", out.Message)
	require.Contains(t, out.Expression, `expected: map[string]int{"a":1}`)
	require.Contains(t, out.Expression, `actual  : map[string]int{"a":2}`)
	require.Equal(t, 1, h.assertions)
}

func TestT_ExpectFailure_CatchesAwaitedReason(t *testing.T) {
	fx := newSweepFixture(ModeLeakCheck)

	out, h := runBody(fx, func(h *T) {
		ok := h.ExpectFailure(m.ReasonUncaughtProgramFailure, func() {
			h.Check(false, "invariant broken")
		})
		require.True(t, ok)
	})

	require.True(t, out.IsPassed())
	require.Equal(t, 1, h.assertions)
}

func TestT_ExpectFailure_MissingFailureFails(t *testing.T) {
	fx := newSweepFixture(ModeLeakCheck)

	out, _ := runBody(fx, func(h *T) {
		h.ExpectFailure(m.ReasonDoubleFree, func() {})
	})

	require.Equal(t, m.Failed, out.Status)
	require.Equal(t, m.ReasonAssertionFailure, out.Reason)
	require.Equal(t, "expected double free", out.Message)
}

func TestT_ExpectFailure_OtherReasonPropagates(t *testing.T) {
	fx := newSweepFixture(ModeLeakCheck)
	finished := false

	out, _ := runBody(fx, func(h *T) {
		h.ExpectFailure(m.ReasonUncaughtProgramFailure, func() {
			b := h.Acquire(1)
			h.Release(b)
			h.Release(b)
		})
		finished = true
	})

	require.False(t, finished)
	require.Equal(t, m.Errored, out.Status)
	require.Equal(t, m.ReasonDoubleFree, out.Reason)
}

func TestT_Check_UncaughtIsErrored(t *testing.T) {
	fx := newSweepFixture(ModeLeakCheck)

	out, _ := runBody(fx, func(h *T) {
		h.Check(true, "holds")
		h.Check(false, "broken")
	})

	require.Equal(t, m.Errored, out.Status)
	require.Equal(t, m.ReasonUncaughtProgramFailure, out.Reason)
	require.Equal(t, "broken", out.Message)
}

func TestT_Reallocate_ThroughHandle(t *testing.T) {
	fx := newSweepFixture(ModeLeakCheck)

	out, _ := runBody(fx, func(h *T) {
		b := h.Acquire(2)
		b = h.Reallocate(b, 4)
		h.Release(b)
		h.Fail("explicit")
	})

	require.Equal(t, m.ReasonAssertionFailure, out.Reason)
	require.Equal(t, "explicit", out.Message)
	require.False(t, fx.tracker.HasLeaks())
}

func TestT_Rand_UsesFuzzer(t *testing.T) {
	fx := newSweepFixture(ModeOff)
	ref := NewFuzzer()

	runBody(fx, func(h *T) {
		require.Equal(t, "body", h.Name())
		require.Equal(t, ref.NextRandom(10), h.Rand(10))
		require.Equal(t, ref.NextRandom(0), h.Rand(0))
	})
}

package domain

import (
	"log/slog"

	"fortio.org/safecast"

	"github.com/mouse-blink/faultline/internal/logging"
	m "github.com/mouse-blink/faultline/internal/model"
)

// Sweeper re-executes a test body under deterministic perturbations.
type Sweeper interface {
	// RunOnce resets the tracker and runs body once with the test context
	// armed, downgrading a leaking pass to a leak failure.
	RunOnce(body func() m.Outcome) m.Outcome
	// FaultSweep runs body unperturbed, then once per observed allocator
	// call with that call forced to fail.
	FaultSweep(body func() m.Outcome, policy FaultMode) m.SweepResult
	// FuzzSweep runs body once per pseudo-random seed.
	FuzzSweep(body func() m.Outcome, iterations int) m.SweepResult
}

type sweeper struct {
	tracker Tracker
	escape  Escape
	fuzzer  *Fuzzer
}

// NewSweeper constructs a Sweeper over the executor's shared state.
func NewSweeper(tracker Tracker, escape Escape, fuzzer *Fuzzer) Sweeper {
	return &sweeper{
		tracker: tracker,
		escape:  escape,
		fuzzer:  fuzzer,
	}
}

func (s *sweeper) RunOnce(body func() m.Outcome) m.Outcome {
	s.tracker.Reset()

	out := s.escape.RunTest(body)
	if out.IsPassed() && s.tracker.Mode() == ModeLeakCheck && s.tracker.HasLeaks() {
		return m.LeakedOutcome(s.tracker.Leaks())
	}

	return out
}

func (s *sweeper) FaultSweep(body func() m.Outcome, policy FaultMode) m.SweepResult {
	if policy == FaultOff {
		policy = FaultOneShot
	}

	defer s.tracker.SetFaultMode(FaultOff, 0)

	s.tracker.SetFaultMode(FaultOff, 0)

	out := s.RunOnce(body)
	if !out.IsPassed() {
		return m.SweepResult{Outcome: out, Kind: m.SweepFault}
	}

	calls := s.tracker.CallCount()
	logging.Logger.Debug("fault sweep", slog.Uint64("ordinals", calls), slog.String("policy", policy.String()))

	for i := range calls {
		s.tracker.Reset()
		s.tracker.SetFaultMode(policy, i)

		out = s.RunOnce(body)
		if !out.IsPassed() || s.tracker.HasLeaks() {
			if out.IsPassed() {
				out = m.LeakedOutcome(s.tracker.Leaks())
			}

			return m.SweepResult{
				Outcome:          out,
				Kind:             m.SweepFault,
				FailingIteration: iterationOf(i),
				Iterations:       int(i) + 1,
			}
		}
	}

	return m.SweepResult{Outcome: m.PassedOutcome(), Kind: m.SweepFault, Iterations: int(calls)}
}

func (s *sweeper) FuzzSweep(body func() m.Outcome, iterations int) m.SweepResult {
	if iterations <= 0 {
		iterations = DefaultFuzzIterations
	}

	s.fuzzer.Reset(FuzzStartSeed)

	out := m.PassedOutcome()

	for i := range iterations {
		start := s.fuzzer.Seed()

		out = s.RunOnce(body)
		if !out.IsPassed() || s.tracker.HasLeaks() {
			if out.IsPassed() {
				out = m.LeakedOutcome(s.tracker.Leaks())
			}

			seed := uint64(start)

			return m.SweepResult{
				Outcome:          out,
				Kind:             m.SweepFuzz,
				FailingIteration: iterationOf(uint64(i)),
				FailingParameter: &seed,
				Iterations:       i + 1,
			}
		}
	}

	return m.SweepResult{Outcome: out, Kind: m.SweepFuzz, Iterations: iterations}
}

func iterationOf(i uint64) *uint32 {
	n, err := safecast.Conv[uint32](i)
	if err != nil {
		n = ^uint32(0)
	}

	return &n
}

package domain

import (
	"fmt"

	"github.com/cockroachdb/errors"

	m "github.com/mouse-blink/faultline/internal/model"
)

var (
	// ErrAssertArmed is returned when the assert context is armed twice.
	ErrAssertArmed = errors.New("assert context is already armed")
	// ErrNotArmed is returned when disarming with a token that is not armed.
	ErrNotArmed = errors.New("assert context is not armed with this token")
)

// Token identifies one arming of the assert context.
type Token uint64

// CatchKind is the result of evaluating a statement under Catch.
type CatchKind int

// Available CatchKind values.
const (
	NotCaught CatchKind = iota
	Caught
	OtherFailure
)

func (k CatchKind) String() string {
	switch k {
	case NotCaught:
		return "not caught"
	case Caught:
		return "caught"
	case OtherFailure:
		return "other failure"
	default:
		return "unknown"
	}
}

// CatchResult is returned by Escape.Catch.
type CatchResult struct {
	Kind    CatchKind
	Reason  m.FailureReason
	Payload m.Outcome

	signal *escapeSignal
}

type escapeTarget int

const (
	targetTest escapeTarget = iota
	targetAssert
)

// escapeSignal is the panic value used to unwind to an armed context.
type escapeSignal struct {
	owner   *escape
	target  escapeTarget
	reason  m.FailureReason
	payload m.Outcome
}

// Escape routes abrupt failures either to the armed assert context, when it
// awaits that reason, or to the test context.
type Escape interface {
	// RunTest arms the test context for the duration of body. Escapes that
	// reach it, and stray panics, become Errored outcomes.
	RunTest(body func() m.Outcome) m.Outcome
	ArmAssert(reason m.FailureReason) (Token, error)
	Disarm(token Token) error
	// Trigger never returns.
	Trigger(reason m.FailureReason, payload m.Outcome)
	// Catch evaluates fn with the assert context awaiting reason.
	Catch(reason m.FailureReason, fn func()) CatchResult
	// Escalate forwards an OtherFailure result to the test context. It is a
	// no-op for other kinds.
	Escalate(result CatchResult)
	TestArmed() bool
	Awaiting() (m.FailureReason, bool)
}

type escape struct {
	testArmed bool

	assertArmed bool
	awaited     m.FailureReason
	token       Token
	nextToken   Token
}

// NewEscape constructs an Escape with both contexts idle.
func NewEscape() Escape {
	return &escape{}
}

func (e *escape) RunTest(body func() m.Outcome) (out m.Outcome) {
	if e.testArmed {
		panic(errors.AssertionFailedf("test context armed twice: nested test execution is not supported"))
	}

	e.testArmed = true

	defer func() {
		r := recover()

		e.testArmed = false
		e.assertArmed = false

		if r == nil {
			return
		}

		out = e.outcomeFromPanic(r)
	}()

	return body()
}

func (e *escape) outcomeFromPanic(r any) m.Outcome {
	if sig, ok := r.(*escapeSignal); ok && sig.owner == e {
		return m.ErroredOutcome(sig.reason, sig.payload)
	}

	return m.ErroredOutcome(m.ReasonUncaughtProgramFailure, m.Outcome{
		Message: fmt.Sprintf("panic: %v", r),
	})
}

func (e *escape) ArmAssert(reason m.FailureReason) (Token, error) {
	if e.assertArmed {
		return 0, errors.Wrapf(ErrAssertArmed, "awaiting %q, asked to await %q", e.awaited, reason)
	}

	e.nextToken++
	e.token = e.nextToken
	e.awaited = reason
	e.assertArmed = true

	return e.token, nil
}

func (e *escape) Disarm(token Token) error {
	if !e.assertArmed || token != e.token {
		return ErrNotArmed
	}

	e.assertArmed = false
	e.awaited = m.ReasonNone

	return nil
}

func (e *escape) Trigger(reason m.FailureReason, payload m.Outcome) {
	if e.assertArmed && e.awaited == reason {
		panic(&escapeSignal{owner: e, target: targetAssert, reason: reason, payload: payload})
	}

	if !e.testArmed {
		panic(errors.AssertionFailedf("%s at %s with no running test", reason, payload.Site))
	}

	panic(&escapeSignal{owner: e, target: targetTest, reason: reason, payload: payload})
}

func (e *escape) Catch(reason m.FailureReason, fn func()) (result CatchResult) {
	token, err := e.ArmAssert(reason)
	if err != nil {
		panic(err)
	}

	defer func() {
		_ = e.Disarm(token)

		r := recover()
		if r == nil {
			return
		}

		sig, ok := r.(*escapeSignal)
		if !ok || sig.owner != e {
			panic(r)
		}

		kind := OtherFailure
		if sig.target == targetAssert {
			kind = Caught
		}

		result = CatchResult{Kind: kind, Reason: sig.reason, Payload: sig.payload, signal: sig}
	}()

	fn()

	return CatchResult{Kind: NotCaught}
}

func (e *escape) Escalate(result CatchResult) {
	if result.Kind != OtherFailure || result.signal == nil {
		return
	}

	panic(result.signal)
}

func (e *escape) TestArmed() bool {
	return e.testArmed
}

func (e *escape) Awaiting() (m.FailureReason, bool) {
	return e.awaited, e.assertArmed
}

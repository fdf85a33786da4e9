package domain

import (
	"iter"

	"github.com/mouse-blink/faultline/internal/adapter"
	m "github.com/mouse-blink/faultline/internal/model"
)

// Mode selects how the tracker treats intercepted calls.
type Mode int

// Available Mode values.
const (
	// ModeOff forwards every call to the underlying allocator untouched.
	ModeOff Mode = iota
	// ModeLeakCheck records and validates every call.
	ModeLeakCheck
	// ModePassthrough forwards calls but still counts them, so fault
	// injection keeps working without recording blocks.
	ModePassthrough
)

func (md Mode) String() string {
	switch md {
	case ModeOff:
		return "off"
	case ModeLeakCheck:
		return "leak-check"
	case ModePassthrough:
		return "passthrough"
	default:
		return "unknown"
	}
}

// FaultMode selects the failure injection policy.
type FaultMode int

// Available FaultMode values.
const (
	FaultOff FaultMode = iota
	// FaultOneShot fails exactly the call at the fault ordinal.
	FaultOneShot
	// FaultPersistent fails the call at the fault ordinal and every call
	// after it.
	FaultPersistent
)

func (f FaultMode) String() string {
	switch f {
	case FaultOff:
		return "off"
	case FaultOneShot:
		return "one-shot"
	case FaultPersistent:
		return "persistent"
	default:
		return "unknown"
	}
}

// Block is a handle to memory handed out by a Tracker. A nil *Block is what
// a failed acquisition returns.
type Block struct {
	id   uint64
	data []byte
}

// Bytes returns the usable memory of the block. It is nil once the block was
// released or reallocated.
func (b *Block) Bytes() []byte {
	if b == nil {
		return nil
	}

	return b.data
}

// Len returns the usable size of the block.
func (b *Block) Len() int {
	return len(b.Bytes())
}

// ID returns the handle identity, zero for untracked blocks.
func (b *Block) ID() uint64 {
	if b == nil {
		return 0
	}

	return b.id
}

// Tracker intercepts allocations made by code under test.
type Tracker interface {
	Acquire(size int, site m.Site) *Block
	Release(block *Block, site m.Site)
	Reallocate(block *Block, size int, site m.Site) *Block

	Reset()
	HasLeaks() bool
	Enumerate() iter.Seq[m.AllocationRecord]
	Leaks() []m.AllocationRecord

	SetMode(mode Mode)
	Mode() Mode
	SetFaultMode(mode FaultMode, ordinal uint64)
	FaultMode() (FaultMode, uint64)

	CallCount() uint64
	LiveCount() int
}

type trackedBlock struct {
	record *m.AllocationRecord
	block  *Block
}

type tracker struct {
	alloc  adapter.Allocator
	escape Escape

	chain []*trackedBlock
	tags  map[*Block]*trackedBlock
	// blocks handed out without a record in ModeOff and ModePassthrough
	raw map[*Block]struct{}

	nextID    uint64
	liveCount int
	callCount uint64

	mode         Mode
	faultMode    FaultMode
	faultOrdinal uint64
}

// NewTracker constructs a Tracker in ModeOff on top of alloc. Allocator
// misuse and real exhaustion are raised through escape.
func NewTracker(alloc adapter.Allocator, escape Escape) Tracker {
	return &tracker{
		alloc:  alloc,
		escape: escape,
		tags:   make(map[*Block]*trackedBlock),
		raw:    make(map[*Block]struct{}),
	}
}

func (t *tracker) Acquire(size int, site m.Site) *Block {
	if t.mode == ModeOff {
		return t.untracked(t.allocRaw(size, site))
	}

	if t.injectFault() {
		return nil
	}

	if t.mode == ModePassthrough {
		t.callCount++

		return t.untracked(t.allocRaw(size, site))
	}

	tb := t.track(t.allocRaw(size, site), size, m.FlagInitial, site)
	t.callCount++

	return tb.block
}

func (t *tracker) Release(block *Block, site m.Site) {
	if t.mode != ModeLeakCheck {
		if _, tracked := t.tags[block]; block != nil && !tracked {
			delete(t.raw, block)
			t.alloc.Free(block.data)
			block.data = nil
		}

		return
	}

	tb := t.validate(block, site, releaseChecks)

	tb.record.Flags |= m.FlagFreed
	t.liveCount--
	t.alloc.Free(block.data)
	block.data = nil
}

func (t *tracker) Reallocate(block *Block, size int, site m.Site) *Block {
	if t.mode == ModeOff {
		return t.reallocRaw(block, size, site)
	}

	if t.injectFault() {
		return nil
	}

	if t.mode == ModePassthrough {
		t.callCount++

		return t.reallocRaw(block, size, site)
	}

	old := t.validate(block, site, reallocChecks)

	data := t.allocRaw(size, site)
	copy(data, block.data)

	tb := t.track(data, size, m.FlagReallocResult, site)
	tb.record.ReallocPrev = old.record.ID
	old.record.ReallocNext = tb.record.ID
	old.record.Flags |= m.FlagSuperseded

	// the superseded record stops being live, the new one took its place
	t.liveCount--
	t.alloc.Free(block.data)
	block.data = nil
	t.callCount++

	return tb.block
}

func (t *tracker) Reset() {
	for _, tb := range t.chain {
		if tb.record.Freeable() {
			t.alloc.Free(tb.block.data)
			tb.block.data = nil
		}
	}

	for block := range t.raw {
		t.alloc.Free(block.data)
		block.data = nil
	}

	t.chain = nil
	t.tags = make(map[*Block]*trackedBlock)
	t.raw = make(map[*Block]struct{})
	t.nextID = 0
	t.liveCount = 0
	t.callCount = 0
}

func (t *tracker) HasLeaks() bool {
	for rec := range t.Enumerate() {
		if rec.Freeable() {
			return true
		}
	}

	return false
}

func (t *tracker) Enumerate() iter.Seq[m.AllocationRecord] {
	return func(yield func(m.AllocationRecord) bool) {
		for _, tb := range t.chain {
			if !yield(*tb.record) {
				return
			}
		}
	}
}

func (t *tracker) Leaks() []m.AllocationRecord {
	var leaks []m.AllocationRecord

	for rec := range t.Enumerate() {
		if rec.Freeable() {
			leaks = append(leaks, rec)
		}
	}

	return leaks
}

func (t *tracker) SetMode(mode Mode) {
	t.mode = mode
}

func (t *tracker) Mode() Mode {
	return t.mode
}

func (t *tracker) SetFaultMode(mode FaultMode, ordinal uint64) {
	t.faultMode = mode
	t.faultOrdinal = ordinal
}

func (t *tracker) FaultMode() (FaultMode, uint64) {
	return t.faultMode, t.faultOrdinal
}

func (t *tracker) CallCount() uint64 {
	return t.callCount
}

func (t *tracker) LiveCount() int {
	return t.liveCount
}

// injectFault reports whether the current call must fail. One-shot faults
// advance the call counter past the failing call; persistent faults leave it
// frozen so every later call fails as well.
func (t *tracker) injectFault() bool {
	if t.faultMode == FaultOff || t.callCount != t.faultOrdinal {
		return false
	}

	if t.faultMode == FaultOneShot {
		t.callCount++
	}

	return true
}

func (t *tracker) allocRaw(size int, site m.Site) []byte {
	data, err := t.alloc.Alloc(size)
	if err != nil {
		t.escape.Trigger(m.ReasonAllocationExhausted, m.Outcome{Message: err.Error(), Site: site})
	}

	return data
}

func (t *tracker) reallocRaw(block *Block, size int, site m.Site) *Block {
	data := t.allocRaw(size, site)

	if block != nil {
		copy(data, block.data)

		if _, tracked := t.tags[block]; !tracked {
			delete(t.raw, block)
			t.alloc.Free(block.data)
			block.data = nil
		}
	}

	return t.untracked(data)
}

func (t *tracker) untracked(data []byte) *Block {
	block := &Block{data: data}
	t.raw[block] = struct{}{}

	return block
}

func (t *tracker) track(data []byte, size int, flags m.BlockFlags, site m.Site) *trackedBlock {
	t.nextID++

	tb := &trackedBlock{
		record: &m.AllocationRecord{
			ID:      t.nextID,
			Size:    size,
			Ordinal: t.callCount,
			Flags:   flags,
			Site:    site,
		},
		block: &Block{id: t.nextID, data: data},
	}

	t.chain = append(t.chain, tb)
	t.tags[tb.block] = tb
	t.liveCount++

	return tb
}

// validityChecks names the failure reason for each kind of misuse.
type validityChecks struct {
	nilBlock   m.FailureReason
	foreign    m.FailureReason
	freed      m.FailureReason
	superseded m.FailureReason
}

var (
	releaseChecks = validityChecks{
		nilBlock:   m.ReasonReleaseOfNil,
		foreign:    m.ReasonForeignPointer,
		freed:      m.ReasonDoubleFree,
		superseded: m.ReasonUseOfSupersededBlock,
	}
	reallocChecks = validityChecks{
		nilBlock:   m.ReasonReallocateOfNil,
		foreign:    m.ReasonReallocateOfForeign,
		freed:      m.ReasonReallocateOfFreed,
		superseded: m.ReasonReallocateOfSuperseded,
	}
)

// validate returns the bookkeeping for block or escapes with the reason
// matching the first failed check.
func (t *tracker) validate(block *Block, site m.Site, checks validityChecks) *trackedBlock {
	if block == nil {
		t.escape.Trigger(checks.nilBlock, m.Outcome{Site: site})
	}

	tb, ok := t.tags[block]
	if !ok {
		t.escape.Trigger(checks.foreign, m.Outcome{Site: site, Block: block.id})
	}

	switch {
	case tb.record.Flags&m.FlagFreed != 0:
		t.escape.Trigger(checks.freed, m.Outcome{Site: site, Block: tb.record.ID})
	case tb.record.Flags&m.FlagSuperseded != 0:
		t.escape.Trigger(checks.superseded, m.Outcome{Site: site, Block: tb.record.ID})
	}

	return tb
}

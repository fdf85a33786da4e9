package model

import "strings"

// BlockFlags describes the lifecycle of one tracked block.
type BlockFlags uint8

const (
	// FlagInitial marks a block created by Acquire.
	FlagInitial BlockFlags = 1 << iota
	// FlagFreed marks a block that was released.
	FlagFreed
	// FlagSuperseded marks a block that was replaced by a reallocation.
	FlagSuperseded
	// FlagReallocResult marks a block created by Reallocate.
	FlagReallocResult
)

// String renders the flags the same way the allocation dump does: one
// column per flag, '-' when unset.
func (f BlockFlags) String() string {
	var b strings.Builder

	for _, col := range []struct {
		flag BlockFlags
		char byte
	}{
		{FlagInitial, 'I'},
		{FlagFreed, 'F'},
		{FlagSuperseded, 'O'},
		{FlagReallocResult, 'N'},
	} {
		if f&col.flag != 0 {
			b.WriteByte(col.char)
		} else {
			b.WriteByte('-')
		}
	}

	return b.String()
}

// AllocationRecord is the tracker's bookkeeping for one block.
type AllocationRecord struct {
	// ID is the identity of the block handle; never zero for a tracked block.
	ID      uint64     `yaml:"id"`
	Size    int        `yaml:"size"`
	Ordinal uint64     `yaml:"ordinal"`
	Flags   BlockFlags `yaml:"flags"`
	Site    Site       `yaml:"site"`
	// ReallocPrev and ReallocNext link the blocks of one logical allocation
	// across reallocations by ID. Zero means no link.
	ReallocPrev uint64 `yaml:"realloc_prev,omitempty"`
	ReallocNext uint64 `yaml:"realloc_next,omitempty"`
}

// Freeable reports whether the block can still be released, which makes it a
// leak if it survives to the end of the test.
func (r AllocationRecord) Freeable() bool {
	return r.Flags&(FlagFreed|FlagSuperseded) == 0
}

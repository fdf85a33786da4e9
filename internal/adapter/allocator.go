package adapter

import (
	"errors"
	"fmt"
)

// ErrExhausted is returned when the allocator cannot satisfy a request.
var ErrExhausted = errors.New("allocator exhausted")

// Allocator is the underlying memory source the allocation tracker sits on.
// Free must only be called with buffers returned by Alloc.
type Allocator interface {
	Alloc(size int) ([]byte, error)
	Free(buf []byte)
	InUse() int
}

type heapAllocator struct {
	budget int
	inUse  int
}

// NewHeapAllocator returns an Allocator backed by the Go heap. A positive
// budget caps the number of bytes that may be live at once; zero means no cap.
func NewHeapAllocator(budget int) Allocator {
	return &heapAllocator{budget: budget}
}

func (h *heapAllocator) Alloc(size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("negative size %d: %w", size, ErrExhausted)
	}

	if h.budget > 0 && h.inUse+size > h.budget {
		return nil, fmt.Errorf("%d bytes requested with %d of %d in use: %w", size, h.inUse, h.budget, ErrExhausted)
	}

	h.inUse += size

	return make([]byte, size), nil
}

func (h *heapAllocator) Free(buf []byte) {
	h.inUse -= len(buf)
	if h.inUse < 0 {
		h.inUse = 0
	}
}

func (h *heapAllocator) InUse() int {
	return h.inUse
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package memory

// LinearAllocator is a bump allocator over a single Pool.
//
// Allocations are carved out of the pool in order and are never reused
// until Reset. When the pool is full Allocate returns nil; the arena only
// grows through an explicit Resize.
type LinearAllocator struct {
	pool   *Pool
	offset int
	peak   int
}

// NewLinearAllocator creates a bump allocator over a pool of size bytes.
func NewLinearAllocator(size int) *LinearAllocator {
	return &LinearAllocator{pool: NewPool(size)}
}

// Allocate returns size zeroed bytes aligned to DefaultAlignment, or nil if
// size is not positive or the arena is full.
func (l *LinearAllocator) Allocate(size int) []byte {
	return l.AllocateAligned(size, DefaultAlignment)
}

// AllocateAligned is like Allocate with an explicit power-of-two alignment.
func (l *LinearAllocator) AllocateAligned(size, align int) []byte {
	if size <= 0 {
		return nil
	}
	if align < 1 {
		align = 1
	}
	start := alignUp(l.offset, align)
	end := start + size
	if end > l.pool.Len() {
		return nil
	}
	l.offset = end
	if end > l.peak {
		l.peak = end
	}
	block := l.pool.Bytes()[start:end:end]
	clear(block)
	return block
}

// Release is a no-op; space is reclaimed only by Reset.
func (l *LinearAllocator) Release([]byte) {}

// Reset rewinds the arena to its base without freeing it.
func (l *LinearAllocator) Reset() { l.offset = 0 }

// Resize ensures the arena holds at least size bytes and resets it. It
// must not be called while blocks from the previous cycle are still in use.
func (l *LinearAllocator) Resize(size int) {
	l.pool.Grow(size)
	l.offset = 0
}

// Used returns the bytes handed out since the last Reset.
func (l *LinearAllocator) Used() int { return l.offset }

// Cap returns the arena size.
func (l *LinearAllocator) Cap() int { return l.pool.Len() }

// Peak returns the highest offset reached since creation.
func (l *LinearAllocator) Peak() int { return l.peak }

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package memory provides the raw byte arenas that back pipeline resources
// and per-draw scratch data.
//
// Two allocators share the Allocator interface:
//
//   - HeapAllocator is the general allocator. It hands out zeroed blocks,
//     enforces an optional byte budget and recycles released blocks by size.
//   - LinearAllocator is a bump allocator over a single Pool. Allocation
//     moves an offset forward; Reset rewinds it in O(1). It never grows on
//     its own, so a full arena returns nil until it is resized between
//     draws.
//
// Both signal failure with a nil slice rather than an error; callers check
// before use.
package memory

// Byte size helpers.
const (
	KB = 1 << 10
	MB = 1 << 20
)

// DefaultAlignment is the alignment used by Allocate.
const DefaultAlignment = 8

// Allocator hands out raw byte blocks.
type Allocator interface {
	// Allocate returns a zeroed block of exactly size bytes, or nil if
	// size is not positive or the allocator is exhausted.
	Allocate(size int) []byte

	// Release returns a block obtained from Allocate.
	Release(block []byte)
}

// Pool is a contiguous raw byte arena.
type Pool struct {
	buf []byte
}

// NewPool creates a zeroed pool of size bytes.
func NewPool(size int) *Pool {
	if size < 0 {
		size = 0
	}
	return &Pool{buf: make([]byte, size)}
}

// Bytes returns the whole arena.
func (p *Pool) Bytes() []byte { return p.buf }

// Len returns the arena size in bytes.
func (p *Pool) Len() int { return len(p.buf) }

// Grow ensures the arena holds at least size bytes. Growing discards the
// previous contents. It reports whether a new arena was allocated.
func (p *Pool) Grow(size int) bool {
	if size <= len(p.buf) {
		return false
	}
	p.buf = make([]byte, size)
	return true
}

// alignUp rounds n up to a multiple of align, which must be a power of two.
func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

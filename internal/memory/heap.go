// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package memory

import "sync"

// HeapStats is a snapshot of HeapAllocator accounting.
type HeapStats struct {
	Allocations int // successful Allocate calls
	Releases    int // Release calls
	Failures    int // Allocate calls that returned nil
	Reused      int // allocations served from a recycled block
	InUse       int // bytes currently handed out
	Peak        int // high-water mark of InUse
}

// HeapAllocator is the general purpose allocator.
//
// Released blocks are kept in per-size buckets and handed out again,
// cleared, by later allocations of the same size. A budget of zero means
// unlimited.
//
// Thread safety: all methods are safe for concurrent use.
type HeapAllocator struct {
	mu      sync.Mutex
	budget  int
	buckets map[int][][]byte
	maxSize int // max blocks retained per bucket
	stats   HeapStats
}

// NewHeapAllocator creates an allocator that refuses to hand out more than
// budget bytes at once. maxPerBucket limits how many released blocks of
// each size are retained; 0 means unlimited.
func NewHeapAllocator(budget, maxPerBucket int) *HeapAllocator {
	return &HeapAllocator{
		budget:  budget,
		buckets: make(map[int][][]byte),
		maxSize: maxPerBucket,
	}
}

// Allocate returns a zeroed block of size bytes, or nil when size is not
// positive or the budget would be exceeded.
func (h *HeapAllocator) Allocate(size int) []byte {
	h.mu.Lock()
	defer h.mu.Unlock()

	if size <= 0 || (h.budget > 0 && h.stats.InUse+size > h.budget) {
		h.stats.Failures++
		return nil
	}

	var block []byte
	if bucket := h.buckets[size]; len(bucket) > 0 {
		block = bucket[len(bucket)-1]
		h.buckets[size] = bucket[:len(bucket)-1]
		clear(block)
		h.stats.Reused++
	} else {
		block = make([]byte, size)
	}

	h.stats.Allocations++
	h.stats.InUse += size
	if h.stats.InUse > h.stats.Peak {
		h.stats.Peak = h.stats.InUse
	}
	return block
}

// Release returns block to the allocator. Nil blocks are ignored.
func (h *HeapAllocator) Release(block []byte) {
	if block == nil {
		return
	}
	size := len(block)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.stats.Releases++
	h.stats.InUse -= size
	if h.stats.InUse < 0 {
		h.stats.InUse = 0
	}

	bucket := h.buckets[size]
	if h.maxSize > 0 && len(bucket) >= h.maxSize {
		return
	}
	h.buckets[size] = append(bucket, block[:size:size])
}

// Budget returns the byte budget, 0 meaning unlimited.
func (h *HeapAllocator) Budget() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.budget
}

// Stats returns a snapshot of the allocator accounting.
func (h *HeapAllocator) Stats() HeapStats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stats
}

// Trim drops every retained block.
func (h *HeapAllocator) Trim() {
	h.mu.Lock()
	defer h.mu.Unlock()
	clear(h.buckets)
}

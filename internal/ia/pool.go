// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ia

import (
	"github.com/gogpu/swrast/geom"
	"github.com/gogpu/swrast/internal/memory"
	"github.com/gogpu/swrast/shader"
)

// VertexPool is a view over a scratch arena holding vertex records of a
// uniform stride. It is valid until the arena is handed out again.
type VertexPool struct {
	data           []byte
	stride         int
	positionOffset int
	count          int
}

// NewVertexPool creates a pool over data.
func NewVertexPool(data []byte, layout shader.VertexLayout) *VertexPool {
	return &VertexPool{data: data, stride: layout.Stride, positionOffset: layout.PositionOffset}
}

// Stride returns the record size in bytes.
func (p *VertexPool) Stride() int { return p.stride }

// PositionOffset returns the byte offset of the clip-space position.
func (p *VertexPool) PositionOffset() int { return p.positionOffset }

// Layout returns the record layout.
func (p *VertexPool) Layout() shader.VertexLayout {
	return shader.VertexLayout{Stride: p.stride, PositionOffset: p.positionOffset}
}

// Len returns the number of records in use.
func (p *VertexPool) Len() int { return p.count }

// Cap returns the number of records that fit.
func (p *VertexPool) Cap() int {
	if p.stride <= 0 {
		return 0
	}
	return len(p.data) / p.stride
}

// Reset marks every record unused.
func (p *VertexPool) Reset() { p.count = 0 }

// Allocate appends a zeroed record, or returns nil when the pool is full.
func (p *VertexPool) Allocate() shader.Record {
	if p.count >= p.Cap() {
		return nil
	}
	p.count++
	r := p.Vertex(p.count - 1)
	clear(r)
	return r
}

// Extend marks n more records as used and returns false, leaving the
// pool unchanged, if they do not fit.
func (p *VertexPool) Extend(n int) bool {
	if n < 0 || p.count+n > p.Cap() {
		return false
	}
	p.count += n
	return true
}

// Vertex returns record i, or nil when i is outside the used range.
func (p *VertexPool) Vertex(i int) shader.Record {
	if i < 0 || i >= p.count {
		return nil
	}
	off := i * p.stride
	return shader.Record(p.data[off : off+p.stride : off+p.stride])
}

// Position returns the clip-space position of record i.
func (p *VertexPool) Position(i int) geom.Vec4 {
	v := p.Vertex(i)
	if v == nil {
		return geom.Vec4{}
	}
	return v.Vec4(p.positionOffset)
}

// SetPosition overwrites the clip-space position of record i.
func (p *VertexPool) SetPosition(i int, pos geom.Vec4) {
	if v := p.Vertex(i); v != nil {
		v.SetVec4(p.positionOffset, pos)
	}
}

// Assembler hands out vertex pools backed by a single reusable arena.
type Assembler struct {
	arena *memory.Pool
}

// NewAssembler creates an assembler with an initial arena of size bytes.
func NewAssembler(size int) *Assembler {
	return &Assembler{arena: memory.NewPool(size)}
}

// AvailablePool ensures the arena holds at least vertexLimit records of
// layout.Stride bytes and returns an empty pool over it. Any pool handed
// out before is invalidated.
func (a *Assembler) AvailablePool(vertexLimit int, layout shader.VertexLayout) *VertexPool {
	a.arena.Grow(vertexLimit * layout.Stride)
	return NewVertexPool(a.arena.Bytes(), layout)
}

// Size returns the arena size in bytes.
func (a *Assembler) Size() int { return a.arena.Len() }

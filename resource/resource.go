// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package resource implements the typed memory blocks that back buffers,
// textures and render targets.
//
// A *Resource pairs an immutable Descriptor with the byte block obtained
// from a memory allocator. The descriptor is always recoverable from the
// handle. Payloads start zeroed and are addressed per element as
//
//	x*formatSize + y*rowPitch + z*depthPitch
//
// Element access decodes and encodes through Decode and Encode, so every
// consumer agrees on the byte layout of each Format.
package resource

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/swrast/geom"
	"github.com/gogpu/swrast/internal/memory"
)

// Common errors for resource operations.
var (
	// ErrInvalidDescriptor is returned when a descriptor cannot be allocated.
	ErrInvalidDescriptor = errors.New("resource: invalid descriptor")

	// ErrAllocationFailed is returned when the allocator has no room.
	ErrAllocationFailed = errors.New("resource: allocation failed")

	// ErrReleased is returned when a released resource is used.
	ErrReleased = errors.New("resource: already released")

	// ErrUnsupportedFormat is returned when an element format cannot be
	// encoded.
	ErrUnsupportedFormat = errors.New("resource: unsupported format")

	// ErrOutOfBounds is returned when coordinates fall outside the resource.
	ErrOutOfBounds = errors.New("resource: coordinates out of bounds")

	// ErrDataTooSmall is returned when upload data is smaller than required.
	ErrDataTooSmall = errors.New("resource: data buffer too small")
)

// Resource is a typed block of memory with an attached descriptor.
//
// Thread safety: a Resource has exactly one owner and is not safe for
// concurrent mutation.
type Resource struct {
	desc  Descriptor
	data  []byte
	alloc memory.Allocator
}

var (
	_ gpucontext.Texture              = (*Resource)(nil)
	_ gpucontext.TextureUpdater       = (*Resource)(nil)
	_ gpucontext.TextureRegionUpdater = (*Resource)(nil)
)

// New allocates a zeroed resource for desc from alloc. On failure it
// returns a nil handle together with the reason.
func New(desc Descriptor, alloc memory.Allocator) (*Resource, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	size := desc.ByteSize()
	data := alloc.Allocate(size)
	if data == nil {
		return nil, fmt.Errorf("%w: %d bytes for %s %s", ErrAllocationFailed, size, desc.Type, desc.Format)
	}
	return &Resource{desc: desc.Normalized(), data: data, alloc: alloc}, nil
}

// Release returns the block to its allocator. Releasing twice reports
// ErrReleased.
func (r *Resource) Release() error {
	if r == nil || r.data == nil {
		return ErrReleased
	}
	r.alloc.Release(r.data)
	r.data = nil
	return nil
}

// Released reports whether Release has been called.
func (r *Resource) Released() bool { return r == nil || r.data == nil }

// Descriptor returns the descriptor the resource was created with, with
// defaulted dimensions filled in.
func (r *Resource) Descriptor() Descriptor { return r.desc }

// Format returns the element format.
func (r *Resource) Format() Format { return r.desc.Format }

// Bytes returns the payload. It is nil after Release.
func (r *Resource) Bytes() []byte { return r.data }

// Width returns the resource width in elements.
func (r *Resource) Width() int { return r.desc.Width }

// Height returns the resource height in elements.
func (r *Resource) Height() int { return r.desc.Height }

// Depth returns the depth or array size.
func (r *Resource) Depth() int { return r.desc.DepthOrArraySize }

// InBounds reports whether (x, y, z) addresses an element of mip 0.
func (r *Resource) InBounds(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 &&
		x < r.desc.Width && y < r.desc.Height && z < r.desc.DepthOrArraySize
}

// Offset returns the byte offset of element (x, y, z).
func (r *Resource) Offset(x, y, z int) int {
	return x*r.desc.Format.Size() + y*r.desc.RowPitch() + z*r.desc.DepthPitch()
}

// Element returns the bytes of element (x, y, z), or nil when the
// coordinates are out of bounds or the resource was released.
func (r *Resource) Element(x, y, z int) []byte {
	if r.data == nil || !r.InBounds(x, y, z) {
		return nil
	}
	off := r.Offset(x, y, z)
	return r.data[off : off+r.desc.Format.Size()]
}

// Load decodes element (x, y, z). Out of bounds reads return zero.
func (r *Resource) Load(x, y, z int) geom.Vec4 {
	return Decode(r.desc.Format, r.Element(x, y, z))
}

// Store encodes v into element (x, y, z).
func (r *Resource) Store(x, y, z int, v geom.Vec4) error {
	e := r.Element(x, y, z)
	if e == nil {
		if r.data == nil {
			return ErrReleased
		}
		return fmt.Errorf("%w: (%d, %d, %d)", ErrOutOfBounds, x, y, z)
	}
	if !Encode(r.desc.Format, e, v) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, r.desc.Format)
	}
	return nil
}

// Rect is an integer rectangle in elements.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Bounds returns the rectangle as geom bounds.
func (rc Rect) Bounds() geom.Bounds2i {
	return geom.Bounds2i{MinX: rc.X, MinY: rc.Y, MaxX: rc.X + rc.Width, MaxY: rc.Y + rc.Height}
}

// FillRect encodes v into every element of rc on slice 0. The rectangle is
// clipped to the resource.
func (r *Resource) FillRect(rc Rect, v geom.Vec4) error {
	if r.data == nil {
		return ErrReleased
	}
	fs := r.desc.Format.Size()
	var pattern [16]byte
	if !Encode(r.desc.Format, pattern[:fs], v) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, r.desc.Format)
	}
	b := rc.Bounds().Intersect(geom.Bounds2i{MaxX: r.desc.Width, MaxY: r.desc.Height})
	if b.Empty() {
		return nil
	}
	for y := b.MinY; y < b.MaxY; y++ {
		row := r.data[r.Offset(b.MinX, y, 0):r.Offset(b.MaxX, y, 0)]
		for i := 0; i < len(row); i += fs {
			copy(row[i:i+fs], pattern[:fs])
		}
	}
	return nil
}

// Fill encodes v into every element of slice 0.
func (r *Resource) Fill(v geom.Vec4) error {
	return r.FillRect(Rect{Width: r.desc.Width, Height: r.desc.Height}, v)
}

// UpdateData replaces the payload from the start with data.
func (r *Resource) UpdateData(data []byte) error {
	if r.data == nil {
		return ErrReleased
	}
	if len(data) > len(r.data) {
		return fmt.Errorf("%w: %d bytes into %d", ErrOutOfBounds, len(data), len(r.data))
	}
	copy(r.data, data)
	return nil
}

// UpdateRegion copies tightly packed rows of data into the rectangle
// (x, y, w, h) of slice 0.
func (r *Resource) UpdateRegion(x, y, w, h int, data []byte) error {
	if r.data == nil {
		return ErrReleased
	}
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > r.desc.Width || y+h > r.desc.Height {
		return fmt.Errorf("%w: region (%d, %d, %d, %d)", ErrOutOfBounds, x, y, w, h)
	}
	rowBytes := w * r.desc.Format.Size()
	if len(data) < rowBytes*h {
		return ErrDataTooSmall
	}
	for row := range h {
		off := r.Offset(x, y+row, 0)
		copy(r.data[off:off+rowBytes], data[row*rowBytes:(row+1)*rowBytes])
	}
	return nil
}

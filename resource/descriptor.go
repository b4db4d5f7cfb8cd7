// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Type is the dimensionality of a resource.
type Type uint8

const (
	TypeBuffer Type = iota
	TypeTexture1D
	TypeTexture2D
	TypeTexture3D
	TypeTexture1DArray
	TypeTexture2DArray
	TypeTextureCube
)

func (t Type) String() string {
	switch t {
	case TypeBuffer:
		return "buffer"
	case TypeTexture1D:
		return "texture1d"
	case TypeTexture2D:
		return "texture2d"
	case TypeTexture3D:
		return "texture3d"
	case TypeTexture1DArray:
		return "texture1darray"
	case TypeTexture2DArray:
		return "texture2darray"
	case TypeTextureCube:
		return "texturecube"
	default:
		return "unknown"
	}
}

// Dimension returns the WebGPU texture dimension of t. Buffers report
// TextureDimensionUndefined.
func (t Type) Dimension() gputypes.TextureDimension {
	switch t {
	case TypeTexture1D, TypeTexture1DArray:
		return gputypes.TextureDimension1D
	case TypeTexture2D, TypeTexture2DArray, TypeTextureCube:
		return gputypes.TextureDimension2D
	case TypeTexture3D:
		return gputypes.TextureDimension3D
	default:
		return gputypes.TextureDimensionUndefined
	}
}

// Usage is a set of pipeline bind points a resource may be used with.
type Usage uint32

const (
	UsageVertexBuffer Usage = 1 << iota
	UsageIndexBuffer
	UsageConstantBuffer
	UsageShaderResource
	UsageUnorderedAccess
	UsageRenderTarget
	UsageDepthStencil
)

// Contains reports whether u includes every bit of flag.
func (u Usage) Contains(flag Usage) bool { return u&flag == flag }

// BufferUsage returns the equivalent WebGPU buffer usage flags.
func (u Usage) BufferUsage() gputypes.BufferUsage {
	var out gputypes.BufferUsage
	if u.Contains(UsageVertexBuffer) {
		out |= gputypes.BufferUsageVertex
	}
	if u.Contains(UsageIndexBuffer) {
		out |= gputypes.BufferUsageIndex
	}
	if u.Contains(UsageConstantBuffer) {
		out |= gputypes.BufferUsageUniform
	}
	if u.Contains(UsageUnorderedAccess) {
		out |= gputypes.BufferUsageStorage
	}
	return out
}

// TextureUsage returns the equivalent WebGPU texture usage flags.
func (u Usage) TextureUsage() gputypes.TextureUsage {
	var out gputypes.TextureUsage
	if u.Contains(UsageShaderResource) {
		out |= gputypes.TextureUsageTextureBinding
	}
	if u.Contains(UsageUnorderedAccess) {
		out |= gputypes.TextureUsageStorageBinding
	}
	if u.Contains(UsageRenderTarget) || u.Contains(UsageDepthStencil) {
		out |= gputypes.TextureUsageRenderAttachment
	}
	return out
}

// Descriptor is the immutable description of a resource.
//
// Zero Height, DepthOrArraySize and MipLevels are treated as 1. A zero
// Width describes an empty resource, which cannot be allocated.
type Descriptor struct {
	Type             Type
	Format           Format
	Width            int
	Height           int
	DepthOrArraySize int
	MipLevels        int
	Usage            Usage
}

// Normalized returns d with defaulted dimensions filled in.
func (d Descriptor) Normalized() Descriptor {
	if d.Height == 0 {
		d.Height = 1
	}
	if d.DepthOrArraySize == 0 {
		d.DepthOrArraySize = 1
	}
	if d.MipLevels == 0 {
		d.MipLevels = 1
	}
	return d
}

// Validate checks that d describes an allocatable resource.
func (d Descriptor) Validate() error {
	n := d.Normalized()
	if n.Width <= 0 || n.Height < 0 || n.DepthOrArraySize < 0 || n.MipLevels < 0 {
		return fmt.Errorf("%w: %dx%dx%d mips=%d", ErrInvalidDescriptor,
			d.Width, d.Height, d.DepthOrArraySize, d.MipLevels)
	}
	if n.Type > TypeTextureCube {
		return fmt.Errorf("%w: type %d", ErrInvalidDescriptor, d.Type)
	}
	return nil
}

// ByteSize returns width*height*depth*mips*formatSize.
func (d Descriptor) ByteSize() int {
	n := d.Normalized()
	if n.Width <= 0 || n.Height <= 0 || n.DepthOrArraySize <= 0 || n.MipLevels <= 0 {
		return 0
	}
	return n.Width * n.Height * n.DepthOrArraySize * n.MipLevels * n.Format.Size()
}

// RowPitch returns the byte distance between rows.
func (d Descriptor) RowPitch() int { return d.Width * d.Format.Size() }

// DepthPitch returns the byte distance between slices.
func (d Descriptor) DepthPitch() int { return d.RowPitch() * d.Normalized().Height }

// Size returns the dimensions as a WebGPU extent.
func (d Descriptor) Size() gputypes.Extent3D {
	n := d.Normalized()
	return gputypes.NewExtent3D(uint32(max(n.Width, 0)), uint32(max(n.Height, 0)), uint32(max(n.DepthOrArraySize, 0)))
}

// BufferDescriptor is a convenience for a one-dimensional buffer of size
// bytes.
func BufferDescriptor(size int, usage Usage) Descriptor {
	return Descriptor{Type: TypeBuffer, Format: FormatUnknown, Width: size, Usage: usage}
}

// Texture2DDescriptor is a convenience for a single-mip 2D texture.
func Texture2DDescriptor(format Format, width, height int, usage Usage) Descriptor {
	return Descriptor{Type: TypeTexture2D, Format: format, Width: width, Height: height, Usage: usage}
}

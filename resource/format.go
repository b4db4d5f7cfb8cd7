// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import "github.com/gogpu/gputypes"

// Format is the element format of a resource.
type Format uint8

const (
	// FormatUnknown is an unrecognized format. It reports a size of one
	// byte and decodes to zero.
	FormatUnknown Format = iota

	// FormatR8Unorm is a single 8-bit normalized channel.
	FormatR8Unorm

	// FormatR32Float is a single 32-bit float channel. Depth buffers use it.
	FormatR32Float

	// FormatR8G8B8A8Unorm is four 8-bit normalized channels packed as
	// r | g<<8 | b<<16 | a<<24.
	FormatR8G8B8A8Unorm

	// FormatR16G16Float is two 16-bit float channels.
	FormatR16G16Float

	// FormatR11G11B10Float is three packed unsigned small floats.
	FormatR11G11B10Float

	// FormatR16G16B16A16Float is four 16-bit float channels.
	FormatR16G16B16A16Float

	// FormatR32G32Float is two 32-bit float channels.
	FormatR32G32Float

	// FormatR32G32B32Float is three 32-bit float channels.
	FormatR32G32B32Float

	// FormatR32G32B32A32Float is four 32-bit float channels.
	FormatR32G32B32A32Float

	formatCount
)

// FormatInfo contains metadata about an element format.
type FormatInfo struct {
	// Size is the number of bytes per element.
	Size int

	// Channels is the number of stored channels.
	Channels int

	// Name is the lower-case format name.
	Name string
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatUnknown:           {Size: 1, Channels: 0, Name: "unknown"},
	FormatR8Unorm:           {Size: 1, Channels: 1, Name: "r8_unorm"},
	FormatR32Float:          {Size: 4, Channels: 1, Name: "r32_float"},
	FormatR8G8B8A8Unorm:     {Size: 4, Channels: 4, Name: "r8g8b8a8_unorm"},
	FormatR16G16Float:       {Size: 4, Channels: 2, Name: "r16g16_float"},
	FormatR11G11B10Float:    {Size: 4, Channels: 3, Name: "r11g11b10_float"},
	FormatR16G16B16A16Float: {Size: 8, Channels: 4, Name: "r16g16b16a16_float"},
	FormatR32G32Float:       {Size: 8, Channels: 2, Name: "r32g32_float"},
	FormatR32G32B32Float:    {Size: 12, Channels: 3, Name: "r32g32b32_float"},
	FormatR32G32B32A32Float: {Size: 16, Channels: 4, Name: "r32g32b32a32_float"},
}

// Info returns the FormatInfo for f. Out of range values report the
// FormatUnknown entry.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return formatInfoTable[FormatUnknown]
	}
	return formatInfoTable[f]
}

// Size returns the number of bytes per element.
func (f Format) Size() int { return f.Info().Size }

// Channels returns the number of stored channels.
func (f Format) Channels() int { return f.Info().Channels }

// IsValid reports whether f is a known, decodable format.
func (f Format) IsValid() bool { return f > FormatUnknown && f < formatCount }

func (f Format) String() string { return f.Info().Name }

// TextureFormat returns the WebGPU texture format with the same layout, or
// TextureFormatUndefined when none exists.
func (f Format) TextureFormat() gputypes.TextureFormat {
	switch f {
	case FormatR8Unorm:
		return gputypes.TextureFormatR8Unorm
	case FormatR32Float:
		return gputypes.TextureFormatR32Float
	case FormatR8G8B8A8Unorm:
		return gputypes.TextureFormatRGBA8Unorm
	case FormatR16G16Float:
		return gputypes.TextureFormatRG16Float
	case FormatR11G11B10Float:
		return gputypes.TextureFormatRG11B10Ufloat
	case FormatR16G16B16A16Float:
		return gputypes.TextureFormatRGBA16Float
	case FormatR32G32Float:
		return gputypes.TextureFormatRG32Float
	case FormatR32G32B32A32Float:
		return gputypes.TextureFormatRGBA32Float
	default:
		return gputypes.TextureFormatUndefined
	}
}

// VertexFormat returns the WebGPU vertex format with the same layout, or
// VertexFormatUndefined when none exists.
func (f Format) VertexFormat() gputypes.VertexFormat {
	switch f {
	case FormatR32Float:
		return gputypes.VertexFormatFloat32
	case FormatR8G8B8A8Unorm:
		return gputypes.VertexFormatUnorm8x4
	case FormatR16G16Float:
		return gputypes.VertexFormatFloat16x2
	case FormatR16G16B16A16Float:
		return gputypes.VertexFormatFloat16x4
	case FormatR32G32Float:
		return gputypes.VertexFormatFloat32x2
	case FormatR32G32B32Float:
		return gputypes.VertexFormatFloat32x3
	case FormatR32G32B32A32Float:
		return gputypes.VertexFormatFloat32x4
	default:
		return gputypes.VertexFormatUndefined
	}
}

// FormatFromTexture maps a WebGPU texture format to a Format.
// Depth32Float maps to FormatR32Float.
func FormatFromTexture(tf gputypes.TextureFormat) (Format, bool) {
	if tf == gputypes.TextureFormatDepth32Float {
		return FormatR32Float, true
	}
	for f := FormatR8Unorm; f < formatCount; f++ {
		if f.TextureFormat() == tf {
			return f, true
		}
	}
	return FormatUnknown, false
}

// FormatFromVertex maps a WebGPU vertex format to a Format.
func FormatFromVertex(vf gputypes.VertexFormat) (Format, bool) {
	for f := FormatR8Unorm; f < formatCount; f++ {
		if f.VertexFormat() == vf {
			return f, true
		}
	}
	return FormatUnknown, false
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/swrast/geom"
)

var le = binary.LittleEndian

// Decode reads one element of format f from b and widens it to four float
// channels. Single channel formats replicate the value into every lane;
// missing channels of two and three channel formats decode as 0 with
// alpha 1. Unknown formats and short buffers decode to the zero vector.
func Decode(f Format, b []byte) geom.Vec4 {
	if !f.IsValid() || len(b) < f.Size() {
		return geom.Vec4{}
	}
	switch f {
	case FormatR8Unorm:
		v := float32(b[0]) / 255
		return geom.Vec4{X: v, Y: v, Z: v, W: v}

	case FormatR32Float:
		v := readF32(b, 0)
		return geom.Vec4{X: v, Y: v, Z: v, W: v}

	case FormatR8G8B8A8Unorm:
		rgba := le.Uint32(b)
		return geom.Vec4{
			X: float32(rgba&0xff) / 255,
			Y: float32((rgba>>8)&0xff) / 255,
			Z: float32((rgba>>16)&0xff) / 255,
			W: float32((rgba>>24)&0xff) / 255,
		}

	case FormatR16G16Float:
		return geom.Vec4{
			X: halfToFloat32(le.Uint16(b[0:])),
			Y: halfToFloat32(le.Uint16(b[2:])),
			W: 1,
		}

	case FormatR11G11B10Float:
		p := le.Uint32(b)
		return geom.Vec4{
			X: smallFloatValue(p&0x7ff, 6),
			Y: smallFloatValue((p>>11)&0x7ff, 6),
			Z: smallFloatValue(p>>22, 5),
			W: 1,
		}

	case FormatR16G16B16A16Float:
		return geom.Vec4{
			X: halfToFloat32(le.Uint16(b[0:])),
			Y: halfToFloat32(le.Uint16(b[2:])),
			Z: halfToFloat32(le.Uint16(b[4:])),
			W: halfToFloat32(le.Uint16(b[6:])),
		}

	case FormatR32G32Float:
		return geom.Vec4{X: readF32(b, 0), Y: readF32(b, 4), W: 1}

	case FormatR32G32B32Float:
		return geom.Vec4{X: readF32(b, 0), Y: readF32(b, 4), Z: readF32(b, 8), W: 1}

	case FormatR32G32B32A32Float:
		return geom.Vec4{X: readF32(b, 0), Y: readF32(b, 4), Z: readF32(b, 8), W: readF32(b, 12)}
	}
	return geom.Vec4{}
}

// Encode packs v into one element of format f at the start of b. Unorm
// channels are clamped to [0, 1] and scaled by 255 with truncation.
// It reports false, leaving b untouched, for unknown formats or short
// buffers.
func Encode(f Format, b []byte, v geom.Vec4) bool {
	if !f.IsValid() || len(b) < f.Size() {
		return false
	}
	switch f {
	case FormatR8Unorm:
		b[0] = unorm8(v.X)

	case FormatR32Float:
		writeF32(b, 0, v.X)

	case FormatR8G8B8A8Unorm:
		rgba := uint32(unorm8(v.X)) |
			uint32(unorm8(v.Y))<<8 |
			uint32(unorm8(v.Z))<<16 |
			uint32(unorm8(v.W))<<24
		le.PutUint32(b, rgba)

	case FormatR16G16Float:
		le.PutUint16(b[0:], halfFromFloat32(v.X))
		le.PutUint16(b[2:], halfFromFloat32(v.Y))

	case FormatR11G11B10Float:
		p := smallFloat(v.X, 6) | smallFloat(v.Y, 6)<<11 | smallFloat(v.Z, 5)<<22
		le.PutUint32(b, p)

	case FormatR16G16B16A16Float:
		le.PutUint16(b[0:], halfFromFloat32(v.X))
		le.PutUint16(b[2:], halfFromFloat32(v.Y))
		le.PutUint16(b[4:], halfFromFloat32(v.Z))
		le.PutUint16(b[6:], halfFromFloat32(v.W))

	case FormatR32G32Float:
		writeF32(b, 0, v.X)
		writeF32(b, 4, v.Y)

	case FormatR32G32B32Float:
		writeF32(b, 0, v.X)
		writeF32(b, 4, v.Y)
		writeF32(b, 8, v.Z)

	case FormatR32G32B32A32Float:
		writeF32(b, 0, v.X)
		writeF32(b, 4, v.Y)
		writeF32(b, 8, v.Z)
		writeF32(b, 12, v.W)
	}
	return true
}

func unorm8(v float32) uint8 {
	return uint8(geom.Clamp(v, 0, 1) * 255)
}

func readF32(b []byte, off int) float32 {
	return math.Float32frombits(le.Uint32(b[off:]))
}

func writeF32(b []byte, off int, v float32) {
	le.PutUint32(b[off:], math.Float32bits(v))
}

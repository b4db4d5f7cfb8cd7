// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/swrast/geom"
	"github.com/gogpu/swrast/resource"
)

// Record is a vertex or varying record: little-endian float32 lanes
// addressed by byte offset.
type Record []byte

// Lanes returns the number of whole float lanes in r.
func (r Record) Lanes() int { return len(r) / 4 }

// Float returns the lane at byte offset off.
func (r Record) Float(off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(r[off:]))
}

// SetFloat writes the lane at byte offset off.
func (r Record) SetFloat(off int, v float32) {
	binary.LittleEndian.PutUint32(r[off:], math.Float32bits(v))
}

// Vec2 returns two lanes starting at off.
func (r Record) Vec2(off int) geom.Vec2 {
	return geom.Vec2{X: r.Float(off), Y: r.Float(off + 4)}
}

// Vec3 returns three lanes starting at off.
func (r Record) Vec3(off int) geom.Vec3 {
	return geom.Vec3{X: r.Float(off), Y: r.Float(off + 4), Z: r.Float(off + 8)}
}

// Vec4 returns four lanes starting at off.
func (r Record) Vec4(off int) geom.Vec4 {
	return geom.Vec4{X: r.Float(off), Y: r.Float(off + 4), Z: r.Float(off + 8), W: r.Float(off + 12)}
}

// SetVec2 writes two lanes starting at off.
func (r Record) SetVec2(off int, v geom.Vec2) {
	r.SetFloat(off, v.X)
	r.SetFloat(off+4, v.Y)
}

// SetVec3 writes three lanes starting at off.
func (r Record) SetVec3(off int, v geom.Vec3) {
	r.SetFloat(off, v.X)
	r.SetFloat(off+4, v.Y)
	r.SetFloat(off+8, v.Z)
}

// SetVec4 writes four lanes starting at off.
func (r Record) SetVec4(off int, v geom.Vec4) {
	r.SetFloat(off, v.X)
	r.SetFloat(off+4, v.Y)
	r.SetFloat(off+8, v.Z)
	r.SetFloat(off+12, v.W)
}

// Attribute decodes an element of format f stored at off. It is meant for
// vertex buffer data that is not plain float lanes, such as packed unorm
// colors.
func (r Record) Attribute(off int, f resource.Format) geom.Vec4 {
	if off < 0 || off >= len(r) {
		return geom.Vec4{}
	}
	return resource.Decode(f, r[off:])
}

// Value is a typed attribute value: V holds Type.Lanes() meaningful lanes
// and the rest are zero.
type Value struct {
	Type DataType
	V    geom.Vec4
}

// Value reads an attribute of type t at off.
func (r Record) Value(off int, t DataType) Value {
	v := Value{Type: t}
	switch t {
	case Float:
		v.V.X = r.Float(off)
	case Float2:
		v.V.X, v.V.Y = r.Float(off), r.Float(off+4)
	case Float3:
		v.V = r.Vec3(off).Vec4(0)
	case Float4:
		v.V = r.Vec4(off)
	}
	return v
}

// SetValue writes v.Type.Lanes() lanes of v at off.
func (r Record) SetValue(off int, v Value) {
	switch v.Type {
	case Float:
		r.SetFloat(off, v.V.X)
	case Float2:
		r.SetVec2(off, v.V.XY())
	case Float3:
		r.SetVec3(off, v.V.XYZ())
	case Float4:
		r.SetVec4(off, v.V)
	}
}

// Lerp interpolates every lane of a and b by t into r. All three records
// must have the same length.
func Lerp(r, a, b Record, t float32) {
	for off := 0; off+4 <= len(r); off += 4 {
		r.SetFloat(off, geom.Lerp(a.Float(off), b.Float(off), t))
	}
}

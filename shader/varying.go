// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import "fmt"

// DataType is the width of an interpolated attribute.
type DataType uint8

const (
	Float DataType = iota + 1
	Float2
	Float3
	Float4
)

// Lanes returns the number of float lanes, or 0 for an unknown type.
func (d DataType) Lanes() int {
	if d < Float || d > Float4 {
		return 0
	}
	return int(d)
}

// Size returns the width in bytes.
func (d DataType) Size() int { return d.Lanes() * 4 }

func (d DataType) String() string {
	switch d {
	case Float:
		return "float"
	case Float2:
		return "float2"
	case Float3:
		return "float3"
	case Float4:
		return "float4"
	default:
		return "unknown"
	}
}

// Interpolation selects how an attribute varies across a triangle.
type Interpolation uint8

const (
	// Perspective interpolates with perspective-corrected barycentrics.
	Perspective Interpolation = iota

	// Linear interpolates in screen space.
	Linear

	// Flat copies the value of the first vertex. Triangles cut by the view
	// volume take it from their first vertex inside the volume; when no
	// vertex is inside, the value is blended from the crossings.
	Flat
)

func (i Interpolation) String() string {
	switch i {
	case Perspective:
		return "perspective"
	case Linear:
		return "linear"
	case Flat:
		return "flat"
	default:
		return "unknown"
	}
}

// VaryingAttribute is one interpolated field. Offset addresses the field
// both in the vertex shader output record and in the varying record.
type VaryingAttribute struct {
	Offset        int
	Type          DataType
	Interpolation Interpolation
}

// VaryingLayout is the ordered list of interpolated fields of a pixel
// shader.
type VaryingLayout struct {
	// Stride is the varying record size in bytes.
	Stride     int
	Attributes []VaryingAttribute
}

// Validate checks that every attribute is aligned and fits the stride,
// and that the stride fits inside vertex records of vertexStride bytes.
func (l VaryingLayout) Validate(vertexStride int) error {
	if l.Stride < 0 || l.Stride%4 != 0 {
		return fmt.Errorf("shader: varying stride %d is not a multiple of 4", l.Stride)
	}
	if l.Stride > vertexStride {
		return fmt.Errorf("shader: varying stride %d exceeds vertex stride %d", l.Stride, vertexStride)
	}
	for i, a := range l.Attributes {
		if a.Type.Lanes() == 0 {
			return fmt.Errorf("shader: varying %d has unknown type %d", i, a.Type)
		}
		if a.Offset < 0 || a.Offset%4 != 0 || a.Offset+a.Type.Size() > l.Stride {
			return fmt.Errorf("shader: varying %d (%s at %d) does not fit stride %d", i, a.Type, a.Offset, l.Stride)
		}
	}
	return nil
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shader defines the programmable stages the pipeline invokes.
//
// Shaders are plain Go values. A VertexShader turns one input vertex into
// an output record whose layout it declares up front; the only field the
// pipeline interprets is the clip-space position. A PixelShader declares
// which fields of that record are interpolated across a triangle and
// returns a color for each covered pixel.
//
// Records are sequences of 32-bit float lanes addressed by byte offset.
// Record and Value provide typed access so shader code never reinterprets
// memory directly.
package shader

import (
	"fmt"

	"github.com/gogpu/swrast/geom"
)

// VertexLayout describes the output record of a vertex shader.
type VertexLayout struct {
	// Stride is the size of one output record in bytes. It must be a
	// positive multiple of 4.
	Stride int

	// PositionOffset is the byte offset of the four float clip-space
	// position.
	PositionOffset int
}

// Validate checks that the position fits inside the record.
func (l VertexLayout) Validate() error {
	if l.Stride <= 0 || l.Stride%4 != 0 {
		return fmt.Errorf("shader: vertex stride %d is not a positive multiple of 4", l.Stride)
	}
	if l.PositionOffset < 0 || l.PositionOffset%4 != 0 || l.PositionOffset+16 > l.Stride {
		return fmt.Errorf("shader: position offset %d does not fit stride %d", l.PositionOffset, l.Stride)
	}
	return nil
}

// VertexInput is the data handed to a vertex shader invocation.
type VertexInput struct {
	// Data holds one element of the bound vertex buffer for Slot.
	Data Record

	// Slot is the vertex buffer slot Data was read from.
	Slot int

	// VertexID is the resolved vertex index.
	VertexID int

	// InstanceID is the instance being drawn.
	InstanceID int
}

// VertexShader transforms vertices.
type VertexShader interface {
	// Layout returns the output record layout. It is read once per draw.
	Layout() VertexLayout

	// Execute is called once per vertex and bound slot. It must write the
	// clip-space position into out at Layout().PositionOffset.
	Execute(in VertexInput, out Record)
}

// PixelShader shades covered pixels.
type PixelShader interface {
	// Varyings returns the interpolated attribute layout. It is read once
	// per draw.
	Varyings() VaryingLayout

	// Execute returns the color for one pixel from its interpolated
	// varying record.
	Execute(in Record) geom.Vec4
}

// MultiTargetShader is a PixelShader that writes every bound render
// target. out has one entry per bound target and starts zeroed.
type MultiTargetShader interface {
	PixelShader
	ExecuteTargets(in Record, out []geom.Vec4)
}

type vertexFunc struct {
	layout VertexLayout
	fn     func(VertexInput, Record)
}

func (v vertexFunc) Layout() VertexLayout { return v.layout }
func (v vertexFunc) Execute(in VertexInput, out Record) { v.fn(in, out) }

// VertexFunc adapts a function to the VertexShader interface.
func VertexFunc(layout VertexLayout, fn func(in VertexInput, out Record)) VertexShader {
	return vertexFunc{layout: layout, fn: fn}
}

type pixelFunc struct {
	layout VaryingLayout
	fn     func(Record) geom.Vec4
}

func (p pixelFunc) Varyings() VaryingLayout { return p.layout }
func (p pixelFunc) Execute(in Record) geom.Vec4 { return p.fn(in) }

// PixelFunc adapts a function to the PixelShader interface.
func PixelFunc(layout VaryingLayout, fn func(in Record) geom.Vec4) PixelShader {
	return pixelFunc{layout: layout, fn: fn}
}

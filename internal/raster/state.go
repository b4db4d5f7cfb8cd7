// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/swrast/geom"
)

// CullMode selects which faces are discarded.
type CullMode uint8

const (
	CullNone CullMode = iota
	CullFront
	CullBack
	CullFrontAndBack
)

func (m CullMode) String() string {
	switch m {
	case CullNone:
		return "none"
	case CullFront:
		return "front"
	case CullBack:
		return "back"
	case CullFrontAndBack:
		return "front_and_back"
	default:
		return "unknown"
	}
}

// CullModeFromWebGPU converts a WebGPU cull mode. WebGPU has no
// front-and-back mode.
func CullModeFromWebGPU(m gputypes.CullMode) CullMode {
	switch m {
	case gputypes.CullModeFront:
		return CullFront
	case gputypes.CullModeBack:
		return CullBack
	default:
		return CullNone
	}
}

// Viewport maps normalized device coordinates to the render target.
type Viewport struct {
	X, Y          float32
	Width, Height float32
	Near, Far     float32
}

// NewViewport returns a full-depth viewport of w x h at the origin.
func NewViewport(w, h int) Viewport {
	return Viewport{Width: float32(w), Height: float32(h), Near: 0, Far: 1}
}

// Bounds returns the pixel rectangle covered by the viewport.
func (v Viewport) Bounds() geom.Bounds2i {
	return geom.Bounds2i{
		MinX: int(math.Floor(float64(v.X))),
		MinY: int(math.Floor(float64(v.Y))),
		MaxX: int(math.Floor(float64(v.X + v.Width))),
		MaxY: int(math.Floor(float64(v.Y + v.Height))),
	}
}

// Area returns the number of pixels covered by the viewport.
func (v Viewport) Area() int { return v.Bounds().Area() }

// State is the fixed-function configuration read by each draw.
type State struct {
	CullMode          CullMode
	FrontFace         gputypes.FrontFace
	DepthCompare      gputypes.CompareFunction
	DepthEnabled      bool
	DepthWriteEnabled bool
}

// DefaultState returns no culling, counter-clockwise front faces, a less
// depth test and depth disabled.
func DefaultState() State {
	return State{
		CullMode:     CullNone,
		FrontFace:    gputypes.FrontFaceCCW,
		DepthCompare: gputypes.CompareFunctionLess,
	}
}

// DepthTest reports whether an incoming depth src passes fn against the
// stored depth dst. Undefined compare functions always pass.
func DepthTest(fn gputypes.CompareFunction, dst, src float32) bool {
	switch fn {
	case gputypes.CompareFunctionNever:
		return false
	case gputypes.CompareFunctionLess:
		return src < dst
	case gputypes.CompareFunctionEqual:
		return src == dst
	case gputypes.CompareFunctionLessEqual:
		return src <= dst
	case gputypes.CompareFunctionGreater:
		return src > dst
	case gputypes.CompareFunctionNotEqual:
		return src != dst
	case gputypes.CompareFunctionGreaterEqual:
		return src >= dst
	default:
		return true
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package texture implements the texel access pixel shaders use: direct
// fetch by integer coordinate and filtered sampling by normalized
// coordinate.
//
// Out of range coordinates are always resolved by the sampler's address
// mode before memory is touched, so sampling never reads outside a
// resource.
package texture

import (
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/swrast/geom"
	"github.com/gogpu/swrast/resource"
)

// Sampler selects the filter and per-axis address modes used by Sample.
type Sampler struct {
	Filter   gputypes.FilterMode
	AddressU gputypes.AddressMode
	AddressV gputypes.AddressMode
	AddressW gputypes.AddressMode
}

// NewSampler converts a WebGPU sampler descriptor. Without mipmaps the
// magnification filter applies everywhere.
func NewSampler(desc gputypes.SamplerDescriptor) Sampler {
	return Sampler{
		Filter:   desc.MagFilter,
		AddressU: desc.AddressModeU,
		AddressV: desc.AddressModeV,
		AddressW: desc.AddressModeW,
	}
}

// Descriptor returns the equivalent WebGPU sampler descriptor.
func (s Sampler) Descriptor() gputypes.SamplerDescriptor {
	d := gputypes.DefaultSamplerDescriptor()
	d.AddressModeU, d.AddressModeV, d.AddressModeW = s.AddressU, s.AddressV, s.AddressW
	d.MagFilter, d.MinFilter = s.Filter, s.Filter
	return d
}

// Common samplers.
var (
	PointClamp    = Sampler{gputypes.FilterModeNearest, gputypes.AddressModeClampToEdge, gputypes.AddressModeClampToEdge, gputypes.AddressModeClampToEdge}
	PointWrap     = Sampler{gputypes.FilterModeNearest, gputypes.AddressModeRepeat, gputypes.AddressModeRepeat, gputypes.AddressModeRepeat}
	BilinearClamp = Sampler{gputypes.FilterModeLinear, gputypes.AddressModeClampToEdge, gputypes.AddressModeClampToEdge, gputypes.AddressModeClampToEdge}
	BilinearWrap  = Sampler{gputypes.FilterModeLinear, gputypes.AddressModeRepeat, gputypes.AddressModeRepeat, gputypes.AddressModeRepeat}
)

// Size returns the width, height and depth of tex in texels. A nil or
// released texture has zero size.
func Size(tex *resource.Resource) (w, h, d int) {
	if tex.Released() {
		return 0, 0, 0
	}
	return tex.Width(), tex.Height(), tex.Depth()
}

// ResolveAddress maps coordinate c into [0, size) using mode. Clamp and
// unknown modes clamp to the edge texel, Repeat wraps modulo size and
// MirrorRepeat reflects with period 2*size, so -1 resolves to 0.
func ResolveAddress(c, size int, mode gputypes.AddressMode) int {
	if size <= 0 {
		return 0
	}
	switch mode {
	case gputypes.AddressModeRepeat:
		c %= size
		if c < 0 {
			c += size
		}
		return c
	case gputypes.AddressModeMirrorRepeat:
		period := 2 * size
		c %= period
		if c < 0 {
			c += period
		}
		if c >= size {
			c = period - 1 - c
		}
		return c
	default:
		return geom.Clamp(c, 0, size-1)
	}
}

// Fetch returns texel (x, y, z) without filtering or addressing.
// Coordinates outside the texture and unsupported formats return zero.
func Fetch(tex *resource.Resource, x, y, z int) geom.Vec4 {
	if tex.Released() {
		return geom.Vec4{}
	}
	return tex.Load(x, y, z)
}

// Sample filters tex at normalized coordinate uv on slice 0.
func Sample(tex *resource.Resource, s Sampler, uv geom.Vec2) geom.Vec4 {
	return SampleSlice(tex, s, uv, 0)
}

// SampleSlice filters tex at normalized coordinate uv on slice z. z is
// resolved with the W address mode.
func SampleSlice(tex *resource.Resource, s Sampler, uv geom.Vec2, z int) geom.Vec4 {
	w, h, d := Size(tex)
	if w == 0 {
		return geom.Vec4{}
	}
	z = ResolveAddress(z, d, s.AddressW)

	fx := uv.X * float32(w)
	fy := uv.Y * float32(h)

	if s.Filter != gputypes.FilterModeLinear {
		x := ResolveAddress(floor(fx), w, s.AddressU)
		y := ResolveAddress(floor(fy), h, s.AddressV)
		return tex.Load(x, y, z)
	}

	fx -= 0.5
	fy -= 0.5
	x0, y0 := floor(fx), floor(fy)
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	xa := ResolveAddress(x0, w, s.AddressU)
	xb := ResolveAddress(x0+1, w, s.AddressU)
	ya := ResolveAddress(y0, h, s.AddressV)
	yb := ResolveAddress(y0+1, h, s.AddressV)

	top := tex.Load(xa, ya, z).Lerp(tex.Load(xb, ya, z), tx)
	bottom := tex.Load(xa, yb, z).Lerp(tex.Load(xb, yb, z), tx)
	return top.Lerp(bottom, ty)
}

func floor(v float32) int { return int(math.Floor(float64(v))) }

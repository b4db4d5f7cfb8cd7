// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"errors"
	"fmt"

	"github.com/gogpu/swrast/geom"
	"github.com/gogpu/swrast/resource"
)

// MaxRenderTargets is the number of color targets a Framebuffer can bind.
const MaxRenderTargets = 8

// ErrNoTarget is returned when an output operation has nothing bound.
var ErrNoTarget = errors.New("raster: no target bound")

// Framebuffer is the set of bound color targets and the optional depth
// target. It implements the output merge: format-aware stores of shaded
// colors and depth values.
type Framebuffer struct {
	targets [MaxRenderTargets]*resource.Resource
	count   int
	depth   *resource.Resource
}

// BindRenderTargets replaces the color targets. Nil entries are allowed.
func (fb *Framebuffer) BindRenderTargets(targets []*resource.Resource) error {
	if len(targets) > MaxRenderTargets {
		return fmt.Errorf("raster: %d render targets, max %d", len(targets), MaxRenderTargets)
	}
	fb.targets = [MaxRenderTargets]*resource.Resource{}
	fb.count = copy(fb.targets[:], targets)
	return nil
}

// BindDepthStencil replaces the depth target. Nil unbinds it.
func (fb *Framebuffer) BindDepthStencil(depth *resource.Resource) { fb.depth = depth }

// Target returns color target i, or nil.
func (fb *Framebuffer) Target(i int) *resource.Resource {
	if i < 0 || i >= fb.count {
		return nil
	}
	return fb.targets[i]
}

// TargetCount returns the number of bound color target slots.
func (fb *Framebuffer) TargetCount() int { return fb.count }

// DepthStencil returns the depth target, or nil.
func (fb *Framebuffer) DepthStencil() *resource.Resource { return fb.depth }

// Bounds returns the extent shared by every bound target.
func (fb *Framebuffer) Bounds() (geom.Bounds2i, bool) {
	var b geom.Bounds2i
	found := false
	add := func(r *resource.Resource) {
		if r.Released() {
			return
		}
		rb := geom.Bounds2i{MaxX: r.Width(), MaxY: r.Height()}
		if !found {
			b, found = rb, true
			return
		}
		b = b.Intersect(rb)
	}
	for i := range fb.count {
		add(fb.targets[i])
	}
	add(fb.depth)
	return b, found
}

// ShadeToOutput stores color into target i at (x, y).
func (fb *Framebuffer) ShadeToOutput(i, x, y int, color geom.Vec4) error {
	rt := fb.Target(i)
	if rt.Released() {
		return fmt.Errorf("%w: render target %d", ErrNoTarget, i)
	}
	return rt.Store(x, y, 0, color)
}

// ReadDepth returns the stored depth at (x, y), or 0 without a depth
// target.
func (fb *Framebuffer) ReadDepth(x, y int) float32 {
	if fb.depth.Released() {
		return 0
	}
	return fb.depth.Load(x, y, 0).X
}

// WriteDepth stores depth at (x, y).
func (fb *Framebuffer) WriteDepth(x, y int, depth float32) error {
	if fb.depth.Released() {
		return fmt.Errorf("%w: depth stencil", ErrNoTarget)
	}
	return fb.depth.Store(x, y, 0, geom.Vec4{X: depth, Y: depth, Z: depth, W: depth})
}

// ClearRenderTarget fills rect of target i with color.
func (fb *Framebuffer) ClearRenderTarget(i int, rect resource.Rect, color geom.Vec4) error {
	rt := fb.Target(i)
	if rt.Released() {
		return fmt.Errorf("%w: render target %d", ErrNoTarget, i)
	}
	return rt.FillRect(rect, color)
}

// ClearDepthStencil fills rect of the depth target with depth.
func (fb *Framebuffer) ClearDepthStencil(rect resource.Rect, depth float32) error {
	if fb.depth.Released() {
		return fmt.Errorf("%w: depth stencil", ErrNoTarget)
	}
	return fb.depth.FillRect(rect, geom.Vec4{X: depth, Y: depth, Z: depth, W: depth})
}

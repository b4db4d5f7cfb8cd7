// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster turns clipped clip-space triangles into shaded pixels.
//
// Each triangle is projected to screen space, culled by winding, scanned
// over its bounding box with edge functions, depth tested and shaded. The
// per-pixel varying records come from a bump allocator that is reset at
// the start of every draw.
//
// # Coverage
//
// Pixel centers sit at (x+0.5, y+0.5). Screen positions are snapped to
// pixel centers before scanning. A center is covered when all three edge
// functions are non-negative; a center exactly on an edge is covered only
// when that edge points down the screen, or along it toward -x. Two
// triangles sharing an edge traverse it in opposite directions, so shared
// edges are shaded exactly once.
package raster

import (
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/swrast/geom"
	"github.com/gogpu/swrast/internal/ia"
	"github.com/gogpu/swrast/internal/memory"
	"github.com/gogpu/swrast/shader"
)

// Stats counts the work done by the last Raster call.
type Stats struct {
	Triangles       int // triangles read
	Culled          int // triangles rejected by winding, area or w
	Rasterized      int // triangles scanned
	Covered         int // pixel centers inside a triangle
	DepthRejected   int // covered pixels that failed the depth test
	Shaded          int // pixels written
	VaryingOverflow int // pixels skipped for lack of varying space
}

// Rasterizer holds the pixel stage bindings and scratch memory.
type Rasterizer struct {
	state       State
	viewport    Viewport
	framebuffer *Framebuffer
	shader      shader.PixelShader
	varyings    *memory.LinearAllocator
	stats       Stats
	colors      []geom.Vec4
}

// New creates a rasterizer bound to fb.
func New(fb *Framebuffer) *Rasterizer {
	return &Rasterizer{
		state:       DefaultState(),
		framebuffer: fb,
		varyings:    memory.NewLinearAllocator(0),
		colors:      make([]geom.Vec4, MaxRenderTargets),
	}
}

// SetState replaces the fixed-function state.
func (r *Rasterizer) SetState(s State) { r.state = s }

// State returns the fixed-function state.
func (r *Rasterizer) State() State { return r.state }

// SetViewport replaces the viewport.
func (r *Rasterizer) SetViewport(v Viewport) { r.viewport = v }

// Viewport returns the viewport.
func (r *Rasterizer) Viewport() Viewport { return r.viewport }

// BindPixelShader binds ps. Nil unbinds, which shades transparent black.
func (r *Rasterizer) BindPixelShader(ps shader.PixelShader) { r.shader = ps }

// PixelShader returns the bound pixel shader.
func (r *Rasterizer) PixelShader() shader.PixelShader { return r.shader }

// Stats returns the counts of the last Raster call.
func (r *Rasterizer) Stats() Stats { return r.stats }

// VaryingHeapSize returns the current size of the varying arena.
func (r *Rasterizer) VaryingHeapSize() int { return r.varyings.Cap() }

// ClipToNDC divides by w and keeps 1/w in the fourth component.
func ClipToNDC(clip geom.Vec4) geom.Vec4 {
	inv := 1 / clip.W
	return geom.Vec4{X: clip.X * inv, Y: clip.Y * inv, Z: clip.Z * inv, W: inv}
}

// NDCToScreen maps ndc to screen space through vp, snapping x and y to
// pixel centers. The fourth component passes through.
func NDCToScreen(ndc geom.Vec4, vp Viewport) geom.Vec4 {
	hw, hh := vp.Width/2, vp.Height/2
	return geom.Vec4{
		X: float32(math.Floor(float64(hw*ndc.X+vp.X+hw))) + 0.5,
		Y: float32(math.Floor(float64(hh*ndc.Y+vp.Y+hh))) + 0.5,
		Z: (vp.Far-vp.Near)/2*ndc.Z + (vp.Far+vp.Near)/2,
		W: ndc.W,
	}
}

// EdgeFunction returns the signed area spanned by edge a->b and point c.
func EdgeFunction(a, b, c geom.Vec2) float32 {
	return (c.X-a.X)*(b.Y-a.Y) - (c.Y-a.Y)*(b.X-a.X)
}

// topLeft reports whether a center lying exactly on edge a->b is covered.
func topLeft(a, b geom.Vec2) bool {
	dx, dy := b.X-a.X, b.Y-a.Y
	return dy > 0 || (dy == 0 && dx < 0)
}

func flip(f gputypes.FrontFace) gputypes.FrontFace {
	if f == gputypes.FrontFaceCW {
		return gputypes.FrontFaceCCW
	}
	return gputypes.FrontFaceCW
}

// Winding returns the signed area of the screen-space triangle and the
// vertex order to scan it with, after applying the cull mode. The
// triangle is culled when the returned area is not positive.
func Winding(v0, v1, v2 geom.Vec2, front gputypes.FrontFace, cull CullMode) (float32, gputypes.FrontFace) {
	var area float32
	if front == gputypes.FrontFaceCW {
		area = EdgeFunction(v0, v2, v1)
	} else {
		area = EdgeFunction(v0, v1, v2)
	}
	order := front

	switch cull {
	case CullBack:
		area, order = -area, flip(order)
	case CullNone:
		if area < 0 {
			area, order = -area, flip(order)
		}
	case CullFrontAndBack:
		if area > 0 {
			area = -area
		}
	}
	return area, order
}

// edges returns the three directed edges opposite v0, v1 and v2 for the
// scan order.
func edges(v0, v1, v2 geom.Vec2, order gputypes.FrontFace) [3][2]geom.Vec2 {
	if order == gputypes.FrontFaceCW {
		return [3][2]geom.Vec2{{v2, v1}, {v0, v2}, {v1, v0}}
	}
	return [3][2]geom.Vec2{{v1, v2}, {v2, v0}, {v0, v1}}
}

// triangle is a projected triangle ready to scan.
type triangle struct {
	first  int
	screen [3]geom.Vec4
	area   float32
	order  gputypes.FrontFace
	bounds geom.Bounds2i
}

// Raster projects, culls, scans and shades the triangles in pool. Vertex
// positions in pool are overwritten with their screen-space form.
func (r *Rasterizer) Raster(pool *ia.VertexPool) error {
	r.stats = Stats{Triangles: pool.Len() / 3}
	log := slogger()

	clamp := r.viewport.Bounds()
	if fb, ok := r.framebuffer.Bounds(); ok {
		clamp = clamp.Intersect(fb)
	}

	tris := make([]triangle, 0, r.stats.Triangles)
	scanArea := 0
	for t := range r.stats.Triangles {
		tri, ok := r.setup(pool, 3*t, clamp)
		if !ok {
			r.stats.Culled++
			continue
		}
		tris = append(tris, tri)
		scanArea += tri.bounds.Area()
	}

	var layout shader.VaryingLayout
	if r.shader != nil {
		layout = r.shader.Varyings()
		if err := layout.Validate(pool.Stride()); err != nil {
			return err
		}
	}
	r.varyings.Resize(max(clamp.Area(), scanArea) * layout.Stride)

	for i := range tris {
		r.scan(pool, &tris[i], layout)
	}
	r.stats.Rasterized = len(tris)

	if r.stats.VaryingOverflow > 0 {
		log.Warn("raster: varying heap exhausted", "skipped", r.stats.VaryingOverflow, "heap", r.varyings.Cap())
	}
	log.Debug("raster: draw",
		"triangles", r.stats.Triangles,
		"culled", r.stats.Culled,
		"shaded", r.stats.Shaded,
		"depthRejected", r.stats.DepthRejected,
		"varyingHeap", r.varyings.Cap())
	return nil
}

// setup projects the triangle starting at first and applies culling.
func (r *Rasterizer) setup(pool *ia.VertexPool, first int, clamp geom.Bounds2i) (triangle, bool) {
	tri := triangle{first: first}
	for k := range 3 {
		clip := pool.Position(first + k)
		if !(clip.W > 0) {
			return tri, false
		}
		tri.screen[k] = NDCToScreen(ClipToNDC(clip), r.viewport)
		pool.SetPosition(first+k, tri.screen[k])
	}

	v0, v1, v2 := tri.screen[0].XY(), tri.screen[1].XY(), tri.screen[2].XY()
	tri.area, tri.order = Winding(v0, v1, v2, r.state.FrontFace, r.state.CullMode)
	if !(tri.area > 0) {
		return tri, false
	}

	lo := geom.Vec2{X: geom.Min3(v0.X, v1.X, v2.X), Y: geom.Min3(v0.Y, v1.Y, v2.Y)}.Floor()
	hi := geom.Vec2{X: geom.Max3(v0.X, v1.X, v2.X), Y: geom.Max3(v0.Y, v1.Y, v2.Y)}.Floor()
	tri.bounds = geom.Bounds2i{
		MinX: int(lo.X), MinY: int(lo.Y),
		MaxX: int(hi.X) + 1, MaxY: int(hi.Y) + 1,
	}.Intersect(clamp)
	return tri, true
}

// scan walks the bounding box of tri in row order.
func (r *Rasterizer) scan(pool *ia.VertexPool, tri *triangle, layout shader.VaryingLayout) {
	s := tri.screen
	e := edges(s[0].XY(), s[1].XY(), s[2].XY(), tri.order)
	var tie [3]bool
	for i := range e {
		tie[i] = topLeft(e[i][0], e[i][1])
	}

	depthTest := r.state.DepthEnabled && !r.framebuffer.depth.Released()
	depthWrite := depthTest && r.state.DepthWriteEnabled
	a := [3]shader.Record{pool.Vertex(tri.first), pool.Vertex(tri.first + 1), pool.Vertex(tri.first + 2)}

	for y := tri.bounds.MinY; y < tri.bounds.MaxY; y++ {
		for x := tri.bounds.MinX; x < tri.bounds.MaxX; x++ {
			p := geom.Vec2{X: float32(x) + 0.5, Y: float32(y) + 0.5}

			var w [3]float32
			inside := true
			for i := range e {
				w[i] = EdgeFunction(e[i][0], e[i][1], p)
				if w[i] < 0 || (w[i] == 0 && !tie[i]) {
					inside = false
					break
				}
			}
			if !inside {
				continue
			}
			r.stats.Covered++

			b := [3]float32{w[0] / tri.area, w[1] / tri.area, w[2] / tri.area}
			z := b[0]*s[0].Z + b[1]*s[1].Z + b[2]*s[2].Z

			if depthTest && !DepthTest(r.state.DepthCompare, r.framebuffer.ReadDepth(x, y), z) {
				r.stats.DepthRejected++
				continue
			}

			var color geom.Vec4
			if r.shader != nil {
				in := shader.Record(r.varyings.AllocateAligned(layout.Stride, 4))
				if in == nil && layout.Stride > 0 {
					r.stats.VaryingOverflow++
					continue
				}
				pc := perspective(b, s)
				interpolate(in, a, b, pc, layout)
				if mt, ok := r.shader.(shader.MultiTargetShader); ok {
					r.shadeTargets(mt, in, x, y)
					r.finish(x, y, z, depthWrite)
					continue
				}
				color = r.shader.Execute(in)
			}
			// Without a target 0 only depth is written.
			_ = r.framebuffer.ShadeToOutput(0, x, y, color)
			r.finish(x, y, z, depthWrite)
		}
	}
}

func (r *Rasterizer) shadeTargets(mt shader.MultiTargetShader, in shader.Record, x, y int) {
	n := r.framebuffer.TargetCount()
	out := r.colors[:n]
	clear(out)
	mt.ExecuteTargets(in, out)
	for i := range n {
		_ = r.framebuffer.ShadeToOutput(i, x, y, out[i])
	}
}

func (r *Rasterizer) finish(x, y int, z float32, depthWrite bool) {
	if depthWrite {
		_ = r.framebuffer.WriteDepth(x, y, z)
	}
	r.stats.Shaded++
}

// perspective corrects screen-linear barycentrics b with each vertex's
// 1/w.
func perspective(b [3]float32, s [3]geom.Vec4) [3]float32 {
	c := [3]float32{b[0] * s[0].W, b[1] * s[1].W, b[2] * s[2].W}
	sum := c[0] + c[1] + c[2]
	if sum == 0 {
		return b
	}
	return [3]float32{c[0] / sum, c[1] / sum, c[2] / sum}
}

// interpolate fills out with every declared varying of the three vertex
// records.
func interpolate(out shader.Record, a [3]shader.Record, b, pc [3]float32, layout shader.VaryingLayout) {
	for _, attr := range layout.Attributes {
		v0 := a[0].Value(attr.Offset, attr.Type)
		if attr.Interpolation == shader.Flat {
			out.SetValue(attr.Offset, v0)
			continue
		}
		weights := pc
		if attr.Interpolation == shader.Linear {
			weights = b
		}
		v1 := a[1].Value(attr.Offset, attr.Type).V
		v2 := a[2].Value(attr.Offset, attr.Type).V
		out.SetValue(attr.Offset, shader.Value{
			Type: attr.Type,
			V:    v0.V.Scale(weights[0]).Add(v1.Scale(weights[1])).Add(v2.Scale(weights[2])),
		})
	}
}

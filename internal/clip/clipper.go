// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package clip clips clip-space triangles against the view volume.
//
// A vertex (x, y, z, w) is inside when
//
//	-w <= x <= w,  -w <= y <= w,  0 <= z <= w
//
// Triangles entirely inside pass through untouched and triangles entirely
// outside any single plane are discarded. The rest are clipped as polygons,
// one plane at a time, and fan-triangulated. Intersection vertices
// interpolate every lane of the vertex record, so all attributes stay
// consistent with the clipped position.
package clip

import (
	"github.com/gogpu/swrast/geom"
	"github.com/gogpu/swrast/internal/ia"
	"github.com/gogpu/swrast/internal/memory"
	"github.com/gogpu/swrast/shader"
)

// Plane identifies one half-space of the view volume.
type Plane uint8

const (
	PlaneLeft   Plane = iota // w + x >= 0
	PlaneRight               // w - x >= 0
	PlaneBottom              // w + y >= 0
	PlaneTop                 // w - y >= 0
	PlaneNear                // z >= 0
	PlaneFar                 // w - z >= 0

	planeCount
)

// Distance returns the signed distance of v from p. Non-negative values
// are inside.
func (p Plane) Distance(v geom.Vec4) float32 {
	switch p {
	case PlaneLeft:
		return v.W + v.X
	case PlaneRight:
		return v.W - v.X
	case PlaneBottom:
		return v.W + v.Y
	case PlaneTop:
		return v.W - v.Y
	case PlaneNear:
		return v.Z
	case PlaneFar:
		return v.W - v.Z
	}
	return 0
}

// Outcode returns a mask with bit p set for every plane v is outside of.
func Outcode(v geom.Vec4) uint8 {
	var code uint8
	for p := range planeCount {
		if p.Distance(v) < 0 {
			code |= 1 << p
		}
	}
	return code
}

// Inside reports whether v lies in the view volume.
func Inside(v geom.Vec4) bool { return Outcode(v) == 0 }

// maxPolygon is the largest polygon a triangle can become: each plane
// adds at most one vertex.
const maxPolygon = 3 + int(planeCount)

// Stats counts the triangles seen by the last Clip call.
type Stats struct {
	In       int // triangles read
	Accepted int // triangles inside every plane
	Clipped  int // triangles that straddled a plane and survived
	Culled   int // triangles discarded
	Out      int // triangles written
}

// Clipper clips vertex pools. Its output arena and scratch polygons are
// reused across calls.
type Clipper struct {
	arena   *memory.Pool
	poly    [2][]byte
	kept    [2][maxPolygon]bool // poly vertex is an unmodified input vertex
	stats   Stats
	outcode []uint8
}

// NewClipper creates a clipper.
func NewClipper() *Clipper {
	return &Clipper{arena: memory.NewPool(0)}
}

// Stats returns the counts of the last Clip call.
func (c *Clipper) Stats() Stats { return c.stats }

// Clip reads consecutive vertex triples from in and returns a pool of
// triangles that lie inside the view volume, in input order. Trailing
// vertices that do not form a triangle are ignored. The returned pool is
// valid until the next call.
func (c *Clipper) Clip(in *ia.VertexPool) *ia.VertexPool {
	c.stats = Stats{In: in.Len() / 3}
	layout := in.Layout()
	stride := layout.Stride

	// Size the output for the worst case so it never grows mid-pass.
	c.outcode = c.outcode[:0]
	records := 0
	for i := range in.Len() {
		c.outcode = append(c.outcode, Outcode(in.Position(i)))
	}
	for t := range c.stats.In {
		o0, o1, o2 := c.outcode[3*t], c.outcode[3*t+1], c.outcode[3*t+2]
		switch {
		case o0|o1|o2 == 0:
			records += 3
		case o0&o1&o2 != 0:
		default:
			records += 3 * (maxPolygon - 2)
		}
	}
	c.arena.Grow(records * stride)
	out := ia.NewVertexPool(c.arena.Bytes(), layout)

	for k := range c.poly {
		if len(c.poly[k]) < maxPolygon*stride {
			c.poly[k] = make([]byte, maxPolygon*stride)
		}
	}

	for t := range c.stats.In {
		o0, o1, o2 := c.outcode[3*t], c.outcode[3*t+1], c.outcode[3*t+2]
		switch {
		case o0|o1|o2 == 0:
			for k := range 3 {
				copy(out.Allocate(), in.Vertex(3*t+k))
			}
			c.stats.Accepted++
			c.stats.Out++
		case o0&o1&o2 != 0:
			c.stats.Culled++
		default:
			n := c.clipTriangle(in, 3*t, o0|o1|o2, layout)
			if n < 3 {
				c.stats.Culled++
				continue
			}
			c.stats.Clipped++
			// The fan starts at the first surviving input vertex so that
			// vertex 0 of every output triangle carries unblended values.
			start := 0
			for k := range n {
				if c.kept[0][k] {
					start = k
					break
				}
			}
			poly := c.poly[0]
			at := func(k int) []byte {
				k = (start + k) % n
				return poly[k*stride : (k+1)*stride]
			}
			for k := 1; k < n-1; k++ {
				copy(out.Allocate(), at(0))
				copy(out.Allocate(), at(k))
				copy(out.Allocate(), at(k+1))
				c.stats.Out++
			}
		}
	}
	return out
}

// clipTriangle clips the triangle starting at vertex first against every
// plane in mask. The result is left in c.poly[0] and c.kept[0]; it returns
// the vertex count.
func (c *Clipper) clipTriangle(in *ia.VertexPool, first int, mask uint8, layout shader.VertexLayout) int {
	stride := layout.Stride
	src := c.poly[0]
	for k := range 3 {
		copy(src[k*stride:(k+1)*stride], in.Vertex(first+k))
		c.kept[0][k] = true
	}
	n := 3

	for p := range planeCount {
		if mask&(1<<p) == 0 {
			continue
		}
		n = clipPolygon(c.poly[1], c.poly[0], c.kept[1][:], c.kept[0][:], n, p, layout)
		c.poly[0], c.poly[1] = c.poly[1], c.poly[0]
		c.kept[0], c.kept[1] = c.kept[1], c.kept[0]
		if n < 3 {
			return 0
		}
	}
	return n
}

// clipPolygon clips the n-vertex polygon in src against p into dst and
// returns the new vertex count. dstKept marks the vertices copied from src
// whose srcKept flag is set.
func clipPolygon(dst, src []byte, dstKept, srcKept []bool, n int, p Plane, layout shader.VertexLayout) int {
	stride := layout.Stride
	vertex := func(buf []byte, i int) shader.Record {
		return shader.Record(buf[i*stride : (i+1)*stride])
	}

	count := 0
	for i := range n {
		cur := vertex(src, i)
		next := vertex(src, (i+1)%n)
		dc := p.Distance(cur.Vec4(layout.PositionOffset))
		dn := p.Distance(next.Vec4(layout.PositionOffset))

		if dc >= 0 {
			copy(vertex(dst, count), cur)
			dstKept[count] = srcKept[i]
			count++
		}
		if (dc >= 0) != (dn >= 0) {
			shader.Lerp(vertex(dst, count), cur, next, dc/(dc-dn))
			dstKept[count] = false
			count++
		}
	}
	return count
}

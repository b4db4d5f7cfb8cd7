// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clip

import (
	"testing"

	"github.com/gogpu/swrast/geom"
	"github.com/gogpu/swrast/internal/ia"
	"github.com/gogpu/swrast/shader"
)

// Records are a clip-space position followed by one scalar attribute.
var testLayout = shader.VertexLayout{Stride: 20, PositionOffset: 0}

func makePool(t *testing.T, verts ...geom.Vec4) *ia.VertexPool {
	t.Helper()
	p := ia.NewAssembler(0).AvailablePool(len(verts), testLayout)
	for i, v := range verts {
		r := p.Allocate()
		r.SetVec4(0, v)
		r.SetFloat(16, float32(i))
	}
	return p
}

func insideEps(v geom.Vec4) bool {
	const eps = 1e-5
	for p := range planeCount {
		if p.Distance(v) < -eps {
			return false
		}
	}
	return true
}

func TestOutcode(t *testing.T) {
	tests := []struct {
		name string
		v    geom.Vec4
		want uint8
	}{
		{"center", geom.V4(0, 0, 0.5, 1), 0},
		{"on every boundary", geom.V4(1, -1, 0, 1), 0},
		{"left", geom.V4(-2, 0, 0.5, 1), 1 << PlaneLeft},
		{"right top", geom.V4(2, 2, 0.5, 1), 1<<PlaneRight | 1<<PlaneTop},
		{"behind near", geom.V4(0, 0, -0.1, 1), 1 << PlaneNear},
		{"beyond far", geom.V4(0, 0, 2, 1), 1 << PlaneFar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Outcode(tt.v); got != tt.want {
				t.Errorf("Outcode(%v) = %06b, want %06b", tt.v, got, tt.want)
			}
		})
	}
}

func TestClipAcceptsInside(t *testing.T) {
	in := makePool(t,
		geom.V4(-0.5, -0.5, 0.5, 1),
		geom.V4(0.5, -0.5, 0.5, 1),
		geom.V4(0, 0.5, 0.5, 1),
	)
	c := NewClipper()
	out := c.Clip(in)
	if out.Len() != 3 {
		t.Fatalf("Len = %d, want 3", out.Len())
	}
	for i := range 3 {
		if string(out.Vertex(i)) != string(in.Vertex(i)) {
			t.Errorf("vertex %d changed", i)
		}
	}
	if s := c.Stats(); s.Accepted != 1 || s.Out != 1 || s.Culled != 0 {
		t.Errorf("Stats = %+v", s)
	}
}

func TestClipCullsOutsideOnePlane(t *testing.T) {
	tests := []struct {
		name  string
		verts []geom.Vec4
	}{
		{"right", []geom.Vec4{geom.V4(2, 0, 0.5, 1), geom.V4(3, 1, 0.5, 1), geom.V4(2, -1, 0.5, 1)}},
		{"behind near", []geom.Vec4{geom.V4(0, 0, -1, 1), geom.V4(1, 0, -1, 1), geom.V4(0, 1, -0.1, 1)}},
		{"beyond far", []geom.Vec4{geom.V4(0, 0, 2, 1), geom.V4(1, 0, 2, 1), geom.V4(0, 1, 3, 1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClipper()
			out := c.Clip(makePool(t, tt.verts...))
			if out.Len() != 0 {
				t.Errorf("Len = %d, want 0", out.Len())
			}
			if c.Stats().Culled != 1 {
				t.Errorf("Culled = %d, want 1", c.Stats().Culled)
			}
		})
	}
}

func TestClipNearPlane(t *testing.T) {
	tests := []struct {
		name      string
		verts     []geom.Vec4
		triangles int
	}{
		{
			name: "one vertex behind",
			verts: []geom.Vec4{
				geom.V4(0, 0, -0.5, 1),
				geom.V4(-0.5, -0.5, 0.5, 1),
				geom.V4(0.5, 0.5, 0.5, 1),
			},
			triangles: 2,
		},
		{
			name: "two vertices behind",
			verts: []geom.Vec4{
				geom.V4(0, 0, 0.5, 1),
				geom.V4(-0.5, -0.5, -0.5, 1),
				geom.V4(0.5, 0.5, -0.5, 1),
			},
			triangles: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NewClipper().Clip(makePool(t, tt.verts...))
			if got := out.Len() / 3; got != tt.triangles {
				t.Fatalf("triangles = %d, want %d", got, tt.triangles)
			}
			for i := range out.Len() {
				p := out.Position(i)
				if p.Z < 0 || p.Z > p.W {
					t.Errorf("vertex %d = %v outside 0 <= z <= w", i, p)
				}
			}
		})
	}
}

func TestClipInterpolatesAttributes(t *testing.T) {
	// Vertex 0 is behind the near plane; both crossings sit at t = 0.5.
	out := NewClipper().Clip(makePool(t,
		geom.V4(0, 0, -0.5, 1),
		geom.V4(-0.5, -0.5, 0.5, 1),
		geom.V4(0.5, 0.5, 0.5, 1),
	))
	// Polygon order: crossing(v0,v1), v1, v2, crossing(v2,v0). The fan
	// starts at v1: (v1, v2, c20), (v1, c20, c01).
	c01 := out.Vertex(5)
	if got := c01.Vec4(0); got != geom.V4(-0.25, -0.25, 0, 1) {
		t.Errorf("crossing position = %v", got)
	}
	if got := c01.Float(16); got != 0.5 {
		t.Errorf("crossing attribute = %v, want 0.5", got)
	}
	c20 := out.Vertex(2)
	if got := c20.Float(16); got != 1 {
		t.Errorf("second crossing attribute = %v, want 1", got)
	}
}

func TestClipFanStartsAtInputVertex(t *testing.T) {
	tests := []struct {
		name  string
		verts []geom.Vec4
		first float32 // attribute of the first surviving input vertex
	}{
		{
			name: "first vertex behind",
			verts: []geom.Vec4{
				geom.V4(0, 0, -0.5, 1),
				geom.V4(-0.5, -0.5, 0.5, 1),
				geom.V4(0.5, 0.5, 0.5, 1),
			},
			first: 1,
		},
		{
			name: "first two vertices behind",
			verts: []geom.Vec4{
				geom.V4(-0.5, -0.5, -0.5, 1),
				geom.V4(0.5, 0.5, -0.5, 1),
				geom.V4(0, 0, 0.5, 1),
			},
			first: 2,
		},
		{
			name: "first vertex left of the volume",
			verts: []geom.Vec4{
				geom.V4(-3, 0, 0.5, 1),
				geom.V4(0.5, -0.5, 0.5, 1),
				geom.V4(0.5, 0.5, 0.5, 1),
			},
			first: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := makePool(t, tt.verts...)
			out := NewClipper().Clip(in)
			if out.Len() == 0 {
				t.Fatal("no triangles")
			}
			want := in.Vertex(int(tt.first))
			for k := 0; k < out.Len(); k += 3 {
				if got := out.Vertex(k); string(got) != string(want) {
					t.Errorf("triangle %d vertex 0 = %v (attr %v), want input vertex %v",
						k/3, got.Vec4(0), got.Float(16), tt.first)
				}
			}
		})
	}
}

func TestClipMultiplePlanes(t *testing.T) {
	// A large triangle crossing the left, right and top planes.
	c := NewClipper()
	out := c.Clip(makePool(t,
		geom.V4(-4, -0.5, 0.5, 1),
		geom.V4(4, -0.5, 0.5, 1),
		geom.V4(0, 4, 0.5, 1),
	))
	if out.Len() == 0 || out.Len()%3 != 0 {
		t.Fatalf("Len = %d", out.Len())
	}
	for i := range out.Len() {
		if p := out.Position(i); !insideEps(p) {
			t.Errorf("vertex %d = %v outside view volume", i, p)
		}
	}
	if s := c.Stats(); s.Clipped != 1 || s.Out != out.Len()/3 {
		t.Errorf("Stats = %+v", s)
	}
}

func TestClipPreservesOrder(t *testing.T) {
	inside := []geom.Vec4{geom.V4(0, 0, 0.5, 1), geom.V4(0.5, 0, 0.5, 1), geom.V4(0, 0.5, 0.5, 1)}
	outside := []geom.Vec4{geom.V4(5, 0, 0.5, 1), geom.V4(6, 0, 0.5, 1), geom.V4(5, 1, 0.5, 1)}
	var verts []geom.Vec4
	verts = append(verts, inside...)
	verts = append(verts, outside...)
	verts = append(verts, inside...)
	verts = append(verts, geom.V4(0, 0, 0.5, 1)) // stray vertex

	c := NewClipper()
	out := c.Clip(makePool(t, verts...))
	if out.Len() != 6 {
		t.Fatalf("Len = %d, want 6", out.Len())
	}
	// Attribute carries the input index.
	if out.Vertex(0).Float(16) != 0 || out.Vertex(3).Float(16) != 6 {
		t.Error("triangles reordered")
	}
	if s := c.Stats(); s.In != 3 || s.Culled != 1 {
		t.Errorf("Stats = %+v", s)
	}
}

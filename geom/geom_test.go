// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import (
	"math"
	"testing"
)

const eps = 1e-5

func near(a, b float32) bool { return math.Abs(float64(a-b)) <= eps }

func nearVec4(a, b Vec4) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z) && near(a.W, b.W)
}

func TestMat4MulIdentity(t *testing.T) {
	m := Translate(V3(1, 2, 3)).Mul(Scale(V3(2, 2, 2)))
	if got := m.Mul(Identity()); got != m {
		t.Errorf("m·I = %v, want %v", got, m)
	}
	if got := Identity().Mul(m); got != m {
		t.Errorf("I·m = %v, want %v", got, m)
	}
}

func TestMat4MulVec4(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		v    Vec4
		want Vec4
	}{
		{"identity", Identity(), V4(1, 2, 3, 1), V4(1, 2, 3, 1)},
		{"translate point", Translate(V3(1, -1, 2)), V4(1, 1, 1, 1), V4(2, 0, 3, 1)},
		{"translate direction", Translate(V3(1, -1, 2)), V4(1, 1, 1, 0), V4(1, 1, 1, 0)},
		{"scale", Scale(V3(2, 3, 4)), V4(1, 1, 1, 1), V4(2, 3, 4, 1)},
		{"rotate z 90", Rotate(V3(0, 0, 1), math.Pi/2), V4(1, 0, 0, 1), V4(0, 1, 0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.MulVec4(tt.v); !nearVec4(got, tt.want) {
				t.Errorf("MulVec4() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRowVectorMatchesTranspose(t *testing.T) {
	m := Rotate(V3(1, 1, 0), 0.7).Mul(Translate(V3(3, 4, 5)))
	v := V4(0.5, -2, 7, 1)
	a := v.MulMat4(m)
	b := m.Transpose().MulVec4(v)
	if !nearVec4(a, b) {
		t.Errorf("v·M = %v, Mᵀ·v = %v", a, b)
	}
}

func TestPerspectiveLHDepthRange(t *testing.T) {
	const n, f = 0.5, 100
	p := PerspectiveLH(DegToRad(60), 16.0/9.0, n, f)

	nearPt := p.MulPoint(V3(0, 0, n))
	if !near(nearPt.Z/nearPt.W, 0) {
		t.Errorf("near plane depth = %v, want 0", nearPt.Z/nearPt.W)
	}
	farPt := p.MulPoint(V3(0, 0, f))
	if !near(farPt.Z/farPt.W, 1) {
		t.Errorf("far plane depth = %v, want 1", farPt.Z/farPt.W)
	}
	if !near(farPt.W, f) {
		t.Errorf("clip w = %v, want view depth %v", farPt.W, f)
	}
}

func TestLookAtLH(t *testing.T) {
	v := LookAtLH(V3(0, 0, -5), V3(0, 0, 0), V3(0, 1, 0))
	got := v.MulPoint(V3(0, 0, 0))
	if !nearVec4(got, V4(0, 0, 5, 1)) {
		t.Errorf("origin in view space = %v, want (0,0,5,1)", got)
	}
	got = v.MulPoint(V3(1, 0, 0))
	if !nearVec4(got, V4(1, 0, 5, 1)) {
		t.Errorf("+x in view space = %v, want (1,0,5,1)", got)
	}
}

func TestReflectRefract(t *testing.T) {
	n := V3(0, 1, 0)
	if got := Reflect(V3(1, -1, 0), n); got != V3(1, 1, 0) {
		t.Errorf("Reflect = %v, want (1,1,0)", got)
	}
	// eta 1 passes straight through.
	i := V3(1, -1, 0).Normalize()
	got := Refract(i, n, 1)
	if !near(got.X, i.X) || !near(got.Y, i.Y) {
		t.Errorf("Refract(eta=1) = %v, want %v", got, i)
	}
	// Grazing ray into a less dense medium is totally reflected.
	if got := Refract(V3(1, -0.01, 0).Normalize(), n, 1.5); got != (Vec3{}) {
		t.Errorf("Refract(TIR) = %v, want zero", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float32
	}{
		{-1, 0, 1, 0},
		{0.5, 0, 1, 0.5},
		{2, 0, 1, 1},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
	if got := Clamp(7, 0, 3); got != 3 {
		t.Errorf("Clamp[int] = %d, want 3", got)
	}
	if got := Max3(1, 9, 4); got != 9 {
		t.Errorf("Max3 = %d, want 9", got)
	}
	if got := Min3(1.5, -9.0, 4.0); got != -9 {
		t.Errorf("Min3 = %v, want -9", got)
	}
}

func TestBounds2i(t *testing.T) {
	a := Bounds2i{0, 0, 4, 4}
	b := Bounds2i{2, 2, 6, 6}
	if got := a.Intersect(b); got != (Bounds2i{2, 2, 4, 4}) {
		t.Errorf("Intersect = %v", got)
	}
	if !a.Intersects(b) {
		t.Error("a should intersect b")
	}
	if a.Intersects(Bounds2i{4, 0, 8, 4}) {
		t.Error("touching bounds should not intersect")
	}
	if got := a.Area(); got != 16 {
		t.Errorf("Area = %d, want 16", got)
	}
	if (Bounds2i{3, 3, 1, 1}).Area() != 0 {
		t.Error("inverted bounds should have zero area")
	}
	if !(Bounds2i{1, 1, 2, 2}).Inside(a) {
		t.Error("inner bounds should be inside")
	}
}

func TestBounds3(t *testing.T) {
	a := Bounds3{V3(0, 0, 0), V3(1, 1, 1)}
	if !a.Contains(V3(0.5, 1, 0)) {
		t.Error("Contains on boundary should be true")
	}
	if a.Intersects(Bounds3{V3(2, 2, 2), V3(3, 3, 3)}) {
		t.Error("disjoint boxes intersect")
	}
	if !(Bounds3{V3(0.2, 0.2, 0.2), V3(0.8, 0.8, 0.8)}).Inside(a) {
		t.Error("inner box should be inside")
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import (
	"math"

	"golang.org/x/image/math/f32"
)

// Mat4 is a 4x4 row-major matrix. Element (r, c) lives at index r*4+c.
type Mat4 f32.Mat4

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns element (r, c).
func (m Mat4) At(r, c int) float32 { return m[r*4+c] }

// Mul returns the matrix product m·o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for r := range 4 {
		for c := range 4 {
			out[r*4+c] = m[r*4+0]*o[0*4+c] +
				m[r*4+1]*o[1*4+c] +
				m[r*4+2]*o[2*4+c] +
				m[r*4+3]*o[3*4+c]
		}
	}
	return out
}

// MulVec4 multiplies the column vector v by m (M·v).
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3]*v.W,
		m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7]*v.W,
		m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11]*v.W,
		m[12]*v.X + m[13]*v.Y + m[14]*v.Z + m[15]*v.W,
	}
}

// MulPoint transforms p as a point (w = 1) and returns the clip-space
// result without dividing by w.
func (m Mat4) MulPoint(p Vec3) Vec4 { return m.MulVec4(p.Vec4(1)) }

// Transpose returns the transpose of m.
func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for r := range 4 {
		for c := range 4 {
			out[c*4+r] = m[r*4+c]
		}
	}
	return out
}

// Add returns the element-wise sum.
func (m Mat4) Add(o Mat4) Mat4 {
	for i := range m {
		m[i] += o[i]
	}
	return m
}

// Sub returns the element-wise difference.
func (m Mat4) Sub(o Mat4) Mat4 {
	for i := range m {
		m[i] -= o[i]
	}
	return m
}

// Translate returns a translation matrix.
func Translate(t Vec3) Mat4 {
	return Mat4{
		1, 0, 0, t.X,
		0, 1, 0, t.Y,
		0, 0, 1, t.Z,
		0, 0, 0, 1,
	}
}

// Scale returns a scaling matrix.
func Scale(s Vec3) Mat4 {
	return Mat4{
		s.X, 0, 0, 0,
		0, s.Y, 0, 0,
		0, 0, s.Z, 0,
		0, 0, 0, 1,
	}
}

// Rotate returns a rotation of radians about axis. The axis does not need
// to be normalized; a zero axis yields the identity.
func Rotate(axis Vec3, radians float32) Mat4 {
	a := axis.Normalize()
	if a == (Vec3{}) {
		return Identity()
	}
	s := float32(math.Sin(float64(radians)))
	c := float32(math.Cos(float64(radians)))
	t := 1 - c
	return Mat4{
		t*a.X*a.X + c, t*a.X*a.Y - s*a.Z, t*a.X*a.Z + s*a.Y, 0,
		t*a.X*a.Y + s*a.Z, t*a.Y*a.Y + c, t*a.Y*a.Z - s*a.X, 0,
		t*a.X*a.Z - s*a.Y, t*a.Y*a.Z + s*a.X, t*a.Z*a.Z + c, 0,
		0, 0, 0, 1,
	}
}

// PerspectiveLH returns a left-handed perspective projection with a
// vertical field of view fovY (radians) and a [0, 1] depth range. Points on
// the near plane map to z = 0 and points on the far plane to z = w.
func PerspectiveLH(fovY, aspect, near, far float32) Mat4 {
	ys := 1 / float32(math.Tan(float64(fovY)/2))
	xs := ys / aspect
	q := far / (far - near)
	return Mat4{
		xs, 0, 0, 0,
		0, ys, 0, 0,
		0, 0, q, -near * q,
		0, 0, 1, 0,
	}
}

// OrthographicLH returns a left-handed orthographic projection of the box
// [-width/2, width/2] x [-height/2, height/2] x [near, far] with a [0, 1]
// depth range.
func OrthographicLH(width, height, near, far float32) Mat4 {
	q := 1 / (far - near)
	return Mat4{
		2 / width, 0, 0, 0,
		0, 2 / height, 0, 0,
		0, 0, q, -near * q,
		0, 0, 0, 1,
	}
}

// LookAtLH returns a left-handed view matrix looking from eye toward
// target.
func LookAtLH(eye, target, up Vec3) Mat4 {
	z := target.Sub(eye).Normalize()
	x := up.Cross(z).Normalize()
	y := z.Cross(x)
	return Mat4{
		x.X, x.Y, x.Z, -x.Dot(eye),
		y.X, y.Y, y.Z, -y.Dot(eye),
		z.X, z.Y, z.Z, -z.Dot(eye),
		0, 0, 0, 1,
	}
}

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 { return deg * (math.Pi / 180) }

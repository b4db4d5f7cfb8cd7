// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import (
	"math"

	"golang.org/x/image/math/f32"
)

// Vec2 is a two component float vector.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a three component float vector.
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 is a four component float vector. It doubles as an RGBA color
// (X=R, Y=G, Z=B, W=A) in shading code.
type Vec4 struct {
	X, Y, Z, W float32
}

// V2 is shorthand for Vec2{x, y}.
func V2(x, y float32) Vec2 { return Vec2{x, y} }

// V3 is shorthand for Vec3{x, y, z}.
func V3(x, y, z float32) Vec3 { return Vec3{x, y, z} }

// V4 is shorthand for Vec4{x, y, z, w}.
func V4(x, y, z, w float32) Vec4 { return Vec4{x, y, z, w} }

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul returns the component-wise product.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// Scale returns v*s.
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Floor rounds both components toward negative infinity.
func (v Vec2) Floor() Vec2 {
	return Vec2{float32(math.Floor(float64(v.X))), float32(math.Floor(float64(v.Y)))}
}

// Array converts v to an x/image f32 vector.
func (v Vec2) Array() f32.Vec2 { return f32.Vec2{v.X, v.Y} }

// Add returns v+o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v-o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Mul returns the component-wise product.
func (v Vec3) Mul(o Vec3) Vec3 { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }

// Scale returns v*s.
func (v Vec3) Scale(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product v×o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float32 { return float32(math.Sqrt(float64(v.Dot(v)))) }

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// XY drops the Z component.
func (v Vec3) XY() Vec2 { return Vec2{v.X, v.Y} }

// Vec4 extends v with the given W.
func (v Vec3) Vec4(w float32) Vec4 { return Vec4{v.X, v.Y, v.Z, w} }

// Array converts v to an x/image f32 vector.
func (v Vec3) Array() f32.Vec3 { return f32.Vec3{v.X, v.Y, v.Z} }

// Add returns v+o.
func (v Vec4) Add(o Vec4) Vec4 { return Vec4{v.X + o.X, v.Y + o.Y, v.Z + o.Z, v.W + o.W} }

// Sub returns v-o.
func (v Vec4) Sub(o Vec4) Vec4 { return Vec4{v.X - o.X, v.Y - o.Y, v.Z - o.Z, v.W - o.W} }

// Mul returns the component-wise product.
func (v Vec4) Mul(o Vec4) Vec4 { return Vec4{v.X * o.X, v.Y * o.Y, v.Z * o.Z, v.W * o.W} }

// Scale returns v*s.
func (v Vec4) Scale(s float32) Vec4 { return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s} }

// Dot returns the four component dot product.
func (v Vec4) Dot(o Vec4) float32 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z + v.W*o.W }

// Length returns the Euclidean length of v.
func (v Vec4) Length() float32 { return float32(math.Sqrt(float64(v.Dot(v)))) }

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec4) Normalize() Vec4 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// XYZ drops the W component.
func (v Vec4) XYZ() Vec3 { return Vec3{v.X, v.Y, v.Z} }

// XY returns the first two components.
func (v Vec4) XY() Vec2 { return Vec2{v.X, v.Y} }

// Lerp interpolates between v and o by t.
func (v Vec4) Lerp(o Vec4, t float32) Vec4 {
	return Vec4{
		Lerp(v.X, o.X, t),
		Lerp(v.Y, o.Y, t),
		Lerp(v.Z, o.Z, t),
		Lerp(v.W, o.W, t),
	}
}

// MulMat4 multiplies v as a row vector by m (v·M).
func (v Vec4) MulMat4(m Mat4) Vec4 {
	return Vec4{
		v.X*m[0] + v.Y*m[4] + v.Z*m[8] + v.W*m[12],
		v.X*m[1] + v.Y*m[5] + v.Z*m[9] + v.W*m[13],
		v.X*m[2] + v.Y*m[6] + v.Z*m[10] + v.W*m[14],
		v.X*m[3] + v.Y*m[7] + v.Z*m[11] + v.W*m[15],
	}
}

// Array converts v to an x/image f32 vector.
func (v Vec4) Array() f32.Vec4 { return f32.Vec4{v.X, v.Y, v.Z, v.W} }

// FromArray4 converts an x/image f32 vector to a Vec4.
func FromArray4(a f32.Vec4) Vec4 { return Vec4{a[0], a[1], a[2], a[3]} }

// Reflect reflects the incident vector about the normal n using the GLSL
// definition i - 2·dot(n, i)·n. n must be normalized.
func Reflect(i, n Vec3) Vec3 {
	return i.Sub(n.Scale(2 * n.Dot(i)))
}

// Refract returns the refraction vector for incident vector i, surface
// normal n and ratio of indices of refraction eta, following GLSL. Total
// internal reflection yields the zero vector.
func Refract(i, n Vec3, eta float32) Vec3 {
	ni := n.Dot(i)
	k := 1 - eta*eta*(1-ni*ni)
	if k < 0 {
		return Vec3{}
	}
	return i.Scale(eta).Sub(n.Scale(eta*ni + float32(math.Sqrt(float64(k)))))
}

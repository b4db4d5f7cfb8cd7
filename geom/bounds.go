// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

// Bounds2i is an integer rectangle with an inclusive Min and an exclusive
// Max corner.
type Bounds2i struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Empty reports whether b covers no cells.
func (b Bounds2i) Empty() bool { return b.MinX >= b.MaxX || b.MinY >= b.MaxY }

// Area returns the number of cells covered by b.
func (b Bounds2i) Area() int {
	if b.Empty() {
		return 0
	}
	return (b.MaxX - b.MinX) * (b.MaxY - b.MinY)
}

// Contains reports whether cell (x, y) lies inside b.
func (b Bounds2i) Contains(x, y int) bool {
	return x >= b.MinX && x < b.MaxX && y >= b.MinY && y < b.MaxY
}

// Intersect returns the overlap of b and o, which may be empty.
func (b Bounds2i) Intersect(o Bounds2i) Bounds2i {
	return Bounds2i{
		MinX: Max(b.MinX, o.MinX),
		MinY: Max(b.MinY, o.MinY),
		MaxX: Min(b.MaxX, o.MaxX),
		MaxY: Min(b.MaxY, o.MaxY),
	}
}

// Intersects reports whether b and o overlap.
func (b Bounds2i) Intersects(o Bounds2i) bool { return !b.Intersect(o).Empty() }

// Inside reports whether b lies entirely within o.
func (b Bounds2i) Inside(o Bounds2i) bool {
	return b.MinX >= o.MinX && b.MinY >= o.MinY && b.MaxX <= o.MaxX && b.MaxY <= o.MaxY
}

// Bounds3 is an axis-aligned box with inclusive corners.
type Bounds3 struct {
	Min, Max Vec3
}

// Intersects reports whether b and o overlap.
func (b Bounds3) Intersects(o Bounds3) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y &&
		b.Min.Z <= o.Max.Z && b.Max.Z >= o.Min.Z
}

// Inside reports whether b lies entirely within o.
func (b Bounds3) Inside(o Bounds3) bool {
	return b.Min.X >= o.Min.X && b.Max.X <= o.Max.X &&
		b.Min.Y >= o.Min.Y && b.Max.Y <= o.Max.Y &&
		b.Min.Z >= o.Min.Z && b.Max.Z <= o.Max.Z
}

// Contains reports whether p lies inside b.
func (b Bounds3) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

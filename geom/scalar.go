// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import "golang.org/x/exp/constraints"

// Number is any integer or floating point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// Clamp restricts v to [lo, hi].
func Clamp[T Number](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Min returns the smaller of a and b.
func Min[T Number](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max[T Number](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Min3 returns the smallest of a, b and c.
func Min3[T Number](a, b, c T) T { return Min(Min(a, b), c) }

// Max3 returns the largest of a, b and c.
func Max3[T Number](a, b, c T) T { return Max(Max(a, b), c) }

// Lerp interpolates between a and b by t.
func Lerp(a, b, t float32) float32 { return a + (b-a)*t }

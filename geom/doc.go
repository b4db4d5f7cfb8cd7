// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package geom is the geometry kernel of the software pipeline.
//
// It provides small value types for vectors and matrices together with the
// transform and projection builders that vertex shaders need to produce
// clip-space positions. Everything here is pure and allocation free.
//
// # Conventions
//
// Matrices are row-major and multiply column vectors: m.MulVec4(v) computes
// M·v. The projection builders target a left-handed view space and a
// [0, 1] depth range, so a clip-space vertex is visible when
//
//	-w <= x <= w
//	-w <= y <= w
//	 0 <= z <= w
//
// Vec4.MulMat4 is provided for shaders written in the row-vector style
// (v·M); it is equivalent to m.Transpose().MulVec4(v).
package geom

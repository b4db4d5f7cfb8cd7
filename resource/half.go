// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import "math"

const (
	f32ExpBias = 127
	f16ExpBias = 15

	f32Inf = 0x7f800000

	// Smallest float32 that rounds to +Inf in binary16 (65520).
	f16Overflow = 0x477ff000

	// Smallest normal binary16 (2^-14) as float32 bits.
	f16MinNormal = 0x38800000

	// 0.5 scaled so that adding it to a subnormal leaves the binary16
	// mantissa in the low bits with round-to-nearest-even applied.
	f16DenormMagic = ((f32ExpBias - f16ExpBias) + (23 - 10) + 1) << 23
)

// halfFromFloat32 converts f to IEEE-754 binary16 with round to nearest
// even. NaN stays NaN and overflow saturates to infinity.
func halfFromFloat32(f float32) uint16 {
	u := math.Float32bits(f)
	sign := uint16(u>>16) & 0x8000
	u &^= 0x80000000

	switch {
	case u >= f32Inf:
		if u > f32Inf {
			return sign | 0x7e00
		}
		return sign | 0x7c00
	case u >= f16Overflow:
		return sign | 0x7c00
	case u < f16MinNormal:
		v := math.Float32frombits(u) + math.Float32frombits(f16DenormMagic)
		return sign | uint16(math.Float32bits(v)-f16DenormMagic)
	default:
		odd := (u >> 13) & 1
		u -= (f32ExpBias - f16ExpBias) << 23
		u += 0xfff + odd
		return sign | uint16(u>>13)
	}
}

// halfToFloat32 widens a binary16 value to float32 exactly.
func halfToFloat32(h uint16) float32 {
	sign := uint32(h&0x8000) << 16
	exp := uint32(h>>10) & 0x1f
	mant := uint32(h & 0x3ff)

	switch exp {
	case 0:
		if mant == 0 {
			return math.Float32frombits(sign)
		}
		v := float32(mant) * (1.0 / (1 << 24))
		return math.Float32frombits(sign | math.Float32bits(v))
	case 0x1f:
		return math.Float32frombits(sign | f32Inf | mant<<13)
	}
	return math.Float32frombits(sign | (exp+f32ExpBias-f16ExpBias)<<23 | mant<<13)
}

// smallFloat packs a non-negative value into an unsigned float with a
// 5-bit exponent and mantBits of mantissa, truncating the extra binary16
// mantissa bits. Negative values and NaN pack to zero.
func smallFloat(f float32, mantBits uint) uint32 {
	if !(f > 0) {
		return 0
	}
	h := uint32(halfFromFloat32(f))
	return h >> (10 - mantBits)
}

// smallFloatValue widens an unsigned small float packed by smallFloat.
func smallFloatValue(bits uint32, mantBits uint) float32 {
	return halfToFloat32(uint16(bits << (10 - mantBits)))
}

// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package bytealg

import "encoding/binary"

const (
	lsb = 0x0101010101010101
	msb = 0x8080808080808080
	low = 0x7f7f7f7f7f7f7f7f
)

// movemask packs the high bit of each byte of x into the low 8 bits.
func movemask(x uint64) uint64 {
	return ((x >> 7) & lsb) * 0x0102040810204080 >> 56
}

// eqMask sets the high bit of every byte of x that equals c.
//
// Unlike the classic haszero trick this never reports false positives, the
// addition is limited to the low 7 bits so it cannot carry between bytes.
func eqMask(x uint64, c byte) uint64 {
	t := x ^ (lsb * uint64(c))
	return ^(((t & low) + low) | t) & msb
}

// spaceMask sets the high bit of every byte of x that is ASCII whitespace.
func spaceMask(x uint64) uint64 {
	y := x & low
	// The high bit of y+0x77 is set iff y >= 9 and of y+0x72 iff y >= 14.
	r := (y + 0x7777777777777777) &^ (y + 0x7272727272727272) &^ x & msb
	return r | eqMask(x, ' ')
}

// masksGeneric computes the Masks of len(dst) chunks of width bytes using
// 64-bit words. Width must be a multiple of 8 no larger than 64.
//
// It is the portable kernel and the reference the assembly kernels are
// tested against.
func masksGeneric(dst []Masks, src []byte, width int) {
	if width&7 != 0 || width <= 0 || width > 64 {
		panic("bytealg: invalid width")
	}
	_ = src[:len(dst)*width]
	for i := range dst {
		chunk := src[i*width : (i+1)*width]
		var m Masks
		for j := 0; j < width; j += 8 {
			x := binary.LittleEndian.Uint64(chunk[j:])
			s := uint(j)
			m.Newline |= movemask(eqMask(x, '\n')) << s
			m.Space |= movemask(spaceMask(x)) << s
			m.Cont |= movemask(x&^(x<<1)&msb) << s
			m.High |= movemask(x&msb) << s
		}
		dst[i] = m
	}
}

// MasksGeneric is masksGeneric for callers outside of this package
// (benchmarks and tests).
func MasksGeneric(dst []Masks, src []byte, width int) {
	masksGeneric(dst, src, width)
}

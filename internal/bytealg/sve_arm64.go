// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

//go:build arm64 && cgo && wcsve && !purego
// +build arm64,cgo,wcsve,!purego

package bytealg

/*
#cgo CFLAGS: -O2 -march=armv8.2-a+sve

#include <stdint.h>
#include <stddef.h>
#include <arm_sve.h>

// Must match the layout of bytealg.Masks.
typedef struct {
	uint64_t newline;
	uint64_t space;
	uint64_t cont;
	uint64_t high;
} wc_masks;

// wc_sve_bits packs the active lanes of m (at most 64) into a bitmask.
static inline uint64_t wc_sve_bits(svbool_t pg, svbool_t m) {
	uint8_t lanes[256];
	svst1_u8(pg, lanes, svdup_n_u8_z(m, 1));
	uint64_t n = svcntp_b8(pg, pg);
	uint64_t bits = 0;
	for (uint64_t i = 0; i < n; i++) {
		bits |= (uint64_t)lanes[i] << i;
	}
	return bits;
}

// The vector length may be anywhere from 16 to 256 bytes so each 64 byte
// chunk is processed with as many predicated loads as needed.
static void wc_sve_masks(wc_masks *dst, const uint8_t *src, size_t n) {
	const uint64_t step = svcntb();
	for (size_t i = 0; i < n; i++, src += 64) {
		wc_masks m = {0, 0, 0, 0};
		for (uint64_t off = 0; off < 64; off += step) {
			svbool_t pg = svwhilelt_b8_u64(off, 64);
			svuint8_t v = svld1_u8(pg, src + off);

			svbool_t nl = svcmpeq_n_u8(pg, v, '\n');
			svbool_t ws = svorr_b_z(pg,
				svcmple_n_u8(pg, svsub_n_u8_x(pg, v, 9), 4),
				svcmpeq_n_u8(pg, v, ' '));
			svbool_t ct = svcmpeq_n_u8(pg, svand_n_u8_x(pg, v, 0xc0), 0x80);
			svbool_t hi = svcmpge_n_u8(pg, v, 0x80);

			m.newline |= wc_sve_bits(pg, nl) << off;
			m.space |= wc_sve_bits(pg, ws) << off;
			m.cont |= wc_sve_bits(pg, ct) << off;
			m.high |= wc_sve_bits(pg, hi) << off;
		}
		dst[i] = m;
	}
}
*/
import "C"

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// The C and Go definitions must agree.
var _ [unsafe.Sizeof(C.wc_masks{}) - unsafe.Sizeof(Masks{})]struct{}
var _ [unsafe.Sizeof(Masks{}) - unsafe.Sizeof(C.wc_masks{})]struct{}

func masksSVE(dst []Masks, src []byte) {
	C.wc_sve_masks((*C.wc_masks)(unsafe.Pointer(&dst[0])),
		(*C.uint8_t)(unsafe.Pointer(&src[0])), C.size_t(len(dst)))
}

var SVE = &Kernel{
	Name:      "sve",
	Display:   "SVE",
	Width:     64,
	Supported: cpu.ARM64.HasSVE,
	fn:        masksSVE,
}

func sveKernels() []*Kernel {
	return []*Kernel{SVE}
}

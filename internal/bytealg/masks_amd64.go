// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

//go:build amd64 && !purego
// +build amd64,!purego

package bytealg

import "golang.org/x/sys/cpu"

// The assembly kernels process n chunks from src and write n Masks to dst.

//go:noescape
func masksSSE2(dst *Masks, src *byte, n int)

//go:noescape
func masksAVX2(dst *Masks, src *byte, n int)

//go:noescape
func masksAVX512(dst *Masks, src *byte, n int)

var (
	AVX512 = &Kernel{
		Name:      "avx512",
		Display:   "AVX-512",
		Width:     64,
		Supported: cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW,
		fn: func(dst []Masks, src []byte) {
			masksAVX512(&dst[0], &src[0], len(dst))
		},
	}
	AVX2 = &Kernel{
		Name:      "avx2",
		Display:   "AVX2",
		Width:     32,
		Supported: cpu.X86.HasAVX2,
		fn: func(dst []Masks, src []byte) {
			masksAVX2(&dst[0], &src[0], len(dst))
		},
	}
	SSE2 = &Kernel{
		Name:      "sse2",
		Display:   "SSE2",
		Width:     16,
		Supported: cpu.X86.HasSSE2,
		fn: func(dst []Masks, src []byte) {
			masksSSE2(&dst[0], &src[0], len(dst))
		},
	}
)

var kernels = []*Kernel{AVX512, AVX2, SSE2, SWAR}

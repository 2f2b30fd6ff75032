// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

//go:build arm64 && !purego
// +build arm64,!purego

package bytealg

import "golang.org/x/sys/cpu"

//go:noescape
func masksNEON(dst *Masks, src *byte, n int)

// NEON is available on all arm64 CPUs Go supports but check anyway.
var NEON = &Kernel{
	Name:      "neon",
	Display:   "NEON",
	Width:     16,
	Supported: cpu.ARM64.HasASIMD,
	fn: func(dst []Masks, src []byte) {
		masksNEON(&dst[0], &src[0], len(dst))
	},
}

var kernels = append(sveKernels(), NEON, SWAR)

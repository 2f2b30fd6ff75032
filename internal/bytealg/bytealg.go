// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// Package bytealg implements the vector kernels used by wc to classify
// fixed size chunks of bytes.
//
// Every kernel produces one Masks value per chunk. Bit i of each mask
// describes byte i of the chunk, bits at or above the kernel's width are
// always zero.
package bytealg

// Masks holds the per-byte classification of a single chunk.
//
// The layout (four uint64 fields in this order) is shared with the C
// kernels and must not change.
type Masks struct {
	Newline uint64 // byte == '\n'
	Space   uint64 // byte == ' ' || '\t' <= byte <= '\r'
	Cont    uint64 // byte&0xC0 == 0x80 (UTF-8 continuation byte)
	High    uint64 // byte >= 0x80
}

// A Kernel computes the Masks of consecutive Width byte chunks.
type Kernel struct {
	Name      string // lower-case name ("avx2")
	Display   string // human readable name ("AVX2")
	Width     int    // chunk size in bytes
	Supported bool   // the running CPU can execute the kernel
	fn        func(dst []Masks, src []byte)
}

// Masks sets dst[i] to the masks of src[i*k.Width:(i+1)*k.Width].
// It panics if src is shorter than len(dst)*k.Width bytes.
//
// Calling Masks on a Kernel that is not Supported results in an illegal
// instruction fault.
func (k *Kernel) Masks(dst []Masks, src []byte) {
	if len(src) < len(dst)*k.Width {
		panic("bytealg: source shorter than len(dst)*Width")
	}
	if len(dst) > 0 {
		k.fn(dst, src)
	}
}

func (k *Kernel) String() string { return k.Display }

// Kernels returns the kernels compiled for this architecture ordered from
// most to least preferred. The portable SWAR kernel is always last.
func Kernels() []*Kernel {
	return kernels
}

// SWAR is the portable kernel, it is supported on every architecture.
var SWAR = &Kernel{
	Name:      "swar",
	Display:   "SWAR",
	Width:     64,
	Supported: true,
	fn:        masksSWAR,
}

func masksSWAR(dst []Masks, src []byte) {
	masksGeneric(dst, src, 64)
}

// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package wc

import (
	"errors"
	"runtime"
	"strings"
	"sync"

	"github.com/charlievieth/wc/internal/bytealg"
)

// A Backend is one implementation of the counting algorithm: the scalar
// reference implementation or one of the vector kernels.
//
// Using a Backend whose instruction set is not supported by the running CPU
// crashes the program with an illegal instruction. For that reason a
// Backend can only be obtained from Detect, Backends and LookupBackend,
// which only return supported backends, or from UnsafeBackend. The zero
// value is the scalar Backend, which is always supported.
type Backend struct {
	k *bytealg.Kernel // nil for the scalar backend
}

// Name returns the lower-case name of b ("scalar", "swar", "sse2", "avx2",
// "avx512", "neon" or "sve").
func (b Backend) Name() string {
	if b.k == nil {
		return "scalar"
	}
	return b.k.Name
}

// String returns a human readable name of b ("AVX-512").
func (b Backend) String() string {
	if b.k == nil {
		return "Scalar"
	}
	return b.k.Display
}

// Width returns the number of bytes b processes at once.
func (b Backend) Width() int {
	if b.k == nil {
		return 1
	}
	return b.k.Width
}

// Count counts p using backend b.
func (b Backend) Count(p []byte, locale Locale) Counts {
	var c Counter
	c.init(b, locale)
	c.write(p)
	return c.Counts()
}

// NewCounter returns a Counter that uses backend b.
func (b Backend) NewCounter(locale Locale) *Counter {
	c := new(Counter)
	c.init(b, locale)
	return c
}

var detected = sync.OnceValue(detect)

// detect returns the first supported hardware kernel. The SWAR kernel is not
// tied to an instruction set so it is never selected automatically.
func detect() Backend {
	for _, k := range bytealg.Kernels() {
		if k.Supported && k != bytealg.SWAR {
			return Backend{k: k}
		}
	}
	return Backend{}
}

// Detect returns the preferred Backend for the running CPU. Candidates are
// tried in the order AVX-512 (F and BW), AVX2, SSE2, SVE, NEON and the
// scalar Backend is returned if none are supported.
//
// The CPU is only probed once, the result never changes.
func Detect() Backend {
	return detected()
}

// Backends returns all of the backends supported by the running CPU in
// order of preference. The SWAR and scalar backends are always included.
func Backends() []Backend {
	var a []Backend
	for _, k := range bytealg.Kernels() {
		if k.Supported {
			a = append(a, Backend{k: k})
		}
	}
	return append(a, Backend{})
}

// LookupBackend returns the supported Backend named name. The name is
// matched case-insensitively against both Name and String.
func LookupBackend(name string) (Backend, bool) {
	for _, b := range Backends() {
		if strings.EqualFold(name, b.Name()) || strings.EqualFold(name, b.String()) {
			return b, true
		}
	}
	return Backend{}, false
}

// UnsafeBackend returns the Backend named name without checking if the
// running CPU supports it. It is intended for tests and benchmarks that
// already verified support through other means.
//
// Counting with an unsupported Backend crashes the program. An error is
// only returned if the backend does not exist for the architecture the
// program was compiled for.
func UnsafeBackend(name string) (Backend, error) {
	if strings.EqualFold(name, "scalar") {
		return Backend{}, nil
	}
	for _, k := range bytealg.Kernels() {
		if strings.EqualFold(name, k.Name) || strings.EqualFold(name, k.Display) {
			return Backend{k: k}, nil
		}
	}
	return Backend{}, errors.New("wc: unknown backend for " + runtime.GOARCH + ": " +
		strings.TrimSpace(name))
}

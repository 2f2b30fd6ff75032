//go:build arm64 && !(cgo && wcsve) && !purego
// +build arm64
// +build !cgo !wcsve
// +build !purego

package bytealg

// The SVE kernel is only built with cgo and the "wcsve" build tag since
// it requires a C compiler with SVE support.
func sveKernels() []*Kernel { return nil }

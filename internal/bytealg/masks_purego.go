//go:build purego || !(amd64 || arm64)
// +build purego !amd64,!arm64

package bytealg

// No assembly kernels: only the portable SWAR kernel is available.
var kernels = []*Kernel{SWAR}

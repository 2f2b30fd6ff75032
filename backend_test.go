// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package wc

import (
	"runtime"
	"strings"
	"testing"
)

func TestDetect(t *testing.T) {
	d := Detect()
	if d != Detect() {
		t.Fatal("Detect returned different backends")
	}
	if d.Name() == "swar" {
		t.Error("Detect should never select the SWAR backend")
	}
	found := false
	for _, b := range Backends() {
		if b == d {
			found = true
		}
	}
	if !found {
		t.Errorf("Detect() = %s: not in Backends(): %v", d, Backends())
	}
	t.Logf("GOARCH: %s Detect: %s", runtime.GOARCH, d)
}

func TestDetectPreferred(t *testing.T) {
	want := Backend{}
	for _, b := range Backends() {
		if b.Name() != "swar" {
			want = b
			break
		}
	}
	if got := Detect(); got != want {
		t.Errorf("Detect() = %s; want: %s", got, want)
	}
}

func TestBackends(t *testing.T) {
	bs := Backends()
	if len(bs) < 2 {
		t.Fatalf("Backends() = %v; want at least SWAR and Scalar", bs)
	}
	if b := bs[len(bs)-1]; b != (Backend{}) || b.Name() != "scalar" || b.Width() != 1 {
		t.Errorf("last backend = %s; want: Scalar", b)
	}
	if b := bs[len(bs)-2]; b.Name() != "swar" || b.Width() != 64 {
		t.Errorf("next to last backend = %s; want: SWAR", b)
	}
	seen := make(map[string]bool)
	for _, b := range bs {
		if seen[b.Name()] {
			t.Errorf("duplicate backend: %s", b.Name())
		}
		seen[b.Name()] = true
		if b.Name() != strings.ToLower(b.Name()) {
			t.Errorf("Name() = %q: must be lower-case", b.Name())
		}
		switch b.Width() {
		case 1, 16, 32, 64:
		default:
			t.Errorf("%s: invalid width: %d", b, b.Width())
		}
	}
}

func TestLookupBackend(t *testing.T) {
	for _, b := range Backends() {
		for _, name := range []string{b.Name(), b.String(), strings.ToUpper(b.Name())} {
			got, ok := LookupBackend(name)
			if !ok || got != b {
				t.Errorf("LookupBackend(%q) = %s, %t; want: %s, true", name, got, ok, b)
			}
		}
	}
	if b, ok := LookupBackend("no-such-backend"); ok {
		t.Errorf("LookupBackend(%q) = %s, %t; want: Scalar, false", "no-such-backend", b, ok)
	}
}

func TestUnsafeBackend(t *testing.T) {
	for _, name := range []string{"scalar", "Scalar", "swar"} {
		if _, err := UnsafeBackend(name); err != nil {
			t.Errorf("UnsafeBackend(%q): %v", name, err)
		}
	}
	for _, b := range Backends() {
		got, err := UnsafeBackend(b.Name())
		if err != nil || got != b {
			t.Errorf("UnsafeBackend(%q) = %s, %v; want: %s, nil", b.Name(), got, err, b)
		}
	}
	_, err := UnsafeBackend("vax")
	if err == nil {
		t.Fatal("UnsafeBackend(\"vax\"): expected an error")
	}
	if !strings.Contains(err.Error(), runtime.GOARCH) {
		t.Errorf("error %q does not name GOARCH %q", err, runtime.GOARCH)
	}
}

func TestUnsafeBackendArch(t *testing.T) {
	var names []string
	switch runtime.GOARCH {
	case "amd64":
		names = []string{"sse2", "avx2", "avx512"}
	case "arm64":
		names = []string{"neon"}
	}
	for _, name := range names {
		b, err := UnsafeBackend(name)
		if err != nil {
			// The purego build tag disables the assembly kernels.
			t.Skipf("UnsafeBackend(%q): %v", name, err)
		}
		if b.Name() != name {
			t.Errorf("UnsafeBackend(%q).Name() = %q", name, b.Name())
		}
	}
}

func TestBackendString(t *testing.T) {
	var b Backend
	if s := b.String(); s != "Scalar" {
		t.Errorf("Backend{}.String() = %q; want: %q", s, "Scalar")
	}
	if s := b.Name(); s != "scalar" {
		t.Errorf("Backend{}.Name() = %q; want: %q", s, "scalar")
	}
}

// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package wc

import (
	"testing"

	"github.com/charlievieth/wc/internal/test"
)

func TestCountFuzz(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b Backend) {
		test.CountFuzz(t, countFunc(b))
	})
}

func TestCounterSplitFuzz(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b Backend) {
		test.SplitFuzz(t, splitFunc(b))
	})
}

// FuzzCount checks that every backend agrees with the reference
// implementation and with each other.
func FuzzCount(f *testing.F) {
	f.Add([]byte("hello world\n"))
	f.Add([]byte("h\xc3\xa9llo w\xc3\xb6rld\n"))
	f.Add([]byte("\xff\n"))
	f.Add([]byte("a\xe2\x80\x83b\xf0\x9f\x92"))
	f.Add([]byte{})
	backends := Backends()
	f.Fuzz(func(t *testing.T, p []byte) {
		for _, isUTF8 := range []bool{true, false} {
			want := test.Reference(p, isUTF8)
			for _, b := range backends {
				got := test.Counts(b.Count(p, localeOf(isUTF8)))
				if got != want {
					t.Fatalf("%s: Count(%q, utf8=%t) = %s; want: %s", b, p, isUTF8, got, want)
				}
			}
			test.Invariants(t, p, isUTF8, want)

			// Split at every third byte to exercise the carry.
			c := Detect().NewCounter(localeOf(isUTF8))
			for i := 0; i < len(p); i += 3 {
				c.Write(p[i:min(i+3, len(p))])
			}
			if got := test.Counts(c.Counts()); got != want {
				t.Fatalf("Counter(%q, utf8=%t) = %s; want: %s", p, isUTF8, got, want)
			}
		}
	})
}

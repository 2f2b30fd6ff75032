// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package wc

import (
	"testing"

	"github.com/charlievieth/wc/internal/test"
)

func TestIncompleteSuffixLen(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a", 0},
		{"\xe2", 1},
		{"\xe2\x80", 2},
		{"\xe2\x80\x83", 0},
		{"a\xc3", 1},
		{"\xf0\x9f\x92", 3},
		{"\xf0\x9f\x92\xa9", 0},
		{"\xf0\x9f\x92\xa9\xa9", 0},
		{"\x80", 0},
		{"\x80\x80\x80", 0},
		{"\x80\x80\x80\x80", 0},
		{"\xc3\x80\x80", 0},
		{"\xff", 0},
		{"\xf5\x80", 0},
		{"\xed\xa0", 2}, // completed as invalid by the next segment
	}
	for _, test := range tests {
		if got := incompleteSuffixLen([]byte(test.in)); got != test.want {
			t.Errorf("incompleteSuffixLen(%q) = %d; want: %d", test.in, got, test.want)
		}
	}
}

func TestCountScalar(t *testing.T) {
	test.Count(t, func(p []byte, isUTF8 bool) test.Counts {
		c, incomplete, _ := countScalar(p, localeOf(isUTF8), true)
		if !isUTF8 && incomplete != 0 {
			t.Errorf("countScalar(%q, SingleByte): incomplete = %d; want: 0", p, incomplete)
		}
		return test.Counts(c)
	})
}

// An invalid byte never separates or starts a word, and a newline after it
// is still a line.
func TestCountScalarInvalidNewline(t *testing.T) {
	c, incomplete, seen := countScalar([]byte{0xFF, '\n'}, UTF8, true)
	want := Counts{Lines: 1, Words: 0, Bytes: 2, Chars: 1}
	if c != want || incomplete != 0 || !seen {
		t.Errorf("countScalar = %+v, %d, %t; want: %+v, 0, true", c, incomplete, seen, want)
	}
}

func TestCountScalarState(t *testing.T) {
	tests := []struct {
		in       string
		seen     bool
		words    int
		seenOut  bool
		incomplt int
	}{
		{"b c", false, 1, false, 0},
		{"b c", true, 2, false, 0},
		{"", false, 0, false, 0},
		{"", true, 0, true, 0},
		{" ", false, 0, true, 0},
		{"\xff", true, 0, true, 0},
		{"\xff", false, 0, false, 0},
		{"x\xe2\x80", true, 1, false, 2},
		{"\xe3\x80\x80", false, 0, true, 0}, // U+3000
	}
	for _, test := range tests {
		c, incomplete, seen := countScalar([]byte(test.in), UTF8, test.seen)
		if c.Words != test.words || seen != test.seenOut || incomplete != test.incomplt {
			t.Errorf("countScalar(%q, %t) = %d words, %t, %d; want: %d words, %t, %d",
				test.in, test.seen, c.Words, seen, incomplete,
				test.words, test.seenOut, test.incomplt)
		}
	}
}

func TestCountScalarChunkBoundaries(t *testing.T) {
	if testing.Short() {
		t.Skip("short test")
	}
	test.ChunkBoundaries(t, func(p []byte, isUTF8 bool) test.Counts {
		c, _, _ := countScalar(p, localeOf(isUTF8), true)
		return test.Counts(c)
	})
}

// Package test contains test suites shared by the implementations of the
// wc counting algorithm.
//
// It does not import the wc package (that would cause an import cycle with
// the wc tests) so it has its own copy of the Counts type.
package test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"
)

// Counts mirrors wc.Counts.
type Counts struct {
	Lines int
	Words int
	Bytes int
	Chars int
}

func (c Counts) String() string {
	return fmt.Sprintf("{Lines:%d Words:%d Bytes:%d Chars:%d}", c.Lines, c.Words, c.Bytes, c.Chars)
}

// CountFunc counts p in the UTF-8 locale if utf8 is true and the
// SingleByte locale otherwise.
type CountFunc func(p []byte, utf8 bool) Counts

// Reference is a simple, slow, implementation of the counting rules that
// the optimized implementations are checked against.
func Reference(p []byte, isUTF8 bool) Counts {
	c := Counts{Bytes: len(p)}
	inWord := false
	if !isUTF8 {
		for _, b := range p {
			if b == '\n' {
				c.Lines++
			}
			if b == ' ' || '\t' <= b && b <= '\r' {
				inWord = false
			} else if !inWord {
				c.Words++
				inWord = true
			}
		}
		c.Chars = len(p)
		return c
	}
	for len(p) > 0 {
		r, n := utf8.DecodeRune(p)
		p = p[n:]
		if r == utf8.RuneError && n == 1 {
			continue // invalid bytes are ignored
		}
		c.Chars++
		if r == '\n' {
			c.Lines++
		}
		if unicode.IsSpace(r) {
			inWord = false
		} else if !inWord {
			c.Words++
			inWord = true
		}
	}
	return c
}

type countTest struct {
	in         string
	singleByte Counts
	utf8       Counts
}

var countTests = []countTest{
	{"", Counts{}, Counts{}},
	{"a", Counts{0, 1, 1, 1}, Counts{0, 1, 1, 1}},
	{"\n", Counts{1, 0, 1, 1}, Counts{1, 0, 1, 1}},
	{"hello world", Counts{0, 2, 11, 11}, Counts{0, 2, 11, 11}},
	{"hello world\n", Counts{1, 2, 12, 12}, Counts{1, 2, 12, 12}},
	{"  leading and trailing  ", Counts{0, 3, 24, 24}, Counts{0, 3, 24, 24}},
	{"\t\v\f\r\n ", Counts{1, 0, 6, 6}, Counts{1, 0, 6, 6}},
	{"a\x00b", Counts{0, 1, 3, 3}, Counts{0, 1, 3, 3}},
	{"one\ntwo\nthree\n", Counts{3, 3, 14, 14}, Counts{3, 3, 14, 14}},

	// Invalid bytes join words.
	{"hello\xffworld", Counts{0, 1, 11, 11}, Counts{0, 1, 11, 10}},
	{"\x80", Counts{0, 1, 1, 1}, Counts{0, 0, 1, 0}},
	{"\xff\n", Counts{1, 1, 2, 2}, Counts{1, 0, 2, 1}},
	{"\xff \xff", Counts{0, 2, 3, 3}, Counts{0, 0, 3, 1}},
	{"a \xff b", Counts{0, 3, 5, 5}, Counts{0, 2, 5, 4}},

	// Truncated sequences.
	{"\xf0\x9f\x92", Counts{0, 1, 3, 3}, Counts{0, 0, 3, 0}},
	{"a\xf0\x9f\x92", Counts{0, 1, 4, 4}, Counts{0, 1, 4, 1}},
	{"\xf0\x9f\x92a", Counts{0, 1, 4, 4}, Counts{0, 1, 4, 1}},
	{"\xe2\x80", Counts{0, 1, 2, 2}, Counts{0, 0, 2, 0}},

	// Overlong encodings and surrogate halves.
	{"\xc0\xaf", Counts{0, 1, 2, 2}, Counts{0, 0, 2, 0}},
	{"\xe0\x80\xaf", Counts{0, 1, 3, 3}, Counts{0, 0, 3, 0}},
	{"\xed\xa0\x80", Counts{0, 1, 3, 3}, Counts{0, 0, 3, 0}},
	{"\xf4\x90\x80\x80", Counts{0, 1, 4, 4}, Counts{0, 0, 4, 0}},

	// Orphaned continuation bytes. A run of them is never carried: any
	// complete character before it is counted and the run is invalid.
	{"\x80\x80\x80\x80\x80", Counts{0, 1, 5, 5}, Counts{0, 0, 5, 0}},
	{"\xf0\x9f\x92\xa9\xa9", Counts{0, 1, 5, 5}, Counts{0, 1, 5, 1}},

	// Multi-byte characters.
	{"héllo wörld", Counts{0, 2, 13, 13}, Counts{0, 2, 13, 11}},
	{"\U0001F4A9", Counts{0, 1, 4, 4}, Counts{0, 1, 4, 1}},
	{"日本語 テキスト", Counts{0, 2, 22, 22}, Counts{0, 2, 22, 8}},
	{"\ufffd", Counts{0, 1, 3, 3}, Counts{0, 1, 3, 1}},

	// Unicode whitespace only separates words in the UTF-8 locale.
	{"a\u00a0b", Counts{0, 1, 4, 4}, Counts{0, 2, 4, 3}},
	{"a\u2003b", Counts{0, 1, 5, 5}, Counts{0, 2, 5, 3}},
	{"a\u3000b", Counts{0, 1, 5, 5}, Counts{0, 2, 5, 3}},
	{"a\u0085b", Counts{0, 1, 4, 4}, Counts{0, 2, 4, 3}},
	{"a\u200bb", Counts{0, 1, 5, 5}, Counts{0, 1, 5, 3}}, // ZWSP is not whitespace

	// A multi-byte character straddling the first 16 byte chunk boundary.
	{strings.Repeat("a", 15) + "\u2003world", Counts{0, 1, 23, 23}, Counts{0, 2, 23, 21}},
}

func runCountTests(t *testing.T, fn CountFunc, tests []countTest) {
	t.Helper()
	for _, test := range tests {
		if got := fn([]byte(test.in), false); got != test.singleByte {
			t.Errorf("Count(%q, SingleByte) = %s; want: %s", test.in, got, test.singleByte)
		}
		if got := fn([]byte(test.in), true); got != test.utf8 {
			t.Errorf("Count(%q, UTF8) = %s; want: %s", test.in, got, test.utf8)
		}
	}
}

// Count tests fn against a table of known results.
func Count(t *testing.T, fn CountFunc) {
	runCountTests(t, fn, countTests)
}

// boundaryInputs are placed at every offset around the chunk boundaries.
var boundaryInputs = []string{
	"\u2003",           // 3 byte whitespace
	"\U0001F4A9",       // 4 byte character
	"é",                // 2 byte character
	"\xf0\x9f\x92",     // truncated
	"\xff",             // invalid
	"\x80\x80\x80\x80", // orphaned continuation bytes
	" \n",
	"\u00a0x",
}

// ChunkBoundaries tests that fn matches Reference when multi-byte sequences,
// invalid bytes and whitespace straddle the 16, 32 and 64 byte boundaries.
func ChunkBoundaries(t *testing.T, fn CountFunc) {
	fills := []byte{'a', ' ', '\n'}
	for _, fill := range fills {
		for _, in := range boundaryInputs {
			for size := 1; size <= 200; size++ {
				for _, off := range []int{14, 15, 16, 30, 31, 32, 62, 63, 64, 127, 128} {
					if off >= size {
						continue
					}
					p := bytes.Repeat([]byte{fill}, size)
					p = append(p[:off], append([]byte(in), p[off:]...)...)
					for _, isUTF8 := range []bool{true, false} {
						want := Reference(p, isUTF8)
						if got := fn(p, isUTF8); got != want {
							t.Fatalf("Count(%q, utf8=%t) = %s; want: %s", p, isUTF8, got, want)
						}
					}
				}
			}
		}
	}
}

// Invariants checks the properties that hold for the counts c of input p.
func Invariants(t testing.TB, p []byte, isUTF8 bool, c Counts) {
	t.Helper()
	if c.Bytes != len(p) {
		t.Errorf("%q: Bytes = %d; want: %d", p, c.Bytes, len(p))
	}
	if c.Lines > c.Bytes || c.Words > c.Bytes || c.Chars > c.Bytes {
		t.Errorf("%q: counts exceed the number of bytes: %s", p, c)
	}
	if isUTF8 {
		if c.Lines > c.Chars || c.Words > c.Chars {
			t.Errorf("%q: lines or words exceed chars: %s", p, c)
		}
	} else if c.Chars != c.Bytes {
		t.Errorf("%q: SingleByte: Chars (%d) != Bytes (%d)", p, c.Chars, c.Bytes)
	}
}

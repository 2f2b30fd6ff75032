// Package benchtest is used for benchmarking wc against a straightforward
// implementation built on the Go stdlib's bytes and unicode/utf8 packages.
//
// It is not part of the wc package since the stdlib version is not exactly
// equivalent (bytes.Fields treats invalid UTF-8 as part of a word instead of
// ignoring it). Instead it is a useful measure of the speedup of the vector
// backends compared to what most programs do.
package benchtest

import (
	"bytes"
	"unicode/utf8"

	"github.com/charlievieth/wc"
)

// StdlibCount counts p using the bytes and unicode/utf8 packages.
func StdlibCount(p []byte, locale wc.Locale) wc.Counts {
	c := wc.Counts{
		Lines: bytes.Count(p, []byte{'\n'}),
		Bytes: len(p),
	}
	if locale == wc.UTF8 {
		c.Words = len(bytes.Fields(p))
		c.Chars = utf8.RuneCount(p)
	} else {
		c.Words = len(bytes.FieldsFunc(p, func(r rune) bool {
			return r == ' ' || '\t' <= r && r <= '\r'
		}))
		c.Chars = len(p)
	}
	return c
}

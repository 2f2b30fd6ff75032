// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package wc

import "unicode/utf8"

// countScalar is the reference implementation every accelerated path must
// agree with.
//
// Counting starts with the word state seen (true if the previous character
// was whitespace). It returns the counts of p, the number of trailing bytes
// of p that were not consumed because they start an incomplete UTF-8
// sequence (always 0 for SingleByte) and the final word state.
//
// The returned Bytes is always len(p), including any incomplete bytes.
func countScalar(p []byte, locale Locale, seen bool) (c Counts, incomplete int, seenSpace bool) {
	c.Bytes = len(p)
	if locale != UTF8 {
		for _, b := range p {
			if b == '\n' {
				c.Lines++
			}
			if utf8Class[b]&classSpace != 0 {
				seen = true
			} else if seen {
				c.Words++
				seen = false
			}
		}
		c.Chars = len(p)
		return c, 0, seen
	}

	incomplete = incompleteSuffixLen(p)
	end := len(p) - incomplete
	for i := 0; i < end; {
		b := p[i]
		if b < utf8.RuneSelf {
			if b == '\n' {
				c.Lines++
			}
			if utf8Class[b]&classSpace != 0 {
				seen = true
			} else if seen {
				c.Words++
				seen = false
			}
			c.Chars++
			i++
			continue
		}
		r, size := utf8.DecodeRune(p[i:end])
		if r == utf8.RuneError && size == 1 {
			// Invalid bytes are inert: they are not characters and neither
			// start nor end a word.
			i++
			continue
		}
		if isSpaceRune(r) {
			seen = true
		} else if seen {
			c.Words++
			seen = false
		}
		c.Chars++
		i += size
	}
	return c, incomplete, seen
}

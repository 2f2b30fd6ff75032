// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package wc

import "unicode/utf8"

// utf8Class values.
const (
	classLen   = 0x07 // length of the sequence a byte starts, 0 if it can't start one
	classSpace = 0x08 // ASCII whitespace
	classCont  = 0x10 // continuation byte (0b10xxxxxx)
)

// incompleteSuffixLen returns the number of trailing bytes of p that form
// the start of a UTF-8 sequence that p is too short to complete. Those bytes
// must be carried over and prepended to the next segment of input.
//
// At most 3 bytes are ever reported: a run of continuation bytes without a
// starter within the last 4 bytes can never become valid, so it is
// considered complete (it decodes as invalid bytes).
func incompleteSuffixLen(p []byte) int {
	n := 0
	for i := len(p) - 1; i >= 0 && n < utf8.UTFMax; i-- {
		n++
		c := utf8Class[p[i]]
		if c&classCont != 0 {
			continue
		}
		// ASCII, an invalid byte or a starter.
		if size := int(c & classLen); size > n {
			return n
		}
		return 0
	}
	return 0
}

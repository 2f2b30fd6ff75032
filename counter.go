// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package wc

import (
	"math/bits"
	"unicode/utf8"

	"github.com/charlievieth/wc/internal/bytealg"
)

// batch is the number of chunks classified by one kernel call.
const batch = 64

// A Counter counts an input that is written to it in one or more pieces.
// Splitting the input never changes the result: the state of an incomplete
// UTF-8 sequence and of the current word is carried from one Write to the
// next.
//
// A Counter must not be used to count more than one input (see Reset) and
// is not safe for concurrent use. The zero value is a Counter for the
// SingleByte locale that uses the scalar Backend.
type Counter struct {
	counts Counts
	kernel *bytealg.Kernel // nil for the scalar backend
	locale Locale
	inWord bool // the previous character was not whitespace
	ncarry int
	carry  [utf8.UTFMax - 1]byte
}

// NewCounter returns a new Counter that uses the Backend returned by Detect.
func NewCounter(locale Locale) *Counter {
	return Detect().NewCounter(locale)
}

func (c *Counter) init(b Backend, locale Locale) {
	// The start of the input behaves as if it follows whitespace.
	*c = Counter{kernel: b.k, locale: locale}
}

// Reset discards all state so that c can be used to count a new input.
func (c *Counter) Reset() {
	c.init(Backend{k: c.kernel}, c.locale)
}

// Write counts p. It always returns len(p), nil.
func (c *Counter) Write(p []byte) (int, error) {
	c.write(p)
	return len(p), nil
}

// Counts returns the counts of everything written to c so far. Bytes of a
// trailing incomplete UTF-8 sequence are included in Bytes but are not
// characters.
func (c *Counter) Counts() Counts {
	return c.counts
}

func (c *Counter) write(p []byte) {
	c.counts.Bytes += len(p)
	k := c.kernel
	if k == nil {
		if len(p) > 0 {
			c.scalar(p)
		}
		return
	}

	w := k.Width
	lanes := ^uint64(0) >> uint(64-w)
	utf := c.locale == UTF8
	var masks [batch]bytealg.Masks
	for len(p) >= w {
		n := len(p) / w
		if n > batch {
			n = batch
		}
		k.Masks(masks[:n], p[:n*w])
		for i := 0; i < n; i++ {
			m := &masks[i]
			if utf && (m.High != 0 || c.ncarry != 0) {
				// Non-ASCII chunks need to be decoded, count runs of them
				// with a single call.
				j := i + 1
				for j < n && masks[j].High != 0 {
					j++
				}
				c.scalar(p[i*w : j*w])
				i = j - 1
				continue
			}
			c.counts.Lines += bits.OnesCount64(m.Newline)
			if utf {
				c.counts.Chars += w - bits.OnesCount64(m.Cont)
			} else {
				c.counts.Chars += w
			}
			var prev uint64
			if !c.inWord {
				prev = 1
			}
			starts := ^m.Space & (m.Space<<1 | prev) & lanes
			c.counts.Words += bits.OnesCount64(starts)
			c.inWord = m.Space>>uint(w-1)&1 == 0
		}
		p = p[n*w:]
	}
	if len(p) > 0 {
		c.scalar(p)
	}
}

// scalar counts p with the reference implementation, prepending any bytes
// carried over from the previous segment.
func (c *Counter) scalar(p []byte) {
	if c.ncarry > 0 {
		if p = c.resolveCarry(p); len(p) == 0 {
			return
		}
	}
	r, incomplete, seen := countScalar(p, c.locale, !c.inWord)
	c.add(r)
	c.inWord = !seen
	c.ncarry = copy(c.carry[:], p[len(p)-incomplete:])
}

// resolveCarry decodes the sequence started by the carried bytes using the
// head of p and returns the part of p that remains to be counted.
func (c *Counter) resolveCarry(p []byte) []byte {
	var buf [2 * utf8.UTFMax]byte
	n := copy(buf[:], c.carry[:c.ncarry])
	c.ncarry = 0

	if len(p) <= utf8.UTFMax {
		// p may end with another incomplete sequence, count it as a whole.
		m := n + copy(buf[n:], p)
		r, incomplete, seen := countScalar(buf[:m], c.locale, !c.inWord)
		c.add(r)
		c.inWord = !seen
		c.ncarry = copy(c.carry[:], buf[m-incomplete:m])
		return nil
	}

	m := n + copy(buf[n:], p[:utf8.UTFMax])
	r, size := utf8.DecodeRune(buf[:m])
	if r == utf8.RuneError && size == 1 {
		// The carried bytes (a starter followed by continuation bytes)
		// can't be completed, all of them are invalid.
		return p
	}
	c.counts.Chars++
	if isSpaceRune(r) {
		c.inWord = false
	} else if !c.inWord {
		c.counts.Words++
		c.inWord = true
	}
	return p[size-n:]
}

func (c *Counter) add(r Counts) {
	c.counts.Lines += r.Lines
	c.counts.Words += r.Words
	c.counts.Chars += r.Chars
}

// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package wc

import "strconv"

// Counts are the statistics of a single input.
type Counts struct {
	Lines int // number of '\n' bytes
	Words int // maximal runs of non-whitespace characters
	Bytes int // length of the input
	Chars int // characters (bytes in the SingleByte locale)
}

// Add adds the counts of o to c.
func (c *Counts) Add(o Counts) {
	c.Lines += o.Lines
	c.Words += o.Words
	c.Bytes += o.Bytes
	c.Chars += o.Chars
}

// Locale selects how bytes are mapped to characters.
type Locale uint8

const (
	// SingleByte treats every byte as one character and only ASCII
	// whitespace (' ' and '\t' through '\r') as whitespace.
	SingleByte Locale = iota

	// UTF8 decodes the input as UTF-8, characters are Unicode scalar values
	// and whitespace is any rune with the Unicode White_Space property.
	// Invalid bytes are neither characters nor whitespace.
	UTF8
)

func (l Locale) String() string {
	switch l {
	case SingleByte:
		return "SingleByte"
	case UTF8:
		return "UTF8"
	}
	return "Locale(" + strconv.Itoa(int(l)) + ")"
}

// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package wc

import (
	"testing"
	"unicode"
	"unicode/utf8"
)

func TestUnicodeVersion(t *testing.T) {
	if UnicodeVersion != unicode.Version {
		t.Logf("tables.go was generated for Unicode %s, the Go runtime has %s",
			UnicodeVersion, unicode.Version)
	}
}

func TestUTF8Class(t *testing.T) {
	seqLen := func(b byte) int {
		switch {
		case b < utf8.RuneSelf:
			return 1
		case 0xC2 <= b && b <= 0xDF:
			return 2
		case 0xE0 <= b && b <= 0xEF:
			return 3
		case 0xF0 <= b && b <= 0xF4:
			return 4
		}
		return 0
	}
	for i := 0; i < 256; i++ {
		b := byte(i)
		c := utf8Class[b]
		if got, want := int(c&classLen), seqLen(b); got != want {
			t.Errorf("utf8Class[0x%02X]: length = %d; want: %d", b, got, want)
		}
		if got, want := c&classCont != 0, !utf8.RuneStart(b); got != want {
			t.Errorf("utf8Class[0x%02X]: continuation = %t; want: %t", b, got, want)
		}
		space := b < utf8.RuneSelf && unicode.IsSpace(rune(b))
		if got := c&classSpace != 0; got != space {
			t.Errorf("utf8Class[0x%02X]: space = %t; want: %t", b, got, space)
		}
		if c&^(classLen|classSpace|classCont) != 0 {
			t.Errorf("utf8Class[0x%02X]: unknown bits set: 0x%02X", b, c)
		}
	}
}

// Test that every starter byte the table accepts begins at least one valid
// sequence of that length.
func TestUTF8ClassStarters(t *testing.T) {
	var found [256]bool
	for r := rune(utf8.RuneSelf); r <= unicode.MaxRune; r++ {
		if !utf8.ValidRune(r) {
			continue
		}
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], r)
		if int(utf8Class[buf[0]]&classLen) != n {
			t.Fatalf("%U: utf8Class[0x%02X] length = %d; want: %d",
				r, buf[0], utf8Class[buf[0]]&classLen, n)
		}
		found[buf[0]] = true
	}
	for i := utf8.RuneSelf; i < 256; i++ {
		if utf8Class[i]&classLen != 0 && !found[i] {
			t.Errorf("utf8Class[0x%02X]: no valid sequence starts with this byte", i)
		}
	}
}

func TestIsSpaceRune(t *testing.T) {
	for r := rune(utf8.RuneSelf); r <= unicode.MaxRune; r++ {
		if got, want := isSpaceRune(r), unicode.IsSpace(r); got != want {
			t.Errorf("isSpaceRune(%U) = %t; want: %t", r, got, want)
		}
	}
}

func BenchmarkIsSpaceRune(b *testing.B) {
	runes := []rune{'\u00a0', 'é', '\u2003', '世', '\u3000', '\U0001F4A9'}
	for i := 0; i < b.N; i++ {
		for _, r := range runes {
			isSpaceRune(r)
		}
	}
}

package assigned

import (
	"reflect"
	"testing"
	"unicode"
	"unicode/utf8"
)

func TestAssigned(t *testing.T) {
	rt := Assigned()
	for _, r := range []rune{'a', ' ', '\n', 0x00A0, 0x2003, 0x1F4A9, 0xE000} {
		if !unicode.Is(rt, r) {
			t.Errorf("Assigned() does not contain: %U", r)
		}
	}
	// Noncharacters are never assigned.
	for _, r := range []rune{0xFDD0, 0xFFFE, 0xFFFF, 0x10FFFF} {
		if unicode.Is(rt, r) {
			t.Errorf("Assigned() contains unassigned rune: %U", r)
		}
	}
}

func TestRunes(t *testing.T) {
	want := func(rt *unicode.RangeTable) []rune {
		var a []rune
		visit(rt, func(r rune) {
			if utf8.ValidRune(r) {
				a = append(a, r)
			}
		})
		if len(a) == 0 {
			t.Fatal("empty table")
		}
		return a
	}
	for name, rt := range map[string]*unicode.RangeTable{
		"White_Space": unicode.White_Space,
		"Zs":          unicode.Zs,
		"Assigned":    Assigned(),
	} {
		rt := rt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			w := want(rt)
			a1 := Runes(rt)
			if !reflect.DeepEqual(a1, w) {
				t.Error("Runes: invalid result") // don't print the massive slices
			}
			a2 := Runes(rt)
			if &a1[0] != &a2[0] {
				t.Fatalf("Runes: result was not cached: %p == %p", &a1[0], &a2[0])
			}
		})
	}
}

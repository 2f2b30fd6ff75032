// Package assigned provides the assigned Unicode code points of the Unicode
// version supported by the running Go release, used to generate random
// test input.
package assigned

import (
	"sync"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Assigned returns a RangeTable with all assigned code points. This
// includes graphic, format, control, surrogate and private-use characters.
func Assigned() *unicode.RangeTable {
	return assigned()
}

var assigned = sync.OnceValue(func() *unicode.RangeTable {
	tables := make([]*unicode.RangeTable, 0, len(unicode.Categories))
	for name, rt := range unicode.Categories {
		// Only use the two letter categories, the single letter ones
		// are unions of them.
		if len(name) == 2 {
			tables = append(tables, rt)
		}
	}
	return rangetable.Merge(tables...)
})

var runes sync.Map

// Runes returns a cached slice of all runes in rt that can be encoded as
// UTF-8 (surrogates are excluded). The same slice is returned for every
// call with the same table and must not be modified.
func Runes(rt *unicode.RangeTable) []rune {
	if v, ok := runes.Load(rt); ok {
		return v.(func() []rune)()
	}
	var all []rune
	var once sync.Once
	fn := func() []rune {
		once.Do(func() {
			n := 0
			visit(rt, func(_ rune) {
				n++
			})
			all = make([]rune, 0, n)
			visit(rt, func(r rune) {
				if !unicode.Is(unicode.Cs, r) {
					all = append(all, r)
				}
			})
		})
		return all
	}
	if v, loaded := runes.LoadOrStore(rt, fn); loaded {
		return v.(func() []rune)()
	}
	return fn()
}

// AssignedRunes returns all assigned runes that can be encoded as UTF-8.
func AssignedRunes() []rune {
	return Runes(Assigned())
}

// visit visits all runes in the given RangeTable in order, calling fn for each.
func visit(rt *unicode.RangeTable, fn func(rune)) {
	for _, r16 := range rt.R16 {
		for r := rune(r16.Lo); r <= rune(r16.Hi); r += rune(r16.Stride) {
			fn(r)
		}
	}
	for _, r32 := range rt.R32 {
		for r := rune(r32.Lo); r <= rune(r32.Hi); r += rune(r32.Stride) {
			fn(r)
		}
	}
}

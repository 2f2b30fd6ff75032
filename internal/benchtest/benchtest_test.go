package benchtest

import (
	"bytes"
	"flag"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charlievieth/wc"
)

var benchStdLib = flag.Bool("stdlib", false, "Use the bytes package in benchmarks (for comparison)")

var benchBackend = flag.String("backend", "", "Only benchmark the named backend")

// StdlibCount must agree with wc.Count for valid UTF-8.
func TestStdlibCount(t *testing.T) {
	inputs := []string{
		"",
		"hello world\n",
		"  leading and trailing  \n\n",
		"héllo wörld\n日本語\u3000テキスト\n",
		strings.Repeat("The quick brown fox\tjumps over the lazy dog.\n", 100),
	}
	for _, s := range inputs {
		for _, locale := range []wc.Locale{wc.SingleByte, wc.UTF8} {
			got := StdlibCount([]byte(s), locale)
			want := wc.Count([]byte(s), locale)
			if got != want {
				t.Errorf("StdlibCount(%q, %s) = %+v; want: %+v", s, locale, got, want)
			}
		}
	}
}

func backends(b *testing.B) []wc.Backend {
	if *benchBackend == "" {
		return wc.Backends()
	}
	be, ok := wc.LookupBackend(*benchBackend)
	if !ok {
		b.Fatalf("backend %q is not supported", *benchBackend)
	}
	return []wc.Backend{be}
}

func benchCount(b *testing.B, p []byte, locale wc.Locale) {
	if *benchStdLib {
		b.SetBytes(int64(len(p)))
		for i := 0; i < b.N; i++ {
			StdlibCount(p, locale)
		}
		return
	}
	for _, be := range backends(b) {
		be := be
		b.Run(be.Name(), func(b *testing.B) {
			b.SetBytes(int64(len(p)))
			for i := 0; i < b.N; i++ {
				be.Count(p, locale)
			}
		})
	}
}

func benchLocales(b *testing.B, p []byte) {
	for _, locale := range []wc.Locale{wc.SingleByte, wc.UTF8} {
		locale := locale
		b.Run(locale.String(), func(b *testing.B) {
			benchCount(b, p, locale)
		})
	}
}

var benchSizes = []struct {
	name string
	n    int
}{
	{"16", 16},
	{"64", 64},
	{"1K", 1 << 10},
	{"64K", 64 << 10},
	{"4M", 4 << 20},
}

func repeat(s string, n int) []byte {
	b := bytes.Repeat([]byte(s), n/len(s)+1)
	return b[:n]
}

func BenchmarkASCII(b *testing.B) {
	const text = "The quick brown fox jumps over the lazy dog.\n"
	for _, size := range benchSizes {
		b.Run(size.name, func(b *testing.B) {
			benchLocales(b, repeat(text, size.n))
		})
	}
}

func BenchmarkGreek(b *testing.B) {
	const text = "Ο γρήγορος καφέ αλεπού πηδάει πάνω από τον τεμπέλη σκύλο.\n"
	for _, size := range benchSizes {
		b.Run(size.name, func(b *testing.B) {
			benchLocales(b, repeat(text, size.n))
		})
	}
}

// Mostly ASCII text with a few multi-byte characters, the common case for
// source code and English prose.
func BenchmarkMixed(b *testing.B) {
	rr := rand.New(rand.NewSource(1))
	words := []string{"alpha", "beta", "gamma", "café", "naïve", "\u2014", "x", "\U0001F4A9"}
	var buf bytes.Buffer
	for buf.Len() < 1<<20 {
		buf.WriteString(words[rr.Intn(len(words))])
		if rr.Intn(10) == 0 {
			buf.WriteByte('\n')
		} else {
			buf.WriteByte(' ')
		}
	}
	benchLocales(b, buf.Bytes())
}

func BenchmarkInvalid(b *testing.B) {
	rr := rand.New(rand.NewSource(1))
	p := make([]byte, 1<<20)
	rr.Read(p)
	if utf8.Valid(p) {
		b.Fatal("expected invalid UTF-8")
	}
	benchLocales(b, p)
}

func BenchmarkCounter(b *testing.B) {
	p := repeat("The quick brown fox jumps över the lazy dog.\n", 1<<20)
	for _, chunk := range []int{7, 512, 32 << 10} {
		chunk := chunk
		b.Run(fmt.Sprint(chunk), func(b *testing.B) {
			b.SetBytes(int64(len(p)))
			for i := 0; i < b.N; i++ {
				c := wc.NewCounter(wc.UTF8)
				for j := 0; j < len(p); j += chunk {
					c.Write(p[j:min(j+chunk, len(p))])
				}
			}
		})
	}
}

package test

import (
	crand "crypto/rand"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"sync/atomic"
	"testing"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/charlievieth/wc/internal/tables/assigned"
)

func init() {
	if len(assignedRunes) == 0 {
		panic("no assigned runes for Unicode version: " + unicode.Version)
	}
	if len(spaceRunes) == 0 {
		panic("no whitespace runes for Unicode version: " + unicode.Version)
	}
}

var exhaustiveFuzz = flag.Bool("exhaustive", false, "Run exhaustive fuzz tests (slow).")

// All assigned runes for the current Unicode version
var assignedRunes = assigned.AssignedRunes()

var spaceRunes = assigned.Runes(unicode.White_Space)

// Byte sequences that are never valid UTF-8.
var invalidSequences = []string{
	"\xc0\xaf",         // overlong '/'
	"\xc1\xbf",         // overlong
	"\xe0\x80\xaf",     // overlong
	"\xed\xa0\x80",     // surrogate half
	"\xed\xbf\xbf",     // surrogate half
	"\xf4\x90\x80\x80", // > utf8.MaxRune
	"\xf5\x80\x80\x80",
	"\xf8\x88\x80\x80\x80",
	"\xfe",
	"\xff",
}

func cryptoRandInt(t testing.TB) int64 {
	var b [8]byte
	if _, err := io.ReadFull(crand.Reader, b[:]); err != nil {
		if t != nil {
			t.Fatal(err)
		}
		panic(err)
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

func intn(rr *rand.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	return rr.Intn(n)
}

// appendRandWord appends a run of 1-8 non-whitespace characters.
func appendRandWord(b []byte, rr *rand.Rand) []byte {
	n := rr.Intn(8) + 1
	for i := 0; i < n; i++ {
		if rr.Intn(4) == 0 {
			r := assignedRunes[rr.Intn(len(assignedRunes))]
			if !unicode.IsSpace(r) {
				b = utf8.AppendRune(b, r)
				continue
			}
		}
		b = append(b, byte('a'+rr.Intn(26)))
	}
	return b
}

// appendRandSpace appends 1-3 whitespace characters.
func appendRandSpace(b []byte, rr *rand.Rand) []byte {
	const ascii = " \t\n\v\f\r"
	n := rr.Intn(3) + 1
	for i := 0; i < n; i++ {
		if rr.Intn(4) == 0 {
			b = utf8.AppendRune(b, spaceRunes[rr.Intn(len(spaceRunes))])
		} else {
			b = append(b, ascii[rr.Intn(len(ascii))])
		}
	}
	return b
}

// appendTruncated appends a multi-byte character with at least one of its
// trailing bytes removed.
func appendTruncated(b []byte, rr *rand.Rand) []byte {
	for {
		r := assignedRunes[rr.Intn(len(assignedRunes))]
		if n := utf8.RuneLen(r); n > 1 {
			var buf [utf8.UTFMax]byte
			utf8.EncodeRune(buf[:], r)
			return append(b, buf[:rr.Intn(n-1)+1]...)
		}
	}
}

// appendRandBytes appends n or slightly more bytes of random text made of
// words, whitespace, invalid bytes and truncated sequences.
func appendRandBytes(b []byte, rr *rand.Rand, n int) []byte {
	start := len(b)
	for len(b)-start < n {
		switch x := rr.Intn(100); {
		case x < 45:
			b = appendRandWord(b, rr)
		case x < 80:
			b = appendRandSpace(b, rr)
		case x < 86:
			b = appendTruncated(b, rr)
		case x < 92:
			b = append(b, invalidSequences[rr.Intn(len(invalidSequences))]...)
		case x < 96:
			b = append(b, byte(rr.Intn(256-utf8.RuneSelf)+utf8.RuneSelf))
		default:
			// A run of continuation bytes.
			for i := rr.Intn(6); i >= 0; i-- {
				b = append(b, byte(0x80+rr.Intn(0x40)))
			}
		}
	}
	return b
}

func fuzzNumCPU() int {
	numCPU := runtime.NumCPU()
	if runtime.GOOS == "darwin" && runtime.GOARCH == "arm64" {
		// Avoid using all the cores.
		if numCPU >= 8 {
			numCPU -= 2
		}
	}
	if numCPU < 1 {
		numCPU = 1
	}
	return numCPU
}

func randomTestSeeds(t *testing.T) []int64 {
	seeds := []int64{
		1,
		time.Now().UnixNano(),
		cryptoRandInt(t),
		cryptoRandInt(t),
	}
	if !testing.Short() {
		numCPU := fuzzNumCPU()
		for i := len(seeds); i < numCPU; i++ {
			seeds = append(seeds, cryptoRandInt(t))
		}
	}
	return seeds
}

func runRandomTest(t *testing.T, fn func(t *fuzzTest)) {
	if *exhaustiveFuzz && testing.Short() {
		t.Fatal(`Cannot combine "-short" and "-exhaustive" flags`)
	}
	// Count is the total number of test iterations to run.
	count := 2_000
	if testing.Short() {
		count /= 4
	}
	seeds := randomTestSeeds(t)
	if *exhaustiveFuzz {
		d := 1_000_000
		count = d / len(seeds)
		t.Logf("N: %d", count)
	}
	for _, seed := range seeds {
		seed := seed
		t.Run(fmt.Sprintf("%d", seed), func(t *testing.T) {
			t.Parallel()
			start := time.Now()
			if testing.Verbose() {
				t.Cleanup(func() { t.Logf("duration: %s", time.Since(start)) })
			}
			tt := newFuzzTest(t, seed)
			for i := 0; i < count; i++ {
				fn(tt)
			}
		})
		if t.Failed() && testing.Short() {
			return
		}
	}
}

type fuzzTest struct {
	testing.TB
	rr *rand.Rand
	// Scratch space for constructing test input
	buf   []byte
	parts [][]byte
}

func newFuzzTest(t *testing.T, seed int64) *fuzzTest {
	if seed < 0 {
		seed = cryptoRandInt(t)
	}
	return &fuzzTest{
		TB:  &testWrapper{T: t},
		rr:  rand.New(rand.NewSource(seed)),
		buf: make([]byte, 0, 512),
	}
}

// Input returns random text. Most inputs are short enough to end within the
// first few vector chunks, some span several kernel batches.
func (t *fuzzTest) Input() []byte {
	var n int
	switch x := t.rr.Intn(100); {
	case x < 60:
		n = t.rr.Intn(80)
	case x < 95:
		n = t.rr.Intn(512)
	default:
		n = t.rr.Intn(16 * 1024)
	}
	t.buf = appendRandBytes(t.buf[:0], t.rr, n)
	return t.buf
}

// Split splits p into random parts, some of them empty.
func (t *fuzzTest) Split(p []byte) [][]byte {
	parts := t.parts[:0]
	for len(p) > 0 {
		var n int
		switch x := t.rr.Intn(100); {
		case x < 10:
			n = 0
		case x < 50:
			n = t.rr.Intn(4) + 1 // split multi-byte sequences
		default:
			n = intn(t.rr, len(p)) + 1
		}
		if n > len(p) {
			n = len(p)
		}
		parts = append(parts, p[:n])
		p = p[n:]
	}
	t.parts = parts
	return parts
}

// CountFuzz tests that fn matches Reference for random input.
func CountFuzz(t *testing.T, fn CountFunc) {
	runRandomTest(t, func(t *fuzzTest) {
		p := t.Input()
		for _, isUTF8 := range []bool{true, false} {
			want := Reference(p, isUTF8)
			got := fn(p, isUTF8)
			if got != want {
				t.Errorf("Count\n"+
					"Input: %q\n"+
					"UTF8:  %t\n"+
					"Got:   %s\n"+
					"Want:  %s\n",
					p, isUTF8, got, want)
			}
			Invariants(t, p, isUTF8, got)
		}
	})
}

// A SplitFunc counts the concatenation of parts.
type SplitFunc func(parts [][]byte, utf8 bool) Counts

// SplitFuzz tests that splitting random input into parts does not change
// the result of fn.
func SplitFuzz(t *testing.T, fn SplitFunc) {
	runRandomTest(t, func(t *fuzzTest) {
		p := t.Input()
		parts := t.Split(p)
		for _, isUTF8 := range []bool{true, false} {
			want := Reference(p, isUTF8)
			got := fn(parts, isUTF8)
			if got != want {
				t.Errorf("Split\n"+
					"Input: %q\n"+
					"Parts: %q\n"+
					"UTF8:  %t\n"+
					"Got:   %s\n"+
					"Want:  %s\n",
					p, parts, isUTF8, got, want)
			}
		}
	})
}

var _ testing.TB = (*testWrapper)(nil)

// A testWrapper wraps a testing.T and will immediately fail the test
// if more that N errors occur.
type testWrapper struct {
	*testing.T
	fails int32
}

func (c *testWrapper) check() {
	c.T.Helper()
	if n := atomic.AddInt32(&c.fails, 1); n >= 10 {
		// We run tests in parallel so only call Fatal on the
		// test that crossed the threshold.
		if n == 10 {
			c.T.Fatal("Too many errors:", n)
		} else {
			c.T.FailNow() // Abort subsequent tests
		}
		panic(fmt.Sprintf("aborting test: too many errors: %d", n)) // unreachable
	}
}

func (c *testWrapper) Error(args ...any) {
	c.T.Helper()
	c.T.Error(args...)
	c.check()
}

func (c *testWrapper) Errorf(format string, args ...any) {
	c.T.Helper()
	c.T.Errorf(format, args...)
	c.check()
}

func (c *testWrapper) Fail() {
	c.T.Helper()
	c.T.Fail()
	c.check()
}

func (c *testWrapper) FailNow() {
	c.T.Helper()
	c.T.FailNow()
	c.check()
}

func (c *testWrapper) Fatal(args ...any) {
	c.T.Helper()
	c.T.Fatal(args...)
	c.check()
}

func (c *testWrapper) Fatalf(format string, args ...any) {
	c.T.Helper()
	c.T.Fatalf(format, args...)
	c.check()
}

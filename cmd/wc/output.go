package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charlievieth/wc"
	"golang.org/x/term"
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// columns returns the selected counts of c in the order lines, words,
// chars, bytes.
func (cfg *Config) columns(c wc.Counts) []int {
	cols := make([]int, 0, 4)
	if cfg.Lines {
		cols = append(cols, c.Lines)
	}
	if cfg.Words {
		cols = append(cols, c.Words)
	}
	if cfg.Chars {
		cols = append(cols, c.Chars)
	}
	if cfg.Bytes {
		cols = append(cols, c.Bytes)
	}
	return cols
}

// WriteResults writes the counts of every successful result followed by a
// total line if there is more than one input. Errors are written to stderr.
// It returns the number of failed inputs.
func WriteResults(stdout, stderr io.Writer, cfg *Config, results []Result) (failed int, err error) {
	var total wc.Counts
	for _, r := range results {
		total.Add(r.Counts)
	}
	// Every column uses the width of the largest count, which is always in
	// the total.
	width := 1
	for _, n := range cfg.columns(total) {
		if w := len(strconv.Itoa(n)); w > width {
			width = w
		}
	}

	w := bufio.NewWriter(stdout)
	line := func(c wc.Counts, name string) {
		for i, n := range cfg.columns(c) {
			if i > 0 {
				w.WriteByte(' ')
			}
			fmt.Fprintf(w, "%*d", width, n)
		}
		if name != "" {
			w.WriteByte(' ')
			w.WriteString(name)
		}
		w.WriteByte('\n')
	}
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(stderr, "wc: %s: %v\n", displayName(r.Name), r.Err)
			// Like POSIX wc the counts read before the error are still printed.
			if r.Counts == (wc.Counts{}) {
				continue
			}
		}
		line(r.Counts, r.Name)
	}
	if len(results) > 1 {
		line(total, "total")
	}
	return failed, w.Flush()
}

func displayName(name string) string {
	if name == "" {
		return "standard input"
	}
	return name
}

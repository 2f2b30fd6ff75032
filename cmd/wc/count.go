package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charlievieth/wc"
	"github.com/charlievieth/wc/internal/mmap"
	"github.com/pierrec/lz4/v4"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of counting one input.
type Result struct {
	Name   string
	Counts wc.Counts
	Err    error
}

// A counter counts inputs using the backend and locale of a Config.
type counter struct {
	cfg   *Config
	stdin io.Reader
	bar   *progressbar.ProgressBar // nil if progress is disabled
}

// ctxReader stops reading once ctx is canceled.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r ctxReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

const copyBufferSize = 256 * 1024

// stream counts r with a Counter.
func (c *counter) stream(ctx context.Context, r io.Reader) (wc.Counts, error) {
	wcc := c.cfg.Backend.NewCounter(c.cfg.Locale)
	var w io.Writer = wcc
	if c.bar != nil {
		w = io.MultiWriter(wcc, c.bar)
	}
	buf := make([]byte, copyBufferSize)
	if _, err := io.CopyBuffer(w, ctxReader{ctx, r}, buf); err != nil {
		return wcc.Counts(), err
	}
	return wcc.Counts(), nil
}

func isLZ4(name string) bool {
	return strings.HasSuffix(name, ".lz4")
}

func (c *counter) countFile(ctx context.Context, name string) (wc.Counts, error) {
	log := slog.With("file", name)
	if name == "" || name == "-" {
		log.Debug("counting stdin")
		return c.stream(ctx, c.stdin)
	}

	f, err := os.Open(name)
	if err != nil {
		return wc.Counts{}, err
	}
	defer f.Close()

	if c.cfg.Decompress && isLZ4(name) {
		log.Debug("decompressing lz4 input")
		counts, err := c.stream(ctx, lz4.NewReader(f))
		if err != nil {
			return counts, fmt.Errorf("lz4: %w", err)
		}
		return counts, nil
	}

	data, err := mmap.File(f)
	if err != nil {
		if errors.Is(err, mmap.ErrNotRegular) {
			log.Debug("streaming non-regular file")
			return c.stream(ctx, f)
		}
		return wc.Counts{}, err
	}
	defer mmap.Unmap(data)

	start := time.Now()
	counts := c.cfg.Backend.Count(data, c.cfg.Locale)
	log.Debug("counted mapped file", "bytes", len(data), "duration", time.Since(start))
	if c.bar != nil {
		c.bar.Add(len(data))
	}
	return counts, nil
}

// totalSize returns the combined size of the regular files in names or -1
// if it is not known in advance.
func totalSize(names []string, decompress bool) int64 {
	var total int64
	for _, name := range names {
		if name == "" || name == "-" || (decompress && isLZ4(name)) {
			return -1
		}
		fi, err := os.Stat(name)
		if err != nil {
			continue // reported when counted
		}
		if !fi.Mode().IsRegular() {
			return -1
		}
		total += fi.Size()
	}
	return total
}

// CountAll counts every input of cfg using up to cfg.Jobs goroutines. The
// results are in the order of cfg.Files. Errors reading an input are
// reported in its Result, the returned error is only non-nil if ctx was
// canceled.
func CountAll(ctx context.Context, cfg *Config, stdin io.Reader, stderr io.Writer) ([]Result, error) {
	c := &counter{cfg: cfg, stdin: stdin}
	if cfg.Progress && isTerminal(stderr) {
		c.bar = progressbar.NewOptions64(totalSize(cfg.Files, cfg.Decompress),
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetDescription("counting"),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
		defer c.bar.Finish()
	}

	results := make([]Result, len(cfg.Files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Jobs)
	for i, name := range cfg.Files {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			counts, err := c.countFile(ctx, name)
			if err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
			results[i] = Result{Name: name, Counts: counts, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

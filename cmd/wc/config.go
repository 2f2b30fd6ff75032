package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/charlievieth/wc"
	"github.com/spf13/cobra"
)

// Config is the configuration of a single wc run.
type Config struct {
	Lines, Words, Chars, Bytes bool

	Files      []string // "-" or "" is stdin
	Jobs       int
	Backend    wc.Backend
	Locale     wc.Locale
	Decompress bool
	Progress   bool
	Debug      bool
}

// LocaleFromEnv returns the locale selected by the LC_ALL, LC_CTYPE and LANG
// environment variables (in that order of precedence).
func LocaleFromEnv(getenv func(string) string) wc.Locale {
	var name string
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if name = getenv(key); name != "" {
			break
		}
	}
	if name == "" || name == "C" || name == "POSIX" {
		return wc.SingleByte
	}
	upper := strings.ToUpper(name)
	for _, s := range []string{"LATIN1", "LATIN-1", "ISO-8859", "ISO8859"} {
		if strings.Contains(upper, s) {
			return wc.SingleByte
		}
	}
	return wc.UTF8
}

func backendNames() string {
	var names []string
	for _, b := range wc.Backends() {
		names = append(names, b.Name())
	}
	return strings.Join(names, ", ")
}

// selectBackend returns the backend named name, or the detected one if name
// is empty. Setting WC_NO_SIMD disables the vector backends unless a backend
// is explicitly requested.
func selectBackend(name string, getenv func(string) string) (wc.Backend, error) {
	if name == "" {
		if getenv("WC_NO_SIMD") != "" {
			return wc.Backend{}, nil
		}
		return wc.Detect(), nil
	}
	b, ok := wc.LookupBackend(name)
	if !ok {
		if _, err := wc.UnsafeBackend(name); err == nil {
			return b, fmt.Errorf("backend %q is not supported by this CPU (supported: %s)",
				name, backendNames())
		}
		return b, fmt.Errorf("unknown backend %q (supported: %s)", name, backendNames())
	}
	return b, nil
}

// readFiles0 reads NUL separated file names from r.
func readFiles0(r io.Reader) ([]string, error) {
	var names []string
	br := bufio.NewReader(r)
	for {
		name, err := br.ReadString(0)
		if len(name) > 0 {
			name = strings.TrimSuffix(name, "\x00")
			if name == "" {
				return names, errors.New("invalid zero-length file name")
			}
			names = append(names, name)
		}
		if err != nil {
			if err == io.EOF {
				return names, nil
			}
			return names, err
		}
	}
}

func filesFrom(name string, stdin io.Reader) ([]string, error) {
	if name == "-" {
		names, err := readFiles0(stdin)
		if err != nil {
			return nil, err
		}
		for _, s := range names {
			if s == "-" {
				return nil, errors.New("when reading file names from stdin, no file name of '-' allowed")
			}
		}
		return names, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("cannot open %q for reading: %w", name, err)
	}
	return readFiles0(bytes.NewReader(data))
}

// buildConfig constructs a Config from command flags and arguments.
func buildConfig(cmd *cobra.Command, args []string, stdin io.Reader, getenv func(string) string) (*Config, error) {
	flags := cmd.Flags()
	lines, _ := flags.GetBool("lines")
	words, _ := flags.GetBool("words")
	chars, _ := flags.GetBool("chars")
	byteCount, _ := flags.GetBool("bytes")
	jobs, _ := flags.GetInt("jobs")
	files0, _ := flags.GetString("files0-from")
	backend, _ := flags.GetString("backend")
	decompress, _ := flags.GetBool("decompress")
	progress, _ := flags.GetBool("progress")
	debug, _ := flags.GetBool("debug")

	// default to lines, words and bytes
	if !lines && !words && !chars && !byteCount {
		lines, words, byteCount = true, true, true
	}

	switch {
	case jobs < 0:
		return nil, fmt.Errorf("invalid number of jobs: %d", jobs)
	case jobs == 0:
		jobs = runtime.NumCPU()
	}

	var files []string
	if files0 != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("extra operand %q: file operands cannot be "+
				"combined with --files0-from", args[0])
		}
		var err error
		if files, err = filesFrom(files0, stdin); err != nil {
			return nil, err
		}
	} else {
		files = args
		if len(files) == 0 {
			files = []string{""} // stdin without a name
		}
	}

	b, err := selectBackend(backend, getenv)
	if err != nil {
		return nil, err
	}

	return &Config{
		Lines:      lines,
		Words:      words,
		Chars:      chars,
		Bytes:      byteCount,
		Files:      files,
		Jobs:       jobs,
		Backend:    b,
		Locale:     LocaleFromEnv(getenv),
		Decompress: decompress,
		Progress:   progress,
		Debug:      debug,
	}, nil
}

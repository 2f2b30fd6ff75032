// Command wc prints the newline, word, character and byte counts of files
// using the vector backends of the wc package.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"

	"github.com/charlievieth/wc"
	"github.com/spf13/cobra"
)

// errFailed is returned when at least one input could not be read, the
// errors were already reported.
var errFailed = errors.New("one or more inputs failed")

// setupLogger configures the default slog logger based on debug mode.
func setupLogger(w io.Writer, debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func version() string {
	v := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		v = info.Main.Version
	}
	return fmt.Sprintf("%s %s/%s backend=%s unicode=%s",
		v, runtime.GOOS, runtime.GOARCH, wc.Detect().Name(), wc.UnicodeVersion)
}

func listBackends(w io.Writer) {
	detected := wc.Detect()
	for _, b := range wc.Backends() {
		mark := " "
		if b == detected {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %-8s %-8s %2d\n", mark, b.Name(), b.String(), b.Width())
	}
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wc [flags] [file ...]",
		Short: "Print newline, word, character and byte counts for each file",
		Long: `Print newline, word, character and byte counts for each file, and a total
line if more than one file is specified. A word is a maximal run of
non-whitespace characters. With no file, or when file is -, read standard
input.

The locale is selected by LC_ALL, LC_CTYPE and LANG. Set WC_NO_SIMD to count
without vector instructions.

Examples:
  wc file.txt
  wc -l *.go
  find . -name '*.txt' -print0 | wc --files0-from=-`,
		Version:       version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ok, _ := cmd.Flags().GetBool("list-backends"); ok {
				listBackends(stdout)
				return nil
			}
			cfg, err := buildConfig(cmd, args, stdin, getenv)
			if err != nil {
				return err
			}
			setupLogger(stderr, cfg.Debug)
			slog.Debug("config", "backend", cfg.Backend.Name(), "locale", cfg.Locale,
				"jobs", cfg.Jobs, "files", len(cfg.Files))

			results, err := CountAll(cmd.Context(), cfg, stdin, stderr)
			if err != nil {
				return err
			}
			failed, err := WriteResults(stdout, stderr, cfg, results)
			if err != nil {
				return err
			}
			if failed > 0 {
				return errFailed
			}
			return nil
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.BoolP("lines", "l", false, "print the newline counts")
	flags.BoolP("words", "w", false, "print the word counts")
	flags.BoolP("chars", "m", false, "print the character counts")
	flags.BoolP("bytes", "c", false, "print the byte counts")
	flags.IntP("jobs", "j", min(4, runtime.NumCPU()), "number of files to count in parallel (0 = number of CPUs)")
	flags.String("files0-from", "", "read input from the files specified by NUL-terminated names in file `F` (- reads names from standard input)")
	flags.String("backend", "", "count with the named backend instead of the detected one")
	flags.Bool("list-backends", false, "list the backends supported by this CPU and exit")
	flags.BoolP("decompress", "z", false, "decompress .lz4 files before counting")
	flags.Bool("progress", false, "show a progress bar on standard error")
	flags.Bool("debug", false, "enable debug logging")
	flags.MarkHidden("debug")

	return cmd
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) int {
	cmd := newRootCmd(stdin, stdout, stderr, getenv)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(stderr, "wc:", err)
		}
		return 1
	}
	return 0
}

func main() {
	// create context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv)
	stop()
	os.Exit(code)
}

// Command gentables generates the byte class and whitespace tables of the wc
// package (tables.go) from the Unicode tables of the running Go release.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"go/format"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/slices"
	"golang.org/x/mod/modfile"
	"golang.org/x/term"
	"golang.org/x/text/unicode/rangetable"
)

const modulePath = "github.com/charlievieth/wc"

// Byte classes, these must match the constants in utf8.go.
const (
	classLen   = 0x07
	classSpace = 0x08
	classCont  = 0x10
)

func init() {
	initLogs()
}

func initLogs() {
	log.SetPrefix("")
	log.SetFlags(log.Lshortfile)
	log.SetOutput(os.Stdout) // use stdout instead of stderr
}

// Runes encoded with 2, 3 and 4 bytes.
var seqRanges = []runeRange{
	{0x80, 0x7FF},
	{0x800, 0xFFFF},
	{0x10000, unicode.MaxRune},
}

// seqLen returns the length of the UTF-8 sequence that starts with b or 0
// if b never starts a valid sequence.
func seqLen(b byte) int {
	if b < utf8.RuneSelf {
		return 1
	}
	for _, rr := range seqRanges {
		var lo, hi [utf8.UTFMax]byte
		n := utf8.EncodeRune(lo[:], rr.Lo)
		utf8.EncodeRune(hi[:], rr.Hi)
		if lo[0] <= b && b <= hi[0] {
			return n
		}
	}
	return 0
}

// byteClasses returns the class of every byte value.
func byteClasses() [256]uint8 {
	var classes [256]uint8
	for i := range classes {
		b := byte(i)
		c := uint8(seqLen(b))
		if b < utf8.RuneSelf && unicode.IsSpace(rune(b)) {
			c |= classSpace
		}
		if !utf8.RuneStart(b) {
			c |= classCont
		}
		classes[i] = c
	}
	return classes
}

type runeRange struct {
	Lo, Hi rune
}

// spaceRanges returns the non-ASCII White_Space runes as ranges of 3 or more
// consecutive runes and a list of the remaining runes.
func spaceRanges() (ranges []runeRange, singles []rune) {
	var all []rune
	rangetable.Visit(unicode.White_Space, func(r rune) {
		if r >= utf8.RuneSelf {
			all = append(all, r)
		}
	})
	slices.Sort(all)
	all = slices.Compact(all)
	for i := 0; i < len(all); {
		j := i + 1
		for j < len(all) && all[j] == all[j-1]+1 {
			j++
		}
		if j-i >= 3 {
			ranges = append(ranges, runeRange{all[i], all[j-1]})
		} else {
			singles = append(singles, all[i:j]...)
		}
		i = j
	}
	return ranges, singles
}

// generate returns the formatted source of tables.go.
func generate(version string) ([]byte, error) {
	var w bytes.Buffer
	fmt.Fprintf(&w, "// Code generated by \"gentables -unicode %s\"; DO NOT EDIT.\n\n", version)
	w.WriteString("package wc\n\n")
	w.WriteString("// UnicodeVersion is the Unicode version from which the tables in this\n")
	w.WriteString("// package are derived.\n")
	fmt.Fprintf(&w, "const UnicodeVersion = %q\n\n", version)

	w.WriteString("// utf8Class classifies every byte value, see the class constants.\n")
	w.WriteString("var utf8Class = [256]uint8{\n")
	classes := byteClasses()
	for i := 0; i < len(classes); i += 16 {
		for j, c := range classes[i : i+16] {
			if j > 0 {
				w.WriteByte(' ')
			}
			fmt.Fprintf(&w, "0x%02x,", c)
		}
		fmt.Fprintf(&w, " // 0x%02x\n", i)
	}
	w.WriteString("}\n\n")

	ranges, singles := spaceRanges()
	w.WriteString("// isSpaceRune reports whether the non-ASCII rune r has the Unicode\n")
	w.WriteString("// White_Space property.\n")
	w.WriteString("func isSpaceRune(r rune) bool {\n")
	if len(singles) > 0 {
		a := make([]string, len(singles))
		for i, r := range singles {
			a[i] = fmt.Sprintf("0x%04x", r)
		}
		fmt.Fprintf(&w, "switch r {\ncase %s:\nreturn true\n}\n", strings.Join(a, ", "))
	}
	if len(ranges) == 0 {
		w.WriteString("return false\n")
	} else {
		a := make([]string, len(ranges))
		for i, rr := range ranges {
			a[i] = fmt.Sprintf("0x%04x <= r && r <= 0x%04x", rr.Lo, rr.Hi)
		}
		fmt.Fprintf(&w, "return %s\n", strings.Join(a, " ||\n"))
	}
	w.WriteString("}\n")

	src, err := format.Source(w.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w\n%s", err, w.Bytes())
	}
	return src, nil
}

// modulePathOf returns the module path declared by the go.mod file name.
func modulePathOf(name string) (string, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	file, err := modfile.Parse(name, data, nil)
	if err != nil {
		return "", err
	}
	if file == nil || file.Module == nil || file.Module.Mod.Path == "" {
		return "", errors.New("missing module path: " + name)
	}
	return file.Module.Mod.Path, nil
}

// findModuleRoot returns the first parent directory of child that contains
// the go.mod file of module pkgPath.
func findModuleRoot(child, pkgPath string) (string, error) {
	if !filepath.IsAbs(child) {
		return "", errors.New("directory must be absolute: " + child)
	}
	var first error
	dir := filepath.Clean(child)
	for {
		name := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(name); err == nil {
			path, err := modulePathOf(name)
			if err != nil && first == nil {
				first = err
			}
			if path == pkgPath {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if len(parent) >= len(dir) {
			break
		}
		dir = parent
	}
	if first != nil {
		return "", fmt.Errorf("error finding go.mod for module %q "+
			"in directory: %q: %w", pkgPath, child, first)
	}
	return "", fmt.Errorf("failed to find go.mod for module %q "+
		"in directory: %q", pkgPath, child)
}

func projectRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	root, err := findModuleRoot(wd, modulePath)
	if err != nil {
		log.Fatal(err)
	}
	return root
}

func dataEqual(filename string, data []byte) bool {
	got, err := os.ReadFile(filename)
	return err == nil && bytes.Equal(got, data)
}

func writeFile(name string, data []byte) {
	if dataEqual(name, data) {
		return
	}

	f, err := os.CreateTemp(filepath.Dir(name), filepath.Base(name)+".tmp.*")
	if err != nil {
		log.Fatal(err)
	}
	tmp := f.Name()
	exit := func(err error) {
		os.Remove(tmp)
		log.Panic(err)
	}
	if err := f.Close(); err != nil {
		exit(err)
	}
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		exit(err)
	}
	if err := os.Rename(tmp, name); err != nil {
		exit(err)
	}
}

func runCommand(dir string, args ...string) {
	cmd := exec.Command("go", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		log.Printf("Error:   %v", err)
		log.Printf("Command: %s", strings.Join(cmd.Args, " "))
		log.Printf("Output:  %s", bytes.TrimSpace(out))
		log.Panicf("Failed to build generated file: %v\n", err)
	}
}

// testBuild builds and tests the wc package with tablesFile replaced by
// data using an overlay so that a broken table is never written.
func testBuild(root, tablesFile string, data []byte, skipTests bool) {
	dir, err := os.MkdirTemp("", "wc.*")
	if err != nil {
		log.Panic(err)
	}

	tables := filepath.Join(dir, filepath.Base(tablesFile))
	overlay := filepath.Join(dir, "overlay.json")

	type overlayJSON struct {
		Replace map[string]string
	}

	overlayData, err := json.Marshal(overlayJSON{
		Replace: map[string]string{
			tablesFile: tables,
		},
	})
	if err != nil {
		log.Panic(err)
	}

	if err := os.WriteFile(overlay, overlayData, 0644); err != nil {
		log.Panic(err)
	}
	if err := os.WriteFile(tables, data, 0644); err != nil {
		log.Panic(err)
	}

	runCommand(root, "build", "-overlay="+overlay, ".")
	if !skipTests {
		runCommand(root, "test", "-overlay="+overlay, ".")
	}

	os.RemoveAll(dir) // Only remove temp dir if successful
}

// colorize wraps s in the ANSI color code if w is a terminal.
func colorize(w io.Writer, code, s string) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "\x1b[" + code + "m" + s + "\x1b[0m"
	}
	return s
}

func realMain() int {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [OPTION]...\n",
			filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	version := flag.String("unicode", unicode.Version,
		"Unicode version of the generated tables (must match the Go release)")
	skipTests := flag.Bool("skip-tests", false, "skip running tests")
	skipBuild := flag.Bool("skip-build", false, "skip building the wc package (testing only)")
	dryRun := flag.Bool("dry-run", false,
		"report if generate would change the generated tables file and exit non-zero")
	outputDir := flag.String("dir", "", "write tables.go to this directory (default: project root)")
	flag.Parse()

	log.SetPrefix("(" + *version + ") ")
	if *version != unicode.Version {
		log.Printf("The selected Unicode version %q does not match the Unicode version\n"+
			"of the running Go release %q. Run gentables with a Go release that\n"+
			"supports Unicode %[1]q.", *version, unicode.Version)
		return 1
	}

	root := projectRoot()
	dir := root
	if *outputDir != "" {
		dir = *outputDir
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatal(err)
		}
	}
	tablesFile := filepath.Join(dir, "tables.go")

	src, err := generate(*version)
	if err != nil {
		log.Fatal(err)
	}

	if dataEqual(tablesFile, src) {
		log.Println(colorize(os.Stdout, "32", "unchanged:"), tablesFile)
		return 0
	}
	if *dryRun {
		log.Println(colorize(os.Stdout, "31", "would change:"), tablesFile)
		return 1
	}
	if !*skipBuild && dir == root {
		testBuild(root, tablesFile, src, *skipTests)
	}
	writeFile(tablesFile, src)
	log.Println(colorize(os.Stdout, "33", "updated:"), tablesFile)
	return 0
}

func main() {
	os.Exit(realMain())
}

package bytealg

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"sort"
	"testing"
)

// parseDecls returns the functions declared in filename without a body,
// those must be implemented in assembly.
func parseDecls(t *testing.T, filename string) []string {
	fset := token.NewFileSet()
	af, err := parser.ParseFile(fset, filename, nil, parser.AllErrors)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, d := range af.Decls {
		if fd, _ := d.(*ast.FuncDecl); fd != nil && fd.Body == nil {
			names = append(names, fd.Name.Name)
		}
	}
	sort.Strings(names)
	return names
}

var textRe = regexp.MustCompile(`(?m)^TEXT\s+·(\w+)\(SB\)`)

func parseAsm(t *testing.T, filename string) []string {
	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, m := range textRe.FindAllSubmatch(data, -1) {
		names = append(names, string(m[1]))
	}
	sort.Strings(names)
	return names
}

// Test that every assembly function has a Go declaration and vice versa.
func TestAsmParity(t *testing.T) {
	asm, err := filepath.Glob("*.s")
	if err != nil {
		t.Fatal(err)
	}
	if len(asm) == 0 {
		t.Fatal("no assembly files")
	}
	for _, s := range asm {
		goFile := s[:len(s)-len(".s")] + ".go"
		decls := parseDecls(t, goFile)
		funcs := parseAsm(t, s)
		if len(funcs) == 0 {
			t.Errorf("%s: no TEXT symbols", s)
		}
		if !reflect.DeepEqual(decls, funcs) {
			t.Errorf("The functions declared in %s and implemented in %s differ:\n"+
				"Go:  %q\n"+
				"Asm: %q\n", goFile, s, decls, funcs)
		}
	}
}

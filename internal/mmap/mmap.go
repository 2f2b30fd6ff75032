// Package mmap maps regular files into memory for reading.
package mmap

import (
	"errors"
	"fmt"
	"math"
	"os"
)

// ErrNotRegular is returned when mapping a file that is not a regular file
// (a pipe, terminal or directory). Those must be read as a stream.
var ErrNotRegular = errors.New("mmap: not a regular file")

// File maps the contents of f. The returned slice must be released with
// Unmap and must not be modified. An empty file returns a nil slice.
//
// On platforms without mmap support the file is read into memory instead.
//
// Truncating the file while the mapping is in use causes reads past the new
// end of file to fault (SIGBUS), which crashes the program.
func File(f *os.File) ([]byte, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, f.Name())
	}
	size := fi.Size()
	if size == 0 {
		return nil, nil
	}
	if size < 0 || size > math.MaxInt {
		return nil, fmt.Errorf("mmap: %s: file too large: %d", f.Name(), size)
	}
	return mapFile(f, int(size))
}

// Unmap releases data returned by File.
func Unmap(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return unmap(data)
}

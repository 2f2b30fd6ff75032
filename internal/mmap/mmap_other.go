//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package mmap

import (
	"io"
	"os"
)

// TODO: use CreateFileMapping/MapViewOfFile from golang.org/x/sys/windows.
func mapFile(f *os.File, size int) ([]byte, error) {
	data := make([]byte, size)
	n, err := io.ReadFull(f, data)
	if err == io.ErrUnexpectedEOF {
		err = nil // file was truncated while reading
	}
	return data[:n], err
}

func unmap(data []byte) error {
	return nil
}

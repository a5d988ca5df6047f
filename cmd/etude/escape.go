package main

import (
	"bytes"
	"io"
)

// nulEscaper writes NUL bytes as the two characters `\0` so zero padding
// is visible on a terminal.
type nulEscaper struct {
	w io.Writer
}

func (e *nulEscaper) Write(p []byte) (int, error) {
	if bytes.IndexByte(p, 0) < 0 {
		return e.w.Write(p)
	}
	if _, err := e.w.Write(bytes.ReplaceAll(p, []byte{0}, []byte(`\0`))); err != nil {
		return 0, err
	}
	return len(p), nil
}

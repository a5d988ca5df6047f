//go:build !unix

package mmap

import "os"

func mapFile(_ *os.File, _ int) ([]byte, error) {
	return nil, ErrUnsupported
}

func unmap(_ []byte) error {
	return nil
}

func flush(_ []byte) error {
	return ErrUnsupported
}

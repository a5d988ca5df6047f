// Package mmap maps files into directly addressable, writable memory.
//
// It is the only package that touches raw OS mapping calls. Callers get a
// Map whose Bytes method exposes the shared mapping; bounds checking and
// edit semantics live in the buffer package on top of it.
//
// Basic usage:
//
//	m, err := mmap.Open("notes.txt", 64*1024)
//	if err != nil {
//	    return err
//	}
//	defer m.Close()
//
//	copy(m.Bytes()[0:], "hello")
//	if err := m.Sync(); err != nil {
//	    return err
//	}
//
// Open creates the file when it does not exist and forces its length to the
// requested size, truncating or zero-extending as needed. Close unmaps the
// region and closes the handle; the file keeps its allocated size.
package mmap

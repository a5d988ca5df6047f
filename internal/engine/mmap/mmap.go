package mmap

import (
	"errors"
	"os"
	"runtime"
)

// Errors returned by mapping operations.
var (
	ErrInvalidSize = errors.New("invalid size")
	ErrClosed      = errors.New("mapping is closed")
	ErrUnsupported = errors.New("memory mapping not supported on this platform")
)

// Error records a failed mapping step and the file it applied to.
type Error struct {
	Op   string // "open", "truncate", "map", "sync", "unmap", "close"
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := "mmap: " + e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// region is the releasable part of a Map. It is kept separate so the
// runtime cleanup can release it without referencing the Map itself.
type region struct {
	data []byte
	file *os.File
}

func (r region) release() error {
	var err error
	if len(r.data) > 0 {
		err = unmap(r.data)
	}
	if r.file != nil {
		if cerr := r.file.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Map is a shared read/write mapping of a whole file.
// A Map is not safe for concurrent use.
type Map struct {
	path    string
	region  region
	cleanup runtime.Cleanup
	closed  bool
}

// Open opens or creates the file at path, sets its length to size and maps
// it shared for reading and writing. A size of zero yields a valid Map with
// an empty span and no mapping.
func Open(path string, size int) (*Map, error) {
	if size < 0 {
		return nil, &Error{Op: "open", Path: path, Err: ErrInvalidSize}
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, &Error{Op: "open", Path: path, Err: err}
	}

	if err := f.Truncate(int64(size)); err != nil {
		f.Close()
		return nil, &Error{Op: "truncate", Path: path, Err: err}
	}

	var data []byte
	if size > 0 {
		data, err = mapFile(f, size)
		if err != nil {
			f.Close()
			return nil, &Error{Op: "map", Path: path, Err: err}
		}
	}

	m := &Map{
		path:   path,
		region: region{data: data, file: f},
	}
	// Release the mapping if the Map is dropped without Close.
	m.cleanup = runtime.AddCleanup(m, func(r region) { _ = r.release() }, m.region)
	return m, nil
}

// Bytes returns the mapped span. The slice is only valid until Close.
func (m *Map) Bytes() []byte {
	if m.closed {
		return nil
	}
	return m.region.data
}

// Len returns the mapped size in bytes.
func (m *Map) Len() int {
	if m.closed {
		return 0
	}
	return len(m.region.data)
}

// Path returns the path of the mapped file.
func (m *Map) Path() string {
	return m.path
}

// Closed reports whether Close has been called.
func (m *Map) Closed() bool {
	return m.closed
}

// Sync flushes modified pages of the mapping to the file.
func (m *Map) Sync() error {
	if m.closed {
		return &Error{Op: "sync", Path: m.path, Err: ErrClosed}
	}
	if len(m.region.data) == 0 {
		return nil
	}
	if err := flush(m.region.data); err != nil {
		return &Error{Op: "sync", Path: m.path, Err: err}
	}
	return nil
}

// Close unmaps the region and closes the file. The file is not truncated.
// Calling Close more than once is a no-op.
func (m *Map) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	m.cleanup.Stop()

	r := m.region
	m.region = region{}
	if err := r.release(); err != nil {
		return &Error{Op: "close", Path: m.path, Err: err}
	}
	return nil
}

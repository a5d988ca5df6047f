package buffer

import (
	"github.com/dshills/etudes/internal/engine/mmap"
)

// Mapped is a buffer over a file mapped shared read/write.
// Writes are visible in the file according to the platform's mapped I/O
// rules; call Sync to force them out.
type Mapped struct {
	m *mmap.Map
}

// OpenMapped opens or creates the file at path, sets its length to capacity
// and maps it. Failures are returned as *mmap.Error wrapping the OS error.
func OpenMapped(path string, capacity int) (*Mapped, error) {
	m, err := mmap.Open(path, capacity)
	if err != nil {
		return nil, err
	}
	return &Mapped{m: m}, nil
}

// Kind returns KindMapped.
func (b *Mapped) Kind() Kind { return KindMapped }

// Path returns the backing file path.
func (b *Mapped) Path() string { return b.m.Path() }

// Insert overwrites len(text) bytes at pos in the mapping.
func (b *Mapped) Insert(pos int, text string) error {
	if b.m.Closed() {
		return newError("insert", KindMapped, pos, pos+len(text), ErrClosed)
	}
	if err := span(b.m.Bytes()).insert(pos, text); err != nil {
		return newError("insert", KindMapped, pos, pos+len(text), err)
	}
	return nil
}

// Delete removes [start, end) and zero-fills the vacated tail.
func (b *Mapped) Delete(start, end int) error {
	if b.m.Closed() {
		return newError("delete", KindMapped, start, end, ErrClosed)
	}
	if err := span(b.m.Bytes()).delete(start, end); err != nil {
		return newError("delete", KindMapped, start, end, err)
	}
	return nil
}

// Slice returns [start, end) as a string. The bytes must be valid UTF-8.
func (b *Mapped) Slice(start, end int) (string, error) {
	if b.m.Closed() {
		return "", newError("slice", KindMapped, start, end, ErrClosed)
	}
	s, err := span(b.m.Bytes()).slice(start, end)
	if err != nil {
		return "", newError("slice", KindMapped, start, end, err)
	}
	return s, nil
}

// Bytes returns a copy of [start, end).
func (b *Mapped) Bytes(start, end int) ([]byte, error) {
	if b.m.Closed() {
		return nil, newError("bytes", KindMapped, start, end, ErrClosed)
	}
	out, err := span(b.m.Bytes()).bytes(start, end)
	if err != nil {
		return nil, newError("bytes", KindMapped, start, end, err)
	}
	return out, nil
}

// Len returns the mapped capacity.
func (b *Mapped) Len() int { return b.m.Len() }

// Sync flushes the mapping to the file.
func (b *Mapped) Sync() error {
	return b.m.Sync()
}

// Close unmaps the file and closes its handle. The file keeps its size.
func (b *Mapped) Close() error {
	return b.m.Close()
}

func (*Mapped) sealed() {}

package buffer

import (
	"container/list"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"unicode/utf8"
)

// Paged is a file-backed buffer that keeps at most a fixed number of pages
// resident. Pages are loaded on first access and written back when evicted,
// on Sync, and on Close. It follows the same edit rules as Mapped.
//
// An insert whose pages fit in the cache loads them all before copying, so
// an I/O error leaves the content untouched. Wider inserts, and deletes,
// can be left partly applied by an I/O error.
type Paged struct {
	file     *os.File
	path     string
	capacity int
	pageSize int
	maxPages int

	pages   map[int]*list.Element
	lru     *list.List // front is most recently used
	scratch []byte

	stats   PageStats
	cleanup runtime.Cleanup
	closed  bool
}

type page struct {
	index int
	data  []byte
	dirty bool
}

// PageStats reports page cache activity.
type PageStats struct {
	Hits       uint64
	Misses     uint64
	Evictions  uint64
	WriteBacks uint64
	Resident   int
}

// OpenPaged opens or creates the file at path and sets its length to
// capacity. No pages are read until they are accessed.
func OpenPaged(path string, capacity int, opts ...PagedOption) (*Paged, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, err
	}
	if err := f.Truncate(int64(capacity)); err != nil {
		f.Close()
		return nil, err
	}

	p := &Paged{
		file:     f,
		path:     path,
		capacity: capacity,
		pageSize: DefaultPageSize,
		maxPages: DefaultCachePages,
		pages:    make(map[int]*list.Element),
		lru:      list.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.scratch = make([]byte, p.pageSize)

	// Dirty pages are lost if the buffer is dropped without Close,
	// but the handle is still released.
	p.cleanup = runtime.AddCleanup(p, func(f *os.File) { _ = f.Close() }, f)
	return p, nil
}

// Kind returns KindPaged.
func (p *Paged) Kind() Kind { return KindPaged }

// Path returns the backing file path.
func (p *Paged) Path() string { return p.path }

// PageSize returns the size of one cached page.
func (p *Paged) PageSize() int { return p.pageSize }

// Stats returns a snapshot of page cache counters.
func (p *Paged) Stats() PageStats {
	s := p.stats
	s.Resident = p.lru.Len()
	return s
}

// Insert overwrites len(text) bytes at pos through the page cache.
func (p *Paged) Insert(pos int, text string) error {
	if p.closed {
		return newError("insert", KindPaged, pos, pos+len(text), ErrClosed)
	}
	if pos < 0 || pos > p.capacity {
		return newError("insert", KindPaged, pos, pos+len(text), ErrOutOfBounds)
	}
	if len(text) > p.capacity-pos {
		return newError("insert", KindPaged, pos, pos+len(text), ErrCapacityExceeded)
	}
	if err := p.fault(pos, len(text)); err != nil {
		return newError("insert", KindPaged, pos, pos+len(text), err)
	}
	if err := p.writeAt([]byte(text), pos); err != nil {
		return newError("insert", KindPaged, pos, pos+len(text), err)
	}
	return nil
}

// fault makes the pages covering [off, off+n) resident when they fit in the
// cache together. Pages already resident are only touched.
func (p *Paged) fault(off, n int) error {
	if n == 0 {
		return nil
	}
	first, last := off/p.pageSize, (off+n-1)/p.pageSize
	if last-first+1 > p.maxPages {
		return nil
	}
	for i := first; i <= last; i++ {
		if _, err := p.page(i); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes [start, end) and zero-fills the vacated tail.
func (p *Paged) Delete(start, end int) error {
	if p.closed {
		return newError("delete", KindPaged, start, end, ErrClosed)
	}
	if !(Range{Start: start, End: end}).Within(p.capacity) {
		return newError("delete", KindPaged, start, end, ErrInvalidRange)
	}
	if err := p.shiftLeft(start, end); err != nil {
		return newError("delete", KindPaged, start, end, err)
	}
	return nil
}

// shiftLeft moves [end, capacity) to start one chunk at a time, low to high,
// then zero-fills the vacated tail.
func (p *Paged) shiftLeft(start, end int) error {
	n := end - start
	if n == 0 {
		return nil
	}

	chunk := p.scratch
	for src := end; src < p.capacity; {
		c := chunk[:min(len(chunk), p.capacity-src)]
		if err := p.readAt(c, src); err != nil {
			return err
		}
		if err := p.writeAt(c, src-n); err != nil {
			return err
		}
		src += len(c)
	}

	clear(chunk)
	for off := p.capacity - n; off < p.capacity; {
		c := chunk[:min(len(chunk), p.capacity-off)]
		if err := p.writeAt(c, off); err != nil {
			return err
		}
		off += len(c)
	}
	return nil
}

// Slice returns [start, end) as a string. The bytes must be valid UTF-8.
func (p *Paged) Slice(start, end int) (string, error) {
	b, err := p.read("slice", start, end)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", newError("slice", KindPaged, start, end, ErrInvalidEncoding)
	}
	return string(b), nil
}

// Bytes returns a copy of [start, end).
func (p *Paged) Bytes(start, end int) ([]byte, error) {
	return p.read("bytes", start, end)
}

func (p *Paged) read(op string, start, end int) ([]byte, error) {
	if p.closed {
		return nil, newError(op, KindPaged, start, end, ErrClosed)
	}
	if !(Range{Start: start, End: end}).Within(p.capacity) {
		return nil, newError(op, KindPaged, start, end, ErrInvalidRange)
	}
	out := make([]byte, end-start)
	if err := p.readAt(out, start); err != nil {
		return nil, newError(op, KindPaged, start, end, err)
	}
	return out, nil
}

// Len returns the file capacity.
func (p *Paged) Len() int { return p.capacity }

// Sync writes back dirty pages and syncs the file.
func (p *Paged) Sync() error {
	if p.closed {
		return newError("sync", KindPaged, 0, p.capacity, ErrClosed)
	}
	if err := p.flush(); err != nil {
		return newError("sync", KindPaged, 0, p.capacity, err)
	}
	if err := p.file.Sync(); err != nil {
		return newError("sync", KindPaged, 0, p.capacity, err)
	}
	return nil
}

// Close writes back dirty pages and closes the file.
func (p *Paged) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.cleanup.Stop()

	err := p.flush()
	if cerr := p.file.Close(); err == nil {
		err = cerr
	}
	p.pages = nil
	p.lru.Init()
	if err != nil {
		return newError("close", KindPaged, 0, p.capacity, err)
	}
	return nil
}

func (*Paged) sealed() {}

// readAt fills b from the buffer starting at off. Bounds are checked by callers.
func (p *Paged) readAt(b []byte, off int) error {
	for len(b) > 0 {
		pg, err := p.page(off / p.pageSize)
		if err != nil {
			return err
		}
		n := copy(b, pg.data[off%p.pageSize:])
		b = b[n:]
		off += n
	}
	return nil
}

// writeAt copies b into the buffer starting at off. Bounds are checked by callers.
func (p *Paged) writeAt(b []byte, off int) error {
	for len(b) > 0 {
		pg, err := p.page(off / p.pageSize)
		if err != nil {
			return err
		}
		n := copy(pg.data[off%p.pageSize:], b)
		pg.dirty = true
		b = b[n:]
		off += n
	}
	return nil
}

// page returns the resident page with the given index, loading it and
// evicting the least recently used page if needed.
func (p *Paged) page(index int) (*page, error) {
	if el, ok := p.pages[index]; ok {
		p.stats.Hits++
		p.lru.MoveToFront(el)
		return el.Value.(*page), nil
	}
	p.stats.Misses++

	for p.lru.Len() >= p.maxPages {
		if err := p.evict(); err != nil {
			return nil, err
		}
	}

	off := index * p.pageSize
	size := min(p.pageSize, p.capacity-off)
	pg := &page{index: index, data: make([]byte, size)}
	n, err := p.file.ReadAt(pg.data, int64(off))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	// A file shortened behind our back reads as zeros.
	clear(pg.data[n:])

	p.pages[index] = p.lru.PushFront(pg)
	return pg, nil
}

func (p *Paged) evict() error {
	el := p.lru.Back()
	if el == nil {
		return nil
	}
	pg := el.Value.(*page)
	if err := p.writeBack(pg); err != nil {
		return err
	}
	p.lru.Remove(el)
	delete(p.pages, pg.index)
	p.stats.Evictions++
	return nil
}

func (p *Paged) writeBack(pg *page) error {
	if !pg.dirty {
		return nil
	}
	if _, err := p.file.WriteAt(pg.data, int64(pg.index*p.pageSize)); err != nil {
		return err
	}
	pg.dirty = false
	p.stats.WriteBacks++
	return nil
}

func (p *Paged) flush() error {
	for el := p.lru.Back(); el != nil; el = el.Prev() {
		if err := p.writeBack(el.Value.(*page)); err != nil {
			return err
		}
	}
	return nil
}

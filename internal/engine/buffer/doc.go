// Package buffer provides fixed-capacity, byte-addressed text buffers that
// back the editor's text widget.
//
// A Buffer is one of a closed set of variants:
//
//   - Empty: placeholder with no storage; every operation fails with
//     ErrUnimplemented
//   - Memory: a zeroed heap span
//   - Mapped: a file mapped shared read/write into memory
//   - Paged: a file accessed through a bounded cache of pages, for
//     capacities that should not be resident all at once
//
// Capacity is fixed when the buffer is created. Edits never grow, shrink or
// remap the backing store:
//
//   - Insert overwrites bytes at a position; it does not shift the tail right
//   - Delete shifts the tail left over the removed range and zero-fills the
//     vacated end
//   - Slice decodes a byte range as UTF-8 and fails rather than substitute
//     replacement characters
//
// Len reports capacity. The buffer has no end-of-content marker; callers
// track how much of the span holds content (see editor.Session).
//
// Basic usage:
//
//	buf, err := buffer.Open(buffer.Options{
//	    Kind:     buffer.KindMapped,
//	    Path:     "notes.txt",
//	    Capacity: 64 * 1024,
//	})
//	if err != nil {
//	    return err
//	}
//	defer buf.Close()
//
//	if err := buf.Insert(0, "hello"); err != nil {
//	    return err
//	}
//	text, err := buf.Slice(0, 5) // "hello"
//
// Offsets must satisfy 0 <= start <= end <= capacity. Violations are
// reported as errors wrapping ErrOutOfBounds, ErrCapacityExceeded or
// ErrInvalidRange; they are never clamped.
//
// Buffers are not safe for concurrent use. They are owned by a single
// editing session that issues one operation at a time.
package buffer

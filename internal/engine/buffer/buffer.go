package buffer

import (
	"fmt"
	"strings"
)

// Kind identifies a buffer variant.
type Kind uint8

const (
	KindEmpty  Kind = iota // No backing store
	KindMemory             // Heap span
	KindMapped             // Memory-mapped file
	KindPaged              // File behind a page cache
)

// String returns the configuration name of the kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindMemory:
		return "memory"
	case KindMapped:
		return "mapped"
	case KindPaged:
		return "paged"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind parses a kind name as written in configuration.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "empty", "none":
		return KindEmpty, nil
	case "memory", "mem":
		return KindMemory, nil
	case "mapped", "mmap":
		return KindMapped, nil
	case "paged", "virtual", "virtualized":
		return KindPaged, nil
	default:
		return KindEmpty, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Buffer is a fixed-capacity byte span with overwrite-insert and
// shift-delete semantics. The set of implementations is closed: Empty,
// Memory, Mapped and Paged.
type Buffer interface {
	// Kind returns the variant of the buffer.
	Kind() Kind

	// Insert overwrites bytes starting at pos with text.
	// The tail is not shifted; capacity never grows.
	Insert(pos int, text string) error

	// Delete removes [start, end) by shifting [end, capacity) left and
	// zero-filling the last end-start bytes.
	Delete(start, end int) error

	// Slice returns the UTF-8 text in [start, end).
	Slice(start, end int) (string, error)

	// Bytes returns a copy of the raw bytes in [start, end).
	Bytes(start, end int) ([]byte, error)

	// Len returns the capacity of the buffer in bytes.
	Len() int

	// Close releases the backing store.
	Close() error

	sealed()
}

// Syncer is implemented by buffers whose content can be flushed to a file.
type Syncer interface {
	Sync() error
}

// Open creates the buffer described by opts.
func Open(opts Options) (Buffer, error) {
	opts = opts.withDefaults()
	if opts.Capacity < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, opts.Capacity)
	}

	switch opts.Kind {
	case KindEmpty:
		return NewEmpty(), nil
	case KindMemory:
		return NewMemory(opts.Capacity), nil
	case KindMapped:
		return OpenMapped(opts.Path, opts.Capacity)
	case KindPaged:
		return OpenPaged(opts.Path, opts.Capacity,
			WithPageSize(opts.PageSize),
			WithCachePages(opts.CachePages),
		)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, opts.Kind)
	}
}

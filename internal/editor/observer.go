package editor

import "github.com/dshills/etudes/internal/engine/buffer"

// ChangeType represents the type of session change.
type ChangeType int

const (
	// ChangeOpen indicates a buffer was opened or attached.
	ChangeOpen ChangeType = iota

	// ChangeInsert indicates bytes were written.
	ChangeInsert

	// ChangeDelete indicates a range was removed.
	ChangeDelete

	// ChangeClose indicates the buffer was detached.
	ChangeClose
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeOpen:
		return "open"
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	case ChangeClose:
		return "close"
	default:
		return "unknown"
	}
}

// Change describes one session change.
type Change struct {
	Type ChangeType

	// Path of the document; empty for in-memory buffers.
	Path string

	// Range is the affected byte range. For ChangeInsert it covers the
	// written bytes, for ChangeDelete the removed ones.
	Range buffer.Range

	// Text is the inserted text for ChangeInsert.
	Text string

	// Used is the logical length after the change.
	Used int
}

// Observer is called when the session changes.
type Observer func(change Change)

// Subscription represents an active observer registration.
type Subscription struct {
	id      uint64
	session *Session
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.session != nil {
		s.session.unsubscribe(s.id)
	}
}

type subscription struct {
	id       uint64
	observer Observer
}

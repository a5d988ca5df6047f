package editor

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/etudes/internal/engine/buffer"
)

// Session owns the active buffer of an editor widget, if any.
// Edits are serialized by the session; observers run after the lock is
// released.
type Session struct {
	mu sync.Mutex

	id   uuid.UUID
	buf  buffer.Buffer // nil when no document is open
	path string
	used int

	observers []subscription
	nextSubID uint64

	logger     Logger
	stateFiles bool
}

// NewSession creates a session with no document open.
func NewSession(opts ...Option) *Session {
	s := &Session{
		id:         uuid.New(),
		logger:     nopLogger{},
		stateFiles: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Open creates a buffer from opts and makes it the active document. Any
// previous document is saved and closed first, so reopening the same file
// sees its flushed content and state. If the new buffer cannot be opened
// the session is left with no document. For file-backed buffers the
// logical length is restored from the sidecar state file, or recovered
// from the content.
func (s *Session) Open(opts buffer.Options) error {
	closeErr := s.Close()

	buf, err := buffer.Open(opts)
	if err != nil {
		return errors.Join(closeErr, err)
	}

	used, err := s.restoreUsed(buf, opts.Path)
	if err != nil {
		buf.Close()
		return errors.Join(closeErr, err)
	}

	return errors.Join(closeErr, s.attach(buf, opts.Path, used))
}

// Attach makes buf the active document with the given logical length,
// closing any previous one. Attaching nil is equivalent to Close.
func (s *Session) Attach(buf buffer.Buffer, path string, used int) error {
	if buf == nil {
		return s.Close()
	}
	if used < 0 || used > buf.Len() {
		return ErrInvalidUsed
	}
	return s.attach(buf, path, used)
}

func (s *Session) attach(buf buffer.Buffer, path string, used int) error {
	s.mu.Lock()
	prev, prevPath, prevUsed := s.buf, s.path, s.used
	s.buf, s.path, s.used = buf, path, used
	s.mu.Unlock()

	var closeErr error
	if prev != nil {
		closeErr = s.release(prev, prevPath, prevUsed)
		s.notify(Change{Type: ChangeClose, Path: prevPath, Used: 0})
	}

	s.logger.Info("opened %s buffer %q (capacity %d, used %d)", buf.Kind(), path, buf.Len(), used)
	s.notify(Change{
		Type:  ChangeOpen,
		Path:  path,
		Range: buffer.NewRange(0, used),
		Used:  used,
	})
	return closeErr
}

// Close saves state for and closes the active buffer. Closing a session
// with no document is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	buf, path, used := s.buf, s.path, s.used
	s.buf, s.path, s.used = nil, "", 0
	s.mu.Unlock()

	if buf == nil {
		return nil
	}

	err := s.release(buf, path, used)
	s.notify(Change{Type: ChangeClose, Path: path})
	return err
}

// Active reports whether a document is open.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf != nil
}

// Path returns the active document path, empty for in-memory buffers or
// when no document is open.
func (s *Session) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Kind returns the kind of the active buffer.
func (s *Session) Kind() (buffer.Kind, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buf == nil {
		return buffer.KindEmpty, ErrNoDocument
	}
	return s.buf.Kind(), nil
}

// Insert overwrites bytes at pos with text.
func (s *Session) Insert(pos int, text string) error {
	s.mu.Lock()
	if s.buf == nil {
		s.mu.Unlock()
		return ErrNoDocument
	}
	if err := s.buf.Insert(pos, text); err != nil {
		s.mu.Unlock()
		return err
	}
	s.used = max(s.used, pos+len(text))
	change := Change{
		Type:  ChangeInsert,
		Path:  s.path,
		Range: buffer.NewRange(pos, pos+len(text)),
		Text:  text,
		Used:  s.used,
	}
	s.mu.Unlock()

	s.logger.Debug("insert %s used=%d", change.Range, change.Used)
	s.notify(change)
	return nil
}

// Delete removes [start, end), shifting the rest of the buffer left.
func (s *Session) Delete(start, end int) error {
	s.mu.Lock()
	if s.buf == nil {
		s.mu.Unlock()
		return ErrNoDocument
	}
	if err := s.buf.Delete(start, end); err != nil {
		s.mu.Unlock()
		return err
	}
	r := buffer.NewRange(start, end)
	s.used -= r.Intersect(buffer.NewRange(0, s.used)).Len()
	change := Change{
		Type:  ChangeDelete,
		Path:  s.path,
		Range: r,
		Used:  s.used,
	}
	s.mu.Unlock()

	s.logger.Debug("delete %s used=%d", change.Range, change.Used)
	s.notify(change)
	return nil
}

// Slice returns the UTF-8 text in [start, end).
func (s *Session) Slice(start, end int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buf == nil {
		return "", ErrNoDocument
	}
	return s.buf.Slice(start, end)
}

// Bytes returns a copy of the raw bytes in [start, end).
func (s *Session) Bytes(start, end int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buf == nil {
		return nil, ErrNoDocument
	}
	return s.buf.Bytes(start, end)
}

// View reads [start, end) for display. See buffer.ReadView.
func (s *Session) View(start, end int) (buffer.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buf == nil {
		return buffer.View{}, ErrNoDocument
	}
	return buffer.ReadView(s.buf, start, end)
}

// Text returns the content in [0, Used()).
func (s *Session) Text() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buf == nil {
		return "", ErrNoDocument
	}
	return s.buf.Slice(0, s.used)
}

// Len returns the capacity of the active buffer, or 0 with no document.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buf == nil {
		return 0
	}
	return s.buf.Len()
}

// Used returns the logical length of the active document.
func (s *Session) Used() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.used
}

// SetUsed overrides the logical length, for callers that track content
// boundaries themselves.
func (s *Session) SetUsed(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buf == nil {
		return ErrNoDocument
	}
	if n < 0 || n > s.buf.Len() {
		return ErrInvalidUsed
	}
	s.used = n
	return nil
}

// Sync flushes the active buffer if it supports it and writes the sidecar
// state file.
func (s *Session) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buf == nil {
		return ErrNoDocument
	}
	if syncer, ok := s.buf.(buffer.Syncer); ok {
		if err := syncer.Sync(); err != nil {
			return err
		}
	}
	return s.saveState(s.buf, s.path, s.used)
}

// Observe registers an observer for session changes.
func (s *Session) Observe(fn Observer) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	s.observers = append(s.observers, subscription{id: s.nextSubID, observer: fn})
	return &Subscription{id: s.nextSubID, session: s}
}

func (s *Session) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.observers {
		if sub.id == id {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

func (s *Session) notify(change Change) {
	s.mu.Lock()
	observers := make([]subscription, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, sub := range observers {
		sub.observer(change)
	}
}

// release saves state for buf and closes it.
func (s *Session) release(buf buffer.Buffer, path string, used int) error {
	stateErr := s.saveState(buf, path, used)
	if stateErr != nil {
		s.logger.Warn("saving state for %q: %v", path, stateErr)
	}
	if err := buf.Close(); err != nil {
		return err
	}
	s.logger.Info("closed %s buffer %q", buf.Kind(), path)
	return stateErr
}

func persistent(k buffer.Kind) bool {
	return k == buffer.KindMapped || k == buffer.KindPaged
}

func (s *Session) saveState(buf buffer.Buffer, path string, used int) error {
	if !s.stateFiles || path == "" || !persistent(buf.Kind()) {
		return nil
	}
	return SaveState(StatePath(path), State{
		Kind:     buf.Kind().String(),
		Capacity: buf.Len(),
		Used:     used,
	})
}

func (s *Session) restoreUsed(buf buffer.Buffer, path string) (int, error) {
	if path == "" || !persistent(buf.Kind()) {
		return 0, nil
	}
	if s.stateFiles {
		st, ok, err := LoadState(StatePath(path))
		switch {
		case ok:
			if err != nil {
				s.logger.Warn("state for %q: %v", path, err)
			}
			return min(max(st.Used, 0), buf.Len()), nil
		case err != nil:
			s.logger.Warn("ignoring state for %q: %v", path, err)
		}
	}
	return buffer.ContentEnd(buf, buf.Len())
}

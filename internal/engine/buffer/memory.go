package buffer

// Memory is a buffer over a zeroed heap span.
type Memory struct {
	data   span
	closed bool
}

// NewMemory allocates a Memory buffer of the given capacity.
// A negative capacity is treated as zero.
func NewMemory(capacity int) *Memory {
	return &Memory{data: make(span, max(capacity, 0))}
}

// Kind returns KindMemory.
func (m *Memory) Kind() Kind { return KindMemory }

// Insert overwrites len(text) bytes at pos.
func (m *Memory) Insert(pos int, text string) error {
	if m.closed {
		return newError("insert", KindMemory, pos, pos+len(text), ErrClosed)
	}
	if err := m.data.insert(pos, text); err != nil {
		return newError("insert", KindMemory, pos, pos+len(text), err)
	}
	return nil
}

// Delete removes [start, end) and zero-fills the vacated tail.
func (m *Memory) Delete(start, end int) error {
	if m.closed {
		return newError("delete", KindMemory, start, end, ErrClosed)
	}
	if err := m.data.delete(start, end); err != nil {
		return newError("delete", KindMemory, start, end, err)
	}
	return nil
}

// Slice returns [start, end) as a string. The bytes must be valid UTF-8.
func (m *Memory) Slice(start, end int) (string, error) {
	if m.closed {
		return "", newError("slice", KindMemory, start, end, ErrClosed)
	}
	s, err := m.data.slice(start, end)
	if err != nil {
		return "", newError("slice", KindMemory, start, end, err)
	}
	return s, nil
}

// Bytes returns a copy of [start, end).
func (m *Memory) Bytes(start, end int) ([]byte, error) {
	if m.closed {
		return nil, newError("bytes", KindMemory, start, end, ErrClosed)
	}
	b, err := m.data.bytes(start, end)
	if err != nil {
		return nil, newError("bytes", KindMemory, start, end, err)
	}
	return b, nil
}

// Len returns the fixed capacity.
func (m *Memory) Len() int { return len(m.data) }

// Close drops the span. Further operations fail with ErrClosed.
func (m *Memory) Close() error {
	m.closed = true
	m.data = nil
	return nil
}

func (*Memory) sealed() {}

package buffer

// Empty is the placeholder variant used before a file is opened.
// Every operation fails with ErrUnimplemented.
type Empty struct{}

// NewEmpty returns an Empty buffer.
func NewEmpty() *Empty {
	return &Empty{}
}

// Kind returns KindEmpty.
func (*Empty) Kind() Kind { return KindEmpty }

// Insert always fails with ErrUnimplemented.
func (*Empty) Insert(pos int, text string) error {
	return newError("insert", KindEmpty, pos, pos+len(text), ErrUnimplemented)
}

// Delete always fails with ErrUnimplemented.
func (*Empty) Delete(start, end int) error {
	return newError("delete", KindEmpty, start, end, ErrUnimplemented)
}

// Slice always fails with ErrUnimplemented.
func (*Empty) Slice(start, end int) (string, error) {
	return "", newError("slice", KindEmpty, start, end, ErrUnimplemented)
}

// Bytes always fails with ErrUnimplemented.
func (*Empty) Bytes(start, end int) ([]byte, error) {
	return nil, newError("bytes", KindEmpty, start, end, ErrUnimplemented)
}

// Len returns 0; an Empty buffer has no capacity.
func (*Empty) Len() int { return 0 }

// Close is a no-op.
func (*Empty) Close() error { return nil }

func (*Empty) sealed() {}

package buffer

import "unicode/utf8"

// span holds the edit rules shared by buffers backed by one contiguous
// byte slice. Methods return bare sentinel errors; callers wrap them.
type span []byte

func (s span) insert(pos int, text string) error {
	if pos < 0 || pos > len(s) {
		return ErrOutOfBounds
	}
	if len(text) > len(s)-pos {
		return ErrCapacityExceeded
	}
	copy(s[pos:], text)
	return nil
}

func (s span) delete(start, end int) error {
	if !(Range{Start: start, End: end}).Within(len(s)) {
		return ErrInvalidRange
	}
	n := copy(s[start:], s[end:])
	clear(s[start+n:])
	return nil
}

func (s span) slice(start, end int) (string, error) {
	if !(Range{Start: start, End: end}).Within(len(s)) {
		return "", ErrInvalidRange
	}
	b := s[start:end]
	if !utf8.Valid(b) {
		return "", ErrInvalidEncoding
	}
	return string(b), nil
}

func (s span) bytes(start, end int) ([]byte, error) {
	if !(Range{Start: start, End: end}).Within(len(s)) {
		return nil, ErrInvalidRange
	}
	out := make([]byte, end-start)
	copy(out, s[start:end])
	return out, nil
}

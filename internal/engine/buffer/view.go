package buffer

import (
	"bytes"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// View is a decoded window of a buffer, as a text widget renders it.
type View struct {
	// Range is the byte range actually decoded. It lies inside the
	// requested range and starts and ends on rune boundaries.
	Range Range

	// Text is the decoded content with trailing zero padding removed.
	Text string

	// Padding is the number of trailing zero bytes dropped from Text.
	Padding int

	// Graphemes is the number of user-perceived characters in Text.
	Graphemes int

	// Width is the monospace display width of Text.
	Width int
}

// ReadView reads [start, end) from b for display. Unlike Slice, it tolerates
// a window whose edges cut through a multi-byte sequence: leading
// continuation bytes and a trailing incomplete sequence are excluded from
// the decoded range. Invalid bytes inside the window still fail with
// ErrInvalidEncoding.
func ReadView(b Buffer, start, end int) (View, error) {
	raw, err := b.Bytes(start, end)
	if err != nil {
		return View{}, err
	}

	lo := 0
	for lo < len(raw) && lo < utf8.UTFMax-1 && !utf8.RuneStart(raw[lo]) {
		lo++
	}

	hi := len(raw)
	for i := hi - 1; i >= lo && i >= hi-(utf8.UTFMax-1); i-- {
		if utf8.RuneStart(raw[i]) {
			if !utf8.FullRune(raw[i:hi]) {
				hi = i
			}
			break
		}
	}

	window := raw[lo:hi]
	if !utf8.Valid(window) {
		return View{}, newError("view", b.Kind(), start+lo, start+hi, ErrInvalidEncoding)
	}

	content := bytes.TrimRight(window, "\x00")
	text := string(content)
	return View{
		Range:     Range{Start: start + lo, End: start + hi},
		Text:      text,
		Padding:   len(window) - len(content),
		Graphemes: uniseg.GraphemeClusterCount(text),
		Width:     uniseg.StringWidth(text),
	}, nil
}

// ContentEnd returns the offset just past the last non-zero byte in
// [0, limit). It lets a caller recover a logical length from a buffer whose
// tail is zero padding.
func ContentEnd(b Buffer, limit int) (int, error) {
	limit = min(limit, b.Len())
	const chunk = 4096
	for end := limit; end > 0; {
		start := max(end-chunk, 0)
		raw, err := b.Bytes(start, end)
		if err != nil {
			return 0, err
		}
		if i := lastNonZero(raw); i >= 0 {
			return start + i + 1, nil
		}
		end = start
	}
	return 0, nil
}

func lastNonZero(b []byte) int {
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] != 0 {
			return i
		}
	}
	return -1
}

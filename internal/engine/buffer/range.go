package buffer

import "strconv"

// Range is a half-open byte span [Start, End).
type Range struct {
	Start int
	End   int
}

// NewRange returns [start, end).
func NewRange(start, end int) Range { return Range{Start: start, End: end} }

// String formats r as "[start:end)".
func (r Range) String() string {
	return "[" + strconv.Itoa(r.Start) + ":" + strconv.Itoa(r.End) + ")"
}

// Len returns the number of bytes in r.
func (r Range) Len() int { return r.End - r.Start }

// IsEmpty reports whether r has no bytes.
func (r Range) IsEmpty() bool { return r.Len() == 0 }

// Intersect clips r to other. Disjoint ranges yield an empty range
// positioned at the later start.
func (r Range) Intersect(other Range) Range {
	lo := max(r.Start, other.Start)
	hi := max(lo, min(r.End, other.End))
	return Range{Start: lo, End: hi}
}

// Within reports whether r is a valid span of a buffer of the given capacity.
func (r Range) Within(capacity int) bool {
	return 0 <= r.Start && r.Start <= r.End && r.End <= capacity
}

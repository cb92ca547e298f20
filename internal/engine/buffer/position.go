package buffer

// Position identifies a character in a buffer by zero-based line row and
// zero-based character column. Columns count runes, not bytes. A position
// with Col equal to the line length addresses the end of the line (the
// insertion point after the last character).
type Position struct {
	Row int
	Col int
}

// Before reports whether p orders strictly before other, comparing rows
// first and columns second.
func (p Position) Before(other Position) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

// After reports whether p orders strictly after other.
func (p Position) After(other Position) bool {
	return other.Before(p)
}

// Range is a half-open span of characters [Start, End) in buffer
// coordinates. Start must not order after End.
type Range struct {
	Start Position
	End   Position
}

// NewRange returns a Range with start and end in normalized order.
func NewRange(a, b Position) Range {
	if b.Before(a) {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// IsEmpty reports whether the range covers no characters.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains reports whether p falls inside the half-open range.
func (r Range) Contains(p Position) bool {
	return !p.Before(r.Start) && p.Before(r.End)
}

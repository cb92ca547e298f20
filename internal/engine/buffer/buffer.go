// Package buffer provides the character-addressed text buffer underlying
// the editor. A buffer is an ordered sequence of lines; every mutation is
// expressed through a small set of primitives (insert, delete, split,
// join) so that each one has a computable inverse for the edit history.
package buffer

import "strings"

// Buffer holds document text as lines without trailing newlines. A buffer
// always contains at least one line; the empty document is a single empty
// line. Buffers are not safe for concurrent use.
type Buffer struct {
	lines []string
}

// New returns an empty buffer containing a single empty line.
func New() *Buffer {
	return &Buffer{lines: []string{""}}
}

// FromString returns a buffer holding the lines of s split on '\n'.
// An empty string yields the single-empty-line buffer.
func FromString(s string) *Buffer {
	return &Buffer{lines: strings.Split(s, "\n")}
}

// String returns the buffer content joined with '\n'.
func (b *Buffer) String() string {
	return strings.Join(b.lines, "\n")
}

// LineCount returns the number of lines. Always at least 1.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the line at row, or "" and false when row is out of range.
func (b *Buffer) Line(row int) (string, bool) {
	if row < 0 || row >= len(b.lines) {
		return "", false
	}
	return b.lines[row], true
}

// Lines returns the underlying line slice. Callers must treat it as
// read-only; mutations go through the buffer primitives.
func (b *Buffer) Lines() []string {
	return b.lines
}

// LineLen returns the rune length of the line at row, or 0 when row is
// out of range.
func (b *Buffer) LineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len([]rune(b.lines[row]))
}

// Clamp returns p adjusted to address a valid position: row limited to
// existing lines, column limited to [0, line length].
func (b *Buffer) Clamp(p Position) Position {
	if p.Row < 0 {
		p.Row = 0
	}
	if p.Row >= len(b.lines) {
		p.Row = len(b.lines) - 1
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if n := b.LineLen(p.Row); p.Col > n {
		p.Col = n
	}
	return p
}

// ClampCursor is Clamp with the column additionally limited to the last
// character of the line (length-1) as normal-mode cursors require. The
// column is 0 on an empty line.
func (b *Buffer) ClampCursor(p Position) Position {
	p = b.Clamp(p)
	if n := b.LineLen(p.Row); p.Col >= n && n > 0 {
		p.Col = n - 1
	}
	return p
}

// InsertChar inserts r at pos. The position is clamped first.
func (b *Buffer) InsertChar(pos Position, r rune) Position {
	return b.InsertText(pos, string(r))
}

// InsertText inserts text at pos and returns the position immediately
// after the inserted text. Text may contain '\n', which splits lines.
func (b *Buffer) InsertText(pos Position, text string) Position {
	pos = b.Clamp(pos)
	if text == "" {
		return pos
	}
	line := []rune(b.lines[pos.Row])
	head := string(line[:pos.Col])
	tail := string(line[pos.Col:])

	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		b.lines[pos.Row] = head + text + tail
		return Position{Row: pos.Row, Col: pos.Col + len([]rune(text))}
	}

	b.lines[pos.Row] = head + parts[0]
	rest := make([]string, 0, len(parts)-1)
	rest = append(rest, parts[1:]...)
	endCol := len([]rune(rest[len(rest)-1]))
	rest[len(rest)-1] += tail

	updated := make([]string, 0, len(b.lines)+len(rest))
	updated = append(updated, b.lines[:pos.Row+1]...)
	updated = append(updated, rest...)
	updated = append(updated, b.lines[pos.Row+1:]...)
	b.lines = updated

	return Position{Row: pos.Row + len(parts) - 1, Col: endCol}
}

// DeleteChar removes the character at pos and returns it. The second
// return is false when pos addresses no character (end of line or out of
// range).
func (b *Buffer) DeleteChar(pos Position) (rune, bool) {
	if pos.Row < 0 || pos.Row >= len(b.lines) {
		return 0, false
	}
	line := []rune(b.lines[pos.Row])
	if pos.Col < 0 || pos.Col >= len(line) {
		return 0, false
	}
	r := line[pos.Col]
	b.lines[pos.Row] = string(line[:pos.Col]) + string(line[pos.Col+1:])
	return r, true
}

// TextRange returns the text in [start, end) without modifying the
// buffer. Positions are normalized and clamped. Line boundaries inside
// the span appear as '\n'.
func (b *Buffer) TextRange(start, end Position) string {
	rng := NewRange(b.Clamp(start), b.Clamp(end))
	start, end = rng.Start, rng.End
	if start.Row == end.Row {
		line := []rune(b.lines[start.Row])
		return string(line[start.Col:end.Col])
	}
	var sb strings.Builder
	first := []rune(b.lines[start.Row])
	sb.WriteString(string(first[start.Col:]))
	for row := start.Row + 1; row < end.Row; row++ {
		sb.WriteByte('\n')
		sb.WriteString(b.lines[row])
	}
	last := []rune(b.lines[end.Row])
	sb.WriteByte('\n')
	sb.WriteString(string(last[:end.Col]))
	return sb.String()
}

// DeleteRange removes the text in [start, end) and returns it. Inserting
// the returned text back at the normalized start position restores the
// buffer exactly.
func (b *Buffer) DeleteRange(start, end Position) string {
	rng := NewRange(b.Clamp(start), b.Clamp(end))
	start, end = rng.Start, rng.End
	if start == end {
		return ""
	}
	removed := b.TextRange(start, end)
	first := []rune(b.lines[start.Row])
	last := []rune(b.lines[end.Row])
	merged := string(first[:start.Col]) + string(last[end.Col:])

	updated := make([]string, 0, len(b.lines)-(end.Row-start.Row))
	updated = append(updated, b.lines[:start.Row]...)
	updated = append(updated, merged)
	updated = append(updated, b.lines[end.Row+1:]...)
	b.lines = updated
	return removed
}

// SplitLine breaks the line at pos into two lines at the column.
func (b *Buffer) SplitLine(pos Position) {
	b.InsertText(pos, "\n")
}

// JoinWithPrevious merges the line at row into the end of the previous
// line. It returns the seam position (end of the former previous line)
// and false when row is 0 or out of range.
func (b *Buffer) JoinWithPrevious(row int) (Position, bool) {
	if row <= 0 || row >= len(b.lines) {
		return Position{}, false
	}
	seam := Position{Row: row - 1, Col: b.LineLen(row - 1)}
	b.lines[row-1] += b.lines[row]
	b.lines = append(b.lines[:row], b.lines[row+1:]...)
	return seam, true
}

// InsertLine inserts text as a new line at index row, shifting later
// lines down. Row is clamped to [0, LineCount].
func (b *Buffer) InsertLine(row int, text string) {
	if row < 0 {
		row = 0
	}
	if row > len(b.lines) {
		row = len(b.lines)
	}
	b.lines = append(b.lines, "")
	copy(b.lines[row+1:], b.lines[row:])
	b.lines[row] = text
}

// RemoveLine deletes the line at row. Removing the only line leaves a
// single empty line, preserving the buffer invariant.
func (b *Buffer) RemoveLine(row int) (string, bool) {
	if row < 0 || row >= len(b.lines) {
		return "", false
	}
	text := b.lines[row]
	if len(b.lines) == 1 {
		b.lines[0] = ""
		return text, true
	}
	b.lines = append(b.lines[:row], b.lines[row+1:]...)
	return text, true
}

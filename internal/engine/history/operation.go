package history

import (
	"strings"

	"github.com/ekphos/ekphos/internal/engine/buffer"
)

// OpKind identifies an edit operation variant.
type OpKind uint8

const (
	// OpInsert inserts Text at Pos.
	OpInsert OpKind = iota
	// OpDelete removes the span [Pos, End), whose content is Text.
	OpDelete
	// OpSplitLine breaks the line at Pos into two lines.
	OpSplitLine
	// OpJoinLine merges line Pos.Row into the previous line; Pos.Col is
	// the seam column (the former length of the previous line).
	OpJoinLine
)

// String returns the operation kind name.
func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpSplitLine:
		return "split-line"
	case OpJoinLine:
		return "join-line"
	default:
		return "unknown"
	}
}

// Operation is a single invertible buffer edit.
type Operation struct {
	Kind OpKind
	Pos  buffer.Position
	End  buffer.Position // delete only
	Text string          // insert and delete only
}

// Insert returns an insert operation for text at pos.
func Insert(pos buffer.Position, text string) Operation {
	return Operation{Kind: OpInsert, Pos: pos, Text: text}
}

// Delete returns a delete operation covering [start, end) whose removed
// content is text.
func Delete(start, end buffer.Position, text string) Operation {
	return Operation{Kind: OpDelete, Pos: start, End: end, Text: text}
}

// SplitLine returns a split operation at pos.
func SplitLine(pos buffer.Position) Operation {
	return Operation{Kind: OpSplitLine, Pos: pos}
}

// JoinLine returns a join operation merging row into the line above it,
// with col recording the seam column for inversion.
func JoinLine(row, col int) Operation {
	return Operation{Kind: OpJoinLine, Pos: buffer.Position{Row: row, Col: col}}
}

// Invert returns the operation that exactly undoes op.
func (op Operation) Invert() Operation {
	switch op.Kind {
	case OpInsert:
		return Delete(op.Pos, textEnd(op.Pos, op.Text), op.Text)
	case OpDelete:
		return Insert(op.Pos, op.Text)
	case OpSplitLine:
		return JoinLine(op.Pos.Row+1, op.Pos.Col)
	case OpJoinLine:
		return SplitLine(buffer.Position{Row: op.Pos.Row - 1, Col: op.Pos.Col})
	default:
		return op
	}
}

// Apply performs the operation against buf.
func (op Operation) Apply(buf *buffer.Buffer) {
	switch op.Kind {
	case OpInsert:
		buf.InsertText(op.Pos, op.Text)
	case OpDelete:
		buf.DeleteRange(op.Pos, op.End)
	case OpSplitLine:
		buf.SplitLine(op.Pos)
	case OpJoinLine:
		buf.JoinWithPrevious(op.Pos.Row)
	}
}

// textEnd computes the position just past text inserted at pos.
func textEnd(pos buffer.Position, text string) buffer.Position {
	n := strings.Count(text, "\n")
	if n == 0 {
		return buffer.Position{Row: pos.Row, Col: pos.Col + len([]rune(text))}
	}
	last := text[strings.LastIndexByte(text, '\n')+1:]
	return buffer.Position{Row: pos.Row + n, Col: len([]rune(last))}
}

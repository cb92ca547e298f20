package vim

import (
	"unicode"

	"github.com/ekphos/ekphos/internal/engine/buffer"
)

// MotionKind identifies a cursor motion.
type MotionKind uint8

const (
	MotionNone MotionKind = iota
	MotionLeft
	MotionRight
	MotionUp
	MotionDown
	MotionWordForward
	MotionWordBackward
	MotionWordEndForward
	MotionWordEndBackward
	MotionBigWordForward
	MotionBigWordBackward
	MotionBigWordEndForward
	MotionBigWordEndBackward
	MotionLineStart
	MotionLineEnd
	MotionFirstNonBlank
	MotionDocumentStart
	MotionDocumentEnd
	MotionGoToLine
	MotionParagraphForward
	MotionParagraphBackward
	MotionMatchingBracket
	MotionFindChar
	MotionScreenTop
	MotionScreenMiddle
	MotionScreenBottom
	MotionHalfPageUp
	MotionHalfPageDown
	MotionPageUp
	MotionPageDown
)

// Motion is a motion request. Line carries the 1-based target for
// MotionGoToLine; Find carries the resolved character search for
// MotionFindChar. FindRepeat marks a ";" or "," repeat, which skips an
// adjacent till target.
type Motion struct {
	Kind       MotionKind
	Line       int
	Find       FindState
	FindRepeat bool
}

// IsLinewise reports whether the motion operates on whole lines when
// combined with an operator.
func (m Motion) IsLinewise() bool {
	switch m.Kind {
	case MotionUp, MotionDown, MotionDocumentStart, MotionDocumentEnd,
		MotionGoToLine, MotionParagraphForward, MotionParagraphBackward,
		MotionScreenTop, MotionScreenMiddle, MotionScreenBottom,
		MotionHalfPageUp, MotionHalfPageDown, MotionPageUp, MotionPageDown:
		return true
	}
	return false
}

// IsExclusive reports whether the motion excludes its landing column when
// combined with an operator. Motions that are neither linewise nor
// exclusive are inclusive.
func (m Motion) IsExclusive() bool {
	switch m.Kind {
	case MotionLeft, MotionRight, MotionWordForward, MotionWordBackward,
		MotionBigWordForward, MotionBigWordBackward, MotionLineStart,
		MotionFirstNonBlank:
		return true
	case MotionFindChar:
		return !m.Find.Forward
	}
	return false
}

// Viewport describes the visible window for screen-relative motions.
type Viewport struct {
	Top    int // first visible row
	Height int // visible row count
}

// Resolver computes motion targets against a buffer.
type Resolver struct {
	Buf  *buffer.Buffer
	View Viewport
}

// Resolve returns the position the motion lands on from pos, applying
// count repetitions where the motion supports them. The second return is
// false when the motion has no target (failed find, unmatched bracket).
func (r *Resolver) Resolve(pos buffer.Position, m Motion, count int) (buffer.Position, bool) {
	if count < 1 {
		count = 1
	}
	switch m.Kind {
	case MotionLeft:
		pos.Col = max(pos.Col-count, 0)
		return pos, true
	case MotionRight:
		// Lands on the end-of-line slot so an operator can cover the
		// last character; plain movement clamps afterwards.
		pos.Col = min(pos.Col+count, r.Buf.LineLen(pos.Row))
		return pos, true
	case MotionUp:
		pos.Row = max(pos.Row-count, 0)
		return pos, true
	case MotionDown:
		pos.Row = min(pos.Row+count, r.Buf.LineCount()-1)
		return pos, true
	case MotionWordForward, MotionBigWordForward:
		return r.repeat(pos, count, func(p buffer.Position) (buffer.Position, bool) {
			return r.wordForward(p, m.Kind == MotionBigWordForward)
		})
	case MotionWordBackward, MotionBigWordBackward:
		return r.repeat(pos, count, func(p buffer.Position) (buffer.Position, bool) {
			return r.wordBackward(p, m.Kind == MotionBigWordBackward)
		})
	case MotionWordEndForward, MotionBigWordEndForward:
		return r.repeat(pos, count, func(p buffer.Position) (buffer.Position, bool) {
			return r.wordEndForward(p, m.Kind == MotionBigWordEndForward)
		})
	case MotionWordEndBackward, MotionBigWordEndBackward:
		return r.repeat(pos, count, func(p buffer.Position) (buffer.Position, bool) {
			return r.wordEndBackward(p, m.Kind == MotionBigWordEndBackward)
		})
	case MotionLineStart:
		pos.Col = 0
		return pos, true
	case MotionLineEnd:
		pos.Col = max(r.Buf.LineLen(pos.Row)-1, 0)
		return pos, true
	case MotionFirstNonBlank:
		line, _ := r.Buf.Line(pos.Row)
		pos.Col = firstNonBlank(line)
		return pos, true
	case MotionDocumentStart:
		return buffer.Position{}, true
	case MotionDocumentEnd:
		row := r.Buf.LineCount() - 1
		line, _ := r.Buf.Line(row)
		return buffer.Position{Row: row, Col: firstNonBlank(line)}, true
	case MotionGoToLine:
		row := min(max(m.Line-1, 0), r.Buf.LineCount()-1)
		line, _ := r.Buf.Line(row)
		return buffer.Position{Row: row, Col: firstNonBlank(line)}, true
	case MotionParagraphForward:
		return r.repeat(pos, count, r.paragraphForward)
	case MotionParagraphBackward:
		return r.repeat(pos, count, r.paragraphBackward)
	case MotionMatchingBracket:
		return r.matchingBracket(pos)
	case MotionFindChar:
		find := m.Find
		target := pos
		for i := 0; i < count; i++ {
			line, _ := r.Buf.Line(target.Row)
			var col int
			var ok bool
			// Iterations past the first behave like ";": the till search
			// must skip the target it already sits before.
			if m.FindRepeat || i > 0 {
				col, ok = find.LocateRepeat(line, target.Col)
			} else {
				col, ok = find.Locate(line, target.Col)
			}
			if !ok {
				return pos, false
			}
			target.Col = col
		}
		return target, true
	case MotionScreenTop:
		return r.screenRow(r.View.Top), true
	case MotionScreenMiddle:
		return r.screenRow(r.View.Top + r.View.Height/2), true
	case MotionScreenBottom:
		return r.screenRow(r.View.Top + r.View.Height - 1), true
	case MotionHalfPageDown:
		pos.Row = min(pos.Row+max(r.View.Height/2, 1)*count, r.Buf.LineCount()-1)
		return pos, true
	case MotionHalfPageUp:
		pos.Row = max(pos.Row-max(r.View.Height/2, 1)*count, 0)
		return pos, true
	case MotionPageDown:
		pos.Row = min(pos.Row+max(r.View.Height, 1)*count, r.Buf.LineCount()-1)
		return pos, true
	case MotionPageUp:
		pos.Row = max(pos.Row-max(r.View.Height, 1)*count, 0)
		return pos, true
	}
	return pos, false
}

func (r *Resolver) repeat(pos buffer.Position, count int, step func(buffer.Position) (buffer.Position, bool)) (buffer.Position, bool) {
	for i := 0; i < count; i++ {
		next, ok := step(pos)
		if !ok || next == pos {
			return pos, i > 0
		}
		pos = next
	}
	return pos, true
}

func (r *Resolver) screenRow(row int) buffer.Position {
	row = min(max(row, 0), r.Buf.LineCount()-1)
	line, _ := r.Buf.Line(row)
	return buffer.Position{Row: row, Col: firstNonBlank(line)}
}

// charClass buckets a rune for word motions: 0 whitespace, 1 word
// characters (letters, digits, underscore), 2 other punctuation.
func charClass(r rune) int {
	switch {
	case unicode.IsSpace(r):
		return 0
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return 1
	default:
		return 2
	}
}

// bigClass collapses to whitespace vs non-whitespace for WORD motions.
func bigClass(r rune) int {
	if unicode.IsSpace(r) {
		return 0
	}
	return 1
}

func classOf(r rune, big bool) int {
	if big {
		return bigClass(r)
	}
	return charClass(r)
}

func firstNonBlank(line string) int {
	for i, r := range []rune(line) {
		if !unicode.IsSpace(r) {
			return i
		}
	}
	return 0
}

// wordForward moves to the start of the next word: skip the current
// class run, then skip whitespace. Landing past the end of the line
// wraps to the start of the next line.
func (r *Resolver) wordForward(pos buffer.Position, big bool) (buffer.Position, bool) {
	line, ok := r.Buf.Line(pos.Row)
	if !ok {
		return pos, false
	}
	runes := []rune(line)
	col := pos.Col
	if col < len(runes) {
		cls := classOf(runes[col], big)
		for col < len(runes) && classOf(runes[col], big) == cls {
			col++
		}
		for col < len(runes) && classOf(runes[col], big) == 0 {
			col++
		}
	}
	if col >= len(runes) {
		if pos.Row+1 < r.Buf.LineCount() {
			return buffer.Position{Row: pos.Row + 1, Col: 0}, true
		}
		return buffer.Position{Row: pos.Row, Col: max(len(runes)-1, 0)}, true
	}
	return buffer.Position{Row: pos.Row, Col: col}, true
}

// wordBackward moves to the start of the previous word. At the start of a
// line it wraps to the end of the previous line.
func (r *Resolver) wordBackward(pos buffer.Position, big bool) (buffer.Position, bool) {
	if pos.Col == 0 {
		if pos.Row == 0 {
			return pos, false
		}
		row := pos.Row - 1
		return buffer.Position{Row: row, Col: max(r.Buf.LineLen(row)-1, 0)}, true
	}
	line, _ := r.Buf.Line(pos.Row)
	runes := []rune(line)
	col := pos.Col - 1
	for col > 0 && classOf(runes[col], big) == 0 {
		col--
	}
	if col >= 0 && col < len(runes) && classOf(runes[col], big) != 0 {
		cls := classOf(runes[col], big)
		for col > 0 && classOf(runes[col-1], big) == cls {
			col--
		}
	}
	return buffer.Position{Row: pos.Row, Col: max(col, 0)}, true
}

// wordEndForward moves to the last character of the current or next word.
func (r *Resolver) wordEndForward(pos buffer.Position, big bool) (buffer.Position, bool) {
	line, ok := r.Buf.Line(pos.Row)
	if !ok {
		return pos, false
	}
	runes := []rune(line)
	col := pos.Col + 1
	for col < len(runes) && classOf(runes[col], big) == 0 {
		col++
	}
	if col >= len(runes) {
		if pos.Row+1 < r.Buf.LineCount() {
			next := buffer.Position{Row: pos.Row + 1, Col: 0}
			if r.Buf.LineLen(next.Row) == 0 {
				return next, true
			}
			// Restart the scan on the next line from before its first
			// character.
			return r.wordEndForward(buffer.Position{Row: next.Row, Col: -1}, big)
		}
		return buffer.Position{Row: pos.Row, Col: max(len(runes)-1, 0)}, true
	}
	cls := classOf(runes[col], big)
	for col+1 < len(runes) && classOf(runes[col+1], big) == cls {
		col++
	}
	return buffer.Position{Row: pos.Row, Col: col}, true
}

// wordEndBackward moves to the end of the previous word (ge / gE).
func (r *Resolver) wordEndBackward(pos buffer.Position, big bool) (buffer.Position, bool) {
	line, _ := r.Buf.Line(pos.Row)
	runes := []rune(line)
	col := pos.Col - 1
	// Step off the current word first.
	if col >= 0 && col < len(runes) && pos.Col < len(runes) &&
		classOf(runes[col], big) == classOf(runes[pos.Col], big) && classOf(runes[col], big) != 0 {
		cls := classOf(runes[col], big)
		for col >= 0 && classOf(runes[col], big) == cls {
			col--
		}
	}
	for col >= 0 && classOf(runes[col], big) == 0 {
		col--
	}
	if col < 0 {
		if pos.Row == 0 {
			return pos, false
		}
		row := pos.Row - 1
		return buffer.Position{Row: row, Col: max(r.Buf.LineLen(row)-1, 0)}, true
	}
	return buffer.Position{Row: pos.Row, Col: col}, true
}

// paragraphForward moves to the next blank line after the current block,
// or the last line when none follows.
func (r *Resolver) paragraphForward(pos buffer.Position) (buffer.Position, bool) {
	row := pos.Row + 1
	// Skip any blank lines the cursor already sits in.
	for row < r.Buf.LineCount() && r.Buf.LineLen(row) == 0 && r.Buf.LineLen(pos.Row) == 0 {
		row++
	}
	for row < r.Buf.LineCount() {
		if r.Buf.LineLen(row) == 0 {
			return buffer.Position{Row: row, Col: 0}, true
		}
		row++
	}
	last := r.Buf.LineCount() - 1
	return buffer.Position{Row: last, Col: max(r.Buf.LineLen(last)-1, 0)}, true
}

// paragraphBackward moves to the previous blank line before the current
// block, or the first line when none precedes.
func (r *Resolver) paragraphBackward(pos buffer.Position) (buffer.Position, bool) {
	row := pos.Row - 1
	for row >= 0 && r.Buf.LineLen(row) == 0 && r.Buf.LineLen(pos.Row) == 0 {
		row--
	}
	for row >= 0 {
		if r.Buf.LineLen(row) == 0 {
			return buffer.Position{Row: row, Col: 0}, true
		}
		row--
	}
	return buffer.Position{}, true
}

var bracketPairs = map[rune]struct {
	match   rune
	forward bool
}{
	'(': {')', true},
	')': {'(', false},
	'[': {']', true},
	']': {'[', false},
	'{': {'}', true},
	'}': {'{', false},
	'<': {'>', true},
	'>': {'<', false},
}

// matchingBracket finds the partner of the bracket at or after the
// cursor on the current line, scanning across lines with depth tracking.
func (r *Resolver) matchingBracket(pos buffer.Position) (buffer.Position, bool) {
	line, ok := r.Buf.Line(pos.Row)
	if !ok {
		return pos, false
	}
	runes := []rune(line)
	col := pos.Col
	// Like %, scan right on the line for the first bracket.
	for col < len(runes) {
		if _, isBracket := bracketPairs[runes[col]]; isBracket {
			break
		}
		col++
	}
	if col >= len(runes) {
		return pos, false
	}
	open := runes[col]
	pair := bracketPairs[open]
	depth := 0
	if pair.forward {
		for row := pos.Row; row < r.Buf.LineCount(); row++ {
			l, _ := r.Buf.Line(row)
			rs := []rune(l)
			start := 0
			if row == pos.Row {
				start = col
			}
			for i := start; i < len(rs); i++ {
				switch rs[i] {
				case open:
					depth++
				case pair.match:
					depth--
					if depth == 0 {
						return buffer.Position{Row: row, Col: i}, true
					}
				}
			}
		}
		return pos, false
	}
	for row := pos.Row; row >= 0; row-- {
		l, _ := r.Buf.Line(row)
		rs := []rune(l)
		start := len(rs) - 1
		if row == pos.Row {
			start = col
		}
		for i := start; i >= 0; i-- {
			switch rs[i] {
			case open:
				depth++
			case pair.match:
				depth--
				if depth == 0 {
					return buffer.Position{Row: row, Col: i}, true
				}
			}
		}
	}
	return pos, false
}

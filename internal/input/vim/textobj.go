package vim

import (
	"unicode"

	"github.com/ekphos/ekphos/internal/engine/buffer"
)

// Scope selects the inner or around variant of a text object.
type Scope uint8

const (
	ScopeInner  Scope = iota // i: content only
	ScopeAround              // a: content plus delimiters or whitespace
)

// Object identifies a text object target.
type Object uint8

const (
	ObjectWord Object = iota
	ObjectBigWord
	ObjectParagraph
	ObjectSingleQuote
	ObjectDoubleQuote
	ObjectBacktick
	ObjectParen
	ObjectBracket
	ObjectBrace
	ObjectAngle
)

// ParseObject maps a text-object key to its Object. The boolean is false
// for keys that name no object.
func ParseObject(r rune) (Object, bool) {
	switch r {
	case 'w':
		return ObjectWord, true
	case 'W':
		return ObjectBigWord, true
	case 'p':
		return ObjectParagraph, true
	case '\'':
		return ObjectSingleQuote, true
	case '"':
		return ObjectDoubleQuote, true
	case '`':
		return ObjectBacktick, true
	case '(', ')', 'b':
		return ObjectParen, true
	case '[', ']':
		return ObjectBracket, true
	case '{', '}', 'B':
		return ObjectBrace, true
	case '<', '>':
		return ObjectAngle, true
	}
	return 0, false
}

// ObjectSpan is the resolved extent of a text object. Linewise is true
// only for paragraph objects.
type ObjectSpan struct {
	Start    buffer.Position
	End      buffer.Position // exclusive
	Linewise bool
}

// ResolveObject computes the span of the object at pos, or false when
// the object does not exist there (no enclosing quotes or brackets, no
// word under the cursor).
func (r *Resolver) ResolveObject(scope Scope, obj Object, pos buffer.Position) (ObjectSpan, bool) {
	switch obj {
	case ObjectWord, ObjectBigWord:
		return r.wordObject(scope, pos, obj == ObjectBigWord)
	case ObjectParagraph:
		return r.paragraphObject(scope, pos)
	case ObjectSingleQuote:
		return r.quoteObject(scope, pos, '\'')
	case ObjectDoubleQuote:
		return r.quoteObject(scope, pos, '"')
	case ObjectBacktick:
		return r.quoteObject(scope, pos, '`')
	case ObjectParen:
		return r.bracketObject(scope, pos, '(', ')')
	case ObjectBracket:
		return r.bracketObject(scope, pos, '[', ']')
	case ObjectBrace:
		return r.bracketObject(scope, pos, '{', '}')
	case ObjectAngle:
		return r.bracketObject(scope, pos, '<', '>')
	}
	return ObjectSpan{}, false
}

// wordObject spans the word under the cursor. Around includes trailing
// whitespace, or leading whitespace when none trails.
func (r *Resolver) wordObject(scope Scope, pos buffer.Position, big bool) (ObjectSpan, bool) {
	line, ok := r.Buf.Line(pos.Row)
	if !ok {
		return ObjectSpan{}, false
	}
	runes := []rune(line)
	if len(runes) == 0 || pos.Col >= len(runes) {
		return ObjectSpan{}, false
	}
	cls := classOf(runes[pos.Col], big)
	start := pos.Col
	for start > 0 && classOf(runes[start-1], big) == cls {
		start--
	}
	end := pos.Col + 1
	for end < len(runes) && classOf(runes[end], big) == cls {
		end++
	}
	if scope == ScopeAround {
		trailStart := end
		for end < len(runes) && unicode.IsSpace(runes[end]) {
			end++
		}
		if end == trailStart {
			for start > 0 && unicode.IsSpace(runes[start-1]) {
				start--
			}
		}
	}
	return ObjectSpan{
		Start: buffer.Position{Row: pos.Row, Col: start},
		End:   buffer.Position{Row: pos.Row, Col: end},
	}, true
}

// quoteObject spans a quoted run on the cursor line. Quote pairing is
// per line, alternating open/close from the line start; the pair chosen
// either contains the cursor or is the next one after it.
func (r *Resolver) quoteObject(scope Scope, pos buffer.Position, quote rune) (ObjectSpan, bool) {
	line, ok := r.Buf.Line(pos.Row)
	if !ok {
		return ObjectSpan{}, false
	}
	runes := []rune(line)
	var positions []int
	for i, c := range runes {
		if c == quote {
			positions = append(positions, i)
		}
	}
	for i := 0; i+1 < len(positions); i += 2 {
		open, close := positions[i], positions[i+1]
		if pos.Col <= close {
			start, end := open+1, close
			if scope == ScopeAround {
				start, end = open, close+1
			}
			return ObjectSpan{
				Start: buffer.Position{Row: pos.Row, Col: start},
				End:   buffer.Position{Row: pos.Row, Col: end},
			}, true
		}
	}
	return ObjectSpan{}, false
}

// bracketObject spans the innermost enclosing bracket pair, scanning
// across lines.
func (r *Resolver) bracketObject(scope Scope, pos buffer.Position, open, close rune) (ObjectSpan, bool) {
	openPos, ok := r.findEnclosingOpen(pos, open, close)
	if !ok {
		return ObjectSpan{}, false
	}
	closePos, ok := r.findMatchingClose(openPos, open, close)
	if !ok {
		return ObjectSpan{}, false
	}
	if scope == ScopeAround {
		return ObjectSpan{Start: openPos, End: buffer.Position{Row: closePos.Row, Col: closePos.Col + 1}}, true
	}
	start := buffer.Position{Row: openPos.Row, Col: openPos.Col + 1}
	if start.Col > r.Buf.LineLen(start.Row) {
		start = buffer.Position{Row: start.Row + 1, Col: 0}
	}
	return ObjectSpan{Start: start, End: closePos}, true
}

// findEnclosingOpen locates the opener whose pair contains pos. A cursor
// sitting on an opener uses that opener itself.
func (r *Resolver) findEnclosingOpen(pos buffer.Position, open, close rune) (buffer.Position, bool) {
	line, ok := r.Buf.Line(pos.Row)
	if !ok {
		return buffer.Position{}, false
	}
	runes := []rune(line)
	if pos.Col < len(runes) && runes[pos.Col] == open {
		return pos, true
	}
	depth := 0
	for row := pos.Row; row >= 0; row-- {
		l, _ := r.Buf.Line(row)
		rs := []rune(l)
		start := len(rs) - 1
		if row == pos.Row {
			start = min(pos.Col, len(rs)-1)
		}
		for i := start; i >= 0; i-- {
			switch rs[i] {
			case close:
				if !(row == pos.Row && i == pos.Col) {
					depth++
				}
			case open:
				if depth == 0 {
					return buffer.Position{Row: row, Col: i}, true
				}
				depth--
			}
		}
	}
	return buffer.Position{}, false
}

// findMatchingClose locates the closer matching the opener at openPos.
func (r *Resolver) findMatchingClose(openPos buffer.Position, open, close rune) (buffer.Position, bool) {
	depth := 0
	for row := openPos.Row; row < r.Buf.LineCount(); row++ {
		l, _ := r.Buf.Line(row)
		rs := []rune(l)
		start := 0
		if row == openPos.Row {
			start = openPos.Col
		}
		for i := start; i < len(rs); i++ {
			switch rs[i] {
			case open:
				depth++
			case close:
				depth--
				if depth == 0 {
					return buffer.Position{Row: row, Col: i}, true
				}
			}
		}
	}
	return buffer.Position{}, false
}

// paragraphObject spans the blank-line-delimited block around the
// cursor. Around extends through the trailing blank lines.
func (r *Resolver) paragraphObject(scope Scope, pos buffer.Position) (ObjectSpan, bool) {
	startRow := pos.Row
	for startRow > 0 && r.Buf.LineLen(startRow-1) != 0 {
		startRow--
	}
	endRow := pos.Row
	for endRow+1 < r.Buf.LineCount() && r.Buf.LineLen(endRow+1) != 0 {
		endRow++
	}
	if scope == ScopeAround {
		for endRow+1 < r.Buf.LineCount() && r.Buf.LineLen(endRow+1) == 0 {
			endRow++
		}
	}
	return ObjectSpan{
		Start:    buffer.Position{Row: startRow, Col: 0},
		End:      buffer.Position{Row: endRow + 1, Col: 0},
		Linewise: true,
	}, true
}

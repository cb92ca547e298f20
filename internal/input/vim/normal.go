package vim

import (
	"strings"
	"unicode"

	"github.com/ekphos/ekphos/internal/engine/buffer"
	"github.com/ekphos/ekphos/internal/engine/history"
	"github.com/ekphos/ekphos/internal/input/key"
)

// handleNormal dispatches keys in normal, visual, and operator-pending
// modes. Latched prefixes (f, r, m, q, @, ", g, z, i/a after an
// operator) consume the key first; Escape clears every latch at once.
func (s *Session) handleNormal(ev key.Event) Result {
	st := s.state

	if ev.Key == key.KeyEscape {
		st.ResetPending()
		if st.Mode.IsVisual() {
			s.cur.ClearSelection()
			st.Mode = ModeNormal
		}
		st.StatusMessage = ""
		return Result{}
	}

	switch {
	case ev.IsCtrl('r'):
		st.StatusMessage = ""
		s.redo()
		return Result{}
	case ev.IsCtrl('v'):
		s.enterVisual(ModeVisualBlock)
		return Result{}
	case ev.IsCtrl('d'):
		return s.applyMotion(Motion{Kind: MotionHalfPageDown}, st.TakeCount())
	case ev.IsCtrl('u'):
		return s.applyMotion(Motion{Kind: MotionHalfPageUp}, st.TakeCount())
	case ev.IsCtrl('f'):
		return s.applyMotion(Motion{Kind: MotionPageDown}, st.TakeCount())
	case ev.IsCtrl('b'):
		return s.applyMotion(Motion{Kind: MotionPageUp}, st.TakeCount())
	}

	if !ev.IsRune() {
		switch ev.Key {
		case key.KeyLeft:
			return s.applyMotion(Motion{Kind: MotionLeft}, st.TakeCount())
		case key.KeyRight:
			return s.applyMotion(Motion{Kind: MotionRight}, st.TakeCount())
		case key.KeyUp:
			return s.applyMotion(Motion{Kind: MotionUp}, st.TakeCount())
		case key.KeyDown:
			return s.applyMotion(Motion{Kind: MotionDown}, st.TakeCount())
		case key.KeyHome:
			return s.applyMotion(Motion{Kind: MotionLineStart}, 1)
		case key.KeyEnd:
			return s.applyMotion(Motion{Kind: MotionLineEnd}, 1)
		case key.KeyPageUp:
			return s.applyMotion(Motion{Kind: MotionPageUp}, st.TakeCount())
		case key.KeyPageDown:
			return s.applyMotion(Motion{Kind: MotionPageDown}, st.TakeCount())
		case key.KeyDelete:
			s.deleteChars(st.TakeCount())
		}
		return Result{}
	}

	r := ev.Rune

	// Pending-prefix completions.
	switch {
	case st.awaitReplace:
		st.awaitReplace = false
		s.replaceChar(r, st.TakeCount())
		return Result{}
	case st.pendingFind != nil:
		pf := *st.pendingFind
		st.pendingFind = nil
		find := FindState{Char: r, Forward: pf.Forward, Till: pf.Till}
		st.LastFind = &find
		return s.applyMotion(Motion{Kind: MotionFindChar, Find: find}, st.TakeCount())
	case st.pendingMark != 0:
		s.completeMark(st.pendingMark, r)
		st.pendingMark = 0
		return Result{}
	case st.pendingMacro != 0:
		pm := st.pendingMacro
		st.pendingMacro = 0
		s.completeMacro(pm, r, st.TakeCount())
		return Result{}
	case st.pendingReg:
		st.pendingReg = false
		st.Registers.Select(r)
		return Result{}
	case st.pendingScope != nil:
		scope := *st.pendingScope
		st.pendingScope = nil
		return s.applyTextObject(scope, r)
	case st.pendingG:
		st.pendingG = false
		return s.handleGKey(r)
	case st.pendingZ:
		st.pendingZ = false
		switch r {
		case 'z':
			return Result{Scroll: ScrollCenter}
		case 't':
			return Result{Scroll: ScrollTop}
		case 'b':
			return Result{Scroll: ScrollBottom}
		}
		return Result{}
	}

	// Count digits. 0 is the line-start motion unless a count is open.
	if r >= '0' && r <= '9' {
		if r != '0' || st.CountInProgress() {
			st.AccumulateCount(int(r - '0'))
			return Result{}
		}
	}

	// Operator-pending specifics: doubled operator is linewise, i/a
	// latch a text-object scope.
	if op, pending := st.PendingOperator(); pending {
		if r == op.Rune() {
			count := st.TakeCount()
			pos := s.cur.Pos()
			s.recordOperatorLinewise(op, count)
			s.operatorRows(op, pos.Row, pos.Row+count-1)
			return Result{}
		}
		switch r {
		case 'i', 'a':
			scope := ScopeInner
			if r == 'a' {
				scope = ScopeAround
			}
			st.pendingScope = &scope
			return Result{}
		}
	}

	if st.Mode.IsVisual() {
		if res, handled := s.handleVisualKey(r); handled {
			return res
		}
	}

	return s.handleNormalKey(r)
}

// handleVisualKey covers keys that act on the selection. Unhandled keys
// fall through to the shared motion and prefix handling.
func (s *Session) handleVisualKey(r rune) (Result, bool) {
	switch r {
	case 'd', 'x':
		s.visualOperator(OpDelete)
	case 'c', 's':
		s.visualOperator(OpChange)
	case 'y':
		s.visualOperator(OpYank)
	case '>':
		s.visualOperator(OpIndent)
	case '<':
		s.visualOperator(OpOutdent)
	case '~':
		s.visualOperator(OpSwapCase)
	case 'u':
		s.visualOperator(OpLowercase)
	case 'U':
		s.visualOperator(OpUppercase)
	case 'o':
		s.cur.SwapEnds()
	case 'i', 'a':
		scope := ScopeInner
		if r == 'a' {
			scope = ScopeAround
		}
		s.state.pendingScope = &scope
	case 'v':
		s.enterVisual(ModeVisual)
	case 'V':
		s.enterVisual(ModeVisualLine)
	default:
		return Result{}, false
	}
	return Result{}, true
}

func (s *Session) handleNormalKey(r rune) Result {
	st := s.state
	switch r {
	// Motions.
	case 'h':
		return s.applyMotion(Motion{Kind: MotionLeft}, st.TakeCount())
	case 'l', ' ':
		return s.applyMotion(Motion{Kind: MotionRight}, st.TakeCount())
	case 'j':
		return s.applyMotion(Motion{Kind: MotionDown}, st.TakeCount())
	case 'k':
		return s.applyMotion(Motion{Kind: MotionUp}, st.TakeCount())
	case 'w':
		return s.applyMotion(Motion{Kind: MotionWordForward}, st.TakeCount())
	case 'W':
		return s.applyMotion(Motion{Kind: MotionBigWordForward}, st.TakeCount())
	case 'b':
		return s.applyMotion(Motion{Kind: MotionWordBackward}, st.TakeCount())
	case 'B':
		return s.applyMotion(Motion{Kind: MotionBigWordBackward}, st.TakeCount())
	case 'e':
		return s.applyMotion(Motion{Kind: MotionWordEndForward}, st.TakeCount())
	case 'E':
		return s.applyMotion(Motion{Kind: MotionBigWordEndForward}, st.TakeCount())
	case '0':
		return s.applyMotion(Motion{Kind: MotionLineStart}, 1)
	case '$':
		return s.applyMotion(Motion{Kind: MotionLineEnd}, st.TakeCount())
	case '^', '_':
		return s.applyMotion(Motion{Kind: MotionFirstNonBlank}, 1)
	case 'G':
		if st.HasCount() {
			return s.applyMotion(Motion{Kind: MotionGoToLine, Line: st.TakeCount()}, 1)
		}
		return s.applyMotion(Motion{Kind: MotionDocumentEnd}, st.TakeCount())
	case '{':
		return s.applyMotion(Motion{Kind: MotionParagraphBackward}, st.TakeCount())
	case '}':
		return s.applyMotion(Motion{Kind: MotionParagraphForward}, st.TakeCount())
	case '%':
		return s.applyMotion(Motion{Kind: MotionMatchingBracket}, 1)
	case 'H':
		return s.applyMotion(Motion{Kind: MotionScreenTop}, 1)
	case 'M':
		return s.applyMotion(Motion{Kind: MotionScreenMiddle}, 1)
	case 'L':
		return s.applyMotion(Motion{Kind: MotionScreenBottom}, 1)
	case 'f', 'F', 't', 'T':
		st.pendingFind = &PendingFind{Forward: r == 'f' || r == 't', Till: r == 't' || r == 'T'}
	case ';':
		if st.LastFind != nil {
			return s.applyMotion(Motion{Kind: MotionFindChar, Find: *st.LastFind, FindRepeat: true}, st.TakeCount())
		}
	case ',':
		if st.LastFind != nil {
			return s.applyMotion(Motion{Kind: MotionFindChar, Find: st.LastFind.Reversed(), FindRepeat: true}, st.TakeCount())
		}

	// Prefix latches.
	case 'g':
		st.pendingG = true
	case 'z':
		st.pendingZ = true
	case '"':
		st.pendingReg = true
	case 'm':
		st.pendingMark = PendingMarkSet
	case '`':
		st.pendingMark = PendingMarkJump
	case '\'':
		st.pendingMark = PendingMarkLine
	case 'q':
		if st.Macros.IsRecording() {
			st.Macros.StopRecording()
		} else {
			st.pendingMacro = PendingMacroRecord
		}
	case '@':
		st.pendingMacro = PendingMacroPlay
	case 'r':
		st.awaitReplace = true

	// Operators.
	case 'd', 'c', 'y', '>', '<':
		op, _ := operatorForKey(r)
		st.EnterOperatorPending(op)

	// Mode changes.
	case 'i':
		s.startInsertCommand('i', st.TakeCount())
	case 'I':
		s.startInsertCommand('I', st.TakeCount())
	case 'a':
		s.startInsertCommand('a', st.TakeCount())
	case 'A':
		s.startInsertCommand('A', st.TakeCount())
	case 'o':
		s.startInsertCommand('o', st.TakeCount())
	case 'O':
		s.startInsertCommand('O', st.TakeCount())
	case 'R':
		s.startInsertCommand('R', st.TakeCount())
	case 'v':
		s.enterVisual(ModeVisual)
	case 'V':
		s.enterVisual(ModeVisualLine)
	case ':':
		st.ResetPending()
		st.Mode = ModeCommand
		st.CommandBuffer = ""
	case '/':
		st.ResetPending()
		st.Mode = ModeSearch
		st.SearchForward = true
		st.SearchBuffer = ""
	case '?':
		st.ResetPending()
		st.Mode = ModeSearch
		st.SearchForward = false
		st.SearchBuffer = ""
	case 'n':
		return s.searchNext(true)
	case 'N':
		return s.searchNext(false)

	// Simple edits.
	case 'x':
		s.deleteChars(st.TakeCount())
	case 'X':
		s.deleteCharsBack(st.TakeCount())
	case 's':
		s.substituteChars(st.TakeCount())
	case 'S':
		s.substituteLines(st.TakeCount())
	case 'D':
		s.deleteToEnd()
	case 'C':
		s.changeToEnd()
	case 'J':
		s.joinLines(st.TakeCount())
	case '~':
		s.toggleCase(st.TakeCount())
	case 'p':
		s.paste(true, st.TakeCount())
	case 'P':
		s.paste(false, st.TakeCount())
	case 'u':
		st.StatusMessage = ""
		s.undo()
	case '.':
		s.repeatLast(st.HasCount(), st.TakeCount())
	default:
		st.ResetPending()
	}
	return Result{}
}

func (s *Session) handleGKey(r rune) Result {
	st := s.state
	switch r {
	case 'g':
		if st.HasCount() {
			return s.applyMotion(Motion{Kind: MotionGoToLine, Line: st.TakeCount()}, 1)
		}
		return s.applyMotion(Motion{Kind: MotionDocumentStart}, 1)
	case 'e':
		return s.applyMotion(Motion{Kind: MotionWordEndBackward}, st.TakeCount())
	case 'E':
		return s.applyMotion(Motion{Kind: MotionBigWordEndBackward}, st.TakeCount())
	case 'u':
		s.enterCaseOperator(OpLowercase)
	case 'U':
		s.enterCaseOperator(OpUppercase)
	case '~':
		s.enterCaseOperator(OpSwapCase)
	default:
		st.ResetPending()
	}
	return Result{}
}

func (s *Session) enterCaseOperator(op Operator) {
	if s.state.Mode.IsVisual() {
		s.visualOperator(op)
		return
	}
	s.state.EnterOperatorPending(op)
}

func (s *Session) enterVisual(mode Mode) {
	st := s.state
	st.ResetPending()
	if st.Mode == mode {
		s.leaveVisual()
		return
	}
	if !st.Mode.IsVisual() {
		s.cur.StartSelection()
	}
	st.Mode = mode
}

func (s *Session) leaveVisual() {
	s.cur.ClearSelection()
	s.state.Mode = ModeNormal
}

// applyMotion either moves the cursor or, with an operator pending,
// applies the operator over the motion span.
func (s *Session) applyMotion(m Motion, count int) Result {
	st := s.state
	if op, pending := st.PendingOperator(); pending {
		s.operatorMotion(op, m, count)
		return Result{}
	}
	pos := s.cur.Pos()
	target, ok := s.res.Resolve(pos, m, count)
	if !ok {
		return Result{}
	}
	if isJumpMotion(m.Kind) {
		st.Marks.SetLastJump(pos)
	}
	switch m.Kind {
	case MotionUp, MotionDown, MotionHalfPageUp, MotionHalfPageDown, MotionPageUp, MotionPageDown:
		target.Col = min(s.cur.PreferredCol(), max(s.buf.LineLen(target.Row)-1, 0))
		s.cur.SetKeepPreferred(target)
	default:
		s.cur.Set(s.buf.ClampCursor(target))
	}
	return Result{}
}

func isJumpMotion(k MotionKind) bool {
	switch k {
	case MotionDocumentStart, MotionDocumentEnd, MotionGoToLine,
		MotionParagraphForward, MotionParagraphBackward, MotionMatchingBracket,
		MotionScreenTop, MotionScreenMiddle, MotionScreenBottom:
		return true
	}
	return false
}

// operatorMotion resolves the motion and applies the pending operator
// over the resulting span, with Vim's span rules: linewise motions take
// whole lines, exclusive motions leave out the landing column, and an
// exclusive motion landing on column 0 stops at the end of the previous
// line. cw behaves like ce.
func (s *Session) operatorMotion(op Operator, m Motion, count int) {
	if op == OpChange {
		switch m.Kind {
		case MotionWordForward:
			if s.cursorOnNonBlank() {
				m.Kind = MotionWordEndForward
			}
		case MotionBigWordForward:
			if s.cursorOnNonBlank() {
				m.Kind = MotionBigWordEndForward
			}
		}
	}
	pos := s.cur.Pos()
	target, ok := s.res.Resolve(pos, m, count)
	if !ok {
		s.state.ResetPending()
		return
	}
	s.recordOperatorMotion(op, m, count)
	if m.IsLinewise() {
		s.operatorRows(op, min(pos.Row, target.Row), max(pos.Row, target.Row))
		return
	}
	rng := buffer.NewRange(pos, target)
	start, end := rng.Start, rng.End
	if m.IsExclusive() {
		if end.Col == 0 && end.Row > start.Row {
			end = buffer.Position{Row: end.Row - 1, Col: s.buf.LineLen(end.Row - 1)}
		}
	} else {
		end = s.advance(end)
	}
	s.runOperator(op, ObjectSpan{Start: start, End: end})
}

func (s *Session) cursorOnNonBlank() bool {
	pos := s.cur.Pos()
	line, _ := s.buf.Line(pos.Row)
	runes := []rune(line)
	return pos.Col < len(runes) && !unicode.IsSpace(runes[pos.Col])
}

func (s *Session) operatorRows(op Operator, startRow, endRow int) {
	last := s.buf.LineCount() - 1
	startRow = min(max(startRow, 0), last)
	endRow = min(max(endRow, startRow), last)
	s.runOperator(op, ObjectSpan{
		Start:    buffer.Position{Row: startRow},
		End:      buffer.Position{Row: endRow + 1},
		Linewise: true,
	})
}

func (s *Session) applyTextObject(scope Scope, r rune) Result {
	st := s.state
	obj, ok := ParseObject(r)
	if !ok {
		st.ResetPending()
		return Result{}
	}
	span, ok := s.res.ResolveObject(scope, obj, s.cur.Pos())
	if !ok {
		st.ResetPending()
		return Result{}
	}
	if op, pending := st.PendingOperator(); pending {
		count := st.TakeCount()
		s.recordOperatorObject(op, scope, obj, count)
		s.runOperator(op, span)
		return Result{}
	}
	if st.Mode.IsVisual() {
		if span.Linewise {
			st.Mode = ModeVisualLine
			s.cur.ClearSelection()
			s.cur.Set(buffer.Position{Row: span.Start.Row})
			s.cur.StartSelection()
			s.cur.SetKeepPreferred(s.buf.ClampCursor(buffer.Position{Row: span.End.Row - 1}))
			return Result{}
		}
		s.cur.ClearSelection()
		s.cur.Set(span.Start)
		s.cur.StartSelection()
		end := span.End
		if end.Col > 0 {
			end.Col--
		}
		s.cur.SetKeepPreferred(s.buf.ClampCursor(end))
	}
	return Result{}
}

func (s *Session) visualOperator(op Operator) {
	start, end, linewise, ok := s.SelectionSpan()
	if !ok {
		return
	}
	s.state.TakeCount()
	s.runOperator(op, ObjectSpan{Start: start, End: end, Linewise: linewise})
}

// runOperator applies op over the span, routes text through the
// registers, and restores a clean normal (or insert, for change) mode.
func (s *Session) runOperator(op Operator, span ObjectSpan) {
	st := s.state
	if st.Mode.IsVisual() {
		s.cur.ClearSelection()
		st.Mode = ModeNormal
	}
	switch op {
	case OpYank:
		text := s.spanText(span)
		st.Registers.Yank(text, span.Linewise)
		if !span.Linewise {
			s.cur.Set(s.buf.ClampCursor(span.Start))
		}
	case OpDelete:
		s.deleteSpan(span)
	case OpChange:
		s.changeSpan(span)
	case OpIndent, OpOutdent:
		s.indentSpan(span, op == OpIndent)
	case OpSwapCase, OpLowercase, OpUppercase:
		s.transformSpan(span, op)
	}
	st.ResetPending()
}

// spanText extracts the span content for the registers. Linewise text
// carries a trailing newline.
func (s *Session) spanText(span ObjectSpan) string {
	if !span.Linewise {
		return s.buf.TextRange(span.Start, span.End)
	}
	lines := s.buf.Lines()
	endRow := min(span.End.Row, len(lines))
	return strings.Join(lines[span.Start.Row:endRow], "\n") + "\n"
}

func (s *Session) deleteSpan(span ObjectSpan) {
	st := s.state
	text := s.spanText(span)
	s.hist.Begin(s.cur.Pos())
	if span.Linewise {
		s.deleteRowsRecorded(span.Start.Row, span.End.Row-1)
		st.Registers.Delete(text, true)
		row := min(span.Start.Row, s.buf.LineCount()-1)
		line, _ := s.buf.Line(row)
		s.cur.Set(buffer.Position{Row: row, Col: firstNonBlank(line)})
	} else {
		removed := s.deleteRecorded(span.Start, span.End)
		if removed != "" {
			st.Registers.Delete(removed, false)
		}
		s.cur.Set(s.buf.ClampCursor(span.Start))
	}
	s.hist.Commit(s.cur.Pos())
}

func (s *Session) changeSpan(span ObjectSpan) {
	st := s.state
	text := s.spanText(span)
	s.hist.Begin(s.cur.Pos())
	if span.Linewise {
		lastRow := min(span.End.Row-1, s.buf.LineCount()-1)
		end := buffer.Position{Row: lastRow, Col: s.buf.LineLen(lastRow)}
		s.deleteRecorded(buffer.Position{Row: span.Start.Row}, end)
		st.Registers.Delete(text, true)
		s.enterInsert(buffer.Position{Row: span.Start.Row})
		return
	}
	removed := s.deleteRecorded(span.Start, span.End)
	if removed != "" {
		st.Registers.Delete(removed, false)
	}
	s.enterInsert(span.Start)
}

func (s *Session) indentSpan(span ObjectSpan, indent bool) {
	startRow := span.Start.Row
	endRow := span.End.Row
	if span.Linewise || (span.End.Col == 0 && endRow > startRow) {
		endRow--
	}
	endRow = min(endRow, s.buf.LineCount()-1)
	s.hist.Begin(s.cur.Pos())
	for row := startRow; row <= endRow; row++ {
		line, _ := s.buf.Line(row)
		if indent {
			if line != "" {
				s.insertRecorded(buffer.Position{Row: row}, s.indent)
			}
			continue
		}
		n := outdentWidth(line, s.indent)
		if n > 0 {
			s.deleteRecorded(buffer.Position{Row: row}, buffer.Position{Row: row, Col: n})
		}
	}
	line, _ := s.buf.Line(startRow)
	s.cur.Set(buffer.Position{Row: startRow, Col: firstNonBlank(line)})
	s.hist.Commit(s.cur.Pos())
}

// outdentWidth returns how many leading characters one outdent step
// removes: a tab, a full indent string, or whatever spaces are there.
func outdentWidth(line, indent string) int {
	if strings.HasPrefix(line, "\t") {
		return 1
	}
	if strings.HasPrefix(line, indent) {
		return len([]rune(indent))
	}
	n := 0
	for _, r := range line {
		if r != ' ' || n >= len([]rune(indent)) {
			break
		}
		n++
	}
	return n
}

func (s *Session) transformSpan(span ObjectSpan, op Operator) {
	start := span.Start
	end := span.End
	if span.Linewise {
		lastRow := min(span.End.Row-1, s.buf.LineCount()-1)
		start = buffer.Position{Row: span.Start.Row}
		end = buffer.Position{Row: lastRow, Col: s.buf.LineLen(lastRow)}
	}
	text := s.buf.TextRange(start, end)
	replaced := transformCase(text, op)
	if replaced == text {
		return
	}
	s.hist.Begin(s.cur.Pos())
	s.deleteRecorded(start, end)
	s.insertRecorded(start, replaced)
	s.cur.Set(s.buf.ClampCursor(start))
	s.hist.Commit(s.cur.Pos())
}

func transformCase(text string, op Operator) string {
	switch op {
	case OpLowercase:
		return strings.ToLower(text)
	case OpUppercase:
		return strings.ToUpper(text)
	default:
		return strings.Map(func(r rune) rune {
			switch {
			case unicode.IsUpper(r):
				return unicode.ToLower(r)
			case unicode.IsLower(r):
				return unicode.ToUpper(r)
			}
			return r
		}, text)
	}
}

// deleteRowsRecorded removes whole lines startRow..endRow, handling the
// trailing-newline seam when the span reaches the last line.
func (s *Session) deleteRowsRecorded(startRow, endRow int) {
	last := s.buf.LineCount() - 1
	endRow = min(endRow, last)
	switch {
	case endRow < last:
		s.deleteRecorded(buffer.Position{Row: startRow}, buffer.Position{Row: endRow + 1})
	case startRow == 0:
		s.deleteRecorded(buffer.Position{}, buffer.Position{Row: last, Col: s.buf.LineLen(last)})
	default:
		s.deleteRecorded(
			buffer.Position{Row: startRow - 1, Col: s.buf.LineLen(startRow - 1)},
			buffer.Position{Row: last, Col: s.buf.LineLen(last)},
		)
	}
}

// deleteRecorded removes [start, end) through the history and returns
// the removed text.
func (s *Session) deleteRecorded(start, end buffer.Position) string {
	rng := buffer.NewRange(s.buf.Clamp(start), s.buf.Clamp(end))
	if rng.IsEmpty() {
		return ""
	}
	text := s.buf.TextRange(rng.Start, rng.End)
	s.recordApply(history.Delete(rng.Start, rng.End, text))
	return text
}

// insertRecorded inserts text through the history and returns the
// position just past it.
func (s *Session) insertRecorded(pos buffer.Position, text string) buffer.Position {
	pos = s.buf.Clamp(pos)
	if text == "" {
		return pos
	}
	s.recordApply(history.Insert(pos, text))
	return posAfter(pos, text)
}

func posAfter(pos buffer.Position, text string) buffer.Position {
	n := strings.Count(text, "\n")
	if n == 0 {
		return buffer.Position{Row: pos.Row, Col: pos.Col + len([]rune(text))}
	}
	last := text[strings.LastIndexByte(text, '\n')+1:]
	return buffer.Position{Row: pos.Row + n, Col: len([]rune(last))}
}

func (s *Session) undo() {
	pos, err := s.hist.Undo(s.buf)
	if err != nil {
		s.state.StatusMessage = "Already at oldest change"
		return
	}
	s.cur.Set(s.buf.ClampCursor(pos))
}

func (s *Session) redo() {
	pos, err := s.hist.Redo(s.buf)
	if err != nil {
		s.state.StatusMessage = "Already at newest change"
		return
	}
	s.cur.Set(s.buf.ClampCursor(pos))
}

func (s *Session) completeMark(kind PendingMark, r rune) {
	st := s.state
	switch kind {
	case PendingMarkSet:
		st.Marks.Set(r, s.cur.Pos())
	case PendingMarkJump:
		if pos, ok := st.Marks.Get(r); ok {
			s.JumpTo(pos)
		}
	case PendingMarkLine:
		if pos, ok := st.Marks.Get(r); ok {
			pos = s.buf.Clamp(pos)
			line, _ := s.buf.Line(pos.Row)
			s.JumpTo(buffer.Position{Row: pos.Row, Col: firstNonBlank(line)})
		}
	}
}

func (s *Session) completeMacro(kind PendingMacro, r rune, count int) {
	st := s.state
	if kind == PendingMacroRecord {
		if r >= 'a' && r <= 'z' {
			st.Macros.StartRecording(r)
		}
		return
	}
	reg := r
	if reg == '@' {
		reg = st.Macros.LastPlayed()
		if reg == 0 {
			return
		}
	}
	events, ok := st.Macros.Get(reg)
	if !ok {
		return
	}
	st.Macros.MarkPlayed(reg)
	s.playMacro(events, count)
}

func (s *Session) playMacro(events []key.Event, count int) {
	if s.macroDepth >= maxMacroDepth {
		return
	}
	s.macroDepth++
	defer func() { s.macroDepth-- }()
	for i := 0; i < count; i++ {
		for _, ev := range events {
			s.dispatch(ev)
		}
	}
}

func (s *Session) moveArrow(k key.Key) {
	pos := s.cur.Pos()
	switch k {
	case key.KeyLeft:
		pos.Col = max(pos.Col-1, 0)
	case key.KeyRight:
		pos.Col = min(pos.Col+1, s.buf.LineLen(pos.Row))
	case key.KeyUp:
		pos.Row = max(pos.Row-1, 0)
		pos.Col = min(pos.Col, s.buf.LineLen(pos.Row))
	case key.KeyDown:
		pos.Row = min(pos.Row+1, s.buf.LineCount()-1)
		pos.Col = min(pos.Col, s.buf.LineLen(pos.Row))
	}
	s.cur.Set(pos)
}

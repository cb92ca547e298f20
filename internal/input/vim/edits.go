package vim

import (
	"strings"
	"unicode"

	"github.com/ekphos/ekphos/internal/engine/buffer"
	"github.com/ekphos/ekphos/internal/engine/history"
	"github.com/ekphos/ekphos/internal/input/key"
)

func (s *Session) selectedRegister() rune {
	reg, _ := s.state.Registers.Selected()
	return reg
}

// startInsertCommand enters insert (or replace, for R) mode at the spot
// the entry key selects, opening the history group and the dot record
// that the matching Escape closes.
func (s *Session) startInsertCommand(entry rune, count int) {
	st := s.state
	st.recordingCmd = &RecordedCommand{Simple: SimpleInsert, EnterKey: entry, Count: count}
	pos := s.cur.Pos()
	switch entry {
	case 'i':
		s.enterInsert(pos)
	case 'I':
		line, _ := s.buf.Line(pos.Row)
		s.enterInsert(buffer.Position{Row: pos.Row, Col: firstNonBlank(line)})
	case 'a':
		s.enterInsert(buffer.Position{Row: pos.Row, Col: min(pos.Col+1, s.buf.LineLen(pos.Row))})
	case 'A':
		s.enterInsert(buffer.Position{Row: pos.Row, Col: s.buf.LineLen(pos.Row)})
	case 'o':
		s.hist.Begin(pos)
		s.recordApply(history.SplitLine(buffer.Position{Row: pos.Row, Col: s.buf.LineLen(pos.Row)}))
		s.enterInsert(buffer.Position{Row: pos.Row + 1})
	case 'O':
		s.hist.Begin(pos)
		s.recordApply(history.SplitLine(buffer.Position{Row: pos.Row}))
		s.enterInsert(buffer.Position{Row: pos.Row})
	case 'R':
		s.hist.Begin(pos)
		st.Mode = ModeReplace
		st.insertBuffer.Reset()
	}
}

// deleteChars is x: remove count characters under and after the cursor.
func (s *Session) deleteChars(count int) {
	pos := s.cur.Pos()
	n := s.buf.LineLen(pos.Row)
	if n == 0 || pos.Col >= n {
		return
	}
	reg := s.selectedRegister()
	end := buffer.Position{Row: pos.Row, Col: min(pos.Col+count, n)}
	s.hist.Begin(pos)
	removed := s.deleteRecorded(pos, end)
	s.state.Registers.Delete(removed, false)
	s.cur.Set(s.buf.ClampCursor(pos))
	s.hist.Commit(s.cur.Pos())
	s.state.LastCommand = &RecordedCommand{Simple: SimpleDeleteChar, Count: count, Register: reg}
	s.state.ResetPending()
}

// deleteCharsBack is X: remove count characters before the cursor.
func (s *Session) deleteCharsBack(count int) {
	pos := s.cur.Pos()
	if pos.Col == 0 {
		return
	}
	reg := s.selectedRegister()
	start := buffer.Position{Row: pos.Row, Col: max(pos.Col-count, 0)}
	s.hist.Begin(pos)
	removed := s.deleteRecorded(start, pos)
	s.state.Registers.Delete(removed, false)
	s.cur.Set(start)
	s.hist.Commit(s.cur.Pos())
	s.state.LastCommand = &RecordedCommand{Simple: SimpleDeleteCharBack, Count: count, Register: reg}
	s.state.ResetPending()
}

// replaceChar is r: overwrite count characters with c. The command
// fails without touching the buffer when the line is too short.
func (s *Session) replaceChar(c rune, count int) {
	pos := s.cur.Pos()
	n := s.buf.LineLen(pos.Row)
	if pos.Col+count > n {
		return
	}
	end := buffer.Position{Row: pos.Row, Col: pos.Col + count}
	s.hist.Begin(pos)
	s.deleteRecorded(pos, end)
	s.insertRecorded(pos, strings.Repeat(string(c), count))
	s.cur.Set(buffer.Position{Row: pos.Row, Col: pos.Col + count - 1})
	s.hist.Commit(s.cur.Pos())
	s.state.LastCommand = &RecordedCommand{Simple: SimpleReplaceChar, Count: count, Char: c}
	s.state.ResetPending()
}

// substituteChars is s: delete count characters and enter insert mode.
func (s *Session) substituteChars(count int) {
	pos := s.cur.Pos()
	reg := s.selectedRegister()
	s.state.recordingCmd = &RecordedCommand{Simple: SimpleSubstituteChar, Count: count, Register: reg}
	s.hist.Begin(pos)
	end := buffer.Position{Row: pos.Row, Col: min(pos.Col+count, s.buf.LineLen(pos.Row))}
	removed := s.deleteRecorded(pos, end)
	if removed != "" {
		s.state.Registers.Delete(removed, false)
	}
	s.enterInsert(pos)
}

// substituteLines is S: change count whole lines.
func (s *Session) substituteLines(count int) {
	pos := s.cur.Pos()
	reg := s.selectedRegister()
	s.state.recordingCmd = &RecordedCommand{Simple: SimpleSubstituteLine, Count: count, Register: reg}
	s.operatorRows(OpChange, pos.Row, pos.Row+count-1)
}

// deleteToEnd is D.
func (s *Session) deleteToEnd() {
	pos := s.cur.Pos()
	reg := s.selectedRegister()
	end := buffer.Position{Row: pos.Row, Col: s.buf.LineLen(pos.Row)}
	s.hist.Begin(pos)
	removed := s.deleteRecorded(pos, end)
	if removed != "" {
		s.state.Registers.Delete(removed, false)
	}
	s.cur.Set(s.buf.ClampCursor(pos))
	s.hist.Commit(s.cur.Pos())
	s.state.LastCommand = &RecordedCommand{Simple: SimpleDeleteToEnd, Count: 1, Register: reg}
	s.state.ResetPending()
}

// changeToEnd is C: D plus insert mode.
func (s *Session) changeToEnd() {
	pos := s.cur.Pos()
	reg := s.selectedRegister()
	s.state.recordingCmd = &RecordedCommand{Simple: SimpleChangeToEnd, Count: 1, Register: reg}
	s.hist.Begin(pos)
	end := buffer.Position{Row: pos.Row, Col: s.buf.LineLen(pos.Row)}
	removed := s.deleteRecorded(pos, end)
	if removed != "" {
		s.state.Registers.Delete(removed, false)
	}
	s.enterInsert(pos)
}

// joinLines is J: join the next line onto this one with a single space,
// dropping the next line's leading whitespace. A count of n joins n-1
// times (2J and J are the same).
func (s *Session) joinLines(count int) {
	joins := max(count-1, 1)
	pos := s.cur.Pos()
	s.hist.Begin(pos)
	seam := pos
	for i := 0; i < joins; i++ {
		row := seam.Row
		if row+1 >= s.buf.LineCount() {
			break
		}
		curLen := s.buf.LineLen(row)
		next, _ := s.buf.Line(row + 1)
		ws := 0
		for _, r := range next {
			if !unicode.IsSpace(r) {
				break
			}
			ws++
		}
		s.deleteRecorded(
			buffer.Position{Row: row, Col: curLen},
			buffer.Position{Row: row + 1, Col: ws},
		)
		merged, _ := s.buf.Line(row)
		mergedRunes := []rune(merged)
		if curLen > 0 && curLen < len(mergedRunes) && !unicode.IsSpace(mergedRunes[curLen-1]) {
			s.insertRecorded(buffer.Position{Row: row, Col: curLen}, " ")
		}
		seam = buffer.Position{Row: row, Col: curLen}
	}
	s.cur.Set(s.buf.ClampCursor(seam))
	s.hist.Commit(s.cur.Pos())
	s.state.LastCommand = &RecordedCommand{Simple: SimpleJoinLines, Count: count}
	s.state.ResetPending()
}

// toggleCase is ~: flip the case of count characters, advancing the
// cursor past them.
func (s *Session) toggleCase(count int) {
	pos := s.cur.Pos()
	n := s.buf.LineLen(pos.Row)
	if n == 0 || pos.Col >= n {
		return
	}
	end := buffer.Position{Row: pos.Row, Col: min(pos.Col+count, n)}
	text := s.buf.TextRange(pos, end)
	replaced := transformCase(text, OpSwapCase)
	s.hist.Begin(pos)
	if replaced != text {
		s.deleteRecorded(pos, end)
		s.insertRecorded(pos, replaced)
	}
	s.cur.Set(s.buf.ClampCursor(end))
	s.hist.Commit(s.cur.Pos())
	s.state.LastCommand = &RecordedCommand{Simple: SimpleToggleCase, Count: count}
	s.state.ResetPending()
}

// paste is p and P. Linewise content opens below or above the cursor
// line; charwise content lands after or at the cursor column.
func (s *Session) paste(after bool, count int) {
	st := s.state
	reg := s.selectedRegister()
	content := st.Registers.PasteContent()
	if content.Text == "" {
		return
	}
	text := strings.Repeat(content.Text, count)
	pos := s.cur.Pos()
	s.hist.Begin(pos)
	if content.Linewise {
		targetRow := pos.Row
		if after {
			targetRow = pos.Row + 1
		}
		if targetRow >= s.buf.LineCount() {
			at := buffer.Position{Row: pos.Row, Col: s.buf.LineLen(pos.Row)}
			s.insertRecorded(at, "\n"+strings.TrimSuffix(text, "\n"))
		} else {
			s.insertRecorded(buffer.Position{Row: targetRow}, text)
		}
		line, _ := s.buf.Line(targetRow)
		s.cur.Set(buffer.Position{Row: targetRow, Col: firstNonBlank(line)})
	} else {
		col := pos.Col
		if after && s.buf.LineLen(pos.Row) > 0 {
			col++
		}
		end := s.insertRecorded(buffer.Position{Row: pos.Row, Col: col}, text)
		if end.Col > 0 {
			end.Col--
		}
		s.cur.Set(s.buf.ClampCursor(end))
	}
	s.hist.Commit(s.cur.Pos())
	edit := SimplePasteBefore
	if after {
		edit = SimplePasteAfter
	}
	st.LastCommand = &RecordedCommand{Simple: edit, Count: count, Register: reg}
	st.ResetPending()
}

// Dot-record constructors for the operator paths. Change commands stay
// open in recordingCmd until their insert session ends; other mutating
// operators record immediately. Yanks are not repeatable.
func (s *Session) recordOperatorMotion(op Operator, m Motion, count int) {
	if !op.ModifiesBuffer() {
		return
	}
	motion := m
	cmd := &RecordedCommand{Operator: &op, Motion: &motion, Count: count, Register: s.selectedRegister()}
	s.stashCommand(cmd)
}

func (s *Session) recordOperatorLinewise(op Operator, count int) {
	if !op.ModifiesBuffer() {
		return
	}
	cmd := &RecordedCommand{Operator: &op, Linewise: true, Count: count, Register: s.selectedRegister()}
	s.stashCommand(cmd)
}

func (s *Session) recordOperatorObject(op Operator, scope Scope, obj Object, count int) {
	if !op.ModifiesBuffer() {
		return
	}
	cmd := &RecordedCommand{
		Operator: &op, Scope: scope, Object: obj, HasObject: true,
		Count: count, Register: s.selectedRegister(),
	}
	s.stashCommand(cmd)
}

func (s *Session) stashCommand(cmd *RecordedCommand) {
	if cmd.Operator != nil && cmd.Operator.EntersInsert() {
		s.state.recordingCmd = cmd
		return
	}
	s.state.LastCommand = cmd
}

// repeatLast is ".": replay the last buffer-changing command at the
// current cursor. A count typed before the dot replaces the recorded
// count.
func (s *Session) repeatLast(hasCount bool, count int) {
	st := s.state
	cmd := st.LastCommand
	if cmd == nil {
		return
	}
	saved := *cmd
	n := saved.Count
	if n < 1 {
		n = 1
	}
	if hasCount {
		n = count
	}
	if saved.Register != 0 {
		st.Registers.Select(saved.Register)
	}

	switch {
	case saved.Operator != nil:
		op := *saved.Operator
		switch {
		case saved.Linewise:
			pos := s.cur.Pos()
			s.operatorRows(op, pos.Row, pos.Row+n-1)
		case saved.HasObject:
			if span, ok := s.res.ResolveObject(saved.Scope, saved.Object, s.cur.Pos()); ok {
				s.runOperator(op, span)
			}
		case saved.Motion != nil:
			s.operatorMotion(op, *saved.Motion, n)
		}
		s.replayInsert(saved.InsertText)
	case saved.Simple == SimpleDeleteChar:
		s.deleteChars(n)
	case saved.Simple == SimpleDeleteCharBack:
		s.deleteCharsBack(n)
	case saved.Simple == SimpleReplaceChar:
		s.replaceChar(saved.Char, n)
	case saved.Simple == SimpleSubstituteChar:
		s.substituteChars(n)
		s.replayInsert(saved.InsertText)
	case saved.Simple == SimpleSubstituteLine:
		s.substituteLines(n)
		s.replayInsert(saved.InsertText)
	case saved.Simple == SimpleDeleteToEnd:
		s.deleteToEnd()
	case saved.Simple == SimpleChangeToEnd:
		s.changeToEnd()
		s.replayInsert(saved.InsertText)
	case saved.Simple == SimpleJoinLines:
		s.joinLines(n)
	case saved.Simple == SimpleToggleCase:
		s.toggleCase(n)
	case saved.Simple == SimplePasteAfter:
		s.paste(true, n)
	case saved.Simple == SimplePasteBefore:
		s.paste(false, n)
	case saved.Simple == SimpleInsert:
		s.startInsertCommand(saved.EnterKey, n)
		s.replayInsert(saved.InsertText)
	}

	st.LastCommand = &saved
}

// replayInsert types text into the open insert or replace session and
// leaves it, as the original keystrokes did.
func (s *Session) replayInsert(text string) {
	if s.state.Mode != ModeInsert && s.state.Mode != ModeReplace {
		return
	}
	for _, r := range text {
		if r == '\n' {
			s.dispatch(key.Special(key.KeyEnter))
		} else {
			s.dispatch(key.Rune(r))
		}
	}
	s.dispatch(key.Special(key.KeyEscape))
}

package vim

import (
	"strings"

	"github.com/ekphos/ekphos/internal/engine/buffer"
	"github.com/ekphos/ekphos/internal/engine/cursor"
	"github.com/ekphos/ekphos/internal/engine/history"
	"github.com/ekphos/ekphos/internal/input/key"
)

// Action is the outward-facing intent a keystroke produced. The session
// never performs I/O; the caller owns files, search execution, and
// scrolling.
type Action uint8

const (
	ActionNone Action = iota
	ActionSave
	ActionSaveForce
	ActionQuit
	ActionQuitForce
	ActionSaveQuit
	ActionSubstitute
	ActionSearch
)

// Scroll is a viewport adjustment request from the z commands.
type Scroll uint8

const (
	ScrollNone Scroll = iota
	ScrollCenter
	ScrollTop
	ScrollBottom
)

// SearchRequest asks the caller to run a search from the cursor.
type SearchRequest struct {
	Pattern string
	Forward bool
}

// Result reports what a keystroke asked of the caller beyond editing.
type Result struct {
	Action Action
	Ex     *ExCommand
	Search *SearchRequest
	Scroll Scroll
}

const maxMacroDepth = 100

// Session owns one buffer's complete editing state: text, cursor,
// history, registers, marks, macros, and the mode state machine. All
// methods must be called from a single goroutine.
type Session struct {
	buf    *buffer.Buffer
	cur    *cursor.Cursor
	hist   *history.History
	state  *State
	res    *Resolver
	indent string

	macroDepth int
}

// NewSession returns a session editing content from the origin.
func NewSession(content string) *Session {
	buf := buffer.FromString(content)
	return &Session{
		buf:    buf,
		cur:    cursor.New(),
		hist:   history.New(),
		state:  NewState(),
		res:    &Resolver{Buf: buf, View: Viewport{Height: 24}},
		indent: "    ",
	}
}

// Buffer exposes the underlying text buffer for rendering.
func (s *Session) Buffer() *buffer.Buffer { return s.buf }

// Cursor returns the caret position.
func (s *Session) Cursor() buffer.Position { return s.cur.Pos() }

// Mode returns the current editing mode.
func (s *Session) Mode() Mode { return s.state.Mode }

// Status returns the status-bar text.
func (s *Session) Status() string { return s.state.Status() }

// Contents returns the buffer text for persistence.
func (s *Session) Contents() string { return s.buf.String() }

// Modified is true when undoable edits exist.
func (s *Session) Modified() bool { return s.hist.CanUndo() }

// SetViewport informs screen-relative motions about the visible window.
func (s *Session) SetViewport(v Viewport) { s.res.View = v }

// SetIndent sets the text inserted and removed by the indent operators.
func (s *Session) SetIndent(indent string) {
	if indent != "" {
		s.indent = indent
	}
}

// SelectionSpan returns the highlighted region, expanded to whole lines
// in the linewise visual modes. End is exclusive.
func (s *Session) SelectionSpan() (start, end buffer.Position, linewise, ok bool) {
	r, active := s.cur.SelectionRange()
	if !active || !s.state.Mode.IsVisual() {
		return buffer.Position{}, buffer.Position{}, false, false
	}
	if s.state.Mode == ModeVisualLine || s.state.Mode == ModeVisualBlock {
		return buffer.Position{Row: r.Start.Row}, buffer.Position{Row: r.End.Row + 1}, true, true
	}
	return r.Start, s.advance(r.End), false, true
}

// JumpTo moves the cursor, recording the jump for the ' and ` marks.
// Collaborators use it to land on search matches.
func (s *Session) JumpTo(pos buffer.Position) {
	s.state.Marks.SetLastJump(s.cur.Pos())
	s.cur.Set(s.buf.ClampCursor(pos))
}

// LineChange is a whole-line replacement applied by ApplyLineChanges.
type LineChange struct {
	Row  int
	Text string
}

// ApplyLineChanges rewrites lines as one undoable step. Substitution
// execution lives outside the engine; this is its write path back in.
func (s *Session) ApplyLineChanges(changes []LineChange) int {
	applied := 0
	s.hist.Begin(s.cur.Pos())
	for _, ch := range changes {
		old, ok := s.buf.Line(ch.Row)
		if !ok || old == ch.Text {
			continue
		}
		end := buffer.Position{Row: ch.Row, Col: len([]rune(old))}
		start := buffer.Position{Row: ch.Row}
		s.recordApply(history.Delete(start, end, old))
		s.recordApply(history.Insert(start, ch.Text))
		applied++
	}
	s.cur.Set(s.buf.ClampCursor(s.cur.Pos()))
	s.hist.Commit(s.cur.Pos())
	return applied
}

// HandleKey feeds one key event through the state machine. Keys typed
// while a macro records are captured, except the q that stops recording.
func (s *Session) HandleKey(ev key.Event) Result {
	wasRecording := s.state.Macros.IsRecording()
	res := s.dispatch(ev)
	if wasRecording && s.state.Macros.IsRecording() {
		s.state.Macros.RecordKey(ev)
	}
	return res
}

func (s *Session) dispatch(ev key.Event) Result {
	// Ctrl+s saves from any mode without leaving it.
	if ev.IsCtrl('s') {
		return Result{Action: ActionSave}
	}
	switch s.state.Mode {
	case ModeInsert:
		return s.handleInsert(ev)
	case ModeReplace:
		return s.handleReplace(ev)
	case ModeCommand:
		return s.handleCommand(ev)
	case ModeSearch:
		return s.handleSearch(ev)
	case ModeSearchLocked:
		if ev.IsChar('n') || ev.IsChar('N') {
			return s.searchNext(ev.Rune == 'n')
		}
		s.state.Mode = ModeNormal
		return s.handleNormal(ev)
	default:
		return s.handleNormal(ev)
	}
}

// enterInsert opens an insert session. The history group stays open
// until insert mode exits so the entire run undoes as one step.
func (s *Session) enterInsert(at buffer.Position) {
	s.hist.Begin(s.cur.Pos())
	s.cur.Set(s.buf.Clamp(at))
	s.state.Mode = ModeInsert
	s.state.insertBuffer.Reset()
}

func (s *Session) exitInsert() {
	st := s.state
	pos := s.cur.Pos()
	st.Marks.SetLastInsert(pos)
	if pos.Col > 0 {
		pos.Col--
	}
	s.cur.Set(s.buf.ClampCursor(pos))
	s.hist.Commit(s.cur.Pos())
	if st.recordingCmd != nil {
		st.recordingCmd.InsertText = st.insertBuffer.String()
		st.LastCommand = st.recordingCmd
		st.recordingCmd = nil
	}
	st.insertBuffer.Reset()
	st.Mode = ModeNormal
}

func (s *Session) handleInsert(ev key.Event) Result {
	st := s.state
	pos := s.cur.Pos()
	switch {
	case ev.Key == key.KeyEscape:
		s.exitInsert()
	case ev.Key == key.KeyEnter:
		s.recordApply(history.SplitLine(pos))
		s.cur.Set(buffer.Position{Row: pos.Row + 1})
		st.insertBuffer.WriteByte('\n')
	case ev.Key == key.KeyBackspace:
		switch {
		case pos.Col > 0:
			target := buffer.Position{Row: pos.Row, Col: pos.Col - 1}
			removed := s.buf.TextRange(target, pos)
			s.recordApply(history.Delete(target, pos, removed))
			s.cur.Set(target)
			trimLastRune(&st.insertBuffer)
		case pos.Row > 0:
			seam := buffer.Position{Row: pos.Row - 1, Col: s.buf.LineLen(pos.Row - 1)}
			s.recordApply(history.JoinLine(pos.Row, seam.Col))
			s.cur.Set(seam)
			trimLastRune(&st.insertBuffer)
		}
	case ev.Key == key.KeyTab:
		s.insertRunes(pos, "\t")
	case ev.Key == key.KeyLeft, ev.Key == key.KeyRight, ev.Key == key.KeyUp, ev.Key == key.KeyDown:
		s.moveArrow(ev.Key)
	case ev.IsRune():
		s.insertRunes(pos, string(ev.Rune))
	}
	return Result{}
}

func (s *Session) insertRunes(pos buffer.Position, text string) {
	s.recordApply(history.Insert(pos, text))
	s.cur.Set(buffer.Position{Row: pos.Row, Col: pos.Col + len([]rune(text))})
	s.state.insertBuffer.WriteString(text)
}

func (s *Session) handleReplace(ev key.Event) Result {
	pos := s.cur.Pos()
	switch {
	case ev.Key == key.KeyEscape:
		s.exitInsert()
	case ev.Key == key.KeyEnter:
		s.recordApply(history.SplitLine(pos))
		s.cur.Set(buffer.Position{Row: pos.Row + 1})
		s.state.insertBuffer.WriteByte('\n')
	case ev.Key == key.KeyBackspace:
		if pos.Col > 0 {
			s.cur.Set(buffer.Position{Row: pos.Row, Col: pos.Col - 1})
		}
	case ev.IsRune():
		if pos.Col < s.buf.LineLen(pos.Row) {
			end := buffer.Position{Row: pos.Row, Col: pos.Col + 1}
			removed := s.buf.TextRange(pos, end)
			s.recordApply(history.Delete(pos, end, removed))
		}
		s.insertRunes(pos, string(ev.Rune))
	}
	return Result{}
}

func (s *Session) handleCommand(ev key.Event) Result {
	st := s.state
	switch {
	case ev.Key == key.KeyEscape:
		st.CommandBuffer = ""
		st.Mode = ModeNormal
	case ev.Key == key.KeyBackspace:
		if st.CommandBuffer == "" {
			st.Mode = ModeNormal
			return Result{}
		}
		st.CommandBuffer = trimLastRuneString(st.CommandBuffer)
	case ev.Key == key.KeyEnter:
		line := st.CommandBuffer
		st.CommandBuffer = ""
		st.Mode = ModeNormal
		return s.executeEx(line)
	case ev.IsRune():
		st.CommandBuffer += string(ev.Rune)
	}
	return Result{}
}

func (s *Session) executeEx(line string) Result {
	st := s.state
	if line == "" {
		return Result{}
	}
	st.Registers.SetCommand(line)
	cmd, ok := ParseEx(line)
	if !ok {
		st.StatusMessage = "Not an editor command: " + line
		return Result{}
	}
	switch cmd.Kind {
	case ExWrite:
		return Result{Action: ActionSave}
	case ExWriteForce:
		return Result{Action: ActionSaveForce}
	case ExQuit:
		return Result{Action: ActionQuit}
	case ExQuitForce:
		return Result{Action: ActionQuitForce}
	case ExWriteQuit:
		return Result{Action: ActionSaveQuit}
	case ExGoToLine:
		target, _ := s.res.Resolve(s.cur.Pos(), Motion{Kind: MotionGoToLine, Line: cmd.Line}, 1)
		s.JumpTo(target)
		return Result{}
	case ExSubstitute:
		c := cmd
		return Result{Action: ActionSubstitute, Ex: &c}
	}
	return Result{}
}

func (s *Session) handleSearch(ev key.Event) Result {
	st := s.state
	switch {
	case ev.Key == key.KeyEscape:
		st.SearchBuffer = ""
		st.Mode = ModeNormal
	case ev.Key == key.KeyBackspace:
		if st.SearchBuffer == "" {
			st.Mode = ModeNormal
			return Result{}
		}
		st.SearchBuffer = trimLastRuneString(st.SearchBuffer)
	case ev.Key == key.KeyEnter:
		pattern := st.SearchBuffer
		st.SearchBuffer = ""
		if pattern == "" {
			pattern = st.SearchPattern
		}
		if pattern == "" {
			st.Mode = ModeNormal
			return Result{}
		}
		st.SearchPattern = pattern
		st.Registers.SetSearch(pattern)
		st.Mode = ModeSearchLocked
		return Result{Action: ActionSearch, Search: &SearchRequest{Pattern: pattern, Forward: st.SearchForward}}
	case ev.IsRune():
		st.SearchBuffer += string(ev.Rune)
	}
	return Result{}
}

func (s *Session) searchNext(forward bool) Result {
	st := s.state
	if st.SearchPattern == "" {
		st.StatusMessage = "No previous search"
		return Result{}
	}
	if !st.SearchForward {
		forward = !forward
	}
	return Result{Action: ActionSearch, Search: &SearchRequest{Pattern: st.SearchPattern, Forward: forward}}
}

// recordApply records op into the history (opening a group if none is
// open) and applies it to the buffer. The last-change mark follows.
func (s *Session) recordApply(op history.Operation) {
	standalone := !s.hist.Recording()
	if standalone {
		s.hist.Begin(s.cur.Pos())
	}
	s.hist.Record(op)
	op.Apply(s.buf)
	s.state.Marks.SetLastChange(op.Pos)
	if standalone {
		s.hist.Commit(s.cur.Pos())
	}
}

// advance returns the position one character past p, wrapping to the
// next line start at end of line.
func (s *Session) advance(p buffer.Position) buffer.Position {
	if p.Col < s.buf.LineLen(p.Row) {
		p.Col++
		return p
	}
	if p.Row+1 < s.buf.LineCount() {
		return buffer.Position{Row: p.Row + 1}
	}
	p.Col = s.buf.LineLen(p.Row)
	return p
}

func trimLastRune(b *strings.Builder) {
	s := b.String()
	if s == "" {
		return
	}
	b.Reset()
	b.WriteString(trimLastRuneString(s))
}

func trimLastRuneString(s string) string {
	runes := []rune(s)
	return string(runes[:len(runes)-1])
}

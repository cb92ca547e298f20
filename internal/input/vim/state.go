package vim

import (
	"strconv"
	"strings"
)

// SimpleEdit identifies a self-contained normal-mode edit recorded for
// dot-repeat.
type SimpleEdit uint8

const (
	SimpleNone SimpleEdit = iota
	SimpleDeleteChar
	SimpleDeleteCharBack
	SimpleReplaceChar
	SimpleSubstituteChar
	SimpleSubstituteLine
	SimpleDeleteToEnd
	SimpleChangeToEnd
	SimpleJoinLines
	SimpleToggleCase
	SimplePasteAfter
	SimplePasteBefore
	SimpleInsert
)

// RecordedCommand is the last buffer-changing command, replayable with
// ".". Either Simple is set, or Operator with a Motion or Object target.
// InsertText carries text typed before the insert mode that the command
// opened was left.
type RecordedCommand struct {
	Count      int
	Register   rune
	Operator   *Operator
	Motion     *Motion
	Scope      Scope
	Object     Object
	HasObject  bool
	Linewise   bool // doubled-operator form (dd, cc)
	Simple     SimpleEdit
	Char       rune   // SimpleReplaceChar target
	EnterKey   rune   // SimpleInsert entry key: i a I A o O
	InsertText string // text typed in the opened insert session
}

// PendingMark distinguishes the three mark-prefix keys awaiting a name.
type PendingMark uint8

const (
	PendingMarkSet    PendingMark = iota + 1 // m
	PendingMarkJump                          // ` exact position
	PendingMarkLine                          // ' line, first non-blank
)

// PendingMacro distinguishes q (record) from @ (play) awaiting a register.
type PendingMacro uint8

const (
	PendingMacroRecord PendingMacro = iota + 1
	PendingMacroPlay
)

// State holds every mode flag and pending latch of the input state
// machine. All latches clear together through ResetPending so a stray
// Escape always returns to a clean normal mode.
type State struct {
	Mode          Mode
	SearchForward bool // direction for ModeSearch / ModeSearchLocked

	count        int
	pendingOp    *Operator
	pendingCount int // count typed after the operator

	Registers *Registers
	Macros    *MacroRecorder
	Marks     *Marks

	SearchPattern string
	LastFind      *FindState
	CommandBuffer string
	SearchBuffer  string
	StatusMessage string

	LastCommand  *RecordedCommand
	recordingCmd *RecordedCommand

	pendingFind  *PendingFind
	pendingG     bool
	pendingZ     bool
	awaitReplace bool
	pendingScope *Scope
	pendingMark  PendingMark
	pendingMacro PendingMacro
	pendingReg   bool
	insertBuffer strings.Builder
}

// NewState returns a state machine in normal mode.
func NewState() *State {
	return &State{
		Registers: NewRegisters(),
		Macros:    NewMacroRecorder(),
		Marks:     NewMarks(),
	}
}

// AccumulateCount folds a digit into the pending count. The count
// saturates rather than overflowing.
func (s *State) AccumulateCount(d int) {
	c := &s.count
	if s.Mode == ModeOperatorPending {
		c = &s.pendingCount
	}
	if *c > 1<<24 {
		return
	}
	*c = *c*10 + d
}

// CountInProgress reports whether the slot digits currently accumulate
// into is non-empty, which makes a following 0 a digit rather than the
// line-start motion.
func (s *State) CountInProgress() bool {
	if s.Mode == ModeOperatorPending {
		return s.pendingCount > 0
	}
	return s.count > 0
}

// HasCount reports whether any count digits were typed.
func (s *State) HasCount() bool {
	return s.count > 0 || s.pendingCount > 0
}

// TakeCount returns the effective count and clears it. An absent count
// is 1; counts before and after an operator multiply (2d3w is d6w).
func (s *State) TakeCount() int {
	n, m := s.count, s.pendingCount
	s.count, s.pendingCount = 0, 0
	if n == 0 {
		n = 1
	}
	if m == 0 {
		m = 1
	}
	return n * m
}

// PendingOperator returns the latched operator in operator-pending mode.
func (s *State) PendingOperator() (Operator, bool) {
	if s.pendingOp == nil {
		return 0, false
	}
	return *s.pendingOp, true
}

// EnterOperatorPending latches op and switches mode.
func (s *State) EnterOperatorPending(op Operator) {
	s.pendingOp = &op
	s.pendingCount = 0
	s.Mode = ModeOperatorPending
}

// ResetPending clears the count, every prefix latch, the pending
// operator, and the register selection, and drops operator-pending mode
// back to normal. Mode-carrying state for insert, visual, command and
// search is left alone; those modes exit through their own paths.
func (s *State) ResetPending() {
	s.count = 0
	s.pendingCount = 0
	s.pendingOp = nil
	s.pendingFind = nil
	s.pendingG = false
	s.pendingZ = false
	s.awaitReplace = false
	s.pendingScope = nil
	s.pendingMark = 0
	s.pendingMacro = 0
	s.pendingReg = false
	s.Registers.ClearSelection()
	if s.Mode == ModeOperatorPending {
		s.Mode = ModeNormal
	}
}

// Status renders the status-bar segments: recording indicator, mode
// name, transient message, count, and pending latch markers.
func (s *State) Status() string {
	var parts []string
	if s.Macros.IsRecording() {
		parts = append(parts, "recording @"+string(s.Macros.Recording()))
	}
	parts = append(parts, s.Mode.DisplayName())
	if s.StatusMessage != "" {
		parts = append(parts, s.StatusMessage)
	}
	switch s.Mode {
	case ModeCommand:
		parts = append(parts, ":"+s.CommandBuffer)
	case ModeSearch:
		prefix := "/"
		if !s.SearchForward {
			prefix = "?"
		}
		parts = append(parts, prefix+s.SearchBuffer)
	}
	if s.count > 0 {
		parts = append(parts, strconv.Itoa(s.count))
	}
	if s.pendingOp != nil {
		op := string(s.pendingOp.Rune()) + "-"
		if s.pendingCount > 0 {
			op += strconv.Itoa(s.pendingCount)
		}
		parts = append(parts, op)
	}
	switch {
	case s.pendingG:
		parts = append(parts, "g-")
	case s.pendingZ:
		parts = append(parts, "z-")
	case s.pendingFind != nil:
		if s.pendingFind.Till {
			parts = append(parts, "t-")
		} else {
			parts = append(parts, "f-")
		}
	case s.awaitReplace:
		parts = append(parts, "r-")
	case s.pendingMark == PendingMarkSet:
		parts = append(parts, "m-")
	case s.pendingMark == PendingMarkJump:
		parts = append(parts, "`-")
	case s.pendingMark == PendingMarkLine:
		parts = append(parts, "'-")
	case s.pendingMacro == PendingMacroRecord:
		parts = append(parts, "q-")
	case s.pendingMacro == PendingMacroPlay:
		parts = append(parts, "@-")
	case s.pendingScope != nil && *s.pendingScope == ScopeInner:
		parts = append(parts, "i-")
	case s.pendingScope != nil && *s.pendingScope == ScopeAround:
		parts = append(parts, "a-")
	}
	if name, ok := s.Registers.Selected(); ok {
		parts = append(parts, "\""+string(name))
	}
	return strings.Join(parts, " ")
}

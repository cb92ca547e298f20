// Package history records buffer edits as invertible operations and
// replays them for undo and redo. Operations are grouped into entries so
// a single user-level command undoes as one step.
package history

import (
	"errors"

	"github.com/ekphos/ekphos/internal/engine/buffer"
)

// Sentinel errors reported by History.
var (
	ErrNothingToUndo = errors.New("history: nothing to undo")
	ErrNothingToRedo = errors.New("history: nothing to redo")
)

// DefaultMaxEntries bounds the undo stack depth.
const DefaultMaxEntries = 1000

// Entry is one undoable step: the operations of a single user command in
// application order, with the cursor position on either side.
type Entry struct {
	Ops          []Operation
	CursorBefore buffer.Position
	CursorAfter  buffer.Position
}

// History holds the undo and redo stacks for one buffer.
type History struct {
	undo []*Entry
	redo []*Entry
	open *Entry
	max  int
}

// New returns an empty history bounded to DefaultMaxEntries.
func New() *History {
	return &History{max: DefaultMaxEntries}
}

// Begin opens a new entry group recording the cursor position before the
// command runs. A group already open is kept; nested begins do not stack.
func (h *History) Begin(cursorBefore buffer.Position) {
	if h.open != nil {
		return
	}
	h.open = &Entry{CursorBefore: cursorBefore}
}

// Recording reports whether an entry group is open.
func (h *History) Recording() bool {
	return h.open != nil
}

// Record appends op to the open entry group. Calls without an open group
// are dropped; mutations must happen inside Begin/Commit.
func (h *History) Record(op Operation) {
	if h.open == nil {
		return
	}
	h.open.Ops = append(h.open.Ops, op)
}

// Commit closes the open group with the cursor position after the
// command. Groups that recorded no operations are discarded. Committing
// a non-empty group invalidates the redo stack.
func (h *History) Commit(cursorAfter buffer.Position) {
	entry := h.open
	h.open = nil
	if entry == nil || len(entry.Ops) == 0 {
		return
	}
	entry.CursorAfter = cursorAfter
	h.undo = append(h.undo, entry)
	h.redo = nil
	if len(h.undo) > h.max {
		h.undo = h.undo[len(h.undo)-h.max:]
	}
}

// Abort drops the open group without committing.
func (h *History) Abort() {
	h.open = nil
}

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// Undo reverses the most recent entry against buf and returns the cursor
// position from before that entry. With nothing to undo it returns
// ErrNothingToUndo and the buffer is untouched.
func (h *History) Undo(buf *buffer.Buffer) (buffer.Position, error) {
	if len(h.undo) == 0 {
		return buffer.Position{}, ErrNothingToUndo
	}
	entry := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	for i := len(entry.Ops) - 1; i >= 0; i-- {
		entry.Ops[i].Invert().Apply(buf)
	}
	h.redo = append(h.redo, entry)
	return entry.CursorBefore, nil
}

// Redo reapplies the most recently undone entry and returns the cursor
// position from after it. With nothing to redo it returns
// ErrNothingToRedo.
func (h *History) Redo(buf *buffer.Buffer) (buffer.Position, error) {
	if len(h.redo) == 0 {
		return buffer.Position{}, ErrNothingToRedo
	}
	entry := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	for _, op := range entry.Ops {
		op.Apply(buf)
	}
	h.undo = append(h.undo, entry)
	return entry.CursorAfter, nil
}

// Clear drops both stacks and any open group.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
	h.open = nil
}

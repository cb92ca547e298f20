package history

import (
	"errors"
	"testing"

	"github.com/ekphos/ekphos/internal/engine/buffer"
)

func TestOperationInversion(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		op      Operation
	}{
		{"insert inline", "hello", Insert(buffer.Position{Row: 0, Col: 2}, "XY")},
		{"insert multiline", "ab", Insert(buffer.Position{Row: 0, Col: 1}, "1\n2\n3")},
		{"delete inline", "hello world", Delete(buffer.Position{Row: 0, Col: 2}, buffer.Position{Row: 0, Col: 7}, "llo w")},
		{"delete across lines", "abc\ndef", Delete(buffer.Position{Row: 0, Col: 1}, buffer.Position{Row: 1, Col: 2}, "bc\nde")},
		{"split", "hello", SplitLine(buffer.Position{Row: 0, Col: 3})},
		{"join", "he\nllo", JoinLine(1, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := buffer.FromString(tt.initial)
			tt.op.Apply(b)
			tt.op.Invert().Apply(b)
			if got := b.String(); got != tt.initial {
				t.Errorf("apply+invert = %q, want %q", got, tt.initial)
			}
		})
	}
}

func TestUndoRedoRestoresCursor(t *testing.T) {
	b := buffer.FromString("hello")
	h := New()

	before := buffer.Position{Row: 0, Col: 5}
	h.Begin(before)
	op := Insert(buffer.Position{Row: 0, Col: 5}, " world")
	op.Apply(b)
	h.Record(op)
	after := buffer.Position{Row: 0, Col: 10}
	h.Commit(after)

	pos, err := h.Undo(b)
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if pos != before {
		t.Errorf("undo cursor = %v, want %v", pos, before)
	}
	if got := b.String(); got != "hello" {
		t.Errorf("after undo = %q", got)
	}

	pos, err = h.Redo(b)
	if err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if pos != after {
		t.Errorf("redo cursor = %v, want %v", pos, after)
	}
	if got := b.String(); got != "hello world" {
		t.Errorf("after redo = %q", got)
	}
}

func TestGroupUndoneAsOne(t *testing.T) {
	b := buffer.FromString("ab")
	h := New()
	h.Begin(buffer.Position{})
	for i, text := range []string{"1", "2", "3"} {
		op := Insert(buffer.Position{Row: 0, Col: 1 + i}, text)
		op.Apply(b)
		h.Record(op)
	}
	h.Commit(buffer.Position{Row: 0, Col: 4})
	if got := b.String(); got != "a123b" {
		t.Fatalf("after edits = %q", got)
	}
	if _, err := h.Undo(b); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := b.String(); got != "ab" {
		t.Errorf("single undo should revert the whole group, got %q", got)
	}
}

func TestEmptyGroupDiscarded(t *testing.T) {
	b := buffer.New()
	h := New()
	h.Begin(buffer.Position{})
	h.Commit(buffer.Position{})
	if h.CanUndo() {
		t.Error("empty group should not be undoable")
	}
	if _, err := h.Undo(b); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo on empty history = %v, want ErrNothingToUndo", err)
	}
}

func TestRedoInvalidatedByNewEdit(t *testing.T) {
	b := buffer.FromString("x")
	h := New()

	record := func(op Operation) {
		h.Begin(buffer.Position{})
		op.Apply(b)
		h.Record(op)
		h.Commit(buffer.Position{})
	}

	record(Insert(buffer.Position{Row: 0, Col: 1}, "a"))
	if _, err := h.Undo(b); err != nil {
		t.Fatal(err)
	}
	if !h.CanRedo() {
		t.Fatal("expected redo available after undo")
	}
	record(Insert(buffer.Position{Row: 0, Col: 1}, "b"))
	if h.CanRedo() {
		t.Error("new edit must invalidate redo stack")
	}
	if _, err := h.Redo(b); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo = %v, want ErrNothingToRedo", err)
	}
}

func TestUndoOrderWithinGroup(t *testing.T) {
	// A split followed by an insert on the new line must undo in reverse
	// order to restore the original text.
	b := buffer.FromString("oneTWO")
	h := New()
	h.Begin(buffer.Position{Row: 0, Col: 3})
	split := SplitLine(buffer.Position{Row: 0, Col: 3})
	split.Apply(b)
	h.Record(split)
	ins := Insert(buffer.Position{Row: 1, Col: 0}, ">> ")
	ins.Apply(b)
	h.Record(ins)
	h.Commit(buffer.Position{Row: 1, Col: 3})

	if got := b.String(); got != "one\n>> TWO" {
		t.Fatalf("after edits = %q", got)
	}
	if _, err := h.Undo(b); err != nil {
		t.Fatal(err)
	}
	if got := b.String(); got != "oneTWO" {
		t.Errorf("after undo = %q, want %q", got, "oneTWO")
	}
}

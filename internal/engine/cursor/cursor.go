// Package cursor tracks the caret position, the visual selection, and the
// preferred column used by vertical movement.
package cursor

import "github.com/ekphos/ekphos/internal/engine/buffer"

// Selection is an anchored span of text. Anchor is the fixed end set when
// the selection started; the moving end is the cursor position itself.
type Selection struct {
	Anchor buffer.Position
}

// Cursor is the caret state for a single buffer. The zero value is a
// cursor at the document origin with no selection.
type Cursor struct {
	pos          buffer.Position
	sel          *Selection
	preferredCol int
	hasPreferred bool
}

// New returns a cursor at the origin.
func New() *Cursor {
	return &Cursor{}
}

// Pos returns the current position.
func (c *Cursor) Pos() buffer.Position {
	return c.pos
}

// Set moves the cursor to p and records p.Col as the preferred column.
// Use SetKeepPreferred for vertical movement.
func (c *Cursor) Set(p buffer.Position) {
	c.pos = p
	c.preferredCol = p.Col
	c.hasPreferred = true
}

// SetKeepPreferred moves the cursor to p without touching the preferred
// column, so later vertical moves can return to it.
func (c *Cursor) SetKeepPreferred(p buffer.Position) {
	c.pos = p
}

// PreferredCol returns the column vertical movement should aim for. When
// no horizontal move has happened yet it is the current column.
func (c *Cursor) PreferredCol() int {
	if c.hasPreferred {
		return c.preferredCol
	}
	return c.pos.Col
}

// StartSelection anchors a new selection at the current position. A
// selection already in progress keeps its anchor.
func (c *Cursor) StartSelection() {
	if c.sel == nil {
		c.sel = &Selection{Anchor: c.pos}
	}
}

// ClearSelection drops any active selection.
func (c *Cursor) ClearSelection() {
	c.sel = nil
}

// HasSelection reports whether a selection is active.
func (c *Cursor) HasSelection() bool {
	return c.sel != nil
}

// Anchor returns the selection anchor and whether a selection is active.
func (c *Cursor) Anchor() (buffer.Position, bool) {
	if c.sel == nil {
		return buffer.Position{}, false
	}
	return c.sel.Anchor, true
}

// SwapEnds exchanges the anchor and the cursor position, as visual-mode
// "o" does. No-op without a selection.
func (c *Cursor) SwapEnds() {
	if c.sel == nil {
		return
	}
	c.sel.Anchor, c.pos = c.pos, c.sel.Anchor
	c.preferredCol = c.pos.Col
	c.hasPreferred = true
}

// SelectionRange returns the normalized selection span. Start never
// orders after End regardless of the direction the selection was made in.
func (c *Cursor) SelectionRange() (buffer.Range, bool) {
	if c.sel == nil {
		return buffer.Range{}, false
	}
	return buffer.NewRange(c.sel.Anchor, c.pos), true
}

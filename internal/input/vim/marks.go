package vim

import "github.com/ekphos/ekphos/internal/engine/buffer"

// Marks stores named position bookmarks a-z and A-Z plus the derived
// marks: ' and ` (position before the last jump), . (last change), and
// ^ (last insert-mode exit).
type Marks struct {
	named      map[rune]buffer.Position
	lastJump   *buffer.Position
	lastChange *buffer.Position
	lastInsert *buffer.Position
}

// NewMarks returns an empty mark map.
func NewMarks() *Marks {
	return &Marks{named: make(map[rune]buffer.Position)}
}

// Set stores pos under the mark name. Only letters are accepted.
func (m *Marks) Set(name rune, pos buffer.Position) bool {
	if !isMarkName(name) {
		return false
	}
	m.named[name] = pos
	return true
}

// Get resolves a mark name, including the derived marks.
func (m *Marks) Get(name rune) (buffer.Position, bool) {
	switch name {
	case '\'', '`':
		if m.lastJump != nil {
			return *m.lastJump, true
		}
		return buffer.Position{}, false
	case '.':
		if m.lastChange != nil {
			return *m.lastChange, true
		}
		return buffer.Position{}, false
	case '^':
		if m.lastInsert != nil {
			return *m.lastInsert, true
		}
		return buffer.Position{}, false
	}
	pos, ok := m.named[name]
	return pos, ok
}

// SetLastJump records the position the cursor left when jumping.
func (m *Marks) SetLastJump(pos buffer.Position) {
	p := pos
	m.lastJump = &p
}

// SetLastChange records where the most recent buffer change happened.
func (m *Marks) SetLastChange(pos buffer.Position) {
	p := pos
	m.lastChange = &p
}

// SetLastInsert records the cursor position when insert mode exited.
func (m *Marks) SetLastInsert(pos buffer.Position) {
	p := pos
	m.lastInsert = &p
}

func isMarkName(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

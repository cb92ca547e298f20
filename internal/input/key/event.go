// Package key defines the terminal-independent key event model consumed
// by the input state machine. Translation from the terminal library
// happens at the application boundary so the engine stays testable with
// plain values.
package key

import "fmt"

// Key identifies a key category. Printable input uses KeyRune with the
// Rune field set.
type Key uint8

const (
	KeyRune Key = iota
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

// String returns the canonical key name.
func (k Key) String() string {
	switch k {
	case KeyRune:
		return "rune"
	case KeyEscape:
		return "Esc"
	case KeyEnter:
		return "Enter"
	case KeyTab:
		return "Tab"
	case KeyBackspace:
		return "Backspace"
	case KeyDelete:
		return "Delete"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyPageUp:
		return "PageUp"
	case KeyPageDown:
		return "PageDown"
	default:
		return "unknown"
	}
}

// Modifier is a bitmask of held modifier keys.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModCtrl  Modifier = 1 << iota
	ModAlt
	ModShift
)

// Event is a single key press.
type Event struct {
	Key  Key
	Rune rune
	Mod  Modifier
}

// Rune returns an event for the printable character r.
func Rune(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// Ctrl returns an event for Ctrl plus the character r.
func Ctrl(r rune) Event {
	return Event{Key: KeyRune, Rune: r, Mod: ModCtrl}
}

// Special returns an event for a non-printable key.
func Special(k Key) Event {
	return Event{Key: k}
}

// IsRune reports whether the event is an unmodified printable character.
// Shift does not count as a modifier for runes; the shifted rune arrives
// directly.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Mod&(ModCtrl|ModAlt) == 0
}

// IsChar reports whether the event is exactly the unmodified character r.
func (e Event) IsChar(r rune) bool {
	return e.IsRune() && e.Rune == r
}

// IsCtrl reports whether the event is Ctrl plus the character r.
func (e Event) IsCtrl(r rune) bool {
	return e.Key == KeyRune && e.Rune == r && e.Mod&ModCtrl != 0
}

// String returns a display form such as "a", "<C-d>" or "<Esc>".
func (e Event) String() string {
	if e.Key == KeyRune {
		if e.Mod&ModCtrl != 0 {
			return fmt.Sprintf("<C-%c>", e.Rune)
		}
		if e.Mod&ModAlt != 0 {
			return fmt.Sprintf("<A-%c>", e.Rune)
		}
		return string(e.Rune)
	}
	return "<" + e.Key.String() + ">"
}

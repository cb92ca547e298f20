package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/ekphos/ekphos/internal/input/key"
)

// translateKey converts a tcell key event into the engine's key model.
// Unmapped keys report false and are dropped.
func translateKey(ev *tcell.EventKey) (key.Event, bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		return key.Special(key.KeyEscape), true
	case tcell.KeyEnter:
		return key.Special(key.KeyEnter), true
	case tcell.KeyTab:
		return key.Special(key.KeyTab), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.Special(key.KeyBackspace), true
	case tcell.KeyDelete:
		return key.Special(key.KeyDelete), true
	case tcell.KeyUp:
		return key.Special(key.KeyUp), true
	case tcell.KeyDown:
		return key.Special(key.KeyDown), true
	case tcell.KeyLeft:
		return key.Special(key.KeyLeft), true
	case tcell.KeyRight:
		return key.Special(key.KeyRight), true
	case tcell.KeyHome:
		return key.Special(key.KeyHome), true
	case tcell.KeyEnd:
		return key.Special(key.KeyEnd), true
	case tcell.KeyPgUp:
		return key.Special(key.KeyPageUp), true
	case tcell.KeyPgDn:
		return key.Special(key.KeyPageDown), true
	case tcell.KeyRune:
		e := key.Rune(ev.Rune())
		if ev.Modifiers()&tcell.ModAlt != 0 {
			e.Mod |= key.ModAlt
		}
		return e, true
	}
	// tcell reports control chords as dedicated key codes. Escape, Tab,
	// Enter and Backspace share that range and were handled above.
	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		return key.Ctrl(rune('a' + ev.Key() - tcell.KeyCtrlA)), true
	}
	return key.Event{}, false
}

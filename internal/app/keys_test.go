package app

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/ekphos/ekphos/internal/input/key"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		in   *tcell.EventKey
		want key.Event
		ok   bool
	}{
		{"plain rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), key.Rune('x'), true},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, 'X', tcell.ModShift), key.Rune('X'), true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), key.Special(key.KeyEscape), true},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), key.Special(key.KeyEnter), true},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), key.Special(key.KeyBackspace), true},
		{"ctrl-d", tcell.NewEventKey(tcell.KeyCtrlD, 0, tcell.ModCtrl), key.Ctrl('d'), true},
		{"ctrl-r", tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl), key.Ctrl('r'), true},
		{"page down", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), key.Special(key.KeyPageDown), true},
		{"arrow left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), key.Special(key.KeyLeft), true},
		{"unmapped function key", tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), key.Event{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translateKey(tt.in)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("translateKey = %+v, want %+v", got, tt.want)
			}
		})
	}
}

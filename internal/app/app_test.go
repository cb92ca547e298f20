package app

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/ekphos/ekphos/internal/config"
	"github.com/ekphos/ekphos/internal/engine/buffer"
	"github.com/ekphos/ekphos/internal/input/key"
	"github.com/ekphos/ekphos/internal/input/vim"
	"github.com/ekphos/ekphos/internal/notes"
)

func newTestApp(t *testing.T, content string) (*App, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(40, 6)
	store, err := notes.NewStore(t.TempDir(), ".md")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(store.Dir(), "note.md")
	return New(s, store, config.Default(), path, content), s
}

func screenRow(s tcell.SimulationScreen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestRenderShowsBufferAndStatus(t *testing.T) {
	a, s := newTestApp(t, "hello\nworld\n")
	a.render()

	if got := screenRow(s, 0); !strings.Contains(got, "1 hello") {
		t.Errorf("row 0 = %q, want line number and text", got)
	}
	if got := screenRow(s, 1); !strings.Contains(got, "2 world") {
		t.Errorf("row 1 = %q", got)
	}
	// Rows past the buffer show the empty-line marker.
	if got := screenRow(s, 2); !strings.HasPrefix(got, "~") {
		t.Errorf("row 2 = %q, want ~", got)
	}
	if got := screenRow(s, 5); !strings.Contains(got, "NORMAL") || !strings.Contains(got, "note.md") {
		t.Errorf("status = %q", got)
	}
}

func TestTrailingNewlineIsTerminator(t *testing.T) {
	a, _ := newTestApp(t, "one\ntwo\n")
	if got := a.session.Buffer().LineCount(); got != 2 {
		t.Errorf("LineCount = %d, want 2", got)
	}
}

func TestQuitRefusedWhileDirty(t *testing.T) {
	a, _ := newTestApp(t, "text\n")
	a.session.HandleKey(key.Rune('x'))
	if !a.dirty() {
		t.Fatal("edit must mark the buffer dirty")
	}
	a.handleResult(vim.Result{Action: vim.ActionQuit})
	if a.quit {
		t.Error("quit must be refused with unsaved changes")
	}
	if a.notice == "" {
		t.Error("refusal must set a notice")
	}
	a.handleResult(vim.Result{Action: vim.ActionQuitForce})
	if !a.quit {
		t.Error("q! must quit regardless")
	}
}

func TestSaveWritesFileAndClearsDirty(t *testing.T) {
	a, _ := newTestApp(t, "text\n")
	a.session.HandleKey(key.Rune('x'))
	a.handleResult(vim.Result{Action: vim.ActionSave})
	if a.dirty() {
		t.Error("save must clear the dirty flag")
	}
	got, err := a.store.Load(a.path)
	if err != nil {
		t.Fatal(err)
	}
	if got != "ext\n" {
		t.Errorf("saved = %q, want %q", got, "ext\n")
	}
	a.handleResult(vim.Result{Action: vim.ActionQuit})
	if !a.quit {
		t.Error("clean buffer must quit")
	}
}

func TestScrollRequestsMoveViewport(t *testing.T) {
	a, _ := newTestApp(t, strings.Repeat("line\n", 40))
	a.session.JumpTo(buffer.Position{Row: 20})
	a.handleResult(vim.Result{Scroll: vim.ScrollTop})
	if a.top != 20 {
		t.Errorf("zt top = %d, want 20", a.top)
	}
	a.handleResult(vim.Result{Scroll: vim.ScrollCenter})
	// view height is 5 rows on the 6-row simulation screen
	if a.top != 18 {
		t.Errorf("zz top = %d, want 18", a.top)
	}
}

// Package app runs the terminal frontend: it owns the tcell screen,
// feeds keys to the editing session, and performs the file and search
// work the engine delegates outward.
package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/ekphos/ekphos/internal/config"
	"github.com/ekphos/ekphos/internal/input/vim"
	"github.com/ekphos/ekphos/internal/log"
	"github.com/ekphos/ekphos/internal/notes"
)

// App wires one editing session to a screen and a notes store.
type App struct {
	screen  tcell.Screen
	session *vim.Session
	store   *notes.Store
	cfg     config.Config
	path    string
	title   string
	top     int
	saved   string
	notice  string
	quit    bool
}

// New builds the application around an open note. A trailing newline in
// the file is the line terminator, not an extra empty line.
func New(screen tcell.Screen, store *notes.Store, cfg config.Config, path, content string) *App {
	content = strings.TrimSuffix(content, "\n")
	sess := vim.NewSession(content)
	sess.SetIndent(cfg.Editor.Indent)
	return &App{
		screen:  screen,
		session: sess,
		store:   store,
		cfg:     cfg,
		path:    path,
		title:   filepath.Base(path),
		saved:   content,
	}
}

// Run drives the event loop until quit. External note changes arrive as
// interrupt events posted by the watcher goroutine.
func (a *App) Run() error {
	w, err := notes.NewWatcher(a.store)
	if err != nil {
		return err
	}
	changed, err := w.Start()
	if err != nil {
		return err
	}
	defer w.Stop()
	go func() {
		for path := range changed {
			_ = a.screen.PostEvent(tcell.NewEventInterrupt(path))
		}
	}()

	log.Info("editing note", "path", a.path)
	for !a.quit {
		a.render()
		switch ev := a.screen.PollEvent().(type) {
		case *tcell.EventKey:
			a.handleKey(ev)
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventInterrupt:
			if p, ok := ev.Data().(string); ok && p == a.path {
				a.notice = "File changed on disk"
				log.Warn("note changed externally", "path", p)
			}
		}
	}
	return nil
}

func (a *App) handleKey(ev *tcell.EventKey) {
	kev, ok := translateKey(ev)
	if !ok {
		return
	}
	a.notice = ""
	a.handleResult(a.session.HandleKey(kev))
}

func (a *App) handleResult(res vim.Result) {
	switch res.Action {
	case vim.ActionSave, vim.ActionSaveForce:
		a.save()
	case vim.ActionQuit:
		if a.dirty() {
			a.notice = "No write since last change (add ! to override)"
			return
		}
		a.quit = true
	case vim.ActionQuitForce:
		a.quit = true
	case vim.ActionSaveQuit:
		if a.save() {
			a.quit = true
		}
	case vim.ActionSubstitute:
		n, err := executeSubstitute(a.session, res.Ex)
		switch {
		case err != nil:
			a.notice = err.Error()
		case n == 0:
			a.notice = "Pattern not found: " + res.Ex.Pattern
		default:
			a.notice = fmt.Sprintf("%d line(s) changed", n)
		}
	case vim.ActionSearch:
		if pos, ok := findMatch(a.session, res.Search); ok {
			a.session.JumpTo(pos)
		} else {
			a.notice = "Pattern not found: " + res.Search.Pattern
		}
	}

	if res.Scroll != vim.ScrollNone {
		_, h := a.screen.Size()
		view := max(h-1, 1)
		row := a.session.Cursor().Row
		switch res.Scroll {
		case vim.ScrollCenter:
			a.top = max(row-view/2, 0)
		case vim.ScrollTop:
			a.top = row
		case vim.ScrollBottom:
			a.top = max(row-view+1, 0)
		}
	}
}

func (a *App) dirty() bool {
	return a.session.Contents() != a.saved
}

func (a *App) save() bool {
	content := a.session.Contents()
	if err := a.store.Save(a.path, content+"\n"); err != nil {
		a.notice = err.Error()
		log.Error("save failed", "path", a.path, "err", err)
		return false
	}
	a.saved = content
	a.notice = fmt.Sprintf("%q written", a.title)
	log.Debug("note saved", "path", a.path, "bytes", len(content)+1)
	return true
}

// Package main is the entry point for the ekphos note editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/ekphos/ekphos/internal/app"
	"github.com/ekphos/ekphos/internal/config"
	"github.com/ekphos/ekphos/internal/log"
	"github.com/ekphos/ekphos/internal/notes"
)

func main() {
	os.Exit(run())
}

func run() int {
	dirFlag := flag.String("dir", "", "notes directory (overrides config)")
	debugFlag := flag.Bool("debug", false, "enable debug logging")
	titleFlag := flag.String("new", "", "create a new note with the given title")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ekphos:", err)
		return 1
	}
	if *debugFlag {
		cfg.Debug = true
	}

	if err := log.Init(cfg.Debug); err != nil {
		fmt.Fprintln(os.Stderr, "ekphos:", err)
		return 1
	}
	defer log.Close()

	dir := *dirFlag
	if dir == "" {
		if dir, err = cfg.NotesDir(); err != nil {
			fmt.Fprintln(os.Stderr, "ekphos:", err)
			return 1
		}
	}
	store, err := notes.NewStore(dir, cfg.Notes.Extension)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ekphos:", err)
		return 1
	}

	path, err := pickNote(store, flag.Arg(0), *titleFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ekphos:", err)
		return 1
	}
	content, err := store.Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(os.Stderr, "ekphos:", err)
			return 1
		}
		content = ""
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ekphos:", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "ekphos:", err)
		return 1
	}
	defer screen.Fini()

	if err := app.New(screen, store, cfg, path, content).Run(); err != nil {
		screen.Fini()
		fmt.Fprintln(os.Stderr, "ekphos:", err)
		return 1
	}
	return 0
}

// pickNote chooses the note to open: an explicit path argument, a fresh
// note when -new is given, the most recently modified note, or a new
// empty note in an empty collection.
func pickNote(store *notes.Store, arg, newTitle string) (string, error) {
	if arg != "" {
		if filepath.IsAbs(arg) {
			return arg, nil
		}
		return filepath.Join(store.Dir(), arg), nil
	}
	if newTitle != "" {
		n, err := store.Create(newTitle)
		if err != nil {
			return "", err
		}
		return n.Path, nil
	}
	list, err := store.List()
	if err != nil {
		return "", err
	}
	if len(list) > 0 {
		return list[0].Path, nil
	}
	n, err := store.Create("")
	if err != nil {
		return "", err
	}
	return n.Path, nil
}

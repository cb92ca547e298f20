package notes

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ekphos/ekphos/internal/log"
)

// Watcher reports external changes to the notes directory so the
// editor can warn about files modified behind its back. Events are
// debounced: a burst of writes collapses into one notification.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	dir       string
	ext       string
	debounce  time.Duration
	onChange  chan string
	done      chan struct{}
}

// NewWatcher creates a watcher for the store's directory.
func NewWatcher(store *Store) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	return &Watcher{
		fsWatcher: fsw,
		dir:       store.dir,
		ext:       store.ext,
		debounce:  500 * time.Millisecond,
		onChange:  make(chan string, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching. The returned channel carries the path of the
// most recently changed note.
func (w *Watcher) Start() (<-chan string, error) {
	if err := w.fsWatcher.Add(w.dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", w.dir, err)
	}
	go w.loop()
	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	defer close(w.onChange)
	var (
		timer   *time.Timer
		pending string
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			pending = event.Name
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-func() <-chan time.Time {
			if timer != nil {
				return timer.C
			}
			return nil
		}():
			if pending != "" {
				select {
				case w.onChange <- pending:
				default:
				}
				pending = ""
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Warn("notes watcher error", "err", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// isRelevantEvent filters for writes and creations of note files,
// skipping the temp files Save produces.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return strings.HasSuffix(base, w.ext)
}

// Package notes manages the on-disk note collection: a flat directory
// of plain-text files, one note per file.
package notes

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Note describes one file in the collection.
type Note struct {
	ID      string
	Path    string
	Title   string
	ModTime time.Time
}

// Store reads and writes notes under a single directory.
type Store struct {
	dir string
	ext string
}

// NewStore opens (creating if needed) the notes directory.
func NewStore(dir, ext string) (*Store, error) {
	if ext == "" {
		ext = ".md"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating notes directory: %w", err)
	}
	return &Store{dir: dir, ext: ext}, nil
}

func (s *Store) Dir() string { return s.dir }

// List returns every note in the directory, newest first.
func (s *Store) List() ([]Note, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading notes directory: %w", err)
	}
	var out []Note
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), s.ext) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		out = append(out, Note{
			ID:      strings.TrimSuffix(e.Name(), s.ext),
			Path:    path,
			Title:   s.titleOf(path, e.Name()),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModTime.After(out[j].ModTime) })
	return out, nil
}

// Load reads a note's content.
func (s *Store) Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading note: %w", err)
	}
	return string(data), nil
}

// Save writes content atomically: a temp file in the same directory,
// then a rename over the target.
func (s *Store) Save(path, content string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".ekphos-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing note: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing note: %w", err)
	}
	return nil
}

// Create writes a new note with a generated identifier. The title
// becomes the first line.
func (s *Store) Create(title string) (Note, error) {
	id := uuid.NewString()
	path := filepath.Join(s.dir, id+s.ext)
	content := ""
	if title != "" {
		content = "# " + title + "\n"
	}
	if err := s.Save(path, content); err != nil {
		return Note{}, err
	}
	return Note{ID: id, Path: path, Title: title, ModTime: time.Now()}, nil
}

// titleOf derives a display title from the first non-blank line,
// falling back to the file name.
func (s *Store) titleOf(path, name string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return strings.TrimSuffix(name, s.ext)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "# "))
		if line != "" {
			return line
		}
	}
	return strings.TrimSuffix(name, s.ext)
}

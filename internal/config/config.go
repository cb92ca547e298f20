package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type EditorOptions struct {
	TabWidth    int    `toml:"tab-width"`
	Indent      string `toml:"indent"`
	ScrollOff   int    `toml:"scroll-off"`
	LineNumbers bool   `toml:"line-numbers"`
}

type NotesOptions struct {
	Dir       string `toml:"dir"`
	Extension string `toml:"extension"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Notes  NotesOptions  `toml:"notes"`
	Debug  bool          `toml:"debug"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			TabWidth:    4,
			Indent:      "    ",
			ScrollOff:   3,
			LineNumbers: true,
		},
		Notes: NotesOptions{
			Dir:       "",
			Extension: ".md",
		},
	}
}

// Load reads config.toml from the config directory, layering user
// values over the defaults. A missing file is not an error.
func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	return LoadFile(path)
}

func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	md, err := toml.Decode(string(data), &userCfg)
	if err != nil {
		return cfg, err
	}

	if userCfg.Editor.TabWidth > 0 {
		cfg.Editor.TabWidth = userCfg.Editor.TabWidth
	}
	if userCfg.Editor.Indent != "" {
		cfg.Editor.Indent = userCfg.Editor.Indent
	}
	if userCfg.Editor.ScrollOff > 0 {
		cfg.Editor.ScrollOff = userCfg.Editor.ScrollOff
	}
	// Absent booleans keep their defaults.
	if md.IsDefined("editor", "line-numbers") {
		cfg.Editor.LineNumbers = userCfg.Editor.LineNumbers
	}
	if userCfg.Notes.Dir != "" {
		cfg.Notes.Dir = userCfg.Notes.Dir
	}
	if userCfg.Notes.Extension != "" {
		cfg.Notes.Extension = userCfg.Notes.Extension
	}
	cfg.Debug = userCfg.Debug

	return cfg, nil
}

// NotesDir resolves the notes directory: the configured path, or
// ~/notes when unset.
func (c Config) NotesDir() (string, error) {
	if c.Notes.Dir != "" {
		return expandHome(c.Notes.Dir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "notes"), nil
}

func expandHome(path string) (string, error) {
	if len(path) < 2 || path[:2] != "~/" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[2:]), nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("EKPHOS_CONFIG_HOME"); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "ekphos"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ekphos"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

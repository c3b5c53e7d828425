package main

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const configFile = "lox.toml"

// Config holds the optional CLI/REPL settings read from lox.toml. Every
// field has a working default, so a missing or partial file is fine.
type Config struct {
	Prompt      string `toml:"prompt"`
	HistoryFile string `toml:"history_file"`
	Color       bool   `toml:"color"`
}

func defaultConfig() Config {
	return Config{
		Prompt:      "==> ",
		HistoryFile: ".lox_history",
		Color:       true,
	}
}

// loadConfig looks for lox.toml in the working directory, then the user's
// home directory. Unknown or malformed files fall back to defaults; the
// REPL should start regardless.
func loadConfig() Config {
	cfg := defaultConfig()

	paths := []string{configFile}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, configFile))
	}

	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		parsed := defaultConfig()
		if err := toml.Unmarshal(data, &parsed); err != nil {
			continue
		}
		cfg = parsed
		break
	}
	return cfg
}

// historyPath expands the history file relative to the home directory
// unless it is already absolute.
func (c Config) historyPath() string {
	if filepath.IsAbs(c.HistoryFile) {
		return c.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return c.HistoryFile
	}
	return filepath.Join(home, c.HistoryFile)
}

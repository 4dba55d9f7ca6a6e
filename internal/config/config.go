package config

import (
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	LibraryPath     string
	DBPath          string // empty means <library>/.lawtext/index.db
	HTTPListen      string
	SSHListen       string
	ReindexInterval time.Duration
	LogLevel        string
	Theme           string
	CatalogueWidth  int
	OutlineWidth    int
	ShowCatalogue   bool
	ShowOutline     bool
	ShowStatus      bool
}

func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		LibraryPath:     filepath.Join(home, "regulations"),
		HTTPListen:      ":8080",
		SSHListen:       ":2222",
		ReindexInterval: 10 * time.Minute,
		LogLevel:        "info",
		Theme:           "catppuccin",
		CatalogueWidth:  34,
		OutlineWidth:    30,
		ShowCatalogue:   true,
		ShowOutline:     true,
		ShowStatus:      true,
	}
}

// StateDir is the per-library directory for the index, session state and
// SSH host key.
func (c Config) StateDir() string {
	return filepath.Join(c.LibraryPath, ".lawtext")
}

// IndexPath returns the catalogue database location.
func (c Config) IndexPath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(c.StateDir(), "index.db")
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors Config with pointer fields so we can distinguish
// "not set" from zero values when merging TOML.
type fileConfig struct {
	LibraryPath     *string `toml:"library_path"`
	DBPath          *string `toml:"db_path"`
	HTTPListen      *string `toml:"http_listen"`
	SSHListen       *string `toml:"ssh_listen"`
	ReindexInterval *string `toml:"reindex_interval"`
	LogLevel        *string `toml:"log_level"`
	Theme           *string `toml:"theme"`
	CatalogueWidth  *int    `toml:"catalogue_width"`
	OutlineWidth    *int    `toml:"outline_width"`
	ShowCatalogue   *bool   `toml:"show_catalogue"`
	ShowOutline     *bool   `toml:"show_outline"`
	ShowStatus      *bool   `toml:"show_status"`
}

// ConfigDir returns the lawtext config directory, respecting XDG_CONFIG_HOME.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lawtext")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "lawtext")
}

// ConfigPath returns the full path to config.toml.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// LoadFile reads the TOML file at path (ConfigPath when empty) and merges
// the fields it sets into cfg. It reports whether the file existed.
func LoadFile(cfg *Config, path string) (bool, error) {
	if path == "" {
		path = ConfigPath()
	}
	data, err := os.ReadFile(ExpandHome(path))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return true, fmt.Errorf("parse %s: %w", path, err)
	}

	setString(&cfg.LibraryPath, fc.LibraryPath)
	if fc.LibraryPath != nil {
		cfg.LibraryPath = ExpandHome(cfg.LibraryPath)
	}
	setString(&cfg.DBPath, fc.DBPath)
	if fc.DBPath != nil {
		cfg.DBPath = ExpandHome(cfg.DBPath)
	}
	setString(&cfg.HTTPListen, fc.HTTPListen)
	setString(&cfg.SSHListen, fc.SSHListen)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.Theme, fc.Theme)
	if fc.ReindexInterval != nil {
		d, err := time.ParseDuration(*fc.ReindexInterval)
		if err != nil {
			return true, fmt.Errorf("parse %s: reindex_interval: %w", path, err)
		}
		cfg.ReindexInterval = d
	}
	if fc.CatalogueWidth != nil {
		cfg.CatalogueWidth = *fc.CatalogueWidth
	}
	if fc.OutlineWidth != nil {
		cfg.OutlineWidth = *fc.OutlineWidth
	}
	if fc.ShowCatalogue != nil {
		cfg.ShowCatalogue = *fc.ShowCatalogue
	}
	if fc.ShowOutline != nil {
		cfg.ShowOutline = *fc.ShowOutline
	}
	if fc.ShowStatus != nil {
		cfg.ShowStatus = *fc.ShowStatus
	}

	return true, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// SaveFile writes a minimal config.toml with the given library path.
func SaveFile(libraryPath string) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Store with ~ for readability if under home dir.
	home, _ := os.UserHomeDir()
	display := libraryPath
	if home != "" && strings.HasPrefix(libraryPath, home+string(os.PathSeparator)) {
		display = "~" + libraryPath[len(home):]
	}

	fc := fileConfig{LibraryPath: &display}
	f, err := os.Create(filepath.Join(dir, "config.toml"))
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(fc)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, _ := os.UserHomeDir()
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

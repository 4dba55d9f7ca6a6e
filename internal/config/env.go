package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LAWTEXT_"

// LoadEnv loads dotenv files (missing ones are ignored) into the process
// environment without overriding variables already set, then applies
// LAWTEXT_* overrides to cfg.
func LoadEnv(cfg *Config, files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return applyEnv(cfg)
}

func applyEnv(cfg *Config) error {
	if v, ok := lookup("LIBRARY"); ok {
		cfg.LibraryPath = ExpandHome(v)
	}
	if v, ok := lookup("DB"); ok {
		cfg.DBPath = ExpandHome(v)
	}
	if v, ok := lookup("HTTP_LISTEN"); ok {
		cfg.HTTPListen = v
	}
	if v, ok := lookup("SSH_LISTEN"); ok {
		cfg.SSHListen = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup("THEME"); ok {
		cfg.Theme = v
	}
	if v, ok := lookup("REINDEX_INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sREINDEX_INTERVAL: %w", EnvPrefix, err)
		}
		cfg.ReindexInterval = d
	}
	if v, ok := lookup("SHOW_OUTLINE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sSHOW_OUTLINE: %w", EnvPrefix, err)
		}
		cfg.ShowOutline = b
	}
	return nil
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

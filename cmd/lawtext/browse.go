package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/ntpusu/lawtext/internal/app"
	"github.com/ntpusu/lawtext/internal/config"
	"github.com/ntpusu/lawtext/internal/ssh"
)

// BrowseCmd implements the 'browse' command.
type BrowseCmd struct {
	Theme string `help:"Color theme (catppuccin, nord, gruvbox, tokyo-night)"`
}

func (c *BrowseCmd) Run(cli *CLI) error {
	cfg := cli.cfg
	if c.Theme != "" {
		cfg.Theme = c.Theme
	}

	// First run: no config file, no --library and no library yet.
	if !cli.configExisted && cli.Library == "" {
		if _, err := os.Stat(cfg.LibraryPath); os.IsNotExist(err) {
			res, err := config.RunSetup()
			if err != nil {
				return fmt.Errorf("setup: %w", err)
			}
			if res.Cancelled {
				return nil
			}
			cfg.LibraryPath = res.LibraryPath
			if abs, err := filepath.Abs(cfg.LibraryPath); err == nil {
				cfg.LibraryPath = abs
			}
		}
	}

	if err := os.MkdirAll(cfg.StateDir(), 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	// The terminal belongs to the reader; keep logs in the state dir.
	logFile, err := os.OpenFile(filepath.Join(cfg.StateDir(), "lawtext.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = logFile.Close() }()
	log.SetOutput(logFile)

	a := app.New(cfg)
	defer a.Close()

	p := tea.NewProgram(&a, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("reader: %w", err)
	}
	return nil
}

// SSHCmd implements the 'ssh' command.
type SSHCmd struct {
	Listen string `help:"Listen address (default from config)"`
}

func (c *SSHCmd) Run(cli *CLI) error {
	cfg := cli.cfg
	if c.Listen != "" {
		cfg.SSHListen = c.Listen
	}

	s, err := ssh.New(cfg)
	if err != nil {
		return err
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go func() {
		<-ctx.Done()
		if err := s.Close(); err != nil {
			log.Error("close ssh server", "err", err)
		}
	}()

	return s.ListenAndServe()
}

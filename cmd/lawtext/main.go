package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/ntpusu/lawtext/internal/config"
	"github.com/ntpusu/lawtext/internal/library"
)

// CLI is the command tree and its global flags.
type CLI struct {
	Config  string `short:"c" help:"Configuration file path (default: $XDG_CONFIG_HOME/lawtext/config.toml)" type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging"`
	Library string `short:"l" help:"Regulation library directory" type:"path"`

	Render   RenderCmd   `cmd:"" help:"Render a regulation to HTML"`
	Meta     MetaCmd     `cmd:"" help:"Print the front matter of a regulation as YAML"`
	Manifest ManifestCmd `cmd:"" help:"Regenerate manifest.json from the library"`
	Resolve  ResolveCmd  `cmd:"" help:"Print the file a regulation ID resolves to"`
	Index    IndexCmd    `cmd:"" help:"Bring the search index up to date"`
	Search   SearchCmd   `cmd:"" help:"Search regulation titles and text"`
	Check    CheckCmd    `cmd:"" help:"Check the rendered HTML of regulations for structural problems"`
	Serve    ServeCmd    `cmd:"" help:"Serve rendered regulations over HTTP"`
	Browse   BrowseCmd   `cmd:"" default:"1" help:"Read regulations in the terminal"`
	SSH      SSHCmd      `cmd:"" name:"ssh" help:"Serve the terminal reader over SSH"`

	cfg           config.Config `kong:"-"`
	configExisted bool          `kong:"-"`
}

// AfterApply sets up logging and loads configuration once flags are parsed.
// Precedence: defaults, config file, .env and LAWTEXT_* variables, flags.
func (c *CLI) AfterApply() error {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	log.SetDefault(logger)

	c.cfg = config.Default()
	existed, err := config.LoadFile(&c.cfg, c.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.configExisted = existed
	if err := config.LoadEnv(&c.cfg); err != nil {
		return err
	}
	if c.Library != "" {
		c.cfg.LibraryPath = c.Library
	}
	c.cfg.LibraryPath = config.ExpandHome(c.cfg.LibraryPath)
	if abs, err := filepath.Abs(c.cfg.LibraryPath); err == nil {
		c.cfg.LibraryPath = abs
	}

	level, err := log.ParseLevel(c.cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log level %q: %w", c.cfg.LogLevel, err)
	}
	if c.Verbose {
		level = log.DebugLevel
	}
	logger.SetLevel(level)
	return nil
}

func (c *CLI) library() *library.Library {
	return library.New(c.cfg.LibraryPath)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("lawtext"),
		kong.Description("Render, index and read plain-text regulations."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(&cli); err != nil {
		log.Error(strings.TrimSpace(err.Error()))
		os.Exit(1)
	}
}

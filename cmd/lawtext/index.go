package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/ntpusu/lawtext/internal/index"
	"github.com/ntpusu/lawtext/internal/library"
)

// openIndex opens the catalogue database and brings it up to date.
func openIndex(ctx context.Context, cli *CLI, force bool) (*index.Indexer, index.Stats, error) {
	path := cli.cfg.IndexPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, index.Stats{}, fmt.Errorf("create index dir: %w", err)
	}
	db, err := index.Open(path)
	if err != nil {
		return nil, index.Stats{}, err
	}
	if force {
		if err := db.ResetHashes(); err != nil {
			_ = db.Close()
			return nil, index.Stats{}, err
		}
	}

	indexer := index.NewIndexer(db, cli.library())
	st, err := indexer.IndexAll(ctx)
	if err != nil {
		_ = db.Close()
		return nil, st, fmt.Errorf("index %s: %w", cli.cfg.LibraryPath, err)
	}
	return indexer, st, nil
}

// IndexCmd implements the 'index' command.
type IndexCmd struct {
	Force bool `short:"f" help:"Re-index every file even if unchanged"`
}

func (c *IndexCmd) Run(cli *CLI) error {
	indexer, st, err := openIndex(context.Background(), cli, c.Force)
	if err != nil {
		return err
	}
	defer func() { _ = indexer.DB().Close() }()

	total, err := indexer.DB().Count()
	if err != nil {
		return err
	}
	log.Info("index up to date",
		"path", cli.cfg.IndexPath(),
		"regulations", total,
		"indexed", st.Indexed,
		"unchanged", st.Unchanged,
		"skipped", st.Skipped,
		"removed", st.Removed)
	return nil
}

// SearchCmd implements the 'search' command.
type SearchCmd struct {
	Query  string `arg:"" help:"Text to look for"`
	Limit  int    `short:"n" help:"Maximum number of results" default:"20"`
	Titles bool   `short:"t" help:"Match titles only"`
}

func (c *SearchCmd) Run(cli *CLI) error {
	indexer, _, err := openIndex(context.Background(), cli, false)
	if err != nil {
		return err
	}
	db := indexer.DB()
	defer func() { _ = db.Close() }()

	if c.Titles {
		regs, err := db.SearchTitles(c.Query, c.Limit)
		if err != nil {
			return err
		}
		for _, r := range regs {
			fmt.Printf("%s  %s\n", library.PadID(r.ID), r.Title)
		}
		return nil
	}

	results, err := db.Search(c.Query, c.Limit)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("no matches")
		return nil
	}
	for _, r := range results {
		fmt.Printf("%s  %s\n", library.PadID(r.ID), r.Title)
		if r.Snippet != "" {
			fmt.Printf("      %s\n", r.Snippet)
		}
	}
	return nil
}

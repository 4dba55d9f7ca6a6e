package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ntpusu/lawtext/internal/lawtext"
	"github.com/ntpusu/lawtext/internal/library"
	"github.com/ntpusu/lawtext/internal/verify"
)

// readTarget reads a regulation named by a library ID, a file path or "-"
// for standard input. An existing file wins over an ID.
func readTarget(ctx context.Context, cli *CLI, target string) (name, text string, err error) {
	if target == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "stdin", string(data), nil
	}

	if _, statErr := os.Stat(target); statErr != nil {
		if id, idErr := library.ParseID(target); idErr == nil {
			entry, data, err := cli.library().Load(ctx, id)
			if err != nil {
				return "", "", err
			}
			return entry.Name, string(data), nil
		}
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return "", "", err
	}
	return filepath.Base(target), string(data), nil
}

func writeOutput(path, s string) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(os.Stdout, s)
		return err
	}
	return os.WriteFile(path, []byte(s), 0644)
}

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Target string `arg:"" help:"Regulation ID, path to a .txt file, or - for stdin"`
	Plain  bool   `help:"Escape the text and keep line breaks instead of formatting it"`
	Output string `short:"o" help:"Write the HTML to this file instead of stdout" type:"path"`
}

func (c *RenderCmd) Run(cli *CLI) error {
	_, text, err := readTarget(context.Background(), cli, c.Target)
	if err != nil {
		return err
	}
	out := lawtext.Render(text)
	if c.Plain {
		out = lawtext.PlainHTML(text)
	}
	return writeOutput(c.Output, out)
}

// MetaCmd implements the 'meta' command.
type MetaCmd struct {
	Target string `arg:"" help:"Regulation ID, path to a .txt file, or - for stdin"`
}

func (c *MetaCmd) Run(cli *CLI) error {
	_, text, err := readTarget(context.Background(), cli, c.Target)
	if err != nil {
		return err
	}
	doc := lawtext.Parse(text)
	if !doc.HasFrontmatter {
		return fmt.Errorf("%s: no front matter", c.Target)
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(doc.Meta.Map()); err != nil {
		return fmt.Errorf("encode front matter: %w", err)
	}
	return enc.Close()
}

// ManifestCmd implements the 'manifest' command.
type ManifestCmd struct {
	Stdout bool `help:"Print the manifest instead of writing manifest.json"`
}

func (c *ManifestCmd) Run(cli *CLI) error {
	lib := cli.library()
	if c.Stdout {
		names, err := lib.GenerateManifest()
		if err != nil {
			return err
		}
		data, err := library.EncodeManifest(names)
		if err != nil {
			return err
		}
		return writeOutput("", string(data)+"\n")
	}

	names, err := lib.WriteManifest()
	if err != nil {
		return err
	}
	fmt.Printf("%d regulations written to %s\n", len(names), lib.ManifestPath())
	return nil
}

// ResolveCmd implements the 'resolve' command.
type ResolveCmd struct {
	ID string `arg:"" help:"Regulation ID (0-9999)"`
}

func (c *ResolveCmd) Run(cli *CLI) error {
	id, err := library.ParseID(c.ID)
	if err != nil {
		return err
	}
	entry, _, err := cli.library().Load(context.Background(), id)
	if err != nil {
		return err
	}
	fmt.Println(entry.Path)
	return nil
}

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Targets []string `arg:"" optional:"" help:"Regulation IDs or files (default: the whole library)"`
}

func (c *CheckCmd) Run(cli *CLI) error {
	ctx := context.Background()
	targets := c.Targets
	if len(targets) == 0 {
		docs, err := cli.library().ListDocuments()
		if err != nil {
			return err
		}
		for _, d := range docs {
			targets = append(targets, d.Path)
		}
	}

	failed := 0
	for _, t := range targets {
		name, text, err := readTarget(ctx, cli, t)
		if err != nil {
			return err
		}
		report, err := verify.CheckDocument(text)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if report.OK() {
			fmt.Printf("ok    %s (%d articles)\n", name, report.Articles)
			continue
		}
		failed++
		fmt.Printf("FAIL  %s\n", name)
		for _, p := range report.Problems {
			fmt.Printf("      %s\n", p)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d regulations failed the check", failed, len(targets))
	}
	return nil
}

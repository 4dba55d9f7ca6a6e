package index

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ntpusu/lawtext/internal/lawtext"
	"github.com/ntpusu/lawtext/internal/library"
)

// Stats summarises an IndexAll run.
type Stats struct {
	Indexed   int
	Unchanged int
	Skipped   int
	Removed   int
}

// Indexer keeps the catalogue in sync with a library directory.
type Indexer struct {
	db  *DB
	lib *library.Library
}

func NewIndexer(db *DB, lib *library.Library) *Indexer {
	return &Indexer{db: db, lib: lib}
}

func (idx *Indexer) DB() *DB { return idx.db }

// Library returns the indexed library.
func (idx *Indexer) Library() *library.Library { return idx.lib }

// IndexAll indexes every document in the library and drops rows whose
// files are gone.
func (idx *Indexer) IndexAll(ctx context.Context) (Stats, error) {
	var st Stats

	docs, err := idx.lib.ListDocuments()
	if err != nil {
		return st, err
	}

	present := make(map[string]bool, len(docs))
	for _, d := range docs {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		present[d.Name] = true

		res, err := idx.indexEntry(d)
		if err != nil {
			return st, err
		}
		switch res {
		case resultIndexed:
			st.Indexed++
		case resultUnchanged:
			st.Unchanged++
		default:
			st.Skipped++
		}
	}

	names, err := idx.db.Filenames()
	if err != nil {
		return st, fmt.Errorf("list catalogue: %w", err)
	}
	for _, name := range names {
		if present[name] {
			continue
		}
		if _, err := idx.db.DeleteRegulation(name); err != nil {
			return st, err
		}
		st.Removed++
	}

	log.Debug("index complete", "indexed", st.Indexed, "unchanged", st.Unchanged, "skipped", st.Skipped, "removed", st.Removed)
	return st, nil
}

// IndexFile indexes one regulation file. It reports whether the catalogue
// changed.
func (idx *Indexer) IndexFile(absPath string) (bool, error) {
	name := filepath.Base(absPath)
	id, _ := library.IDFromName(name)
	res, err := idx.indexEntry(library.Entry{ID: id, Name: name, Path: absPath})
	return res == resultIndexed, err
}

type result int

const (
	resultSkipped result = iota
	resultUnchanged
	resultIndexed
)

func (idx *Indexer) indexEntry(e library.Entry) (result, error) {
	if !library.ValidName(e.Name) {
		log.Warn("skipping file without an id prefix", "file", e.Name)
		return resultSkipped, nil
	}

	content, err := os.ReadFile(e.Path)
	if err != nil {
		return resultSkipped, fmt.Errorf("read %s: %w", e.Name, err)
	}
	info, err := os.Stat(e.Path)
	if err != nil {
		return resultSkipped, fmt.Errorf("stat %s: %w", e.Name, err)
	}

	hash := fmt.Sprintf("%x", sha256.Sum256(content))
	existing, err := idx.db.GetHash(e.Name)
	if err != nil {
		return resultSkipped, fmt.Errorf("read hash: %w", err)
	}
	if hash == existing {
		return resultUnchanged, nil
	}

	doc := lawtext.Parse(string(content))
	title := doc.Meta.Title()
	if title == "" {
		title = e.Title()
	}

	var headingTexts []string
	var outline []OutlineEntry
	for _, h := range lawtext.ExtractOutline(string(content)) {
		o := OutlineEntry{Kind: h.Kind.String(), Text: h.Text, Line: h.Line}
		if h.Level != 0 {
			o.Level = string(h.Level)
		}
		outline = append(outline, o)
		headingTexts = append(headingTexts, h.Text)
	}

	reg := Regulation{
		ID:           e.ID,
		Filename:     e.Name,
		Title:        title,
		Status:       doc.Meta.String("status"),
		ModifiedType: doc.Meta.String("modifiedType"),
		ModifiedDate: doc.Meta.String("modifiedDate"),
		Articles:     lawtext.CountArticles(doc.Content),
		ModTime:      info.ModTime().Unix(),
		Size:         info.Size(),
		Hash:         hash,
	}

	saved, err := idx.db.SaveRegulation(reg, strings.Join(doc.Content, "\n"), strings.Join(headingTexts, "\n"), outline)
	if err != nil {
		return resultSkipped, fmt.Errorf("index %s: %w", e.Name, err)
	}
	if !saved {
		log.Warn("duplicate regulation id, keeping the first file", "id", library.PadID(e.ID), "file", e.Name)
		return resultSkipped, nil
	}
	return resultIndexed, nil
}

// RemoveFile drops a file from the catalogue. If another file carries the
// same ID it takes over the slot.
func (idx *Indexer) RemoveFile(absPath string) error {
	name := filepath.Base(absPath)
	id, err := idx.db.DeleteRegulation(name)
	if err != nil {
		return err
	}
	if id < 0 {
		return nil
	}

	docs, err := idx.lib.ListDocuments()
	if err != nil {
		return err
	}
	for _, d := range docs {
		if d.ID == id && d.Name != name {
			_, err := idx.indexEntry(d)
			return err
		}
	}
	return nil
}

package library

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

var (
	ErrNotFound      = errors.New("regulation not found")
	ErrInvalidID     = errors.New("invalid regulation id")
	ErrEmptyManifest = errors.New("manifest is empty")
)

const docExt = ".txt"

// Entry is a regulation file in the library.
type Entry struct {
	ID   int
	Name string // file name, e.g. 0007_學生自治會章程.txt
	Path string // absolute path
}

// Title is the file name without the ID prefix and extension.
func (e Entry) Title() string {
	base := strings.TrimSuffix(e.Name, filepath.Ext(e.Name))
	if ValidName(e.Name) {
		return base[len(PadID(0))+1:]
	}
	return base
}

// Source loads regulation texts by numeric ID.
type Source interface {
	Load(ctx context.Context, id int) (Entry, []byte, error)
}

// Library is a directory of plain-text regulations.
type Library struct {
	Root string
}

func New(root string) *Library {
	return &Library{Root: root}
}

// ListDocuments returns the .txt files directly inside the library root,
// sorted by name. Hidden files and directories are skipped.
func (l *Library) ListDocuments() ([]Entry, error) {
	dirEntries, err := os.ReadDir(l.Root)
	if err != nil {
		return nil, fmt.Errorf("read library: %w", err)
	}

	var docs []Entry
	for _, de := range dirEntries {
		name := de.Name()
		if strings.HasPrefix(name, ".") || !de.Type().IsRegular() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), docExt) {
			continue
		}
		docs = append(docs, l.entry(name))
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}

func (l *Library) entry(name string) Entry {
	id, _ := IDFromName(name)
	return Entry{ID: id, Name: name, Path: filepath.Join(l.Root, name)}
}

// Load resolves id through the manifest and reads the file. A missing
// manifest falls back to a directory scan.
func (l *Library) Load(ctx context.Context, id int) (Entry, []byte, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, nil, err
	}
	if id < 0 || id > MaxID {
		return Entry{}, nil, fmt.Errorf("%w: %d", ErrInvalidID, id)
	}

	names, err := l.LoadManifest()
	if errors.Is(err, os.ErrNotExist) {
		log.Debug("manifest missing, scanning library", "root", l.Root)
		names, err = l.GenerateManifest()
	}
	if err != nil {
		return Entry{}, nil, err
	}

	name, err := Resolve(names, id)
	if err != nil {
		return Entry{}, nil, err
	}

	e := l.entry(name)
	data, err := os.ReadFile(e.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Entry{}, nil, fmt.Errorf("%w: %s listed in manifest but missing", ErrNotFound, name)
		}
		return Entry{}, nil, fmt.Errorf("read %s: %w", name, err)
	}
	return e, data, nil
}

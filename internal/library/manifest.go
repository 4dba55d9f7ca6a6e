package library

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// ManifestName is the manifest file kept in the library root.
const ManifestName = "manifest.json"

func (l *Library) ManifestPath() string {
	return filepath.Join(l.Root, ManifestName)
}

// GenerateManifest lists the document file names in manifest order. Names
// that do not follow the NNNN_<title>.txt convention are kept but logged.
func (l *Library) GenerateManifest() ([]string, error) {
	docs, err := l.ListDocuments()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(docs))
	for _, d := range docs {
		if !ValidName(d.Name) {
			log.Warn("file name does not match NNNN_<title>.txt, it will not be resolvable by id", "file", d.Name)
		}
		names = append(names, d.Name)
	}
	if len(names) == 0 {
		log.Warn("no .txt files found, writing an empty manifest", "root", l.Root)
	}
	return names, nil
}

// WriteManifest regenerates manifest.json and returns the names written.
func (l *Library) WriteManifest() ([]string, error) {
	names, err := l.GenerateManifest()
	if err != nil {
		return nil, err
	}

	data, err := EncodeManifest(names)
	if err != nil {
		return nil, err
	}

	path := l.ManifestPath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	log.Info("manifest written", "path", path, "files", len(names))
	return names, nil
}

// LoadManifest reads manifest.json. The manifest must be a non-empty JSON
// array of strings.
func (l *Library) LoadManifest() ([]string, error) {
	data, err := os.ReadFile(l.ManifestPath())
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}
	return DecodeManifest(data)
}

// EncodeManifest renders names as a two-space indented JSON array with
// non-ASCII characters left as is.
func EncodeManifest(names []string) ([]byte, error) {
	if names == nil {
		names = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(names); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func DecodeManifest(data []byte) ([]string, error) {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("manifest must be a JSON array of file names: %w", err)
	}
	if len(names) == 0 {
		return nil, ErrEmptyManifest
	}
	return names, nil
}

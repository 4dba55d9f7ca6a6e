package index

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 200 * time.Millisecond

// Watcher monitors the library for changes, re-indexes the touched files and
// regenerates the manifest.
type Watcher struct {
	indexer  *Indexer
	watcher  *fsnotify.Watcher
	debounce map[string]*time.Timer
	mu       sync.Mutex
	closed   bool
	onChange func(path string)
	onError  func(error)
}

// NewWatcher watches the indexer's library root. onChange runs after each
// debounced update; onError runs once if the underlying watcher fails.
// Either may be nil.
func NewWatcher(indexer *Indexer, onChange func(path string), onError func(error)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(indexer.lib.Root); err != nil {
		_ = fw.Close()
		return nil, err
	}

	return &Watcher{
		indexer:  indexer,
		watcher:  fw,
		debounce: make(map[string]*time.Timer),
		onChange: onChange,
		onError:  onError,
	}, nil
}

// Start processes events until ctx is done, Stop is called or the watcher
// fails.
func (w *Watcher) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			_ = w.Stop()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.fatal(err)
			return
		}
	}
}

func isDocument(path string) bool {
	name := filepath.Base(path)
	return !strings.HasPrefix(name, ".") && strings.EqualFold(filepath.Ext(name), docExt)
}

const docExt = ".txt"

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	if !isDocument(path) || event.Op == fsnotify.Chmod {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}
	w.debounce[path] = time.AfterFunc(debounceDelay, func() {
		w.mu.Lock()
		delete(w.debounce, path)
		closed := w.closed
		w.mu.Unlock()
		if closed {
			return
		}

		w.apply(path, event)
	})
}

func (w *Watcher) apply(path string, event fsnotify.Event) {
	var err error
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		err = w.indexer.RemoveFile(path)
	} else {
		_, err = w.indexer.IndexFile(path)
	}
	if err != nil {
		log.Error("reindex failed", "file", filepath.Base(path), "err", err)
	}

	if _, err := w.indexer.lib.WriteManifest(); err != nil {
		log.Error("manifest regeneration failed", "err", err)
	}

	if w.onChange != nil {
		w.onChange(path)
	}
}

// Stop stops the watcher and drops pending updates. It is safe to call more
// than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for path, timer := range w.debounce {
		timer.Stop()
		delete(w.debounce, path)
	}
	w.mu.Unlock()

	return w.watcher.Close()
}

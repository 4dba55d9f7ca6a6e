package index

import "github.com/charmbracelet/log"

// fatal shuts the watcher down after an unrecoverable fsnotify error and
// reports it once.
func (w *Watcher) fatal(err error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	for _, timer := range w.debounce {
		timer.Stop()
	}
	onError := w.onError
	w.mu.Unlock()

	log.Error("library watcher stopped", "err", err)
	_ = w.watcher.Close()
	if onError != nil {
		onError(err)
	}
}

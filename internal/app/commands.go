package app

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/ntpusu/lawtext/internal/index"
	"github.com/ntpusu/lawtext/internal/lawtext"
	"github.com/ntpusu/lawtext/internal/library"
	"github.com/ntpusu/lawtext/internal/panel"
)

const (
	finderLimit    = 50
	catalogueLimit = 10000
)

// initIndex brings the index up to date with the library.
func (a *App) initIndex() tea.Cmd {
	indexer := a.indexer
	return func() tea.Msg {
		stats, err := indexer.IndexAll(context.Background())
		return indexDoneMsg{stats: stats, err: err}
	}
}

// startWatcher keeps the index current while the reader is open.
func (a *App) startWatcher() {
	if a.indexer == nil || a.watcher != nil {
		return
	}
	events, done := a.events, a.done
	send := func(msg tea.Msg) {
		select {
		case events <- msg:
		case <-done:
		default:
			// A refresh is already pending.
		}
	}
	w, err := index.NewWatcher(a.indexer,
		func(path string) { send(fileChangedMsg{path: path}) },
		func(err error) { send(fatalErrorMsg{err: err}) },
	)
	if err != nil {
		a.status.SetError(fmt.Sprintf("watch failed: %v", err))
		return
	}
	a.watcher = w
	go w.Start(context.Background())
}

// waitForEvent delivers the next watcher event to Update. It returns nil
// once the app is closed.
func (a *App) waitForEvent() tea.Cmd {
	events, done := a.events, a.done
	return func() tea.Msg {
		select {
		case msg := <-events:
			return msg
		case <-done:
			return nil
		}
	}
}

// loadCatalogue reads the regulation list from the index.
func (a *App) loadCatalogue() tea.Cmd {
	db := a.db
	return func() tea.Msg {
		items, err := db.ListAll(catalogueLimit)
		return catalogueMsg{items: items, err: err}
	}
}

func catalogueItems(regs []index.Regulation) []panel.CatalogueItem {
	items := make([]panel.CatalogueItem, len(regs))
	for i, r := range regs {
		items[i] = panel.CatalogueItem{
			ID:        r.ID,
			Title:     r.Title,
			Abandoned: r.Status == lawtext.StatusAbandoned,
		}
	}
	return items
}

// openRegulation loads a regulation by ID through the library.
func (a *App) openRegulation(id int, reload bool) tea.Cmd {
	lib := a.lib
	return func() tea.Msg {
		entry, data, err := lib.Load(context.Background(), id)
		if err != nil {
			return documentMsg{reload: reload, err: err}
		}
		text := string(data)
		return documentMsg{
			entry:   entry,
			text:    text,
			outline: lawtext.ExtractOutline(text),
			reload:  reload,
		}
	}
}

// searchContent returns finder items for a full-text query.
func (a *App) searchContent(query string) []panel.FinderItem {
	if a.db == nil {
		return nil
	}
	if query == "" {
		return a.searchTitles("")
	}

	results, err := a.db.Search(query, finderLimit)
	if err != nil {
		log.Debug("search failed", "query", query, "err", err)
		return nil
	}

	items := make([]panel.FinderItem, len(results))
	for i, r := range results {
		items[i] = panel.FinderItem{
			ID:    r.ID,
			Title: r.Title,
			Extra: r.Snippet,
		}
	}
	return items
}

// searchTitles returns finder items whose title contains query.
func (a *App) searchTitles(query string) []panel.FinderItem {
	if a.db == nil {
		return nil
	}

	var (
		regs []index.Regulation
		err  error
	)
	if query == "" {
		regs, err = a.db.ListAll(finderLimit)
	} else {
		regs, err = a.db.SearchTitles(query, finderLimit)
	}
	if err != nil {
		log.Debug("title search failed", "query", query, "err", err)
		return nil
	}

	items := make([]panel.FinderItem, len(regs))
	for i, r := range regs {
		extra := ""
		if r.Status == lawtext.StatusAbandoned {
			extra = "❌"
		}
		items[i] = panel.FinderItem{ID: r.ID, Title: r.Title, Extra: extra}
	}
	return items
}

// handleFileChanged refreshes the catalogue and, when the open regulation
// changed on disk, the reader.
func (a *App) handleFileChanged(path string) tea.Cmd {
	cmds := []tea.Cmd{a.waitForEvent(), a.loadCatalogue()}
	if a.reader.ID() >= 0 && filepath.Base(path) == a.reader.Name() {
		cmds = append(cmds, a.openRegulation(a.reader.ID(), true))
	}
	return tea.Batch(cmds...)
}

func validateID(s string) error {
	_, err := library.ParseID(s)
	return err
}

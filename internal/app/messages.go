package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ntpusu/lawtext/internal/index"
	"github.com/ntpusu/lawtext/internal/lawtext"
	"github.com/ntpusu/lawtext/internal/library"
)

// fatalErrorMsg is sent when a background subsystem encounters an
// unrecoverable error. The app quits and prints the error.
type fatalErrorMsg struct{ err error }

// indexDoneMsg reports the result of a full index pass.
type indexDoneMsg struct {
	stats index.Stats
	err   error
}

// catalogueMsg carries the regulation list read from the index.
type catalogueMsg struct {
	items []index.Regulation
	err   error
}

// documentMsg carries a loaded regulation.
type documentMsg struct {
	entry   library.Entry
	text    string
	outline []lawtext.Heading
	// reload keeps the reader position.
	reload bool
	err    error
}

// fileChangedMsg is sent by the watcher after a regulation file was
// re-indexed or removed.
type fileChangedMsg struct{ path string }

func fatalCmd(err error) tea.Cmd {
	return tea.Sequence(tea.Printf("fatal: %v\n", err), tea.Quit)
}

package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"github.com/ntpusu/lawtext/internal/config"
	"github.com/ntpusu/lawtext/internal/index"
	"github.com/ntpusu/lawtext/internal/library"
	"github.com/ntpusu/lawtext/internal/panel"
	"github.com/ntpusu/lawtext/internal/session"
	"github.com/ntpusu/lawtext/internal/theme"
)

type focusedPanel int

const (
	focusReader focusedPanel = iota
	focusCatalogue
	focusOutline
)

type App struct {
	cfg       config.Config
	lib       *library.Library
	db        *index.DB
	indexer   *index.Indexer
	watcher   *index.Watcher
	store     *session.Store
	events    chan tea.Msg
	done      chan struct{}
	catalogue panel.Catalogue
	reader    panel.Reader
	outline   panel.Outline
	status    panel.Status
	finder    panel.Finder
	prompt    panel.Prompt
	keyHelp   panel.KeyHelp
	theme     *theme.Theme
	bindings  map[string]*Binding
	width     int
	height    int
	focused   focusedPanel

	showCatalogue  bool
	showOutline    bool
	zenMode        bool
	catalogueWidth int
	outlineWidth   int

	// restoreID and restoreOffset reopen the last session once the
	// catalogue is loaded.
	restoreID     int
	restoreOffset int

	listening bool
	closeOnce *sync.Once
}

func New(cfg config.Config) App {
	th := theme.Get(cfg.Theme)
	lib := library.New(cfg.LibraryPath)

	store := session.NewStore(cfg.StateDir())
	state, err := store.Load()
	if err != nil {
		log.Warn("session state ignored", "err", err)
	}

	a := App{
		cfg:            cfg,
		lib:            lib,
		store:          store,
		events:         make(chan tea.Msg, 8),
		done:           make(chan struct{}),
		theme:          &th,
		catalogue:      panel.NewCatalogue(&th),
		reader:         panel.NewReader(&th),
		outline:        panel.NewOutline(&th),
		status:         panel.NewStatus(cfg.LibraryPath, &th),
		finder:         panel.NewFinder(&th),
		prompt:         panel.NewPrompt(&th),
		keyHelp:        panel.NewKeyHelp(config.DefaultKeybinds(), &th),
		bindings:       newBindings(),
		showCatalogue:  cfg.ShowCatalogue && state.ShowCatalogue,
		showOutline:    cfg.ShowOutline && state.ShowOutline,
		catalogueWidth: pick(state.CatalogueWidth, cfg.CatalogueWidth),
		outlineWidth:   pick(state.OutlineWidth, cfg.OutlineWidth),
		restoreID:      state.LastID,
		restoreOffset:  state.Offset,
		closeOnce:      &sync.Once{},
	}
	if cfg.ShowStatus {
		a.status.SetHelp(config.HelpLine(config.DefaultKeybinds()))
	}

	if a.showCatalogue {
		a.setFocus(focusCatalogue)
	} else {
		a.setFocus(focusReader)
	}

	dbPath := cfg.IndexPath()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		a.status.SetError(fmt.Sprintf("index open failed: %v", err))
		return a
	}
	db, err := index.Open(dbPath)
	if err != nil {
		// Keep the reader usable; only search and the catalogue need the index.
		a.status.SetError(fmt.Sprintf("index open failed: %v", err))
		return a
	}
	a.db = db
	a.indexer = index.NewIndexer(db, lib)

	return a
}

func pick(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("lawtext")}
	if a.indexer != nil {
		cmds = append(cmds, a.initIndex())
	} else if a.restoreID >= 0 {
		cmds = append(cmds, a.openRegulation(a.restoreID, false))
		a.restoreID = -1
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKeyMsg(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		a.reader, cmd = a.reader.Update(msg)
		a.updatePosition()
		return a, cmd

	case indexDoneMsg:
		if msg.err != nil {
			a.status.SetError(fmt.Sprintf("index failed: %v", msg.err))
		}
		a.startWatcher()
		cmds := []tea.Cmd{a.loadCatalogue()}
		if !a.listening {
			a.listening = true
			cmds = append(cmds, a.waitForEvent())
		}
		return a, tea.Batch(cmds...)

	case catalogueMsg:
		if msg.err != nil {
			a.status.SetError(fmt.Sprintf("catalogue failed: %v", msg.err))
			return a, nil
		}
		a.catalogue.SetItems(catalogueItems(msg.items))
		if a.restoreID >= 0 {
			id := a.restoreID
			a.restoreID = -1
			a.catalogue.Select(id)
			return a, a.openRegulation(id, false)
		}
		return a, nil

	case documentMsg:
		a.handleDocument(msg)
		return a, nil

	case panel.RegulationSelectedMsg:
		a.status.SetMode(panel.ModeRead)
		a.setFocus(focusReader)
		return a, a.openRegulation(msg.ID, false)

	case panel.OutlineJumpMsg:
		if a.reader.JumpToLine(msg.Line) {
			a.setFocus(focusReader)
			a.updatePosition()
		}
		return a, nil

	case panel.FinderClosedMsg, panel.PromptCancelledMsg:
		a.status.SetMode(panel.ModeRead)
		return a, nil

	case panel.PromptResultMsg:
		a.status.SetMode(panel.ModeRead)
		id, err := library.ParseID(msg.Value)
		if err != nil {
			a.status.SetError(err.Error())
			return a, nil
		}
		a.setFocus(focusReader)
		return a, a.openRegulation(id, false)

	case fileChangedMsg:
		return a, a.handleFileChanged(msg.path)

	case fatalErrorMsg:
		a.Close()
		return a, fatalCmd(msg.err)
	}

	return a, nil
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		a.Close()
		return tea.Quit
	}

	// Overlays take priority when visible
	if a.prompt.Visible() {
		var cmd tea.Cmd
		a.prompt, cmd = a.prompt.Update(msg)
		return cmd
	}
	if a.finder.Visible() {
		var cmd tea.Cmd
		a.finder, cmd = a.finder.Update(msg)
		return cmd
	}
	if a.keyHelp.Visible() {
		a.keyHelp.Hide()
		return nil
	}

	a.status.ClearError()

	// Escape returns from side panels to the reader
	if key == "esc" && a.focused != focusReader && !a.catalogue.ShowingHelp() {
		a.setFocus(focusReader)
		return nil
	}

	if handled, cmd := a.handleKey(key); handled {
		return cmd
	}

	var cmd tea.Cmd
	switch a.focused {
	case focusCatalogue:
		a.catalogue, cmd = a.catalogue.Update(msg)
	case focusOutline:
		a.outline, cmd = a.outline.Update(msg)
	default:
		a.reader, cmd = a.reader.Update(msg)
		a.updatePosition()
	}
	return cmd
}

func (a *App) handleDocument(msg documentMsg) {
	if msg.err != nil {
		switch {
		case errors.Is(msg.err, library.ErrNotFound):
			a.status.SetError("找不到對應的法規檔案")
		case errors.Is(msg.err, library.ErrEmptyManifest):
			a.status.SetError("法規清單為空")
		default:
			a.status.SetError(fmt.Sprintf("open failed: %v", msg.err))
		}
		if msg.reload {
			a.reader.Clear()
			a.outline.Clear()
			a.status.SetFile("")
		}
		a.updatePosition()
		return
	}

	id, _ := library.IDFromName(msg.entry.Name)
	if msg.reload && a.reader.ID() == id {
		a.reader.Reload(msg.text)
	} else {
		a.reader.SetDocument(id, msg.entry.Name, msg.text)
		if a.restoreOffset > 0 {
			a.reader.SetOffset(a.restoreOffset)
			a.restoreOffset = 0
		}
	}
	a.outline.SetHeadings(msg.outline)
	a.catalogue.Select(id)
	a.status.SetFile(msg.entry.Name)
	a.updatePosition()
}

func (a *App) updatePosition() {
	if a.reader.ID() < 0 {
		a.status.SetPosition(-1, 0)
		return
	}
	a.status.SetPosition(a.reader.Articles(), a.reader.ScrollPercent())
}

// ShowSearch opens the full-text finder.
func (a *App) ShowSearch() {
	if a.db == nil {
		a.status.SetError("index unavailable")
		return
	}
	a.finder.Show("全文檢索", a.searchContent)
	a.status.SetMode(panel.ModeFind)
}

// ShowTitleFinder opens the finder over regulation titles.
func (a *App) ShowTitleFinder() {
	if a.db == nil {
		a.status.SetError("index unavailable")
		return
	}
	a.finder.Show("法規名稱", a.searchTitles)
	a.status.SetMode(panel.ModeFind)
}

// ShowGoto asks for a regulation ID to open.
func (a *App) ShowGoto() {
	a.prompt.Show("開啟法規 ID", "0001", validateID)
	a.status.SetMode(panel.ModeInput)
}

// Reload re-indexes the library and reopens the current regulation.
func (a *App) Reload() tea.Cmd {
	var cmds []tea.Cmd
	if a.indexer != nil {
		cmds = append(cmds, a.initIndex())
	}
	if a.reader.ID() >= 0 {
		cmds = append(cmds, a.openRegulation(a.reader.ID(), true))
	}
	return tea.Batch(cmds...)
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	minW, minH := a.minWindowSize()
	if a.width < minW || a.height < minH {
		msg := fmt.Sprintf("Window too small (%dx%d)\nMinimum supported: %dx%d", a.width, a.height, minW, minH)
		box := lipgloss.NewStyle().
			Foreground(a.theme.Text).
			Padding(1, 2).
			Render(msg)
		return overlayCenter(strings.Repeat("\n", a.height), box, a.width, a.height)
	}

	showCatalogue, showOutline := a.panelsVisible()
	layout := ComputeLayout(a.width, a.height, showCatalogue, showOutline, a.catalogueWidth, a.outlineWidth)

	var columns []string

	if showCatalogue {
		cw := layout.CatalogueWidth - 1
		if cw < 0 {
			cw = 0
		}
		borderStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, true, false, false).
			BorderForeground(a.theme.Border).
			Width(cw).
			Height(layout.Height)
		columns = append(columns, borderStyle.Render(a.catalogue.View()))
	}

	readerStyle := lipgloss.NewStyle().
		Width(layout.ReaderWidth).
		Height(layout.Height)
	columns = append(columns, readerStyle.Render(a.reader.View()))

	if showOutline {
		ow := layout.OutlineWidth - 1
		if ow < 0 {
			ow = 0
		}
		borderStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, false, false, true).
			BorderForeground(a.theme.Border).
			Width(ow).
			Height(layout.Height)
		columns = append(columns, borderStyle.Render(a.outline.View()))
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	result := main
	if a.cfg.ShowStatus {
		result += "\n" + a.status.View()
	}

	for _, overlay := range []string{a.keyHelp.View(), a.finder.View(), a.prompt.View()} {
		if overlay != "" {
			result = overlayCenter(result, overlay, a.width, a.height)
		}
	}

	return result
}

// Close saves the session and releases the index. It is safe to call more
// than once.
func (a *App) Close() {
	a.closeOnce.Do(a.close)
}

func (a *App) close() {
	if a.store != nil {
		state := session.State{
			LastID:         a.reader.ID(),
			ShowCatalogue:  a.showCatalogue,
			ShowOutline:    a.showOutline,
			CatalogueWidth: a.catalogueWidth,
			OutlineWidth:   a.outlineWidth,
			Offset:         a.reader.Offset(),
		}
		if err := a.store.Save(state); err != nil {
			log.Error("save session state", "err", err)
		}
	}

	if a.watcher != nil {
		if err := a.watcher.Stop(); err != nil {
			log.Error("stop watcher", "err", err)
		}
	}
	close(a.done)
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			log.Error("close index", "err", err)
		}
	}
}

func (a *App) panelsVisible() (bool, bool) {
	if a.zenMode {
		return false, false
	}
	return a.showCatalogue, a.showOutline
}

func (a *App) minWindowSize() (minW, minH int) {
	return 60, 20
}

func (a *App) updateLayout() {
	showCatalogue, showOutline := a.panelsVisible()
	layout := ComputeLayout(a.width, a.height, showCatalogue, showOutline, a.catalogueWidth, a.outlineWidth)
	if !a.cfg.ShowStatus {
		layout.Height++
	}

	a.catalogue.SetSize(layout.CatalogueWidth, layout.Height)
	a.outline.SetSize(layout.OutlineWidth, layout.Height)
	a.reader.SetSize(layout.ReaderWidth, layout.Height)
	a.status.SetWidth(a.width)
	a.finder.SetSize(a.width, a.height)
	a.prompt.SetSize(a.width, a.height)
	a.keyHelp.SetWidth(a.width / 2)
	a.updatePosition()
}

func (a *App) setFocus(target focusedPanel) {
	a.catalogue.SetFocused(target == focusCatalogue)
	a.outline.SetFocused(target == focusOutline)
	a.reader.SetFocused(target == focusReader)
	a.focused = target
}

// focusOrder lists the visible panels left to right.
func (a *App) focusOrder() []focusedPanel {
	showCatalogue, showOutline := a.panelsVisible()
	order := make([]focusedPanel, 0, 3)
	if showCatalogue {
		order = append(order, focusCatalogue)
	}
	order = append(order, focusReader)
	if showOutline {
		order = append(order, focusOutline)
	}
	return order
}

func (a *App) cycleFocus(step int) {
	order := a.focusOrder()
	for i, p := range order {
		if p == a.focused {
			a.setFocus(order[(i+step+len(order))%len(order)])
			return
		}
	}
	a.setFocus(focusReader)
}

func (a *App) focusNext() { a.cycleFocus(1) }

func (a *App) focusPrev() { a.cycleFocus(-1) }

func (a *App) ToggleCatalogue() {
	a.showCatalogue = !a.showCatalogue
	if !a.showCatalogue && a.focused == focusCatalogue {
		a.setFocus(focusReader)
	}
	a.updateLayout()
}

func (a *App) ToggleOutline() {
	a.showOutline = !a.showOutline
	if !a.showOutline && a.focused == focusOutline {
		a.setFocus(focusReader)
	}
	a.updateLayout()
}

func (a *App) ToggleZen() {
	a.zenMode = !a.zenMode
	if a.zenMode && a.focused != focusReader {
		a.setFocus(focusReader)
	}
	a.updateLayout()
}

func overlayCenter(base, overlay string, width, height int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")

	overlayWidth := 0
	for _, line := range overlayLines {
		w := lipgloss.Width(line)
		if w > overlayWidth {
			overlayWidth = w
		}
	}

	startRow := (height - len(overlayLines)) / 2
	startCol := (width - overlayWidth) / 2
	if startRow < 0 {
		startRow = 0
	}
	if startCol < 0 {
		startCol = 0
	}

	for i, overlayLine := range overlayLines {
		row := startRow + i
		if row >= len(baseLines) {
			break
		}

		baseLine := baseLines[row]
		if w := lipgloss.Width(baseLine); w < startCol {
			baseLine += strings.Repeat(" ", startCol-w)
		}

		// Cut by cells so ANSI sequences and wide runes stay intact.
		left := ansi.Cut(baseLine, 0, startCol)
		right := ansi.Cut(baseLine, startCol+overlayWidth, width)

		baseLines[row] = ansi.Truncate(left+overlayLine+right, width, "")
	}

	return strings.Join(baseLines, "\n")
}

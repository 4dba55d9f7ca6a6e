package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ntpusu/lawtext/internal/lawtext"
	"github.com/ntpusu/lawtext/internal/library"
	"github.com/ntpusu/lawtext/internal/theme"
)

const emptyText = "無法處理空白或無效的文本內容"

// Reader shows one regulation laid out the way the rendered page is: front
// block, full text and history.
type Reader struct {
	vp       viewport.Model
	theme    *theme.Theme
	styles   theme.Styles
	id       int
	name     string
	text     string
	meta     lawtext.Metadata
	articles int
	// rows maps a 1-based source line to its first rendered row.
	rows    map[int]int
	width   int
	height  int
	focused bool
}

func NewReader(th *theme.Theme) Reader {
	return Reader{
		vp:     viewport.New(0, 0),
		theme:  th,
		styles: theme.NewStyles(*th),
		id:     -1,
	}
}

// SetDocument loads a regulation into the reader and scrolls to the top.
func (r *Reader) SetDocument(id int, name, text string) {
	r.id = id
	r.name = name
	r.text = text
	r.render()
	r.vp.GotoTop()
}

// Reload replaces the text of the open regulation, keeping the scroll
// position where possible.
func (r *Reader) Reload(text string) {
	offset := r.vp.YOffset
	r.text = text
	r.render()
	r.vp.SetYOffset(offset)
}

// Clear empties the reader.
func (r *Reader) Clear() {
	r.id = -1
	r.name = ""
	r.text = ""
	r.meta = nil
	r.rows = nil
	r.articles = 0
	r.vp.SetContent("")
}

// ID returns the open regulation ID, or -1.
func (r Reader) ID() int { return r.id }

// Name returns the file name of the open regulation.
func (r Reader) Name() string { return r.name }

// Text returns the raw text of the open regulation.
func (r Reader) Text() string { return r.text }

// Title returns the full title from the front matter, falling back to the
// file name.
func (r Reader) Title() string {
	if t := r.meta.Title(); t != "" {
		return t
	}
	return library.Entry{Name: r.name}.Title()
}

// Articles returns the number of articles in the open regulation.
func (r Reader) Articles() int { return r.articles }

// Offset returns the scroll position.
func (r Reader) Offset() int { return r.vp.YOffset }

// SetOffset scrolls to row.
func (r *Reader) SetOffset(row int) { r.vp.SetYOffset(row) }

// ScrollPercent returns the scroll position as a fraction in [0, 1].
func (r Reader) ScrollPercent() float64 { return r.vp.ScrollPercent() }

// JumpToLine scrolls so that the given 1-based source line is at the top.
// It reports whether the line is part of the rendered content.
func (r *Reader) JumpToLine(line int) bool {
	row, ok := r.rows[line]
	if !ok {
		return false
	}
	r.vp.SetYOffset(row)
	return true
}

func (r *Reader) render() {
	r.rows = make(map[int]int)
	r.meta = nil
	r.articles = 0

	if r.width <= 0 {
		r.vp.SetContent("")
		return
	}
	if strings.TrimSpace(r.text) == "" {
		r.vp.SetContent(r.styles.Dim.Render(emptyText))
		return
	}

	doc := lawtext.Parse(r.text)
	r.meta = doc.Meta
	r.articles = lawtext.CountArticles(doc.Content)
	width := r.width - 2

	var b strings.Builder
	row := 0
	add := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
		row += strings.Count(s, "\n") + 1
	}

	r.writeFront(add, width)

	for i, raw := range doc.Content {
		r.rows[doc.ContentStart+i+1] = row
		add(r.styles.Line(lawtext.Classify(raw), width))
	}

	add("")
	add(r.styles.Section.Render("沿革"))
	if items, ok := doc.Meta.List("history"); ok {
		for _, item := range items {
			add(r.styles.History.Width(width).Render(item))
		}
	}

	r.vp.SetContent(strings.TrimRight(b.String(), "\n"))
}

func (r *Reader) writeFront(add func(string), width int) {
	if title := r.meta.Title(); title != "" {
		line := r.styles.Label.Render("法規名稱：") + r.styles.Title.Render(title)
		if r.meta.Abandoned() {
			line += r.styles.Abandoned.Render(" ❌")
		}
		add(lipgloss.NewStyle().Width(width).Render(line))

		kind, date := r.meta.String("modifiedType"), r.meta.String("modifiedDate")
		if kind != "" && date != "" {
			label := r.styles.Label
			if r.meta.Abandoned() {
				label = r.styles.Abandoned
			}
			add(label.Render(kind+"日期：") + r.styles.Body.Render(lawtext.FormatDate(date)))
		}
	}
	add("")
	add(r.styles.Section.Render("全文"))
	add("")
}

func (r Reader) Update(msg tea.Msg) (Reader, tea.Cmd) {
	if !r.focused {
		return r, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "g", "home":
			r.vp.GotoTop()
			return r, nil
		case "G", "end":
			r.vp.GotoBottom()
			return r, nil
		}
	}

	var cmd tea.Cmd
	r.vp, cmd = r.vp.Update(msg)
	return r, cmd
}

func (r Reader) View() string {
	if r.width == 0 || r.height == 0 {
		return ""
	}
	th := r.theme

	titleStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	if r.focused {
		titleStyle = titleStyle.Foreground(th.Accent).Underline(true)
	} else {
		titleStyle = titleStyle.Foreground(th.Dim)
	}

	title := "Reader"
	if r.id >= 0 {
		title = fmt.Sprintf("%s %s", library.PadID(r.id), r.Title())
	}

	body := r.vp.View()
	if r.id < 0 {
		body = lipgloss.NewStyle().Foreground(th.Dim).Padding(0, 1).
			Render("Select a regulation from the catalogue or press / to search")
	}

	return titleStyle.Render(title) + "\n" + lipgloss.NewStyle().PaddingLeft(1).Render(body)
}

func (r *Reader) SetSize(width, height int) {
	changed := width != r.width
	r.width = width
	r.height = height
	r.vp.Width = width - 1
	r.vp.Height = height - 1 // title row
	if r.vp.Height < 0 {
		r.vp.Height = 0
	}
	if changed && r.text != "" {
		offset := r.vp.YOffset
		r.render()
		r.vp.SetYOffset(offset)
	}
}

func (r *Reader) SetFocused(focused bool) {
	r.focused = focused
}

package panel

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/ntpusu/lawtext/internal/lawtext"
	"github.com/ntpusu/lawtext/internal/theme"
)

// OutlineJumpMsg asks the reader to scroll to a source line.
type OutlineJumpMsg struct {
	Line int
}

// headingDepth orders heading levels from the widest division down.
var headingDepth = map[rune]int{
	'編': 0,
	'章': 1,
	'節': 2,
	'款': 3,
	'項': 4,
	'目': 5,
}

// Outline is the headings and articles panel of the open regulation.
type Outline struct {
	width    int
	height   int
	items    []lawtext.Heading
	cursor   int
	offset   int
	articles bool
	focused  bool
	theme    *theme.Theme
}

func NewOutline(th *theme.Theme) Outline {
	return Outline{theme: th, articles: true}
}

// SetHeadings replaces the outline and resets the cursor.
func (o *Outline) SetHeadings(items []lawtext.Heading) {
	o.items = items
	o.cursor = 0
	o.offset = 0
}

func (o *Outline) Clear() {
	o.items = nil
	o.cursor = 0
	o.offset = 0
}

// visible returns the entries shown with the current article filter.
func (o Outline) visible() []lawtext.Heading {
	if o.articles {
		return o.items
	}
	var out []lawtext.Heading
	for _, h := range o.items {
		if h.Kind == lawtext.KindHeading {
			out = append(out, h)
		}
	}
	return out
}

func (o *Outline) rows() int {
	rows := o.height - 2
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (o *Outline) clampOffset() {
	if o.cursor < o.offset {
		o.offset = o.cursor
	}
	if o.cursor-o.offset >= o.rows() {
		o.offset = o.cursor - o.rows() + 1
	}
}

func (o Outline) Update(msg tea.Msg) (Outline, tea.Cmd) {
	if !o.focused {
		return o, nil
	}

	items := o.visible()
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "j", "down":
			if o.cursor < len(items)-1 {
				o.cursor++
				o.clampOffset()
			}
		case "k", "up":
			if o.cursor > 0 {
				o.cursor--
				o.clampOffset()
			}
		case "g":
			o.cursor = 0
			o.offset = 0
		case "G":
			if len(items) > 0 {
				o.cursor = len(items) - 1
				o.clampOffset()
			}
		case "a":
			o.articles = !o.articles
			o.cursor = 0
			o.offset = 0
		case "enter":
			if o.cursor < len(items) {
				line := items[o.cursor].Line
				return o, func() tea.Msg { return OutlineJumpMsg{Line: line} }
			}
		}
	}
	return o, nil
}

func (o Outline) View() string {
	if o.width == 0 || o.height == 0 {
		return ""
	}
	th := o.theme

	titleStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	if o.focused {
		titleStyle = titleStyle.Foreground(th.Accent).Underline(true)
	} else {
		titleStyle = titleStyle.Foreground(th.Dim)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Outline"))
	b.WriteByte('\n')

	items := o.visible()
	if len(items) == 0 {
		dim := lipgloss.NewStyle().Foreground(th.Dim).Padding(0, 1)
		b.WriteString(dim.Render("No items"))
		b.WriteByte('\n')
		return b.String()
	}

	headingStyle := lipgloss.NewStyle().Foreground(th.Heading)
	articleStyle := lipgloss.NewStyle().Foreground(th.Text)
	selected := lipgloss.NewStyle().Foreground(th.Accent).Bold(true)

	depth := 0
	for j := 0; j < o.offset && j < len(items); j++ {
		if items[j].Kind == lawtext.KindHeading {
			depth = headingDepth[items[j].Level] + 1
		}
	}

	for j := o.offset; j < len(items) && j-o.offset < o.rows(); j++ {
		h := items[j]
		style := articleStyle
		indent := depth
		if h.Kind == lawtext.KindHeading {
			indent = headingDepth[h.Level]
			depth = indent + 1
			style = headingStyle
		}
		if j == o.cursor && o.focused {
			style = selected
		}
		line := ansi.Truncate(strings.Repeat(" ", indent)+h.Text, o.width-2, "…")
		b.WriteString(" ")
		b.WriteString(style.Render(line))
		b.WriteByte('\n')
	}

	return b.String()
}

func (o *Outline) SetSize(width, height int) {
	o.width = width
	o.height = height
}

func (o *Outline) SetFocused(focused bool) {
	o.focused = focused
}

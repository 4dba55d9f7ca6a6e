package panel

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/ntpusu/lawtext/internal/library"
	"github.com/ntpusu/lawtext/internal/theme"
)

// RegulationSelectedMsg is sent when a regulation is chosen in any panel.
type RegulationSelectedMsg struct {
	ID int
}

// CatalogueItem is one regulation in the catalogue.
type CatalogueItem struct {
	ID        int
	Title     string
	Abandoned bool
}

// Catalogue is the regulation list panel.
type Catalogue struct {
	items         []CatalogueItem
	visible       []CatalogueItem
	hideAbandoned bool
	cursor        int
	offset        int
	width         int
	height        int
	focused       bool
	showHelp      bool
	theme         *theme.Theme
}

func NewCatalogue(th *theme.Theme) Catalogue {
	return Catalogue{theme: th}
}

// SetItems replaces the listed regulations, keeping the cursor on the same
// ID when it is still present.
func (c *Catalogue) SetItems(items []CatalogueItem) {
	current, ok := c.Selected()
	c.items = items
	c.rebuildVisible()
	if ok {
		c.Select(current.ID)
	}
}

func (c *Catalogue) rebuildVisible() {
	c.visible = c.visible[:0]
	for _, it := range c.items {
		if c.hideAbandoned && it.Abandoned {
			continue
		}
		c.visible = append(c.visible, it)
	}
	if c.cursor >= len(c.visible) {
		c.cursor = len(c.visible) - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
	c.clampOffset()
}

// Len returns the number of listed regulations.
func (c Catalogue) Len() int { return len(c.visible) }

// Selected returns the item under the cursor.
func (c Catalogue) Selected() (CatalogueItem, bool) {
	if c.cursor < len(c.visible) {
		return c.visible[c.cursor], true
	}
	return CatalogueItem{}, false
}

// Select moves the cursor to id. It reports whether id is listed.
func (c *Catalogue) Select(id int) bool {
	for i, it := range c.visible {
		if it.ID == id {
			c.cursor = i
			c.clampOffset()
			return true
		}
	}
	return false
}

func (c *Catalogue) rows() int {
	rows := c.height - 2 // title + bottom padding
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (c *Catalogue) clampOffset() {
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor-c.offset >= c.rows() {
		c.offset = c.cursor - c.rows() + 1
	}
	if c.offset < 0 {
		c.offset = 0
	}
}

func (c Catalogue) Init() tea.Cmd {
	return nil
}

func (c Catalogue) Update(msg tea.Msg) (Catalogue, tea.Cmd) {
	if !c.focused {
		return c, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// When help is shown, any key dismisses it
		if c.showHelp {
			c.showHelp = false
			return c, nil
		}

		switch msg.String() {
		case "j", "down":
			if c.cursor < len(c.visible)-1 {
				c.cursor++
				c.clampOffset()
			}
		case "k", "up":
			if c.cursor > 0 {
				c.cursor--
				c.clampOffset()
			}
		case "ctrl+d", "pgdown":
			c.cursor += c.rows() / 2
			if c.cursor > len(c.visible)-1 {
				c.cursor = len(c.visible) - 1
			}
			if c.cursor < 0 {
				c.cursor = 0
			}
			c.clampOffset()
		case "ctrl+u", "pgup":
			c.cursor -= c.rows() / 2
			if c.cursor < 0 {
				c.cursor = 0
			}
			c.clampOffset()
		case "enter":
			if it, ok := c.Selected(); ok {
				return c, func() tea.Msg {
					return RegulationSelectedMsg{ID: it.ID}
				}
			}
		case "G":
			if len(c.visible) == 0 {
				break
			}
			c.cursor = len(c.visible) - 1
			c.clampOffset()
		case "g":
			c.cursor = 0
			c.offset = 0
		case "x":
			c.hideAbandoned = !c.hideAbandoned
			current, ok := c.Selected()
			c.rebuildVisible()
			if ok {
				c.Select(current.ID)
			}
		case "?":
			c.showHelp = !c.showHelp
		}
	}

	return c, nil
}

func (c Catalogue) View() string {
	if c.width == 0 || c.height == 0 {
		return ""
	}
	th := c.theme

	titleStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	if c.focused {
		titleStyle = titleStyle.Foreground(th.Accent).Underline(true)
	} else {
		titleStyle = titleStyle.Foreground(th.Dim)
	}

	var b strings.Builder

	title := titleStyle.Render(fmt.Sprintf("法規 %d", len(c.visible)))
	if c.focused && !c.showHelp {
		hint := lipgloss.NewStyle().Foreground(th.Dim).Render("?")
		gap := c.width - 2 - lipgloss.Width(title) - lipgloss.Width(hint)
		if gap > 0 {
			title += strings.Repeat(" ", gap) + hint
		}
	}
	b.WriteString(title)
	b.WriteByte('\n')

	viewHeight := c.height - 2
	if c.showHelp {
		viewHeight -= 8 // help box height
	}
	if viewHeight < 0 {
		viewHeight = 0
	}

	if len(c.visible) == 0 {
		dim := lipgloss.NewStyle().Foreground(th.Dim).Padding(0, 1)
		b.WriteString(dim.Render("No regulations"))
		b.WriteByte('\n')
	}

	mark := lipgloss.NewStyle().Foreground(th.Error)
	for i := c.offset; i < len(c.visible) && i-c.offset < viewHeight; i++ {
		it := c.visible[i]
		line := fmt.Sprintf("%s %s", library.PadID(it.ID), it.Title)
		suffix := ""
		if it.Abandoned {
			suffix = " ❌"
		}
		line = ansi.Truncate(line, c.width-2-lipgloss.Width(suffix), "…")

		style := lipgloss.NewStyle().Foreground(th.Text)
		if i == c.cursor && c.focused {
			style = lipgloss.NewStyle().Foreground(th.Accent).Bold(true)
		} else if it.Abandoned {
			style = lipgloss.NewStyle().Foreground(th.Subtle)
		}
		b.WriteString(style.Render(line))
		if suffix != "" {
			b.WriteString(mark.Render(suffix))
		}
		b.WriteByte('\n')
	}

	if c.showHelp {
		b.WriteString(c.renderHelp())
	}

	return b.String()
}

func (c Catalogue) renderHelp() string {
	th := c.theme
	dim := lipgloss.NewStyle().Foreground(th.Dim)
	key := lipgloss.NewStyle().Foreground(th.Accent).Bold(true)
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Border).
		Padding(0, 1).
		Width(c.width - 6)

	lines := []struct{ k, v string }{
		{"j/k", "Navigate"},
		{"enter", "Open"},
		{"g/G", "Top / Bottom"},
		{"x", "Hide repealed"},
		{"?", "Toggle help"},
	}

	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(fmt.Sprintf("  %s  %s\n", key.Render(fmt.Sprintf("%-5s", l.k)), dim.Render(l.v)))
	}

	return border.Render(strings.TrimRight(sb.String(), "\n"))
}

func (c *Catalogue) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.clampOffset()
}

func (c *Catalogue) SetFocused(focused bool) {
	c.focused = focused
}

func (c Catalogue) ShowingHelp() bool {
	return c.showHelp
}

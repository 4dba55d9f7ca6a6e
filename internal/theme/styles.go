package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ntpusu/lawtext/internal/lawtext"
)

// indentStep is the number of cells each sub-item level is indented by.
const indentStep = 2

// Styles holds the reader styles derived from a Theme.
type Styles struct {
	Title     lipgloss.Style
	Label     lipgloss.Style
	Abandoned lipgloss.Style
	Section   lipgloss.Style
	Heading   lipgloss.Style
	Article   lipgloss.Style
	Body      lipgloss.Style
	History   lipgloss.Style
	Selected  lipgloss.Style
	Dim       lipgloss.Style
}

// NewStyles builds the reader styles for th.
func NewStyles(th Theme) Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(th.Accent),
		Label:     lipgloss.NewStyle().Bold(true).Foreground(th.Text),
		Abandoned: lipgloss.NewStyle().Bold(true).Foreground(th.Error),
		Section:   lipgloss.NewStyle().Bold(true).Underline(true).Foreground(th.Accent),
		Heading:   lipgloss.NewStyle().Bold(true).Foreground(th.Heading),
		Article:   lipgloss.NewStyle().Bold(true).Foreground(th.Article),
		Body:      lipgloss.NewStyle().Foreground(th.Text),
		History:   lipgloss.NewStyle().Foreground(th.Subtle),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(th.Accent),
		Dim:       lipgloss.NewStyle().Foreground(th.Dim),
	}
}

// Indent returns the left indentation of a content line kind.
func Indent(kind lawtext.Kind) int {
	switch kind {
	case lawtext.KindXiang:
		return indentStep
	case lawtext.KindKuan:
		return 2 * indentStep
	case lawtext.KindMu:
		return 3 * indentStep
	}
	return 0
}

// Line renders a classified content line at the given width.
func (s Styles) Line(line lawtext.Line, width int) string {
	switch line.Kind {
	case lawtext.KindBlank:
		return ""
	case lawtext.KindHeading:
		return s.Heading.Width(width).Align(lipgloss.Center).Render(line.Text)
	case lawtext.KindArticle:
		out := s.Article.Render(line.Title)
		if line.Body != "" {
			out += "\n" + s.Body.PaddingLeft(indentStep).Width(width).Render(line.Body)
		}
		return out
	}
	pad := Indent(line.Kind)
	return s.Body.PaddingLeft(pad).Width(width).Render(line.Text)
}

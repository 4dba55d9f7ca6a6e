package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ntpusu/lawtext/internal/config"
	"github.com/ntpusu/lawtext/internal/theme"
)

// KeyHelp is a popup listing the reader key bindings in two columns.
type KeyHelp struct {
	binds   []config.Keybind
	width   int
	visible bool
	theme   *theme.Theme
}

func NewKeyHelp(binds []config.Keybind, th *theme.Theme) KeyHelp {
	return KeyHelp{binds: binds, theme: th}
}

func (k *KeyHelp) Toggle() { k.visible = !k.visible }

func (k *KeyHelp) Hide() { k.visible = false }

func (k KeyHelp) Visible() bool { return k.visible }

func (k *KeyHelp) SetWidth(width int) {
	k.width = width
}

func (k KeyHelp) View() string {
	if !k.visible || len(k.binds) == 0 {
		return ""
	}
	th := k.theme

	width := k.width
	if width == 0 {
		width = 60
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Accent).
		Padding(0, 1).
		Width(width - 4)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.Accent)

	keyStyle := lipgloss.NewStyle().
		Foreground(th.FindMode).
		Bold(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(th.Text)

	keyWidth := 0
	for _, b := range k.binds {
		if w := lipgloss.Width(b.Keys); w > keyWidth {
			keyWidth = w
		}
	}

	cell := func(b config.Keybind) string {
		pad := strings.Repeat(" ", keyWidth-lipgloss.Width(b.Keys))
		return keyStyle.Render(b.Keys) + pad + " " + labelStyle.Render(b.Action)
	}

	lines := []string{titleStyle.Render("Keys")}

	// Render entries in columns
	colWidth := (width - 4) / 2
	if colWidth < 20 {
		colWidth = width - 4
	}

	for i := 0; i < len(k.binds); i += 2 {
		left := cell(k.binds[i])
		if i+1 < len(k.binds) && colWidth < width-4 {
			leftPad := colWidth - lipgloss.Width(left)
			if leftPad < 1 {
				leftPad = 1
			}
			lines = append(lines, left+strings.Repeat(" ", leftPad)+cell(k.binds[i+1]))
			continue
		}
		lines = append(lines, left)
		if i+1 < len(k.binds) {
			lines = append(lines, cell(k.binds[i+1]))
		}
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}

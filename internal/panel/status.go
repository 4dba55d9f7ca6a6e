package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ntpusu/lawtext/internal/theme"
)

// Status modes.
const (
	ModeRead  = "READ"
	ModeFind  = "FIND"
	ModeInput = "INPUT"
)

// Status is the status bar at the bottom.
type Status struct {
	width      int
	mode       string
	file       string
	libraryDir string
	position   string
	help       string
	errMsg     string
	theme      *theme.Theme
}

func NewStatus(libraryDir string, th *theme.Theme) Status {
	return Status{
		libraryDir: libraryDir,
		mode:       ModeRead,
		theme:      th,
	}
}

func (s *Status) SetMode(mode string) {
	s.mode = mode
}

func (s *Status) SetFile(file string) {
	s.file = file
}

func (s *Status) SetWidth(width int) {
	s.width = width
}

// SetPosition shows the article count and scroll percentage of the open
// regulation. A negative articles value clears it.
func (s *Status) SetPosition(articles int, percent float64) {
	if articles < 0 {
		s.position = ""
		return
	}
	s.position = fmt.Sprintf("%d 條 %3.0f%%", articles, percent*100)
}

// SetHelp sets the key help shown when there is room.
func (s *Status) SetHelp(help string) {
	s.help = help
}

func (s *Status) SetError(msg string) {
	s.errMsg = msg
}

func (s *Status) ClearError() {
	s.errMsg = ""
}

// Error returns the message currently shown, if any.
func (s Status) ErrorMessage() string {
	return s.errMsg
}

func (s Status) View() string {
	if s.width == 0 {
		return ""
	}
	th := s.theme

	bgStyle := lipgloss.NewStyle().Background(th.StatusBg)

	modeColors := map[string]lipgloss.Color{
		ModeRead:  th.ReadMode,
		ModeFind:  th.FindMode,
		ModeInput: th.InputMode,
	}

	color, ok := modeColors[s.mode]
	if !ok {
		color = th.Text
	}

	modeStyle := lipgloss.NewStyle().
		Background(color).
		Foreground(th.Bg).
		Bold(true).
		Padding(0, 1)

	textStyle := lipgloss.NewStyle().
		Background(th.StatusBg).
		Foreground(th.StatusFg).
		Padding(0, 1)

	mode := modeStyle.Render(s.mode)

	var fileSection string
	if s.errMsg != "" {
		errStyle := textStyle.Foreground(th.Error)
		fileSection = errStyle.Render(s.errMsg)
	} else {
		file := s.file
		if file == "" {
			file = s.libraryDir
		}
		fileSection = textStyle.Render(file)
	}

	left := fmt.Sprintf("%s %s", mode, fileSection)

	right := ""
	if s.position != "" {
		right = textStyle.Render(s.position)
	}
	if s.help != "" {
		help := textStyle.Foreground(th.Subtle).Render(s.help)
		if lipgloss.Width(left)+lipgloss.Width(help)+lipgloss.Width(right) < s.width {
			right = help + right
		}
	}

	padLen := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padLen < 0 {
		padLen = 0
	}
	padding := bgStyle.Render(strings.Repeat(" ", padLen))

	return left + padding + right
}

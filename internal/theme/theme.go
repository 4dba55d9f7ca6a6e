package theme

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// DefaultName is the palette used when a configured name is unknown.
const DefaultName = "catppuccin"

// Theme defines a color palette used by all TUI panels.
type Theme struct {
	Name      string
	Bg        lipgloss.Color
	Accent    lipgloss.Color
	Subtle    lipgloss.Color
	Text      lipgloss.Color
	Dim       lipgloss.Color
	Border    lipgloss.Color
	StatusBg  lipgloss.Color
	StatusFg  lipgloss.Color
	Error     lipgloss.Color
	Heading   lipgloss.Color
	Article   lipgloss.Color
	ReadMode  lipgloss.Color
	FindMode  lipgloss.Color
	InputMode lipgloss.Color
}

var themes = map[string]Theme{
	"catppuccin": {
		Name:      "catppuccin",
		Bg:        lipgloss.Color("#1e1e2e"),
		Accent:    lipgloss.Color("#cba6f7"),
		Subtle:    lipgloss.Color("#6c7086"),
		Text:      lipgloss.Color("#cdd6f4"),
		Dim:       lipgloss.Color("#585b70"),
		Border:    lipgloss.Color("#45475a"),
		StatusBg:  lipgloss.Color("#313244"),
		StatusFg:  lipgloss.Color("#cdd6f4"),
		Error:     lipgloss.Color("#f38ba8"),
		Heading:   lipgloss.Color("#f9e2af"),
		Article:   lipgloss.Color("#89b4fa"),
		ReadMode:  lipgloss.Color("#89b4fa"),
		FindMode:  lipgloss.Color("#a6e3a1"),
		InputMode: lipgloss.Color("#f9e2af"),
	},
	"nord": {
		Name:      "nord",
		Bg:        lipgloss.Color("#2e3440"),
		Accent:    lipgloss.Color("#88c0d0"),
		Subtle:    lipgloss.Color("#4c566a"),
		Text:      lipgloss.Color("#eceff4"),
		Dim:       lipgloss.Color("#434c5e"),
		Border:    lipgloss.Color("#3b4252"),
		StatusBg:  lipgloss.Color("#3b4252"),
		StatusFg:  lipgloss.Color("#eceff4"),
		Error:     lipgloss.Color("#bf616a"),
		Heading:   lipgloss.Color("#ebcb8b"),
		Article:   lipgloss.Color("#81a1c1"),
		ReadMode:  lipgloss.Color("#81a1c1"),
		FindMode:  lipgloss.Color("#a3be8c"),
		InputMode: lipgloss.Color("#ebcb8b"),
	},
	"gruvbox": {
		Name:      "gruvbox",
		Bg:        lipgloss.Color("#282828"),
		Accent:    lipgloss.Color("#d79921"),
		Subtle:    lipgloss.Color("#665c54"),
		Text:      lipgloss.Color("#ebdbb2"),
		Dim:       lipgloss.Color("#504945"),
		Border:    lipgloss.Color("#3c3836"),
		StatusBg:  lipgloss.Color("#3c3836"),
		StatusFg:  lipgloss.Color("#ebdbb2"),
		Error:     lipgloss.Color("#fb4934"),
		Heading:   lipgloss.Color("#fabd2f"),
		Article:   lipgloss.Color("#83a598"),
		ReadMode:  lipgloss.Color("#83a598"),
		FindMode:  lipgloss.Color("#b8bb26"),
		InputMode: lipgloss.Color("#fabd2f"),
	},
	"tokyo-night": {
		Name:      "tokyo-night",
		Bg:        lipgloss.Color("#1a1b26"),
		Accent:    lipgloss.Color("#7aa2f7"),
		Subtle:    lipgloss.Color("#565f89"),
		Text:      lipgloss.Color("#c0caf5"),
		Dim:       lipgloss.Color("#414868"),
		Border:    lipgloss.Color("#292e42"),
		StatusBg:  lipgloss.Color("#1f2335"),
		StatusFg:  lipgloss.Color("#c0caf5"),
		Error:     lipgloss.Color("#f7768e"),
		Heading:   lipgloss.Color("#e0af68"),
		Article:   lipgloss.Color("#7aa2f7"),
		ReadMode:  lipgloss.Color("#7aa2f7"),
		FindMode:  lipgloss.Color("#9ece6a"),
		InputMode: lipgloss.Color("#e0af68"),
	},
}

// Get returns a theme by name, defaulting to catppuccin.
func Get(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[DefaultName]
}

// DefaultTheme returns the default color palette.
func DefaultTheme() Theme {
	return themes[DefaultName]
}

// Names lists the available palettes.
func Names() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package app

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Binding maps a key to an app action. Labels come from
// config.DefaultKeybinds.
type Binding struct {
	Key    string
	Action func(a *App) tea.Cmd
}

func newBindings() map[string]*Binding {
	list := []*Binding{
		{Key: "tab", Action: func(a *App) tea.Cmd {
			a.focusNext()
			return nil
		}},
		{Key: "shift+tab", Action: func(a *App) tea.Cmd {
			a.focusPrev()
			return nil
		}},
		{Key: "/", Action: func(a *App) tea.Cmd {
			a.ShowSearch()
			return nil
		}},
		{Key: "ctrl+p", Action: func(a *App) tea.Cmd {
			a.ShowTitleFinder()
			return nil
		}},
		{Key: ":", Action: func(a *App) tea.Cmd {
			a.ShowGoto()
			return nil
		}},
		{Key: "c", Action: func(a *App) tea.Cmd {
			a.ToggleCatalogue()
			return nil
		}},
		{Key: "o", Action: func(a *App) tea.Cmd {
			a.ToggleOutline()
			return nil
		}},
		{Key: "z", Action: func(a *App) tea.Cmd {
			a.ToggleZen()
			return nil
		}},
		{Key: "r", Action: func(a *App) tea.Cmd {
			return a.Reload()
		}},
		{Key: "?", Action: func(a *App) tea.Cmd {
			a.keyHelp.Toggle()
			return nil
		}},
		{Key: "q", Action: func(a *App) tea.Cmd {
			a.Close()
			return tea.Quit
		}},
	}

	bindings := make(map[string]*Binding, len(list))
	for _, b := range list {
		bindings[b.Key] = b
	}
	return bindings
}

// handleKey runs the global binding for key. Keys the focused panel uses
// itself are not consumed.
func (a *App) handleKey(key string) (bool, tea.Cmd) {
	if a.focused == focusCatalogue && a.catalogue.ShowingHelp() {
		return false, nil
	}
	if key == "?" && a.focused == focusCatalogue {
		return false, nil
	}
	b, ok := a.bindings[key]
	if !ok {
		return false, nil
	}
	return true, b.Action(a)
}

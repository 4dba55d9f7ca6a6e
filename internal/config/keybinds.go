package config

import "strings"

// Keybind describes a reader key binding for the help line.
type Keybind struct {
	Keys   string
	Action string
}

// DefaultKeybinds returns the reader key bindings in help order.
func DefaultKeybinds() []Keybind {
	return []Keybind{
		{Keys: "tab", Action: "switch panel"},
		{Keys: "enter", Action: "open"},
		{Keys: "j/k", Action: "move"},
		{Keys: "/", Action: "search"},
		{Keys: "ctrl+p", Action: "find title"},
		{Keys: ":", Action: "open by ID"},
		{Keys: "c", Action: "toggle catalogue"},
		{Keys: "o", Action: "toggle outline"},
		{Keys: "z", Action: "zen"},
		{Keys: "r", Action: "reload"},
		{Keys: "?", Action: "keys"},
		{Keys: "q", Action: "quit"},
	}
}

// HelpLine renders bindings as "key action · key action".
func HelpLine(binds []Keybind) string {
	parts := make([]string, 0, len(binds))
	for _, b := range binds {
		parts = append(parts, b.Keys+" "+b.Action)
	}
	return strings.Join(parts, " · ")
}

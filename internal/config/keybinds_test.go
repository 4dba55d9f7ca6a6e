package config

import "testing"

func TestHelpLine(t *testing.T) {
	got := HelpLine([]Keybind{{Keys: "q", Action: "quit"}, {Keys: "/", Action: "search"}})
	if want := "q quit · / search"; got != want {
		t.Errorf("HelpLine = %q, want %q", got, want)
	}
	if got := HelpLine(nil); got != "" {
		t.Errorf("HelpLine(nil) = %q, want empty", got)
	}
}

func TestDefaultKeybindsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, b := range DefaultKeybinds() {
		if seen[b.Keys] {
			t.Errorf("duplicate binding %q", b.Keys)
		}
		seen[b.Keys] = true
	}
}

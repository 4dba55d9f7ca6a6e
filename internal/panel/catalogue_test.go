package panel

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ntpusu/lawtext/internal/theme"
)

func newTestCatalogue(items ...CatalogueItem) Catalogue {
	th := theme.DefaultTheme()
	c := NewCatalogue(&th)
	c.SetSize(30, 20)
	c.SetFocused(true)
	c.SetItems(items)
	return c
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCatalogue_GKey_EmptyEntries(t *testing.T) {
	c := newTestCatalogue()

	result, _ := c.Update(keyRunes("G"))
	if result.cursor != 0 {
		t.Errorf("cursor = %d after G on empty catalogue, want 0", result.cursor)
	}
}

func TestCatalogue_Enter_EmptyEntries(t *testing.T) {
	c := newTestCatalogue()

	result, cmd := c.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if result.cursor != 0 {
		t.Errorf("cursor = %d after enter on empty catalogue, want 0", result.cursor)
	}
	if cmd != nil {
		t.Error("expected nil cmd for enter on empty catalogue")
	}
}

func TestCatalogue_EnterSelects(t *testing.T) {
	c := newTestCatalogue(
		CatalogueItem{ID: 1, Title: "組織規程"},
		CatalogueItem{ID: 7, Title: "學則"},
	)

	c, _ = c.Update(keyRunes("j"))
	_, cmd := c.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a selection command")
	}
	msg, ok := cmd().(RegulationSelectedMsg)
	if !ok || msg.ID != 7 {
		t.Errorf("got %#v, want RegulationSelectedMsg{ID: 7}", cmd())
	}
}

func TestCatalogue_HideAbandoned(t *testing.T) {
	c := newTestCatalogue(
		CatalogueItem{ID: 1, Title: "組織規程"},
		CatalogueItem{ID: 2, Title: "舊辦法", Abandoned: true},
		CatalogueItem{ID: 3, Title: "學則"},
	)
	c.Select(3)

	c, _ = c.Update(keyRunes("x"))
	if c.Len() != 2 {
		t.Fatalf("Len = %d with repealed hidden, want 2", c.Len())
	}
	if it, _ := c.Selected(); it.ID != 3 {
		t.Errorf("selected ID = %d, want 3", it.ID)
	}

	c, _ = c.Update(keyRunes("x"))
	if c.Len() != 3 {
		t.Errorf("Len = %d after showing repealed, want 3", c.Len())
	}
}

func TestCatalogue_SetItemsKeepsSelection(t *testing.T) {
	c := newTestCatalogue(
		CatalogueItem{ID: 1, Title: "a"},
		CatalogueItem{ID: 2, Title: "b"},
	)
	c.Select(2)

	c.SetItems([]CatalogueItem{{ID: 0, Title: "new"}, {ID: 1, Title: "a"}, {ID: 2, Title: "b"}})
	if it, _ := c.Selected(); it.ID != 2 {
		t.Errorf("selected ID = %d after refresh, want 2", it.ID)
	}
}

func TestCatalogue_ScrollKeepsCursorVisible(t *testing.T) {
	var items []CatalogueItem
	for i := 0; i < 50; i++ {
		items = append(items, CatalogueItem{ID: i, Title: "x"})
	}
	c := newTestCatalogue(items...)

	c, _ = c.Update(keyRunes("G"))
	if c.cursor != 49 {
		t.Fatalf("cursor = %d, want 49", c.cursor)
	}
	if c.cursor-c.offset >= c.rows() || c.cursor < c.offset {
		t.Errorf("cursor %d outside window starting at %d", c.cursor, c.offset)
	}
	if !strings.Contains(c.View(), "0049") {
		t.Error("last item not rendered")
	}
}

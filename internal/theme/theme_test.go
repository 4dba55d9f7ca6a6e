package theme

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/ntpusu/lawtext/internal/lawtext"
)

func TestDefaultTheme(t *testing.T) {
	th := DefaultTheme()

	// Verify all fields are populated (non-empty).
	fields := []struct {
		name  string
		color lipgloss.Color
	}{
		{"Bg", th.Bg},
		{"Accent", th.Accent},
		{"Subtle", th.Subtle},
		{"Text", th.Text},
		{"Dim", th.Dim},
		{"Border", th.Border},
		{"StatusBg", th.StatusBg},
		{"StatusFg", th.StatusFg},
		{"Error", th.Error},
		{"Heading", th.Heading},
		{"Article", th.Article},
		{"ReadMode", th.ReadMode},
		{"FindMode", th.FindMode},
		{"InputMode", th.InputMode},
	}

	for _, f := range fields {
		if string(f.color) == "" {
			t.Errorf("DefaultTheme().%s is empty", f.name)
		}
	}
}

func TestGet(t *testing.T) {
	for _, name := range Names() {
		if got := Get(name).Name; got != name {
			t.Errorf("Get(%q).Name = %q", name, got)
		}
	}
	if got := Get("solarized").Name; got != DefaultName {
		t.Errorf("Get(unknown).Name = %q, want %q", got, DefaultName)
	}
}

func TestIndent(t *testing.T) {
	tests := []struct {
		kind lawtext.Kind
		want int
	}{
		{lawtext.KindHeading, 0},
		{lawtext.KindArticle, 0},
		{lawtext.KindParagraph, 0},
		{lawtext.KindXiang, 2},
		{lawtext.KindKuan, 4},
		{lawtext.KindMu, 6},
	}
	for _, tt := range tests {
		if got := Indent(tt.kind); got != tt.want {
			t.Errorf("Indent(%s) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestStylesLine(t *testing.T) {
	s := NewStyles(DefaultTheme())

	if got := s.Line(lawtext.Classify(""), 40); got != "" {
		t.Errorf("blank line rendered as %q", got)
	}

	got := s.Line(lawtext.Classify("第 1 條 本法依憲法制定之。"), 40)
	if !strings.Contains(got, "第 1 條") || !strings.Contains(got, "本法依憲法制定之。") {
		t.Errorf("article line missing title or body: %q", got)
	}
	if !strings.Contains(got, "\n") {
		t.Errorf("article body should start on its own row: %q", got)
	}

	kuan := s.Line(lawtext.Classify("一、申請書。"), 40)
	if !strings.HasPrefix(kuan, "    ") {
		t.Errorf("kuan line not indented: %q", kuan)
	}
}

package panel

import (
	"strings"
	"testing"

	"github.com/ntpusu/lawtext/internal/theme"
)

const readerText = `---
titleFull: 學生獎懲辦法
status: abandoned
modifiedType: 廢止
modifiedDate: 2023-05-10
history:
  - 2001-01-01 訂定
---
第一章 總則
第 1 條
　本辦法依學則訂定之。
第 2 條 獎懲種類如下：
　一、嘉獎。
　二、記功。
第二章 附則
第 3 條
　本辦法自發布日施行。
`

func newTestReader(t *testing.T) Reader {
	t.Helper()
	th := theme.DefaultTheme()
	r := NewReader(&th)
	r.SetSize(60, 10)
	r.SetFocused(true)
	r.SetDocument(12, "0012_學生獎懲辦法.txt", readerText)
	return r
}

func TestReader_Document(t *testing.T) {
	r := newTestReader(t)

	if r.ID() != 12 {
		t.Errorf("ID = %d, want 12", r.ID())
	}
	if r.Title() != "學生獎懲辦法" {
		t.Errorf("Title = %q", r.Title())
	}
	if r.Articles() != 3 {
		t.Errorf("Articles = %d, want 3", r.Articles())
	}

	view := r.View()
	for _, want := range []string{"0012", "法規名稱：", "❌", "廢止日期：", "2023年5月10日"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestReader_TitleFallsBackToFileName(t *testing.T) {
	th := theme.DefaultTheme()
	r := NewReader(&th)
	r.SetSize(60, 10)
	r.SetDocument(3, "0003_宿舍規則.txt", "第 1 條 宿舍管理。")

	if r.Title() != "宿舍規則" {
		t.Errorf("Title = %q, want 宿舍規則", r.Title())
	}
}

func TestReader_JumpToLine(t *testing.T) {
	r := newTestReader(t)

	// Line 16 is "第 3 條".
	if !r.JumpToLine(16) {
		t.Fatal("JumpToLine(16) = false")
	}
	if r.Offset() == 0 {
		t.Error("reader did not scroll")
	}
	if r.JumpToLine(3) {
		t.Error("front matter lines are not part of the content")
	}
}

func TestReader_EmptyText(t *testing.T) {
	th := theme.DefaultTheme()
	r := NewReader(&th)
	r.SetSize(60, 10)
	r.SetDocument(1, "0001_空白.txt", "  \n")

	if !strings.Contains(r.View(), emptyText) {
		t.Error("empty document does not show the placeholder")
	}
	if r.Articles() != 0 {
		t.Errorf("Articles = %d, want 0", r.Articles())
	}
}

func TestReader_ReloadKeepsOffset(t *testing.T) {
	r := newTestReader(t)
	r.JumpToLine(16)
	offset := r.Offset()

	r.Reload(readerText + "第 4 條 新增。\n")
	if r.Offset() != offset {
		t.Errorf("offset = %d after reload, want %d", r.Offset(), offset)
	}
	if r.Articles() != 4 {
		t.Errorf("Articles = %d after reload, want 4", r.Articles())
	}
}

func TestReader_Clear(t *testing.T) {
	r := newTestReader(t)
	r.Clear()
	if r.ID() != -1 || r.Articles() != 0 {
		t.Errorf("Clear left ID=%d articles=%d", r.ID(), r.Articles())
	}
}

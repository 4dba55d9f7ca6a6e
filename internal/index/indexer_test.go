package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ntpusu/lawtext/internal/library"
)

const charter = `---
titleFull: 學生自治會章程
status: active
modifiedType: 修正
modifiedDate: 2023-05-10
---
第一章 總則
第1條　本會定名為國立臺北大學學生自治會。
第2條（宗旨）
　本會以服務同學為宗旨。
`

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestIndexer(t *testing.T) (*Indexer, string) {
	t.Helper()
	dir := t.TempDir()
	return NewIndexer(openTestDB(t), library.New(dir)), dir
}

func TestIndexAll(t *testing.T) {
	idx, dir := newTestIndexer(t)
	writeDoc(t, dir, "0001_學生自治會章程.txt", charter)
	writeDoc(t, dir, "0002_會議規則.txt", "第1條　會議公開。\n")
	writeDoc(t, dir, "未編號.txt", "第1條")
	ctx := context.Background()

	st, err := idx.IndexAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.Indexed != 2 || st.Skipped != 1 {
		t.Errorf("first run stats = %+v", st)
	}

	r, err := idx.DB().Get(1)
	if err != nil {
		t.Fatal(err)
	}
	if r.Title != "學生自治會章程" || r.ModifiedDate != "2023-05-10" || r.Articles != 2 {
		t.Errorf("regulation 1 = %+v", r)
	}

	r, err = idx.DB().Get(2)
	if err != nil {
		t.Fatal(err)
	}
	if r.Title != "會議規則" {
		t.Errorf("title from file name: got %q", r.Title)
	}

	outline, err := idx.DB().Outline(1)
	if err != nil {
		t.Fatal(err)
	}
	want := []OutlineEntry{
		{Kind: "heading", Level: "章", Text: "第一章 總則", Line: 7},
		{Kind: "article", Text: "第1條", Line: 8},
		{Kind: "article", Text: "第2條（宗旨）", Line: 9},
	}
	if len(outline) != len(want) {
		t.Fatalf("outline = %+v", outline)
	}
	for i := range want {
		if outline[i] != want[i] {
			t.Errorf("outline[%d] = %+v, want %+v", i, outline[i], want[i])
		}
	}

	st, err = idx.IndexAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.Indexed != 0 || st.Unchanged != 2 {
		t.Errorf("second run stats = %+v", st)
	}

	if err := os.Remove(filepath.Join(dir, "0002_會議規則.txt")); err != nil {
		t.Fatal(err)
	}
	st, err = idx.IndexAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.Removed != 1 {
		t.Errorf("third run stats = %+v", st)
	}
	n, _ := idx.DB().Count()
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestIndexAll_Cancelled(t *testing.T) {
	idx, dir := newTestIndexer(t)
	writeDoc(t, dir, "0001_a.txt", "第1條")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := idx.IndexAll(ctx); err == nil {
		t.Fatal("expected context error")
	}
}

func TestRemoveFile_PromotesDuplicate(t *testing.T) {
	idx, dir := newTestIndexer(t)
	first := writeDoc(t, dir, "0005_a.txt", "第1條　甲")
	writeDoc(t, dir, "0005_b.txt", "第1條　乙")

	if _, err := idx.IndexAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	r, _ := idx.DB().Get(5)
	if r.Filename != "0005_a.txt" {
		t.Fatalf("first name should win, got %q", r.Filename)
	}

	if err := os.Remove(first); err != nil {
		t.Fatal(err)
	}
	if err := idx.RemoveFile(first); err != nil {
		t.Fatal(err)
	}
	r, err := idx.DB().Get(5)
	if err != nil {
		t.Fatal(err)
	}
	if r.Filename != "0005_b.txt" {
		t.Errorf("after removal got %q, want 0005_b.txt", r.Filename)
	}
}

func TestIndexFile(t *testing.T) {
	idx, dir := newTestIndexer(t)
	path := writeDoc(t, dir, "0009_辦法.txt", "第1條")

	changed, err := idx.IndexFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Error("first index should change the catalogue")
	}

	changed, err = idx.IndexFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("unchanged content should be skipped")
	}
}

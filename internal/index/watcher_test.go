package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ntpusu/lawtext/internal/library"
)

func TestWatcher(t *testing.T) {
	idx, dir := newTestIndexer(t)

	changed := make(chan string, 8)
	w, err := NewWatcher(idx, func(path string) { changed <- filepath.Base(path) }, nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	writeDoc(t, dir, "0003_新法規.txt", "第1條　施行。")
	writeDoc(t, dir, "notes.md", "ignored")

	select {
	case name := <-changed:
		if name != "0003_新法規.txt" {
			t.Fatalf("changed %q", name)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reindex")
	}

	if _, err := idx.DB().Get(3); err != nil {
		t.Fatalf("file not indexed: %v", err)
	}
	names, err := library.New(dir).LoadManifest()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[0] != "0003_新法規.txt" {
		t.Errorf("manifest = %v", names)
	}

	if err := os.Remove(filepath.Join(dir, "0003_新法規.txt")); err != nil {
		t.Fatal(err)
	}
	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for removal")
	}
	if n, _ := idx.DB().Count(); n != 0 {
		t.Errorf("count after removal = %d", n)
	}

	if err := w.Stop(); err != nil {
		t.Fatal(err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("second Stop: %v", err)
	}
}

package index

import (
	"errors"
	"testing"

	"github.com/ntpusu/lawtext/internal/library"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func save(t *testing.T, db *DB, r Regulation, content string, outline ...OutlineEntry) {
	t.Helper()
	saved, err := db.SaveRegulation(r, content, "", outline)
	if err != nil {
		t.Fatal(err)
	}
	if !saved {
		t.Fatalf("regulation %s was not saved", r.Filename)
	}
}

func TestOpenMemory(t *testing.T) {
	db := openTestDB(t)

	save(t, db, Regulation{ID: 1, Filename: "0001_章程.txt", Title: "學生自治會章程", Hash: "abc", ModTime: 1000, Size: 42},
		"第1條　本會定名為國立臺北大學學生自治會。")

	results, err := db.Search("學生自治會", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Filename != "0001_章程.txt" {
		t.Errorf("filename: got %q, want %q", results[0].Filename, "0001_章程.txt")
	}
	if results[0].Snippet == "" {
		t.Error("expected a snippet")
	}

	hash, err := db.GetHash("0001_章程.txt")
	if err != nil {
		t.Fatal(err)
	}
	if hash != "abc" {
		t.Errorf("hash: got %q, want %q", hash, "abc")
	}
}

func TestSearch(t *testing.T) {
	db := openTestDB(t)

	save(t, db, Regulation{ID: 1, Filename: "0001_章程.txt", Title: "學生自治會章程", ModTime: 1},
		"第5條　會員應遵守章程。\n第6條　會員得參加活動。")
	save(t, db, Regulation{ID: 2, Filename: "0002_選罷.txt", Title: "選舉罷免辦法", ModTime: 1},
		"第1條　本辦法依章程訂定。")

	tests := []struct {
		query string
		want  []int
	}{
		{"會員應遵守", []int{1}},
		{"第５條", []int{1}},   // full-width digit folds to 第5條
		{"會員", []int{1}},    // shorter than a trigram
		{"章程", []int{1, 2}}, // short query across both
		{"選舉罷免", []int{2}},  // title match
		{"不存在的詞", nil},
		{`"引號"`, nil},
		{"100%", nil},
		{"   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			results, err := db.Search(tt.query, 10)
			if err != nil {
				t.Fatal(err)
			}
			var got []int
			for _, r := range results {
				got = append(got, r.ID)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Search(%q) ids = %v, want %v", tt.query, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Search(%q) ids = %v, want %v", tt.query, got, tt.want)
				}
			}
		})
	}
}

func TestSnippet(t *testing.T) {
	content := "第1條\n第2條　本會會員應遵守章程。\n第3條"
	if got, want := snippet(content, "會員"), "第2條　本會會員應遵守章程。"; got != want {
		t.Errorf("snippet = %q, want %q", got, want)
	}
	if got, want := snippet(content, "沒有"), "第1條"; got != want {
		t.Errorf("snippet without match = %q, want %q", got, want)
	}
}

func TestSaveRegulation_DuplicateID(t *testing.T) {
	db := openTestDB(t)

	save(t, db, Regulation{ID: 3, Filename: "0003_b.txt", Title: "B", ModTime: 1}, "")

	// A name sorting earlier takes the slot.
	save(t, db, Regulation{ID: 3, Filename: "0003_a.txt", Title: "A", ModTime: 1}, "")

	saved, err := db.SaveRegulation(Regulation{ID: 3, Filename: "0003_c.txt", Title: "C", ModTime: 1}, "", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if saved {
		t.Error("later name must not replace an earlier one")
	}

	r, err := db.Get(3)
	if err != nil {
		t.Fatal(err)
	}
	if r.Filename != "0003_a.txt" || r.Title != "A" {
		t.Errorf("got %+v", r)
	}
}

func TestGet_NotFound(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Get(42)
	if !errors.Is(err, library.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOutlineAndDelete(t *testing.T) {
	db := openTestDB(t)

	save(t, db, Regulation{ID: 1, Filename: "0001_a.txt", Title: "A", ModTime: 1}, "第一章 總則\n第1條",
		OutlineEntry{Kind: "article", Text: "第1條", Line: 2},
		OutlineEntry{Kind: "heading", Level: "章", Text: "第一章 總則", Line: 1},
	)

	outline, err := db.Outline(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(outline) != 2 || outline[0].Text != "第一章 總則" || outline[0].Level != "章" {
		t.Fatalf("outline = %+v", outline)
	}

	id, err := db.DeleteRegulation("0001_a.txt")
	if err != nil {
		t.Fatal(err)
	}
	if id != 1 {
		t.Errorf("deleted id = %d, want 1", id)
	}

	outline, err = db.Outline(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(outline) != 0 {
		t.Errorf("outline not cascaded: %+v", outline)
	}
	results, err := db.Search("總則", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("fts row not removed: %+v", results)
	}

	id, err = db.DeleteRegulation("0001_a.txt")
	if err != nil {
		t.Fatal(err)
	}
	if id != -1 {
		t.Errorf("second delete id = %d, want -1", id)
	}
}

func TestSearchTitles(t *testing.T) {
	db := openTestDB(t)

	save(t, db, Regulation{ID: 1, Filename: "0001_章程.txt", Title: "學生自治會章程", ModTime: 1}, "")
	save(t, db, Regulation{ID: 2, Filename: "0002_選罷.txt", Title: "選舉罷免辦法", ModTime: 1}, "")

	results, err := db.SearchTitles("選舉", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].ID != 2 {
		t.Fatalf("SearchTitles = %+v", results)
	}

	all, err := db.ListAll(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].ID != 1 {
		t.Fatalf("ListAll = %+v", all)
	}

	n, err := db.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestMigrateAddsColumns(t *testing.T) {
	db := openTestDB(t)

	// Rebuild the table the way early catalogues stored it.
	for _, q := range []string{
		"DROP TABLE outline",
		"DROP TABLE regulations",
		`CREATE TABLE regulations (
			id INTEGER PRIMARY KEY,
			filename TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT '',
			mod_time INTEGER NOT NULL,
			size INTEGER NOT NULL DEFAULT 0,
			hash TEXT NOT NULL DEFAULT ''
		)`,
		"INSERT INTO regulations (id, filename, title, mod_time, hash) VALUES (1, '0001_a.txt', 'A', 1, 'old')",
	} {
		if _, err := db.Conn().Exec(q); err != nil {
			t.Fatal(err)
		}
	}

	if err := db.migrate(); err != nil {
		t.Fatal(err)
	}

	r, err := db.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	if r.Hash != "" {
		t.Errorf("hash should be reset after migration, got %q", r.Hash)
	}
}

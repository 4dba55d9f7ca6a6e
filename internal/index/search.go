package index

import (
	"database/sql"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// minTrigram is the shortest query the trigram tokenizer can match.
const minTrigram = 3

const snippetRadius = 24

// SearchResult is a full-text hit.
type SearchResult struct {
	ID       int
	Filename string
	Title    string
	Snippet  string
	Rank     float64
}

// fold maps full-width ASCII to its half-width form so that 第５條 and
// 第5條 index and match the same.
func fold(s string) string {
	return width.Fold.String(s)
}

// Search performs a full-text search over titles, bodies and headings.
// Queries shorter than three characters fall back to a substring scan.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 50
	}
	q := strings.TrimSpace(fold(query))
	if q == "" {
		return nil, nil
	}

	var (
		rows *sql.Rows
		err  error
	)
	if utf8.RuneCountInString(q) >= minTrigram {
		rows, err = db.conn.Query(`
			SELECT r.id, r.filename, r.title, regulations_fts.content, regulations_fts.rank
			FROM regulations_fts
			JOIN regulations r ON r.id = regulations_fts.rowid
			WHERE regulations_fts MATCH ?
			ORDER BY regulations_fts.rank, r.id
			LIMIT ?
		`, phrase(q), limit)
	} else {
		pattern := "%" + escapeLike(q) + "%"
		rows, err = db.conn.Query(`
			SELECT r.id, r.filename, r.title, regulations_fts.content, 0.0 AS rank
			FROM regulations_fts
			JOIN regulations r ON r.id = regulations_fts.rowid
			WHERE regulations_fts.title LIKE ? ESCAPE '\'
				OR regulations_fts.content LIKE ? ESCAPE '\'
				OR regulations_fts.headings LIKE ? ESCAPE '\'
			ORDER BY r.id
			LIMIT ?
		`, pattern, pattern, pattern, limit)
	}
	if err != nil {
		return nil, err
	}

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		var content string
		if err := rows.Scan(&r.ID, &r.Filename, &r.Title, &content, &r.Rank); err != nil {
			_ = rows.Close()
			return nil, err
		}
		r.Snippet = snippet(content, q)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return results, nil
}

// SearchTitles matches titles and file names (for the finder).
func (db *DB) SearchTitles(query string, limit int) ([]Regulation, error) {
	if limit <= 0 {
		limit = 50
	}
	pattern := "%" + escapeLike(strings.TrimSpace(query)) + "%"
	return db.queryRegulations(`
		SELECT `+regulationColumns+`
		FROM regulations
		WHERE title LIKE ? ESCAPE '\' OR filename LIKE ? ESCAPE '\'
		ORDER BY id
		LIMIT ?
	`, pattern, pattern, limit)
}

// ListAll returns the catalogue ordered by ID.
func (db *DB) ListAll(limit int) ([]Regulation, error) {
	if limit <= 0 {
		limit = 10000
	}
	return db.queryRegulations(`SELECT `+regulationColumns+` FROM regulations ORDER BY id LIMIT ?`, limit)
}

func (db *DB) queryRegulations(query string, args ...any) ([]Regulation, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}

	var results []Regulation
	for rows.Next() {
		r, err := scanRegulation(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return results, nil
}

// Outline returns the stored headings and articles of a regulation in line
// order.
func (db *DB) Outline(id int) ([]OutlineEntry, error) {
	rows, err := db.conn.Query(`
		SELECT kind, level, text, line
		FROM outline
		WHERE regulation_id = ?
		ORDER BY line
	`, id)
	if err != nil {
		return nil, err
	}

	var results []OutlineEntry
	for rows.Next() {
		var o OutlineEntry
		if err := rows.Scan(&o.Kind, &o.Level, &o.Text, &o.Line); err != nil {
			_ = rows.Close()
			return nil, err
		}
		results = append(results, o)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return results, nil
}

// phrase quotes q as a single FTS5 string so operators in user input are
// matched literally.
func phrase(q string) string {
	return `"` + strings.ReplaceAll(q, `"`, `""`) + `"`
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// snippet returns the text around the first occurrence of q on one line.
func snippet(content, q string) string {
	i := strings.Index(content, q)
	if i < 0 {
		line, _, _ := strings.Cut(strings.TrimSpace(content), "\n")
		return truncateRunes(line, 2*snippetRadius)
	}

	start := strings.LastIndexByte(content[:i], '\n') + 1
	end := len(content)
	if j := strings.IndexByte(content[i:], '\n'); j >= 0 {
		end = i + j
	}

	before := []rune(content[start:i])
	prefix := ""
	if len(before) > snippetRadius {
		before = before[len(before)-snippetRadius:]
		prefix = "…"
	}
	after := content[i+len(q) : end]
	return prefix + string(before) + q + truncateRunes(after, snippetRadius)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "…"
}

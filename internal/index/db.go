package index

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ntpusu/lawtext/internal/library"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS regulations (
    id INTEGER PRIMARY KEY,
    filename TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT '',
    modified_type TEXT NOT NULL DEFAULT '',
    modified_date TEXT NOT NULL DEFAULT '',
    articles INTEGER NOT NULL DEFAULT 0,
    mod_time INTEGER NOT NULL,
    size INTEGER NOT NULL DEFAULT 0,
    hash TEXT NOT NULL DEFAULT ''
);

CREATE VIRTUAL TABLE IF NOT EXISTS regulations_fts USING fts5(
    title, content, headings,
    tokenize='trigram'
);

CREATE TABLE IF NOT EXISTS outline (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    regulation_id INTEGER NOT NULL REFERENCES regulations(id) ON DELETE CASCADE,
    kind TEXT NOT NULL,
    level TEXT NOT NULL DEFAULT '',
    text TEXT NOT NULL,
    line INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_outline_regulation ON outline(regulation_id, line);
`

// DB wraps the SQLite catalogue.
type DB struct {
	conn *sql.DB
}

// Regulation is a catalogue row.
type Regulation struct {
	ID           int
	Filename     string
	Title        string
	Status       string
	ModifiedType string
	ModifiedDate string
	Articles     int
	ModTime      int64
	Size         int64
	Hash         string
}

// OutlineEntry is a stored heading or article line.
type OutlineEntry struct {
	Kind  string
	Level string
	Text  string
	Line  int
}

// Open opens or creates the database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return initDB(conn)
}

// OpenMemory opens an in-memory database (for testing).
func OpenMemory() (*DB, error) {
	conn, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(on)")
	if err != nil {
		return nil, err
	}
	// Every pooled connection would otherwise get its own empty database.
	conn.SetMaxOpenConns(1)
	return initDB(conn)
}

func initDB(conn *sql.DB) (*DB, error) {
	if _, err := conn.Exec(schema); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, fmt.Errorf("init schema: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("init schema: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, fmt.Errorf("migrate db: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	return db, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying sql.DB for advanced queries.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// SaveRegulation stores r with its searchable text and outline in one
// transaction. When another file already owns r.ID and sorts before
// r.Filename, nothing is written and saved is false; this keeps the
// catalogue in line with manifest resolution, where the first name wins.
func (db *DB) SaveRegulation(r Regulation, content, headings string, outline []OutlineEntry) (saved bool, err error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.Exec(`
		INSERT INTO regulations (id, filename, title, status, modified_type, modified_date, articles, mod_time, size, hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			filename = excluded.filename,
			title = excluded.title,
			status = excluded.status,
			modified_type = excluded.modified_type,
			modified_date = excluded.modified_date,
			articles = excluded.articles,
			mod_time = excluded.mod_time,
			size = excluded.size,
			hash = excluded.hash
		WHERE excluded.filename <= regulations.filename
	`, r.ID, r.Filename, r.Title, r.Status, r.ModifiedType, r.ModifiedDate, r.Articles, r.ModTime, r.Size, r.Hash)
	if err != nil {
		return false, fmt.Errorf("upsert regulation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, tx.Rollback()
	}

	if _, err = tx.Exec("DELETE FROM regulations_fts WHERE rowid = ?", r.ID); err != nil {
		return false, fmt.Errorf("clear fts: %w", err)
	}
	if _, err = tx.Exec("INSERT INTO regulations_fts(rowid, title, content, headings) VALUES(?, ?, ?, ?)",
		r.ID, fold(r.Title), fold(content), fold(headings)); err != nil {
		return false, fmt.Errorf("update fts: %w", err)
	}

	if _, err = tx.Exec("DELETE FROM outline WHERE regulation_id = ?", r.ID); err != nil {
		return false, fmt.Errorf("clear outline: %w", err)
	}
	for _, o := range outline {
		if _, err = tx.Exec("INSERT INTO outline (regulation_id, kind, level, text, line) VALUES (?, ?, ?, ?, ?)",
			r.ID, o.Kind, o.Level, o.Text, o.Line); err != nil {
			return false, fmt.Errorf("insert outline %q: %w", o.Text, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// GetHash returns the stored content hash for filename, or "" when the file
// is not catalogued.
func (db *DB) GetHash(filename string) (string, error) {
	var hash string
	err := db.conn.QueryRow("SELECT hash FROM regulations WHERE filename = ?", filename).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return hash, err
}

// ResetHashes forces the next IndexAll to re-read every file.
func (db *DB) ResetHashes() error {
	_, err := db.conn.Exec("UPDATE regulations SET hash = ''")
	return err
}

// DeleteRegulation removes filename and its derived rows. It reports the
// removed ID, or -1 when nothing matched.
func (db *DB) DeleteRegulation(filename string) (int, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return -1, err
	}

	var id int
	err = tx.QueryRow("SELECT id FROM regulations WHERE filename = ?", filename).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return -1, tx.Rollback()
	}
	if err != nil {
		_ = tx.Rollback()
		return -1, err
	}

	for _, q := range []string{
		"DELETE FROM regulations_fts WHERE rowid = ?",
		"DELETE FROM regulations WHERE id = ?",
	} {
		if _, err := tx.Exec(q, id); err != nil {
			_ = tx.Rollback()
			return -1, fmt.Errorf("delete regulation %s: %w", filename, err)
		}
	}
	return id, tx.Commit()
}

// Filenames returns every catalogued file name.
func (db *DB) Filenames() ([]string, error) {
	rows, err := db.conn.Query("SELECT filename FROM regulations ORDER BY filename")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// Count returns the number of catalogued regulations.
func (db *DB) Count() (int, error) {
	var n int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM regulations").Scan(&n)
	return n, err
}

// Get returns the regulation with the given ID.
func (db *DB) Get(id int) (Regulation, error) {
	row := db.conn.QueryRow(`SELECT `+regulationColumns+` FROM regulations WHERE id = ?`, id)
	r, err := scanRegulation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Regulation{}, fmt.Errorf("%w: id %s", library.ErrNotFound, library.PadID(id))
	}
	return r, err
}

const regulationColumns = "id, filename, title, status, modified_type, modified_date, articles, mod_time, size, hash"

type scanner interface {
	Scan(dest ...any) error
}

func scanRegulation(s scanner) (Regulation, error) {
	var r Regulation
	err := s.Scan(&r.ID, &r.Filename, &r.Title, &r.Status, &r.ModifiedType, &r.ModifiedDate,
		&r.Articles, &r.ModTime, &r.Size, &r.Hash)
	return r, err
}

// migrate upgrades catalogues created before the modification and article
// columns existed.
func (db *DB) migrate() error {
	for _, col := range []struct{ name, def string }{
		{"modified_type", "TEXT NOT NULL DEFAULT ''"},
		{"modified_date", "TEXT NOT NULL DEFAULT ''"},
		{"articles", "INTEGER NOT NULL DEFAULT 0"},
	} {
		ok, err := db.hasColumn("regulations", col.name)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		if _, err := db.conn.Exec("ALTER TABLE regulations ADD COLUMN " + col.name + " " + col.def); err != nil {
			return fmt.Errorf("add regulations.%s: %w", col.name, err)
		}
		// Rows written without the column need a re-read to fill it.
		if err := db.ResetHashes(); err != nil {
			return fmt.Errorf("reset hashes: %w", err)
		}
	}
	return nil
}

func (db *DB) hasColumn(table, col string) (bool, error) {
	rows, err := db.conn.Query("PRAGMA table_info(" + table + ")")
	if err != nil {
		return false, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull int
		var dflt sql.NullString
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return false, err
		}
		if name == col {
			return true, nil
		}
	}
	return false, rows.Err()
}

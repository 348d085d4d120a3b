package session

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// storeSchema holds per-file editing state across sessions. Content is
// never stored here; only the lightweight bits worth restoring.
const storeSchema = `
CREATE TABLE IF NOT EXISTS recent_files (
	path        TEXT PRIMARY KEY,
	language    TEXT NOT NULL DEFAULT '',
	cursor_line INTEGER NOT NULL DEFAULT 0,
	cursor_col  INTEGER NOT NULL DEFAULT 0,
	opened_at   INTEGER NOT NULL DEFAULT 0
);
`

// FileRecord is the persisted state for one file.
type FileRecord struct {
	Path     string
	Language string
	Line     int
	Column   int
	OpenedAt time.Time
}

// Store persists per-file session state in a SQLite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the state database at path. Use
// ":memory:" for a throwaway in-memory store.
func OpenStore(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		dsn = "file:" + path
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening session store %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("session store %s: %w", path, err)
	}
	if _, err := db.Exec(storeSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing session store %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts the record for a file.
func (s *Store) Save(rec FileRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO recent_files (path, language, cursor_line, cursor_col, opened_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			language = excluded.language,
			cursor_line = excluded.cursor_line,
			cursor_col = excluded.cursor_col,
			opened_at = excluded.opened_at`,
		rec.Path, rec.Language, rec.Line, rec.Column, rec.OpenedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("saving file record: %w", err)
	}
	return nil
}

// Lookup returns the record for a path, reporting false when the store
// has none.
func (s *Store) Lookup(path string) (FileRecord, bool, error) {
	row := s.db.QueryRow(
		`SELECT path, language, cursor_line, cursor_col, opened_at
		 FROM recent_files WHERE path = ?`, path,
	)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return FileRecord{}, false, nil
	}
	if err != nil {
		return FileRecord{}, false, fmt.Errorf("looking up file record: %w", err)
	}
	return rec, true, nil
}

// Recent returns up to limit records, most recently opened first.
func (s *Store) Recent(limit int) ([]FileRecord, error) {
	rows, err := s.db.Query(
		`SELECT path, language, cursor_line, cursor_col, opened_at
		 FROM recent_files ORDER BY opened_at DESC, path LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing recent files: %w", err)
	}
	defer rows.Close()

	var records []FileRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning file record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing recent files: %w", err)
	}
	return records, nil
}

// Forget removes the record for a path.
func (s *Store) Forget(path string) error {
	if _, err := s.db.Exec(`DELETE FROM recent_files WHERE path = ?`, path); err != nil {
		return fmt.Errorf("forgetting file record: %w", err)
	}
	return nil
}

// Prune keeps only the newest keep records.
func (s *Store) Prune(keep int) error {
	_, err := s.db.Exec(
		`DELETE FROM recent_files WHERE path NOT IN (
			SELECT path FROM recent_files ORDER BY opened_at DESC, path LIMIT ?
		)`, keep,
	)
	if err != nil {
		return fmt.Errorf("pruning file records: %w", err)
	}
	return nil
}

// scanRecord scans a row into a FileRecord.
func scanRecord(scanner interface{ Scan(...any) error }) (FileRecord, error) {
	var rec FileRecord
	var openedAt int64
	err := scanner.Scan(&rec.Path, &rec.Language, &rec.Line, &rec.Column, &openedAt)
	if err != nil {
		return FileRecord{}, err
	}
	rec.OpenedAt = time.Unix(openedAt, 0)
	return rec, nil
}

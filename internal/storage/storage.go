// Package storage persists parsed entries and issues to sqlite and serves
// the lookup command. Matching is exact or prefix only.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fredkneeland/beja-dict-parser/internal/engine"
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id        TEXT PRIMARY KEY,
	headword  TEXT NOT NULL,
	page      INTEGER NOT NULL,
	start_line INTEGER NOT NULL,
	doc       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_headword ON entries(headword);

CREATE TABLE IF NOT EXISTS issues (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	kind      TEXT NOT NULL,
	page      INTEGER NOT NULL,
	start_line INTEGER NOT NULL,
	doc       TEXT NOT NULL
);
`

// Store wraps the sqlite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveEntries upserts a batch of entries in one transaction.
func (s *Store) SaveEntries(ctx context.Context, entries []engine.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO entries (id, headword, page, start_line, doc) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("storage: prepare: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		doc, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("storage: marshal entry %s: %w", e.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, e.ID, e.Headword, e.Source.Page, e.Source.StartLine, string(doc)); err != nil {
			return fmt.Errorf("storage: insert entry %s: %w", e.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: commit: %w", err)
	}
	return nil
}

// SaveIssues appends a batch of issues in one transaction.
func (s *Store) SaveIssues(ctx context.Context, issues []engine.Issue) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO issues (kind, page, start_line, doc) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("storage: prepare: %w", err)
	}
	defer stmt.Close()

	for _, is := range issues {
		doc, err := json.Marshal(is)
		if err != nil {
			return fmt.Errorf("storage: marshal issue: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, string(is.Kind), is.Source.Page, is.Source.StartLine, string(doc)); err != nil {
			return fmt.Errorf("storage: insert issue: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: commit: %w", err)
	}
	return nil
}

// LookupExact returns all entries whose headword matches exactly.
func (s *Store) LookupExact(ctx context.Context, headword string) ([]engine.Entry, error) {
	return s.query(ctx,
		`SELECT doc FROM entries WHERE headword = ? ORDER BY page, start_line`, headword)
}

// LookupPrefix returns up to limit entries whose headword starts with the
// given prefix, in document order.
func (s *Store) LookupPrefix(ctx context.Context, prefix string, limit int) ([]engine.Entry, error) {
	if limit < 1 {
		limit = 50
	}
	return s.query(ctx,
		`SELECT doc FROM entries WHERE headword LIKE ? || '%' ORDER BY headword, page, start_line LIMIT ?`,
		prefix, limit)
}

// CountEntries reports the number of stored entries.
func (s *Store) CountEntries(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: count entries: %w", err)
	}
	return n, nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]engine.Entry, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: query: %w", err)
	}
	defer rows.Close()

	var entries []engine.Entry
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("storage: scan: %w", err)
		}
		var e engine.Entry
		if err := json.Unmarshal([]byte(doc), &e); err != nil {
			return nil, fmt.Errorf("storage: unmarshal entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: rows: %w", err)
	}
	return entries, nil
}

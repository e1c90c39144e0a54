package persist

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists flag documents to SQLite.
// It is suitable for single-process production use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite flag store.
// The path should be a file path (e.g., "./flags.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A ":memory:" database is per-connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS flags (
			name TEXT NOT NULL PRIMARY KEY,
			id TEXT NOT NULL,
			enabled INTEGER NOT NULL,
			position INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Name implements Store.
func (s *SQLiteStore) Name() string {
	return BackendSQLite
}

// Save implements Store. The whole document is replaced in one transaction.
func (s *SQLiteStore) Save(doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM flags`); err != nil {
		return fmt.Errorf("clear flags: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO flags (name, id, enabled, position, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for i, rec := range doc.Records {
		if _, err := stmt.Exec(rec.Name, rec.ID.String(), rec.Enabled, i, now); err != nil {
			return fmt.Errorf("save flag %q: %w", rec.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Load implements Store.
func (s *SQLiteStore) Load() (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Document{}, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT name, id, enabled
		FROM flags
		ORDER BY position
	`)
	if err != nil {
		return Document{}, fmt.Errorf("load flags: %w", err)
	}
	defer rows.Close()

	var doc Document
	for rows.Next() {
		var rec Record
		var id string
		if err := rows.Scan(&rec.Name, &id, &rec.Enabled); err != nil {
			return Document{}, fmt.Errorf("scan flag: %w", err)
		}
		if rec.ID, err = uuid.Parse(id); err != nil {
			return Document{}, fmt.Errorf("flag %q: %w", rec.Name, err)
		}
		doc.Records = append(doc.Records, rec)
	}

	if err := rows.Err(); err != nil {
		return Document{}, fmt.Errorf("iterate flags: %w", err)
	}
	if len(doc.Records) == 0 {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

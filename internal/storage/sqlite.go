package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/five82/shelf/internal/readinglist"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// schema holds one row per named slot. The reading list uses a single slot.
const schema = `
CREATE TABLE IF NOT EXISTS slots (
    name       TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SQLiteStore keeps the reading list as a JSON blob in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	slot string
}

// NewSQLiteStore opens (or creates) the database at dbPath in WAL mode and
// ensures the slots table exists.
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("storage: create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: open database: %w", err)
	}

	// SQLite has a single writer; one connection also keeps :memory:
	// databases from splitting across pooled connections.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: create schema: %w", err)
	}

	return &SQLiteStore{db: db, slot: readinglist.StorageKey}, nil
}

// Load reads the reading list slot. A missing row is an empty list.
func (s *SQLiteStore) Load(ctx context.Context) ([]readinglist.Book, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM slots WHERE name = ?", s.slot).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: load slot %q: %w", s.slot, err)
	}
	return readinglist.DecodeCollection([]byte(value))
}

// Save overwrites the reading list slot.
func (s *SQLiteStore) Save(ctx context.Context, books []readinglist.Book) error {
	data, err := readinglist.EncodeCollection(books)
	if err != nil {
		return err
	}
	const q = `
		INSERT INTO slots (name, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
	if _, err := s.db.ExecContext(ctx, q, s.slot, string(data)); err != nil {
		return fmt.Errorf("storage: save slot %q: %w", s.slot, err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

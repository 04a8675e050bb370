package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store is the local SQLite database: remembered credentials plus a
// round-history log. The backend stays the source of truth for everything
// else.
type Store struct {
	db *sql.DB
}

// Open creates a Store connected to the SQLite database at dsn. It applies
// recommended pragmas and creates the schema.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func createSchema(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS credentials (
			id            INTEGER PRIMARY KEY CHECK (id = 1),
			username      TEXT NOT NULL DEFAULT '',
			access_token  TEXT NOT NULL DEFAULT '',
			refresh_token TEXT NOT NULL DEFAULT '',
			device_id     TEXT NOT NULL DEFAULT '',
			saved_at      TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS round_history (
			id          TEXT PRIMARY KEY,
			puzzle_id   TEXT NOT NULL,
			correct     INTEGER NOT NULL,
			points      INTEGER NOT NULL,
			answered_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_round_history_answered
			ON round_history (answered_at DESC)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// DefaultPath resolves the database file path in priority order:
// 1. BANANA_DB environment variable
// 2. <dataDir>/blitz.db
func DefaultPath(dataDir string) (string, error) {
	if p := os.Getenv("BANANA_DB"); p != "" {
		return p, ensureDir(p)
	}
	p := filepath.Join(dataDir, "blitz.db")
	return p, ensureDir(p)
}

// ensureDir creates the parent directory of path if it doesn't exist.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

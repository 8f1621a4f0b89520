// Package store is the persistence collaborator for the engine: per-item
// strength records, append-only answer events, and serialized graph
// snapshots, all in a single SQLite file.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the database handle and provides access to repositories.
type Store struct {
	db  *sqlx.DB
	log *zap.Logger
}

// Open connects to the SQLite database at dsn, applies the recommended
// pragmas, and bootstraps the schema.
func Open(dsn string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite has a single writer; a larger pool only manufactures
	// SQLITE_BUSY errors.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	log.Info("store opened", zap.String("dsn", dsn))
	return &Store{db: db, log: log}, nil
}

// DB returns the underlying handle for raw queries.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// StrengthRepo returns the per-item strength repository.
func (s *Store) StrengthRepo() *StrengthRepo {
	return &StrengthRepo{db: s.db}
}

// ResultRepo returns the answer-event repository.
func (s *Store) ResultRepo() *ResultRepo {
	return &ResultRepo{db: s.db}
}

// GraphRepo returns the graph-snapshot repository.
func (s *Store) GraphRepo() *GraphRepo {
	return &GraphRepo{db: s.db, log: s.log}
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sqlx.DB) error {
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

func initSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS item_strength (
	item_id        TEXT PRIMARY KEY,
	score          INTEGER NOT NULL,
	last_practiced TEXT NOT NULL DEFAULT '',
	proven_mastery INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS answer_events (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id       TEXT NOT NULL,
	exercise_id      TEXT NOT NULL,
	correct          INTEGER NOT NULL,
	was_retry        INTEGER NOT NULL DEFAULT 0,
	response_time_ms INTEGER NOT NULL DEFAULT 0,
	created_at       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS answer_event_items (
	event_id INTEGER NOT NULL REFERENCES answer_events(id) ON DELETE CASCADE,
	item_id  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_answer_event_items_item ON answer_event_items(item_id);

CREATE TABLE IF NOT EXISTS graph_snapshots (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TEXT NOT NULL,
	data       TEXT NOT NULL
);
`
	_, err := db.Exec(schema)
	return err
}

// DefaultDBPath resolves the database file path in priority order:
// 1. ITQAN_DB environment variable
// 2. $XDG_DATA_HOME/itqan/itqan.db
// 3. ~/.local/share/itqan/itqan.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("ITQAN_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "itqan", "itqan.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

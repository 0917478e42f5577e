package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS meta (
    key   TEXT PRIMARY KEY,
    value TEXT
);

CREATE TABLE IF NOT EXISTS results (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    computed_at    TEXT NOT NULL,
    total_messages INTEGER NOT NULL DEFAULT 0,
    user_messages  INTEGER NOT NULL DEFAULT 0,
    payload        TEXT NOT NULL
);
`

// schemaVersion is bumped whenever the payload shape changes; a mismatch
// clears cached results so stale payloads never reach the dashboard.
const schemaVersion = "1"

// Store keeps serialized aggregation payloads. Only the aggregated result is
// persisted, never the raw parsed records.
type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	s := &Store{db: db}
	s.migrateSchemaVersion()
	return s, nil
}

func (s *Store) migrateSchemaVersion() {
	var ver string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&ver)
	if err != nil || ver != schemaVersion {
		s.db.Exec("DELETE FROM results")
		s.db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion)
	}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveResult appends one computed payload with its headline counts.
func (s *Store) SaveResult(payload []byte, totalMessages, userMessages int) error {
	_, err := s.db.Exec(
		`INSERT INTO results (computed_at, total_messages, user_messages, payload) VALUES (?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339),
		totalMessages,
		userMessages,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

// Latest returns the most recent payload, or nil when nothing is cached.
func (s *Store) Latest() ([]byte, error) {
	var payload string
	err := s.db.QueryRow("SELECT payload FROM results ORDER BY id DESC LIMIT 1").Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(payload), nil
}

// Clear drops every cached result, used when a new export replaces the old.
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM results")
	return err
}

func (s *Store) ResultCount() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM results").Scan(&n)
	return n, err
}

// LastComputedAt returns the timestamp of the newest result, "" when empty.
func (s *Store) LastComputedAt() (string, error) {
	var ts string
	err := s.db.QueryRow("SELECT computed_at FROM results ORDER BY id DESC LIMIT 1").Scan(&ts)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return ts, err
}

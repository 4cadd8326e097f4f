package kvstore

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS planbook_kv (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// SQLite persists keys in a local SQLite file, the browser-localStorage
// analogue for this client.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the state file at path and ensures
// the schema exists.
func OpenSQLite(path string) (*SQLite, error) {
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// NewSQLiteWithDB wraps an existing database handle. The caller is
// responsible for the schema.
func NewSQLiteWithDB(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(
		ctx,
		`SELECT value FROM planbook_kv WHERE key = ?`,
		key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO planbook_kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(
		ctx,
		`DELETE FROM planbook_kv WHERE key = ?`,
		key,
	)
	return err
}

func (s *SQLite) Close() error { return s.db.Close() }

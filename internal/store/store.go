package store

import (
	"database/sql"
	"errors"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// ErrNotFound is returned when a record does not exist or is not visible to
// the caller's owner scope. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("record not found")

type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS daily_records (
    id TEXT PRIMARY KEY,
    owner TEXT NOT NULL,
    log_date TEXT NOT NULL,
    transcript TEXT,
    extracted TEXT NOT NULL DEFAULT '{}',
    created_at DATETIME DEFAULT (datetime('now')),
    UNIQUE(owner, log_date)
);

CREATE INDEX IF NOT EXISTS idx_daily_records_owner_date ON daily_records(owner, log_date);
`

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Ping() error {
	return s.db.Ping()
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}

	return nil
}

func (s *Store) DB() *sql.DB {
	return s.db
}

package localstore

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"

	"gretastore/internal/domain/repository"
	"gretastore/pkg/errors"
)

type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) a single-file key/value store.
func OpenSQLite(ctx context.Context, path string) (repository.LocalStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Internal("Failed to open local store", err)
	}
	db.SetMaxOpenConns(1)

	s := &sqliteStore{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *sqliteStore) migrate(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return errors.Internal("Failed to prepare local store", err)
	}
	return nil
}

func (s *sqliteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Internal("Failed to read local store", err)
	}
	return value, true, nil
}

func (s *sqliteStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
	INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return errors.Internal("Failed to write local store", err)
	}
	return nil
}

func (s *sqliteStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return errors.Internal("Failed to delete from local store", err)
	}
	return nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}
